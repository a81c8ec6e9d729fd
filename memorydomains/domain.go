// This file is part of Retrocore.
//
// Retrocore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Retrocore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Retrocore.  If not, see <https://www.gnu.org/licenses/>.

package memorydomains

import (
	"github.com/jetsetilly/retrocore/curated"
)

// Sentinal error patterns.
const (
	AddressError  = "memory domain: %s: address %#x out of range (size %#x)"
	ReadOnlyError = "memory domain: %s: read only"
)

// Domain is a named, fixed size byte space exposed by an emulation core.
//
// Domains are either backed directly by a byte slice owned by the core, in
// which case Peek() and Poke() act on that slice, or by a pair of access
// functions for address spaces that are only a view (a paged system bus for
// example).
type Domain struct {
	Name string
	Size int

	data  []byte
	peek  func(addr int) uint8
	poke  func(addr int, data uint8)
	write bool
}

// NewSliceDomain creates a domain backed by data. The size of the domain is the
// length of data. Changes made with Poke() are immediately visible to the core.
func NewSliceDomain(name string, data []byte, writable bool) *Domain {
	return &Domain{
		Name:  name,
		Size:  len(data),
		data:  data,
		write: writable,
	}
}

// NewFuncDomain creates a domain that uses the supplied functions for access.
// The poke function can be nil, in which case the domain is read only.
func NewFuncDomain(name string, size int, peek func(addr int) uint8, poke func(addr int, data uint8)) *Domain {
	return &Domain{
		Name:  name,
		Size:  size,
		peek:  peek,
		poke:  poke,
		write: poke != nil,
	}
}

// Writable returns true if Poke() is permitted on the domain.
func (d *Domain) Writable() bool {
	return d.write
}

// Peek returns the byte at the address.
func (d *Domain) Peek(addr int) (uint8, error) {
	if addr < 0 || addr >= d.Size {
		return 0, curated.Errorf(AddressError, d.Name, addr, d.Size)
	}
	if d.data != nil {
		return d.data[addr], nil
	}
	return d.peek(addr), nil
}

// Poke changes the byte at the address.
func (d *Domain) Poke(addr int, data uint8) error {
	if !d.write {
		return curated.Errorf(ReadOnlyError, d.Name)
	}
	if addr < 0 || addr >= d.Size {
		return curated.Errorf(AddressError, d.Name, addr, d.Size)
	}
	if d.data != nil {
		d.data[addr] = data
		return nil
	}
	d.poke(addr, data)
	return nil
}
