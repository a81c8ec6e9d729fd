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

package memorydomains_test

import (
	"testing"

	"github.com/jetsetilly/retrocore/curated"
	"github.com/jetsetilly/retrocore/memorydomains"
	"github.com/jetsetilly/retrocore/test"
)

func newRegistry(t *testing.T) (*memorydomains.Registry, []byte) {
	t.Helper()

	ram := make([]byte, 0x100)
	rom := make([]byte, 0x10)
	regs := [4]uint8{}

	reg, err := memorydomains.NewRegistry("RAM",
		memorydomains.NewSliceDomain("RAM", ram, true),
		memorydomains.NewSliceDomain("ROM", rom, false),
		memorydomains.NewFuncDomain("Registers", len(regs),
			func(addr int) uint8 { return regs[addr] },
			func(addr int, data uint8) { regs[addr] = data }),
	)
	test.ExpectSuccess(t, err)

	return reg, ram
}

func TestRegistryOrder(t *testing.T) {
	reg, _ := newRegistry(t)
	test.ExpectSliceEquality(t, reg.Names(), []string{"RAM", "ROM", "Registers"})
	test.ExpectEquality(t, reg.MainMemory().Name, "RAM")
}

func TestLookupFallback(t *testing.T) {
	reg, _ := newRegistry(t)

	test.ExpectEquality(t, reg.Lookup("ROM").Name, "ROM")
	test.ExpectEquality(t, reg.Lookup("NoSuchDomain"), reg.MainMemory())

	_, ok := reg.Find("NoSuchDomain")
	test.ExpectFailure(t, ok)
}

func TestPeekPoke(t *testing.T) {
	reg, ram := newRegistry(t)

	// pokes are immediately visible in the backing store
	d := reg.Lookup("RAM")
	test.ExpectSuccess(t, d.Poke(0x10, 0x42))
	test.ExpectEquality(t, ram[0x10], 0x42)

	v, err := d.Peek(0x10)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0x42)

	_, err = d.Peek(0x100)
	test.ExpectSuccess(t, curated.Is(err, memorydomains.AddressError))

	err = reg.Lookup("ROM").Poke(0, 1)
	test.ExpectSuccess(t, curated.Is(err, memorydomains.ReadOnlyError))

	r := reg.Lookup("Registers")
	test.ExpectSuccess(t, r.Poke(3, 0xff))
	v, _ = r.Peek(3)
	test.ExpectEquality(t, v, 0xff)
}

func TestRegistryErrors(t *testing.T) {
	_, err := memorydomains.NewRegistry("RAM",
		memorydomains.NewSliceDomain("RAM", make([]byte, 1), true),
		memorydomains.NewSliceDomain("RAM", make([]byte, 1), true),
	)
	test.ExpectSuccess(t, curated.Is(err, memorydomains.DuplicateName))

	_, err = memorydomains.NewRegistry("WRAM",
		memorydomains.NewSliceDomain("RAM", make([]byte, 1), true),
	)
	test.ExpectSuccess(t, curated.Is(err, memorydomains.NoMainMemory))
}
