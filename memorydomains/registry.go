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

// Package memorydomains exposes the address spaces of an emulation core to
// tools such as the cheat list, the Lua scripting engine and memory viewers.
//
// A Registry is created once by the core. The order in which domains are
// given to NewRegistry() is the order in which they are listed and one of
// them must be nominated as main memory. Lookup() of a name that does not
// exist returns main memory rather than failing.
package memorydomains

import (
	"github.com/jetsetilly/retrocore/curated"
)

// Sentinal error patterns.
const (
	DuplicateName = "memory domains: duplicate domain name (%s)"
	NoMainMemory  = "memory domains: main memory domain (%s) not in registry"
)

// Registry is the list of memory domains for an emulation core.
type Registry struct {
	domains []*Domain
	byName  map[string]*Domain
	main    *Domain
}

// NewRegistry is the preferred method of initialisation for the Registry type.
// The mainMemory argument names the domain used when a lookup fails.
func NewRegistry(mainMemory string, domains ...*Domain) (*Registry, error) {
	reg := &Registry{
		byName: make(map[string]*Domain),
	}

	for _, d := range domains {
		if _, ok := reg.byName[d.Name]; ok {
			return nil, curated.Errorf(DuplicateName, d.Name)
		}
		reg.byName[d.Name] = d
		reg.domains = append(reg.domains, d)
	}

	var ok bool
	reg.main, ok = reg.byName[mainMemory]
	if !ok {
		return nil, curated.Errorf(NoMainMemory, mainMemory)
	}

	return reg, nil
}

// Domains returns every domain in definition order. The returned slice should
// not be modified.
func (reg *Registry) Domains() []*Domain {
	return reg.domains
}

// MainMemory returns the designated main memory domain.
func (reg *Registry) MainMemory() *Domain {
	return reg.main
}

// Find returns the named domain. The boolean is false if there is no domain
// by that name.
func (reg *Registry) Find(name string) (*Domain, bool) {
	d, ok := reg.byName[name]
	return d, ok
}

// Lookup returns the named domain or main memory if there is no domain by
// that name.
func (reg *Registry) Lookup(name string) *Domain {
	if d, ok := reg.byName[name]; ok {
		return d
	}
	return reg.main
}

// Names returns the names of every domain in definition order.
func (reg *Registry) Names() []string {
	n := make([]string, len(reg.domains))
	for i, d := range reg.domains {
		n[i] = d.Name
	}
	return n
}
