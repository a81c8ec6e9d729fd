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

package tools

import (
	"github.com/jetsetilly/retrocore/memorydomains"
)

// MemoryDomainMenu returns a menu item for every memory domain of the current
// emulator. Selecting an item calls the set function with the index of the
// domain. The item for the selected domain is checked.
//
// Domains larger than maxSize are disabled. A maxSize of zero or less means
// there is no size limit.
func (ses *Session) MemoryDomainMenu(set func(index int), selected string, maxSize int) ([]MenuItem, error) {
	reg, err := ses.domains()
	if err != nil {
		return nil, err
	}

	var items []MenuItem
	for i, d := range reg.Domains() {
		i := i
		item := MenuItem{
			Label:   d.Name,
			Enabled: maxSize <= 0 || d.Size <= maxSize,
			Checked: d.Name == selected,
		}
		if item.Enabled {
			item.Action = func() { set(i) }
		}
		items = append(items, item)
	}

	return items, nil
}

// MemoryDomainList returns the names of every memory domain and the index of
// the start domain. The index is -1 if there is no domain by that name.
func (ses *Session) MemoryDomainList(start string) ([]string, int, error) {
	reg, err := ses.domains()
	if err != nil {
		return nil, -1, err
	}

	names := reg.Names()
	for i, n := range names {
		if n == start {
			return names, i, nil
		}
	}
	return names, -1, nil
}

// DomainByName returns the named memory domain. If there is no domain by that
// name the main memory domain is returned.
func (ses *Session) DomainByName(name string) (*memorydomains.Domain, error) {
	reg, err := ses.domains()
	if err != nil {
		return nil, err
	}
	return reg.Lookup(name), nil
}
