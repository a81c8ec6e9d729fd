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

// Watch is an address in a memory domain that is being watched by a tool
// view.
type Watch struct {
	Domain  string
	Address int

	// separators are used to group watches in a view. they have no address
	Separator bool
}

// FreezeAddress adds an enabled cheat for every watch. The value of each
// cheat is the current value at the address. The domain of the watch is
// resolved with DomainByName().
func (ses *Session) FreezeAddress(watches []Watch) error {
	for _, w := range watches {
		if w.Separator {
			continue
		}

		d, err := ses.DomainByName(w.Domain)
		if err != nil {
			return err
		}

		v, err := d.Peek(w.Address)
		if err != nil {
			return err
		}

		ses.Cheats.Add(Cheat{
			Domain:  d.Name,
			Address: w.Address,
			Value:   v,
			Enabled: true,
		})
	}

	ses.UpdateCheatRelatedTools()
	return nil
}

// UnfreezeAddress removes the cheat for every watch. The domain of the watch
// is resolved in the same way as FreezeAddress().
func (ses *Session) UnfreezeAddress(watches []Watch) {
	for _, w := range watches {
		if w.Separator {
			continue
		}
		name := w.Domain
		if d, err := ses.DomainByName(w.Domain); err == nil {
			name = d.Name
		}
		ses.Cheats.Remove(name, w.Address)
	}

	ses.UpdateCheatRelatedTools()
}

// UnfreezeAll disables every cheat.
func (ses *Session) UnfreezeAll() {
	ses.Cheats.DisableAll()
	ses.UpdateCheatRelatedTools()
}
