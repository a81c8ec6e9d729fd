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

package emulation

import (
	"bytes"
	"io"

	"github.com/jetsetilly/retrocore/savestate"
)

// Rebinder is implemented by cores that hold bindings which are not part of
// the saved state. Function pointers registered with a native engine, caches
// and derived views are typical examples.
type Rebinder interface {
	savestate.Syncer

	// Rebind is called once, after a state has been loaded successfully
	Rebind() error
}

// StateAdapter implements the Statable interface for a core that implements
// the Rebinder interface.
type StateAdapter struct {
	core Rebinder
	buf  savestate.Buffer
}

// NewStateAdapter is the preferred method of initialisation for the
// StateAdapter type.
func NewStateAdapter(core Rebinder) *StateAdapter {
	return &StateAdapter{core: core}
}

// SaveStateBinary implements the Statable interface.
func (sa *StateAdapter) SaveStateBinary(w io.Writer) error {
	s := savestate.NewWriter(w)
	sa.core.SyncState(s)
	return s.Err()
}

// LoadStateBinary implements the Statable interface. If the state cannot be
// read the core is left partially restored and should be discarded or have
// another state loaded into it.
func (sa *StateAdapter) LoadStateBinary(r io.Reader) error {
	s := savestate.NewReader(r)
	sa.core.SyncState(s)
	if err := s.Err(); err != nil {
		return err
	}
	return sa.core.Rebind()
}

// SaveStateBytes implements the Statable interface. The internal buffer is
// reused on every call.
func (sa *StateAdapter) SaveStateBytes() ([]byte, error) {
	return sa.buf.Save(func(s *savestate.Serializer) error {
		sa.core.SyncState(s)
		return nil
	})
}

// LoadStateBytes implements the Statable interface.
func (sa *StateAdapter) LoadStateBytes(data []byte) error {
	return sa.LoadStateBinary(bytes.NewReader(data))
}
