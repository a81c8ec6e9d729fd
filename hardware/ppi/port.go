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

package ppi

import (
	"fmt"

	"github.com/jetsetilly/retrocore/savestate"
)

// Port is the state of one of the four PPI ports. Port C is divided into an
// upper and a lower nibble, each with its own direction.
type Port struct {
	ident string

	// the most recent value written to the port. for port C the whole byte is
	// stored in both halves
	Data uint8

	// direction of the port. true if the port is an input
	Input bool

	// operating mode. always zero in the CPC
	OpMode int
}

func (p *Port) reset() {
	p.OpMode = 0
	p.Input = true
	p.Data = 0xff
}

func (p *Port) String() string {
	dir := "out"
	if p.Input {
		dir = "in"
	}
	return fmt.Sprintf("%s=%02x (%s)", p.ident, p.Data, dir)
}

// SyncState implements the savestate.Syncer interface.
func (p *Port) SyncState(s *savestate.Serializer) {
	s.BeginSection(fmt.Sprintf("PPI_%s", p.ident))
	s.SyncUint8("Data", &p.Data)
	s.SyncBool("Input", &p.Input)
	s.SyncInt("OpMode", &p.OpMode)
	s.EndSection()
}
