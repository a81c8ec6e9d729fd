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

package cpc

import (
	"github.com/jetsetilly/retrocore/savestate"
	"github.com/user-none/go-chip-z80"
)

// SyncState implements the savestate.Syncer interface. The order of the
// sections is fixed.
func (c *CPC) SyncState(s *savestate.Serializer) {
	s.BeginSection("Z80")
	s.SyncFixedBlob("CPU", z80.SerializeSize, c.cpu.Serialize, c.cpu.Deserialize)
	s.EndSection()

	s.BeginSection("Memory")
	s.SyncBytes("RAM", c.ram[:])
	s.EndSection()

	c.ppi.SyncState(s)
	c.psg.SyncState(s)
	c.crtc.SyncState(s)
	c.ga.SyncState(s)
	c.kb.SyncState(s)
	c.tape.SyncState(s)

	s.BeginSection("Core")
	c.Base.SyncState(s)
	s.SyncUint64("TotalCycles", &c.totalCycles)
	s.SyncInt("FrameCycles", &c.frameCycles)
	for i := range c.tapeButtons {
		s.SyncBool("TapeButton", &c.tapeButtons[i])
	}
	s.EndSection()
}

// Rebind implements the emulation.Rebinder interface.
func (c *CPC) Rebind() error {
	c.plumb()
	c.cpu.INT(c.ga.InterruptRequest(), 0xff)
	return nil
}
