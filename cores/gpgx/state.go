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

package gpgx

import (
	"fmt"

	"github.com/jetsetilly/retrocore/curated"
	"github.com/jetsetilly/retrocore/savestate"
)

// SyncState implements the savestate.Syncer interface. The engine's state
// comes first, followed by the frame counters and the disc drive.
func (g *GPGX) SyncState(s *savestate.Serializer) {
	h := g.res.Handle()

	s.BeginSection("Engine")
	s.SyncBlob("State",
		func() ([]byte, error) {
			return g.engine.SaveState(h)
		},
		func(data []byte) error {
			return g.engine.LoadState(h, data)
		})
	s.EndSection()

	s.BeginSection("Core")
	g.Base.SyncState(s)
	s.SyncInt("DiscIndex", &g.discIndex)
	s.SyncBool("PrevDiskPressed", &g.prevDiskPressed)
	s.SyncBool("NextDiskPressed", &g.nextDiskPressed)
	s.EndSection()
}

// Rebind implements the emulation.Rebinder interface. Everything that the
// engine refers to by pointer is registered again and everything derived from
// the engine's memory is refreshed.
func (g *GPGX) Rebind() error {
	if len(g.discs) > 0 && (g.discIndex < 0 || g.discIndex >= len(g.discs)) {
		return curated.Errorf(EngineError, fmt.Sprintf("disc index %d out of range", g.discIndex))
	}

	h := g.res.Handle()
	g.engine.SetInputCallback(h, g.InputPolled)
	g.refreshMemCallbacks()
	g.engine.SetCDDCallback(h, g.cdd)
	g.engine.InvalidatePatternCache(h)
	g.updateVideo()

	return nil
}
