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

package digest

import (
	"encoding/binary"

	"github.com/jetsetilly/retrocore/curated"
	"github.com/jetsetilly/retrocore/emulation"
)

// Audio digests the samples produced by a core during every frame.
type Audio struct {
	chain
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() *Audio {
	return &Audio{}
}

func (dig *Audio) String() string {
	return dig.Hash()
}

// Hash implements digest.Digest interface.
func (dig *Audio) Hash() string {
	return dig.hash()
}

// ResetDigest implements digest.Digest interface.
func (dig *Audio) ResetDigest() {
	dig.reset()
}

// EndFrame implements the scheduler.Observer interface. The samples are not
// discarded so other observers can still collect them.
func (dig *Audio) EndFrame(emu emulation.Emulator) error {
	sp, ok := emu.ServiceProvider().Sound()
	if !ok {
		return curated.Errorf(NoSound, emu.SystemID())
	}

	samples, n := sp.Samples()
	samples = samples[:min(len(samples), n*2)]

	data := dig.prepare(len(samples) * 2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
	}

	dig.sum()

	return nil
}
