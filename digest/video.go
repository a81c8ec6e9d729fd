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

// Video digests the video buffer of a core at the end of every frame.
type Video struct {
	chain
	frameNum int
}

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo() *Video {
	return &Video{}
}

func (dig *Video) String() string {
	return dig.Hash()
}

// Hash implements digest.Digest interface.
func (dig *Video) Hash() string {
	return dig.hash()
}

// ResetDigest implements digest.Digest interface.
func (dig *Video) ResetDigest() {
	dig.reset()
}

// Frame returns the frame number of the most recent digest.
func (dig *Video) Frame() int {
	return dig.frameNum
}

// EndFrame implements the scheduler.Observer interface.
func (dig *Video) EndFrame(emu emulation.Emulator) error {
	vp, ok := emu.ServiceProvider().Video()
	if !ok {
		return curated.Errorf(NoVideo, emu.SystemID())
	}

	pixels := vp.VideoBuffer()
	data := dig.prepare(len(pixels)*4 + 4)

	// the dimensions are part of the digest
	binary.LittleEndian.PutUint16(data, uint16(vp.BufferWidth()))
	binary.LittleEndian.PutUint16(data[2:], uint16(vp.BufferHeight()))
	data = data[4:]

	for i, p := range pixels {
		binary.LittleEndian.PutUint32(data[i*4:], uint32(p))
	}

	dig.sum()
	dig.frameNum = emu.Frame()

	return nil
}
