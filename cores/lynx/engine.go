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

package lynx

import "github.com/jetsetilly/retrocore/cores/native"

// Engine is the interface to a native Lynx emulator. The engine is created
// once and referred to by its handle from then on.
type Engine interface {
	// Create an engine instance. pagesize0 and pagesize1 are the sizes of the
	// cartridge banks. both are zero for an unbanked cartridge
	Create(rom []byte, boot []byte, pagesize0 int, pagesize1 int, lowPass bool) (native.Handle, error)

	Destroy(h native.Handle) error

	Reset(h native.Handle)

	// Advance runs one frame. The video buffer is filled with ARGB pixels and
	// the sample buffer with interleaved stereo samples. Returns the number of
	// sample pairs
	Advance(h native.Handle, buttons Buttons, video []int32, samples []int16) (int, error)

	// RAM returns the engine's 64KiB of RAM. Changes to the slice are seen by
	// the engine
	RAM(h native.Handle) []byte

	// SetInputCallback registers the function called by the engine whenever
	// the emulated program reads the controls
	SetInputCallback(h native.Handle, cb func())
}

// Buttons is the state of the Lynx controls as a bit field.
type Buttons uint16

// The Lynx controls.
const (
	ButtonA Buttons = 1 << iota
	ButtonB
	ButtonOption2
	ButtonOption1
	ButtonRight
	ButtonLeft
	ButtonDown
	ButtonUp
	ButtonPause
)

var buttonNames = []struct {
	name string
	bit  Buttons
}{
	{"Up", ButtonUp},
	{"Down", ButtonDown},
	{"Left", ButtonLeft},
	{"Right", ButtonRight},
	{"A", ButtonA},
	{"B", ButtonB},
	{"Option 1", ButtonOption1},
	{"Option 2", ButtonOption2},
	{"Pause", ButtonPause},
}
