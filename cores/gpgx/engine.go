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

import "github.com/jetsetilly/retrocore/cores/native"

// Engine is the interface to a native Genesis/Sega CD emulator.
//
// Functions registered with the engine (the input, memory and CD callbacks)
// are not part of the engine's saved state. They must be registered again
// after a state has been loaded.
type Engine interface {
	// Create an engine instance. For a CD system the rom is the BIOS and toc
	// describes the disc in the drive. toc is nil for a cartridge system
	Create(rom []byte, toc *TOC) (native.Handle, error)

	Destroy(h native.Handle) error

	// Reset the console. A hard reset is the same as turning the power off
	// and on again
	Reset(h native.Handle, hard bool)

	// SetInput sets the state of the two control pads for the next frame
	SetInput(h native.Handle, pads [NumPads]Pad)

	// Advance runs one frame
	Advance(h native.Handle) error

	SetInputCallback(h native.Handle, cb func())

	// SetMemoryCallbacks registers the functions called on memory access. A
	// nil function means that no callback is required for that kind of
	// access, which is faster
	SetMemoryCallbacks(h native.Handle, read MemoryCallback, write MemoryCallback, exec MemoryCallback)

	// SetCDDCallback registers the function used by the engine to read from
	// the disc in the drive
	SetCDDCallback(h native.Handle, cb CDDCallback)

	// SwapDisc changes the disc in the drive. A nil toc opens the drive
	SwapDisc(h native.Handle, toc *TOC)

	// InvalidatePatternCache forces the engine to redecode the VDP tile
	// patterns from VRAM
	InvalidatePatternCache(h native.Handle)

	VideoGeometry(h native.Handle) Geometry

	// VideoBuffer returns the engine's frame buffer. The length is Pitch*Height
	VideoBuffer(h native.Handle) []int32

	// Samples returns the interleaved stereo samples produced by the most
	// recent frame
	Samples(h native.Handle) []int16

	SaveState(h native.Handle) ([]byte, error)
	LoadState(h native.Handle, data []byte) error

	// MemoryAreas returns views of the engine's memory. Changes to the slices
	// are seen by the engine
	MemoryAreas(h native.Handle) []MemoryArea
}

// MemoryCallback is called by the engine with the address being accessed.
type MemoryCallback func(addr uint32)

// CDDCallback is called by the engine to read a sector from the disc. If
// audio is true dest is SectorSize bytes long and receives the whole sector,
// otherwise dest receives the DataSize bytes of user data.
type CDDCallback func(lba int, dest []byte, audio bool)

// Geometry of the engine's frame buffer.
type Geometry struct {
	Width         int
	Height        int
	Pitch         int
	VirtualWidth  int
	VirtualHeight int
}

// MemoryArea is a named region of engine memory.
type MemoryArea struct {
	Name     string
	Data     []byte
	Writable bool
}

// Pad is the state of a six button control pad as a bit field.
type Pad uint16

// NumPads is the number of control ports.
const NumPads = 2

// The control pad buttons.
const (
	PadUp Pad = 1 << iota
	PadDown
	PadLeft
	PadRight
	PadB
	PadC
	PadA
	PadStart
	PadZ
	PadY
	PadX
	PadMode
)

var padButtons = []struct {
	name string
	bit  Pad
}{
	{"Up", PadUp},
	{"Down", PadDown},
	{"Left", PadLeft},
	{"Right", PadRight},
	{"A", PadA},
	{"B", PadB},
	{"C", PadC},
	{"Start", PadStart},
	{"X", PadX},
	{"Y", PadY},
	{"Z", PadZ},
	{"Mode", PadMode},
}
