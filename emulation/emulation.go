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

// Package emulation defines the contract between an emulation core and
// the host that drives it.
//
// A core is advanced exactly one frame at a time with Advance(). The frame
// and lag counters are maintained by every core in the same way and most
// cores will embed the Base type to do this.
//
// Optional features of a core (video output, sound output, savestates and
// memory domains) are discovered through the ServiceProvider. A feature that
// is not supported is not an error, it is simply the false result of the
// comma-ok accessor.
package emulation

import (
	"io"
)

// Sentinal error patterns.
const (
	// required firmware is missing or is the wrong size. the values are the
	// system ID, the firmware ID and a description of the problem
	MissingFirmware = "missing firmware: %s/%s: %s"

	// the program image is of a format recognised by its signature but not
	// supported by the core
	UnsupportedImage = "unsupported image: %s"

	// the image could not be recognised at all
	UnrecognisedImage = "unrecognised image: %s"

	// a fatal error occurred during Advance(). the core must be discarded
	CoreFault = "core fault: %v"

	// the core has been disposed and can no longer be used
	Disposed = "core has been disposed"
)

// Emulator is implemented by every emulation core.
type Emulator interface {
	// Advance the emulation by exactly one frame. If render is false the core
	// may skip producing video output. Likewise for renderSound and audio
	// output. A non-nil error is always fatal and every subsequent call to
	// Advance() will return the same error.
	Advance(render bool, renderSound bool) error

	// Frame is the number of times Advance() has been called since the
	// counters were last reset.
	Frame() int

	// LagCount is the number of frames in which no input was read.
	LagCount() int
	SetLagCount(lagCount int)

	// IsLagFrame is true if no input was read during the most recent frame.
	IsLagFrame() bool

	// ResetCounters sets Frame and LagCount to zero.
	ResetCounters()

	// SystemID identifies the emulated machine. It does not change during the
	// lifetime of the core.
	SystemID() string

	// DeterministicEmulation is true if identical input produces identical
	// output.
	DeterministicEmulation() bool

	ControllerDefinition() ControllerDefinition
	SetController(c Controller)

	ServiceProvider() *ServiceProvider

	// Dispose releases all resources held by the core. It is safe to call
	// more than once.
	Dispose()
}

// VideoProvider is implemented by cores with video output.
type VideoProvider interface {
	// pixels are ARGB
	VideoBuffer() []int32

	VirtualWidth() int
	VirtualHeight() int
	BufferWidth() int
	BufferHeight() int
	BackgroundColor() int32
}

// SoundProvider is implemented by cores with sound output.
type SoundProvider interface {
	// Samples returns the interleaved stereo samples generated by the most
	// recent frame and the number of sample pairs
	Samples() ([]int16, int)

	// DiscardSamples forgets any samples that have not yet been collected
	DiscardSamples()

	SampleRate() int
}

// Statable is implemented by cores that support savestates.
//
// Loading a state leaves the core indistinguishable, for the purposes of
// future calls to Advance(), from the core that saved the state.
type Statable interface {
	SaveStateBinary(w io.Writer) error
	LoadStateBinary(r io.Reader) error

	// SaveStateBytes returns a slice that is owned by the core. It is only valid
	// until the next call to SaveStateBytes()
	SaveStateBytes() ([]byte, error)
	LoadStateBytes(data []byte) error
}
