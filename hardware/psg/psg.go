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

// Package psg emulates the General Instrument AY-3-8912 sound generator as
// used in the Amstrad CPC.
//
// The PSG is not connected to the CPU directly. Its data bus is port A of the
// PPI and its BDIR and BC1 control lines are bits 7 and 6 of PPI port C. The
// single I/O port of the 8912 (register 14) is connected to the keyboard
// matrix.
package psg

import (
	"fmt"

	"github.com/jetsetilly/retrocore/savestate"
)

// NumRegisters is the number of registers in the PSG.
const NumRegisters = 16

// Register numbers.
const (
	RegToneALo = iota
	RegToneAHi
	RegToneBLo
	RegToneBHi
	RegToneCLo
	RegToneCHi
	RegNoise
	RegMixer
	RegVolumeA
	RegVolumeB
	RegVolumeC
	RegEnvelopeLo
	RegEnvelopeHi
	RegEnvelopeShape
	RegIOA
	RegIOB
)

// writable bits of each register
var registerMasks = [NumRegisters]uint8{
	0xff, 0x0f, 0xff, 0x0f, 0xff, 0x0f, 0x1f, 0xff,
	0x1f, 0x1f, 0x1f, 0xff, 0xff, 0x0f, 0xff, 0xff,
}

// Function is the operation selected by the BDIR and BC1 lines.
type Function int

// List of valid Function values.
const (
	Inactive Function = iota
	Read
	Write
	Latch
)

func (f Function) String() string {
	switch f {
	case Inactive:
		return "inactive"
	case Read:
		return "read"
	case Write:
		return "write"
	case Latch:
		return "latch"
	}
	return "unknown"
}

// IOPort is the device connected to the I/O port of the PSG.
type IOPort interface {
	ReadIOPort() uint8
}

// PSG is the AY-3-8912.
type PSG struct {
	regs     [NumRegisters]uint8
	selected uint8
	bus      uint8
	function Function

	io IOPort

	gen generator
}

// NewPSG is the preferred method of initialisation for the PSG type.
// The clock is the PSG clock in Hz and sampleRate is the rate of the stereo
// output.
func NewPSG(clock int, sampleRate int) *PSG {
	psg := &PSG{}
	psg.gen.init(clock, sampleRate)
	psg.Reset()
	return psg
}

// Plumb attaches the device connected to the I/O port.
func (psg *PSG) Plumb(io IOPort) {
	psg.io = io
}

// Reset clears all registers.
func (psg *PSG) Reset() {
	psg.regs = [NumRegisters]uint8{}
	psg.selected = 0
	psg.bus = 0
	psg.function = Inactive
	psg.gen.reset()
}

func (psg *PSG) String() string {
	return fmt.Sprintf("sel=%d fn=%s regs=% 02x", psg.selected, psg.function, psg.regs[:])
}

// BusWrite sets the value on the data bus. The value is acted on when the
// function is Write or Latch.
func (psg *PSG) BusWrite(data uint8) {
	psg.bus = data
	psg.apply()
}

// BusRead returns the value presented by the PSG on the data bus. If the
// function is not Read the bus floats high.
func (psg *PSG) BusRead() uint8 {
	if psg.function != Read {
		return 0xff
	}
	return psg.readRegister(psg.selected)
}

// SetFunction sets the BDIR and BC1 control lines.
func (psg *PSG) SetFunction(bdir bool, bc1 bool) {
	switch {
	case !bdir && !bc1:
		psg.function = Inactive
	case !bdir && bc1:
		psg.function = Read
	case bdir && !bc1:
		psg.function = Write
	default:
		psg.function = Latch
	}
	psg.apply()
}

func (psg *PSG) apply() {
	switch psg.function {
	case Latch:
		// addresses outside the register range are ignored by the 8912
		if psg.bus < NumRegisters {
			psg.selected = psg.bus
		}
	case Write:
		psg.WriteRegister(psg.selected, psg.bus)
	}
}

func (psg *PSG) readRegister(reg uint8) uint8 {
	if reg == RegIOA && psg.io != nil {
		return psg.io.ReadIOPort()
	}
	return psg.regs[reg]
}

// WriteRegister sets a register directly. Unused bits are masked off.
func (psg *PSG) WriteRegister(reg uint8, data uint8) {
	reg &= 0x0f
	psg.regs[reg] = data & registerMasks[reg]
	if reg == RegEnvelopeShape {
		psg.gen.restartEnvelope(psg.regs[RegEnvelopeShape])
	}
}

// PeekRegister returns the value of a register without side effects.
func (psg *PSG) PeekRegister(reg uint8) uint8 {
	return psg.regs[reg&0x0f]
}

// Selected returns the currently selected register.
func (psg *PSG) Selected() uint8 {
	return psg.selected
}

// Function returns the current bus function.
func (psg *PSG) Function() Function {
	return psg.function
}

// SyncState implements the savestate.Syncer interface.
func (psg *PSG) SyncState(s *savestate.Serializer) {
	s.BeginSection("PSG")
	s.SyncBytes("Registers", psg.regs[:])
	s.SyncUint8("Selected", &psg.selected)
	s.SyncUint8("Bus", &psg.bus)
	f := int(psg.function)
	s.SyncInt("Function", &f)
	psg.function = Function(f)
	psg.gen.syncState(s)
	s.EndSection()
}
