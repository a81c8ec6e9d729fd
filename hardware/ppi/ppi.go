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

// Package ppi emulates the 8255 programmable peripheral interface as it is
// wired in the Amstrad CPC.
//
// Port A is the data bus of the PSG. Port B is an input port that reports
// VSYNC from the CRTC, the distributor ID links, the screen refresh link, the
// expansion and printer lines and the cassette input. The upper half of port
// C controls the PSG function, the cassette output and the cassette motor.
// The lower half of port C selects the keyboard line to be scanned.
//
// The PPI occupies every I/O port with bit 11 clear. Bits 8 and 9 select the
// register:
//
//	bit 9  bit 8
//	0      0      port A
//	0      1      port B
//	1      0      port C
//	1      1      control
package ppi

import (
	"strings"

	"github.com/jetsetilly/retrocore/hardware/bitfield"
	"github.com/jetsetilly/retrocore/savestate"
)

// PSG is the sound chip connected to port A and the upper half of port C.
type PSG interface {
	// the value presented by the PSG on its data bus
	BusRead() uint8

	// the value presented to the PSG on its data bus
	BusWrite(data uint8)

	// the BDIR and BC1 control lines
	SetFunction(bdir bool, bc1 bool)
}

// Keyboard is the key matrix. The line is selected by the lower half of
// port C.
type Keyboard interface {
	SelectLine(line uint8)
}

// Tape is the cassette deck.
type Tape interface {
	SetMotor(on bool)
	SetWriteLevel(level bool)

	// the level of the cassette input at the specified CPU cycle
	EarBit(cycle uint64) bool
}

// CRTC is the video controller.
type CRTC interface {
	VSync() bool
}

// Clock reports the number of CPU cycles executed since power on.
type Clock interface {
	TotalCycles() uint64
}

// Links are the fixed inputs of port B.
type Links struct {
	// distributor ID. 7 is Amstrad
	DistributorID uint8

	// screen refresh. true for 50Hz
	Refresh50Hz bool

	// true if an expansion device is asserting /EXP
	Expansion bool

	// true if the printer is not ready. without a printer this is always true
	PrinterBusy bool
}

// DefaultLinks are the links of a UK CPC 464 with no printer attached.
var DefaultLinks = Links{
	DistributorID: 7,
	Refresh50Hz:   true,
	Expansion:     false,
	PrinterBusy:   true,
}

// Port B bits.
const (
	bitVSync       bitfield.Bit = 0
	bitDistributor bitfield.Bit = 1
	bitRefresh     bitfield.Bit = 4
	bitExpansion   bitfield.Bit = 5
	bitPrinter     bitfield.Bit = 6
	bitCassetteIn  bitfield.Bit = 7
)

// Port C bits.
const (
	bitBDIR         bitfield.Bit = 7
	bitBC1          bitfield.Bit = 6
	bitCassetteOut  bitfield.Bit = 5
	bitCassetteMotr bitfield.Bit = 4
)

// Control register bits with bit 7 set.
const (
	bitControlMode bitfield.Bit = 7
	bitDirCLower   bitfield.Bit = 0
	bitDirB        bitfield.Bit = 1
	bitDirCUpper   bitfield.Bit = 3
	bitDirA        bitfield.Bit = 4
)

// Address decoding.
const (
	bitPortUnselect bitfield.Bit = 11
	bitPortSelect   bitfield.Bit = 8
)

// Register selected by bits 8 and 9 of the I/O port.
type Register int

// List of valid Register values.
const (
	RegPortA Register = iota
	RegPortB
	RegPortC
	RegControl
)

// Decode returns the PPI register selected by the I/O port. The boolean is
// false if the PPI is not selected.
func Decode(port uint16) (Register, bool) {
	p := bitfield.Bits16(port)
	if p.Bit(bitPortUnselect) {
		return 0, false
	}
	return Register(p.Field(bitPortSelect, 2)), true
}

// PPI is the 8255 as wired in the CPC.
type PPI struct {
	PortA  Port
	PortB  Port
	PortCU Port
	PortCL Port

	links Links

	psg      PSG
	keyboard Keyboard
	tape     Tape
	crtc     CRTC
	clock    Clock
}

// NewPPI is the preferred method of initialisation for the PPI type.
func NewPPI(links Links) *PPI {
	ppi := &PPI{
		PortA:  Port{ident: "PortA"},
		PortB:  Port{ident: "PortB"},
		PortCU: Port{ident: "PortCU"},
		PortCL: Port{ident: "PortCL"},
		links:  links,
	}
	ppi.Reset()
	return ppi
}

// Plumb attaches the devices connected to the PPI. It must be called before
// the first port access and again whenever any of the devices are replaced,
// for instance after a savestate has been loaded.
func (ppi *PPI) Plumb(psg PSG, keyboard Keyboard, tape Tape, crtc CRTC, clock Clock) {
	ppi.psg = psg
	ppi.keyboard = keyboard
	ppi.tape = tape
	ppi.crtc = crtc
	ppi.clock = clock
}

// SetLinks changes the fixed inputs of port B.
func (ppi *PPI) SetLinks(links Links) {
	ppi.links = links
}

// Reset all ports to input with a value of 0xff.
func (ppi *PPI) Reset() {
	ppi.PortA.reset()
	ppi.PortB.reset()
	ppi.PortCU.reset()
	ppi.PortCL.reset()
}

func (ppi *PPI) String() string {
	s := strings.Builder{}
	s.WriteString(ppi.PortA.String())
	s.WriteString(" ")
	s.WriteString(ppi.PortB.String())
	s.WriteString(" ")
	s.WriteString(ppi.PortCU.String())
	s.WriteString(" ")
	s.WriteString(ppi.PortCL.String())
	return s.String()
}

// ReadPort returns the value of the register selected by the I/O port. The
// boolean is false if the PPI does not respond to the read. Reading the
// control register is not possible.
func (ppi *PPI) ReadPort(port uint16) (uint8, bool) {
	reg, ok := Decode(port)
	if !ok {
		return 0, false
	}

	switch reg {
	case RegPortA:
		return ppi.readPortA(), true
	case RegPortB:
		return ppi.readPortB(), true
	case RegPortC:
		return ppi.readPortC(), true
	}

	return 0, false
}

// WritePort writes to the register selected by the I/O port. Returns false if
// the PPI is not selected.
func (ppi *PPI) WritePort(port uint16, data uint8) bool {
	reg, ok := Decode(port)
	if !ok {
		return false
	}

	switch reg {
	case RegPortA:
		ppi.writePortA(data)
	case RegPortB:
		ppi.PortB.Data = data
	case RegPortC:
		ppi.writePortC(data)
	case RegControl:
		ppi.writeControl(data)
	}

	return true
}

func (ppi *PPI) readPortA() uint8 {
	if ppi.PortA.Input {
		return ppi.psg.BusRead()
	}
	return ppi.PortA.Data
}

func (ppi *PPI) writePortA(data uint8) {
	ppi.PortA.Data = data
	if !ppi.PortA.Input {
		ppi.psg.BusWrite(data)
	}
}

func (ppi *PPI) readPortB() uint8 {
	if !ppi.PortB.Input {
		return ppi.PortB.Data
	}

	var b bitfield.Bits8
	b.Set(bitVSync, ppi.crtc.VSync())
	b.SetField(bitDistributor, 3, ppi.links.DistributorID)
	b.Set(bitRefresh, ppi.links.Refresh50Hz)
	b.Set(bitExpansion, ppi.links.Expansion)
	b.Set(bitPrinter, ppi.links.PrinterBusy)
	b.Set(bitCassetteIn, ppi.tape.EarBit(ppi.clock.TotalCycles()))
	return uint8(b)
}

func (ppi *PPI) readPortC() uint8 {
	upper := bitfield.Bits8(ppi.PortCU.Data).Upper()
	if ppi.PortCU.Input {
		upper = 0x0f
	}
	lower := bitfield.Bits8(ppi.PortCL.Data).Lower()
	if ppi.PortCL.Input {
		lower = 0x0f
	}
	return bitfield.Join(upper, lower)
}

func (ppi *PPI) writePortC(data uint8) {
	ppi.PortCU.Data = data
	ppi.PortCL.Data = data
	ppi.forwardPortC()
}

// forward the current value of port C to the connected devices. each half is
// only forwarded if it is an output
func (ppi *PPI) forwardPortC() {
	if !ppi.PortCU.Input {
		c := bitfield.Bits8(ppi.PortCU.Data)
		ppi.tape.SetMotor(c.Bit(bitCassetteMotr))
		ppi.tape.SetWriteLevel(c.Bit(bitCassetteOut))
		ppi.psg.SetFunction(c.Bit(bitBDIR), c.Bit(bitBC1))
	}
	if !ppi.PortCL.Input {
		ppi.keyboard.SelectLine(bitfield.Bits8(ppi.PortCL.Data).Lower())
	}
}

func (ppi *PPI) writeControl(data uint8) {
	c := bitfield.Bits8(data)

	if c.Bit(bitControlMode) {
		ppi.PortCL.Input = c.Bit(bitDirCLower)
		ppi.PortB.Input = c.Bit(bitDirB)
		ppi.PortCU.Input = c.Bit(bitDirCUpper)
		ppi.PortA.Input = c.Bit(bitDirA)

		// the CPC only uses mode zero
		ppi.PortA.OpMode = 0
		ppi.PortB.OpMode = 0
		ppi.PortCU.OpMode = 0
		ppi.PortCL.OpMode = 0

		// all ports are cleared by a mode set
		ppi.PortA.Data = 0x00
		ppi.PortB.Data = 0x00
		ppi.PortCU.Data = 0x00
		ppi.PortCL.Data = 0x00
		return
	}

	// bit set/reset. changes a single bit of port C
	n := bitfield.Bit(c.Field(1, 3))
	v := bitfield.Bits8(bitfield.Join(bitfield.Bits8(ppi.PortCU.Data).Upper(), ppi.PortCL.Data))
	v.Set(n, c.Bit(0))
	ppi.PortCU.Data = uint8(v)
	ppi.PortCL.Data = uint8(v)
	ppi.forwardPortC()
}

// SyncState implements the savestate.Syncer interface.
func (ppi *PPI) SyncState(s *savestate.Serializer) {
	s.BeginSection("PPI")
	ppi.PortA.SyncState(s)
	ppi.PortB.SyncState(s)
	ppi.PortCU.SyncState(s)
	ppi.PortCL.SyncState(s)
	s.EndSection()
}

// Peek returns the latched value of a register without side effects. The
// control register cannot be read and returns 0xff.
func (ppi *PPI) Peek(reg Register) uint8 {
	switch reg {
	case RegPortA:
		return ppi.PortA.Data
	case RegPortB:
		return ppi.PortB.Data
	case RegPortC:
		return bitfield.Join(bitfield.Bits8(ppi.PortCU.Data).Upper(), ppi.PortCL.Data)
	}
	return 0xff
}
