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

// Package gatearray emulates the Amstrad CPC gate array. The gate array owns
// the colour palette and the screen mode, it controls which ROMs are paged
// into memory and it generates the 300Hz interrupt from the CRTC HSYNC
// signal.
//
// Pixels are rendered into a 384x272 buffer. Each CRTC character is eight
// pixels wide, so the buffer is 48 characters across. Mode 1 is rendered at
// its native resolution. Mode 0 pixels are doubled and mode 2 pixels are
// halved.
package gatearray

import (
	"fmt"

	"github.com/jetsetilly/retrocore/hardware/bitfield"
	"github.com/jetsetilly/retrocore/savestate"
)

// Dimensions of the video buffer.
const (
	Width  = 384
	Height = 272
)

// NumPens is the number of ink pens, plus one for the border.
const (
	NumPens   = 17
	BorderPen = 16
)

// lines after the start of VSYNC before the first line of the buffer and
// characters after the end of HSYNC before the first column
const (
	topLine    = 36
	leftColumn = 0
)

// the interrupt counter is incremented at the end of every HSYNC
const interruptLines = 52

// function selected by the top two bits of the data byte
const (
	fnSelectPen = iota
	fnSelectColour
	fnModeROM
	fnRAMConfig
)

const (
	bitPortSelect bitfield.Bit = 14
	bitPortFilter bitfield.Bit = 15

	bitBorder         bitfield.Bit = 4
	bitLowerDisable   bitfield.Bit = 2
	bitUpperDisable   bitfield.Bit = 3
	bitResetInterrupt bitfield.Bit = 4
)

// GateArray is the CPC gate array.
type GateArray struct {
	pens     [NumPens]uint8
	selected uint8

	// mode changes take effect at the start of the next line
	mode        uint8
	pendingMode uint8

	lowerROM bool
	upperROM bool

	ramConfig uint8

	intCounter uint8
	intRequest bool

	// number of HSYNCs until the VSYNC interrupt synchronisation
	vsyncDelay uint8

	// beam position within the video buffer
	column int
	line   int

	ram   []uint8
	video []int32
}

// NewGateArray is the preferred method of initialisation for the GateArray type.
func NewGateArray() *GateArray {
	ga := &GateArray{
		video: make([]int32, Width*Height),
	}
	ga.Reset()
	return ga
}

// Plumb attaches the RAM used for screen fetches.
func (ga *GateArray) Plumb(ram []uint8) {
	ga.ram = ram
}

// Reset the gate array. Both ROMs are paged in and the screen is in mode 1.
func (ga *GateArray) Reset() {
	ga.pens = [NumPens]uint8{}
	ga.selected = 0
	ga.mode = 1
	ga.pendingMode = 1
	ga.lowerROM = true
	ga.upperROM = true
	ga.ramConfig = 0
	ga.intCounter = 0
	ga.intRequest = false
	ga.vsyncDelay = 0
	ga.column = 0
	ga.line = 0
}

func (ga *GateArray) String() string {
	return fmt.Sprintf("mode=%d lower=%v upper=%v int=%d/%v", ga.mode, ga.lowerROM, ga.upperROM,
		ga.intCounter, ga.intRequest)
}

// WritePort services an I/O write. Returns false if the gate array is not
// selected.
func (ga *GateArray) WritePort(port uint16, data uint8) bool {
	p := bitfield.Bits16(port)
	if p.Bit(bitPortFilter) || !p.Bit(bitPortSelect) {
		return false
	}

	d := bitfield.Bits8(data)
	switch d.Field(6, 2) {
	case fnSelectPen:
		if d.Bit(bitBorder) {
			ga.selected = BorderPen
		} else {
			ga.selected = d.Field(0, 4)
		}
	case fnSelectColour:
		ga.pens[ga.selected] = d.Field(0, 5)
	case fnModeROM:
		ga.pendingMode = d.Field(0, 2)
		ga.lowerROM = !d.Bit(bitLowerDisable)
		ga.upperROM = !d.Bit(bitUpperDisable)
		if d.Bit(bitResetInterrupt) {
			ga.intCounter = 0
			ga.intRequest = false
		}
	case fnRAMConfig:
		// no expansion RAM on the 464. the value is kept for the debugger
		ga.ramConfig = d.Field(0, 6)
	}
	return true
}

// LowerROM returns true if the lower ROM is paged into 0x0000-0x3fff.
func (ga *GateArray) LowerROM() bool {
	return ga.lowerROM
}

// UpperROM returns true if the upper ROM is paged into 0xc000-0xffff.
func (ga *GateArray) UpperROM() bool {
	return ga.upperROM
}

// Mode returns the current screen mode.
func (ga *GateArray) Mode() uint8 {
	return ga.mode
}

// Pen returns the hardware colour number of the pen.
func (ga *GateArray) Pen(pen int) uint8 {
	if pen < 0 || pen >= NumPens {
		return 0
	}
	return ga.pens[pen]
}

// InterruptRequest returns true if the Z80 interrupt line is asserted.
func (ga *GateArray) InterruptRequest() bool {
	return ga.intRequest
}

// AcknowledgeInterrupt is called when the Z80 accepts the interrupt. The
// request is withdrawn and bit 5 of the counter is cleared so the next
// interrupt is never less than 32 lines away.
func (ga *GateArray) AcknowledgeInterrupt() {
	ga.intRequest = false
	ga.intCounter &= 0x1f
}

// HSync should be called when the CRTC HSYNC signal changes.
func (ga *GateArray) HSync(active bool) {
	if active {
		ga.mode = ga.pendingMode
		return
	}

	ga.column = 0
	ga.line++

	ga.intCounter++
	if ga.vsyncDelay > 0 {
		ga.vsyncDelay--
		if ga.vsyncDelay == 0 {
			if ga.intCounter >= 32 {
				ga.intRequest = true
			}
			ga.intCounter = 0
		}
	}
	if ga.intCounter >= interruptLines {
		ga.intCounter = 0
		ga.intRequest = true
	}
}

// VSync should be called when the CRTC VSYNC signal changes.
func (ga *GateArray) VSync(active bool) {
	if active {
		ga.vsyncDelay = 2
		ga.line = 0
	}
}

// Clock renders one CRTC character. The arguments are the CRTC display
// enable, memory address and raster address outputs.
func (ga *GateArray) Clock(displayEnable bool, ma uint16, ra uint8) {
	col := ga.column - leftColumn
	y := ga.line - topLine
	ga.column++

	if col < 0 || col >= Width/8 || y < 0 || y >= Height {
		return
	}

	out := ga.video[y*Width+col*8 : y*Width+col*8+8]

	if !displayEnable || ga.ram == nil {
		c := HardwarePalette[ga.pens[BorderPen]]
		for i := range out {
			out[i] = c
		}
		return
	}

	addr := ScreenAddress(ma, ra)
	for b := 0; b < 2; b++ {
		px := pixelDecode[ga.mode][ga.ram[int(addr+uint16(b))%len(ga.ram)]]
		for i, p := range px {
			out[b*4+i] = HardwarePalette[ga.pens[p]]
		}
	}
}

// ScreenAddress converts the CRTC memory and raster addresses to the address
// in RAM of the first of the two bytes fetched for the character.
func ScreenAddress(ma uint16, ra uint8) uint16 {
	return (ma&0x3000)<<2 | uint16(ra&0x07)<<11 | (ma&0x03ff)<<1
}

// VideoBuffer returns the rendered frame.
func (ga *GateArray) VideoBuffer() []int32 {
	return ga.video
}

// BorderColour returns the ARGB value of the border.
func (ga *GateArray) BorderColour() int32 {
	return HardwarePalette[ga.pens[BorderPen]]
}

// SyncState implements the savestate.Syncer interface.
func (ga *GateArray) SyncState(s *savestate.Serializer) {
	s.BeginSection("GateArray")
	s.SyncBytes("Pens", ga.pens[:])
	s.SyncUint8("Selected", &ga.selected)
	s.SyncUint8("Mode", &ga.mode)
	s.SyncUint8("PendingMode", &ga.pendingMode)
	s.SyncBool("LowerROM", &ga.lowerROM)
	s.SyncBool("UpperROM", &ga.upperROM)
	s.SyncUint8("RAMConfig", &ga.ramConfig)
	s.SyncUint8("IntCounter", &ga.intCounter)
	s.SyncBool("IntRequest", &ga.intRequest)
	s.SyncUint8("VSyncDelay", &ga.vsyncDelay)
	s.SyncInt("Column", &ga.column)
	s.SyncInt("Line", &ga.line)
	s.EndSection()
}
