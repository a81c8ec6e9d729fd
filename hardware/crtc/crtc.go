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

// Package crtc emulates the 6845 cathode ray tube controller (type 0, the
// Hitachi HD6845S) of the Amstrad CPC.
//
// The CRTC is clocked once per character, which is once per microsecond in
// the CPC. It generates the horizontal and vertical sync signals, the display
// enable signal and the memory and raster addresses used by the gate array to
// fetch screen data.
package crtc

import (
	"fmt"

	"github.com/jetsetilly/retrocore/hardware/bitfield"
	"github.com/jetsetilly/retrocore/savestate"
)

// NumRegisters is the number of registers in the 6845.
const NumRegisters = 18

// Register numbers.
const (
	RegHorizTotal = iota
	RegHorizDisplayed
	RegHorizSyncPos
	RegSyncWidths
	RegVertTotal
	RegVertAdjust
	RegVertDisplayed
	RegVertSyncPos
	RegInterlace
	RegMaxRaster
	RegCursorStart
	RegCursorEnd
	RegStartAddrHi
	RegStartAddrLo
	RegCursorHi
	RegCursorLo
	RegLightPenHi
	RegLightPenLo
)

var registerMasks = [NumRegisters]uint8{
	0xff, 0xff, 0xff, 0xff, 0x7f, 0x1f, 0x7f, 0x7f,
	0xff, 0x1f, 0x7f, 0x1f, 0x3f, 0xff, 0x3f, 0xff,
	0x3f, 0xff,
}

// the register values programmed by the CPC firmware at power on
var firmwareDefaults = [NumRegisters]uint8{
	63, 40, 46, 0x8e, 38, 0, 25, 30,
	0, 7, 0, 0, 0x30, 0x00, 0, 0,
	0, 0,
}

// I/O port function, selected by bits 8 and 9 of the port address.
const (
	portSelect = 0
	portWrite  = 1
	portStatus = 2
	portRead   = 3
)

const bitPortUnselect bitfield.Bit = 14

// CRTC is the 6845.
type CRTC struct {
	regs     [NumRegisters]uint8
	selected uint8

	// horizontal character count, vertical character count and raster line
	// within the character row
	hcc    uint8
	vcc    uint8
	raster uint8

	// vertical adjust lines at the end of the frame
	adjusting   bool
	adjustCount int

	// memory address of the first character of the current row
	rowStart uint16

	hsync      bool
	hsyncCount int
	vsync      bool
	vsyncCount int

	vDisplay bool

	// observers of the sync signals
	onHSync func(active bool)
	onVSync func(active bool)
}

// NewCRTC is the preferred method of initialisation for the CRTC type.
func NewCRTC() *CRTC {
	crtc := &CRTC{}
	crtc.Reset()
	return crtc
}

// Plumb attaches the functions called when the sync signals change.
func (crtc *CRTC) Plumb(onHSync func(active bool), onVSync func(active bool)) {
	crtc.onHSync = onHSync
	crtc.onVSync = onVSync
}

// Reset the CRTC with the register values used by the CPC firmware.
func (crtc *CRTC) Reset() {
	crtc.regs = firmwareDefaults
	crtc.selected = 0
	crtc.hcc = 0
	crtc.vcc = 0
	crtc.raster = 0
	crtc.adjusting = false
	crtc.adjustCount = 0
	crtc.hsync = false
	crtc.hsyncCount = 0
	crtc.vsync = false
	crtc.vsyncCount = 0
	crtc.newFrame()
}

func (crtc *CRTC) String() string {
	return fmt.Sprintf("hcc=%d vcc=%d ra=%d ma=%04x hs=%v vs=%v", crtc.hcc, crtc.vcc, crtc.raster,
		crtc.MemoryAddress(), crtc.hsync, crtc.vsync)
}

// ReadPort services an I/O read. The boolean is false if the CRTC is not
// selected or the register cannot be read.
func (crtc *CRTC) ReadPort(port uint16) (uint8, bool) {
	p := bitfield.Bits16(port)
	if p.Bit(bitPortUnselect) {
		return 0, false
	}
	if p.Field(8, 2) != portRead {
		return 0, false
	}

	// only the cursor and light pen registers can be read on a type 0
	if crtc.selected >= RegCursorHi && crtc.selected <= RegLightPenLo {
		return crtc.regs[crtc.selected], true
	}
	return 0, true
}

// WritePort services an I/O write. Returns false if the CRTC is not selected.
func (crtc *CRTC) WritePort(port uint16, data uint8) bool {
	p := bitfield.Bits16(port)
	if p.Bit(bitPortUnselect) {
		return false
	}
	switch p.Field(8, 2) {
	case portSelect:
		crtc.selected = data & 0x1f
	case portWrite:
		crtc.WriteRegister(crtc.selected, data)
	}
	return true
}

// WriteRegister sets a register directly. Writes to registers that don't exist
// are ignored.
func (crtc *CRTC) WriteRegister(reg uint8, data uint8) {
	if int(reg) >= NumRegisters {
		return
	}
	crtc.regs[reg] = data & registerMasks[reg]
}

// PeekRegister returns the value of a register without side effects.
func (crtc *CRTC) PeekRegister(reg uint8) uint8 {
	if int(reg) >= NumRegisters {
		return 0
	}
	return crtc.regs[reg]
}

// Registers returns a copy of the register file.
func (crtc *CRTC) Registers() [NumRegisters]uint8 {
	return crtc.regs
}

func (crtc *CRTC) hsyncWidth() int {
	return int(crtc.regs[RegSyncWidths] & 0x0f)
}

func (crtc *CRTC) vsyncWidth() int {
	w := int(crtc.regs[RegSyncWidths] >> 4)
	if w == 0 {
		w = 16
	}
	return w
}

func (crtc *CRTC) startAddress() uint16 {
	return (uint16(crtc.regs[RegStartAddrHi])<<8 | uint16(crtc.regs[RegStartAddrLo])) & 0x3fff
}

func (crtc *CRTC) newFrame() {
	crtc.vcc = 0
	crtc.raster = 0
	crtc.adjusting = false
	crtc.adjustCount = 0
	crtc.rowStart = crtc.startAddress()
	crtc.vDisplay = true
}

func (crtc *CRTC) setHSync(active bool) {
	crtc.hsync = active
	crtc.hsyncCount = 0
	if crtc.onHSync != nil {
		crtc.onHSync(active)
	}
}

func (crtc *CRTC) setVSync(active bool) {
	crtc.vsync = active
	crtc.vsyncCount = 0
	if crtc.onVSync != nil {
		crtc.onVSync(active)
	}
}

// Tick advances the CRTC by one character.
func (crtc *CRTC) Tick() {
	if crtc.hcc == crtc.regs[RegHorizTotal] {
		crtc.hcc = 0
		crtc.endOfLine()
	} else {
		crtc.hcc++
	}

	if crtc.hsync {
		crtc.hsyncCount++
		if crtc.hsyncCount >= crtc.hsyncWidth() {
			crtc.setHSync(false)
		}
	} else if crtc.hcc == crtc.regs[RegHorizSyncPos] && crtc.hsyncWidth() > 0 {
		crtc.setHSync(true)
	}
}

func (crtc *CRTC) endOfLine() {
	if crtc.vsync {
		crtc.vsyncCount++
		if crtc.vsyncCount >= crtc.vsyncWidth() {
			crtc.setVSync(false)
		}
	}

	switch {
	case crtc.adjusting:
		crtc.adjustCount++
		crtc.raster++
		if crtc.adjustCount >= int(crtc.regs[RegVertAdjust]) {
			crtc.newFrame()
		}

	case crtc.raster >= crtc.regs[RegMaxRaster]:
		crtc.raster = 0
		crtc.rowStart = (crtc.rowStart + uint16(crtc.regs[RegHorizDisplayed])) & 0x3fff
		if crtc.vcc >= crtc.regs[RegVertTotal] {
			if crtc.regs[RegVertAdjust] == 0 {
				crtc.newFrame()
			} else {
				crtc.adjusting = true
				crtc.adjustCount = 0
				crtc.vDisplay = false
			}
		} else {
			crtc.vcc = (crtc.vcc + 1) & 0x7f
		}

	default:
		crtc.raster++
	}

	if crtc.vcc == crtc.regs[RegVertDisplayed] {
		crtc.vDisplay = false
	}

	if !crtc.vsync && !crtc.adjusting && crtc.raster == 0 && crtc.vcc == crtc.regs[RegVertSyncPos] {
		crtc.setVSync(true)
	}
}

// HSync returns true if horizontal sync is active.
func (crtc *CRTC) HSync() bool {
	return crtc.hsync
}

// VSync returns true if vertical sync is active.
func (crtc *CRTC) VSync() bool {
	return crtc.vsync
}

// DisplayEnable returns true if the current character is in the visible area.
func (crtc *CRTC) DisplayEnable() bool {
	return crtc.vDisplay && crtc.hcc < crtc.regs[RegHorizDisplayed]
}

// MemoryAddress returns the 14 bit MA output.
func (crtc *CRTC) MemoryAddress() uint16 {
	return (crtc.rowStart + uint16(crtc.hcc)) & 0x3fff
}

// RasterAddress returns the 5 bit RA output.
func (crtc *CRTC) RasterAddress() uint8 {
	return crtc.raster & 0x1f
}

// CharacterCount returns the horizontal character count.
func (crtc *CRTC) CharacterCount() uint8 {
	return crtc.hcc
}

// FrameLength returns the number of characters in one frame with the current
// register values.
func (crtc *CRTC) FrameLength() int {
	lines := (int(crtc.regs[RegVertTotal])+1)*(int(crtc.regs[RegMaxRaster])+1) + int(crtc.regs[RegVertAdjust])
	return lines * (int(crtc.regs[RegHorizTotal]) + 1)
}

// SyncState implements the savestate.Syncer interface.
func (crtc *CRTC) SyncState(s *savestate.Serializer) {
	s.BeginSection("CRTC")
	s.SyncBytes("Registers", crtc.regs[:])
	s.SyncUint8("Selected", &crtc.selected)
	s.SyncUint8("HCC", &crtc.hcc)
	s.SyncUint8("VCC", &crtc.vcc)
	s.SyncUint8("Raster", &crtc.raster)
	s.SyncBool("Adjusting", &crtc.adjusting)
	s.SyncInt("AdjustCount", &crtc.adjustCount)
	s.SyncUint16("RowStart", &crtc.rowStart)
	s.SyncBool("HSync", &crtc.hsync)
	s.SyncInt("HSyncCount", &crtc.hsyncCount)
	s.SyncBool("VSync", &crtc.vsync)
	s.SyncInt("VSyncCount", &crtc.vsyncCount)
	s.SyncBool("VDisplay", &crtc.vDisplay)
	s.EndSection()
}
