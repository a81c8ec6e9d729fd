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

// Package keyboard emulates the CPC keyboard matrix. The matrix has ten lines
// of eight keys. The line is selected by the lower nibble of PPI port C and
// the keys on that line are read through the PSG I/O port. A pressed key
// reads as a zero bit.
//
// The joystick shares line 9 with the DEL key.
package keyboard

import (
	"fmt"

	"github.com/jetsetilly/retrocore/emulation"
	"github.com/jetsetilly/retrocore/savestate"
)

// NumLines in the matrix.
const NumLines = 10

// the name of each key, by line and bit. an empty string is not connected
var matrix = [NumLines][8]string{
	{"Key Up", "Key Right", "Key Down", "Key F9", "Key F6", "Key F3", "Key Enter", "Key F."},
	{"Key Left", "Key Copy", "Key F7", "Key F8", "Key F5", "Key F1", "Key F2", "Key F0"},
	{"Key Clr", "Key [", "Key Return", "Key ]", "Key F4", "Key Shift", "Key \\", "Key Control"},
	{"Key ^", "Key -", "Key @", "Key P", "Key ;", "Key :", "Key /", "Key ."},
	{"Key 0", "Key 9", "Key O", "Key I", "Key L", "Key K", "Key M", "Key ,"},
	{"Key 8", "Key 7", "Key U", "Key Y", "Key H", "Key J", "Key N", "Key Space"},
	{"Key 6", "Key 5", "Key R", "Key T", "Key G", "Key F", "Key B", "Key V"},
	{"Key 4", "Key 3", "Key E", "Key W", "Key S", "Key D", "Key C", "Key X"},
	{"Key 1", "Key 2", "Key Esc", "Key Q", "Key Tab", "Key A", "Key Caps Lock", "Key Z"},
	{"P1 Up", "P1 Down", "P1 Left", "P1 Right", "P1 Fire 2", "P1 Fire 1", "", "Key Del"},
}

// Definition is the controller definition for the keyboard and joystick.
var Definition emulation.ControllerDefinition

func init() {
	Definition.Name = "Amstrad CPC Keyboard"
	for _, line := range matrix {
		for _, k := range line {
			if k != "" {
				Definition.BoolButtons = append(Definition.BoolButtons, k)
			}
		}
	}
	Definition.BoolButtons = append(Definition.BoolButtons, "Reset")
}

// Keyboard is the key matrix.
type Keyboard struct {
	lines [NumLines]uint8
	line  uint8

	// called whenever the matrix is read
	onPoll func()
}

// NewKeyboard is the preferred method of initialisation for the Keyboard type.
func NewKeyboard() *Keyboard {
	kb := &Keyboard{}
	kb.Reset()
	return kb
}

// Plumb attaches the function called when the keyboard is read.
func (kb *Keyboard) Plumb(onPoll func()) {
	kb.onPoll = onPoll
}

// Reset releases all keys.
func (kb *Keyboard) Reset() {
	for i := range kb.lines {
		kb.lines[i] = 0xff
	}
	kb.line = 0
}

func (kb *Keyboard) String() string {
	return fmt.Sprintf("line=%d % 02x", kb.line, kb.lines)
}

// Update the matrix from the controller.
func (kb *Keyboard) Update(c emulation.Controller) {
	for l, line := range matrix {
		v := uint8(0xff)
		for b, k := range line {
			if k != "" && c.IsPressed(k) {
				v &^= 1 << b
			}
		}
		kb.lines[l] = v
	}
}

// SelectLine implements the ppi.Keyboard interface.
func (kb *Keyboard) SelectLine(line uint8) {
	kb.line = line & 0x0f
}

// ReadIOPort implements the psg.IOPort interface. Lines that don't exist read
// as no keys pressed.
func (kb *Keyboard) ReadIOPort() uint8 {
	if kb.onPoll != nil {
		kb.onPoll()
	}
	if int(kb.line) >= NumLines {
		return 0xff
	}
	return kb.lines[kb.line]
}

// Line returns the state of a line without side effects.
func (kb *Keyboard) Line(line int) uint8 {
	if line < 0 || line >= NumLines {
		return 0xff
	}
	return kb.lines[line]
}

// SyncState implements the savestate.Syncer interface.
func (kb *Keyboard) SyncState(s *savestate.Serializer) {
	s.BeginSection("Keyboard")
	s.SyncBytes("Lines", kb.lines[:])
	s.SyncUint8("Line", &kb.line)
	s.EndSection()
}
