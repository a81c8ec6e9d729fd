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

// Package bitfield models chip registers as plain integers with named bit
// positions. Chip packages declare the meaning of each bit as a Bit constant
// and use the methods here rather than shifting and masking inline.
//
//	const (
//		VSync bitfield.Bit = 0
//		Busy  bitfield.Bit = 6
//	)
//
//	var b bitfield.Bits8
//	b.Set(VSync, true)
//	b.SetField(1, 3, 7)
package bitfield

// Bit is the position of a single bit in a register.
type Bit uint8

// Mask returns the register value with only this bit set.
func (n Bit) Mask() uint8 {
	return 1 << n
}

// Bits8 is an eight bit register.
type Bits8 uint8

// Bit returns the state of bit n.
func (b Bits8) Bit(n Bit) bool {
	return b&(1<<n) != 0
}

// Set changes bit n to v.
func (b *Bits8) Set(n Bit, v bool) {
	if v {
		*b |= 1 << n
	} else {
		*b &^= 1 << n
	}
}

// Field returns width bits starting at bit lo, shifted down to bit zero.
func (b Bits8) Field(lo Bit, width uint8) uint8 {
	return uint8(b>>lo) & (1<<width - 1)
}

// SetField replaces width bits starting at bit lo with the low bits of v.
func (b *Bits8) SetField(lo Bit, width uint8, v uint8) {
	mask := Bits8((1<<width - 1) << lo)
	*b = (*b &^ mask) | (Bits8(v<<lo) & mask)
}

// Upper returns the upper nibble shifted down to bit zero.
func (b Bits8) Upper() uint8 {
	return uint8(b) >> 4
}

// Lower returns the lower nibble.
func (b Bits8) Lower() uint8 {
	return uint8(b) & 0x0f
}

// Join combines two nibbles into one byte.
func Join(upper uint8, lower uint8) uint8 {
	return upper<<4 | lower&0x0f
}

// Bits16 is a sixteen bit value, typically an address or port number.
type Bits16 uint16

// Bit returns the state of bit n.
func (b Bits16) Bit(n Bit) bool {
	return b&(1<<n) != 0
}

// Field returns width bits starting at bit lo, shifted down to bit zero.
func (b Bits16) Field(lo Bit, width uint8) uint16 {
	return uint16(b>>lo) & (1<<width - 1)
}
