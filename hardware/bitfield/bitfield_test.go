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

package bitfield_test

import (
	"testing"

	"github.com/jetsetilly/retrocore/hardware/bitfield"
	"github.com/jetsetilly/retrocore/test"
)

func TestBits8(t *testing.T) {
	var b bitfield.Bits8

	b.Set(7, true)
	test.ExpectEquality(t, uint8(b), 0x80)
	test.ExpectSuccess(t, b.Bit(7))
	test.ExpectFailure(t, b.Bit(6))

	b.SetField(1, 3, 0x07)
	test.ExpectEquality(t, uint8(b), 0x8e)
	test.ExpectEquality(t, b.Field(1, 3), 0x07)

	// values wider than the field are masked
	b.SetField(1, 3, 0xff)
	test.ExpectEquality(t, uint8(b), 0x8e)

	b.Set(7, false)
	test.ExpectEquality(t, uint8(b), 0x0e)

	test.ExpectEquality(t, bitfield.Bits8(0xa5).Upper(), 0x0a)
	test.ExpectEquality(t, bitfield.Bits8(0xa5).Lower(), 0x05)
	test.ExpectEquality(t, bitfield.Join(0x0a, 0xf5), 0xa5)
	test.ExpectEquality(t, bitfield.Bit(4).Mask(), 0x10)
}

func TestBits16(t *testing.T) {
	port := bitfield.Bits16(0xf782)
	test.ExpectFailure(t, port.Bit(11))
	test.ExpectEquality(t, port.Field(8, 2), 0x03)
}
