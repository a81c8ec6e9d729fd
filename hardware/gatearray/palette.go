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

package gatearray

// HardwarePalette is the ARGB value of each of the 32 hardware colour
// numbers. There are only 27 distinct colours. Some numbers are duplicates.
var HardwarePalette = [32]int32{
	colour(0x6e7d6b), colour(0x6e7b6d), colour(0x00f36b), colour(0xf3f36d),
	colour(0x00026b), colour(0xf00268), colour(0x007868), colour(0xf37d6b),
	colour(0xf30268), colour(0xf3f36b), colour(0xf3f30d), colour(0xfff3f9),
	colour(0xf30506), colour(0xf302f4), colour(0xf37d0d), colour(0xfa80f9),
	colour(0x000268), colour(0x02f36b), colour(0x02f001), colour(0x0ff3f2),
	colour(0x000201), colour(0x0c02f4), colour(0x027801), colour(0x0c7bf4),
	colour(0x690268), colour(0x71f36b), colour(0x71f504), colour(0x71f3f4),
	colour(0x6c0201), colour(0x6c02f2), colour(0x6e7b01), colour(0x6e7bf6),
}

func colour(rgb uint32) int32 {
	return int32(0xff000000 | rgb)
}

// decoded pixels for each screen mode and byte value. each byte produces
// four pixels in the output buffer. in mode 0 each pixel is doubled and in
// mode 2 every other pixel is dropped
var pixelDecode [4][256][4]uint8

func init() {
	bit := func(b int, n int) uint8 {
		return uint8((b >> n) & 1)
	}

	for b := 0; b < 256; b++ {
		// mode 0. two pixels of sixteen colours
		p0 := bit(b, 7) | bit(b, 3)<<1 | bit(b, 5)<<2 | bit(b, 1)<<3
		p1 := bit(b, 6) | bit(b, 2)<<1 | bit(b, 4)<<2 | bit(b, 0)<<3
		pixelDecode[0][b] = [4]uint8{p0, p0, p1, p1}

		// mode 1. four pixels of four colours
		for n := 0; n < 4; n++ {
			pixelDecode[1][b][n] = bit(b, 7-n) | bit(b, 3-n)<<1
		}

		// mode 2. eight pixels of two colours
		for n := 0; n < 4; n++ {
			pixelDecode[2][b][n] = bit(b, 7-n*2)
		}

		// mode 3. undocumented. mode 0 timing with four colours
		pixelDecode[3][b] = [4]uint8{p0 & 3, p0 & 3, p1 & 3, p1 & 3}
	}
}
