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

package lynx

import (
	"encoding/binary"
	"strings"

	"github.com/jetsetilly/retrocore/curated"
	"github.com/jetsetilly/retrocore/emulation"
)

const headerSize = 64

// Header is the information in a Handy format cartridge header.
type Header struct {
	PageSize0    int
	PageSize1    int
	Version      int
	Name         string
	Manufacturer string
	Rotation     int
}

// Cartridge is a program image with the header removed and the bank sizes
// decided.
type Cartridge struct {
	Data      []byte
	PageSize0 int
	PageSize1 int

	// nil if the image had no header
	Header *Header
}

// bank sizes for headerless images, by image size
var bankSizes = map[int][2]int{
	0x10000:  {0x100, 0},
	0x20000:  {0x200, 0},
	0x40000:  {0x400, 0},
	0x80000:  {0x800, 0},
	0x30000:  {0x200, 0x100},
	0x60000:  {0x400, 0x200},
	0xc0000:  {0x800, 0x400},
	0x100000: {0x800, 0x800},
}

func cstring(b []byte) string {
	if i := strings.IndexByte(string(b), 0); i >= 0 {
		b = b[:i]
	}
	return strings.TrimSpace(string(b))
}

// ParseHeader returns the header of the image. The boolean is false if the
// image does not have a version 1 Handy header.
func ParseHeader(image []byte) (Header, bool) {
	if len(image) < headerSize || string(image[:4]) != "LYNX" {
		return Header{}, false
	}
	h := Header{
		PageSize0:    int(binary.LittleEndian.Uint16(image[4:])),
		PageSize1:    int(binary.LittleEndian.Uint16(image[6:])),
		Version:      int(binary.LittleEndian.Uint16(image[8:])),
		Name:         cstring(image[10:42]),
		Manufacturer: cstring(image[42:58]),
		Rotation:     int(image[58]),
	}
	if h.Version&0xff != 1 {
		return Header{}, false
	}
	return h, true
}

// PrepareCartridge strips the header from the image and decides the bank
// sizes. The order of precedence for the bank sizes is: the game options
// pagesize0 and pagesize1, the header and finally a guess based on the size
// of the image.
func PrepareCartridge(image []byte, game emulation.GameInfo) (Cartridge, error) {
	var cart Cartridge

	if len(image) >= 10 && string(image[6:10]) == "BS93" {
		return cart, curated.Errorf(emulation.UnsupportedImage, "BS93 Lynx RAM image")
	}

	if h, ok := ParseHeader(image); ok {
		cart.Header = &h
		cart.Data = image[headerSize:]
		cart.PageSize0 = h.PageSize0
		cart.PageSize1 = h.PageSize1
	} else {
		cart.Data = image
	}

	if p0, ok := game.IntOption("pagesize0"); ok {
		cart.PageSize0 = p0
		cart.PageSize1, _ = game.IntOption("pagesize1")
	}

	if cart.PageSize0 == 0 && cart.PageSize1 == 0 {
		if b, ok := bankSizes[len(cart.Data)]; ok {
			cart.PageSize0 = b[0]
			cart.PageSize1 = b[1]
		}
	}

	return cart, nil
}
