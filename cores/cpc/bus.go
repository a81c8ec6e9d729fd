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

package cpc

// bus implements the go-chip-z80 Bus interface.
//
// CPC memory map:
//
//	0x0000-0x3fff  RAM or lower ROM (operating system)
//	0x4000-0xbfff  RAM
//	0xc000-0xffff  RAM or upper ROM (BASIC)
//
// Writes always go to RAM, even when a ROM is paged in for reading.
//
// I/O ports are partially decoded and more than one device can respond to
// the same port. Each device is offered every access.
type bus struct {
	c *CPC
}

func (b *bus) Fetch(addr uint16) uint8 {
	return b.Read(addr)
}

func (b *bus) Read(addr uint16) uint8 {
	return b.c.peek(addr)
}

func (b *bus) Write(addr uint16, val uint8) {
	b.c.ram[addr] = val
}

func (b *bus) In(port uint16) uint8 {
	v := uint8(0xff)
	if d, ok := b.c.crtc.ReadPort(port); ok {
		v &= d
	}
	if d, ok := b.c.ppi.ReadPort(port); ok {
		v &= d
	}
	return v
}

func (b *bus) Out(port uint16, val uint8) {
	b.c.ga.WritePort(port, val)
	b.c.crtc.WritePort(port, val)
	b.c.ppi.WritePort(port, val)
}

// peek reads memory as the CPU sees it. there are no side effects
func (c *CPC) peek(addr uint16) uint8 {
	switch {
	case addr < 0x4000 && c.ga.LowerROM():
		return c.lower[addr]
	case addr >= 0xc000 && c.ga.UpperROM():
		return c.upper[addr-0xc000]
	}
	return c.ram[addr]
}
