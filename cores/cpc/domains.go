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

import (
	"github.com/jetsetilly/retrocore/hardware/crtc"
	"github.com/jetsetilly/retrocore/hardware/psg"
	"github.com/jetsetilly/retrocore/memorydomains"
)

// Memory domain names.
const (
	DomainRAM       = "Main RAM"
	DomainLowerROM  = "Lower ROM"
	DomainUpperROM  = "Upper ROM"
	DomainSystemBus = "System Bus"
	DomainPSG       = "PSG Registers"
	DomainCRTC      = "CRTC Registers"
)

func (c *CPC) newDomains() (*memorydomains.Registry, error) {
	return memorydomains.NewRegistry(DomainRAM,
		memorydomains.NewSliceDomain(DomainRAM, c.ram[:], true),
		memorydomains.NewSliceDomain(DomainLowerROM, c.lower, false),
		memorydomains.NewSliceDomain(DomainUpperROM, c.upper, false),
		memorydomains.NewFuncDomain(DomainSystemBus, len(c.ram),
			func(addr int) uint8 {
				return c.peek(uint16(addr))
			},
			func(addr int, data uint8) {
				c.ram[addr] = data
			}),
		memorydomains.NewFuncDomain(DomainPSG, psg.NumRegisters,
			func(addr int) uint8 {
				return c.psg.PeekRegister(uint8(addr))
			},
			func(addr int, data uint8) {
				c.psg.WriteRegister(uint8(addr), data)
			}),
		memorydomains.NewFuncDomain(DomainCRTC, crtc.NumRegisters,
			func(addr int) uint8 {
				return c.crtc.PeekRegister(uint8(addr))
			},
			func(addr int, data uint8) {
				c.crtc.WriteRegister(uint8(addr), data)
			}),
	)
}
