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

// Package luascript runs Lua scripts alongside an emulation core. Scripts can
// inspect the frame counters of the core and read and write its memory
// domains.
//
// The following functions are available to scripts:
//
//	emu.framecount()
//	emu.lagcount()
//	emu.islagged()
//	emu.getsystemid()
//
//	memory.readbyte(addr [, domain])
//	memory.writebyte(addr, value [, domain])
//	memory.getmemorydomainlist()
//	memory.getmemorydomainsize([domain])
//	memory.getcurrentmemorydomain()
//	memory.usememorydomain(domain)
//
//	event.onframeend(fn [, name])
//	event.unregisterbyname(name)
//
// Memory functions use the current memory domain if no domain is specified.
// The current domain is the main memory of the core until changed with
// usememorydomain().
//
// The Script type implements the scheduler.Observer interface. Functions
// registered with event.onframeend() are called at the end of every frame.
package luascript
