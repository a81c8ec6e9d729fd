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

package luascript

import (
	"github.com/jetsetilly/retrocore/memorydomains"
	lua "github.com/yuin/gopher-lua"
)

func (scr *Script) registry(L *lua.LState) *memorydomains.Registry {
	reg, ok := scr.emu.ServiceProvider().MemoryDomains()
	if !ok {
		L.RaiseError("%s core has no memory domains", scr.emu.SystemID())
	}
	return reg
}

// domainArg returns the domain named by the optional argument n or the
// current domain if the argument is missing.
func (scr *Script) domainArg(L *lua.LState, n int) *memorydomains.Domain {
	reg := scr.registry(L)

	name := L.OptString(n, "")
	if name == "" {
		return scr.domain
	}

	d, ok := reg.Find(name)
	if !ok {
		L.ArgError(n, "unknown memory domain: "+name)
	}
	return d
}

func (scr *Script) readbyte(L *lua.LState) int {
	addr := L.CheckInt(1)
	d := scr.domainArg(L, 2)
	v, err := d.Peek(addr)
	if err != nil {
		L.RaiseError("%v", err)
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (scr *Script) writebyte(L *lua.LState) int {
	addr := L.CheckInt(1)
	v := L.CheckInt(2)
	d := scr.domainArg(L, 3)
	if err := d.Poke(addr, uint8(v)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (scr *Script) getmemorydomainlist(L *lua.LState) int {
	reg := scr.registry(L)
	tbl := L.NewTable()
	for i, n := range reg.Names() {
		L.RawSetInt(tbl, i+1, lua.LString(n))
	}
	L.Push(tbl)
	return 1
}

func (scr *Script) getmemorydomainsize(L *lua.LState) int {
	d := scr.domainArg(L, 1)
	L.Push(lua.LNumber(d.Size))
	return 1
}

func (scr *Script) getcurrentmemorydomain(L *lua.LState) int {
	scr.registry(L)
	L.Push(lua.LString(scr.domain.Name))
	return 1
}

func (scr *Script) usememorydomain(L *lua.LState) int {
	reg := scr.registry(L)
	d, ok := reg.Find(L.CheckString(1))
	if ok {
		scr.domain = d
	}
	L.Push(lua.LBool(ok))
	return 1
}
