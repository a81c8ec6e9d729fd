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
	"fmt"
	"io"
	"strings"

	"github.com/jetsetilly/retrocore/curated"
	"github.com/jetsetilly/retrocore/emulation"
	"github.com/jetsetilly/retrocore/environment"
	"github.com/jetsetilly/retrocore/logger"
	"github.com/jetsetilly/retrocore/memorydomains"
	lua "github.com/yuin/gopher-lua"
)

// Sentinal error patterns.
const (
	ScriptError = "luascript: %v"
	EventError  = "luascript: %s: %v"
)

const logTag = "luascript"

type callback struct {
	name string
	fn   *lua.LFunction
}

// Script is a Lua script attached to an emulator.
type Script struct {
	env    *environment.Environment
	emu    emulation.Emulator
	output io.Writer

	L *lua.LState

	// the domain used by memory functions when no domain is specified. nil
	// if the emulator has no memory domains
	domain *memorydomains.Domain

	frameEnd []callback
	nextID   int
}

// NewScript is the preferred method of initialisation for the Script type.
// Output from the Lua print() function is written to output.
func NewScript(env *environment.Environment, emu emulation.Emulator, output io.Writer) *Script {
	scr := &Script{
		env:    env,
		emu:    emu,
		output: output,
		L:      lua.NewState(),
	}

	if reg, ok := emu.ServiceProvider().MemoryDomains(); ok {
		scr.domain = reg.MainMemory()
	}

	scr.L.SetGlobal("print", scr.L.NewFunction(scr.print))
	scr.L.SetGlobal("emu", scr.L.SetFuncs(scr.L.NewTable(), map[string]lua.LGFunction{
		"framecount":  scr.framecount,
		"lagcount":    scr.lagcount,
		"islagged":    scr.islagged,
		"getsystemid": scr.getsystemid,
	}))
	scr.L.SetGlobal("memory", scr.L.SetFuncs(scr.L.NewTable(), map[string]lua.LGFunction{
		"readbyte":               scr.readbyte,
		"writebyte":              scr.writebyte,
		"getmemorydomainlist":    scr.getmemorydomainlist,
		"getmemorydomainsize":    scr.getmemorydomainsize,
		"getcurrentmemorydomain": scr.getcurrentmemorydomain,
		"usememorydomain":        scr.usememorydomain,
	}))
	scr.L.SetGlobal("event", scr.L.SetFuncs(scr.L.NewTable(), map[string]lua.LGFunction{
		"onframeend":       scr.onframeend,
		"unregisterbyname": scr.unregisterbyname,
	}))

	return scr
}

// Run the Lua source. The script will usually register functions with
// event.onframeend() to be called on every frame.
func (scr *Script) Run(source string) error {
	if err := scr.L.DoString(source); err != nil {
		return curated.Errorf(ScriptError, err)
	}
	return nil
}

// RunFile runs the Lua source in the file.
func (scr *Script) RunFile(filename string) error {
	if err := scr.L.DoFile(filename); err != nil {
		return curated.Errorf(ScriptError, err)
	}
	logger.Logf(scr.env, logTag, "running %s", filename)
	return nil
}

// Close the script. The Script instance should not be used after closing.
func (scr *Script) Close() {
	scr.L.Close()
}

// EndFrame implements the scheduler.Observer interface.
func (scr *Script) EndFrame(emu emulation.Emulator) error {
	// callbacks can be unregistered by other callbacks
	cbs := append([]callback{}, scr.frameEnd...)
	for _, cb := range cbs {
		err := scr.L.CallByParam(lua.P{
			Fn:      cb.fn,
			NRet:    0,
			Protect: true,
		})
		if err != nil {
			return curated.Errorf(EventError, cb.name, err)
		}
	}
	return nil
}

// Callbacks returns the names of the functions registered with
// event.onframeend().
func (scr *Script) Callbacks() []string {
	n := make([]string, 0, len(scr.frameEnd))
	for _, cb := range scr.frameEnd {
		n = append(n, cb.name)
	}
	return n
}

func (scr *Script) print(L *lua.LState) int {
	s := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		s = append(s, L.Get(i).String())
	}
	if scr.output != nil {
		fmt.Fprintln(scr.output, strings.Join(s, " "))
	}
	return 0
}

func (scr *Script) framecount(L *lua.LState) int {
	L.Push(lua.LNumber(scr.emu.Frame()))
	return 1
}

func (scr *Script) lagcount(L *lua.LState) int {
	L.Push(lua.LNumber(scr.emu.LagCount()))
	return 1
}

func (scr *Script) islagged(L *lua.LState) int {
	L.Push(lua.LBool(scr.emu.IsLagFrame()))
	return 1
}

func (scr *Script) getsystemid(L *lua.LState) int {
	L.Push(lua.LString(scr.emu.SystemID()))
	return 1
}

func (scr *Script) onframeend(L *lua.LState) int {
	fn := L.CheckFunction(1)
	scr.nextID++
	name := L.OptString(2, fmt.Sprintf("onframeend%d", scr.nextID))
	scr.frameEnd = append(scr.frameEnd, callback{name: name, fn: fn})
	L.Push(lua.LString(name))
	return 1
}

func (scr *Script) unregisterbyname(L *lua.LState) int {
	name := L.CheckString(1)
	for i := range scr.frameEnd {
		if scr.frameEnd[i].name == name {
			scr.frameEnd = append(scr.frameEnd[:i], scr.frameEnd[i+1:]...)
			L.Push(lua.LTrue)
			return 1
		}
	}
	L.Push(lua.LFalse)
	return 1
}
