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

package tools

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jetsetilly/retrocore/curated"
	"github.com/jetsetilly/retrocore/emulation"
	"github.com/jetsetilly/retrocore/environment"
	"github.com/jetsetilly/retrocore/logger"
)

// Cheat freezes the value of an address in a memory domain.
type Cheat struct {
	Name    string
	Domain  string
	Address int
	Value   uint8

	// the cheat is only applied when the current value matches the compare
	// value
	HasCompare bool
	Compare    uint8

	Enabled bool
}

func (ch Cheat) String() string {
	s := fmt.Sprintf("%s %#04x=%#02x", ch.Domain, ch.Address, ch.Value)
	if ch.HasCompare {
		s = fmt.Sprintf("%s (if %#02x)", s, ch.Compare)
	}
	if !ch.Enabled {
		s = fmt.Sprintf("%s [disabled]", s)
	}
	return s
}

// CheatList is the list of cheats for an emulator. It implements the
// scheduler.Observer interface.
type CheatList struct {
	env    *environment.Environment
	cheats []Cheat

	// cheats with a domain that doesn't exist in the emulator are only
	// reported once
	reported map[string]bool

	// Changed is true if the list has been changed since the last Save()
	// or Load()
	Changed bool
}

// NewCheatList is the preferred method of initialisation for the CheatList
// type.
func NewCheatList(env *environment.Environment) *CheatList {
	return &CheatList{
		env:      env,
		reported: make(map[string]bool),
	}
}

// Add a cheat. A cheat for the same domain and address is replaced.
func (cl *CheatList) Add(ch Cheat) {
	cl.Changed = true
	for i := range cl.cheats {
		if cl.cheats[i].Domain == ch.Domain && cl.cheats[i].Address == ch.Address {
			cl.cheats[i] = ch
			return
		}
	}
	cl.cheats = append(cl.cheats, ch)
}

// Remove the cheat for the domain and address. Returns false if there is no
// such cheat.
func (cl *CheatList) Remove(domain string, address int) bool {
	for i := range cl.cheats {
		if cl.cheats[i].Domain == domain && cl.cheats[i].Address == address {
			cl.cheats = append(cl.cheats[:i], cl.cheats[i+1:]...)
			cl.Changed = true
			return true
		}
	}
	return false
}

// Clear removes all cheats.
func (cl *CheatList) Clear() {
	cl.cheats = cl.cheats[:0]
	cl.reported = make(map[string]bool)
	cl.Changed = false
}

// DisableAll disables every cheat without removing it from the list.
func (cl *CheatList) DisableAll() {
	for i := range cl.cheats {
		if cl.cheats[i].Enabled {
			cl.cheats[i].Enabled = false
			cl.Changed = true
		}
	}
}

// Cheats returns a copy of the list.
func (cl *CheatList) Cheats() []Cheat {
	return append([]Cheat{}, cl.cheats...)
}

// Len returns the number of cheats in the list.
func (cl *CheatList) Len() int {
	return len(cl.cheats)
}

// ActiveCount returns the number of enabled cheats.
func (cl *CheatList) ActiveCount() int {
	n := 0
	for _, ch := range cl.cheats {
		if ch.Enabled {
			n++
		}
	}
	return n
}

// IsFrozen returns true if there is an enabled cheat for the domain and
// address.
func (cl *CheatList) IsFrozen(domain string, address int) bool {
	for _, ch := range cl.cheats {
		if ch.Enabled && ch.Domain == domain && ch.Address == address {
			return true
		}
	}
	return false
}

// EndFrame implements the scheduler.Observer interface. Every enabled cheat
// is written to its memory domain.
func (cl *CheatList) EndFrame(emu emulation.Emulator) error {
	if cl.ActiveCount() == 0 {
		return nil
	}

	reg, ok := emu.ServiceProvider().MemoryDomains()
	if !ok {
		return nil
	}

	for _, ch := range cl.cheats {
		if !ch.Enabled {
			continue
		}

		d, ok := reg.Find(ch.Domain)
		if !ok {
			if !cl.reported[ch.Domain] {
				logger.Logf(cl.env, logTag, "cheat domain %s does not exist", ch.Domain)
				cl.reported[ch.Domain] = true
			}
			continue
		}

		if ch.HasCompare {
			v, err := d.Peek(ch.Address)
			if err != nil || v != ch.Compare {
				continue
			}
		}

		if err := d.Poke(ch.Address, ch.Value); err != nil {
			return curated.Errorf(ToolsError, err)
		}
	}

	return nil
}

// cheat file format
// -----------------
//
// one cheat per line. fields are separated by a tab character
//
// <address> <value> <compare> <domain> <enabled> <name>
//
// address, value and compare are hexadecimal. compare is "N" if the cheat has
// no compare value. enabled is 0 or 1. blank lines are ignored

const noCompare = "N"

// Save writes the list to the writer.
func (cl *CheatList) Save(w io.Writer) error {
	for _, ch := range cl.cheats {
		cmp := noCompare
		if ch.HasCompare {
			cmp = fmt.Sprintf("%02X", ch.Compare)
		}
		en := 0
		if ch.Enabled {
			en = 1
		}
		_, err := fmt.Fprintf(w, "%04X\t%02X\t%s\t%s\t%d\t%s\n", ch.Address, ch.Value, cmp, ch.Domain, en, ch.Name)
		if err != nil {
			return curated.Errorf(ToolsError, err)
		}
	}
	cl.Changed = false
	return nil
}

// Load replaces the list with the cheats read from the reader. The list is
// unchanged if there is an error.
func (cl *CheatList) Load(r io.Reader) error {
	var cheats []Cheat

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}

		toks := strings.SplitN(scanner.Text(), "\t", 6)
		if len(toks) < 5 {
			return curated.Errorf(ToolsError, fmt.Sprintf("too few fields in cheat file at line %d", line))
		}

		var ch Cheat
		addr, err := strconv.ParseUint(toks[0], 16, 32)
		if err != nil {
			return curated.Errorf(ToolsError, fmt.Sprintf("bad address in cheat file at line %d", line))
		}
		ch.Address = int(addr)

		v, err := strconv.ParseUint(toks[1], 16, 8)
		if err != nil {
			return curated.Errorf(ToolsError, fmt.Sprintf("bad value in cheat file at line %d", line))
		}
		ch.Value = uint8(v)

		if toks[2] != noCompare {
			v, err := strconv.ParseUint(toks[2], 16, 8)
			if err != nil {
				return curated.Errorf(ToolsError, fmt.Sprintf("bad compare value in cheat file at line %d", line))
			}
			ch.HasCompare = true
			ch.Compare = uint8(v)
		}

		ch.Domain = toks[3]
		ch.Enabled = toks[4] == "1"
		if len(toks) == 6 {
			ch.Name = toks[5]
		}

		cheats = append(cheats, ch)
	}
	if err := scanner.Err(); err != nil {
		return curated.Errorf(ToolsError, err)
	}

	cl.cheats = cheats
	cl.reported = make(map[string]bool)
	cl.Changed = false

	return nil
}
