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

package keyboard_test

import (
	"bytes"
	"testing"

	"github.com/jetsetilly/retrocore/emulation"
	"github.com/jetsetilly/retrocore/hardware/keyboard"
	"github.com/jetsetilly/retrocore/savestate"
	"github.com/jetsetilly/retrocore/test"
)

func TestDefinition(t *testing.T) {
	test.ExpectSuccess(t, keyboard.Definition.Has("Key Space"))
	test.ExpectSuccess(t, keyboard.Definition.Has("P1 Fire 1"))
	test.ExpectSuccess(t, keyboard.Definition.Has("Reset"))
	test.ExpectFailure(t, keyboard.Definition.Has(""))

	// every connected position in the matrix and reset
	test.ExpectEquality(t, len(keyboard.Definition.BoolButtons), 80)
}

func TestMatrix(t *testing.T) {
	kb := keyboard.NewKeyboard()

	var polls int
	kb.Plumb(func() { polls++ })

	kb.Update(emulation.Buttons{"Key Space": true, "Key A": true, "P1 Fire 1": true})

	kb.SelectLine(5)
	test.ExpectEquality(t, kb.ReadIOPort(), 0x7f)
	kb.SelectLine(8)
	test.ExpectEquality(t, kb.ReadIOPort(), 0xdf)
	kb.SelectLine(9)
	test.ExpectEquality(t, kb.ReadIOPort(), 0xdf)
	kb.SelectLine(0)
	test.ExpectEquality(t, kb.ReadIOPort(), 0xff)

	// lines 10 to 15 are not connected
	kb.SelectLine(12)
	test.ExpectEquality(t, kb.ReadIOPort(), 0xff)

	test.ExpectEquality(t, polls, 5)

	// releasing keys
	kb.Update(emulation.NoInput)
	test.ExpectEquality(t, kb.Line(5), 0xff)
}

func TestSyncState(t *testing.T) {
	kb := keyboard.NewKeyboard()
	kb.Update(emulation.Buttons{"Key Z": true})
	kb.SelectLine(8)

	var b bytes.Buffer
	s := savestate.NewWriter(&b)
	kb.SyncState(s)
	test.ExpectSuccess(t, s.Err())
	test.ExpectEquality(t, b.Len(), keyboard.NumLines+1)

	kc := keyboard.NewKeyboard()
	r := savestate.NewReader(bytes.NewReader(b.Bytes()))
	kc.SyncState(r)
	test.ExpectSuccess(t, r.Err())
	test.ExpectEquality(t, kc.String(), kb.String())
	test.ExpectEquality(t, kc.ReadIOPort(), 0x7f)
}
