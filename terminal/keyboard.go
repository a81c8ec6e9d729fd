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

package terminal

import (
	"sync"

	"github.com/jetsetilly/retrocore/emulation"
)

// KeyMap maps bytes read from the terminal to the buttons of an emulator's
// controller definition. More than one button can be pressed for a byte.
type KeyMap map[byte][]string

// CPCKeyMap maps terminal input to the keys of the Amstrad CPC.
var CPCKeyMap = func() KeyMap {
	km := KeyMap{
		' ':  {"Key Space"},
		'\r': {"Key Return"},
		'\n': {"Key Return"},
		0x7f: {"Key Del"},
		0x08: {"Key Del"},
		0x1b: {"Key Esc"},
		'\t': {"Key Tab"},
		',':  {"Key ,"},
		'.':  {"Key ."},
		'/':  {"Key /"},
		';':  {"Key ;"},
		':':  {"Key :"},
		'-':  {"Key -"},
		'@':  {"Key @"},
		'[':  {"Key ["},
		']':  {"Key ]"},
		'^':  {"Key ^"},
		'\\': {"Key \\"},
		'"':  {"Key Shift", "Key 2"},
		'!':  {"Key Shift", "Key 1"},
		'(':  {"Key Shift", "Key 8"},
		')':  {"Key Shift", "Key 9"},
		'=':  {"Key Shift", "Key -"},
		'+':  {"Key Shift", "Key ;"},
		'*':  {"Key Shift", "Key :"},
		'?':  {"Key Shift", "Key /"},
	}
	for c := byte('a'); c <= 'z'; c++ {
		k := "Key " + string(rune(c-'a'+'A'))
		km[c] = []string{k}
		km[c-'a'+'A'] = []string{"Key Shift", k}
	}
	for c := byte('0'); c <= '9'; c++ {
		km[c] = []string{"Key " + string(rune(c))}
	}
	return km
}()

// the byte read from the terminal when ctrl-c is pressed in raw mode
const interrupt = 0x03

// Keyboard turns bytes read from the terminal into key presses. It implements
// the emulation.Controller and scheduler.Observer interfaces.
//
// A terminal does not report when a key is released so every key is held for
// a fixed number of frames and then released for the same number of frames
// before the next key is pressed.
type Keyboard struct {
	keymap KeyMap
	hold   int

	crit  sync.Mutex
	queue []byte
	quit  bool

	// bytes that are not passed to the emulator. they are collected by
	// Hotkey() in the emulation goroutine
	hotkeys map[byte]bool
	hot     []byte

	// the buttons being held and the number of frames they remain held for
	held      []string
	countdown int

	// number of frames remaining before the next key can be pressed
	gap int
}

// NewKeyboard is the preferred method of initialisation for the Keyboard
// type. The hold argument is the number of frames each key is held for.
func NewKeyboard(keymap KeyMap, hold int) *Keyboard {
	return &Keyboard{
		keymap: keymap,
		hold:   max(1, hold),
	}
}

// Feed a byte read from the terminal. Bytes that are not in the keymap are
// ignored. Safe to call from any goroutine.
func (kb *Keyboard) Feed(b byte) {
	kb.crit.Lock()
	defer kb.crit.Unlock()

	if b == interrupt {
		kb.quit = true
		return
	}
	if kb.hotkeys[b] {
		kb.hot = append(kb.hot, b)
		return
	}
	if _, ok := kb.keymap[b]; ok {
		kb.queue = append(kb.queue, b)
	}
}

// SetHotkeys nominates bytes that are to be returned by Hotkey() rather than
// pressed on the emulated keyboard.
func (kb *Keyboard) SetHotkeys(keys ...byte) {
	kb.crit.Lock()
	defer kb.crit.Unlock()

	kb.hotkeys = make(map[byte]bool)
	for _, k := range keys {
		kb.hotkeys[k] = true
	}
}

// Hotkey returns the oldest hotkey that has not yet been collected.
func (kb *Keyboard) Hotkey() (byte, bool) {
	kb.crit.Lock()
	defer kb.crit.Unlock()

	if len(kb.hot) == 0 {
		return 0, false
	}
	b := kb.hot[0]
	kb.hot = kb.hot[1:]
	return b, true
}

// Quit returns true if the user has pressed ctrl-c.
func (kb *Keyboard) Quit() bool {
	kb.crit.Lock()
	defer kb.crit.Unlock()
	return kb.quit
}

// Pending returns the number of bytes waiting to be pressed.
func (kb *Keyboard) Pending() int {
	kb.crit.Lock()
	defer kb.crit.Unlock()
	return len(kb.queue)
}

// IsPressed implements the emulation.Controller interface.
func (kb *Keyboard) IsPressed(button string) bool {
	for _, b := range kb.held {
		if b == button {
			return true
		}
	}
	return false
}

// StartFrame implements the scheduler.Preparer interface.
func (kb *Keyboard) StartFrame(emu emulation.Emulator) error {
	if len(kb.held) > 0 || kb.gap > 0 {
		return nil
	}

	kb.crit.Lock()
	defer kb.crit.Unlock()

	if len(kb.queue) > 0 {
		kb.held = kb.keymap[kb.queue[0]]
		kb.queue = kb.queue[1:]
		kb.countdown = kb.hold
	}

	return nil
}

// EndFrame implements the scheduler.Observer interface.
func (kb *Keyboard) EndFrame(emu emulation.Emulator) error {
	if len(kb.held) > 0 {
		kb.countdown--
		if kb.countdown <= 0 {
			kb.held = nil
			kb.gap = kb.hold
		}
	} else if kb.gap > 0 {
		kb.gap--
	}
	return nil
}
