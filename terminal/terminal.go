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

// Package terminal reads keypresses from the controlling terminal and gives
// them to an emulator as controller input.
//
// The terminal is put into raw mode by Start() and must be restored with
// Stop(). Pressing ctrl-c does not send a signal in raw mode. Instead,
// Keyboard.Quit() will return true.
package terminal

import (
	"os"

	"github.com/jetsetilly/retrocore/curated"
	"golang.org/x/term"
)

// Sentinal error patterns.
const (
	NotATerminal  = "terminal: input is not a terminal"
	TerminalError = "terminal: %v"
)

// Terminal is the controlling terminal.
type Terminal struct {
	input *os.File
	fd    int
	state *term.State
}

// Start puts the terminal into raw mode and begins feeding input to the
// keyboard. Input is read in a separate goroutine that runs until the input
// is closed.
func Start(input *os.File, kb *Keyboard) (*Terminal, error) {
	fd := int(input.Fd())
	if !term.IsTerminal(fd) {
		return nil, curated.Errorf(NotATerminal)
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, curated.Errorf(TerminalError, err)
	}

	go func() {
		buf := make([]byte, 16)
		for {
			n, err := input.Read(buf)
			for _, b := range buf[:n] {
				kb.Feed(b)
			}
			if err != nil {
				return
			}
		}
	}()

	return &Terminal{
		input: input,
		fd:    fd,
		state: state,
	}, nil
}

// Stop restores the terminal to the mode it was in before Start() was called.
// Unread input is discarded.
func (t *Terminal) Stop() error {
	if t.state == nil {
		return nil
	}
	flush(t.input)
	err := term.Restore(t.fd, t.state)
	t.state = nil
	if err != nil {
		return curated.Errorf(TerminalError, err)
	}
	return nil
}

// Width returns the width of the terminal in characters. Returns 80 if the
// width cannot be determined.
func (t *Terminal) Width() int {
	w, _, err := term.GetSize(t.fd)
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
