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

package emulation

import (
	"sort"
	"strings"
)

// ControllerDefinition lists the buttons understood by a core.
type ControllerDefinition struct {
	Name        string
	BoolButtons []string
}

// Has returns true if the button is in the definition.
func (def ControllerDefinition) Has(button string) bool {
	for _, b := range def.BoolButtons {
		if b == button {
			return true
		}
	}
	return false
}

// Controller is the source of input for a core. The core asks the controller
// for the state of a button at the moment it needs it.
type Controller interface {
	IsPressed(button string) bool
}

// Buttons is a simple Controller implementation. A button is pressed if it is
// in the map with a value of true.
type Buttons map[string]bool

// IsPressed implements the Controller interface.
func (b Buttons) IsPressed(button string) bool {
	return b[button]
}

// Pressed returns the names of all pressed buttons in alphabetical order.
func (b Buttons) Pressed() []string {
	var p []string
	for k, v := range b {
		if v {
			p = append(p, k)
		}
	}
	sort.Strings(p)
	return p
}

// String returns the pressed buttons as a | separated list.
func (b Buttons) String() string {
	return strings.Join(b.Pressed(), "|")
}

// NoInput is a controller with no buttons pressed.
var NoInput Controller = Buttons(nil)
