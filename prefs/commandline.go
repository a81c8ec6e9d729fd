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

package prefs

import (
	"fmt"
	"sort"
	"strings"
)

// ParseOptions divides a preferences string into key/value pairs. The string
// is of the form:
//
//	key::value; key::value
//
// Entries that do not contain exactly one :: separator are ignored. Keys and
// values are trimmed of surrounding white space.
func ParseOptions(s string) map[string]string {
	opts := make(map[string]string)
	for _, p := range strings.Split(s, ";") {
		kv := strings.Split(p, "::")
		if len(kv) == 2 {
			k := strings.TrimSpace(kv[0])
			if k != "" {
				opts[k] = strings.TrimSpace(kv[1])
			}
		}
	}
	return opts
}

// FormatOptions is the inverse of ParseOptions(). Keys are sorted.
func FormatOptions(opts map[string]string) string {
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s::%s; ", k, opts[k]))
	}
	return strings.TrimSuffix(s.String(), "; ")
}

// CommandLine is a stack of preference groups taken from the command line.
// Values in the top group override the stored preference value when the
// preferences are applied.
type CommandLine struct {
	stack []map[string]string
}

// Size returns the number of groups that have been pushed.
func (cl *CommandLine) Size() int {
	return len(cl.stack)
}

// Push parses a preferences string and adds it as a new group.
func (cl *CommandLine) Push(s string) {
	cl.stack = append(cl.stack, ParseOptions(s))
}

// Pop forgets the most recent group added by Push(). Returns the unused
// preferences of the group as a preferences string.
func (cl *CommandLine) Pop() string {
	if len(cl.stack) == 0 {
		return ""
	}
	popped := cl.stack[len(cl.stack)-1]
	cl.stack = cl.stack[:len(cl.stack)-1]
	return FormatOptions(popped)
}

// Get value from current group. The value is deleted when it is returned.
func (cl *CommandLine) Get(key string) (string, bool) {
	if len(cl.stack) == 0 {
		return "", false
	}
	top := cl.stack[len(cl.stack)-1]
	if v, ok := top[key]; ok {
		delete(top, key)
		return v, true
	}
	return "", false
}

// Apply sets the named preferences with any matching value in the current
// group. Keys not in the prefs map are left in the group.
func (cl *CommandLine) Apply(prefs map[string]Pref) error {
	for key, p := range prefs {
		if v, ok := cl.Get(key); ok {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", key, err)
			}
		}
	}
	return nil
}
