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

package modalflag

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

const modeSeparator = "/"

// ParseResult is returned by the Parse() function.
type ParseResult int

// List of valid ParseResult values.
const (
	// command line processing should continue. the Mode() function will
	// return the selected sub-mode, if any sub-modes were listed
	ParseContinue ParseResult = iota

	// help was requested and has been written to Output
	ParseHelp

	// the arguments could not be parsed. the error is returned alongside
	ParseError
)

// Modes handles the command line for a program with modes. The Output field
// should be set before calling Parse() or help messages will be lost.
type Modes struct {
	Output io.Writer

	args []string
	next int

	flags    *flag.FlagSet
	usage    bytes.Buffer
	subModes []string
	help     string

	// the first of the flag set's remaining arguments named the sub-mode
	modeArg bool

	// path is never reset
	path []string
}

func (md *Modes) String() string {
	return md.Path()
}

// NewArgs sets the arguments to be parsed and starts a new mode.
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.next = 0
	md.NewMode()
}

// NewMode starts a new set of flags and sub-modes. The next call to Parse()
// continues from where the previous call stopped.
func (md *Modes) NewMode() {
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
	md.usage.Reset()
	md.flags.SetOutput(&md.usage)
	md.subModes = md.subModes[:0]
	md.help = ""
	md.modeArg = false
}

// AdditionalHelp is printed after the flag and sub-mode information.
func (md *Modes) AdditionalHelp(help string) {
	md.help = help
}

// AddSubModes to the list of sub-modes for the next call to Parse(). The first
// sub-mode in the list is the default.
func (md *Modes) AddSubModes(subModes ...string) {
	for _, m := range subModes {
		md.subModes = append(md.subModes, strings.ToUpper(m))
	}
}

// AddDefaultSubMode puts the sub-mode at the head of the list.
func (md *Modes) AddDefaultSubMode(subMode string) {
	md.subModes = append([]string{strings.ToUpper(subMode)}, md.subModes...)
}

// Mode returns the most recently selected mode.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns every mode selected so far.
func (md *Modes) Path() string {
	return strings.Join(md.path, modeSeparator)
}

// Parse the arguments for the current mode.
func (md *Modes) Parse() (ParseResult, error) {
	md.modeArg = false
	err := md.flags.Parse(md.args[md.next:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			md.writeHelp()
			return ParseHelp, nil
		}

		// unrecognised flags belong to the default sub-mode, if there is one
		if len(md.subModes) == 0 {
			return ParseError, err
		}
		md.path = append(md.path, md.subModes[0])
		return ParseContinue, nil
	}

	if len(md.subModes) == 0 {
		return ParseContinue, nil
	}

	// flags for this mode have been consumed. the next argument may name the
	// sub-mode
	md.next = len(md.args) - md.flags.NArg()

	mode := md.subModes[0]
	arg := strings.ToUpper(md.flags.Arg(0))
	for _, m := range md.subModes {
		if m == arg {
			mode = m
			md.modeArg = true
			md.next++
			break // for loop
		}
	}
	md.path = append(md.path, mode)

	return ParseContinue, nil
}

func (md *Modes) writeHelp() {
	if md.Output == nil {
		return
	}

	// the flag package writes a "Usage:" line followed by the defaults
	md.usage.Reset()
	md.flags.PrintDefaults()
	defaults := md.usage.String()

	if defaults == "" && len(md.subModes) == 0 {
		if md.Path() == "" {
			fmt.Fprintln(md.Output, "No help available")
		} else {
			fmt.Fprintf(md.Output, "No help available for %s\n", md.Path())
		}
		return
	}

	if md.Path() == "" {
		fmt.Fprintln(md.Output, "Usage:")
	} else {
		fmt.Fprintf(md.Output, "Usage for %s mode\n", md.Path())
	}
	io.WriteString(md.Output, defaults)

	if len(md.subModes) > 0 {
		if defaults != "" {
			fmt.Fprintln(md.Output)
		}
		fmt.Fprintf(md.Output, "  available sub-modes: %s\n", strings.Join(md.subModes, ", "))
		fmt.Fprintf(md.Output, "    default: %s\n", md.subModes[0])
	}

	if md.help != "" {
		fmt.Fprintf(md.Output, "\n%s\n", md.help)
	}
}

// RemainingArgs returns the arguments that are not flags or a sub-mode.
func (md *Modes) RemainingArgs() []string {
	args := md.flags.Args()
	if md.modeArg && len(args) > 0 {
		return args[1:]
	}
	return args
}

// GetArg returns the numbered argument from RemainingArgs(). Returns the empty
// string if there is no such argument.
func (md *Modes) GetArg(i int) string {
	args := md.RemainingArgs()
	if i < 0 || i >= len(args) {
		return ""
	}
	return args[i]
}

// AddBool flag for the next call to Parse().
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddInt flag for the next call to Parse().
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// AddString flag for the next call to Parse().
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}

// AddFloat64 flag for the next call to Parse().
func (md *Modes) AddFloat64(name string, value float64, usage string) *float64 {
	return md.flags.Float64(name, value, usage)
}

// Visit calls fn for every flag that has been set, in lexicographical order.
func (md *Modes) Visit(fn func(flag string)) {
	md.flags.Visit(func(f *flag.Flag) {
		fn(f.Name)
	})
}
