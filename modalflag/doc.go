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

// Package modalflag wraps the flag package from the standard library so that
// a command line can be split into modes, each mode having its own flags.
//
// Arguments are supplied once with NewArgs(). Flags for the current mode are
// then added and Parse() is called. If sub-modes were listed with
// AddSubModes() the first non-flag argument selects the next mode, falling
// back to the first listed sub-mode. Calling NewMode() starts the flag set for
// the selected mode, consuming the remaining arguments on the next Parse().
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "DIGEST")
//	if r, err := md.Parse(); r != modalflag.ParseContinue {
//		return err
//	}
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		script := md.AddString("lua", "", "lua script to run")
//		...
//	}
//
// Mode names are case insensitive and are always reported in upper case.
package modalflag
