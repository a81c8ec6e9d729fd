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

// Package version reports the version of the program. The release number is
// set by the linker and the revision comes from the build information that
// the Go toolchain embeds in the binary.
//
//	go build -ldflags "-X github.com/jetsetilly/retrocore/version.number=v0.1.0"
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name used when referring to the program.
const ApplicationName = "Retrocore"

// set by the linker
var number string

// Info describes the build of the program.
type Info struct {
	// the release number. "unreleased" if the program was built from a
	// repository without a release number and "local" if there is no version
	// control information at all
	Version string

	// the vcs revision suffixed with "+dirty" if the source was modified
	Revision string

	// Release is true if Version is a release number
	Release bool

	// the version of the Go toolchain used to build the program
	GoVersion string
}

func (inf Info) String() string {
	if inf.Release {
		return fmt.Sprintf("%s %s", ApplicationName, inf.Version)
	}
	return fmt.Sprintf("%s %s (%s) %s", ApplicationName, inf.Version, inf.Revision, inf.GoVersion)
}

// Version returns information about the build.
func Version() Info {
	return info(number, debug.ReadBuildInfo)
}

func info(number string, read func() (*debug.BuildInfo, bool)) Info {
	inf := Info{
		Version:  number,
		Revision: "no revision information",
		Release:  number != "",
	}

	var vcs bool
	if bi, ok := read(); ok {
		inf.GoVersion = bi.GoVersion

		var modified bool
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				inf.Revision = s.Value
			case "vcs.modified":
				modified = s.Value == "true"
			}
		}
		if modified {
			inf.Revision = fmt.Sprintf("%s+dirty", inf.Revision)
		}
	}

	if inf.Version == "" {
		if vcs {
			inf.Version = "unreleased"
		} else {
			inf.Version = "local"
		}
	}

	return inf
}
