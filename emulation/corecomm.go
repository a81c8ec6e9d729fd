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
	"fmt"
	"strconv"
	"strings"

	"github.com/jetsetilly/retrocore/curated"
	"github.com/jetsetilly/retrocore/environment"
	"github.com/jetsetilly/retrocore/prefs"
)

// FirmwareProvider supplies firmware images by system and firmware ID.
type FirmwareProvider interface {
	Firmware(systemID string, firmwareID string) ([]byte, bool)
}

// FirmwareSet is a FirmwareProvider backed by a map. The key is of the form
// "system/id".
type FirmwareSet map[string][]byte

// Add firmware to the set.
func (fs FirmwareSet) Add(systemID string, firmwareID string, data []byte) {
	fs[systemID+"/"+firmwareID] = data
}

// Firmware implements the FirmwareProvider interface.
func (fs FirmwareSet) Firmware(systemID string, firmwareID string) ([]byte, bool) {
	d, ok := fs[systemID+"/"+firmwareID]
	return d, ok
}

// CoreComm is the communication channel between a core and the host. It is
// given to the core on construction.
type CoreComm struct {
	Env      *environment.Environment
	Firmware FirmwareProvider
}

// RequireFirmware returns the firmware or a MissingFirmware error if it is
// not available or not exactly size bytes long.
func (comm CoreComm) RequireFirmware(systemID string, firmwareID string, size int) ([]byte, error) {
	if comm.Firmware == nil {
		return nil, curated.Errorf(MissingFirmware, systemID, firmwareID, "no firmware provider")
	}
	d, ok := comm.Firmware.Firmware(systemID, firmwareID)
	if !ok {
		return nil, curated.Errorf(MissingFirmware, systemID, firmwareID, "not found")
	}
	if len(d) != size {
		return nil, curated.Errorf(MissingFirmware, systemID, firmwareID,
			fmt.Sprintf("must be %d bytes (is %d bytes)", size, len(d)))
	}
	return d, nil
}

// GameInfo is the per-title information given to a core on construction.
type GameInfo struct {
	Name string
	Hash string

	// Options are per-title settings, typically from a game database. See
	// ParseGameOptions()
	Options map[string]string
}

// ParseGameOptions creates the Options map from a preferences string of the
// form "key::value; key::value".
func ParseGameOptions(s string) map[string]string {
	return prefs.ParseOptions(s)
}

// IntOption returns the named option as an integer. Values with a 0x prefix
// are treated as hexadecimal. The boolean is false if the option is missing or
// cannot be parsed.
func (gi GameInfo) IntOption(key string) (int, bool) {
	v, ok := gi.Options[key]
	if !ok {
		return 0, false
	}
	v = strings.TrimSpace(v)
	base := 10
	if strings.HasPrefix(strings.ToLower(v), "0x") {
		v = v[2:]
		base = 16
	}
	n, err := strconv.ParseInt(v, base, 64)
	if err != nil {
		return 0, false
	}
	return int(n), true
}
