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

package imageloader

import (
	"path"
	"strings"

	"github.com/jetsetilly/retrocore/cores/cpc"
	"github.com/jetsetilly/retrocore/cores/gpgx"
	"github.com/jetsetilly/retrocore/cores/lynx"
)

// FileExtensions maps the file extensions recognised by the imageloader
// package to the system ID of the core that will accept the image.
var FileExtensions = map[string]string{
	".WAV": cpc.SystemID,
	".MP3": cpc.SystemID,
	".CDT": cpc.SystemID,
	".TZX": cpc.SystemID,
	".SNA": cpc.SystemID,
	".LNX": lynx.SystemID,
	".LYX": lynx.SystemID,
	".O":   lynx.SystemID,
	".MD":  gpgx.SystemID,
	".GEN": gpgx.SystemID,
	".SMD": gpgx.SystemID,
	".BIN": gpgx.SystemID,
}

// systemFromFilename returns the system ID for the filename extension. The
// empty string is returned if the extension is not recognised.
func systemFromFilename(filename string) string {
	return FileExtensions[strings.ToUpper(path.Ext(filename))]
}

func isImageFile(filename string) bool {
	return systemFromFilename(filename) != ""
}
