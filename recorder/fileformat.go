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

package recorder

import (
	"fmt"
	"io"
	"strings"

	"github.com/jetsetilly/retrocore/curated"
)

// Sentinal error patterns.
const (
	RecordingError    = "recording: %v"
	PlaybackError     = "playback: %v"
	PlaybackHashError = "playback: unexpected output at line %d (frame %d)"
)

const magic = "retrocore input recording"

// frame entry format
// ------------------
//
// <frame>, <buttons>, <hash>
//
// buttons are separated by buttonSep. a frame with no buttons pressed has an
// empty buttons field. the hash is the video digest at the end of the frame
// or noHash if the core has no video output

const (
	fieldFrame int = iota
	fieldButtons
	fieldHash
	numFields
)

const fieldSep = ", "
const buttonSep = "|"
const noHash = "-"

// recording file header format
// ----------------------------
//
// <magic>
// <system ID>
// <image hash>
// <game name>

const (
	lineMagic int = iota
	lineSystemID
	lineImageHash
	lineGameName
	numHeaderLines
)

func (rec *Recorder) writeHeader() error {
	lines := make([]string, numHeaderLines)

	lines[lineMagic] = magic
	lines[lineSystemID] = rec.emu.SystemID()
	lines[lineImageHash] = rec.game.Hash
	lines[lineGameName] = rec.game.Name

	line := strings.Join(lines, "\n") + "\n"

	n, err := io.WriteString(rec.output, line)
	if err != nil {
		return curated.Errorf(RecordingError, err)
	}
	if n != len(line) {
		return curated.Errorf(RecordingError, "output truncated")
	}

	return nil
}

func formatEntry(frame int, buttons []string, hash string) string {
	return fmt.Sprintf("%d%s%s%s%s\n", frame, fieldSep, strings.Join(buttons, buttonSep), fieldSep, hash)
}

func (plb *Playback) readHeader(lines []string) error {
	if len(lines) < numHeaderLines {
		return curated.Errorf(PlaybackError, "recording is too short")
	}
	if lines[lineMagic] != magic {
		return curated.Errorf(PlaybackError, "not a recording")
	}

	plb.SystemID = lines[lineSystemID]
	plb.ImageHash = lines[lineImageHash]
	plb.GameName = lines[lineGameName]

	return nil
}
