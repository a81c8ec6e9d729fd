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
	"strconv"
	"strings"

	"github.com/jetsetilly/retrocore/curated"
	"github.com/jetsetilly/retrocore/digest"
	"github.com/jetsetilly/retrocore/emulation"
)

type playbackEntry struct {
	frame   int
	buttons emulation.Buttons
	hash    string

	// the line in the recording file the playback entry appears
	line int
}

// Playback is used to reperform the user input recorded in a previously
// recorded file. It implements the emulation.Controller interface.
type Playback struct {
	SystemID  string
	ImageHash string
	GameName  string

	sequence []playbackEntry
	seqCt    int

	// the entry for the current frame. nil if there is no input for the frame
	current *playbackEntry

	digest *digest.Video

	// the last frame where an entry occurs
	endFrame int

	// frame numbers in the recording are relative to the frame at which the
	// playback was attached
	startFrame int
}

func (plb *Playback) String() string {
	currFrame := 0
	if plb.seqCt > 0 {
		currFrame = plb.sequence[plb.seqCt-1].frame
	}
	if plb.endFrame == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d (%.1f%%)", currFrame, plb.endFrame, 100*(float64(currFrame)/float64(plb.endFrame)))
}

// NewPlayback is the preferred method of implementation for the Playback type.
func NewPlayback(transcript io.Reader) (*Playback, error) {
	buffer, err := io.ReadAll(transcript)
	if err != nil {
		return nil, curated.Errorf(PlaybackError, err)
	}

	plb := &Playback{}

	// convert file contents to an array of lines
	lines := strings.Split(strings.TrimRight(string(buffer), "\n"), "\n")

	if err := plb.readHeader(lines); err != nil {
		return nil, err
	}

	for i := numHeaderLines; i < len(lines); i++ {
		toks := strings.Split(lines[i], fieldSep)
		if len(toks) != numFields {
			return nil, curated.Errorf(PlaybackError, fmt.Sprintf("expected %d fields at line %d", numFields, i+1))
		}

		entry := playbackEntry{line: i + 1, hash: toks[fieldHash]}

		entry.frame, err = strconv.Atoi(toks[fieldFrame])
		if err != nil {
			return nil, curated.Errorf(PlaybackError, fmt.Sprintf("%v at line %d", err, i+1))
		}

		// frames must be listed in order
		if entry.frame <= plb.endFrame {
			return nil, curated.Errorf(PlaybackError, fmt.Sprintf("frame out of sequence at line %d", i+1))
		}
		plb.endFrame = entry.frame

		entry.buttons = make(emulation.Buttons)
		if toks[fieldButtons] != "" {
			for _, b := range strings.Split(toks[fieldButtons], buttonSep) {
				entry.buttons[b] = true
			}
		}

		plb.sequence = append(plb.sequence, entry)
	}

	return plb, nil
}

// AttachToEmulator checks that the recording was made with the same system
// and program image and sets the emulator's controller to the playback. The
// emulator should be in the same state as when the recording started.
func (plb *Playback) AttachToEmulator(emu emulation.Emulator, game emulation.GameInfo) error {
	if emu.SystemID() != plb.SystemID {
		return curated.Errorf(PlaybackError, fmt.Sprintf("recording was made with the %s system. trying to playback with %s", plb.SystemID, emu.SystemID()))
	}
	if plb.ImageHash != "" && game.Hash != "" && plb.ImageHash != game.Hash {
		return curated.Errorf(PlaybackError, "recording was made with a different program image")
	}

	def := emu.ControllerDefinition()
	for _, e := range plb.sequence {
		for b := range e.buttons {
			if !def.Has(b) {
				return curated.Errorf(PlaybackError, fmt.Sprintf("unknown button %q at line %d", b, e.line))
			}
		}
	}

	if _, ok := emu.ServiceProvider().Video(); ok {
		plb.digest = digest.NewVideo()
	}

	plb.startFrame = emu.Frame()
	emu.SetController(plb)

	return nil
}

// IsPressed implements the emulation.Controller interface.
func (plb *Playback) IsPressed(button string) bool {
	if plb.current == nil {
		return false
	}
	return plb.current.buttons[button]
}

// StartFrame implements the scheduler.Preparer interface.
func (plb *Playback) StartFrame(emu emulation.Emulator) error {
	plb.current = nil

	// the frame counter is incremented when the frame starts
	frame := emu.Frame() + 1 - plb.startFrame

	if plb.seqCt < len(plb.sequence) && plb.sequence[plb.seqCt].frame == frame {
		plb.current = &plb.sequence[plb.seqCt]
		plb.seqCt++
	}

	return nil
}

// EndFrame implements the scheduler.Observer interface.
func (plb *Playback) EndFrame(emu emulation.Emulator) error {
	if plb.digest == nil {
		return nil
	}

	if err := plb.digest.EndFrame(emu); err != nil {
		return curated.Errorf(PlaybackError, err)
	}

	if plb.current != nil && plb.current.hash != noHash && plb.current.hash != plb.digest.Hash() {
		return curated.Errorf(PlaybackHashError, plb.current.line, plb.current.frame)
	}

	return nil
}

// Finished returns true if the emulation has reached the last frame of the
// playback.
func (plb *Playback) Finished(emu emulation.Emulator) bool {
	return emu.Frame()-plb.startFrame >= plb.endFrame
}
