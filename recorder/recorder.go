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

// Package recorder records the input to an emulation core so that it can be
// played back later. A recording is a text file with a short header followed
// by one line per frame listing the buttons that were held during that frame.
//
// Each line also includes the video digest at the end of the frame. Playback
// compares the digest with the recorded value and fails if they differ. This
// makes recordings useful as regression tests.
//
// Both Recorder and Playback implement the scheduler.Observer and
// scheduler.Preparer interfaces.
package recorder

import (
	"io"

	"github.com/jetsetilly/retrocore/curated"
	"github.com/jetsetilly/retrocore/digest"
	"github.com/jetsetilly/retrocore/emulation"
)

// Recorder writes the input to an emulator to an io.Writer.
type Recorder struct {
	output io.Writer
	emu    emulation.Emulator
	game   emulation.GameInfo
	input  emulation.Controller

	// the state of the controller for the current frame
	frame emulation.Buttons

	digest *digest.Video

	// frame numbers are written relative to the frame at which recording
	// started
	startFrame int
}

// NewRecorder is the preferred method of initialisation for the Recorder
// type. The input is the source of the user's input and is sampled once at the
// start of every frame.
func NewRecorder(output io.Writer, emu emulation.Emulator, game emulation.GameInfo, input emulation.Controller) (*Recorder, error) {
	if input == nil {
		input = emulation.NoInput
	}

	rec := &Recorder{
		output: output,
		emu:    emu,
		game:   game,
		input:  input,

		startFrame: emu.Frame(),
	}

	if _, ok := emu.ServiceProvider().Video(); ok {
		rec.digest = digest.NewVideo()
	}

	if err := rec.writeHeader(); err != nil {
		return nil, err
	}

	return rec, nil
}

// StartFrame implements the scheduler.Preparer interface. The state of every
// button in the emulator's controller definition is sampled and given to the
// emulator for the frame.
func (rec *Recorder) StartFrame(emu emulation.Emulator) error {
	rec.frame = make(emulation.Buttons)
	for _, b := range emu.ControllerDefinition().BoolButtons {
		if rec.input.IsPressed(b) {
			rec.frame[b] = true
		}
	}
	emu.SetController(rec.frame)
	return nil
}

// EndFrame implements the scheduler.Observer interface.
func (rec *Recorder) EndFrame(emu emulation.Emulator) error {
	hash := noHash
	if rec.digest != nil {
		if err := rec.digest.EndFrame(emu); err != nil {
			return curated.Errorf(RecordingError, err)
		}
		hash = rec.digest.Hash()
	}

	line := formatEntry(emu.Frame()-rec.startFrame, rec.frame.Pressed(), hash)
	if _, err := io.WriteString(rec.output, line); err != nil {
		return curated.Errorf(RecordingError, err)
	}

	return nil
}
