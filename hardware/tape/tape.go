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

// Package tape emulates the cassette deck of the CPC 464. The tape is a
// recording of the audio signal in either WAV or MP3 format. The signal is
// reduced to one bit per sample and presented to the PPI as the cassette
// input.
//
// The position of the tape is measured in CPU cycles. The tape only moves
// when it is playing and the motor relay is closed. The motor is controlled
// by the PPI, playing is controlled by the user (the "Play Tape", "Stop Tape"
// and "Rewind Tape" buttons) or automatically when the motor is switched on
// and auto-play is enabled.
package tape

import (
	"fmt"

	"github.com/jetsetilly/retrocore/environment"
	"github.com/jetsetilly/retrocore/savestate"
)

const logTag = "tape"

// Clock reports the number of CPU cycles executed since power on.
type Clock interface {
	TotalCycles() uint64
}

// Tape is the cassette deck.
type Tape struct {
	env *environment.Environment

	// CPU cycles per second
	cpuClock int

	clock Clock

	signal levels

	motor      bool
	playing    bool
	writeLevel bool

	// cycles of tape movement since the start of the tape and the CPU cycle
	// when it was last brought up to date
	elapsed   uint64
	lastCycle uint64
}

// NewTape is the preferred method of initialisation for the Tape type. The
// deck is empty until Insert() is called.
func NewTape(env *environment.Environment, cpuClock int) *Tape {
	return &Tape{
		env:      env,
		cpuClock: cpuClock,
	}
}

// Plumb attaches the CPU clock. The position of the tape is not changed so
// Plumb can be called after a state has been loaded.
func (tp *Tape) Plumb(clock Clock) {
	tp.clock = clock
}

// Insert decodes the audio data and loads it into the deck. The tape is
// rewound and stopped.
func (tp *Tape) Insert(data []byte) error {
	signal, err := decode(tp.env, data)
	if err != nil {
		return err
	}
	tp.signal = signal
	tp.playing = false
	tp.elapsed = 0
	if tp.clock != nil {
		tp.lastCycle = tp.clock.TotalCycles()
	}
	return nil
}

// Loaded returns true if there is a tape in the deck.
func (tp *Tape) Loaded() bool {
	return tp.signal.length > 0
}

func (tp *Tape) String() string {
	return fmt.Sprintf("motor=%v playing=%v pos=%d/%d", tp.motor, tp.playing, tp.Position(), tp.signal.length)
}

// the tape moves between calls to advance() only if the motor is on and the
// tape is playing
func (tp *Tape) advance(now uint64) {
	if tp.motor && tp.playing && now > tp.lastCycle {
		tp.elapsed += now - tp.lastCycle
		if tp.Position() >= tp.signal.length {
			tp.playing = false
		}
	}
	tp.lastCycle = now
}

func (tp *Tape) update() {
	if tp.clock != nil {
		tp.advance(tp.clock.TotalCycles())
	}
}

// Position returns the sample index of the tape head.
func (tp *Tape) Position() int {
	if tp.cpuClock == 0 || tp.signal.sampleRate == 0 {
		return 0
	}
	return int(tp.elapsed * uint64(tp.signal.sampleRate) / uint64(tp.cpuClock))
}

// Play the tape. Has no effect if the deck is empty.
func (tp *Tape) Play() {
	tp.update()
	tp.playing = tp.Loaded() && tp.Position() < tp.signal.length
}

// Stop the tape.
func (tp *Tape) Stop() {
	tp.update()
	tp.playing = false
}

// Rewind the tape to the beginning. Playing continues if the tape was playing.
func (tp *Tape) Rewind() {
	tp.update()
	tp.elapsed = 0
}

// Playing returns true if the play button is down.
func (tp *Tape) Playing() bool {
	return tp.playing
}

// Motor returns the state of the motor relay.
func (tp *Tape) Motor() bool {
	return tp.motor
}

// SetMotor implements the ppi.Tape interface.
func (tp *Tape) SetMotor(on bool) {
	tp.update()
	if on && !tp.motor && !tp.playing && tp.Loaded() && tp.env.Prefs.TapeAutoPlay.Get().(bool) {
		tp.playing = tp.Position() < tp.signal.length
	}
	tp.motor = on
}

// SetWriteLevel implements the ppi.Tape interface. Recording is not supported
// but the level is remembered so that it is part of the savestate.
func (tp *Tape) SetWriteLevel(level bool) {
	tp.writeLevel = level
}

// EarBit implements the ppi.Tape interface.
func (tp *Tape) EarBit(cycle uint64) bool {
	tp.advance(cycle)
	if !tp.motor || !tp.playing {
		return false
	}
	return tp.signal.at(tp.Position())
}

// SyncState implements the savestate.Syncer interface. The tape image is not
// part of the state.
func (tp *Tape) SyncState(s *savestate.Serializer) {
	s.BeginSection("Tape")
	s.SyncBool("Motor", &tp.motor)
	s.SyncBool("Playing", &tp.playing)
	s.SyncBool("WriteLevel", &tp.writeLevel)
	s.SyncUint64("Elapsed", &tp.elapsed)
	s.SyncUint64("LastCycle", &tp.lastCycle)
	s.EndSection()
}
