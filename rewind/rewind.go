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

// Package rewind keeps a history of savestates for an emulation core. A
// snapshot is taken every few frames, as specified by the RewindFrequency
// preference, and the number of snapshots is limited by the RewindDepth
// preference. Once the history is full the oldest snapshot is forgotten.
//
// The Rewind type implements the scheduler.Observer interface.
package rewind

import (
	"fmt"

	"github.com/jetsetilly/retrocore/curated"
	"github.com/jetsetilly/retrocore/emulation"
	"github.com/jetsetilly/retrocore/environment"
	"github.com/jetsetilly/retrocore/logger"
)

// Sentinal error patterns.
const (
	NotSupported = "rewind: %s core does not support savestates"
	NoHistory    = "rewind: no history"
	RewindError  = "rewind: %v"
)

// Runner provides the rewind package the opportunity to run the emulation.
// The scheduler.Scheduler type satisfies this interface.
type Runner interface {
	Step() error
}

type entry struct {
	frame int
	state []byte
}

// Rewind contains a history of savestates for the emulation.
type Rewind struct {
	env    *environment.Environment
	emu    emulation.Emulator
	state  emulation.Statable
	runner Runner

	// circular array of entries. the slices in each entry are reused
	entries []entry
	start   int
	count   int

	timeline Timeline

	// snapshots are not taken while GotoFrame() is running the emulation
	catchingUp bool
}

// NewRewind is the preferred method of initialisation for the Rewind type.
// The runner is used by GotoFrame() to run the emulation forward from a
// snapshot. It can be nil in which case GotoFrame() will stop at the nearest
// snapshot.
func NewRewind(env *environment.Environment, emu emulation.Emulator, runner Runner) (*Rewind, error) {
	st, ok := emu.ServiceProvider().State()
	if !ok {
		return nil, curated.Errorf(NotSupported, emu.SystemID())
	}

	r := &Rewind{
		env:      env,
		emu:      emu,
		state:    st,
		runner:   runner,
		timeline: newTimeline(),
	}
	r.allocate()

	return r, nil
}

func (r *Rewind) String() string {
	f := r.GetFrames()
	return fmt.Sprintf("%d snapshots (frames %d to %d)", r.count, f.Start, f.End)
}

func (r *Rewind) allocate() {
	r.entries = make([]entry, r.env.Prefs.RewindDepth.Get().(int))
	r.start = 0
	r.count = 0
}

// Reset forgets the history and takes a snapshot of the current state. This
// should be called whenever the emulation is changed other than by running it,
// loading a savestate for example.
func (r *Rewind) Reset() error {
	r.allocate()
	r.timeline = newTimeline()
	return r.Capture()
}

// EndFrame implements the scheduler.Observer interface.
func (r *Rewind) EndFrame(emu emulation.Emulator) error {
	r.timeline.add(emu.Frame(), emu.IsLagFrame())
	if r.catchingUp {
		return nil
	}

	freq := r.env.Prefs.RewindFrequency.Get().(int)
	if emu.Frame()%freq != 0 {
		return nil
	}
	return r.Capture()
}

// Capture takes a snapshot of the current state, regardless of the snapshot
// frequency.
func (r *Rewind) Capture() error {
	if len(r.entries) != r.env.Prefs.RewindDepth.Get().(int) {
		logger.Logf(r.env, "rewind", "depth changed. history forgotten")
		r.allocate()
	}

	data, err := r.state.SaveStateBytes()
	if err != nil {
		return curated.Errorf(RewindError, err)
	}

	// a snapshot of the same frame replaces the most recent entry
	if r.count > 0 && r.newest().frame == r.emu.Frame() {
		r.count--
	}

	idx := (r.start + r.count) % len(r.entries)
	if r.count == len(r.entries) {
		r.start = (r.start + 1) % len(r.entries)
	} else {
		r.count++
	}

	e := &r.entries[idx]
	e.frame = r.emu.Frame()
	e.state = append(e.state[:0], data...)

	return nil
}

func (r *Rewind) at(i int) *entry {
	return &r.entries[(r.start+i)%len(r.entries)]
}

func (r *Rewind) newest() *entry {
	return r.at(r.count - 1)
}

func (r *Rewind) restore(e *entry) error {
	if err := r.state.LoadStateBytes(e.state); err != nil {
		return curated.Errorf(RewindError, err)
	}
	return nil
}

// Back restores the most recent snapshot taken before the current frame.
// Snapshots of later frames are forgotten. Returns the frame number of the
// restored state.
func (r *Rewind) Back() (int, error) {
	current := r.emu.Frame()

	for r.count > 0 && r.newest().frame >= current {
		r.count--
	}
	if r.count == 0 {
		return current, curated.Errorf(NoHistory)
	}

	e := r.newest()
	if err := r.restore(e); err != nil {
		return current, err
	}
	r.timeline.splice(e.frame)

	return e.frame, nil
}

// findFrameIndex returns the index of the newest entry that is for a frame
// at or before the requested frame. The boolean is false if there is no such
// entry.
func (r *Rewind) findFrameIndex(frame int) (int, bool) {
	s := 0
	e := r.count - 1
	res := -1
	for s <= e {
		m := (s + e) / 2
		fn := r.at(m).frame
		if fn == frame {
			return m, true
		}
		if fn < frame {
			res = m
			s = m + 1
		} else {
			e = m - 1
		}
	}
	return res, res >= 0
}

// GotoFrame restores the emulation to the specified frame. The nearest
// snapshot at or before the frame is restored and the emulation is run
// forward using the Runner. Snapshots of later frames are forgotten.
func (r *Rewind) GotoFrame(frame int) error {
	idx, ok := r.findFrameIndex(frame)
	if !ok {
		return curated.Errorf(NoHistory)
	}

	e := r.at(idx)
	if err := r.restore(e); err != nil {
		return err
	}
	r.count = idx + 1
	r.timeline.splice(e.frame)

	if r.runner == nil {
		return nil
	}

	r.catchingUp = true
	defer func() {
		r.catchingUp = false
	}()

	for r.emu.Frame() < frame {
		if err := r.runner.Step(); err != nil {
			return curated.Errorf(RewindError, err)
		}
	}

	return nil
}

// Frames summarises the state of the rewind history.
type Frames struct {
	Start   int
	End     int
	Current int
}

// GetFrames returns the frame numbers of the oldest and most recent snapshots
// and the current frame of the emulation.
func (r *Rewind) GetFrames() Frames {
	f := Frames{Current: r.emu.Frame()}
	if r.count > 0 {
		f.Start = r.at(0).frame
		f.End = r.newest().frame
	}
	return f
}

// Len returns the number of snapshots in the history.
func (r *Rewind) Len() int {
	return r.count
}
