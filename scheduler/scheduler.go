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

// Package scheduler drives an emulation core one frame at a time. Other
// parts of the system (cheats, digests, recorders, scripts, rewind) attach
// themselves to the scheduler as observers and are notified at the start and
// end of every frame.
//
// The scheduler never steps a core that has faulted. Once Fault() returns a
// non-nil error the core must be discarded.
package scheduler

import (
	"github.com/jetsetilly/retrocore/curated"
	"github.com/jetsetilly/retrocore/emulation"
	"github.com/jetsetilly/retrocore/environment"
	"github.com/jetsetilly/retrocore/logger"
)

// Sentinal error patterns.
const (
	ObserverError = "scheduler: %s: %v"
	Halted        = "scheduler: halted: %v"
)

// Observer is notified after every frame. An error is returned by Step() but
// does not prevent further frames from being run.
type Observer interface {
	EndFrame(emu emulation.Emulator) error
}

// Preparer is an optional interface for observers that need to act before
// the frame is run. Setting the controller for the frame for example.
type Preparer interface {
	StartFrame(emu emulation.Emulator) error
}

// ObserverFunc allows a simple function to be used as an Observer.
type ObserverFunc func(emu emulation.Emulator) error

// EndFrame implements the Observer interface.
func (f ObserverFunc) EndFrame(emu emulation.Emulator) error {
	return f(emu)
}

type observer struct {
	label string
	obs   Observer
}

// Scheduler steps an emulator.
type Scheduler struct {
	env *environment.Environment
	emu emulation.Emulator

	observers []observer

	fault error

	// whether video and sound are requested from the core. both are true by
	// default
	Render      bool
	RenderSound bool
}

// NewScheduler is the preferred method of initialisation for the Scheduler type.
func NewScheduler(env *environment.Environment, emu emulation.Emulator) *Scheduler {
	return &Scheduler{
		env:         env,
		emu:         emu,
		Render:      true,
		RenderSound: true,
	}
}

// Emulator returns the emulator being driven by the scheduler.
func (sch *Scheduler) Emulator() emulation.Emulator {
	return sch.emu
}

// AddObserver adds an observer with a label. Observers are notified in the
// order they were added. An observer with the same label as an existing
// observer replaces it.
func (sch *Scheduler) AddObserver(label string, obs Observer) {
	for i := range sch.observers {
		if sch.observers[i].label == label {
			sch.observers[i].obs = obs
			return
		}
	}
	sch.observers = append(sch.observers, observer{label: label, obs: obs})
}

// RemoveObserver removes the observer with the label. Returns false if there
// is no such observer.
func (sch *Scheduler) RemoveObserver(label string) bool {
	for i := range sch.observers {
		if sch.observers[i].label == label {
			sch.observers = append(sch.observers[:i], sch.observers[i+1:]...)
			return true
		}
	}
	return false
}

// Observers returns the labels of the attached observers in notification
// order.
func (sch *Scheduler) Observers() []string {
	l := make([]string, 0, len(sch.observers))
	for _, o := range sch.observers {
		l = append(l, o.label)
	}
	return l
}

// Fault returns the fault that halted the scheduler, if any.
func (sch *Scheduler) Fault() error {
	return sch.fault
}

// Step runs one frame. Observers implementing Preparer are called before the
// frame is run. All observers are notified afterwards.
//
// The first observer error stops the notification of the remaining observers
// for this frame and is returned. A core error halts the scheduler
// permanently.
func (sch *Scheduler) Step() error {
	if sch.fault != nil {
		return sch.fault
	}

	for _, o := range sch.observers {
		if p, ok := o.obs.(Preparer); ok {
			if err := p.StartFrame(sch.emu); err != nil {
				return curated.Errorf(ObserverError, o.label, err)
			}
		}
	}

	if err := sch.emu.Advance(sch.Render, sch.RenderSound); err != nil {
		sch.fault = curated.Errorf(Halted, err)
		logger.Log(sch.env, "scheduler", sch.fault.Error())
		return sch.fault
	}

	for _, o := range sch.observers {
		if err := o.obs.EndFrame(sch.emu); err != nil {
			return curated.Errorf(ObserverError, o.label, err)
		}
	}

	return nil
}

// Run the specified number of frames. Stops on the first error.
func (sch *Scheduler) Run(frames int) error {
	for i := 0; i < frames; i++ {
		if err := sch.Step(); err != nil {
			return err
		}
	}
	return nil
}

// RunUntil runs frames until the continueCheck function returns false or an
// error occurs. The check is made before every frame.
func (sch *Scheduler) RunUntil(continueCheck func() bool) error {
	for continueCheck() {
		if err := sch.Step(); err != nil {
			return err
		}
	}
	return nil
}
