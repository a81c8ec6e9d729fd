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

package scheduler_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/retrocore/curated"
	"github.com/jetsetilly/retrocore/emulation"
	"github.com/jetsetilly/retrocore/environment"
	"github.com/jetsetilly/retrocore/scheduler"
	"github.com/jetsetilly/retrocore/test"
)

// core faults on the frame given by failAt
type core struct {
	emulation.Base
	failAt int
}

func (c *core) Advance(render bool, renderSound bool) error {
	return c.Step(func() error {
		if c.Controller().IsPressed("Fire") {
			c.InputPolled()
		}
		if c.Frame() == c.failAt {
			return errors.New("bad opcode")
		}
		return nil
	})
}

func (c *core) DeterministicEmulation() bool {
	return true
}

func (c *core) ControllerDefinition() emulation.ControllerDefinition {
	return emulation.ControllerDefinition{Name: "test", BoolButtons: []string{"Fire"}}
}

func (c *core) Dispose() {
	c.MarkDisposed()
}

type preparer struct {
	log *[]string
}

func (p preparer) StartFrame(emu emulation.Emulator) error {
	*p.log = append(*p.log, "start")
	emu.SetController(emulation.Buttons{"Fire": true})
	return nil
}

func (p preparer) EndFrame(emu emulation.Emulator) error {
	*p.log = append(*p.log, "end")
	return nil
}

func newScheduler(failAt int) (*scheduler.Scheduler, *core) {
	c := &core{Base: emulation.NewBase("TEST"), failAt: failAt}
	return scheduler.NewScheduler(environment.NewEnvironment(environment.MainEmulation, nil), c), c
}

func TestObservers(t *testing.T) {
	sch, c := newScheduler(-1)

	var log []string
	sch.AddObserver("a", scheduler.ObserverFunc(func(emu emulation.Emulator) error {
		log = append(log, "a")
		return nil
	}))
	sch.AddObserver("prep", preparer{log: &log})
	sch.AddObserver("b", scheduler.ObserverFunc(func(emu emulation.Emulator) error {
		log = append(log, "b")
		return nil
	}))
	test.ExpectSliceEquality(t, sch.Observers(), []string{"a", "prep", "b"})

	test.ExpectSuccess(t, sch.Step())
	test.ExpectSliceEquality(t, log, []string{"start", "a", "end", "b"})
	test.ExpectFailure(t, c.IsLagFrame())

	test.ExpectSuccess(t, sch.RemoveObserver("prep"))
	test.ExpectFailure(t, sch.RemoveObserver("prep"))

	log = log[:0]
	test.ExpectSuccess(t, sch.Run(2))
	test.ExpectSliceEquality(t, log, []string{"a", "b", "a", "b"})
	test.ExpectEquality(t, c.Frame(), 3)
}

func TestObserverError(t *testing.T) {
	sch, c := newScheduler(-1)

	var called bool
	sch.AddObserver("bad", scheduler.ObserverFunc(func(emu emulation.Emulator) error {
		return errors.New("disk full")
	}))
	sch.AddObserver("after", scheduler.ObserverFunc(func(emu emulation.Emulator) error {
		called = true
		return nil
	}))

	err := sch.Step()
	test.ExpectSuccess(t, curated.Is(err, scheduler.ObserverError))
	test.ExpectFailure(t, called)

	// observer errors do not halt the scheduler
	test.ExpectSuccess(t, sch.Fault() == nil)
	test.ExpectFailure(t, sch.Step())
	test.ExpectEquality(t, c.Frame(), 2)
}

func TestFault(t *testing.T) {
	sch, c := newScheduler(3)

	err := sch.Run(10)
	test.ExpectSuccess(t, curated.Is(err, scheduler.Halted))
	test.ExpectSuccess(t, curated.Has(err, emulation.CoreFault))
	test.ExpectEquality(t, c.Frame(), 3)

	// the core is never stepped again
	test.ExpectEquality(t, sch.Step(), err)
	test.ExpectEquality(t, sch.Fault(), err)
	test.ExpectEquality(t, c.Frame(), 3)
}

func TestRunUntil(t *testing.T) {
	sch, c := newScheduler(-1)
	test.ExpectSuccess(t, sch.RunUntil(func() bool {
		return c.Frame() < 7
	}))
	test.ExpectEquality(t, c.Frame(), 7)
}
