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

package rewind_test

import (
	"testing"

	"github.com/jetsetilly/retrocore/curated"
	"github.com/jetsetilly/retrocore/emulation"
	"github.com/jetsetilly/retrocore/environment"
	"github.com/jetsetilly/retrocore/rewind"
	"github.com/jetsetilly/retrocore/savestate"
	"github.com/jetsetilly/retrocore/scheduler"
	"github.com/jetsetilly/retrocore/test"
)

// the value is the square of the frame number
type core struct {
	emulation.Base
	value int
}

func newCore() *core {
	c := &core{Base: emulation.NewBase("TEST")}
	c.ServiceProvider().RegisterState(emulation.NewStateAdapter(c))
	return c
}

func (c *core) Advance(render bool, renderSound bool) error {
	return c.Step(func() error {
		c.value = c.Frame() * c.Frame()
		if c.Frame()%2 == 0 {
			c.InputPolled()
		}
		return nil
	})
}

func (c *core) SyncState(s *savestate.Serializer) {
	s.BeginSection("Core")
	c.Base.SyncState(s)
	s.SyncInt("Value", &c.value)
	s.EndSection()
}

func (c *core) Rebind() error {
	return nil
}

func (c *core) DeterministicEmulation() bool {
	return true
}

func (c *core) ControllerDefinition() emulation.ControllerDefinition {
	return emulation.ControllerDefinition{}
}

func (c *core) Dispose() {
}

func setup(t *testing.T, depth int, freq int) (*core, *scheduler.Scheduler, *rewind.Rewind) {
	t.Helper()

	env := environment.NewEnvironment(environment.MainEmulation, nil)
	test.ExpectSuccess(t, env.Prefs.RewindDepth.Set(depth))
	test.ExpectSuccess(t, env.Prefs.RewindFrequency.Set(freq))

	c := newCore()
	sch := scheduler.NewScheduler(env, c)
	r, err := rewind.NewRewind(env, c, sch)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, r.Reset())
	sch.AddObserver("rewind", r)

	return c, sch, r
}

func TestNotSupported(t *testing.T) {
	env := environment.NewEnvironment(environment.MainEmulation, nil)
	c := &core{Base: emulation.NewBase("TEST")}
	_, err := rewind.NewRewind(env, c, nil)
	test.ExpectSuccess(t, curated.Is(err, rewind.NotSupported))
}

func TestHistory(t *testing.T) {
	c, sch, r := setup(t, 5, 2)

	test.ExpectSuccess(t, sch.Run(20))
	test.ExpectEquality(t, r.Len(), 5)

	f := r.GetFrames()
	test.ExpectEquality(t, f.Start, 12)
	test.ExpectEquality(t, f.End, 20)
	test.ExpectEquality(t, f.Current, 20)

	fn, err := r.Back()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, fn, 18)
	test.ExpectEquality(t, c.Frame(), 18)
	test.ExpectEquality(t, c.value, 18*18)

	fn, err = r.Back()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, fn, 16)

	// the emulation continues from the restored state
	test.ExpectSuccess(t, sch.Step())
	test.ExpectEquality(t, c.Frame(), 17)
	test.ExpectEquality(t, c.value, 17*17)

	for r.Len() > 1 {
		_, err = r.Back()
		test.ExpectSuccess(t, err)
	}
	_, err = r.Back()
	test.ExpectSuccess(t, curated.Is(err, rewind.NoHistory))
}

func TestGotoFrame(t *testing.T) {
	c, sch, r := setup(t, 10, 4)

	test.ExpectSuccess(t, sch.Run(30))
	test.ExpectSuccess(t, r.GotoFrame(15))
	test.ExpectEquality(t, c.Frame(), 15)
	test.ExpectEquality(t, c.value, 15*15)

	// snapshots after frame 12 are gone
	test.ExpectEquality(t, r.GetFrames().End, 12)

	test.ExpectSuccess(t, curated.Is(r.GotoFrame(-1), rewind.NoHistory))
}

func TestTimeline(t *testing.T) {
	_, sch, r := setup(t, 10, 1)

	test.ExpectSuccess(t, sch.Run(10))
	_, err := r.Back()
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, sch.Run(3))

	tl, err := r.GetTimeline()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(tl.FrameNum), 12)
	test.ExpectEquality(t, tl.FrameNum[11], 12)
	test.ExpectSuccess(t, tl.Lag[0])
	test.ExpectFailure(t, tl.Lag[1])
	test.ExpectEquality(t, tl.AvailableEnd, 12)
}
