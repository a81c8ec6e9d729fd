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

package emulation_test

import (
	"fmt"
	"testing"

	"github.com/jetsetilly/retrocore/curated"
	"github.com/jetsetilly/retrocore/emulation"
	"github.com/jetsetilly/retrocore/savestate"
	"github.com/jetsetilly/retrocore/test"
)

// counter is a minimal core. input is read on every frame where the "A"
// button is pressed and the core faults when value reaches failAt.
type counter struct {
	emulation.Base
	value    int
	failAt   int
	panicAt  int
	rebinds  int
	derived  int
	released int
}

func newCounter() *counter {
	c := &counter{
		Base:    emulation.NewBase("COUNTER"),
		failAt:  -1,
		panicAt: -1,
	}
	c.ServiceProvider().RegisterState(emulation.NewStateAdapter(c))
	return c
}

func (c *counter) Advance(render bool, renderSound bool) error {
	return c.Step(func() error {
		if c.Controller().IsPressed("A") {
			c.InputPolled()
		}
		c.value++
		c.derived = c.value * 2
		if c.value == c.failAt {
			return fmt.Errorf("bad opcode")
		}
		if c.value == c.panicAt {
			var m map[string]int
			m["x"] = 1
		}
		return nil
	})
}

func (c *counter) DeterministicEmulation() bool {
	return true
}

func (c *counter) ControllerDefinition() emulation.ControllerDefinition {
	return emulation.ControllerDefinition{Name: "counter", BoolButtons: []string{"A"}}
}

func (c *counter) Dispose() {
	if c.MarkDisposed() {
		c.released++
	}
}

func (c *counter) SyncState(s *savestate.Serializer) {
	s.SyncInt("Value", &c.value)
	c.Base.SyncState(s)
}

func (c *counter) Rebind() error {
	c.rebinds++
	c.derived = c.value * 2
	return nil
}

// compile time check
var _ emulation.Emulator = (*counter)(nil)

func TestLagAccounting(t *testing.T) {
	c := newCounter()

	test.ExpectSuccess(t, c.Advance(true, true))
	test.ExpectEquality(t, c.Frame(), 1)
	test.ExpectSuccess(t, c.IsLagFrame())
	test.ExpectEquality(t, c.LagCount(), 1)

	c.SetController(emulation.Buttons{"A": true})
	test.ExpectSuccess(t, c.Advance(true, true))
	test.ExpectEquality(t, c.Frame(), 2)
	test.ExpectFailure(t, c.IsLagFrame())
	test.ExpectEquality(t, c.LagCount(), 1)

	c.SetController(nil)
	test.ExpectSuccess(t, c.Advance(true, true))
	test.ExpectEquality(t, c.LagCount(), 2)

	c.ResetCounters()
	test.ExpectEquality(t, c.Frame(), 0)
	test.ExpectEquality(t, c.LagCount(), 0)
}

func TestFaultLatch(t *testing.T) {
	c := newCounter()
	c.failAt = 2

	test.ExpectSuccess(t, c.Advance(true, true))
	err := c.Advance(true, true)
	test.ExpectSuccess(t, curated.Is(err, emulation.CoreFault))

	// the core is never stepped again
	err2 := c.Advance(true, true)
	test.ExpectEquality(t, err2, err)
	test.ExpectEquality(t, c.value, 2)
}

func TestPanicIsFault(t *testing.T) {
	c := newCounter()
	c.panicAt = 1

	err := c.Advance(true, true)
	test.ExpectSuccess(t, curated.Is(err, emulation.CoreFault))
	test.ExpectEquality(t, c.Fault(), err)
}

func TestStateRoundTrip(t *testing.T) {
	c := newCounter()
	for i := 0; i < 5; i++ {
		test.ExpectSuccess(t, c.Advance(true, true))
	}

	st, ok := c.ServiceProvider().State()
	test.ExpectSuccess(t, ok)

	data, err := st.SaveStateBytes()
	test.ExpectSuccess(t, err)
	saved := append([]byte{}, data...)

	for i := 0; i < 3; i++ {
		test.ExpectSuccess(t, c.Advance(true, true))
	}
	test.ExpectEquality(t, c.Frame(), 8)

	test.ExpectSuccess(t, st.LoadStateBytes(saved))
	test.ExpectEquality(t, c.Frame(), 5)
	test.ExpectEquality(t, c.LagCount(), 5)
	test.ExpectSuccess(t, c.IsLagFrame())
	test.ExpectEquality(t, c.value, 5)
	test.ExpectEquality(t, c.derived, 10)

	// rebind happens exactly once per load
	test.ExpectEquality(t, c.rebinds, 1)

	// truncated state does not trigger a rebind
	test.ExpectFailure(t, st.LoadStateBytes(saved[:3]))
	test.ExpectEquality(t, c.rebinds, 1)
}

func TestCapabilities(t *testing.T) {
	c := newCounter()
	sp := c.ServiceProvider()

	_, ok := sp.Video()
	test.ExpectFailure(t, ok)
	test.ExpectFailure(t, sp.Supports(emulation.CapVideo))
	test.ExpectSuccess(t, sp.Supports(emulation.CapState))
	_, ok = sp.MemoryDomains()
	test.ExpectFailure(t, ok)
}

func TestDispose(t *testing.T) {
	c := newCounter()
	c.Dispose()
	c.Dispose()
	test.ExpectEquality(t, c.released, 1)
	test.ExpectSuccess(t, curated.Is(c.Advance(true, true), emulation.Disposed))
}

func TestFirmware(t *testing.T) {
	fw := emulation.FirmwareSet{}
	fw.Add("LYNX", "Boot", make([]byte, 512))
	fw.Add("AmstradCPC", "OS464", make([]byte, 100))

	comm := emulation.CoreComm{Firmware: fw}
	_, err := comm.RequireFirmware("LYNX", "Boot", 512)
	test.ExpectSuccess(t, err)

	_, err = comm.RequireFirmware("AmstradCPC", "OS464", 0x4000)
	test.ExpectSuccess(t, curated.Is(err, emulation.MissingFirmware))

	_, err = comm.RequireFirmware("AmstradCPC", "BASIC1-0", 0x4000)
	test.ExpectSuccess(t, curated.Is(err, emulation.MissingFirmware))
}

func TestGameOptions(t *testing.T) {
	gi := emulation.GameInfo{Options: emulation.ParseGameOptions("pagesize0::0x200; pagesize1::256; bad::xyz")}
	v, ok := gi.IntOption("pagesize0")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, 0x200)
	v, ok = gi.IntOption("pagesize1")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, 256)
	_, ok = gi.IntOption("bad")
	test.ExpectFailure(t, ok)
	_, ok = gi.IntOption("missing")
	test.ExpectFailure(t, ok)
}
