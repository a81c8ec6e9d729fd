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

package wavwriter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/jetsetilly/retrocore/emulation"
	"github.com/jetsetilly/retrocore/environment"
	"github.com/jetsetilly/retrocore/scheduler"
	"github.com/jetsetilly/retrocore/test"
	"github.com/jetsetilly/retrocore/wavwriter"
)

const pairsPerFrame = 10

// the core produces a ramp of samples. the right channel is twice the left
type core struct {
	emulation.Base
	samples []int16
}

func newCore() *core {
	c := &core{
		Base:    emulation.NewBase("TEST"),
		samples: make([]int16, pairsPerFrame*2),
	}
	c.ServiceProvider().RegisterSound(c)
	return c
}

func (c *core) Advance(render bool, renderSound bool) error {
	return c.Step(func() error {
		for i := 0; i < pairsPerFrame; i++ {
			v := int16((c.Frame()-1)*pairsPerFrame + i)
			c.samples[i*2] = v
			c.samples[i*2+1] = v * 2
		}
		return nil
	})
}

func (c *core) Samples() ([]int16, int) {
	return c.samples, pairsPerFrame
}

func (c *core) DiscardSamples() {
}

func (c *core) SampleRate() int {
	return 22050
}

func (c *core) DeterministicEmulation() bool {
	return true
}

func (c *core) ControllerDefinition() emulation.ControllerDefinition {
	return emulation.ControllerDefinition{}
}

func (c *core) Dispose() {
}

func TestWavWriter(t *testing.T) {
	env := environment.NewEnvironment(environment.MainEmulation, nil)
	fn := filepath.Join(t.TempDir(), "out.wav")

	aw, err := wavwriter.New(env, fn)
	test.ExpectSuccess(t, err)

	sch := scheduler.NewScheduler(env, newCore())
	sch.AddObserver("wav", aw)
	test.ExpectSuccess(t, sch.Run(3))
	test.ExpectEquality(t, aw.Len(), 3*pairsPerFrame)
	test.ExpectSuccess(t, aw.Close())

	f, err := os.Open(fn)
	test.ExpectSuccess(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	test.ExpectSuccess(t, dec.IsValidFile())
	test.ExpectEquality(t, dec.SampleRate, uint32(22050))
	test.ExpectEquality(t, dec.NumChans, uint16(2))
	test.ExpectEquality(t, dec.BitDepth, uint16(16))

	buf, err := dec.FullPCMBuffer()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(buf.Data), 3*pairsPerFrame*2)
	for i := 0; i < len(buf.Data); i += 2 {
		test.ExpectEquality(t, buf.Data[i], i/2)
		test.ExpectEquality(t, buf.Data[i+1], i)
	}
}

func TestNoSound(t *testing.T) {
	env := environment.NewEnvironment(environment.MainEmulation, nil)
	aw, err := wavwriter.New(env, filepath.Join(t.TempDir(), "out.wav"))
	test.ExpectSuccess(t, err)

	c := &core{Base: emulation.NewBase("TEST")}
	test.ExpectFailure(t, aw.EndFrame(c))
}
