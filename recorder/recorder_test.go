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

package recorder_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/retrocore/cores/cpc"
	"github.com/jetsetilly/retrocore/curated"
	"github.com/jetsetilly/retrocore/emulation"
	"github.com/jetsetilly/retrocore/environment"
	"github.com/jetsetilly/retrocore/recorder"
	"github.com/jetsetilly/retrocore/scheduler"
	"github.com/jetsetilly/retrocore/test"
)

// read keyboard line 5 and use the result as the border colour
var program = []byte{
	0xf3,             // DI
	0x01, 0x10, 0x7f, // LD BC,0x7f10  select border
	0xed, 0x49,       // OUT (C),C
	0x01, 0x82, 0xf7, // LD BC,0xf782  loop: PPI mode, A output
	0xed, 0x49,       // OUT (C),C
	0x01, 0x0e, 0xf4, // LD BC,0xf40e  port A = register 14
	0xed, 0x49,       // OUT (C),C
	0x01, 0xc0, 0xf6, // LD BC,0xf6c0  PSG latch address
	0xed, 0x49,       // OUT (C),C
	0x01, 0x00, 0xf6, // LD BC,0xf600  PSG inactive
	0xed, 0x49,       // OUT (C),C
	0x01, 0x92, 0xf7, // LD BC,0xf792  PPI mode, A input
	0xed, 0x49,       // OUT (C),C
	0x01, 0x45, 0xf6, // LD BC,0xf645  PSG read, keyboard line 5
	0xed, 0x49,       // OUT (C),C
	0x06, 0xf4,       // LD B,0xf4
	0xed, 0x78,       // IN A,(C)
	0xe6, 0x1f,       // AND 0x1f
	0xf6, 0x40,       // OR 0x40
	0x01, 0x00, 0x7f, // LD BC,0x7f00
	0xed, 0x79,       // OUT (C),A
	0xc3, 0x06, 0x00, // JP loop
}

var game = emulation.GameInfo{Name: "recorder", Hash: "0123abcd"}

func newCPC(t *testing.T) *cpc.CPC {
	t.Helper()

	os := make([]byte, 0x4000)
	copy(os, program)
	fw := emulation.FirmwareSet{}
	fw.Add(cpc.SystemID, cpc.FirmwareOS, os)
	fw.Add(cpc.SystemID, cpc.FirmwareBASIC, make([]byte, 0x4000))

	comm := emulation.CoreComm{
		Env:      environment.NewEnvironment(environment.MainEmulation, nil),
		Firmware: fw,
	}
	c, err := cpc.NewCPC(comm, game, nil)
	test.ExpectSuccess(t, err)
	return c
}

func record(t *testing.T) string {
	t.Helper()

	c := newCPC(t)
	sch := scheduler.NewScheduler(environment.NewEnvironment(environment.MainEmulation, nil), c)

	input := emulation.Buttons{}
	var out strings.Builder
	rec, err := recorder.NewRecorder(&out, c, game, input)
	test.ExpectSuccess(t, err)
	sch.AddObserver("recorder", rec)

	for i := 0; i < 10; i++ {
		input["Key Space"] = i%3 == 0
		input["Not A Button"] = true
		test.ExpectSuccess(t, sch.Step())
	}

	return out.String()
}

func TestRecording(t *testing.T) {
	rec := record(t)
	lines := strings.Split(strings.TrimSpace(rec), "\n")
	test.ExpectEquality(t, len(lines), 14)
	test.ExpectEquality(t, lines[1], cpc.SystemID)
	test.ExpectEquality(t, lines[2], game.Hash)
	test.ExpectSuccess(t, strings.HasPrefix(lines[4], "1, Key Space, "))
	test.ExpectSuccess(t, strings.HasPrefix(lines[5], "2, , "))
}

func TestPlayback(t *testing.T) {
	rec := record(t)

	plb, err := recorder.NewPlayback(strings.NewReader(rec))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, plb.SystemID, cpc.SystemID)

	c := newCPC(t)
	test.ExpectSuccess(t, plb.AttachToEmulator(c, game))

	sch := scheduler.NewScheduler(environment.NewEnvironment(environment.MainEmulation, nil), c)
	sch.AddObserver("playback", plb)
	test.ExpectSuccess(t, sch.RunUntil(func() bool {
		return !plb.Finished(c)
	}))
	test.ExpectEquality(t, c.Frame(), 10)
	test.ExpectEquality(t, plb.String(), "10/10 (100.0%)")
}

func TestPlaybackMismatch(t *testing.T) {
	rec := record(t)

	// alter the hash for the fourth frame
	lines := strings.Split(rec, "\n")
	i := strings.LastIndex(lines[7], ", ")
	lines[7] = lines[7][:i] + ", 0000"
	plb, err := recorder.NewPlayback(strings.NewReader(strings.Join(lines, "\n")))
	test.ExpectSuccess(t, err)

	c := newCPC(t)
	test.ExpectSuccess(t, plb.AttachToEmulator(c, game))

	sch := scheduler.NewScheduler(environment.NewEnvironment(environment.MainEmulation, nil), c)
	sch.AddObserver("playback", plb)
	err = sch.Run(10)
	test.ExpectSuccess(t, curated.Has(err, recorder.PlaybackHashError))
	test.ExpectEquality(t, c.Frame(), 4)
}

func TestPlaybackValidation(t *testing.T) {
	_, err := recorder.NewPlayback(strings.NewReader("not a recording\nA\nB\nC\n"))
	test.ExpectSuccess(t, curated.Is(err, recorder.PlaybackError))

	_, err = recorder.NewPlayback(strings.NewReader(record(t) + "3, , -\n"))
	test.ExpectSuccess(t, curated.Is(err, recorder.PlaybackError))

	plb, err := recorder.NewPlayback(strings.NewReader(record(t)))
	test.ExpectSuccess(t, err)
	other := game
	other.Hash = "ffff"
	test.ExpectFailure(t, plb.AttachToEmulator(newCPC(t), other))

	plb, err = recorder.NewPlayback(strings.NewReader("retrocore input recording\nAmstradCPC\n\n\n1, Key Nothing, -\n"))
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, plb.AttachToEmulator(newCPC(t), game))
}
