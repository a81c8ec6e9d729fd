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

package gatearray_test

import (
	"bytes"
	"testing"

	"github.com/jetsetilly/retrocore/hardware/crtc"
	"github.com/jetsetilly/retrocore/hardware/gatearray"
	"github.com/jetsetilly/retrocore/savestate"
	"github.com/jetsetilly/retrocore/test"
)

func TestPalette(t *testing.T) {
	ga := gatearray.NewGateArray()

	// select pen 3 then set it to hardware colour 0x0b (bright white)
	test.ExpectSuccess(t, ga.WritePort(0x7f00, 0x03))
	test.ExpectSuccess(t, ga.WritePort(0x7f00, 0x40|0x0b))
	test.ExpectEquality(t, ga.Pen(3), 0x0b)

	// the border
	ga.WritePort(0x7f00, 0x10)
	ga.WritePort(0x7f00, 0x40|0x14)
	test.ExpectEquality(t, ga.Pen(gatearray.BorderPen), 0x14)
	test.ExpectEquality(t, ga.BorderColour(), gatearray.HardwarePalette[0x14])

	// not the gate array
	test.ExpectFailure(t, ga.WritePort(0xbc00, 0x00))
	test.ExpectFailure(t, ga.WritePort(0xff00, 0x00))
}

func TestModeAndROM(t *testing.T) {
	ga := gatearray.NewGateArray()
	test.ExpectSuccess(t, ga.LowerROM())
	test.ExpectSuccess(t, ga.UpperROM())
	test.ExpectEquality(t, ga.Mode(), 1)

	// mode 2, lower ROM disabled
	ga.WritePort(0x7f00, 0x80|0x04|0x02)
	test.ExpectFailure(t, ga.LowerROM())
	test.ExpectSuccess(t, ga.UpperROM())

	// the mode change waits for HSYNC
	test.ExpectEquality(t, ga.Mode(), 1)
	ga.HSync(true)
	test.ExpectEquality(t, ga.Mode(), 2)
}

func TestInterrupts(t *testing.T) {
	ga := gatearray.NewGateArray()

	for i := 0; i < 51; i++ {
		ga.HSync(true)
		ga.HSync(false)
	}
	test.ExpectFailure(t, ga.InterruptRequest())

	ga.HSync(true)
	ga.HSync(false)
	test.ExpectSuccess(t, ga.InterruptRequest())

	ga.AcknowledgeInterrupt()
	test.ExpectFailure(t, ga.InterruptRequest())

	// writing to the interrupt reset bit clears the counter
	for i := 0; i < 40; i++ {
		ga.HSync(false)
	}
	ga.WritePort(0x7f00, 0x80|0x10|0x01)
	for i := 0; i < 51; i++ {
		ga.HSync(false)
	}
	test.ExpectFailure(t, ga.InterruptRequest())
}

func TestFrameInterrupts(t *testing.T) {
	ga := gatearray.NewGateArray()
	c := crtc.NewCRTC()
	c.Plumb(ga.HSync, ga.VSync)

	// six interrupts per frame. acknowledged immediately as the firmware would
	var count int
	for f := 0; f < 10; f++ {
		count = 0
		for i := 0; i < c.FrameLength(); i++ {
			c.Tick()
			if ga.InterruptRequest() {
				count++
				ga.AcknowledgeInterrupt()
			}
		}
	}
	test.ExpectEquality(t, count, 6)
}

func TestScreenAddress(t *testing.T) {
	test.ExpectEquality(t, gatearray.ScreenAddress(0x3000, 0), 0xc000)
	test.ExpectEquality(t, gatearray.ScreenAddress(0x3000, 1), 0xc800)
	test.ExpectEquality(t, gatearray.ScreenAddress(0x3001, 0), 0xc002)
	test.ExpectEquality(t, gatearray.ScreenAddress(0x3028, 7), 0xf850)
}

func TestRender(t *testing.T) {
	ga := gatearray.NewGateArray()
	ram := make([]uint8, 0x10000)
	ga.Plumb(ram)

	// pen 1 is colour 0x0b. pen 0 is colour 0x14. border is colour 0x04
	ga.WritePort(0x7f00, 0x01)
	ga.WritePort(0x7f00, 0x40|0x0b)
	ga.WritePort(0x7f00, 0x00)
	ga.WritePort(0x7f00, 0x40|0x14)
	ga.WritePort(0x7f00, 0x10)
	ga.WritePort(0x7f00, 0x40|0x04)

	// in mode 1 bit 7 is bit 0 of the first pixel's pen
	ram[0xc000] = 0x80

	// move the beam to the first visible line
	ga.VSync(true)
	for i := 0; i < 36; i++ {
		ga.HSync(false)
	}

	ga.Clock(false, 0, 0)
	ga.Clock(true, 0x3000, 0)

	video := ga.VideoBuffer()
	test.ExpectEquality(t, len(video), gatearray.Width*gatearray.Height)
	test.ExpectEquality(t, video[0], gatearray.HardwarePalette[0x04])
	test.ExpectEquality(t, video[7], gatearray.HardwarePalette[0x04])
	test.ExpectEquality(t, video[8], gatearray.HardwarePalette[0x0b])
	test.ExpectEquality(t, video[9], gatearray.HardwarePalette[0x14])
}

func TestSyncState(t *testing.T) {
	ga := gatearray.NewGateArray()
	ga.WritePort(0x7f00, 0x05)
	ga.WritePort(0x7f00, 0x40|0x1a)
	ga.WritePort(0x7f00, 0x80|0x08)
	for i := 0; i < 20; i++ {
		ga.HSync(false)
	}

	var b bytes.Buffer
	s := savestate.NewWriter(&b)
	ga.SyncState(s)
	test.ExpectSuccess(t, s.Err())

	gb := gatearray.NewGateArray()
	r := savestate.NewReader(bytes.NewReader(b.Bytes()))
	gb.SyncState(r)
	test.ExpectSuccess(t, r.Err())

	test.ExpectEquality(t, gb.String(), ga.String())
	test.ExpectEquality(t, gb.Pen(5), 0x1a)
	test.ExpectFailure(t, gb.UpperROM())
}
