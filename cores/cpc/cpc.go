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

// Package cpc is the Amstrad CPC 464 emulation core.
//
// The Z80 is emulated by the go-chip-z80 package. Everything else (the PPI,
// PSG, CRTC, gate array, keyboard and cassette deck) is in the hardware
// package tree.
//
// A frame is 312 lines of 64 microseconds. The CPU runs at 4MHz but the gate
// array holds the CPU so that every instruction takes a whole number of
// microseconds. The CRTC and the PSG are clocked once per microsecond.
package cpc

import (
	"bytes"

	"github.com/jetsetilly/retrocore/curated"
	"github.com/jetsetilly/retrocore/emulation"
	"github.com/jetsetilly/retrocore/environment"
	"github.com/jetsetilly/retrocore/hardware/crtc"
	"github.com/jetsetilly/retrocore/hardware/gatearray"
	"github.com/jetsetilly/retrocore/hardware/keyboard"
	"github.com/jetsetilly/retrocore/hardware/ppi"
	"github.com/jetsetilly/retrocore/hardware/psg"
	"github.com/jetsetilly/retrocore/hardware/tape"
	"github.com/jetsetilly/retrocore/logger"
	"github.com/jetsetilly/retrocore/memorydomains"
	"github.com/user-none/go-chip-z80"
)

// SystemID of the CPC core.
const SystemID = "AmstradCPC"

// Firmware IDs.
const (
	FirmwareOS    = "OS464"
	FirmwareBASIC = "BASIC1-0"
	romSize       = 0x4000
)

// Timing.
const (
	CPUClock       = 4000000
	PSGClock       = 1000000
	cyclesPerTick  = CPUClock / PSGClock
	linesPerFrame  = 312
	cyclesPerLine  = 64 * cyclesPerTick
	CyclesPerFrame = linesPerFrame * cyclesPerLine
)

const logTag = "cpc"

// CPC is the Amstrad CPC 464.
type CPC struct {
	emulation.Base

	env *environment.Environment

	cpu *z80.CPU
	bus *bus
	ram [0x10000]uint8

	// lower ROM is the operating system. upper ROM is BASIC
	lower []uint8
	upper []uint8

	ppi  *ppi.PPI
	psg  *psg.PSG
	crtc *crtc.CRTC
	ga   *gatearray.GateArray
	kb   *keyboard.Keyboard
	tape *tape.Tape

	// CPU cycles since power on and cycles into the current frame
	totalCycles uint64
	frameCycles int

	domains *memorydomains.Registry
	state   *emulation.StateAdapter

	// the tape buttons are acted on when they are first pressed
	tapeButtons [3]bool
}

// NewCPC is the preferred method of initialisation for the CPC type.
//
// The image is the audio recording of a cassette tape in WAV or MP3 format.
// An empty image starts the machine with no tape in the deck.
func NewCPC(comm emulation.CoreComm, game emulation.GameInfo, image []byte) (*CPC, error) {
	lower, err := comm.RequireFirmware(SystemID, FirmwareOS, romSize)
	if err != nil {
		return nil, err
	}
	upper, err := comm.RequireFirmware(SystemID, FirmwareBASIC, romSize)
	if err != nil {
		return nil, err
	}

	env := comm.Env
	if env == nil {
		env = environment.NewEnvironment(environment.MainEmulation, nil)
	}

	c := &CPC{
		Base:  emulation.NewBase(SystemID),
		env:   env,
		lower: bytes.Clone(lower),
		upper: bytes.Clone(upper),
	}

	c.ppi = ppi.NewPPI(c.links())
	c.psg = psg.NewPSG(PSGClock, env.Prefs.SampleRate.Get().(int))
	c.crtc = crtc.NewCRTC()
	c.ga = gatearray.NewGateArray()
	c.kb = keyboard.NewKeyboard()
	c.tape = tape.NewTape(env, CPUClock)

	if err := c.insertTape(game, image); err != nil {
		return nil, err
	}

	c.bus = &bus{c: c}
	c.cpu = z80.New(c.bus)

	c.plumb()

	c.domains, err = c.newDomains()
	if err != nil {
		return nil, err
	}

	c.state = emulation.NewStateAdapter(c)

	sp := c.ServiceProvider()
	sp.RegisterVideo(c)
	sp.RegisterSound(c)
	sp.RegisterState(c.state)
	sp.RegisterMemoryDomains(c.domains)

	logger.Logf(env, logTag, "created for %s", game.Name)

	return c, nil
}

func (c *CPC) links() ppi.Links {
	l := ppi.DefaultLinks
	l.DistributorID = uint8(c.env.Prefs.DistributorID.Get().(int))
	l.Refresh50Hz = c.env.Prefs.Refresh50Hz.Get().(bool)
	return l
}

func (c *CPC) insertTape(game emulation.GameInfo, image []byte) error {
	if len(image) == 0 {
		logger.Log(c.env, logTag, "no tape")
		return nil
	}

	switch {
	case bytes.HasPrefix(image, []byte("MV - SNA")):
		return curated.Errorf(emulation.UnsupportedImage, "CPC snapshot")
	case bytes.HasPrefix(image, []byte("ZXTape!")):
		return curated.Errorf(emulation.UnsupportedImage, "CDT tape image")
	}

	if tape.Identify(image) == tape.FormatUnknown {
		return curated.Errorf(emulation.UnrecognisedImage, game.Name)
	}

	if err := c.tape.Insert(image); err != nil {
		return curated.Errorf(emulation.UnrecognisedImage, err)
	}
	logger.Logf(c.env, logTag, "tape inserted (%s)", tape.Identify(image))

	return nil
}

// connect the chips to each other. called on creation and after a state has
// been loaded
func (c *CPC) plumb() {
	c.ppi.Plumb(c.psg, c.kb, c.tape, c.crtc, c)
	c.psg.Plumb(c.kb)
	c.crtc.Plumb(c.ga.HSync, c.ga.VSync)
	c.ga.Plumb(c.ram[:])
	c.kb.Plumb(c.InputPolled)
	c.tape.Plumb(c)
}

// TotalCycles implements the ppi.Clock and tape.Clock interfaces.
func (c *CPC) TotalCycles() uint64 {
	return c.totalCycles
}

// reset every chip. RAM is not cleared
func (c *CPC) reset() {
	logger.Log(c.env, logTag, "reset")
	c.ppi.SetLinks(c.links())
	c.ppi.Reset()
	c.psg.Reset()
	c.crtc.Reset()
	c.ga.Reset()
	c.kb.Reset()
	c.cpu.Reset()
	c.frameCycles = 0
}

// DeterministicEmulation implements the emulation.Emulator interface.
func (c *CPC) DeterministicEmulation() bool {
	return true
}

// ControllerDefinition implements the emulation.Emulator interface.
func (c *CPC) ControllerDefinition() emulation.ControllerDefinition {
	def := keyboard.Definition
	def.BoolButtons = append([]string{}, def.BoolButtons...)
	def.BoolButtons = append(def.BoolButtons, "Play Tape", "Stop Tape", "Rewind Tape")
	return def
}

// Advance implements the emulation.Emulator interface.
func (c *CPC) Advance(render bool, renderSound bool) error {
	return c.Step(func() error {
		ctrl := c.Controller()

		if ctrl.IsPressed("Reset") {
			c.reset()
		}
		c.tapeControls(ctrl)
		c.kb.Update(ctrl)

		c.runFrame()

		if !renderSound {
			c.psg.DiscardSamples()
		}
		return nil
	})
}

func (c *CPC) tapeControls(ctrl emulation.Controller) {
	for i, b := range []string{"Play Tape", "Stop Tape", "Rewind Tape"} {
		p := ctrl.IsPressed(b)
		if p && !c.tapeButtons[i] {
			switch i {
			case 0:
				c.tape.Play()
			case 1:
				c.tape.Stop()
			case 2:
				c.tape.Rewind()
			}
		}
		c.tapeButtons[i] = p
	}
}

func (c *CPC) runFrame() {
	c.psg.DiscardSamples()

	for c.frameCycles < CyclesPerFrame {
		intReq := c.ga.InterruptRequest()
		var prevIFF1 bool
		if intReq {
			prevIFF1 = c.cpu.Registers().IFF1
		}

		cycles := c.cpu.StepCycles(1)

		// a halted CPU consumes no cycles. the rest of the machine keeps
		// running until an interrupt arrives
		if cycles <= 0 {
			cycles = cyclesPerTick
		}

		// round up to a whole microsecond
		cycles = (cycles + cyclesPerTick - 1) / cyclesPerTick * cyclesPerTick

		if intReq && prevIFF1 && !c.cpu.Registers().IFF1 {
			c.ga.AcknowledgeInterrupt()
		}

		for i := 0; i < cycles; i += cyclesPerTick {
			c.tick()
		}

		c.cpu.INT(c.ga.InterruptRequest(), 0xff)
	}

	c.frameCycles -= CyclesPerFrame
}

// one microsecond
func (c *CPC) tick() {
	c.crtc.Tick()
	c.ga.Clock(c.crtc.DisplayEnable(), c.crtc.MemoryAddress(), c.crtc.RasterAddress())
	c.psg.Clock(1)
	c.totalCycles += cyclesPerTick
	c.frameCycles += cyclesPerTick
}

// Dispose implements the emulation.Emulator interface. The CPC holds no
// native resources.
func (c *CPC) Dispose() {
	if c.MarkDisposed() {
		logger.Log(c.env, logTag, "disposed")
	}
}

// VideoBuffer implements the emulation.VideoProvider interface.
func (c *CPC) VideoBuffer() []int32 {
	return c.ga.VideoBuffer()
}

// VirtualWidth implements the emulation.VideoProvider interface.
func (c *CPC) VirtualWidth() int {
	return gatearray.Width
}

// VirtualHeight implements the emulation.VideoProvider interface.
func (c *CPC) VirtualHeight() int {
	return gatearray.Height
}

// BufferWidth implements the emulation.VideoProvider interface.
func (c *CPC) BufferWidth() int {
	return gatearray.Width
}

// BufferHeight implements the emulation.VideoProvider interface.
func (c *CPC) BufferHeight() int {
	return gatearray.Height
}

// BackgroundColor implements the emulation.VideoProvider interface.
func (c *CPC) BackgroundColor() int32 {
	return c.ga.BorderColour()
}

// Samples implements the emulation.SoundProvider interface.
func (c *CPC) Samples() ([]int16, int) {
	return c.psg.Samples()
}

// DiscardSamples implements the emulation.SoundProvider interface.
func (c *CPC) DiscardSamples() {
	c.psg.DiscardSamples()
}

// SampleRate implements the emulation.SoundProvider interface.
func (c *CPC) SampleRate() int {
	return c.psg.SampleRate()
}

// Tape returns the cassette deck.
func (c *CPC) Tape() *tape.Tape {
	return c.tape
}
