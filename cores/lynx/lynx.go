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

// Package lynx is the Atari Lynx core. The emulation itself is performed by
// a native engine, accessed through the Engine interface. The core is
// responsible for preparing the cartridge image, driving the engine one frame
// at a time and presenting the engine's memory as memory domains.
//
// Savestates are not supported.
package lynx

import (
	"fmt"

	"github.com/jetsetilly/retrocore/cores/native"
	"github.com/jetsetilly/retrocore/curated"
	"github.com/jetsetilly/retrocore/emulation"
	"github.com/jetsetilly/retrocore/environment"
	"github.com/jetsetilly/retrocore/logger"
	"github.com/jetsetilly/retrocore/memorydomains"
)

// SystemID of the Lynx core.
const SystemID = "LYNX"

// FirmwareBoot is the ID of the boot ROM.
const FirmwareBoot = "Boot"

const bootSize = 512

// RAMSize is the size of the RAM view returned by the engine.
const RAMSize = 0x10000

// Screen dimensions.
const (
	Width  = 160
	Height = 102
)

// SampleRate of the engine's sound output.
const SampleRate = 44100

// large enough for the longest frame the engine will ever produce
const sampleBufferSize = 0x4000

// Memory domain names.
const (
	DomainRAM       = "RAM"
	DomainSystemBus = "System Bus"
)

// Sentinal error patterns.
const (
	EngineError = "lynx: %v"
)

const logTag = "lynx"

// Lynx is the Atari Lynx core.
type Lynx struct {
	emulation.Base

	env    *environment.Environment
	engine Engine
	res    *native.Resource

	cart Cartridge

	video   []int32
	samples []int16
	nsamp   int

	domains *memorydomains.Registry
}

// NewLynx is the preferred method of initialisation for the Lynx type.
//
// The engine is destroyed if construction fails after the engine instance has
// been created.
func NewLynx(comm emulation.CoreComm, game emulation.GameInfo, image []byte, engine Engine) (*Lynx, error) {
	boot, err := comm.RequireFirmware(SystemID, FirmwareBoot, bootSize)
	if err != nil {
		return nil, err
	}

	cart, err := PrepareCartridge(image, game)
	if err != nil {
		return nil, err
	}

	env := comm.Env
	if env == nil {
		env = environment.NewEnvironment(environment.MainEmulation, nil)
	}

	if cart.Header != nil {
		logger.Logf(env, logTag, "header: %s (%s) banks %#x/%#x", cart.Header.Name,
			cart.Header.Manufacturer, cart.Header.PageSize0, cart.Header.PageSize1)
	}
	logger.Logf(env, logTag, "bank sizes %#x/%#x", cart.PageSize0, cart.PageSize1)

	lx := &Lynx{
		Base:    emulation.NewBase(SystemID),
		env:     env,
		engine:  engine,
		cart:    cart,
		video:   make([]int32, Width*Height),
		samples: make([]int16, sampleBufferSize),
	}

	h, err := engine.Create(cart.Data, boot, cart.PageSize0, cart.PageSize1, false)
	if err != nil {
		return nil, curated.Errorf(EngineError, err)
	}

	lx.res, err = native.NewResource(SystemID, h, engine.Destroy)
	if err != nil {
		return nil, err
	}

	if err := lx.attach(); err != nil {
		if rerr := lx.res.Release(); rerr != nil {
			logger.Log(env, logTag, rerr.Error())
		}
		return nil, err
	}

	sp := lx.ServiceProvider()
	sp.RegisterVideo(lx)
	sp.RegisterSound(lx)
	sp.RegisterMemoryDomains(lx.domains)

	logger.Logf(env, logTag, "created for %s", game.Name)

	return lx, nil
}

// connect the core to a newly created engine
func (lx *Lynx) attach() error {
	h := lx.res.Handle()

	ram := lx.engine.RAM(h)
	if len(ram) != RAMSize {
		return curated.Errorf(EngineError, fmt.Sprintf("RAM is %d bytes", len(ram)))
	}

	var err error
	lx.domains, err = memorydomains.NewRegistry(DomainRAM,
		memorydomains.NewSliceDomain(DomainRAM, ram, true),
		memorydomains.NewFuncDomain(DomainSystemBus, RAMSize,
			func(addr int) uint8 {
				return ram[addr]
			},
			func(addr int, data uint8) {
				ram[addr] = data
			}),
	)
	if err != nil {
		return err
	}

	lx.engine.SetInputCallback(h, lx.InputPolled)

	return nil
}

// Cartridge returns the prepared cartridge.
func (lx *Lynx) Cartridge() Cartridge {
	return lx.cart
}

// DeterministicEmulation implements the emulation.Emulator interface.
func (lx *Lynx) DeterministicEmulation() bool {
	return true
}

// ControllerDefinition implements the emulation.Emulator interface.
func (lx *Lynx) ControllerDefinition() emulation.ControllerDefinition {
	def := emulation.ControllerDefinition{Name: "Lynx Controller"}
	for _, b := range buttonNames {
		def.BoolButtons = append(def.BoolButtons, b.name)
	}
	def.BoolButtons = append(def.BoolButtons, "Power")
	return def
}

func (lx *Lynx) buttons(ctrl emulation.Controller) Buttons {
	var b Buttons
	for _, n := range buttonNames {
		if ctrl.IsPressed(n.name) {
			b |= n.bit
		}
	}
	return b
}

// Advance implements the emulation.Emulator interface.
func (lx *Lynx) Advance(render bool, renderSound bool) error {
	return lx.Step(func() error {
		h := lx.res.Handle()

		ctrl := lx.Controller()
		if ctrl.IsPressed("Power") {
			logger.Log(lx.env, logTag, "power")
			lx.engine.Reset(h)
		}

		n, err := lx.engine.Advance(h, lx.buttons(ctrl), lx.video, lx.samples)
		if err != nil {
			return curated.Errorf(EngineError, err)
		}
		lx.nsamp = min(n, len(lx.samples)/2)
		if !renderSound {
			lx.nsamp = 0
		}

		return nil
	})
}

// Dispose implements the emulation.Emulator interface.
func (lx *Lynx) Dispose() {
	if !lx.MarkDisposed() {
		return
	}
	if err := lx.res.Release(); err != nil {
		logger.Log(lx.env, logTag, err.Error())
	}
	logger.Log(lx.env, logTag, "disposed")
}

// VideoBuffer implements the emulation.VideoProvider interface.
func (lx *Lynx) VideoBuffer() []int32 {
	return lx.video
}

// VirtualWidth implements the emulation.VideoProvider interface.
func (lx *Lynx) VirtualWidth() int {
	return Width
}

// VirtualHeight implements the emulation.VideoProvider interface.
func (lx *Lynx) VirtualHeight() int {
	return Height
}

// BufferWidth implements the emulation.VideoProvider interface.
func (lx *Lynx) BufferWidth() int {
	return Width
}

// BufferHeight implements the emulation.VideoProvider interface.
func (lx *Lynx) BufferHeight() int {
	return Height
}

// BackgroundColor implements the emulation.VideoProvider interface.
func (lx *Lynx) BackgroundColor() int32 {
	return -0x1000000
}

// Samples implements the emulation.SoundProvider interface.
func (lx *Lynx) Samples() ([]int16, int) {
	return lx.samples[:lx.nsamp*2], lx.nsamp
}

// DiscardSamples implements the emulation.SoundProvider interface.
func (lx *Lynx) DiscardSamples() {
	lx.nsamp = 0
}

// SampleRate implements the emulation.SoundProvider interface.
func (lx *Lynx) SampleRate() int {
	return SampleRate
}
