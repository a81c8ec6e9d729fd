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

// Package gpgx is the Genesis and Sega CD core. As with the Lynx core, the
// emulation is performed by a native engine. The engine holds pointers to
// functions in the core (input, memory access and CD reading callbacks) and
// these must be registered again whenever a savestate is loaded. See the
// Rebind() function.
package gpgx

import (
	"bytes"
	"fmt"

	"github.com/jetsetilly/retrocore/cores/native"
	"github.com/jetsetilly/retrocore/curated"
	"github.com/jetsetilly/retrocore/emulation"
	"github.com/jetsetilly/retrocore/environment"
	"github.com/jetsetilly/retrocore/logger"
	"github.com/jetsetilly/retrocore/memorydomains"
)

// SystemID of the GPGX core.
const SystemID = "GEN"

// FirmwareCDBIOS is the ID of the Sega CD BIOS. It is only required when
// discs are loaded.
const FirmwareCDBIOS = "CD_BIOS"

const cdBIOSSize = 0x20000

// DomainMain is the name of the memory area used as main memory.
const DomainMain = "68K RAM"

// SampleRate of the engine's sound output.
const SampleRate = 44100

// Sentinal error patterns.
const (
	EngineError = "gpgx: %v"
)

const logTag = "gpgx"

// AccessKind distinguishes the memory callbacks.
type AccessKind int

// List of valid AccessKind values.
const (
	AccessRead AccessKind = iota
	AccessWrite
	AccessExecute
	numAccessKinds
)

// GPGX is the Genesis/Sega CD core.
type GPGX struct {
	emulation.Base

	env    *environment.Environment
	engine Engine
	res    *native.Resource

	discs           []Disc
	discIndex       int
	prevDiskPressed bool
	nextDiskPressed bool

	memCallbacks [numAccessKinds][]MemoryCallback

	geom    Geometry
	video   []int32
	samples []int16

	domains *memorydomains.Registry
	state   *emulation.StateAdapter
}

// NewGPGX is the preferred method of initialisation for the GPGX type.
//
// If discs is empty the rom is a cartridge image. Otherwise the rom is
// ignored and the first disc is placed in the drive of a Sega CD.
func NewGPGX(comm emulation.CoreComm, game emulation.GameInfo, rom []byte, discs []Disc, engine Engine) (*GPGX, error) {
	env := comm.Env
	if env == nil {
		env = environment.NewEnvironment(environment.MainEmulation, nil)
	}

	g := &GPGX{
		Base:   emulation.NewBase(SystemID),
		env:    env,
		engine: engine,
		discs:  discs,
	}

	var toc *TOC
	if len(discs) > 0 {
		bios, err := comm.RequireFirmware(SystemID, FirmwareCDBIOS, cdBIOSSize)
		if err != nil {
			return nil, err
		}
		rom = bios
		toc = discs[0].TOC()
		g.logf("sega cd: %d discs", len(discs))
	} else {
		switch {
		case len(rom) == 0:
			return nil, curated.Errorf(emulation.UnrecognisedImage, "empty cartridge")
		case isDiscImage(rom):
			return nil, curated.Errorf(emulation.UnsupportedImage, "disc image loaded as a cartridge")
		}
	}

	h, err := engine.Create(rom, toc)
	if err != nil {
		return nil, curated.Errorf(EngineError, err)
	}

	g.res, err = native.NewResource(SystemID, h, engine.Destroy)
	if err != nil {
		return nil, err
	}

	g.domains, err = g.newDomains()
	if err != nil {
		if rerr := g.res.Release(); rerr != nil {
			logger.Log(env, logTag, rerr.Error())
		}
		return nil, err
	}

	if err := g.Rebind(); err != nil {
		if rerr := g.res.Release(); rerr != nil {
			logger.Log(env, logTag, rerr.Error())
		}
		return nil, err
	}

	g.state = emulation.NewStateAdapter(g)

	sp := g.ServiceProvider()
	sp.RegisterVideo(g)
	sp.RegisterSound(g)
	sp.RegisterState(g.state)
	sp.RegisterMemoryDomains(g.domains)

	g.logf("created for %s", game.Name)

	return g, nil
}

func isDiscImage(data []byte) bool {
	sig := []byte("SEGADISCSYSTEM")
	return bytes.HasPrefix(data, sig) ||
		(len(data) > dataOffset && bytes.HasPrefix(data[dataOffset:], sig))
}

func (g *GPGX) logf(format string, args ...any) {
	logger.Logf(g.env, logTag, format, args...)
}

func (g *GPGX) newDomains() (*memorydomains.Registry, error) {
	var domains []*memorydomains.Domain
	for _, a := range g.engine.MemoryAreas(g.res.Handle()) {
		domains = append(domains, memorydomains.NewSliceDomain(a.Name, a.Data, a.Writable))
	}
	return memorydomains.NewRegistry(DomainMain, domains...)
}

// AddMemoryCallback adds a function to be called on the specified kind of
// memory access.
func (g *GPGX) AddMemoryCallback(kind AccessKind, cb MemoryCallback) {
	g.memCallbacks[kind] = append(g.memCallbacks[kind], cb)
	g.refreshMemCallbacks()
}

// ClearMemoryCallbacks removes all memory callbacks.
func (g *GPGX) ClearMemoryCallbacks() {
	for i := range g.memCallbacks {
		g.memCallbacks[i] = nil
	}
	g.refreshMemCallbacks()
}

// register dispatchers with the engine only for the kinds of access that
// have callbacks
func (g *GPGX) refreshMemCallbacks() {
	var cbs [numAccessKinds]MemoryCallback
	for i := range g.memCallbacks {
		if len(g.memCallbacks[i]) == 0 {
			continue
		}
		l := g.memCallbacks[i]
		cbs[i] = func(addr uint32) {
			for _, cb := range l {
				cb(addr)
			}
		}
	}
	g.engine.SetMemoryCallbacks(g.res.Handle(), cbs[AccessRead], cbs[AccessWrite], cbs[AccessExecute])
}

// copy the engine's frame buffer. the geometry can change from frame to frame
func (g *GPGX) updateVideo() {
	h := g.res.Handle()
	g.geom = g.engine.VideoGeometry(h)

	sz := g.geom.Width * g.geom.Height
	if len(g.video) != sz {
		g.video = make([]int32, sz)
	}

	src := g.engine.VideoBuffer(h)
	for y := 0; y < g.geom.Height; y++ {
		s := y * g.geom.Pitch
		if s+g.geom.Width > len(src) {
			break
		}
		copy(g.video[y*g.geom.Width:], src[s:s+g.geom.Width])
	}
}

// DeterministicEmulation implements the emulation.Emulator interface.
func (g *GPGX) DeterministicEmulation() bool {
	return true
}

// ControllerDefinition implements the emulation.Emulator interface.
func (g *GPGX) ControllerDefinition() emulation.ControllerDefinition {
	def := emulation.ControllerDefinition{Name: "GPGX Genesis Controller"}
	for p := 1; p <= NumPads; p++ {
		for _, b := range padButtons {
			def.BoolButtons = append(def.BoolButtons, fmt.Sprintf("P%d %s", p, b.name))
		}
	}
	def.BoolButtons = append(def.BoolButtons, "Reset", "Power")
	if len(g.discs) > 0 {
		def.BoolButtons = append(def.BoolButtons, "Previous Disk", "Next Disk")
	}
	return def
}

func pads(ctrl emulation.Controller) [NumPads]Pad {
	var p [NumPads]Pad
	for i := range p {
		for _, b := range padButtons {
			if ctrl.IsPressed(fmt.Sprintf("P%d %s", i+1, b.name)) {
				p[i] |= b.bit
			}
		}
	}
	return p
}

// Advance implements the emulation.Emulator interface.
func (g *GPGX) Advance(render bool, renderSound bool) error {
	return g.Step(func() error {
		h := g.res.Handle()
		ctrl := g.Controller()

		switch {
		case ctrl.IsPressed("Power"):
			g.engine.Reset(h, true)
		case ctrl.IsPressed("Reset"):
			g.engine.Reset(h, false)
		}

		g.discControls(ctrl.IsPressed("Previous Disk"), ctrl.IsPressed("Next Disk"))

		g.engine.SetInput(h, pads(ctrl))
		if err := g.engine.Advance(h); err != nil {
			return curated.Errorf(EngineError, err)
		}

		if render {
			g.updateVideo()
		}

		if renderSound {
			g.samples = g.engine.Samples(h)
		} else {
			g.samples = nil
		}

		return nil
	})
}

// Dispose implements the emulation.Emulator interface.
func (g *GPGX) Dispose() {
	if !g.MarkDisposed() {
		return
	}
	if err := g.res.Release(); err != nil {
		logger.Log(g.env, logTag, err.Error())
	}
	g.logf("disposed")
}

// VideoBuffer implements the emulation.VideoProvider interface.
func (g *GPGX) VideoBuffer() []int32 {
	return g.video
}

// VirtualWidth implements the emulation.VideoProvider interface.
func (g *GPGX) VirtualWidth() int {
	return g.geom.VirtualWidth
}

// VirtualHeight implements the emulation.VideoProvider interface.
func (g *GPGX) VirtualHeight() int {
	return g.geom.VirtualHeight
}

// BufferWidth implements the emulation.VideoProvider interface.
func (g *GPGX) BufferWidth() int {
	return g.geom.Width
}

// BufferHeight implements the emulation.VideoProvider interface.
func (g *GPGX) BufferHeight() int {
	return g.geom.Height
}

// BackgroundColor implements the emulation.VideoProvider interface.
func (g *GPGX) BackgroundColor() int32 {
	return -0x1000000
}

// Samples implements the emulation.SoundProvider interface.
func (g *GPGX) Samples() ([]int16, int) {
	return g.samples, len(g.samples) / 2
}

// DiscardSamples implements the emulation.SoundProvider interface.
func (g *GPGX) DiscardSamples() {
	g.samples = nil
}

// SampleRate implements the emulation.SoundProvider interface.
func (g *GPGX) SampleRate() int {
	return SampleRate
}
