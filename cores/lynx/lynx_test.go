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

package lynx_test

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/jetsetilly/retrocore/cores/lynx"
	"github.com/jetsetilly/retrocore/cores/native"
	"github.com/jetsetilly/retrocore/curated"
	"github.com/jetsetilly/retrocore/emulation"
	"github.com/jetsetilly/retrocore/environment"
	"github.com/jetsetilly/retrocore/test"
)

// fakeEngine stands in for the native emulator. every frame it copies the
// button state to the first byte of RAM and, if the buttons are non-zero,
// calls the input callback
type fakeEngine struct {
	ram     []byte
	input   func()
	created int
	freed   int
	resets  int

	rom       []byte
	pagesize0 int
	pagesize1 int

	failCreate bool
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{ram: make([]byte, lynx.RAMSize)}
}

func (e *fakeEngine) Create(rom []byte, boot []byte, pagesize0 int, pagesize1 int, lowPass bool) (native.Handle, error) {
	if e.failCreate {
		return native.NoHandle, errors.New("bad cartridge")
	}
	e.created++
	e.rom = rom
	e.pagesize0 = pagesize0
	e.pagesize1 = pagesize1
	return native.Handle(0x1000), nil
}

func (e *fakeEngine) Destroy(h native.Handle) error {
	e.freed++
	return nil
}

func (e *fakeEngine) Reset(h native.Handle) {
	e.resets++
}

func (e *fakeEngine) Advance(h native.Handle, buttons lynx.Buttons, video []int32, samples []int16) (int, error) {
	e.ram[0] = uint8(buttons)
	if buttons != 0 && e.input != nil {
		e.input()
	}
	for i := range video {
		video[i] = int32(e.ram[1])
	}
	for i := 0; i < 1470; i++ {
		samples[i] = int16(i)
	}
	return 735, nil
}

func (e *fakeEngine) RAM(h native.Handle) []byte {
	return e.ram
}

func (e *fakeEngine) SetInputCallback(h native.Handle, cb func()) {
	e.input = cb
}

func comm() emulation.CoreComm {
	fw := emulation.FirmwareSet{}
	fw.Add(lynx.SystemID, lynx.FirmwareBoot, make([]byte, 512))
	return emulation.CoreComm{
		Env:      environment.NewEnvironment(environment.MainEmulation, nil),
		Firmware: fw,
	}
}

func header(p0 int, p1 int, version int) []byte {
	h := make([]byte, 64)
	copy(h, "LYNX")
	binary.LittleEndian.PutUint16(h[4:], uint16(p0))
	binary.LittleEndian.PutUint16(h[6:], uint16(p1))
	binary.LittleEndian.PutUint16(h[8:], uint16(version))
	copy(h[10:], "Test Game")
	copy(h[42:], "Retrocore")
	return h
}

func TestHeader(t *testing.T) {
	img := append(header(0x200, 0, 1), make([]byte, 0x20000)...)
	cart, err := lynx.PrepareCartridge(img, emulation.GameInfo{})
	test.ExpectSuccess(t, err)
	test.ExpectInequality(t, cart.Header, nil)
	test.ExpectEquality(t, cart.Header.Name, "Test Game")
	test.ExpectEquality(t, cart.Header.Manufacturer, "Retrocore")
	test.ExpectEquality(t, len(cart.Data), 0x20000)
	test.ExpectEquality(t, cart.PageSize0, 0x200)
	test.ExpectEquality(t, cart.PageSize1, 0)

	// only version 1 headers are recognised
	img = append(header(0x200, 0, 2), make([]byte, 0x20000)...)
	cart, err = lynx.PrepareCartridge(img, emulation.GameInfo{})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, cart.Header, nil)
	test.ExpectEquality(t, len(cart.Data), 0x20000+64)
}

func TestBankSizes(t *testing.T) {
	for _, c := range []struct {
		size int
		p0   int
		p1   int
	}{
		{0x10000, 0x100, 0},
		{0x20000, 0x200, 0},
		{0x40000, 0x400, 0},
		{0x80000, 0x800, 0},
		{0x30000, 0x200, 0x100},
		{0x60000, 0x400, 0x200},
		{0xc0000, 0x800, 0x400},
		{0x100000, 0x800, 0x800},
		{0x12345, 0, 0},
	} {
		cart, err := lynx.PrepareCartridge(make([]byte, c.size), emulation.GameInfo{})
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, cart.PageSize0, c.p0)
		test.ExpectEquality(t, cart.PageSize1, c.p1)
	}

	// game options take precedence over the size table and the header
	game := emulation.GameInfo{Options: emulation.ParseGameOptions("pagesize0::0x400; pagesize1::0x100")}
	cart, err := lynx.PrepareCartridge(make([]byte, 0x20000), game)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, cart.PageSize0, 0x400)
	test.ExpectEquality(t, cart.PageSize1, 0x100)

	img := append(header(0x200, 0, 1), make([]byte, 0x20000)...)
	cart, err = lynx.PrepareCartridge(img, game)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, cart.PageSize0, 0x400)
}

func TestImages(t *testing.T) {
	e := newFakeEngine()

	img := make([]byte, 0x100)
	copy(img[6:], "BS93")
	_, err := lynx.NewLynx(comm(), emulation.GameInfo{}, img, e)
	test.ExpectSuccess(t, curated.Is(err, emulation.UnsupportedImage))
	test.ExpectEquality(t, e.created, 0)

	_, err = lynx.NewLynx(emulation.CoreComm{Firmware: emulation.FirmwareSet{}}, emulation.GameInfo{}, make([]byte, 0x20000), e)
	test.ExpectSuccess(t, curated.Is(err, emulation.MissingFirmware))
	test.ExpectEquality(t, e.created, 0)

	e.failCreate = true
	_, err = lynx.NewLynx(comm(), emulation.GameInfo{}, make([]byte, 0x20000), e)
	test.ExpectSuccess(t, curated.Is(err, lynx.EngineError))
	test.ExpectEquality(t, e.freed, 0)
}

func TestPartialConstruction(t *testing.T) {
	e := newFakeEngine()
	e.ram = e.ram[:0x100]
	_, err := lynx.NewLynx(comm(), emulation.GameInfo{}, make([]byte, 0x20000), e)
	test.ExpectSuccess(t, curated.Is(err, lynx.EngineError))
	test.ExpectEquality(t, e.created, 1)
	test.ExpectEquality(t, e.freed, 1)
}

func TestAdvance(t *testing.T) {
	e := newFakeEngine()
	img := append(header(0x200, 0, 1), make([]byte, 0x20000)...)
	lx, err := lynx.NewLynx(comm(), emulation.GameInfo{Name: "test"}, img, e)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(e.rom), 0x20000)
	test.ExpectEquality(t, e.pagesize0, 0x200)

	test.ExpectSuccess(t, lx.Advance(true, true))
	test.ExpectSuccess(t, lx.IsLagFrame())
	_, n := lx.Samples()
	test.ExpectEquality(t, n, 735)

	lx.SetController(emulation.Buttons{"A": true, "Up": true})
	test.ExpectSuccess(t, lx.Advance(true, false))
	test.ExpectFailure(t, lx.IsLagFrame())
	test.ExpectEquality(t, lynx.Buttons(e.ram[0]), lynx.ButtonA|lynx.ButtonUp)
	_, n = lx.Samples()
	test.ExpectEquality(t, n, 0)

	test.ExpectEquality(t, lx.Frame(), 2)
	test.ExpectEquality(t, lx.LagCount(), 1)

	lx.SetController(emulation.Buttons{"Power": true})
	test.ExpectSuccess(t, lx.Advance(true, true))
	test.ExpectEquality(t, e.resets, 1)
}

func TestCapabilities(t *testing.T) {
	lx, err := lynx.NewLynx(comm(), emulation.GameInfo{}, make([]byte, 0x20000), newFakeEngine())
	test.ExpectSuccess(t, err)

	sp := lx.ServiceProvider()
	test.ExpectSuccess(t, sp.Supports(emulation.CapVideo))
	test.ExpectSuccess(t, sp.Supports(emulation.CapSound))
	test.ExpectSuccess(t, sp.Supports(emulation.CapMemoryDomains))
	test.ExpectFailure(t, sp.Supports(emulation.CapState))

	_, ok := sp.State()
	test.ExpectFailure(t, ok)

	test.ExpectEquality(t, lx.BufferWidth(), 160)
	test.ExpectEquality(t, lx.BufferHeight(), 102)
	test.ExpectEquality(t, uint32(lx.BackgroundColor()), 0xff000000)
	test.ExpectSuccess(t, lx.ControllerDefinition().Has("Power"))
}

func TestDomains(t *testing.T) {
	e := newFakeEngine()
	lx, err := lynx.NewLynx(comm(), emulation.GameInfo{}, make([]byte, 0x20000), e)
	test.ExpectSuccess(t, err)

	reg, ok := lx.ServiceProvider().MemoryDomains()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, reg.MainMemory().Name, lynx.DomainRAM)

	bus := reg.Lookup(lynx.DomainSystemBus)
	test.ExpectEquality(t, bus.Size, lynx.RAMSize)
	test.ExpectSuccess(t, bus.Poke(0x1234, 0x56))
	test.ExpectEquality(t, e.ram[0x1234], 0x56)

	v, err := reg.Lookup(lynx.DomainRAM).Peek(0x1234)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0x56)
}

func TestDispose(t *testing.T) {
	e := newFakeEngine()
	lx, err := lynx.NewLynx(comm(), emulation.GameInfo{}, make([]byte, 0x20000), e)
	test.ExpectSuccess(t, err)

	lx.Dispose()
	lx.Dispose()
	test.ExpectEquality(t, e.freed, 1)
	test.ExpectSuccess(t, curated.Is(lx.Advance(true, true), emulation.Disposed))
}
