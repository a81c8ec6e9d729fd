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

package tools_test

import (
	"bytes"
	"testing"

	"github.com/jetsetilly/retrocore/curated"
	"github.com/jetsetilly/retrocore/emulation"
	"github.com/jetsetilly/retrocore/environment"
	"github.com/jetsetilly/retrocore/memorydomains"
	"github.com/jetsetilly/retrocore/scheduler"
	"github.com/jetsetilly/retrocore/test"
	"github.com/jetsetilly/retrocore/tools"
)

// the core increments every byte of RAM on every frame
type core struct {
	emulation.Base
	ram []byte
	rom []byte
}

func newCore(t *testing.T) *core {
	t.Helper()

	c := &core{
		Base: emulation.NewBase("TEST"),
		ram:  make([]byte, 0x100),
		rom:  make([]byte, 0x1000),
	}
	reg, err := memorydomains.NewRegistry("RAM",
		memorydomains.NewSliceDomain("RAM", c.ram, true),
		memorydomains.NewSliceDomain("ROM", c.rom, false),
	)
	test.ExpectSuccess(t, err)
	c.ServiceProvider().RegisterMemoryDomains(reg)
	return c
}

func (c *core) Advance(render bool, renderSound bool) error {
	return c.Step(func() error {
		for i := range c.ram {
			c.ram[i]++
		}
		return nil
	})
}

func (c *core) DeterministicEmulation() bool {
	return true
}

func (c *core) ControllerDefinition() emulation.ControllerDefinition {
	return emulation.ControllerDefinition{}
}

func (c *core) Dispose() {
}

type sound struct {
	playing bool
	stops   int
}

func (s *sound) StartSound() {
	s.playing = true
}

func (s *sound) StopSound() {
	s.playing = false
	s.stops++
}

// the prompter records the requests and whether the sound was playing when
// the prompt was shown
type prompter struct {
	snd *sound

	answer   string
	yes      bool
	requests []tools.FileRequest
	titles   []string

	playingDuringPrompt bool
}

func (p *prompter) OpenFile(req tools.FileRequest) (string, error) {
	p.requests = append(p.requests, req)
	p.playingDuringPrompt = p.snd.playing
	return p.answer, nil
}

func (p *prompter) SaveFile(req tools.FileRequest) (string, error) {
	p.requests = append(p.requests, req)
	p.playingDuringPrompt = p.snd.playing
	return p.answer, nil
}

func (p *prompter) YesNo(title string, message string) bool {
	p.titles = append(p.titles, title)
	p.playingDuringPrompt = p.snd.playing
	return p.yes
}

type view struct {
	updates int
}

func (v *view) UpdateValues() {
	v.updates++
}

func newSession(t *testing.T) (*tools.Session, *core, *sound, *prompter) {
	t.Helper()

	snd := &sound{playing: true}
	p := &prompter{snd: snd}
	ses := tools.NewSession(environment.NewEnvironment(environment.MainEmulation, nil), snd, p)
	ses.Paths = tools.Paths{Watch: "/watch", Cheats: "/cheats"}

	c := newCore(t)
	ses.SetEmulator(c, emulation.GameInfo{Name: `Game: "Special" Edition`})

	return ses, c, snd, p
}

func TestRecentFiles(t *testing.T) {
	rf := tools.NewRecentFiles(3)
	test.ExpectSuccess(t, rf.Empty())
	_, ok := rf.MostRecent()
	test.ExpectFailure(t, ok)

	rf.Add("a")
	rf.Add("b")
	rf.Add("c")
	rf.Add("a")
	test.ExpectSliceEquality(t, rf.Files(), []string{"a", "c", "b"})

	rf.Add("d")
	test.ExpectSliceEquality(t, rf.Files(), []string{"d", "a", "c"})

	test.ExpectSuccess(t, rf.Remove("a"))
	test.ExpectFailure(t, rf.Remove("a"))
	f, ok := rf.MostRecent()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, f, "d")

	test.ExpectFailure(t, rf.AutoLoad)
	rf.ToggleAutoLoad()
	test.ExpectSuccess(t, rf.AutoLoad)

	rf.Clear()
	test.ExpectSuccess(t, rf.Empty())
}

func TestRecentMenu(t *testing.T) {
	rf := tools.NewRecentFiles(0)

	items := tools.RecentMenu(rf, nil)
	test.ExpectEquality(t, len(items), 3)
	test.ExpectEquality(t, items[0].Label, "None")
	test.ExpectFailure(t, items[0].Enabled)
	test.ExpectSuccess(t, items[1].Separator)

	rf.Add("one.lnx")
	rf.Add("two.lnx")

	var loaded string
	items = tools.RecentMenu(rf, func(f string) { loaded = f })
	test.ExpectEquality(t, len(items), 4)
	items[1].Action()
	test.ExpectEquality(t, loaded, "one.lnx")

	items[3].Action()
	test.ExpectSuccess(t, rf.Empty())

	auto := tools.AutoLoadItem(rf)
	test.ExpectFailure(t, auto.Checked)
	auto.Action()
	test.ExpectSuccess(t, tools.AutoLoadItem(rf).Checked)
}

func TestHandleLoadError(t *testing.T) {
	ses, _, snd, p := newSession(t)
	ses.Recent.Add("missing.lnx")

	p.yes = false
	test.ExpectFailure(t, ses.HandleLoadError(ses.Recent, "missing.lnx"))
	test.ExpectFailure(t, ses.Recent.Empty())

	p.yes = true
	test.ExpectSuccess(t, ses.HandleLoadError(ses.Recent, "missing.lnx"))
	test.ExpectSuccess(t, ses.Recent.Empty())

	// sound was stopped for both prompts and restarted afterwards
	test.ExpectFailure(t, p.playingDuringPrompt)
	test.ExpectEquality(t, snd.stops, 2)
	test.ExpectSuccess(t, snd.playing)
}

func TestFilePrompts(t *testing.T) {
	ses, _, snd, p := newSession(t)

	p.answer = "/cheats/TEST/game.cht"
	fn, err := ses.GetCheatFileFromUser("/some/where/current.cht")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, fn, p.answer)
	test.ExpectEquality(t, p.requests[0].StartFile, "current")
	test.ExpectEquality(t, p.requests[0].StartDir, "/cheats/TEST")
	test.ExpectSliceEquality(t, p.requests[0].Extensions, []string{"cht"})

	// cancelled
	p.answer = ""
	fn, err = ses.GetWatchFileFromUser("")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, fn, "")
	test.ExpectEquality(t, p.requests[1].StartDir, "/watch")

	_, err = ses.GetWatchSaveFileFromUser("")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p.requests[2].StartFile, "Game Special Edition")

	_, err = ses.GetWatchSaveFileFromUser("/my/watches/list.wch")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p.requests[3].StartFile, "list")
	test.ExpectEquality(t, p.requests[3].StartDir, "/my/watches")

	_, err = ses.GetCheatSaveFileFromUser("")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p.requests[4].StartFile, "Game Special Edition")

	test.ExpectFailure(t, p.playingDuringPrompt)
	test.ExpectEquality(t, snd.stops, 5)
	test.ExpectSuccess(t, snd.playing)

	noprompt := tools.NewSession(environment.NewEnvironment(environment.MainEmulation, nil), nil, nil)
	_, err = noprompt.GetCheatFileFromUser("")
	test.ExpectSuccess(t, curated.Is(err, tools.NoPrompter))
	test.ExpectEquality(t, tools.FilesystemSafeName(`<>`), "NULL")
}

func TestMemoryDomainMenu(t *testing.T) {
	ses, _, _, _ := newSession(t)

	var selected int
	items, err := ses.MemoryDomainMenu(func(i int) { selected = i }, "ROM", 0x100)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(items), 2)
	test.ExpectEquality(t, items[0].Label, "RAM")
	test.ExpectSuccess(t, items[0].Enabled)
	test.ExpectFailure(t, items[0].Checked)
	test.ExpectFailure(t, items[1].Enabled)
	test.ExpectSuccess(t, items[1].Checked)
	test.ExpectSuccess(t, items[1].Action == nil)

	items[0].Action()
	test.ExpectEquality(t, selected, 0)

	// no size limit
	items, err = ses.MemoryDomainMenu(func(i int) { selected = i }, "", 0)
	test.ExpectSuccess(t, err)
	items[1].Action()
	test.ExpectEquality(t, selected, 1)

	names, idx, err := ses.MemoryDomainList("ROM")
	test.ExpectSuccess(t, err)
	test.ExpectSliceEquality(t, names, []string{"RAM", "ROM"})
	test.ExpectEquality(t, idx, 1)

	d, err := ses.DomainByName("ROM")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, d.Name, "ROM")
	d, err = ses.DomainByName("VRAM")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, d.Name, "RAM")

	empty := tools.NewSession(environment.NewEnvironment(environment.MainEmulation, nil), nil, nil)
	_, err = empty.DomainByName("RAM")
	test.ExpectSuccess(t, curated.Is(err, tools.NoEmulator))
}

func TestFreeze(t *testing.T) {
	ses, c, _, _ := newSession(t)

	v := &view{}
	ses.AddView("ram watch", v)
	var status int
	ses.OnCheatStatus = func(active int) { status = active }

	sch := scheduler.NewScheduler(environment.NewEnvironment(environment.MainEmulation, nil), c)
	sch.AddObserver("cheats", ses.Cheats)
	test.ExpectSuccess(t, sch.Run(5))
	test.ExpectEquality(t, c.ram[0x10], uint8(5))

	test.ExpectSuccess(t, ses.FreezeAddress([]tools.Watch{
		{Separator: true},
		{Domain: "RAM", Address: 0x10},
		{Domain: "Unknown", Address: 0x20},
	}))
	test.ExpectEquality(t, ses.Cheats.Len(), 2)
	test.ExpectEquality(t, v.updates, 1)
	test.ExpectEquality(t, status, 2)
	test.ExpectSuccess(t, ses.Cheats.IsFrozen("RAM", 0x20))

	test.ExpectSuccess(t, sch.Run(5))
	test.ExpectEquality(t, c.ram[0x10], uint8(5))
	test.ExpectEquality(t, c.ram[0x20], uint8(5))
	test.ExpectEquality(t, c.ram[0x30], uint8(10))

	ses.UnfreezeAddress([]tools.Watch{{Domain: "Unknown", Address: 0x20}})
	test.ExpectEquality(t, ses.Cheats.Len(), 1)
	test.ExpectEquality(t, status, 1)

	ses.UnfreezeAll()
	test.ExpectEquality(t, ses.Cheats.Len(), 1)
	test.ExpectEquality(t, status, 0)
	test.ExpectEquality(t, v.updates, 3)

	test.ExpectSuccess(t, sch.Run(1))
	test.ExpectEquality(t, c.ram[0x10], uint8(6))

	// a new emulator clears the cheat list
	ses.SetEmulator(newCore(t), emulation.GameInfo{})
	test.ExpectEquality(t, ses.Cheats.Len(), 0)
	test.ExpectEquality(t, v.updates, 4)
}

func TestCheatCompare(t *testing.T) {
	ses, c, _, _ := newSession(t)

	ses.Cheats.Add(tools.Cheat{Domain: "RAM", Address: 1, Value: 0x80, HasCompare: true, Compare: 3, Enabled: true})
	ses.Cheats.Add(tools.Cheat{Domain: "ROM", Address: 1, Value: 0x80, Enabled: false})

	sch := scheduler.NewScheduler(environment.NewEnvironment(environment.MainEmulation, nil), c)
	sch.AddObserver("cheats", ses.Cheats)
	test.ExpectSuccess(t, sch.Run(2))
	test.ExpectEquality(t, c.ram[1], uint8(2))
	test.ExpectSuccess(t, sch.Run(1))
	test.ExpectEquality(t, c.ram[1], uint8(0x80))

	// writing to a read only domain is an error
	ses.Cheats.Add(tools.Cheat{Domain: "ROM", Address: 1, Value: 0x80, Enabled: true})
	test.ExpectFailure(t, sch.Step())
}

func TestCheatFile(t *testing.T) {
	ses, _, _, _ := newSession(t)
	ses.Cheats.Add(tools.Cheat{Name: "lives", Domain: "RAM", Address: 0x1f, Value: 9, Enabled: true})
	ses.Cheats.Add(tools.Cheat{Domain: "RAM", Address: 0x20, Value: 1, HasCompare: true, Compare: 0})
	test.ExpectSuccess(t, ses.Cheats.Changed)

	var b bytes.Buffer
	test.ExpectSuccess(t, ses.Cheats.Save(&b))
	test.ExpectFailure(t, ses.Cheats.Changed)
	test.ExpectEquality(t, b.String(), "001F\t09\tN\tRAM\t1\tlives\n0020\t01\t00\tRAM\t0\t\n")

	cl := tools.NewCheatList(environment.NewEnvironment(environment.MainEmulation, nil))
	test.ExpectSuccess(t, cl.Load(bytes.NewReader(b.Bytes())))
	test.ExpectSliceEquality(t, cl.Cheats(), ses.Cheats.Cheats())

	test.ExpectFailure(t, cl.Load(bytes.NewBufferString("001F\tZZ\tN\tRAM\t1\n")))
	test.ExpectEquality(t, cl.Len(), 2)
}
