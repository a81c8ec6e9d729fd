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

package tools

import (
	"github.com/jetsetilly/retrocore/curated"
	"github.com/jetsetilly/retrocore/emulation"
	"github.com/jetsetilly/retrocore/environment"
	"github.com/jetsetilly/retrocore/logger"
	"github.com/jetsetilly/retrocore/memorydomains"
)

// Sentinal error patterns.
const (
	NoEmulator      = "tools: no emulator"
	NoMemoryDomains = "tools: %s core has no memory domains"
	NoPrompter      = "tools: no prompter"
	ToolsError      = "tools: %v"
)

const logTag = "tools"

// Sound is the host's sound output.
type Sound interface {
	StartSound()
	StopSound()
}

// View is a tool view that shows values taken from the emulation. Views are
// told to update whenever the cheat list changes.
type View interface {
	UpdateValues()
}

type view struct {
	label string
	view  View
}

// Session is the shared state of the host tools.
type Session struct {
	env *environment.Environment

	emu  emulation.Emulator
	game emulation.GameInfo

	sound  Sound
	prompt Prompter

	views []view

	// Cheats is the list of cheats for the current emulator. It should be
	// added to the scheduler as an observer so that the cheats are applied
	// at the end of every frame
	Cheats *CheatList

	// Recent is the list of recently loaded program images
	Recent *RecentFiles

	// Paths is the default location of tool files
	Paths Paths

	// OnCheatStatus is called by UpdateCheatRelatedTools() with the number
	// of active cheats. Can be nil
	OnCheatStatus func(active int)
}

// NewSession is the preferred method of initialisation for the Session type.
// Both the sound and prompt arguments can be nil.
func NewSession(env *environment.Environment, sound Sound, prompt Prompter) *Session {
	return &Session{
		env:    env,
		sound:  sound,
		prompt: prompt,
		Cheats: NewCheatList(env),
		Recent: NewRecentFiles(defaultRecentMax),
		Paths:  DefaultPaths(),
	}
}

// SetEmulator changes the emulator used by the session tools. The cheat list
// is cleared because cheats are specific to a program image.
func (ses *Session) SetEmulator(emu emulation.Emulator, game emulation.GameInfo) {
	ses.emu = emu
	ses.game = game
	ses.Cheats.Clear()
	ses.UpdateCheatRelatedTools()
}

// Emulator returns the current emulator. Can be nil.
func (ses *Session) Emulator() emulation.Emulator {
	return ses.emu
}

// Game returns the information about the currently loaded program image.
func (ses *Session) Game() emulation.GameInfo {
	return ses.game
}

// WithSoundPaused stops the sound, runs the function and then restarts the
// sound. Every modal prompt is shown inside this function.
func (ses *Session) WithSoundPaused(fn func()) {
	if ses.sound != nil {
		ses.sound.StopSound()
		defer ses.sound.StartSound()
	}
	fn()
}

// AddView adds a view to be updated by UpdateCheatRelatedTools(). A view with
// the same label as an existing view replaces it.
func (ses *Session) AddView(label string, v View) {
	for i := range ses.views {
		if ses.views[i].label == label {
			ses.views[i].view = v
			return
		}
	}
	ses.views = append(ses.views, view{label: label, view: v})
}

// RemoveView removes the view with the label.
func (ses *Session) RemoveView(label string) {
	for i := range ses.views {
		if ses.views[i].label == label {
			ses.views = append(ses.views[:i], ses.views[i+1:]...)
			return
		}
	}
}

// UpdateCheatRelatedTools tells every view to update its values and then
// reports the number of active cheats.
func (ses *Session) UpdateCheatRelatedTools() {
	for _, v := range ses.views {
		v.view.UpdateValues()
	}

	active := ses.Cheats.ActiveCount()
	if ses.OnCheatStatus != nil {
		ses.OnCheatStatus(active)
	}
}

func (ses *Session) domains() (*memorydomains.Registry, error) {
	if ses.emu == nil {
		return nil, curated.Errorf(NoEmulator)
	}
	reg, ok := ses.emu.ServiceProvider().MemoryDomains()
	if !ok {
		return nil, curated.Errorf(NoMemoryDomains, ses.emu.SystemID())
	}
	return reg, nil
}

// HandleLoadError asks the user whether the file that could not be loaded
// should be removed from the recent files list. Returns true if the file was
// removed.
func (ses *Session) HandleLoadError(recent *RecentFiles, path string) bool {
	if ses.prompt == nil {
		return false
	}

	var remove bool
	ses.WithSoundPaused(func() {
		remove = ses.prompt.YesNo("File not found", "Could not open "+path+"\nRemove from list?")
	})

	if remove {
		recent.Remove(path)
		logger.Logf(ses.env, logTag, "removed %s from recent files", path)
	}

	return remove
}
