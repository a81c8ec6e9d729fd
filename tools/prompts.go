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
	"os"
	"path/filepath"
	"strings"

	"github.com/jetsetilly/retrocore/curated"
)

// FileRequest describes a file prompt.
type FileRequest struct {
	Title string

	// description and extensions (without the leading dot) of the files to
	// show. a prompter may also offer "All Files"
	Filter     string
	Extensions []string

	// the initial directory and the suggested filename. both can be empty
	StartDir  string
	StartFile string
}

// Prompter shows modal prompts to the user.
//
// For the file prompts, if the user cancels the prompt the empty string and a
// nil error should be returned.
type Prompter interface {
	OpenFile(req FileRequest) (string, error)
	SaveFile(req FileRequest) (string, error)
	YesNo(title string, message string) bool
}

// Paths is the default location of tool files.
type Paths struct {
	Watch    string
	Cheats   string
	Firmware string
}

// DefaultPaths returns paths relative to the user's configuration directory.
// The current directory is used if there is no configuration directory.
func DefaultPaths() Paths {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	} else {
		base = filepath.Join(base, "retrocore")
	}
	return Paths{
		Watch:    filepath.Join(base, "watch"),
		Cheats:   filepath.Join(base, "cheats"),
		Firmware: filepath.Join(base, "firmware"),
	}
}

// CheatsPath returns the directory for cheat files of the current system.
func (ses *Session) CheatsPath() string {
	if ses.emu == nil {
		return ses.Paths.Cheats
	}
	return filepath.Join(ses.Paths.Cheats, ses.emu.SystemID())
}

// FilesystemSafeName returns the name of the game with characters that are
// not allowed in filenames removed.
func FilesystemSafeName(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`\/:*?"<>|`, r) {
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "" {
		return "NULL"
	}
	return name
}

func stripExt(filename string) string {
	b := filepath.Base(filename)
	return strings.TrimSuffix(b, filepath.Ext(b))
}

func (ses *Session) openFile(req FileRequest) (string, error) {
	if ses.prompt == nil {
		return "", curated.Errorf(NoPrompter)
	}

	var fn string
	var err error
	ses.WithSoundPaused(func() {
		fn, err = ses.prompt.OpenFile(req)
	})
	if err != nil {
		return "", curated.Errorf(ToolsError, err)
	}
	return fn, nil
}

func (ses *Session) saveFile(req FileRequest) (string, error) {
	if ses.prompt == nil {
		return "", curated.Errorf(NoPrompter)
	}

	var fn string
	var err error
	ses.WithSoundPaused(func() {
		fn, err = ses.prompt.SaveFile(req)
	})
	if err != nil {
		return "", curated.Errorf(ToolsError, err)
	}
	return fn, nil
}

// GetWatchFileFromUser asks the user for a watch file to open. The empty
// string is returned if the user cancels.
func (ses *Session) GetWatchFileFromUser(currentFile string) (string, error) {
	req := FileRequest{
		Title:      "Open Watch File",
		Filter:     "Watch Files",
		Extensions: []string{"wch"},
		StartDir:   ses.Paths.Watch,
	}
	if strings.TrimSpace(currentFile) != "" {
		req.StartFile = stripExt(currentFile)
	}
	return ses.openFile(req)
}

// GetWatchSaveFileFromUser asks the user for a filename to save watches to.
// The empty string is returned if the user cancels.
func (ses *Session) GetWatchSaveFileFromUser(currentFile string) (string, error) {
	req := FileRequest{
		Title:      "Save Watch File",
		Filter:     "Watch Files",
		Extensions: []string{"wch"},
		StartDir:   ses.Paths.Watch,
	}
	if strings.TrimSpace(currentFile) != "" {
		req.StartFile = stripExt(currentFile)
		req.StartDir = filepath.Dir(currentFile)
	} else if ses.emu != nil {
		req.StartFile = FilesystemSafeName(ses.game.Name)
	} else {
		req.StartFile = "NULL"
	}
	return ses.saveFile(req)
}

// GetCheatFileFromUser asks the user for a cheat file to open. The empty
// string is returned if the user cancels.
func (ses *Session) GetCheatFileFromUser(currentFile string) (string, error) {
	req := FileRequest{
		Title:      "Open Cheat File",
		Filter:     "Cheat Files",
		Extensions: []string{"cht"},
		StartDir:   ses.CheatsPath(),
	}
	if strings.TrimSpace(currentFile) != "" {
		req.StartFile = stripExt(currentFile)
	}
	return ses.openFile(req)
}

// GetCheatSaveFileFromUser asks the user for a filename to save cheats to.
// The empty string is returned if the user cancels.
func (ses *Session) GetCheatSaveFileFromUser(currentFile string) (string, error) {
	req := FileRequest{
		Title:      "Save Cheat File",
		Filter:     "Cheat Files",
		Extensions: []string{"cht"},
		StartDir:   ses.CheatsPath(),
	}
	if strings.TrimSpace(currentFile) != "" {
		req.StartFile = stripExt(currentFile)
	} else if ses.emu != nil {
		req.StartFile = FilesystemSafeName(ses.game.Name)
	}
	return ses.saveFile(req)
}
