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

// Package dialogprompt implements the tools.Prompter interface with the
// native dialogs of the host operating system.
package dialogprompt

import (
	"errors"

	"github.com/jetsetilly/retrocore/tools"
	"github.com/sqweek/dialog"
)

// Prompter implements the tools.Prompter interface.
type Prompter struct{}

// NewPrompter is the preferred method of initialisation for the Prompter
// type.
func NewPrompter() *Prompter {
	return &Prompter{}
}

func builder(req tools.FileRequest) *dialog.FileBuilder {
	b := dialog.File().Title(req.Title)
	if len(req.Extensions) > 0 {
		b = b.Filter(req.Filter, req.Extensions...)
	}
	b = b.Filter("All Files", "*")
	if req.StartDir != "" {
		b = b.SetStartDir(req.StartDir)
	}
	if req.StartFile != "" {
		b = b.SetStartFile(req.StartFile)
	}
	return b
}

func cancelled(fn string, err error) (string, error) {
	if errors.Is(err, dialog.ErrCancelled) {
		return "", nil
	}
	return fn, err
}

// OpenFile implements the tools.Prompter interface.
func (p *Prompter) OpenFile(req tools.FileRequest) (string, error) {
	return cancelled(builder(req).Load())
}

// SaveFile implements the tools.Prompter interface.
func (p *Prompter) SaveFile(req tools.FileRequest) (string, error) {
	return cancelled(builder(req).Save())
}

// YesNo implements the tools.Prompter interface.
func (p *Prompter) YesNo(title string, message string) bool {
	return dialog.Message("%s", message).Title(title).YesNo()
}
