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

// Package tools contains the host side helpers that are shared by the tool
// views of the emulator: the cheat list, the recent files list, memory domain
// selection and file prompts.
//
// There is no global state. The Session type holds the current emulator and
// the collaborators needed by the helpers, and should be passed to any tool
// that needs them.
//
// Modal prompts block the emulation. The sound is stopped before any prompt
// is shown and restarted afterwards. See WithSoundPaused().
package tools
