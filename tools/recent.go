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

const defaultRecentMax = 10

// RecentFiles is a most-recently-used list of filenames. The most recent
// file is first.
type RecentFiles struct {
	files []string
	max   int

	// AutoLoad indicates that the most recent file should be loaded on
	// startup
	AutoLoad bool
}

// NewRecentFiles is the preferred method of initialisation for the
// RecentFiles type.
func NewRecentFiles(size int) *RecentFiles {
	if size <= 0 {
		size = defaultRecentMax
	}
	return &RecentFiles{max: size}
}

// Add the file to the front of the list. If the file is already in the list
// it is moved to the front. The oldest file is forgotten if the list is full.
func (rf *RecentFiles) Add(filename string) {
	rf.Remove(filename)
	rf.files = append([]string{filename}, rf.files...)
	if len(rf.files) > rf.max {
		rf.files = rf.files[:rf.max]
	}
}

// Remove the file from the list. Returns false if the file was not in the
// list.
func (rf *RecentFiles) Remove(filename string) bool {
	for i, f := range rf.files {
		if f == filename {
			rf.files = append(rf.files[:i], rf.files[i+1:]...)
			return true
		}
	}
	return false
}

// Clear the list.
func (rf *RecentFiles) Clear() {
	rf.files = rf.files[:0]
}

// ToggleAutoLoad flips the AutoLoad field.
func (rf *RecentFiles) ToggleAutoLoad() {
	rf.AutoLoad = !rf.AutoLoad
}

// Empty returns true if there are no files in the list.
func (rf *RecentFiles) Empty() bool {
	return len(rf.files) == 0
}

// Files returns a copy of the list.
func (rf *RecentFiles) Files() []string {
	return append([]string{}, rf.files...)
}

// MostRecent returns the most recently added file. The boolean is false if
// the list is empty.
func (rf *RecentFiles) MostRecent() (string, bool) {
	if rf.Empty() {
		return "", false
	}
	return rf.files[0], true
}
