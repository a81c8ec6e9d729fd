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

// MenuItem is an entry in a menu generated by the tools package. How the
// menu is presented is up to the host.
type MenuItem struct {
	Label   string
	Enabled bool
	Checked bool

	// a separator item has no label or action
	Separator bool

	// called when the item is selected. will be nil for disabled items and
	// for separators
	Action func()
}

// RecentMenu returns the menu items for the recent files list. Selecting a
// file calls the load function with the filename. The last item clears the
// list.
func RecentMenu(recent *RecentFiles, load func(filename string)) []MenuItem {
	var items []MenuItem

	if recent.Empty() {
		items = append(items, MenuItem{Label: "None"})
	} else {
		for _, f := range recent.files {
			f := f
			items = append(items, MenuItem{
				Label:   f,
				Enabled: true,
				Action:  func() { load(f) },
			})
		}
	}

	items = append(items, MenuItem{Separator: true})
	items = append(items, MenuItem{
		Label:   "Clear",
		Enabled: true,
		Action:  recent.Clear,
	})

	return items
}

// AutoLoadItem returns a menu item that toggles the AutoLoad field of the
// recent files list.
func AutoLoadItem(recent *RecentFiles) MenuItem {
	return MenuItem{
		Label:   "Auto-Load",
		Enabled: true,
		Checked: recent.AutoLoad,
		Action:  recent.ToggleAutoLoad,
	}
}
