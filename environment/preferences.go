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

package environment

import (
	"fmt"

	"github.com/jetsetilly/retrocore/prefs"
)

// Preferences for an emulation.
type Preferences struct {
	// output sample rate for sound providers
	SampleRate prefs.Int

	// start the tape transport when the motor is switched on
	TapeAutoPlay prefs.Bool

	// the three bit distributor ID reported by the CPC PPI. 7 is Amstrad
	DistributorID prefs.Int

	// CPC screen refresh. true for 50Hz
	Refresh50Hz prefs.Bool

	// number of snapshots kept by the rewind system and the number of frames
	// between each snapshot
	RewindDepth     prefs.Int
	RewindFrequency prefs.Int
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() *Preferences {
	p := &Preferences{}

	p.SampleRate.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 8000 || v.(int) > 192000 {
			return fmt.Errorf("sample rate out of range (%d)", v.(int))
		}
		return nil
	})

	p.DistributorID.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 0 || v.(int) > 7 {
			return fmt.Errorf("distributor ID must be between 0 and 7 (%d)", v.(int))
		}
		return nil
	})

	p.RewindDepth.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 1 {
			return fmt.Errorf("rewind depth must be at least one (%d)", v.(int))
		}
		return nil
	})

	p.RewindFrequency.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 1 {
			return fmt.Errorf("rewind frequency must be at least one (%d)", v.(int))
		}
		return nil
	})

	p.SetDefaults()

	return p
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	// errors from the pre hooks are not possible with these values
	_ = p.SampleRate.Set(44100)
	_ = p.TapeAutoPlay.Set(true)
	_ = p.DistributorID.Set(7)
	_ = p.Refresh50Hz.Set(true)
	_ = p.RewindDepth.Set(100)
	_ = p.RewindFrequency.Set(1)
}

// Named returns the preferences keyed by the name used on the command line.
func (p *Preferences) Named() map[string]prefs.Pref {
	return map[string]prefs.Pref{
		"samplerate":      &p.SampleRate,
		"tape.autoplay":   &p.TapeAutoPlay,
		"cpc.distributor": &p.DistributorID,
		"cpc.50hz":        &p.Refresh50Hz,
		"rewind.depth":    &p.RewindDepth,
		"rewind.freq":     &p.RewindFrequency,
	}
}
