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

package environment_test

import (
	"testing"

	"github.com/jetsetilly/retrocore/environment"
	"github.com/jetsetilly/retrocore/prefs"
	"github.com/jetsetilly/retrocore/test"
)

func TestEnvironment(t *testing.T) {
	env := environment.NewEnvironment(environment.MainEmulation, nil)
	test.ExpectSuccess(t, env.IsMainEmulation())
	test.ExpectSuccess(t, env.AllowLogging())

	// secondary emulations share preferences but are not allowed to log
	sec := environment.NewEnvironment("verifier", env.Prefs)
	test.ExpectFailure(t, sec.AllowLogging())
	test.ExpectSuccess(t, sec.IsEmulation("verifier"))
	test.ExpectSuccess(t, sec.Prefs == env.Prefs)
}

func TestPreferences(t *testing.T) {
	env := environment.NewEnvironment(environment.MainEmulation, nil)
	test.ExpectEquality(t, env.Prefs.SampleRate.Get().(int), 44100)
	test.ExpectFailure(t, env.Prefs.DistributorID.Set(8))
	test.ExpectFailure(t, env.Prefs.SampleRate.Set(100))

	var cl prefs.CommandLine
	cl.Push("cpc.distributor::4; rewind.depth::10")
	test.ExpectSuccess(t, cl.Apply(env.Prefs.Named()))
	test.ExpectEquality(t, env.Prefs.DistributorID.Get().(int), 4)
	test.ExpectEquality(t, env.Prefs.RewindDepth.Get().(int), 10)

	env.Normalise()
	test.ExpectEquality(t, env.Prefs.DistributorID.Get().(int), 7)
}
