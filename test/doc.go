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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The ExpectEquality() and ExpectInequality() functions are generic and will
// work with any comparable type. ExpectSuccess() and ExpectFailure() accept
// either a bool or an error.
//
//	test.ExpectEquality(t, core.Frame(), 10)
//	test.ExpectSuccess(t, core.Advance(false, false))
//
// The Writer type captures output for comparison with an expected string and
// is useful for testing functions that write to an io.Writer.
//
// Test packages should use the test package and not the other way around.
// For that reason the test package imports no other package from this module.
package test
