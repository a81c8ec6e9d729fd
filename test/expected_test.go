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

package test_test

import (
	"fmt"
	"testing"

	"github.com/jetsetilly/retrocore/test"
)

func TestExpectations(t *testing.T) {
	test.ExpectSuccess(t, true)
	test.ExpectFailure(t, false)

	var err error
	test.ExpectSuccess(t, err)

	err = fmt.Errorf("test")
	test.ExpectFailure(t, err)

	test.ExpectEquality(t, 10, 10)
	test.ExpectInequality(t, uint8(10), 11)
	test.ExpectEquality(t, "foo", "foo")
	test.ExpectSliceEquality(t, []byte{1, 2, 3}, []byte{1, 2, 3})
}

func TestWriter(t *testing.T) {
	tw := &test.Writer{}
	fmt.Fprintf(tw, "hello %d", 1)
	test.ExpectSuccess(t, tw.Compare("hello 1"))
	tw.Clear()
	test.ExpectSuccess(t, tw.Compare(""))
}
