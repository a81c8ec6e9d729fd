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

package hostaudio

import (
	"testing"

	"github.com/jetsetilly/retrocore/test"
)

func TestRing(t *testing.T) {
	r := newRing(8)

	n, err := r.Write([]byte{1, 2, 3, 4, 5})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 5)
	test.ExpectEquality(t, r.Buffered(), 5)

	out := make([]byte, 3)
	n, err = r.Read(out)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 3)
	test.ExpectSliceEquality(t, out, []byte{1, 2, 3})
	test.ExpectEquality(t, r.Buffered(), 2)

	// underflow is filled with silence
	out = make([]byte, 4)
	out[3] = 0xff
	n, _ = r.Read(out)
	test.ExpectEquality(t, n, 4)
	test.ExpectSliceEquality(t, out, []byte{4, 5, 0, 0})
	test.ExpectEquality(t, r.Buffered(), 0)
}

func TestRingOverflow(t *testing.T) {
	r := newRing(8)

	r.Write([]byte{1, 2, 3, 4, 5, 6})
	r.Write([]byte{7, 8, 9, 10, 11})
	test.ExpectEquality(t, r.Buffered(), 8)

	out := make([]byte, 8)
	r.Read(out)
	test.ExpectSliceEquality(t, out, []byte{4, 5, 6, 7, 8, 9, 10, 11})

	// larger than capacity
	r.Write([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	r.Read(out)
	test.ExpectSliceEquality(t, out, []byte{3, 4, 5, 6, 7, 8, 9, 10})

	r.Write([]byte{1, 2})
	r.Clear()
	test.ExpectEquality(t, r.Buffered(), 0)
}
