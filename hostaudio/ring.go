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
	"sync"
)

// ring is a fixed size byte buffer. When full, the oldest bytes are dropped to
// make room for new data. It is safe for concurrent use.
type ring struct {
	crit  sync.Mutex
	data  []byte
	start int
	count int
}

func newRing(capacity int) *ring {
	return &ring{
		data: make([]byte, capacity),
	}
}

// Write implements the io.Writer interface. Writing never fails.
func (r *ring) Write(p []byte) (int, error) {
	r.crit.Lock()
	defer r.crit.Unlock()

	n := len(p)

	// only the newest data fits
	if len(p) > len(r.data) {
		p = p[len(p)-len(r.data):]
	}

	// drop oldest
	if over := r.count + len(p) - len(r.data); over > 0 {
		r.start = (r.start + over) % len(r.data)
		r.count -= over
	}

	for _, b := range p {
		r.data[(r.start+r.count)%len(r.data)] = b
		r.count++
	}

	return n, nil
}

// Read implements the io.Reader interface. If there is not enough data the
// remainder of p is filled with silence.
func (r *ring) Read(p []byte) (int, error) {
	r.crit.Lock()
	defer r.crit.Unlock()

	n := min(len(p), r.count)
	for i := 0; i < n; i++ {
		p[i] = r.data[(r.start+i)%len(r.data)]
	}
	r.start = (r.start + n) % len(r.data)
	r.count -= n

	clear(p[n:])

	return len(p), nil
}

// Buffered returns the number of bytes waiting to be read.
func (r *ring) Buffered() int {
	r.crit.Lock()
	defer r.crit.Unlock()
	return r.count
}

// Clear forgets all buffered data.
func (r *ring) Clear() {
	r.crit.Lock()
	defer r.crit.Unlock()
	r.start = 0
	r.count = 0
}
