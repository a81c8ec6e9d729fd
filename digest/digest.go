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

// Package digest contains implementations of the scheduler.Observer
// interface such that a cryptographic hash of a core's video and audio output
// is produced. The hash can then be used to compare output from subsequent
// emulation executions - if a new hash differs from a previously recorded
// value then something has changed. We use this as the basis for determinism
// tests and playback verification.
//
// The hash is chained. The hash of the previous frame is included in the data
// for the next frame, so the hash at any frame depends on every frame before
// it.
package digest

import (
	"crypto/sha1"
	"fmt"
)

// Sentinal error patterns.
const (
	NoVideo = "digest: %s core has no video output"
	NoSound = "digest: %s core has no sound output"
)

// Digest implementations should return a cryptographic hash in response to a
// Hash() request. Generation of the hash achieved via another interface.
type Digest interface {
	Hash() string
	ResetDigest()
}

type chain struct {
	digest [sha1.Size]byte
	buffer []byte
}

func (c *chain) hash() string {
	return fmt.Sprintf("%x", c.digest)
}

func (c *chain) reset() {
	clear(c.digest[:])
}

// prepare the buffer for n bytes of frame data. the previous digest value is
// placed at the head of the buffer
func (c *chain) prepare(n int) []byte {
	l := len(c.digest) + n
	if cap(c.buffer) < l {
		c.buffer = make([]byte, l)
	}
	c.buffer = c.buffer[:l]
	copy(c.buffer, c.digest[:])
	return c.buffer[len(c.digest):]
}

func (c *chain) sum() {
	c.digest = sha1.Sum(c.buffer)
}
