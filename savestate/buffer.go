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

package savestate

import (
	"bytes"
)

// Buffer is a reusable destination for savestates. Saving a state many times
// a second, as the rewind system does, would otherwise allocate a new slice
// every time.
//
// The zero value is ready to use.
type Buffer struct {
	buf bytes.Buffer
}

// Save calls save() with a writing Serializer and returns the saved bytes.
// The returned slice is owned by the Buffer and is only valid until the next
// call to Save().
func (b *Buffer) Save(save func(s *Serializer) error) ([]byte, error) {
	b.buf.Reset()
	s := NewWriter(&b.buf)
	if err := save(s); err != nil {
		return nil, err
	}
	if s.Err() != nil {
		return nil, s.Err()
	}
	return b.buf.Bytes(), nil
}

// Load is a convenience function that calls load() with a Serializer that reads
// from data.
func Load(data []byte, load func(s *Serializer) error) error {
	s := NewReader(bytes.NewReader(data))
	if err := load(s); err != nil {
		return err
	}
	return s.Err()
}
