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
	"encoding/binary"
	"io"
	"math"
	"strings"

	"github.com/jetsetilly/retrocore/curated"
)

// Sentinal error patterns.
const (
	// a field could not be read or written. the first value is the section
	// path and field name, the second is the underlying error
	FieldError = "savestate: %s: %v"

	// a value is too large for the field width used in the state
	RangeError = "savestate: %s: value %d does not fit in %d bits"

	// a blob in the state is not the size expected by the component
	BlobSizeError = "savestate: %s: blob is %d bytes, expecting %d"
)

// Syncer is implemented by every component that can be saved to and restored
// from a savestate. The same function is used for both directions.
type Syncer interface {
	SyncState(s *Serializer)
}

// Serializer is the single entry point for saving and loading state. Components
// call the Sync functions in a fixed order and the Serializer either writes the
// current value or overwrites it with the value from the state, depending on
// whether the Serializer was created with NewWriter() or NewReader().
//
// The format is positional. Section and field names are used only in error
// messages and are never written.
//
// Errors are sticky. After the first error all further Sync calls do nothing
// and the error is returned by Err().
type Serializer struct {
	w io.Writer
	r io.Reader

	sections []string
	err      error

	scratch [8]byte
}

// NewWriter creates a Serializer that writes state to w.
func NewWriter(w io.Writer) *Serializer {
	return &Serializer{w: w}
}

// NewReader creates a Serializer that restores state from r.
func NewReader(r io.Reader) *Serializer {
	return &Serializer{r: r}
}

// IsReader returns true if the Serializer is restoring state.
func (s *Serializer) IsReader() bool {
	return s.r != nil
}

// IsWriter returns true if the Serializer is saving state.
func (s *Serializer) IsWriter() bool {
	return s.w != nil
}

// Err returns the first error encountered.
func (s *Serializer) Err() error {
	return s.err
}

// BeginSection pushes a name onto the section path.
func (s *Serializer) BeginSection(name string) {
	s.sections = append(s.sections, name)
}

// EndSection pops the most recent section name.
func (s *Serializer) EndSection() {
	if len(s.sections) > 0 {
		s.sections = s.sections[:len(s.sections)-1]
	}
}

// Sync is a convenience function that calls SyncState() on the syncer inside
// a named section.
func (s *Serializer) Sync(name string, c Syncer) {
	s.BeginSection(name)
	c.SyncState(s)
	s.EndSection()
}

func (s *Serializer) path(field string) string {
	if len(s.sections) == 0 {
		return field
	}
	return strings.Join(s.sections, ".") + "." + field
}

func (s *Serializer) fail(field string, err error) {
	if s.err == nil {
		s.err = curated.Errorf(FieldError, s.path(field), err)
	}
}

// transfer n bytes of the scratch area in the current direction
func (s *Serializer) transfer(field string, b []byte) bool {
	if s.err != nil {
		return false
	}
	var err error
	if s.r != nil {
		_, err = io.ReadFull(s.r, b)
	} else {
		_, err = s.w.Write(b)
	}
	if err != nil {
		s.fail(field, err)
		return false
	}
	return true
}

// SyncBool stores a boolean as a single byte. Any non-zero byte is read as
// true.
func (s *Serializer) SyncBool(name string, v *bool) {
	b := s.scratch[:1]
	if s.IsWriter() {
		b[0] = 0
		if *v {
			b[0] = 1
		}
	}
	if s.transfer(name, b) && s.IsReader() {
		*v = b[0] != 0
	}
}

// SyncUint8 stores a single byte.
func (s *Serializer) SyncUint8(name string, v *uint8) {
	b := s.scratch[:1]
	if s.IsWriter() {
		b[0] = *v
	}
	if s.transfer(name, b) && s.IsReader() {
		*v = b[0]
	}
}

// SyncUint16 stores a little-endian 16 bit value.
func (s *Serializer) SyncUint16(name string, v *uint16) {
	b := s.scratch[:2]
	if s.IsWriter() {
		binary.LittleEndian.PutUint16(b, *v)
	}
	if s.transfer(name, b) && s.IsReader() {
		*v = binary.LittleEndian.Uint16(b)
	}
}

// SyncUint32 stores a little-endian 32 bit value.
func (s *Serializer) SyncUint32(name string, v *uint32) {
	b := s.scratch[:4]
	if s.IsWriter() {
		binary.LittleEndian.PutUint32(b, *v)
	}
	if s.transfer(name, b) && s.IsReader() {
		*v = binary.LittleEndian.Uint32(b)
	}
}

// SyncUint64 stores a little-endian 64 bit value.
func (s *Serializer) SyncUint64(name string, v *uint64) {
	b := s.scratch[:8]
	if s.IsWriter() {
		binary.LittleEndian.PutUint64(b, *v)
	}
	if s.transfer(name, b) && s.IsReader() {
		*v = binary.LittleEndian.Uint64(b)
	}
}

// SyncInt stores a Go int as a little-endian signed 32 bit value. Values that
// do not fit are an error.
func (s *Serializer) SyncInt(name string, v *int) {
	if s.err != nil {
		return
	}
	var u uint32
	if s.IsWriter() {
		if *v < math.MinInt32 || *v > math.MaxInt32 {
			s.err = curated.Errorf(RangeError, s.path(name), *v, 32)
			return
		}
		u = uint32(int32(*v))
	}
	s.SyncUint32(name, &u)
	if s.err == nil && s.IsReader() {
		*v = int(int32(u))
	}
}

// SyncInt64 stores a little-endian signed 64 bit value.
func (s *Serializer) SyncInt64(name string, v *int64) {
	u := uint64(*v)
	s.SyncUint64(name, &u)
	if s.err == nil && s.IsReader() {
		*v = int64(u)
	}
}

// SyncBytes stores a fixed length byte slice. The length is not stored and
// when reading the slice must already be the correct length.
func (s *Serializer) SyncBytes(name string, v []byte) {
	s.transfer(name, v)
}

// SyncUint16s stores a fixed length slice of 16 bit values.
func (s *Serializer) SyncUint16s(name string, v []uint16) {
	for i := range v {
		s.SyncUint16(name, &v[i])
	}
}

// MaxBlobSize is the largest blob that SyncBlob() will read or write. The
// length prefix of a damaged state could otherwise ask for up to 4GB.
const MaxBlobSize = 64 << 20

// SyncBlob stores an opaque, length prefixed block of data. This is used for
// state owned by something other than the Go code, for example a native
// engine or a third-party CPU package.
//
// When writing, save() is called and its result is stored. When reading, the
// stored data is passed to load().
func (s *Serializer) SyncBlob(name string, save func() ([]byte, error), load func([]byte) error) {
	if s.err != nil {
		return
	}

	if s.IsWriter() {
		data, err := save()
		if err != nil {
			s.fail(name, err)
			return
		}
		if len(data) > MaxBlobSize {
			s.fail(name, curated.Errorf("blob of %d bytes is larger than %d", len(data), MaxBlobSize))
			return
		}
		n := uint32(len(data))
		s.SyncUint32(name, &n)
		s.SyncBytes(name, data)
		return
	}

	var n uint32
	s.SyncUint32(name, &n)
	if s.err != nil {
		return
	}
	if n > MaxBlobSize {
		s.fail(name, curated.Errorf("blob of %d bytes is larger than %d", n, MaxBlobSize))
		return
	}
	data := make([]byte, n)
	if !s.transfer(name, data) {
		return
	}
	if err := load(data); err != nil {
		s.fail(name, err)
	}
}

// SyncFixedBlob is like SyncBlob() but the blob must be exactly size bytes
// long.
func (s *Serializer) SyncFixedBlob(name string, size int, save func([]byte) error, load func([]byte) error) {
	if s.err != nil {
		return
	}
	s.SyncBlob(name,
		func() ([]byte, error) {
			data := make([]byte, size)
			return data, save(data)
		},
		func(data []byte) error {
			if len(data) != size {
				return curated.Errorf(BlobSizeError, s.path(name), len(data), size)
			}
			return load(data)
		})
}
