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

package savestate_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/jetsetilly/retrocore/curated"
	"github.com/jetsetilly/retrocore/savestate"
	"github.com/jetsetilly/retrocore/test"
)

type component struct {
	frame    int
	lag      bool
	data     uint8
	addr     uint16
	cycles   uint64
	ram      []byte
	external []byte
}

func (c *component) SyncState(s *savestate.Serializer) {
	s.SyncInt("Frame", &c.frame)
	s.SyncBool("IsLag", &c.lag)
	s.SyncUint8("Data", &c.data)
	s.SyncUint16("Addr", &c.addr)
	s.SyncUint64("Cycles", &c.cycles)
	s.SyncBytes("RAM", c.ram)
	s.SyncBlob("External",
		func() ([]byte, error) { return c.external, nil },
		func(d []byte) error {
			c.external = append(c.external[:0], d...)
			return nil
		})
}

func TestLayout(t *testing.T) {
	c := &component{
		frame:    -2,
		lag:      true,
		data:     0x82,
		addr:     0xf782,
		cycles:   1,
		ram:      []byte{0xaa, 0xbb},
		external: []byte{1, 2, 3},
	}

	var b bytes.Buffer
	s := savestate.NewWriter(&b)
	s.Sync("Test", c)
	test.ExpectSuccess(t, s.Err())

	// positional little-endian layout with no section markers
	expected := []byte{
		0xfe, 0xff, 0xff, 0xff, // frame
		0x01,       // lag
		0x82,       // data
		0x82, 0xf7, // addr
		0x01, 0, 0, 0, 0, 0, 0, 0, // cycles
		0xaa, 0xbb, // ram
		0x03, 0x00, 0x00, 0x00, 1, 2, 3, // blob
	}
	test.ExpectSliceEquality(t, b.Bytes(), expected)
}

func TestRoundTrip(t *testing.T) {
	c := &component{frame: 1000, data: 0x92, addr: 0xf400, cycles: 79872, ram: []byte{1, 2, 3, 4}, external: []byte{9}}

	var b savestate.Buffer
	data, err := b.Save(func(s *savestate.Serializer) error {
		c.SyncState(s)
		return nil
	})
	test.ExpectSuccess(t, err)

	d := &component{ram: make([]byte, 4)}
	err = savestate.Load(data, func(s *savestate.Serializer) error {
		d.SyncState(s)
		return nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, d.frame, c.frame)
	test.ExpectEquality(t, d.lag, c.lag)
	test.ExpectEquality(t, d.data, c.data)
	test.ExpectEquality(t, d.addr, c.addr)
	test.ExpectEquality(t, d.cycles, c.cycles)
	test.ExpectSliceEquality(t, d.ram, c.ram)
	test.ExpectSliceEquality(t, d.external, c.external)
}

func TestTruncated(t *testing.T) {
	c := &component{ram: make([]byte, 4)}
	s := savestate.NewReader(bytes.NewReader([]byte{1, 0, 0, 0, 1}))
	s.Sync("Test", c)
	test.ExpectFailure(t, s.Err())
	test.ExpectSuccess(t, curated.Is(s.Err(), savestate.FieldError))

	// the error message names the section and field that failed
	test.ExpectEquality(t, s.Err().Error(), "savestate: Test.Data: EOF")

	// fields read before the error are kept
	test.ExpectEquality(t, c.frame, 1)
	test.ExpectEquality(t, c.lag, true)
}

func TestIntRange(t *testing.T) {
	v := 1 << 40
	var b bytes.Buffer
	s := savestate.NewWriter(&b)
	s.SyncInt("Big", &v)
	test.ExpectSuccess(t, curated.Is(s.Err(), savestate.RangeError))
	test.ExpectEquality(t, b.Len(), 0)
}

func TestBlobLoadError(t *testing.T) {
	var b bytes.Buffer
	s := savestate.NewWriter(&b)
	s.SyncFixedBlob("Engine", 4,
		func(d []byte) error { copy(d, []byte{1, 2, 3, 4}); return nil },
		nil)
	test.ExpectSuccess(t, s.Err())

	// reading into a component that expects a different blob size
	r := savestate.NewReader(bytes.NewReader(b.Bytes()))
	r.SyncFixedBlob("Engine", 8, nil, func(d []byte) error { return nil })
	test.ExpectSuccess(t, curated.Has(r.Err(), savestate.BlobSizeError))

	// errors returned by the load function are reported
	r = savestate.NewReader(bytes.NewReader(b.Bytes()))
	r.SyncBlob("Engine", nil, func(d []byte) error { return fmt.Errorf("engine refused state") })
	test.ExpectFailure(t, r.Err())
}

func TestBlobTooLarge(t *testing.T) {
	// a length prefix of 4GB
	r := savestate.NewReader(bytes.NewReader([]byte{0xff, 0xff, 0xff, 0xff, 0x00}))
	var called bool
	r.SyncBlob("Engine", nil, func(d []byte) error {
		called = true
		return nil
	})
	test.ExpectSuccess(t, curated.Is(r.Err(), savestate.FieldError))
	test.ExpectFailure(t, called)

	// one byte over the limit is also refused
	var b bytes.Buffer
	w := savestate.NewWriter(&b)
	w.SyncBlob("Engine", func() ([]byte, error) {
		return make([]byte, savestate.MaxBlobSize+1), nil
	}, nil)
	test.ExpectSuccess(t, curated.Is(w.Err(), savestate.FieldError))
	test.ExpectEquality(t, b.Len(), 0)
}
