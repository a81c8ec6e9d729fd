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

package tape

import (
	"bytes"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jetsetilly/retrocore/curated"
	"github.com/jetsetilly/retrocore/logger"
)

// Sentinal error patterns.
const (
	DecodeError = "tape: %s: %v"
	FormatError = "tape: unrecognised audio format"
)

// Format of the audio data.
type Format int

// List of valid Format values.
const (
	FormatUnknown Format = iota
	FormatWAV
	FormatMP3
)

func (f Format) String() string {
	switch f {
	case FormatWAV:
		return "WAV"
	case FormatMP3:
		return "MP3"
	}
	return "unknown"
}

// Identify the audio format from the leading bytes of the data.
func Identify(data []byte) Format {
	switch {
	case len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WAVE":
		return FormatWAV
	case len(data) >= 3 && string(data[:3]) == "ID3":
		return FormatMP3
	case len(data) >= 2 && data[0] == 0xff && data[1]&0xe0 == 0xe0:
		// MPEG frame sync
		return FormatMP3
	}
	return FormatUnknown
}

// levels is the tape signal reduced to one bit per sample.
type levels struct {
	bits       []uint64
	length     int
	sampleRate int
}

func (l *levels) push(high bool) {
	if l.length%64 == 0 {
		l.bits = append(l.bits, 0)
	}
	if high {
		l.bits[l.length/64] |= 1 << (l.length % 64)
	}
	l.length++
}

func (l *levels) at(idx int) bool {
	if idx < 0 || idx >= l.length {
		return false
	}
	return l.bits[idx/64]&(1<<(idx%64)) != 0
}

func decode(perm logger.Permission, data []byte) (levels, error) {
	switch Identify(data) {
	case FormatWAV:
		return decodeWAV(perm, data)
	case FormatMP3:
		return decodeMP3(perm, data)
	}
	return levels{}, curated.Errorf(FormatError)
}

func decodeWAV(perm logger.Permission, data []byte) (levels, error) {
	var l levels

	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return l, curated.Errorf(DecodeError, "wav", "not a valid wav file")
	}

	logger.Log(perm, logTag, "loading from wav file")

	l.sampleRate = int(dec.SampleRate)
	chans := int(dec.NumChans)
	if chans < 1 {
		chans = 1
	}

	// eight bit wav data is unsigned
	var bias int
	if dec.BitDepth == 8 {
		bias = 128
	}

	buf := &audio.IntBuffer{
		Data:   make([]int, 4096*chans),
		Format: dec.Format(),
	}

	for {
		n, err := dec.PCMBuffer(buf)
		if err != nil {
			return l, curated.Errorf(DecodeError, "wav", err)
		}
		if n == 0 {
			break
		}

		// first channel only
		for i := 0; i < n; i += chans {
			l.push(buf.Data[i]-bias > 0)
		}
	}

	return l, nil
}

func decodeMP3(perm logger.Permission, data []byte) (levels, error) {
	var l levels

	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return l, curated.Errorf(DecodeError, "mp3", err)
	}

	logger.Log(perm, logTag, "loading from mp3 file")

	// the decoded stream is always 16bit little endian stereo
	l.sampleRate = dec.SampleRate()

	chunk := make([]byte, 4096)
	for {
		n, err := dec.Read(chunk)

		// left channel only
		for i := 0; i+1 < n; i += 4 {
			s := int16(uint16(chunk[i]) | uint16(chunk[i+1])<<8)
			l.push(s > 0)
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return l, curated.Errorf(DecodeError, "mp3", err)
		}
	}

	return l, nil
}
