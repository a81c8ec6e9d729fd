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

// Package wavwriter allows writing of audio data to disk as a WAV file. Note
// that audio data is buffered in memory in its entirity, and written to disk
// when Close() is called. It is therefore probably only suitable for testing
// purposes.
package wavwriter

import (
	"os"

	"github.com/jetsetilly/retrocore/curated"
	"github.com/jetsetilly/retrocore/emulation"
	"github.com/jetsetilly/retrocore/environment"
	"github.com/jetsetilly/retrocore/logger"
	"github.com/youpy/go-wav"
)

// Sentinal error patterns.
const (
	WavWriterError = "wavwriter: %v"
)

// WavWriter implements the scheduler.Observer interface. Stereo samples are
// collected from the core at the end of every frame.
type WavWriter struct {
	env        *environment.Environment
	filename   string
	buffer     []wav.Sample
	sampleRate int
}

// New is the preferred method of initialisation for the WavWriter type.
func New(env *environment.Environment, filename string) (*WavWriter, error) {
	aw := &WavWriter{
		env:      env,
		filename: filename,
		buffer:   make([]wav.Sample, 0),
	}

	return aw, nil
}

// EndFrame implements the scheduler.Observer interface. The samples are not
// discarded so other observers can still collect them.
func (aw *WavWriter) EndFrame(emu emulation.Emulator) error {
	sp, ok := emu.ServiceProvider().Sound()
	if !ok {
		return curated.Errorf(WavWriterError, "core has no sound")
	}

	if aw.sampleRate == 0 {
		aw.sampleRate = sp.SampleRate()
	} else if aw.sampleRate != sp.SampleRate() {
		return curated.Errorf(WavWriterError, "sample rate changed during recording")
	}

	samples, n := sp.Samples()
	n = min(n, len(samples)/2)
	for i := 0; i < n; i++ {
		w := wav.Sample{}
		w.Values[0] = int(samples[i*2])
		w.Values[1] = int(samples[i*2+1])
		aw.buffer = append(aw.buffer, w)
	}

	return nil
}

// Len returns the number of stereo samples collected so far.
func (aw *WavWriter) Len() int {
	return len(aw.buffer)
}

// Close writes the collected samples to the file.
func (aw *WavWriter) Close() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf(WavWriterError, err)
	}
	defer func() {
		err := f.Close()
		if err != nil {
			rerr = curated.Errorf(WavWriterError, err)
		}
	}()

	sampleRate := aw.sampleRate
	if sampleRate == 0 {
		sampleRate = aw.env.Prefs.SampleRate.Get().(int)
	}

	enc := wav.NewWriter(f, uint32(len(aw.buffer)), 2, uint32(sampleRate), 16)
	if enc == nil {
		return curated.Errorf(WavWriterError, "bad parameters for wav encoding")
	}

	logger.Logf(aw.env, "wavwriter", "writing audio to %s", aw.filename)
	if err := enc.WriteSamples(aw.buffer); err != nil {
		return curated.Errorf(WavWriterError, err)
	}

	return nil
}
