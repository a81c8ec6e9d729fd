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

// Package hostaudio plays the sound output of an emulation core through the
// host's audio device.
//
// The Audio type implements the scheduler.Observer interface, collecting the
// samples produced by the core at the end of every frame, and the tools.Sound
// interface so that sound can be paused while modal prompts are shown.
//
// Only one Audio instance can exist in a program.
package hostaudio

import (
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/jetsetilly/retrocore/curated"
	"github.com/jetsetilly/retrocore/emulation"
	"github.com/jetsetilly/retrocore/environment"
	"github.com/jetsetilly/retrocore/logger"
)

// Sentinal error patterns.
const (
	AudioError = "hostaudio: %v"
)

const logTag = "hostaudio"

// about 200ms of stereo 16bit audio at 44100Hz
const ringCapacity = 32768

// Audio is the host audio output.
type Audio struct {
	env *environment.Environment

	ctx    *oto.Context
	player *oto.Player
	ring   *ring

	sampleRate int

	crit    sync.Mutex
	playing bool

	// conversion buffer reused every frame
	bytes []byte
}

// NewAudio is the preferred method of initialisation for the Audio type. The
// sample rate is taken from the SampleRate preference.
func NewAudio(env *environment.Environment) (*Audio, error) {
	aud := &Audio{
		env:        env,
		ring:       newRing(ringCapacity),
		sampleRate: env.Prefs.SampleRate.Get().(int),
	}

	op := &oto.NewContextOptions{
		SampleRate:   aud.sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   50 * time.Millisecond,
	}

	var ready chan struct{}
	var err error
	aud.ctx, ready, err = oto.NewContext(op)
	if err != nil {
		return nil, curated.Errorf(AudioError, err)
	}
	<-ready

	aud.player = aud.ctx.NewPlayer(aud.ring)
	aud.StartSound()

	logger.Logf(env, logTag, "audio at %dHz", aud.sampleRate)

	return aud, nil
}

// EndFrame implements the scheduler.Observer interface. The samples are
// queued for playback and then discarded.
func (aud *Audio) EndFrame(emu emulation.Emulator) error {
	sp, ok := emu.ServiceProvider().Sound()
	if !ok {
		return nil
	}

	if sp.SampleRate() != aud.sampleRate {
		return curated.Errorf(AudioError, "core sample rate does not match host audio")
	}

	samples, n := sp.Samples()
	samples = samples[:min(len(samples), n*2)]

	aud.bytes = aud.bytes[:0]
	for _, s := range samples {
		aud.bytes = append(aud.bytes, byte(s), byte(s>>8))
	}
	_, _ = aud.ring.Write(aud.bytes)

	sp.DiscardSamples()

	return nil
}

// StartSound implements the tools.Sound interface.
func (aud *Audio) StartSound() {
	aud.crit.Lock()
	defer aud.crit.Unlock()

	if !aud.playing {
		aud.player.Play()
		aud.playing = true
	}
}

// StopSound implements the tools.Sound interface. Buffered audio is
// forgotten.
func (aud *Audio) StopSound() {
	aud.crit.Lock()
	defer aud.crit.Unlock()

	if aud.playing {
		aud.player.Pause()
		aud.ring.Clear()
		aud.playing = false
	}
}

// SetVolume sets the playback volume. Values are clamped to between 0.0 and
// 1.0.
func (aud *Audio) SetVolume(v float64) {
	aud.player.SetVolume(max(0.0, min(1.0, v)))
}

// Close stops playback. The Audio instance should not be used after closing.
func (aud *Audio) Close() error {
	aud.StopSound()
	if err := aud.player.Close(); err != nil {
		return curated.Errorf(AudioError, err)
	}
	return nil
}
