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

package psg

import (
	"github.com/jetsetilly/retrocore/savestate"
)

// the tone, noise and envelope generators are clocked at one eighth of the
// PSG clock
const prescale = 8

// output level for each of the sixteen volume settings. the AY volume curve is
// logarithmic. the loudest level leaves room for three channels in an int16
const maxLevel = 10000

var volumeTable = [16]int{
	0, 128, 185, 271, 400, 591, 823, 1346,
	1586, 2549, 3561, 4469, 5641, 7083, 8422, maxLevel,
}

// mixer register bits
const (
	mixerToneDisable  = 0x01
	mixerNoiseDisable = 0x08
	volumeEnvelope    = 0x10
)

// envelope shape bits
const (
	envHold      = 0x01
	envAlternate = 0x02
	envAttack    = 0x04
	envContinue  = 0x08
)

type generator struct {
	clock      int
	sampleRate int

	prescale int

	toneCount [3]int
	toneOut   [3]bool

	noiseCount int
	noiseLFSR  uint32
	noiseOut   bool

	envShape   uint8
	envCount   int
	envStep    int
	envAttack  bool
	envHolding bool
	envLevel   int

	// sample rate conversion. sampleAcc accumulates the sample rate on every
	// tick. a sample is output when it reaches the tick rate
	sampleAcc int
	sumL      int
	sumR      int
	sumN      int

	samples []int16
}

func (gen *generator) init(clock int, sampleRate int) {
	gen.clock = clock
	gen.sampleRate = sampleRate
}

func (gen *generator) reset() {
	gen.prescale = 0
	gen.toneCount = [3]int{}
	gen.toneOut = [3]bool{}
	gen.noiseCount = 0
	gen.noiseLFSR = 1
	gen.noiseOut = false
	gen.restartEnvelope(0)
	gen.sampleAcc = 0
	gen.sumL = 0
	gen.sumR = 0
	gen.sumN = 0
	gen.samples = gen.samples[:0]
}

func (gen *generator) restartEnvelope(shape uint8) {
	gen.envShape = shape
	gen.envCount = 0
	gen.envStep = 0
	gen.envHolding = false
	gen.envAttack = shape&envAttack == envAttack
	gen.envLevel = gen.levelForStep()
}

func (gen *generator) levelForStep() int {
	if gen.envAttack {
		return gen.envStep
	}
	return 15 - gen.envStep
}

func (gen *generator) stepEnvelope() {
	if gen.envHolding {
		return
	}

	gen.envStep++
	if gen.envStep > 15 {
		if gen.envShape&envContinue == 0 {
			gen.envHolding = true
			gen.envLevel = 0
			return
		}
		if gen.envShape&envAlternate == envAlternate {
			gen.envAttack = !gen.envAttack
		}
		if gen.envShape&envHold == envHold {
			gen.envHolding = true
			if gen.envAttack {
				gen.envLevel = 15
			} else {
				gen.envLevel = 0
			}
			return
		}
		gen.envStep = 0
	}

	gen.envLevel = gen.levelForStep()
}

func (gen *generator) tick(regs *[NumRegisters]uint8) {
	for ch := 0; ch < 3; ch++ {
		period := int(regs[ch*2]) | int(regs[ch*2+1])<<8
		if period == 0 {
			period = 1
		}
		gen.toneCount[ch]++
		if gen.toneCount[ch] >= period {
			gen.toneCount[ch] = 0
			gen.toneOut[ch] = !gen.toneOut[ch]
		}
	}

	np := int(regs[RegNoise])
	if np == 0 {
		np = 1
	}
	gen.noiseCount++
	if gen.noiseCount >= np*2 {
		gen.noiseCount = 0
		fb := (gen.noiseLFSR ^ (gen.noiseLFSR >> 3)) & 1
		gen.noiseLFSR = (gen.noiseLFSR >> 1) | (fb << 16)
		gen.noiseOut = gen.noiseLFSR&1 == 1
	}

	ep := int(regs[RegEnvelopeLo]) | int(regs[RegEnvelopeHi])<<8
	if ep == 0 {
		ep = 1
	}
	gen.envCount++
	if gen.envCount >= ep*2 {
		gen.envCount = 0
		gen.stepEnvelope()
	}

	var out [3]int
	mixer := regs[RegMixer]
	for ch := 0; ch < 3; ch++ {
		tone := gen.toneOut[ch] || mixer&(mixerToneDisable<<ch) != 0
		noise := gen.noiseOut || mixer&(mixerNoiseDisable<<ch) != 0
		if tone && noise {
			vol := regs[RegVolumeA+ch]
			if vol&volumeEnvelope == volumeEnvelope {
				out[ch] = volumeTable[gen.envLevel]
			} else {
				out[ch] = volumeTable[vol&0x0f]
			}
		}
	}

	// channel A is on the left, C on the right and B is in the middle
	gen.sumL += out[0] + out[1]/2
	gen.sumR += out[2] + out[1]/2
	gen.sumN++

	gen.sampleAcc += gen.sampleRate
	if gen.sampleAcc >= gen.clock/prescale {
		gen.sampleAcc -= gen.clock / prescale
		gen.samples = append(gen.samples, int16(gen.sumL/gen.sumN), int16(gen.sumR/gen.sumN))
		gen.sumL = 0
		gen.sumR = 0
		gen.sumN = 0
	}
}

// Clock the PSG by the number of PSG clock cycles.
func (psg *PSG) Clock(cycles int) {
	for i := 0; i < cycles; i++ {
		psg.gen.prescale++
		if psg.gen.prescale >= prescale {
			psg.gen.prescale = 0
			psg.gen.tick(&psg.regs)
		}
	}
}

// Samples returns the interleaved stereo samples generated since the last
// call to DiscardSamples() and the number of sample pairs.
func (psg *PSG) Samples() ([]int16, int) {
	return psg.gen.samples, len(psg.gen.samples) / 2
}

// DiscardSamples forgets any generated samples.
func (psg *PSG) DiscardSamples() {
	psg.gen.samples = psg.gen.samples[:0]
}

// SampleRate returns the rate of the stereo output.
func (psg *PSG) SampleRate() int {
	return psg.gen.sampleRate
}

func (gen *generator) syncState(s *savestate.Serializer) {
	s.SyncInt("Prescale", &gen.prescale)
	for i := range gen.toneCount {
		s.SyncInt("ToneCount", &gen.toneCount[i])
		s.SyncBool("ToneOut", &gen.toneOut[i])
	}
	s.SyncInt("NoiseCount", &gen.noiseCount)
	s.SyncUint32("NoiseLFSR", &gen.noiseLFSR)
	s.SyncBool("NoiseOut", &gen.noiseOut)
	s.SyncUint8("EnvShape", &gen.envShape)
	s.SyncInt("EnvCount", &gen.envCount)
	s.SyncInt("EnvStep", &gen.envStep)
	s.SyncBool("EnvAttack", &gen.envAttack)
	s.SyncBool("EnvHolding", &gen.envHolding)
	s.SyncInt("EnvLevel", &gen.envLevel)
	s.SyncInt("SampleAcc", &gen.sampleAcc)
	s.SyncInt("SumL", &gen.sumL)
	s.SyncInt("SumR", &gen.sumR)
	s.SyncInt("SumN", &gen.sumN)
}
