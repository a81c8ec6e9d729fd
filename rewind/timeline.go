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

package rewind

import (
	"github.com/jetsetilly/retrocore/curated"
)

// Timeline provides a summary of recent frames, regardless of whether a
// snapshot was taken for the frame.
//
// Useful for presenting the range of frames that are available in the rewind
// history alongside the lag state of each frame.
type Timeline struct {
	FrameNum []int
	Lag      []bool

	// These two "available" fields state the earliest and latest frames that
	// are available in the rewind history.
	//
	// The earliest information in the Timeline array fields may be different.
	AvailableStart int
	AvailableEnd   int
}

const timelineLength = 1000

func newTimeline() Timeline {
	return Timeline{
		FrameNum: make([]int, 0),
		Lag:      make([]bool, 0),
	}
}

func (tl *Timeline) add(frame int, lag bool) {
	tl.FrameNum = append(tl.FrameNum, frame)
	tl.Lag = append(tl.Lag, lag)
	if len(tl.FrameNum) > timelineLength {
		tl.FrameNum = tl.FrameNum[1:]
		tl.Lag = tl.Lag[1:]
	}
}

// remove the frame and all frames after it
func (tl *Timeline) splice(frame int) {
	for i := range tl.FrameNum {
		if tl.FrameNum[i] > frame {
			tl.FrameNum = tl.FrameNum[:i]
			tl.Lag = tl.Lag[:i]
			break // for loop
		}
	}
}

func (tl *Timeline) checkIntegrity() error {
	if len(tl.FrameNum) != len(tl.Lag) {
		return curated.Errorf("timeline arrays are different lengths")
	}

	if len(tl.FrameNum) > 1 {
		prev := tl.FrameNum[0]
		for _, fn := range tl.FrameNum[1:] {
			if fn != prev+1 {
				return curated.Errorf("frame numbers in timeline are not consecutive")
			}
			prev = fn
		}
	}

	return nil
}

// GetTimeline returns a copy of the current timeline.
func (r *Rewind) GetTimeline() (Timeline, error) {
	if err := r.timeline.checkIntegrity(); err != nil {
		return Timeline{}, err
	}

	f := r.GetFrames()
	tl := Timeline{
		FrameNum:       append([]int{}, r.timeline.FrameNum...),
		Lag:            append([]bool{}, r.timeline.Lag...),
		AvailableStart: f.Start,
		AvailableEnd:   f.End,
	}
	return tl, nil
}
