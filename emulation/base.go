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

package emulation

import (
	"fmt"

	"github.com/jetsetilly/retrocore/curated"
	"github.com/jetsetilly/retrocore/savestate"
)

// Base implements the frame and lag bookkeeping shared by all cores. It also
// latches fatal errors so that a faulted core can never be stepped again.
//
// Cores embed Base and call Step() from their Advance() function. Any part of
// the core that reads input should call InputPolled() so that the frame is
// not counted as a lag frame.
type Base struct {
	systemID string

	frame      int
	lagCount   int
	isLagFrame bool

	// set during a frame when input is read
	polled bool

	fault    error
	disposed bool

	services   ServiceProvider
	controller Controller
}

// NewBase is the preferred method of initialisation for the Base type.
func NewBase(systemID string) Base {
	return Base{
		systemID:   systemID,
		controller: NoInput,
	}
}

// Step runs the frame function and updates the counters. The frame counter is
// incremented before the frame function is called.
//
// An error returned by the frame function or a panic raised by it is latched
// as a CoreFault. Once latched, the fault is returned by every subsequent
// call to Step() and the frame function is never called again.
func (b *Base) Step(frame func() error) (err error) {
	if b.disposed {
		return curated.Errorf(Disposed)
	}
	if b.fault != nil {
		return b.fault
	}

	b.frame++
	b.polled = false

	defer func() {
		if r := recover(); r != nil {
			b.fault = curated.Errorf(CoreFault, fmt.Errorf("%v", r))
			err = b.fault
		}
	}()

	if err := frame(); err != nil {
		if !curated.Is(err, CoreFault) {
			err = curated.Errorf(CoreFault, err)
		}
		b.fault = err
		return err
	}

	b.isLagFrame = !b.polled
	if b.isLagFrame {
		b.lagCount++
	}

	return nil
}

// InputPolled indicates that input has been read during the current frame.
func (b *Base) InputPolled() {
	b.polled = true
}

// Fault returns the latched fault, if any.
func (b *Base) Fault() error {
	return b.fault
}

// Frame implements the Emulator interface.
func (b *Base) Frame() int {
	return b.frame
}

// LagCount implements the Emulator interface.
func (b *Base) LagCount() int {
	return b.lagCount
}

// SetLagCount implements the Emulator interface.
func (b *Base) SetLagCount(lagCount int) {
	b.lagCount = lagCount
}

// IsLagFrame implements the Emulator interface.
func (b *Base) IsLagFrame() bool {
	return b.isLagFrame
}

// ResetCounters implements the Emulator interface.
func (b *Base) ResetCounters() {
	b.frame = 0
	b.lagCount = 0
	b.isLagFrame = false
}

// SystemID implements the Emulator interface.
func (b *Base) SystemID() string {
	return b.systemID
}

// ServiceProvider implements the Emulator interface.
func (b *Base) ServiceProvider() *ServiceProvider {
	return &b.services
}

// SetController implements the Emulator interface. A nil controller is the
// same as NoInput.
func (b *Base) SetController(c Controller) {
	if c == nil {
		c = NoInput
	}
	b.controller = c
}

// Controller returns the current controller.
func (b *Base) Controller() Controller {
	return b.controller
}

// MarkDisposed records that the core has been disposed. Returns false if
// it was already disposed, in which case resources should not be released a
// second time.
func (b *Base) MarkDisposed() bool {
	if b.disposed {
		return false
	}
	b.disposed = true
	return true
}

// IsDisposed returns true if MarkDisposed() has been called.
func (b *Base) IsDisposed() bool {
	return b.disposed
}

// SyncState stores the counters in the order Frame, LagCount, IsLagFrame.
func (b *Base) SyncState(s *savestate.Serializer) {
	s.SyncInt("Frame", &b.frame)
	s.SyncInt("LagCount", &b.lagCount)
	s.SyncBool("IsLagFrame", &b.isLagFrame)
}
