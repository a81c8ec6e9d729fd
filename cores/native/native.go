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

// Package native manages handles to emulation engines that live outside of
// the Go runtime. The handle is owned by a Resource which guarantees that the
// engine is destroyed exactly once, however many times Release() is called.
package native

import (
	"fmt"
	"sync"

	"github.com/jetsetilly/retrocore/curated"
)

// Sentinal error patterns.
const (
	ReleaseError = "native: release %s: %v"
	NoEngine     = "native: %s: no engine"
)

// Handle identifies an engine instance.
type Handle uintptr

// NoHandle is the value of a handle that does not refer to an engine.
const NoHandle Handle = 0

func (h Handle) String() string {
	if h == NoHandle {
		return "no handle"
	}
	return fmt.Sprintf("%#x", uintptr(h))
}

// Resource owns a Handle and the function that destroys the engine.
type Resource struct {
	crit sync.Mutex

	name    string
	handle  Handle
	release func(Handle) error
}

// NewResource is the preferred method of initialisation for the Resource
// type. The name is used in error messages. A handle of NoHandle results in a
// NoEngine error.
func NewResource(name string, handle Handle, release func(Handle) error) (*Resource, error) {
	if handle == NoHandle {
		return nil, curated.Errorf(NoEngine, name)
	}
	return &Resource{
		name:    name,
		handle:  handle,
		release: release,
	}, nil
}

// Handle returns the engine handle. NoHandle once the resource is released.
func (r *Resource) Handle() Handle {
	r.crit.Lock()
	defer r.crit.Unlock()
	return r.handle
}

// Valid returns true if the resource has not been released.
func (r *Resource) Valid() bool {
	return r.Handle() != NoHandle
}

// Release destroys the engine. Only the first call has any effect. The
// handle is set to NoHandle even if the release function fails.
func (r *Resource) Release() error {
	r.crit.Lock()
	defer r.crit.Unlock()

	if r.handle == NoHandle {
		return nil
	}
	h := r.handle
	r.handle = NoHandle

	if r.release == nil {
		return nil
	}
	if err := r.release(h); err != nil {
		return curated.Errorf(ReleaseError, r.name, err)
	}
	return nil
}
