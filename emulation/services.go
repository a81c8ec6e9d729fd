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
	"github.com/jetsetilly/retrocore/memorydomains"
)

// Capability is an optional feature of a core.
type Capability int

// List of capabilities.
const (
	CapVideo Capability = iota
	CapSound
	CapState
	CapMemoryDomains
)

func (c Capability) String() string {
	switch c {
	case CapVideo:
		return "video"
	case CapSound:
		return "sound"
	case CapState:
		return "savestates"
	case CapMemoryDomains:
		return "memory domains"
	}
	return "unknown capability"
}

// ServiceProvider records which capabilities a core supports. Cores register
// each supported capability during construction. A capability that has not
// been registered is unsupported.
type ServiceProvider struct {
	video   VideoProvider
	sound   SoundProvider
	state   Statable
	domains *memorydomains.Registry
}

// RegisterVideo registers the video capability.
func (sp *ServiceProvider) RegisterVideo(v VideoProvider) {
	sp.video = v
}

// RegisterSound registers the sound capability.
func (sp *ServiceProvider) RegisterSound(s SoundProvider) {
	sp.sound = s
}

// RegisterState registers the savestate capability.
func (sp *ServiceProvider) RegisterState(s Statable) {
	sp.state = s
}

// RegisterMemoryDomains registers the memory domains capability.
func (sp *ServiceProvider) RegisterMemoryDomains(reg *memorydomains.Registry) {
	sp.domains = reg
}

// Video returns the video provider of the core.
func (sp *ServiceProvider) Video() (VideoProvider, bool) {
	return sp.video, sp.video != nil
}

// Sound returns the sound provider of the core.
func (sp *ServiceProvider) Sound() (SoundProvider, bool) {
	return sp.sound, sp.sound != nil
}

// State returns the savestate implementation of the core.
func (sp *ServiceProvider) State() (Statable, bool) {
	return sp.state, sp.state != nil
}

// MemoryDomains returns the memory domain registry of the core.
func (sp *ServiceProvider) MemoryDomains() (*memorydomains.Registry, bool) {
	return sp.domains, sp.domains != nil
}

// Supports returns true if the capability has been registered.
func (sp *ServiceProvider) Supports(c Capability) bool {
	switch c {
	case CapVideo:
		return sp.video != nil
	case CapSound:
		return sp.sound != nil
	case CapState:
		return sp.state != nil
	case CapMemoryDomains:
		return sp.domains != nil
	}
	return false
}
