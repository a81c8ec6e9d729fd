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

// Package savestate is the binary snapshot format for emulation cores.
//
// A component implements the Syncer interface. The one SyncState() function
// handles both directions so the order in which fields are read is always the
// order in which they were written.
//
//	func (p *Port) SyncState(s *savestate.Serializer) {
//		s.SyncUint8("Data", &p.Data)
//		s.SyncBool("Input", &p.Input)
//		s.SyncInt("OpMode", &p.OpMode)
//	}
//
// The format is not self-describing. Nothing identifies a field other than its
// position in the stream and a state can only be loaded by the same version of
// the component that saved it. Integers are little-endian, booleans are a single
// byte and int values are stored as signed 32 bit numbers.
//
// State that is owned by something else (a native engine, a CPU package with
// its own serialisation) is stored as a length-prefixed blob with SyncBlob().
package savestate
