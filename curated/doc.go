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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. Unlike fmt.Errorf()
// the formatting pattern is kept with the error so that it can be used to
// identify the class of error later on.
//
//	e := curated.Errorf("firmware: %s is %d bytes", name, len(data))
//
//	if curated.Is(e, "firmware: %s is %d bytes") {
//		fmt.Println("true")
//	}
//
// Patterns are normally declared as constants in the package that owns the
// error condition. For example, the emulation package declares
// MissingFirmware and the cores use that when creating the error.
//
// The Has() function checks if a pattern occurs anywhere in the error chain.
// A curated error that wraps a non-curated error (with the %w verb) can also
// be inspected with errors.Is() and errors.As() from the standard library.
//
//	f := curated.Errorf("core fault: %v", e)
//	curated.Has(f, "firmware: %s is %d bytes") // true
//
// Error messages are normalised when Error() is called. Duplicate adjacent
// parts of the message are removed. So "fault: fault: bad opcode" becomes
// "fault: bad opcode".
package curated
