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

// Package imageloader is used to specify the program image that is to be
// given to an emulation core.
//
// When the image is ready to be loaded, the Load() function should be used.
// The Load() function handles loading of data from different sources.
// Currently local files and data over HTTP are supported.
//
// Images can be stored in an archive. ZIP, gzip (including tar.gz), 7z and RAR
// archives are recognised by their magic bytes. The first file in the archive
// with a recognised extension is used.
//
// The simplest instance of the Loader type:
//
//	ld := imageloader.Loader{
//		Filename: "tapes/Harrier Attack.wav",
//	}
//
// It is preferred however that the NewLoader() function is used. The
// NewLoader() function will set the System field automatically according to
// the filename extension.
package imageloader
