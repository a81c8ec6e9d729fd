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

package imageloader

import (
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/jetsetilly/retrocore/curated"
	"github.com/jetsetilly/retrocore/emulation"
)

// Sentinal error patterns.
const (
	LoaderError   = "imageloader: %v"
	NoImageFile   = "imageloader: no image file in %s archive"
	ImageTooLarge = "imageloader: image exceeds %d bytes"
	UnknownSystem = "imageloader: cannot determine system for %s"
)

// maximum size of a program image. CD images are not loaded by this package
const maxImageSize = 8 * 1024 * 1024

// Loader is used to specify the program image to give to an emulation core.
type Loader struct {
	// filename of image to load
	Filename string

	// the system ID of the core that should be used with the image. empty
	// string or "AUTO" indicates that the file extension should be used
	System string

	// expected hash of the loaded image. empty string indicates that the hash
	// is unknown and need not be validated. after a load operation the value
	// will be the hash of the loaded data
	//
	// in the case of archived images, the hash is of the extracted file
	Hash string

	// copy of the loaded data. subsequent calls to Load() will not reload
	// the data
	Data []byte

	// the name of the file in the archive that was used. empty if the image
	// was not archived
	ArchiveEntry string
}

// NewLoader is the preferred method of initialisation for the Loader type.
//
// The system argument will be used to set the System field, unless the
// argument is either "AUTO" or the empty string. In which case the file
// extension is used to set the field. For archived images the System field
// will be set after Load() from the extension of the archived file.
func NewLoader(filename string, system string) Loader {
	ld := Loader{
		Filename: filename,
	}

	system = strings.TrimSpace(system)
	if system != "" && strings.ToUpper(system) != "AUTO" {
		ld.System = system
	} else {
		ld.System = systemFromFilename(filename)
	}

	return ld
}

// ShortName returns a shortened version of the Loader filename.
func (ld Loader) ShortName() string {
	name := ld.Filename
	if ld.ArchiveEntry != "" {
		name = ld.ArchiveEntry
	}
	name = path.Base(name)
	return strings.TrimSuffix(name, path.Ext(name))
}

// HasLoaded returns true if Load() has been successfully called.
func (ld Loader) HasLoaded() bool {
	return len(ld.Data) > 0
}

// GameInfo returns the information about the image that is given to a core
// on construction. The options string is of the form "key::value; key::value".
func (ld Loader) GameInfo(options string) emulation.GameInfo {
	return emulation.GameInfo{
		Name:    ld.ShortName(),
		Hash:    ld.Hash,
		Options: emulation.ParseGameOptions(options),
	}
}

// Load the image data. Loader filenames with a valid schema will use that
// method to load the data. Currently supported schemes are HTTP and local
// files.
func (ld *Loader) Load() error {
	if len(ld.Data) > 0 {
		return nil
	}

	scheme := "file"

	u, err := url.Parse(ld.Filename)
	if err == nil {
		scheme = u.Scheme
	}

	var data []byte

	switch scheme {
	case "http":
		fallthrough
	case "https":
		resp, err := http.Get(ld.Filename)
		if err != nil {
			return curated.Errorf(LoaderError, err)
		}
		defer resp.Body.Close()

		data, err = limitedRead(resp.Body)
		if err != nil {
			return err
		}

	case "file":
		fallthrough

	case "":
		f, err := os.Open(ld.Filename)
		if err != nil {
			return curated.Errorf(LoaderError, err)
		}
		defer f.Close()

		data, err = limitedRead(f)
		if err != nil {
			return err
		}

	default:
		return curated.Errorf(LoaderError, fmt.Sprintf("unsupported URL scheme (%s)", scheme))
	}

	if f := detectArchive(data); f != formatRaw {
		data, ld.ArchiveEntry, err = extract(f, data)
		if err != nil {
			return err
		}
		if ld.System == "" || ld.System == systemFromFilename(ld.Filename) {
			ld.System = systemFromFilename(ld.ArchiveEntry)
		}
	}

	if ld.System == "" {
		return curated.Errorf(UnknownSystem, ld.Filename)
	}

	// generate hash
	hash := fmt.Sprintf("%x", sha1.Sum(data))

	// check for hash consistency
	if ld.Hash != "" && ld.Hash != hash {
		return curated.Errorf(LoaderError, "unexpected hash value")
	}

	ld.Hash = hash
	ld.Data = data

	return nil
}

// limitedRead reads from r up to maxImageSize bytes.
func limitedRead(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxImageSize+1))
	if err != nil {
		return nil, curated.Errorf(LoaderError, err)
	}
	if len(data) > maxImageSize {
		return nil, curated.Errorf(ImageTooLarge, maxImageSize)
	}
	return data, nil
}
