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
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io"
	"path"

	"github.com/bodgit/sevenzip"
	"github.com/jetsetilly/retrocore/curated"
	"github.com/nwaples/rardecode/v2"
)

type format int

const (
	formatRaw format = iota
	formatZIP
	format7z
	formatGzip
	formatRAR
)

func (f format) String() string {
	switch f {
	case formatZIP:
		return "zip"
	case format7z:
		return "7z"
	case formatGzip:
		return "gzip"
	case formatRAR:
		return "rar"
	}
	return "raw"
}

// magic bytes for archive detection
var (
	magicZIP      = []byte{0x50, 0x4b, 0x03, 0x04}
	magicZIPEmpty = []byte{0x50, 0x4b, 0x05, 0x06}
	magic7z       = []byte{0x37, 0x7a, 0xbc, 0xaf, 0x27, 0x1c}
	magicGzip     = []byte{0x1f, 0x8b}
	magicRAR      = []byte("Rar!")
)

func detectArchive(data []byte) format {
	switch {
	case bytes.HasPrefix(data, magicZIP) || bytes.HasPrefix(data, magicZIPEmpty):
		return formatZIP
	case bytes.HasPrefix(data, magic7z):
		return format7z
	case bytes.HasPrefix(data, magicRAR):
		return formatRAR
	case bytes.HasPrefix(data, magicGzip):
		return formatGzip
	}
	return formatRaw
}

// extract returns the data and name of the first image file in the archive.
func extract(f format, data []byte) ([]byte, string, error) {
	var d []byte
	var name string
	var err error

	switch f {
	case formatZIP:
		d, name, err = extractZIP(data)
	case format7z:
		d, name, err = extract7z(data)
	case formatGzip:
		d, name, err = extractGzip(data)
	case formatRAR:
		d, name, err = extractRAR(data)
	default:
		return data, "", nil
	}

	if err != nil {
		if curated.IsAny(err) {
			return nil, "", err
		}
		return nil, "", curated.Errorf(LoaderError, err)
	}
	if name == "" {
		return nil, "", curated.Errorf(NoImageFile, f)
	}

	return d, name, nil
}

func extractZIP(data []byte) ([]byte, string, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, "", err
	}

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !isImageFile(f.Name) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, "", err
		}
		defer rc.Close()

		d, err := limitedRead(rc)
		return d, path.Base(f.Name), err
	}

	return nil, "", nil
}

func extract7z(data []byte) ([]byte, string, error) {
	r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, "", err
	}

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !isImageFile(f.Name) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, "", err
		}
		defer rc.Close()

		d, err := limitedRead(rc)
		return d, path.Base(f.Name), err
	}

	return nil, "", nil
}

func extractRAR(data []byte) ([]byte, string, error) {
	r, err := rardecode.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}

	for {
		hdr, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", err
		}

		if hdr.IsDir || !isImageFile(hdr.Name) {
			continue
		}

		d, err := limitedRead(r)
		return d, path.Base(hdr.Name), err
	}

	return nil, "", nil
}

// a gzip file is either a tar archive or a single compressed image. the name
// of a single image is taken from the gzip header
func extractGzip(data []byte) ([]byte, string, error) {
	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	defer gr.Close()

	d, err := limitedRead(gr)
	if err != nil {
		return nil, "", err
	}

	tr := tar.NewReader(bytes.NewReader(d))
	hdr, err := tr.Next()
	if err != nil {
		// not a tar archive
		if isImageFile(gr.Name) {
			return d, path.Base(gr.Name), nil
		}
		return nil, "", nil
	}

	for ; err == nil; hdr, err = tr.Next() {
		if hdr.Typeflag != tar.TypeReg || !isImageFile(hdr.Name) {
			continue
		}
		d, err := limitedRead(tr)
		return d, path.Base(hdr.Name), err
	}
	if err != io.EOF {
		return nil, "", err
	}

	return nil, "", nil
}
