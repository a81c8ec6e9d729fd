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

package gpgx

import "fmt"

// Sector sizes of a raw mode 1 disc image.
const (
	SectorSize = 2352
	DataSize   = 2048

	// sync pattern and header precede the user data
	dataOffset = 16
)

// Disc is a raw image of a compact disc with 2352 byte sectors.
type Disc struct {
	Name string
	Data []byte
}

// TOC is the table of contents of a disc, as far as the engine needs to know.
type TOC struct {
	Sectors int
}

func (toc TOC) String() string {
	return fmt.Sprintf("%d sectors", toc.Sectors)
}

// TOC returns the table of contents of the disc.
func (d Disc) TOC() *TOC {
	return &TOC{Sectors: len(d.Data) / SectorSize}
}

// ReadSector copies sector lba to dest. Sectors beyond the end of the disc
// read as zero.
func (d Disc) ReadSector(lba int, dest []byte, audio bool) {
	start := lba * SectorSize
	if lba < 0 || start+SectorSize > len(d.Data) {
		clear(dest)
		return
	}
	sector := d.Data[start : start+SectorSize]
	if audio {
		copy(dest, sector)
	} else {
		copy(dest, sector[dataOffset:dataOffset+DataSize])
	}
}

// the previous and next disc buttons act when they are first pressed
func (g *GPGX) discControls(prev bool, next bool) {
	if len(g.discs) > 1 {
		idx := g.discIndex
		if prev && !g.prevDiskPressed {
			idx--
			if idx < 0 {
				idx = len(g.discs) - 1
			}
		}
		if next && !g.nextDiskPressed {
			idx++
			if idx >= len(g.discs) {
				idx = 0
			}
		}
		if idx != g.discIndex {
			g.discIndex = idx
			g.swapDisc()
		}
	}
	g.prevDiskPressed = prev
	g.nextDiskPressed = next
}

func (g *GPGX) swapDisc() {
	d := g.discs[g.discIndex]
	g.logf("disc %d: %s (%s)", g.discIndex, d.Name, d.TOC())
	g.engine.SwapDisc(g.res.Handle(), d.TOC())
}

// cdd is the callback registered with the engine
func (g *GPGX) cdd(lba int, dest []byte, audio bool) {
	if len(g.discs) == 0 {
		clear(dest)
		return
	}
	g.discs[g.discIndex].ReadSector(lba, dest, audio)
}

// DiscIndex returns the index of the disc in the drive.
func (g *GPGX) DiscIndex() int {
	return g.discIndex
}
