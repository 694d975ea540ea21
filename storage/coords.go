// Copyright © 2018 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/jlumpe/wgskmers"
)

// CoordsVersion is the format version for the sparse coords format.
const CoordsVersion uint8 = 1

// CoordsMagic identifies a sparse coordinate k-mer set file.
var CoordsMagic = [8]byte{'w', 'g', 's', 'k', 'c', 'r', 'd', '1'}

// ErrInvalidCoordsFormat means the magic number, version, or index
// width didn't match what was expected.
var ErrInvalidCoordsFormat = errors.New("storage: invalid coords k-mer set format")

// indexWidth returns the packed index width in bytes for an index space
// of size n: 4 bytes if it fits in 32 bits, 8 otherwise. This mirrors
// the index/serialization.go convention of sizing a row to the data it
// must hold rather than always spending 8 bytes per entry.
func indexWidth(n uint64) int {
	if n <= 1<<32-1 {
		return 4
	}
	return 8
}

// CoordsHeader describes a sparse coordinate k-mer set file.
//
//	offset   bytes  name          type
//	0        8      magic         [8]byte
//	8        1      Version       uint8
//	9        1      K             uint8
//	10       1      PrefixLen     uint8
//	11       n      Prefix        [n]byte (n = PrefixLen)
//	11+n     1      HasCounts     uint8 (0/1)
//	12+n     1      IndexWidth    uint8 (4 or 8)
//	13+n     8      Count         uint64, number of coordinate entries
//	21+n     ...    indices       Count entries, IndexWidth bytes each, ascending
//	...      ...    counts        Count entries, 4 bytes each (only if HasCounts)
type CoordsHeader struct {
	Version    uint8
	Spec       wgskmers.KmerSpec
	HasCounts  bool
	IndexWidth int
	Count      uint64
}

func (h CoordsHeader) String() string {
	return fmt.Sprintf("coords k-mer set v%d, %s, counts=%v, width=%d, count=%d",
		h.Version, h.Spec, h.HasCounts, h.IndexWidth, h.Count)
}

// CoordsReader reads a sparse coords file.
type CoordsReader struct {
	CoordsHeader
	r io.Reader
}

// NewCoordsReader reads and validates the header from r.
func NewCoordsReader(r io.Reader) (*CoordsReader, error) {
	reader := &CoordsReader{r: r}
	if err := reader.readHeader(); err != nil {
		return nil, err
	}
	return reader, nil
}

func (reader *CoordsReader) readHeader() error {
	var m [8]byte
	if err := binary.Read(reader.r, be, &m); err != nil {
		return err
	}
	if m != CoordsMagic {
		return ErrInvalidCoordsFormat
	}

	var version uint8
	if err := binary.Read(reader.r, be, &version); err != nil {
		return err
	}
	if version != CoordsVersion {
		return ErrInvalidCoordsFormat
	}
	reader.Version = version

	var kAndPlen [2]uint8
	if err := binary.Read(reader.r, be, &kAndPlen); err != nil {
		return err
	}
	k := int(kAndPlen[0])
	plen := int(kAndPlen[1])

	prefix := make([]byte, plen)
	if plen > 0 {
		if err := binary.Read(reader.r, be, prefix); err != nil {
			return err
		}
	}
	spec, err := wgskmers.NewKmerSpec(k, string(prefix))
	if err != nil {
		return err
	}
	reader.Spec = spec

	var hasCounts uint8
	if err := binary.Read(reader.r, be, &hasCounts); err != nil {
		return err
	}
	reader.HasCounts = hasCounts != 0

	var width uint8
	if err := binary.Read(reader.r, be, &width); err != nil {
		return err
	}
	if width != 4 && width != 8 {
		return ErrInvalidCoordsFormat
	}
	reader.IndexWidth = int(width)
	if reader.IndexWidth != indexWidth(spec.N()) {
		return ErrInvalidCoordsFormat
	}

	if err := binary.Read(reader.r, be, &reader.Count); err != nil {
		return err
	}

	return nil
}

// ReadCoords reads the full body into a Coords.
func (reader *CoordsReader) ReadCoords() (*wgskmers.Coords, error) {
	indices := make([]uint64, reader.Count)
	idxBuf := make([]byte, int(reader.Count)*reader.IndexWidth)
	if _, err := io.ReadFull(reader.r, idxBuf); err != nil {
		return nil, err
	}
	for i := uint64(0); i < reader.Count; i++ {
		off := int(i) * reader.IndexWidth
		if reader.IndexWidth == 4 {
			indices[i] = uint64(be.Uint32(idxBuf[off : off+4]))
		} else {
			indices[i] = be.Uint64(idxBuf[off : off+8])
		}
	}

	out := &wgskmers.Coords{Spec: reader.Spec, Indices: indices}

	if reader.HasCounts {
		counts := make([]uint32, reader.Count)
		cntBuf := make([]byte, int(reader.Count)*4)
		if _, err := io.ReadFull(reader.r, cntBuf); err != nil {
			return nil, err
		}
		for i := uint64(0); i < reader.Count; i++ {
			counts[i] = be.Uint32(cntBuf[i*4 : i*4+4])
		}
		out.Counts = counts
	}

	return out, nil
}

// WriteCoords writes c to w in the sparse coords format, choosing the
// index width from c.Spec.N(). c.Indices must already be sorted
// ascending (Coords is always constructed that way).
func WriteCoords(w io.Writer, c *wgskmers.Coords) error {
	width := indexWidth(c.Spec.N())

	if err := binary.Write(w, be, CoordsMagic); err != nil {
		return err
	}
	if err := binary.Write(w, be, CoordsVersion); err != nil {
		return err
	}
	if len(c.Spec.Prefix) > 255 {
		return ErrPrefixTooLong
	}
	if err := binary.Write(w, be, [2]uint8{uint8(c.Spec.K), uint8(len(c.Spec.Prefix))}); err != nil {
		return err
	}
	if len(c.Spec.Prefix) > 0 {
		if err := binary.Write(w, be, []byte(c.Spec.Prefix)); err != nil {
			return err
		}
	}
	var hasCounts uint8
	if c.HasCounts() {
		hasCounts = 1
	}
	if err := binary.Write(w, be, hasCounts); err != nil {
		return err
	}
	if err := binary.Write(w, be, uint8(width)); err != nil {
		return err
	}
	if err := binary.Write(w, be, uint64(len(c.Indices))); err != nil {
		return err
	}

	idxBuf := make([]byte, len(c.Indices)*width)
	for i, idx := range c.Indices {
		off := i * width
		if width == 4 {
			be.PutUint32(idxBuf[off:off+4], uint32(idx))
		} else {
			be.PutUint64(idxBuf[off:off+8], idx)
		}
	}
	if _, err := w.Write(idxBuf); err != nil {
		return err
	}

	if c.HasCounts() {
		cntBuf := make([]byte, len(c.Counts)*4)
		for i, cnt := range c.Counts {
			be.PutUint32(cntBuf[i*4:i*4+4], cnt)
		}
		if _, err := w.Write(cntBuf); err != nil {
			return err
		}
	}

	return nil
}
