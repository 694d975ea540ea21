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

package wgskmers

import (
	"errors"

	"github.com/twotwotwo/sorts/sortutil"
)

// ErrCountOverflow means a count vector's element type could not hold
// the true count for some index.
var ErrCountOverflow = errors.New("wgskmers: count overflow")

// DType is the element type of a count vector's slots: u8, u16, or u32.
// Bool vectors don't carry a DType; they're always presence-only.
type DType uint8

// Recognized count element types.
const (
	U8 DType = iota
	U16
	U32
)

// Max returns the largest count value representable by d.
func (d DType) Max() uint32 {
	switch d {
	case U8:
		return 0xff
	case U16:
		return 0xffff
	case U32:
		return 0xffffffff
	default:
		return 0
	}
}

func (d DType) String() string {
	switch d {
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	default:
		return "unknown"
	}
}

// BoolVec is a dense presence vector of length Spec.N().
type BoolVec struct {
	Spec KmerSpec
	Bits []bool
}

// NewBoolVec allocates a zeroed BoolVec for spec.
func NewBoolVec(spec KmerSpec) *BoolVec {
	return &BoolVec{Spec: spec, Bits: make([]bool, spec.N())}
}

// Set marks index as present.
func (v *BoolVec) Set(index uint64) {
	v.Bits[index] = true
}

// Count returns the number of present slots.
func (v *BoolVec) Count() int {
	n := 0
	for _, b := range v.Bits {
		if b {
			n++
		}
	}
	return n
}

// Accumulate sets every index the finder yields (OR-accumulation: safe
// to call repeatedly with different finders over the same vector).
func (v *BoolVec) Accumulate(f *KmerFinder) {
	f.Each(v.Set)
}

// CountVec is a dense count vector of length Spec.N(), with values
// bounded by Dtype.Max().
type CountVec struct {
	Spec   KmerSpec
	Dtype  DType
	Counts []uint32
}

// NewCountVec allocates a zeroed CountVec for spec with the given
// element type.
func NewCountVec(spec KmerSpec, dtype DType) *CountVec {
	return &CountVec{Spec: spec, Dtype: dtype, Counts: make([]uint32, spec.N())}
}

// Increment adds one to index's count, returning ErrCountOverflow if
// that would exceed Dtype's range.
func (v *CountVec) Increment(index uint64) error {
	if v.Counts[index] >= v.Dtype.Max() {
		return ErrCountOverflow
	}
	v.Counts[index]++
	return nil
}

// Accumulate increments every index the finder yields, stopping at the
// first overflow.
func (v *CountVec) Accumulate(f *KmerFinder) error {
	var err error
	f.Each(func(index uint64) {
		if err == nil {
			err = v.Increment(index)
		}
	})
	return err
}

// Threshold collapses a CountVec to a BoolVec: v'[i] = v[i] >= min.
func (v *CountVec) Threshold(min uint32) *BoolVec {
	out := NewBoolVec(v.Spec)
	for i, c := range v.Counts {
		if c >= min {
			out.Bits[i] = true
		}
	}
	return out
}

// Coords is the sparse sorted-coordinate representation of a k-mer set:
// a strictly increasing array of occupied indices, with an optional
// parallel Counts row (same length, every value > 0). It is canonical —
// two equal sets always produce identical Indices (and Counts, if
// present).
type Coords struct {
	Spec    KmerSpec
	Indices []uint64
	Counts  []uint32 // nil unless this Coords retains counts
}

// HasCounts reports whether this Coords carries a parallel counts row.
func (c *Coords) HasCounts() bool {
	return c.Counts != nil
}

// ToCoords converts a BoolVec to its sparse coordinate form (no
// counts row, since a BoolVec has none to preserve).
func (v *BoolVec) ToCoords() *Coords {
	idx := make([]uint64, 0)
	for i, b := range v.Bits {
		if b {
			idx = append(idx, uint64(i))
		}
	}
	return &Coords{Spec: v.Spec, Indices: idx}
}

// ToCoords converts a CountVec to its sparse coordinate form. If
// withCounts is true the parallel Counts row is populated.
func (v *CountVec) ToCoords(withCounts bool) *Coords {
	idx := make([]uint64, 0)
	var counts []uint32
	if withCounts {
		counts = make([]uint32, 0)
	}
	for i, c := range v.Counts {
		if c > 0 {
			idx = append(idx, uint64(i))
			if withCounts {
				counts = append(counts, c)
			}
		}
	}
	return &Coords{Spec: v.Spec, Indices: idx, Counts: counts}
}

// ToBoolVec materializes a Coords back into a dense BoolVec, ignoring
// any counts row.
func (c *Coords) ToBoolVec() *BoolVec {
	out := NewBoolVec(c.Spec)
	for _, i := range c.Indices {
		out.Bits[i] = true
	}
	return out
}

// ToCountVec materializes a Coords back into a dense CountVec of the
// given element type. If the Coords has no counts row, every listed
// index gets count 1. Returns ErrCountOverflow if a count can't fit
// dtype.
func (c *Coords) ToCountVec(dtype DType) (*CountVec, error) {
	out := NewCountVec(c.Spec, dtype)
	for k, i := range c.Indices {
		cnt := uint32(1)
		if c.Counts != nil {
			cnt = c.Counts[k]
		}
		if cnt > dtype.Max() {
			return nil, ErrCountOverflow
		}
		out.Counts[i] = cnt
	}
	return out, nil
}

// FromIndices builds a canonical Coords directly from a raw stream of
// (possibly repeated, possibly unordered) suffix indices, without first
// materializing an O(N) dense vector. This is the path used for huge
// index spaces where a dense pass would be wasteful. withCounts
// controls whether a parallel counts row is retained.
func FromIndices(spec KmerSpec, indices []uint64, withCounts bool) *Coords {
	counts := make(map[uint64]uint32, len(indices))
	for _, idx := range indices {
		counts[idx]++
	}

	idxSlice := make([]uint64, 0, len(counts))
	for idx := range counts {
		idxSlice = append(idxSlice, idx)
	}
	sortutil.Uint64s(idxSlice)

	out := &Coords{Spec: spec, Indices: idxSlice}
	if withCounts {
		out.Counts = make([]uint32, len(idxSlice))
		for i, idx := range idxSlice {
			out.Counts[i] = counts[idx]
		}
	}
	return out
}
