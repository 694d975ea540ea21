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

// Package wgskmers indexes whole-genome nucleotide sequences by
// enumerating fixed-length, prefix-constrained k-mers and provides the
// dense/sparse representations of the resulting sets.
package wgskmers

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidK means k is non-positive.
var ErrInvalidK = errors.New("wgskmers: k must be >= 1")

// ErrInvalidPrefix means the prefix is not a subset of {A,C,G,T} or is
// at least as long as k.
var ErrInvalidPrefix = errors.New("wgskmers: invalid prefix")

// ErrIllegalBase means a byte outside {A,C,G,T} was found where one was
// required (e.g. a literal k-mer passed to SuffixIndex).
var ErrIllegalBase = errors.New("wgskmers: illegal base")

// nucleotides holds the four bases in the ascending lexicographic order
// that defines k-mer index encoding: A=0, C=1, G=2, T=3.
var nucleotides = [4]byte{'A', 'C', 'G', 'T'}

// baseIndex maps an upper-case base to its 2-bit code, or -1 if not a
// valid base.
var baseIndex = [256]int8{}

func init() {
	for i := range baseIndex {
		baseIndex[i] = -1
	}
	for i, b := range nucleotides {
		baseIndex[b] = int8(i)
	}
}

// KmerSpec is an immutable descriptor of a k-mer search: the total
// k-mer length k, and a required constant prefix. Only k-mers starting
// with Prefix are indexed; the suffix (the remaining s = k - len(Prefix)
// bases) is what gets encoded into an index in [0, N).
type KmerSpec struct {
	K      int
	Prefix string
}

// NewKmerSpec validates and builds a KmerSpec. Prefix is upper-cased.
func NewKmerSpec(k int, prefix string) (KmerSpec, error) {
	if k < 1 {
		return KmerSpec{}, ErrInvalidK
	}
	prefix = strings.ToUpper(prefix)
	if len(prefix) >= k {
		return KmerSpec{}, ErrInvalidPrefix
	}
	for i := 0; i < len(prefix); i++ {
		if baseIndex[prefix[i]] < 0 {
			return KmerSpec{}, ErrInvalidPrefix
		}
	}
	return KmerSpec{K: k, Prefix: prefix}, nil
}

// SuffixLen returns s = k - len(prefix), the number of bases actually
// encoded into an index.
func (spec KmerSpec) SuffixLen() int {
	return spec.K - len(spec.Prefix)
}

// N returns the size of the index space, 4^SuffixLen().
func (spec KmerSpec) N() uint64 {
	return uint64(1) << uint(2*spec.SuffixLen())
}

func (spec KmerSpec) String() string {
	return fmt.Sprintf("KmerSpec(k=%d, prefix=%q)", spec.K, spec.Prefix)
}

// SuffixIndex encodes a suffix (the s bases following the prefix) into
// its base-4 index, most-significant base first. ok is false if suffix
// contains a byte outside {A,C,G,T} (case-sensitive; callers are
// expected to upper-case first) or is the wrong length.
func SuffixIndex(suffix []byte, s int) (index uint64, ok bool) {
	if len(suffix) != s {
		return 0, false
	}
	for i := 0; i < s; i++ {
		b := baseIndex[suffix[i]]
		if b < 0 {
			return 0, false
		}
		index = index<<2 | uint64(b)
	}
	return index, true
}

// SuffixAtIndex decodes index back into the s-base suffix it represents.
// It is the inverse of SuffixIndex: SuffixAtIndex(idx, s) for
// idx = SuffixIndex(suffix, s) reproduces suffix exactly.
func SuffixAtIndex(index uint64, s int) []byte {
	out := make([]byte, s)
	for i := s - 1; i >= 0; i-- {
		out[i] = nucleotides[index&3]
		index >>= 2
	}
	return out
}

// validBase reports whether b (expected upper-case) is one of A, C, G, T.
func validBase(b byte) bool {
	return baseIndex[b] >= 0
}
