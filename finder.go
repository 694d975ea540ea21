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

import "bytes"

// complement maps a base to its Watson-Crick complement; non-ACGT bytes
// map to themselves, which is harmless since such a k-mer is dropped at
// encode time anyway.
var complement = [256]byte{}

func init() {
	for i := 0; i < 256; i++ {
		complement[i] = byte(i)
	}
	complement['A'] = 'T'
	complement['T'] = 'A'
	complement['C'] = 'G'
	complement['G'] = 'C'
}

// revComp returns the reverse complement of an upper-cased sequence.
func revComp(seq []byte) []byte {
	n := len(seq)
	out := make([]byte, n)
	for i, b := range seq {
		out[n-1-i] = complement[b]
	}
	return out
}

// reverseBytes reverses a byte slice (used for quality scores, which
// have no complement, only reversal).
func reverseBytes(q []byte) []byte {
	n := len(q)
	out := make([]byte, n)
	for i, b := range q {
		out[n-1-i] = b
	}
	return out
}

// KmerFinder streams suffix indices out of a sequence per its KmerSpec.
// Construct with KmerSpec.Find or KmerSpec.FindQuality.
type KmerFinder struct {
	spec       KmerSpec
	seq        []byte // upper-cased
	revComp    bool
	circular   bool
	qual       []byte // nil unless quality-filtered
	threshold  byte
	filtered   bool
}

// Find returns a KmerFinder scanning seq (upper-cased internally).
// revComp controls whether the Watson-Crick reverse complement is also
// scanned; circular controls whether the wrap-around window is scanned.
func (spec KmerSpec) Find(seq []byte, revComp, circular bool) *KmerFinder {
	return &KmerFinder{
		spec:     spec,
		seq:      bytes.ToUpper(seq),
		revComp:  revComp,
		circular: circular,
	}
}

// FindQuality is like Find, but additionally requires the minimum PHRED
// score over each candidate k-mer's window (prefix included) to be >=
// threshold. qual must be the same length as seq.
func (spec KmerSpec) FindQuality(seq, qual []byte, threshold byte, revComp, circular bool) *KmerFinder {
	f := spec.Find(seq, revComp, circular)
	f.qual = qual
	f.threshold = threshold
	f.filtered = true
	return f
}

// Each calls fn with every suffix index found, in the order: forward
// scan, reverse-complement scan (if enabled), wrap-around scan (if
// circular). fn is called only for windows composed entirely of valid
// ACGT bases (and, when quality-filtered, meeting the threshold).
func (f *KmerFinder) Each(fn func(index uint64)) {
	k := f.spec.K
	n := len(f.seq)
	if n < k {
		return
	}

	f.scanLinear(f.seq, f.qual, fn)

	if f.revComp {
		rseq := revComp(f.seq)
		var rqual []byte
		if f.filtered {
			rqual = reverseBytes(f.qual)
		}
		f.scanLinear(rseq, rqual, fn)
	}

	if f.circular && k > 1 {
		wrapSeq := make([]byte, 0, 2*(k-1))
		wrapSeq = append(wrapSeq, f.seq[n-(k-1):]...)
		wrapSeq = append(wrapSeq, f.seq[:k-1]...)

		var wrapQual []byte
		if f.filtered {
			wrapQual = make([]byte, 0, 2*(k-1))
			wrapQual = append(wrapQual, f.qual[n-(k-1):]...)
			wrapQual = append(wrapQual, f.qual[:k-1]...)
		}
		f.scanLinear(wrapSeq, wrapQual, fn)
	}
}

// scanLinear performs one non-circular, non-revcomp scan of seq (qual
// may be nil unless this KmerFinder is quality-filtered), calling fn
// for each valid, (if applicable) quality-passing suffix found.
func (f *KmerFinder) scanLinear(seq, qual []byte, fn func(index uint64)) {
	k := f.spec.K
	plen := len(f.spec.Prefix)
	s := f.spec.SuffixLen()
	end := len(seq) - k // last valid prefix start

	for p := 0; p <= end; p++ {
		if !bytes.HasPrefix(seq[p:], []byte(f.spec.Prefix)) {
			continue
		}

		suffix := seq[p+plen : p+k]

		if f.filtered {
			window := qual[p : p+k]
			var min byte = 255
			for _, q := range window {
				if q < min {
					min = q
				}
			}
			if min < f.threshold {
				continue
			}
		}

		if index, ok := SuffixIndex(suffix, s); ok {
			fn(index)
		}
	}
}

// Indices collects Each's output into a slice, preserving order
// (including duplicates from overlapping matches).
func (f *KmerFinder) Indices() []uint64 {
	var out []uint64
	f.Each(func(index uint64) {
		out = append(out, index)
	})
	return out
}
