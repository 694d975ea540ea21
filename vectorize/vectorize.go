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

// Package vectorize turns a sequence file into a single k-mer vector
// for the whole file: boolean OR-accumulation or count sum-accumulation
// across every record, with an optional count threshold applied once
// at the end. Grounded on original_source/wgskmers/parse.py's
// vec_from_records (accumulate into a shared buffer across records,
// threshold the buffer once at the end rather than per record) and
// commands/kmers.py's RefCalculator (boolean vector for assembled
// genomes, counts otherwise). Record reading uses
// github.com/shenwei356/bio/seqio/fastx, the same way unikmer/cmd/count.go
// does, including its transparent gzip detection.
package vectorize

import (
	"io"

	"github.com/shenwei356/bio/seqio/fastx"

	"github.com/jlumpe/wgskmers"
)

// Options controls a file's accumulation.
type Options struct {
	// RevComp and Circular are passed through to KmerSpec.Find/FindQuality
	// for every record.
	RevComp  bool
	Circular bool

	// QualityThreshold, if non-nil, filters k-mers by minimum PHRED
	// score; record quality is read from fastx's FASTQ records and is
	// required when this is set.
	QualityThreshold *int

	// CountThreshold, if > 0, requests a count accumulation collapsed to
	// a boolean vector at the end via v' = v >= CountThreshold. If 0,
	// the result is a plain OR-accumulated BoolVec unless the caller
	// asked for counts directly via StreamCounts.
	CountThreshold uint32

	// Dtype is the count element type to accumulate into when counting
	// is needed (CountThreshold > 0, or a StreamCounts call).
	Dtype wgskmers.DType
}

// phredOffset is the FASTQ Phred+33 ASCII encoding offset; fastx
// records carry raw ASCII quality bytes, and KmerFinder.FindQuality
// compares those bytes directly, so a caller-facing Phred score must be
// shifted into the same domain before use.
const phredOffset = 33

// Stream accumulates every record in the sequence file at path into a
// single boolean presence vector, OR-accumulating across records. If
// opts.CountThreshold > 0, k-mers are counted internally and
// thresholded once at the end rather than taking a different
// per-record code path.
func Stream(path string, spec wgskmers.KmerSpec, opts Options) (*wgskmers.BoolVec, error) {
	if opts.CountThreshold > 0 {
		counts, err := StreamCounts(path, spec, opts)
		if err != nil {
			return nil, err
		}
		return counts.Threshold(opts.CountThreshold), nil
	}

	out := wgskmers.NewBoolVec(spec)
	err := eachRecord(path, spec, opts, func(finder *wgskmers.KmerFinder) error {
		out.Accumulate(finder)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// StreamCounts accumulates every record in the sequence file at path
// into a single count vector, summing occurrences across records. Used
// directly for unassembled genomes and internally by Stream when a
// count threshold is requested.
func StreamCounts(path string, spec wgskmers.KmerSpec, opts Options) (*wgskmers.CountVec, error) {
	out := wgskmers.NewCountVec(spec, opts.Dtype)
	err := eachRecord(path, spec, opts, func(finder *wgskmers.KmerFinder) error {
		return out.Accumulate(finder)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// eachRecord reads every record out of path via fastx and calls visit
// with a KmerFinder built for it, stopping at the first error from
// either the reader or visit.
func eachRecord(path string, spec wgskmers.KmerSpec, opts Options, visit func(*wgskmers.KmerFinder) error) error {
	reader, err := fastx.NewDefaultReader(path)
	if err != nil {
		return err
	}

	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		seq := record.Seq.Seq

		var finder *wgskmers.KmerFinder
		if opts.QualityThreshold != nil {
			qual := record.Seq.Qual
			threshold := byte(*opts.QualityThreshold + phredOffset)
			finder = spec.FindQuality(seq, qual, threshold, opts.RevComp, opts.Circular)
		} else {
			finder = spec.Find(seq, opts.RevComp, opts.Circular)
		}

		if err := visit(finder); err != nil {
			return err
		}
	}
}
