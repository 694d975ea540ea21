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

// Package builder computes and stores reference k-mer sets for a
// collection: every genome not already represented gets vectorized and
// written, one at a time, with a single genome's failure counted and
// skipped rather than aborting the run. Grounded on
// original_source/wgskmers/commands/kmers.py's `calc` command
// (RefCalculator.calc_ref plus the add/error/skip tally loop), adapted
// from a multiprocessing.Pool map to a sequential per-genome loop since
// the catalog's SQLite connection isn't meant to be shared across
// threads without its own pool.
package builder

import (
	"fmt"
	"io"

	"github.com/jlumpe/wgskmers"
	"github.com/jlumpe/wgskmers/catalog"
	"github.com/jlumpe/wgskmers/storage"
	"github.com/jlumpe/wgskmers/vectorize"
)

// BuildError pairs a genome that failed to vectorize or store with the
// error that caused it.
type BuildError struct {
	Genome *catalog.Genome
	Err    error
}

func (e BuildError) Error() string {
	return fmt.Sprintf("genome %q: %v", e.Genome.Description, e.Err)
}

// Result summarizes one Build run as an (added, errors, skipped)
// triple. Skipped counts genomes that already had a k-mer set in this
// collection before the run started (`skipped = total - added - errors`).
type Result struct {
	Added   int
	Errors  []BuildError
	Skipped int
}

// Options controls how each genome is vectorized; RevComp/Circular are
// usually both true for whole-genome reference sets.
type Options struct {
	RevComp        bool
	Circular       bool
	CountThreshold uint32
	Dtype          wgskmers.DType
}

// Build computes k-mer sets for every genome in db not yet present in
// collection, storing each in collection's format (raw or coords), and
// tallies the outcome. It is idempotent and resumable: genomes already
// present are left untouched and counted as skipped, so re-running
// Build after a partial run (or after adding new genomes) only
// processes what's missing.
func Build(db *catalog.Database, collection *catalog.KmerSetCollection, opts Options) (*Result, error) {
	spec, err := wgskmers.NewKmerSpec(collection.K, collection.Prefix)
	if err != nil {
		return nil, err
	}

	total, err := db.CountGenomes()
	if err != nil {
		return nil, err
	}

	pending, err := db.GenomesNotInCollection(collection.ID)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, genome := range pending {
		if err := buildOne(db, collection, spec, genome, opts); err != nil {
			result.Errors = append(result.Errors, BuildError{Genome: genome, Err: err})
			continue
		}
		result.Added++
	}

	result.Skipped = total - result.Added - len(result.Errors)
	return result, nil
}

// buildOne vectorizes and stores a single genome's k-mer set: a
// boolean vector for assembled genomes, a count vector otherwise,
// written through collection.Format.
func buildOne(db *catalog.Database, collection *catalog.KmerSetCollection, spec wgskmers.KmerSpec, genome *catalog.Genome, opts Options) error {
	path := db.GenomePath(genome)
	vopts := vectorize.Options{
		RevComp:        opts.RevComp,
		Circular:       opts.Circular,
		CountThreshold: opts.CountThreshold,
		Dtype:          opts.Dtype,
	}

	var (
		count     int64
		hasCounts bool
		dtypeStr  string
		writeBody func(io.Writer) error
	)

	if genome.IsAssembled {
		vec, err := vectorize.Stream(path, spec, vopts)
		if err != nil {
			return err
		}
		count = int64(vec.Count())
		hasCounts = false
		dtypeStr = "bool"
		writeBody = func(w io.Writer) error {
			if collection.Format == "raw" {
				return storage.NewRawBoolWriter(w, spec).WriteBoolVec(vec)
			}
			return storage.WriteCoords(w, vec.ToCoords())
		}
	} else {
		counts, err := vectorize.StreamCounts(path, spec, vopts)
		if err != nil {
			return err
		}
		coords := counts.ToCoords(true)
		count = int64(len(coords.Indices))
		hasCounts = true
		dtypeStr = opts.Dtype.String()
		writeBody = func(w io.Writer) error {
			if collection.Format == "raw" {
				return storage.NewRawCountWriter(w, spec, counts.Dtype).WriteCountVec(counts)
			}
			return storage.WriteCoords(w, coords)
		}
	}

	_, err := db.StoreKmerSet(collection, genome.ID, dtypeStr, hasCounts, count, writeBody)
	return err
}
