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

// Package query scores a batch of query k-mer sets against a reference
// collection across one or more metrics, in parallel. The worker split
// follows unikmer's UnikIndexDB.Search: reference sets are divided into
// contiguous chunks, one goroutine per chunk, each writing into its own
// disjoint rows of a shared, pre-sized scores array, so no locking is
// needed once the chunks are handed out. This generalizes
// query.py's QueryWorker/CoordsQueryWorker multiprocessing pool to
// goroutines over a shared slice.
package query

import (
	"context"
	"math"
	"runtime"
	"sync"

	"github.com/jlumpe/wgskmers"
	"github.com/jlumpe/wgskmers/catalog"
	"github.com/jlumpe/wgskmers/metrics"
)

// Ref is one reference k-mer set a query batch is scored against, plus
// the genome metadata needed to report results.
type Ref struct {
	Genome  *catalog.Genome
	KmerSet *catalog.KmerSet
	SetName string // name of the first GenomeSet the genome belongs to, if any
}

// Loader fetches the coordinate set for a Ref on demand, so the engine
// never needs every reference set resident in memory at once. A
// collection stored in the dense raw format loads as a BoolVec and
// converts via ToCoords; the engine always scores from Coords so it
// doesn't need to know which on-disk format backs a given collection.
type Loader func(ref *Ref) (*wgskmers.Coords, error)

// LoadError records a reference set that failed to load; its scores
// row is left as NaN rather than aborting the whole run, mirroring the
// reference implementation's per-item error tolerance in batch jobs.
type LoadError struct {
	Ref *Ref
	Err error
}

// ScoreTable holds the result of a Run: Scores[m][r][q] is the score of
// query q against reference r under Metrics[m].
type ScoreTable struct {
	Metrics    []*metrics.Metric
	Refs       []*Ref
	QueryNames []string
	Scores     [][][]float64
	LoadErrors []LoadError
}

// Run scores every query against every reference under every metric,
// using numWorkers goroutines over contiguous chunks of refs. If
// numWorkers <= 0, runtime.NumCPU() is used. ctx is checked between
// reference sets within each worker; a canceled context stops
// dispatch but already-computed rows are returned along with the
// context's error.
func Run(ctx context.Context, refs []*Ref, load Loader, queries []*wgskmers.Coords, queryNames []string, metricList []*metrics.Metric, numWorkers int) (*ScoreTable, error) {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(refs) {
		numWorkers = len(refs)
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	table := &ScoreTable{
		Metrics:    metricList,
		Refs:       refs,
		QueryNames: queryNames,
	}
	table.Scores = make([][][]float64, len(metricList))
	for m := range metricList {
		table.Scores[m] = make([][]float64, len(refs))
		for r := range refs {
			table.Scores[m][r] = make([]float64, len(queries))
		}
	}

	chunkSize := (len(refs) + numWorkers - 1) / numWorkers
	if chunkSize < 1 {
		chunkSize = 1
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var canceled bool

	for start := 0; start < len(refs); start += chunkSize {
		end := start + chunkSize
		if end > len(refs) {
			end = len(refs)
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()

			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					mu.Lock()
					canceled = true
					mu.Unlock()
					return
				default:
				}

				ref := refs[i]
				coords, err := load(ref)
				if err != nil {
					mu.Lock()
					table.LoadErrors = append(table.LoadErrors, LoadError{Ref: ref, Err: err})
					mu.Unlock()
					for m := range metricList {
						table.Scores[m][i] = fillNaN(len(queries))
					}
					continue
				}

				for m, metric := range metricList {
					row := table.Scores[m][i]
					for q, query := range queries {
						row[q] = metric.Coords(query, coords)
					}
				}
			}
		}(start, end)
	}

	wg.Wait()

	if canceled {
		return table, ctx.Err()
	}
	return table, nil
}

func fillNaN(n int) []float64 {
	row := make([]float64, n)
	for i := range row {
		row[i] = math.NaN()
	}
	return row
}
