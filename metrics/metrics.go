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

// Package metrics implements the similarity/distance metrics used to
// rank reference sets against a query: Hamming distance, Jaccard
// index, and asymmetric Jaccard. Each has a dense (bit-vector) and a
// sparse (sorted-coordinate merge-walk) implementation; the two must
// agree for any pair of sets, since they compute the same quantity
// over two different encodings of it.
package metrics

import (
	"fmt"
	"math"

	"github.com/jlumpe/wgskmers"
)

// Metric scores a query set against a reference set. Higher Dense/Coords
// results always mean "more similar" for a similarity metric and "more
// distant" for a distance metric; Distance reports which.
type Metric struct {
	Name     string
	Title    string
	Distance bool
	Dense    func(query, ref *wgskmers.BoolVec) float64
	Coords   func(query, ref *wgskmers.Coords) float64
}

// registry is the explicit metric lookup table for a small, closed set
// of metrics, populated by register() rather than a decorator.
var registry = map[string]*Metric{}

func register(m *Metric) *Metric {
	registry[m.Name] = m
	return m
}

// Lookup returns the registered metric for name, or nil if unknown.
func Lookup(name string) *Metric {
	return registry[name]
}

// Names returns the registered metric names in a stable order.
func Names() []string {
	return []string{"hamming", "jaccard", "asym_jacc"}
}

// Hamming is the Hamming distance: the count of positions at which the
// query and reference sets disagree.
var Hamming = register(&Metric{
	Name:     "hamming",
	Title:    "Hamming distance",
	Distance: true,
	Dense:    hammingDense,
	Coords:   hammingCoords,
})

// Jaccard is the Jaccard similarity index: |query ∩ ref| / |query ∪ ref|.
var Jaccard = register(&Metric{
	Name:     "jaccard",
	Title:    "Jaccard index",
	Distance: false,
	Dense:    jaccardDense,
	Coords:   jaccardCoords,
})

// AsymJaccard is the asymmetric Jaccard similarity: |query ∩ ref| / |ref|.
// Unlike Jaccard it is not symmetric in its arguments — it asks what
// fraction of the reference set the query covers.
var AsymJaccard = register(&Metric{
	Name:     "asym_jacc",
	Title:    "Asymmetric Jaccard",
	Distance: false,
	Dense:    asymJaccardDense,
	Coords:   asymJaccardCoords,
})

func hammingDense(query, ref *wgskmers.BoolVec) float64 {
	dist := 0
	for i := range query.Bits {
		if query.Bits[i] != ref.Bits[i] {
			dist++
		}
	}
	return float64(dist)
}

// hammingCoords walks both sorted coordinate lists in lockstep,
// counting a mismatch whenever the two cursors disagree at the current
// position, then charges the unmatched tail of whichever list is
// longer — the same two-pointer merge structure as the dense XOR sum.
func hammingCoords(query, ref *wgskmers.Coords) float64 {
	qi, ri := query.Indices, ref.Indices
	i, j := 0, 0
	dist := 0

	for i < len(qi) && j < len(ri) {
		q, r := qi[i], ri[j]
		if q != r {
			dist++
		}
		if q <= r {
			i++
		}
		if r <= q {
			j++
		}
	}

	dist += len(qi) - i
	dist += len(ri) - j
	return float64(dist)
}

func jaccardDense(query, ref *wgskmers.BoolVec) float64 {
	var union, intersection int
	for i := range query.Bits {
		q, r := query.Bits[i], ref.Bits[i]
		if q || r {
			union++
		}
		if q && r {
			intersection++
		}
	}
	if union == 0 {
		return math.NaN()
	}
	return float64(intersection) / float64(union)
}

func jaccardCoords(query, ref *wgskmers.Coords) float64 {
	qi, ri := query.Indices, ref.Indices
	i, j := 0, 0
	var union, intersection int

	for i < len(qi) && j < len(ri) {
		q, r := qi[i], ri[j]
		union++
		if q == r {
			intersection++
		}
		if q <= r {
			i++
		}
		if r <= q {
			j++
		}
	}

	union += len(qi) - i
	union += len(ri) - j

	if union == 0 {
		return math.NaN()
	}
	return float64(intersection) / float64(union)
}

func asymJaccardDense(query, ref *wgskmers.BoolVec) float64 {
	var refWeight, intersection int
	for i := range query.Bits {
		if ref.Bits[i] {
			refWeight++
		}
		if query.Bits[i] && ref.Bits[i] {
			intersection++
		}
	}
	if refWeight == 0 {
		return math.NaN()
	}
	return float64(intersection) / float64(refWeight)
}

func asymJaccardCoords(query, ref *wgskmers.Coords) float64 {
	qi, ri := query.Indices, ref.Indices
	i, j := 0, 0
	var intersection int

	for i < len(qi) && j < len(ri) {
		q, r := qi[i], ri[j]
		if q == r {
			intersection++
		}
		if q <= r {
			i++
		}
		if r <= q {
			j++
		}
	}

	if len(ri) == 0 {
		return math.NaN()
	}
	return float64(intersection) / float64(len(ri))
}

// ErrUnknownMetric is returned by ParseNames for an unrecognized name.
type ErrUnknownMetric struct {
	Name string
}

func (e *ErrUnknownMetric) Error() string {
	return fmt.Sprintf("metrics: unknown metric %q", e.Name)
}

// ParseNames resolves a list of metric names to Metrics, in the order
// given, failing on the first unrecognized name.
func ParseNames(names []string) ([]*Metric, error) {
	out := make([]*Metric, len(names))
	for i, name := range names {
		m := Lookup(name)
		if m == nil {
			return nil, &ErrUnknownMetric{Name: name}
		}
		out[i] = m
	}
	return out, nil
}
