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

package query

import (
	"math"
	"sort"

	"github.com/jlumpe/wgskmers/metrics"
)

// Match is one ranked (query, reference) pair for a single metric. Rank
// is 1-based, the best match for its query/metric pair being rank 1.
type Match struct {
	QueryName string
	Ref       *Ref
	Metric    *metrics.Metric
	Rank      int
	Score     float64
}

// TopMatches ranks every reference against each query for each metric
// and returns the best n per (query, metric) pair, in ranked order. A
// NaN score always ranks last regardless of the metric's direction,
// matching the never-raise NaN-ranks-worst rule the scores themselves
// already satisfy. n <= 0 means return all references ranked.
func TopMatches(t *ScoreTable, n int) []Match {
	if n <= 0 || n > len(t.Refs) {
		n = len(t.Refs)
	}

	var out []Match
	for q, queryName := range t.QueryNames {
		for m, metric := range t.Metrics {
			order := make([]int, len(t.Refs))
			for i := range order {
				order[i] = i
			}

			scores := t.Scores[m]
			sort.SliceStable(order, func(a, b int) bool {
				sa, sb := scores[order[a]][q], scores[order[b]][q]
				if math.IsNaN(sa) {
					return false
				}
				if math.IsNaN(sb) {
					return true
				}
				if metric.Distance {
					return sa < sb
				}
				return sa > sb
			})

			for rank, idx := range order[:n] {
				out = append(out, Match{
					QueryName: queryName,
					Ref:       t.Refs[idx],
					Metric:    metric,
					Rank:      rank + 1,
					Score:     scores[idx][q],
				})
			}
		}
	}
	return out
}
