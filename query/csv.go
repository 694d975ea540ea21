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
	"encoding/csv"
	"io"
	"strconv"

	"github.com/jlumpe/wgskmers/catalog"
)

// csvColumns is the match table's column order. Column order is part
// of the format: anything consuming this file by position depends on
// it staying exactly this shape.
var csvColumns = []string{
	"query_file",
	"metric",
	"rank",
	"score",
	"description",
	"organism",
	"genus",
	"species",
	"strain",
	"set",
	"accession",
	"database",
	"link",
}

// WriteCSV renders the top n matches per (query, metric) pair as a
// match table in csvColumns' order, including the genus/species/strain
// taxonomy breakdown alongside the free-text organism field.
func WriteCSV(w io.Writer, t *ScoreTable, n int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvColumns); err != nil {
		return err
	}

	for _, match := range TopMatches(t, n) {
		genome := match.Ref.Genome

		row := []string{
			match.QueryName,
			match.Metric.Title,
			strconv.Itoa(match.Rank),
			strconv.FormatFloat(match.Score, 'g', -1, 64),
			genome.Description,
			derefStr(genome.Organism),
			derefStr(genome.TaxGenus),
			derefStr(genome.TaxSpecies),
			derefStr(genome.TaxStrain),
			match.Ref.SetName,
			derefStr(genome.GBAcc),
			derefStr(genome.GBDb),
			catalog.GenomeRecordURL(genome),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
