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

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jlumpe/wgskmers"
	"github.com/jlumpe/wgskmers/metrics"
	"github.com/jlumpe/wgskmers/query"
	"github.com/jlumpe/wgskmers/vectorize"
)

var queryCmd = &cobra.Command{
	Use:   "query [collection id] [src...]",
	Short: "score one or more query sequence files against a collection's reference sets",
	Long: `query vectorizes each src sequence file into a k-mer set using the
given collection's (k, prefix), scores it against every reference set
in that collection across one or more similarity metrics, and prints
the top matches for each query/metric pair. Pass --csv to additionally
write the full match table to a file.`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		opts := getOptions(cmd)
		db := openDatabase(opts)
		defer db.Close()

		collectionID := parseGenomeID(args[0])
		srcFiles := args[1:]

		collection, err := db.GetKmerCollection(collectionID)
		checkError(err)
		spec, err := wgskmers.NewKmerSpec(collection.K, collection.Prefix)
		checkError(err)

		metricNames := getFlagStringSlice(cmd, "metric")
		var metricList []*metrics.Metric
		if len(metricNames) == 0 {
			metricList = []*metrics.Metric{metrics.Hamming, metrics.Jaccard, metrics.AsymJaccard}
		} else {
			metricList, err = metrics.ParseNames(metricNames)
			checkError(err)
		}

		revComp := getFlagBool(cmd, "revcomp")
		circular := getFlagBool(cmd, "circular")
		cThreshold := uint32(getFlagNonNegativeInt(cmd, "c-threshold"))
		nResults := getFlagNonNegativeInt(cmd, "n-results")

		vopts := vectorize.Options{
			RevComp:        revComp,
			Circular:       circular,
			CountThreshold: cThreshold,
			Dtype:          wgskmers.U32,
		}
		if q := getFlagInt(cmd, "q-threshold"); q > 0 {
			vopts.QualityThreshold = &q
		}

		queries := make([]*wgskmers.Coords, len(srcFiles))
		queryNames := make([]string, len(srcFiles))
		for i, path := range srcFiles {
			vec, err := vectorize.Stream(path, spec, vopts)
			checkError(err)
			queries[i] = vec.ToCoords()
			queryNames[i] = filepath.Base(path)
		}

		refs, err := query.RefsForCollection(db, collection)
		checkError(err)
		loader := query.CatalogLoader(db, collection)

		table, err := query.Run(context.Background(), refs, loader, queries, queryNames, metricList, opts.Threads)
		checkError(err)

		for _, le := range table.LoadErrors {
			fmt.Fprintf(os.Stderr, "warning: failed to load reference %q: %v\n", le.Ref.Genome.Description, le.Err)
		}

		if csvPath := getFlagString(cmd, "csv"); csvPath != "" {
			f, err := os.Create(csvPath)
			checkError(err)
			checkError(query.WriteCSV(f, table, nResults))
			checkError(f.Close())
		}

		if !getFlagBool(cmd, "no-print") {
			printMatches(query.TopMatches(table, nResults))
		}
	},
}

func printMatches(matches []query.Match) {
	for _, m := range matches {
		fmt.Printf("%s\t%s\t%d\t%g\t%s\n", m.QueryName, m.Metric.Name, m.Rank, m.Score, m.Ref.Genome.Description)
	}
}

func init() {
	queryCmd.Flags().Bool("revcomp", true, "also enumerate k-mers from the reverse complement strand")
	queryCmd.Flags().Bool("circular", false, "treat sequences as circular (wrap k-mers around the end)")
	queryCmd.Flags().IntP("q-threshold", "q", 0, "PHRED quality threshold; bases in reads below this are excluded (0 disables)")
	queryCmd.Flags().IntP("c-threshold", "c", 1, "minimum occurrence count for a k-mer to count as present")
	queryCmd.Flags().StringSliceP("metric", "m", nil, "metrics to compute (default: all of hamming, jaccard, asym_jacc)")
	queryCmd.Flags().IntP("n-results", "n", 10, "number of top matches to report per query/metric")
	queryCmd.Flags().String("csv", "", "write the full match table to this CSV file")
	queryCmd.Flags().Bool("no-print", false, "suppress the top-matches summary printed to stdout")

	RootCmd.AddCommand(queryCmd)
}
