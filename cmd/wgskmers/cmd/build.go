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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jlumpe/wgskmers"
	"github.com/jlumpe/wgskmers/builder"
)

var buildCmd = &cobra.Command{
	Use:   "build [collection id]",
	Short: "compute k-mer sets for every genome missing from a collection",
	Long: `build computes and stores the k-mer set for every genome that does
not yet have one in the given collection. It is safe to re-run: genomes
already represented are left untouched and counted as skipped, so this
command can be used to pick up where a partial or interrupted run left
off, or to backfill newly added genomes.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := getOptions(cmd)
		db := openDatabase(opts)
		defer db.Close()

		id := parseGenomeID(args[0])
		collection, err := db.GetKmerCollection(id)
		checkError(err)

		revComp := getFlagBool(cmd, "revcomp")
		circular := getFlagBool(cmd, "circular")
		countThreshold := uint32(getFlagNonNegativeInt(cmd, "count-threshold"))

		result, err := builder.Build(db, collection, builder.Options{
			RevComp:        revComp,
			Circular:       circular,
			CountThreshold: countThreshold,
			Dtype:          wgskmers.U32,
		})
		checkError(err)

		fmt.Printf("added: %d, errors: %d, skipped: %d\n", result.Added, len(result.Errors), result.Skipped)
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "  %v\n", e)
		}
		if result.Added == 0 && len(result.Errors) > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	buildCmd.Flags().Bool("revcomp", true, "also enumerate k-mers from the reverse complement strand")
	buildCmd.Flags().Bool("circular", false, "treat sequences as circular (wrap k-mers around the end)")
	buildCmd.Flags().Int("count-threshold", 0, "minimum occurrence count for a k-mer to be included (0 disables thresholding)")

	RootCmd.AddCommand(buildCmd)
}
