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

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jlumpe/wgskmers/catalog"
)

var collectionCmd = &cobra.Command{
	Use:     "collection",
	Aliases: []string{"kmers"},
	Short:   "manage k-mer set collections",
}

var collectionCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "create a new k-mer set collection with a given (k, prefix) and storage format",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := getOptions(cmd)
		db := openDatabase(opts)
		defer db.Close()

		k := getFlagPositiveInt(cmd, "k")
		prefix := getFlagString(cmd, "prefix")
		format := getFlagString(cmd, "format")
		if format != "raw" && format != "coords" {
			checkError(fmt.Errorf("--format must be 'raw' or 'coords', got %q", format))
		}

		collection, err := db.CreateKmerCollection(&catalog.KmerSetCollection{
			Title:  args[0],
			Prefix: prefix,
			K:      k,
			Format: format,
		})
		checkError(err)

		fmt.Printf("created collection %d: %s (k=%d, prefix=%q, format=%s)\n",
			collection.ID, collection.Title, collection.K, collection.Prefix, collection.Format)
	},
}

var collectionStatsCmd = &cobra.Command{
	Use:   "stats [id]",
	Short: "print how many genomes a collection has k-mer sets for",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := getOptions(cmd)
		db := openDatabase(opts)
		defer db.Close()

		id := parseGenomeID(args[0]) // collection ids use the same integer convention
		collection, err := db.GetKmerCollection(id)
		checkError(err)

		sets, err := db.ListKmerSets(collection.ID)
		checkError(err)

		total, err := db.CountGenomes()
		checkError(err)

		var totalKmers int64
		for _, s := range sets {
			totalKmers += s.KmerSet.Count
		}

		fmt.Printf("collection %d: %s (k=%d, prefix=%q, format=%s)\n",
			collection.ID, collection.Title, collection.K, collection.Prefix, collection.Format)
		fmt.Printf("%s/%s genome(s) have a k-mer set\n", humanize.Comma(int64(len(sets))), humanize.Comma(int64(total)))
		fmt.Printf("%s total indexed k-mers\n", humanize.Comma(totalKmers))
	},
}

func init() {
	collectionCreateCmd.Flags().IntP("k", "k", 0, "k-mer length (required)")
	collectionCreateCmd.Flags().StringP("prefix", "p", "", "constant prefix every indexed k-mer starts with (empty: index every k-mer)")
	collectionCreateCmd.Flags().StringP("format", "f", "coords", "storage format: raw or coords")

	collectionCmd.AddCommand(collectionCreateCmd)
	collectionCmd.AddCommand(collectionStatsCmd)
	RootCmd.AddCommand(collectionCmd)
}
