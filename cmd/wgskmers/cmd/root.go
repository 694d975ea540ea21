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
	"runtime"

	"github.com/spf13/cobra"
)

// VERSION is the CLI's own version string, unrelated to any on-disk
// database version stamp.
const VERSION = "0.1.0"

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "wgskmers",
	Short: "Whole-genome k-mer indexing and similarity search",
	Long: fmt.Sprintf(`wgskmers - whole-genome k-mer indexing and similarity search

Indexes whole-genome nucleotide sequences by enumerating fixed-length
k-mers sharing a configured prefix, stores per-genome k-mer sets in a
versioned on-disk database, and answers nearest-neighbor queries from a
novel sequence against a reference collection using Hamming distance,
Jaccard index, and asymmetric Jaccard similarity.

Version: %s
`, VERSION),
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main(); it only needs to happen once.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}

func init() {
	defaultThreads := runtime.NumCPU()
	if defaultThreads > 2 {
		defaultThreads = 2
	}

	RootCmd.PersistentFlags().StringP("db", "d", "", "path to the database directory (default: nearest .kmer-db found from cwd upward)")
	RootCmd.PersistentFlags().IntP("threads", "j", defaultThreads, "number of worker goroutines to use for the query engine")
	RootCmd.PersistentFlags().BoolP("verbose", "", false, "print verbose information")
}
