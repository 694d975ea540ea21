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

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "manage a wgskmers database directory",
}

var dbInitCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "create a new, empty database directory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		overwrite := getFlagBool(cmd, "force")

		db, err := catalog.Create(args[0], overwrite)
		checkError(err)
		defer db.Close()

		fmt.Printf("initialized database at %s (schema version %d)\n", db.Directory, catalog.CurrentVersion)
	},
}

var dbInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "print summary information about a database",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		opts := getOptions(cmd)
		db := openDatabase(opts)
		defer db.Close()

		n, err := db.CountGenomes()
		checkError(err)

		fmt.Printf("directory: %s\n", db.Directory)
		fmt.Printf("genomes:   %s\n", humanize.Comma(int64(n)))
	},
}

func init() {
	dbInitCmd.Flags().BoolP("force", "f", false, "overwrite an existing, non-empty directory")

	dbCmd.AddCommand(dbInitCmd)
	dbCmd.AddCommand(dbInfoCmd)
	RootCmd.AddCommand(dbCmd)
}
