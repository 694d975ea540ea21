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

	"github.com/spf13/cobra"

	"github.com/jlumpe/wgskmers/catalog"
)

var genomesetCmd = &cobra.Command{
	Use:   "genomeset",
	Short: "manage named groups of genomes",
}

var genomesetLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "list genome sets",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		opts := getOptions(cmd)
		db := openDatabase(opts)
		defer db.Close()

		sets, err := db.ListGenomeSets()
		checkError(err)

		for _, s := range sets {
			fmt.Printf("(%d) %s\n", s.ID, s.Name)
		}
	},
}

var genomesetCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "create a new genome set",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := getOptions(cmd)
		db := openDatabase(opts)
		defer db.Close()

		description := getFlagString(cmd, "description")
		set := &catalog.GenomeSet{Name: args[0]}
		if description != "" {
			set.Description = &description
		}

		set, err := db.StoreGenomeSet(set)
		checkError(err)

		fmt.Printf("genome set %q created with ID %d\n", set.Name, set.ID)
	},
}

var genomesetAddCmd = &cobra.Command{
	Use:   "add [set id] [genome id]",
	Short: "add a genome to a genome set",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		opts := getOptions(cmd)
		db := openDatabase(opts)
		defer db.Close()

		setID := parseGenomeID(args[0]) // set and genome ids use the same integer convention
		genomeID := parseGenomeID(args[1])

		checkError(db.AddGenomeToSet(setID, genomeID))
		fmt.Printf("added genome %d to set %d\n", genomeID, setID)
	},
}

func init() {
	genomesetCreateCmd.Flags().StringP("description", "D", "", "genome set description")

	genomesetCmd.AddCommand(genomesetLsCmd)
	genomesetCmd.AddCommand(genomesetCreateCmd)
	genomesetCmd.AddCommand(genomesetAddCmd)
	RootCmd.AddCommand(genomesetCmd)
}
