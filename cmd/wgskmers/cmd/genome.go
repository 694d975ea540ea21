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

	"github.com/jlumpe/wgskmers/catalog"
)

var genomeCmd = &cobra.Command{
	Use:   "genome",
	Short: "manage genomes in the database",
}

var genomeAddCmd = &cobra.Command{
	Use:   "add [file]",
	Short: "add a genome sequence file to the database",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := getOptions(cmd)
		db := openDatabase(opts)
		defer db.Close()

		description := getFlagNonEmptyString(cmd, "description")
		organism := getFlagString(cmd, "organism")
		assembled := getFlagBool(cmd, "assembled")
		format := getFlagString(cmd, "format")
		setIDs := getFlagStringSlice(cmd, "set")

		f, err := os.Open(args[0])
		checkError(err)
		defer f.Close()

		genome := &catalog.Genome{
			Description: description,
			FileFormat:  format,
			IsAssembled: assembled,
		}
		if organism != "" {
			genome.Organism = &organism
		}

		genome, err = db.StoreGenome(f, genome)
		checkError(err)

		for _, s := range setIDs {
			checkError(db.AddGenomeToSet(parseGenomeID(s), genome.ID))
		}

		fmt.Printf("added genome %d: %s\n", genome.ID, genome.Description)
	},
}

var genomeLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "print how many genomes the database holds (genomes are not listed individually)",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		opts := getOptions(cmd)
		db := openDatabase(opts)
		defer db.Close()

		n, err := db.CountGenomes()
		checkError(err)
		fmt.Printf("%d genome(s)\n", n)
	},
}

var genomeRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "remove a genome and its file from the database",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := getOptions(cmd)
		db := openDatabase(opts)
		defer db.Close()

		id := parseGenomeID(args[0])
		var genome catalog.Genome
		err := db.DB.Get(&genome, `SELECT * FROM genomes WHERE id = ?`, id)
		checkError(err)

		checkError(db.RemoveGenome(&genome))
		fmt.Printf("removed genome %d\n", id)
	},
}

func parseGenomeID(s string) int64 {
	var id int64
	_, err := fmt.Sscanf(s, "%d", &id)
	if err != nil {
		checkError(fmt.Errorf("invalid genome id %q", s))
	}
	return id
}

func init() {
	genomeAddCmd.Flags().StringP("description", "D", "", "unique genome description (required)")
	genomeAddCmd.Flags().StringP("organism", "o", "", "organism name")
	genomeAddCmd.Flags().BoolP("assembled", "a", true, "sequence is an assembled genome rather than raw reads")
	genomeAddCmd.Flags().StringP("format", "f", "fasta", "sequence file format (fasta or fastq)")
	genomeAddCmd.Flags().StringSliceP("set", "s", nil, "genome set id(s) to add the new genome to")

	genomeCmd.AddCommand(genomeAddCmd)
	genomeCmd.AddCommand(genomeLsCmd)
	genomeCmd.AddCommand(genomeRmCmd)
	RootCmd.AddCommand(genomeCmd)
}
