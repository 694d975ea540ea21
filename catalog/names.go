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

package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`\W+`)

const maxBaseLen = 25

func slugify(s string, lower bool) string {
	if len(s) > maxBaseLen {
		s = s[:maxBaseLen]
	}
	s = nonWord.ReplaceAllString(s, "_")
	if lower {
		s = strings.ToLower(s)
	}
	return s
}

// genomeExtension builds the file extension for a genome's sequence
// file, e.g. ".fasta" or ".fasta.gz" (compression may be "" or "gzip").
func genomeExtension(fileFormat, compression string) string {
	ext := "." + fileFormat
	if compression == "gzip" {
		ext += ".gz"
	}
	return ext
}

// MakeGenomeFilename derives a unique genome filename from its
// description (or GenBank accession, if given), given a predicate
// reporting whether a candidate filename is already taken. Unlike the
// source this is grounded on, the disambiguating counter is inserted
// before the extension (base_1.ext) rather than after it, so the
// result always keeps its declared file-format extension.
func MakeGenomeFilename(description, gbAcc, fileFormat, compression string, taken func(string) bool) string {
	val := description
	if gbAcc != "" {
		val = gbAcc
	}

	ext := genomeExtension(fileFormat, compression)
	base := slugify(val, false)

	filename := base + ext
	for i := 1; taken(filename); i++ {
		filename = fmt.Sprintf("%s_%d%s", base, i, ext)
	}
	return filename
}

// MakeCollectionDirName derives a unique kmer_collections/ subdirectory
// name from a collection title, given a predicate reporting whether a
// candidate directory name is already taken.
func MakeCollectionDirName(title string, taken func(string) bool) string {
	base := slugify(title, true)

	dirname := base
	for i := 1; taken(dirname); i++ {
		dirname = fmt.Sprintf("%s_%d", base, i)
	}
	return dirname
}

// KmerSetFilename is the fixed per-genome filename within a collection
// directory: it only needs to be unique within that directory, and
// genome_id already guarantees that.
func KmerSetFilename(genomeID int64, format string) string {
	ext := "raw"
	if format == "coords" {
		ext = "coords"
	}
	return fmt.Sprintf("gen-%d.%s", genomeID, ext)
}
