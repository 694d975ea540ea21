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

	"github.com/pkg/errors"
)

const ncbiURL = "https://www.ncbi.nlm.nih.gov"

// gbDBPaths maps a Genome's GBDb value to the NCBI URL path segment
// that serves its records. Only the databases genomes are actually
// sourced from are recognized.
var gbDBPaths = map[string]string{
	"assembly": "assembly",
	"nuccore":  "nuccore",
}

// ErrUnknownGenBankDB means a genome's gb_db value has no known NCBI
// URL mapping.
var ErrUnknownGenBankDB = errors.New("catalog: unknown GenBank database")

// GenBankRecordURL builds the NCBI web link for a genome's accession
// or numeric ID within db.
func GenBankRecordURL(accOrID, db string) (string, error) {
	path, ok := gbDBPaths[db]
	if !ok {
		return "", ErrUnknownGenBankDB
	}
	return fmt.Sprintf("%s/%s/%s", ncbiURL, path, accOrID), nil
}

// GenomeRecordURL returns the GenBank web link for a genome, or ""
// if it has no gb_db set or no recognized/usable identifier.
func GenomeRecordURL(g *Genome) string {
	if g.GBDb == nil {
		return ""
	}

	var id string
	switch {
	case g.GBAcc != nil:
		id = *g.GBAcc
	case g.GBID != nil:
		id = fmt.Sprintf("%d", *g.GBID)
	default:
		return ""
	}

	url, err := GenBankRecordURL(id, *g.GBDb)
	if err != nil {
		return ""
	}
	return url
}
