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
	"database/sql"

	"github.com/pkg/errors"
)

// CountGenomes returns the total number of genomes in the catalog.
func (db *Database) CountGenomes() (int, error) {
	var count int
	err := db.DB.Get(&count, `SELECT COUNT(*) FROM genomes`)
	return count, errors.Wrap(err, "catalog: counting genomes")
}

// GenomesNotInCollection returns every genome that has no k-mer set
// row yet under the given collection, ordered by id for deterministic
// iteration.
func (db *Database) GenomesNotInCollection(collectionID int64) ([]*Genome, error) {
	var genomes []*Genome
	err := db.DB.Select(&genomes, `
		SELECT g.* FROM genomes g
		WHERE g.id NOT IN (
			SELECT genome_id FROM kmer_sets WHERE collection_id = ?
		)
		ORDER BY g.id
	`, collectionID)
	if err != nil {
		return nil, errors.Wrap(err, "catalog: listing genomes not in collection")
	}
	return genomes, nil
}

// GetKmerCollection loads a kmer collection by id.
func (db *Database) GetKmerCollection(id int64) (*KmerSetCollection, error) {
	var c KmerSetCollection
	err := db.DB.Get(&c, `SELECT * FROM kmer_collections WHERE id = ?`, id)
	if err != nil {
		return nil, errors.Wrap(err, "catalog: loading k-mer collection")
	}
	return &c, nil
}

// GenomeKmerSet pairs a genome with its pre-computed k-mer set in some
// collection; returned by ListKmerSets for query-engine reference
// construction.
type GenomeKmerSet struct {
	Genome  Genome
	KmerSet KmerSet
}

// ListKmerSets returns every genome/k-mer-set pair stored in a
// collection, ordered by genome id for deterministic reference order
// (the same order the query engine reports ties in).
func (db *Database) ListKmerSets(collectionID int64) ([]GenomeKmerSet, error) {
	rows, err := db.DB.Queryx(`
		SELECT g.*, k.collection_id, k.genome_id, k.dtype_str, k.has_counts, k.count, k.filename, k.extra
		FROM kmer_sets k
		JOIN genomes g ON g.id = k.genome_id
		WHERE k.collection_id = ?
		ORDER BY g.id
	`, collectionID)
	if err != nil {
		return nil, errors.Wrap(err, "catalog: listing k-mer sets")
	}
	defer rows.Close()

	var result []GenomeKmerSet
	for rows.Next() {
		var g Genome
		var k KmerSet
		if err := rows.Scan(
			&g.ID, &g.Description, &g.Organism,
			&g.GBDb, &g.GBID, &g.GBAcc, &g.GBSummary, &g.GBTaxID,
			&g.TaxSpecies, &g.TaxGenus, &g.TaxStrain,
			&g.Filename, &g.FileFormat, &g.Compression,
			&g.IsAssembled, &g.Extra, &g.CreatedAt, &g.UpdatedAt,
			&k.CollectionID, &k.GenomeID, &k.DtypeStr, &k.HasCounts, &k.Count, &k.Filename, &k.Extra,
		); err != nil {
			return nil, errors.Wrap(err, "catalog: scanning k-mer set row")
		}
		k.CollectionID = collectionID
		result = append(result, GenomeKmerSet{Genome: g, KmerSet: k})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "catalog: listing k-mer sets")
	}
	return result, nil
}

// FirstGenomeSetName returns the name of the lowest-id GenomeSet a
// genome belongs to, or "" if it belongs to none.
func (db *Database) FirstGenomeSetName(genomeID int64) (string, error) {
	var name string
	err := db.DB.Get(&name, `
		SELECT s.name FROM genome_sets s
		JOIN genome_set_assoc a ON a.set_id = s.id
		WHERE a.genome_id = ?
		ORDER BY s.id
		LIMIT 1
	`, genomeID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "catalog: looking up genome set name")
	}
	return name, nil
}
