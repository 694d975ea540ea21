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

// Package catalog is the relational store backing a k-mer database
// directory: the genomes, genome sets, k-mer collections and k-mer sets
// tables, plus the directory lifecycle (.kmer-db version stamp,
// genomes/ blob area, kmer_collections/ tree) that ties the catalog to
// the files it describes.
package catalog

import "time"

// Timestamps is embedded in every tracked model, replacing the
// recursive mutation-tracking mixin the original Python models used
// with an explicit touch: Touch() sets UpdatedAt directly instead of an
// ORM event hook doing it. Inserts set both fields; this package has no
// method that updates an existing row.
type Timestamps struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Touch marks the row as modified now by setting UpdatedAt. Nothing in
// this package calls it; it does not write the row.
func (t *Timestamps) Touch() {
	t.UpdatedAt = time.Now().UTC()
}

// Genome is a single reference genome's metadata, plus where to find
// its sequence file under the database's genomes/ directory.
type Genome struct {
	ID          int64   `db:"id"`
	Description string  `db:"description"`
	Organism    *string `db:"organism"`

	GBDb      *string `db:"gb_db"`
	GBID      *int64  `db:"gb_id"`
	GBAcc     *string `db:"gb_acc"`
	GBSummary JSON    `db:"gb_summary"`
	GBTaxID   *int64  `db:"gb_taxid"`

	TaxSpecies *string `db:"tax_species"`
	TaxGenus   *string `db:"tax_genus"`
	TaxStrain  *string `db:"tax_strain"`

	Filename    string  `db:"filename"`
	FileFormat  string  `db:"file_format"`
	Compression *string `db:"compression"` // nil or "gzip"

	IsAssembled bool `db:"is_assembled"`
	Extra       JSON `db:"extra"`

	Timestamps
}

// GenomeSet is a named, user-curated group of genomes.
type GenomeSet struct {
	ID          int64   `db:"id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
	Extra       JSON    `db:"extra"`

	Timestamps
}

// KmerSetCollection is a batch of k-mer sets computed for a group of
// genomes under one KmerSpec and storage format. Its Directory names
// the subdirectory of kmer_collections/ holding the per-genome files.
type KmerSetCollection struct {
	ID         int64  `db:"id"`
	Title      string `db:"title"`
	Directory  string `db:"directory"`
	Prefix     string `db:"prefix"`
	K          int    `db:"k"`
	Parameters JSON   `db:"parameters"`
	Format     string `db:"format"` // "raw" or "coords"
	Extra      JSON   `db:"extra"`

	Timestamps
}

// KmerSet is one genome's pre-computed k-mer set within a collection.
type KmerSet struct {
	CollectionID int64  `db:"collection_id"`
	GenomeID     int64  `db:"genome_id"`
	DtypeStr     string `db:"dtype_str"`
	HasCounts    bool   `db:"has_counts"`
	Count        int64  `db:"count"`
	Filename     string `db:"filename"`
	Extra        JSON   `db:"extra"`
}

// GenomeSetAssoc is one row of the genome_set_assoc join table; it has
// no standalone identity, only the (set, genome) membership pair.
type GenomeSetAssoc struct {
	SetID    int64 `db:"set_id"`
	GenomeID int64 `db:"genome_id"`
}
