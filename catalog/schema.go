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

// schema is the catalog's DDL, applied once by Create. There is no
// migration machinery here: the on-disk version stamp in .kmer-db only
// ever records which schema a database was created with, and a
// mismatch is a hard error (see Open) rather than something this
// package tries to resolve by altering tables in place.
const schema = `
CREATE TABLE genomes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	description TEXT NOT NULL UNIQUE,
	organism TEXT,
	gb_db TEXT,
	gb_id INTEGER UNIQUE,
	gb_acc TEXT UNIQUE,
	gb_summary TEXT,
	gb_taxid INTEGER,
	tax_species TEXT,
	tax_genus TEXT,
	tax_strain TEXT,
	filename TEXT NOT NULL UNIQUE,
	file_format TEXT NOT NULL,
	compression TEXT,
	is_assembled INTEGER NOT NULL,
	extra TEXT NOT NULL DEFAULT '{}',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE genome_sets (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	description TEXT,
	extra TEXT NOT NULL DEFAULT '{}',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE genome_set_assoc (
	set_id INTEGER NOT NULL REFERENCES genome_sets(id),
	genome_id INTEGER NOT NULL REFERENCES genomes(id),
	PRIMARY KEY (set_id, genome_id)
);

CREATE TABLE kmer_collections (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL UNIQUE,
	directory TEXT NOT NULL UNIQUE,
	prefix TEXT NOT NULL,
	k INTEGER NOT NULL,
	parameters TEXT NOT NULL DEFAULT '{}',
	format TEXT NOT NULL,
	extra TEXT NOT NULL DEFAULT '{}',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE kmer_sets (
	collection_id INTEGER NOT NULL REFERENCES kmer_collections(id),
	genome_id INTEGER NOT NULL REFERENCES genomes(id),
	dtype_str TEXT NOT NULL,
	has_counts INTEGER NOT NULL,
	count INTEGER NOT NULL,
	filename TEXT NOT NULL,
	extra TEXT NOT NULL DEFAULT '{}',
	PRIMARY KEY (collection_id, genome_id)
);
`
