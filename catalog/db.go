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
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shenwei356/util/pathutil"
	"github.com/shenwei356/xopen"

	_ "modernc.org/sqlite"

	"github.com/jlumpe/wgskmers"
)

// CurrentVersion is the schema version this package creates and
// expects to open. Bumping it is a breaking change; there is no
// in-place upgrade path here — schema migration is treated as an
// external tool's job, not this package's.
const CurrentVersion = 1

// InfoFileName names the marker file identifying a directory as a
// k-mer database and carrying its version stamp.
const InfoFileName = ".kmer-db"

// ErrNotADatabase means a directory has no .kmer-db marker file.
var ErrNotADatabase = errors.New("catalog: not a database directory")

// ErrVersionMismatch means a database's version stamp does not match
// CurrentVersion.
var ErrVersionMismatch = errors.New("catalog: database version mismatch")

// ErrNotEmpty means Create was asked to initialize a non-empty,
// non-overwrite directory.
var ErrNotEmpty = errors.New("catalog: directory exists and is not empty")

// ErrAlreadyExists is returned by store operations that refuse to
// overwrite an existing file.
var ErrAlreadyExists = errors.New("catalog: destination file already exists")

type infoFile struct {
	Version int `json:"version"`
}

const (
	relSqlite          = "data.db"
	relGenomes         = "genomes"
	relKmerCollections = "kmer_collections"
)

// Database is an open k-mer database directory: the relational catalog
// plus the genomes/ and kmer_collections/ blob areas it describes.
type Database struct {
	Directory string
	DB        *sqlx.DB
}

// IsDatabaseDir reports whether dir contains a .kmer-db marker file.
func IsDatabaseDir(dir string) bool {
	exists, err := pathutil.Exists(filepath.Join(dir, InfoFileName))
	return err == nil && exists
}

// FindDatabaseRoot walks dir and its parents looking for a directory
// containing a .kmer-db marker, returning "" if none is found before
// reaching the filesystem root.
func FindDatabaseRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrap(err, "catalog: resolving absolute path")
	}

	for {
		if IsDatabaseDir(abs) {
			return abs, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", nil
		}
		abs = parent
	}
}

// Create initializes a new, empty database directory: writes the
// .kmer-db marker, creates the genomes/ and kmer_collections/
// subdirectories, and applies the catalog schema. If overwrite is
// true, an existing directory's contents are wiped first; otherwise a
// non-empty directory is an error.
func Create(directory string, overwrite bool) (*Database, error) {
	directory, err := filepath.Abs(directory)
	if err != nil {
		return nil, errors.Wrap(err, "catalog: resolving absolute path")
	}

	exists, err := pathutil.DirExists(directory)
	if err != nil {
		return nil, errors.Wrap(err, "catalog: checking destination directory")
	}

	if exists {
		empty, err := pathutil.IsEmpty(directory)
		if err != nil {
			return nil, errors.Wrap(err, "catalog: checking destination directory")
		}
		if !empty {
			if !overwrite {
				return nil, ErrNotEmpty
			}
			if err := os.RemoveAll(directory); err != nil {
				return nil, errors.Wrap(err, "catalog: clearing destination directory")
			}
		}
	}

	if err := os.MkdirAll(directory, 0755); err != nil {
		return nil, errors.Wrap(err, "catalog: creating database directory")
	}
	if err := os.Mkdir(filepath.Join(directory, relGenomes), 0755); err != nil {
		return nil, errors.Wrap(err, "catalog: creating genomes directory")
	}
	if err := os.Mkdir(filepath.Join(directory, relKmerCollections), 0755); err != nil {
		return nil, errors.Wrap(err, "catalog: creating kmer_collections directory")
	}

	if err := writeInfoFile(directory, CurrentVersion); err != nil {
		return nil, err
	}

	db, err := sqlx.Connect("sqlite", filepath.Join(directory, relSqlite))
	if err != nil {
		return nil, errors.Wrap(err, "catalog: opening catalog database")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "catalog: applying schema")
	}

	return &Database{Directory: directory, DB: db}, nil
}

// Open opens an existing database directory, failing if it has no
// .kmer-db marker or its version doesn't match CurrentVersion.
func Open(directory string) (*Database, error) {
	directory, err := filepath.Abs(directory)
	if err != nil {
		return nil, errors.Wrap(err, "catalog: resolving absolute path")
	}

	info, err := readInfoFile(directory)
	if err != nil {
		return nil, err
	}
	if info.Version != CurrentVersion {
		return nil, ErrVersionMismatch
	}

	db, err := sqlx.Connect("sqlite", filepath.Join(directory, relSqlite))
	if err != nil {
		return nil, errors.Wrap(err, "catalog: opening catalog database")
	}

	return &Database{Directory: directory, DB: db}, nil
}

func writeInfoFile(directory string, version int) error {
	f, err := os.Create(filepath.Join(directory, InfoFileName))
	if err != nil {
		return errors.Wrap(err, "catalog: writing info file")
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(infoFile{Version: version})
}

func readInfoFile(directory string) (infoFile, error) {
	path := filepath.Join(directory, InfoFileName)
	exists, err := pathutil.Exists(path)
	if err != nil {
		return infoFile{}, errors.Wrap(err, "catalog: checking info file")
	}
	if !exists {
		return infoFile{}, ErrNotADatabase
	}

	f, err := os.Open(path)
	if err != nil {
		return infoFile{}, errors.Wrap(err, "catalog: reading info file")
	}
	defer f.Close()

	var info infoFile
	if err := json.NewDecoder(f).Decode(&info); err != nil {
		return infoFile{}, errors.Wrap(err, "catalog: parsing info file")
	}
	return info, nil
}

// Close closes the underlying catalog database connection.
func (db *Database) Close() error {
	return db.DB.Close()
}

func (db *Database) genomePath(filename string) string {
	return filepath.Join(db.Directory, relGenomes, filename)
}

// GenomePath returns the absolute path to a stored genome's sequence
// file, for callers (e.g. vectorize) that need to open it directly
// rather than through OpenGenome's io.ReadCloser.
func (db *Database) GenomePath(genome *Genome) string {
	return db.genomePath(genome.Filename)
}

func (db *Database) collectionDirPath(dirname string) string {
	return filepath.Join(db.Directory, relKmerCollections, dirname)
}

func (db *Database) kmerSetPath(collectionDir, filename string) string {
	return filepath.Join(db.Directory, relKmerCollections, collectionDir, filename)
}

// genomeFilenameTaken reports whether a genome file with this filename
// is already registered in the catalog.
func (db *Database) genomeFilenameTaken(filename string) bool {
	var count int
	err := db.DB.Get(&count, `SELECT COUNT(*) FROM genomes WHERE filename = ?`, filename)
	return err == nil && count > 0
}

func (db *Database) collectionDirTaken(dirname string) bool {
	var count int
	err := db.DB.Get(&count, `SELECT COUNT(*) FROM kmer_collections WHERE directory = ?`, dirname)
	return err == nil && count > 0
}

// StoreGenome copies src's contents into the genomes/ blob area under a
// derived filename, then inserts the catalog row, in that order: if the
// insert fails (e.g. a unique constraint violation slipped in between
// the name check and the insert), the copied file is removed again.
// This is the try-filesystem-then-catalog-with-compensation pattern the
// reference Database.store_genome uses.
func (db *Database) StoreGenome(src io.Reader, genome *Genome) (*Genome, error) {
	gbAcc := ""
	if genome.GBAcc != nil {
		gbAcc = *genome.GBAcc
	}
	compression := ""
	if genome.Compression != nil {
		compression = *genome.Compression
	}

	genome.Filename = MakeGenomeFilename(genome.Description, gbAcc, genome.FileFormat, compression, db.genomeFilenameTaken)
	storePath := db.genomePath(genome.Filename)

	if exists, _ := pathutil.Exists(storePath); exists {
		return nil, ErrAlreadyExists
	}

	dest, err := xopen.Wopen(storePath)
	if err != nil {
		return nil, errors.Wrap(err, "catalog: opening genome destination file")
	}
	if _, err := io.Copy(dest, src); err != nil {
		dest.Close()
		os.Remove(storePath)
		return nil, errors.Wrap(err, "catalog: copying genome data")
	}
	if err := dest.Close(); err != nil {
		os.Remove(storePath)
		return nil, errors.Wrap(err, "catalog: closing genome destination file")
	}

	now := time.Now().UTC()
	genome.CreatedAt, genome.UpdatedAt = now, now

	res, err := db.DB.NamedExec(`
		INSERT INTO genomes
			(description, organism, gb_db, gb_id, gb_acc, gb_summary, gb_taxid,
			 tax_species, tax_genus, tax_strain, filename, file_format,
			 compression, is_assembled, extra, created_at, updated_at)
		VALUES
			(:description, :organism, :gb_db, :gb_id, :gb_acc, :gb_summary, :gb_taxid,
			 :tax_species, :tax_genus, :tax_strain, :filename, :file_format,
			 :compression, :is_assembled, :extra, :created_at, :updated_at)
	`, genome)
	if err != nil {
		os.Remove(storePath)
		return nil, errors.Wrap(err, "catalog: inserting genome row")
	}

	id, err := res.LastInsertId()
	if err != nil {
		os.Remove(storePath)
		return nil, errors.Wrap(err, "catalog: reading inserted genome id")
	}
	genome.ID = id

	return genome, nil
}

// RemoveGenome deletes a genome's catalog row and its backing file.
// The row is removed first; if that succeeds the file is removed too,
// but a failure to remove the (now-orphaned) file is not treated as
// fatal since the catalog is the source of truth for what genomes
// exist.
func (db *Database) RemoveGenome(genome *Genome) error {
	if _, err := db.DB.Exec(`DELETE FROM genomes WHERE id = ?`, genome.ID); err != nil {
		return errors.Wrap(err, "catalog: deleting genome row")
	}
	os.Remove(db.genomePath(genome.Filename))
	return nil
}

// OpenGenome opens a stored genome's sequence file for reading,
// transparently decompressing if it was stored gzip-compressed.
func (db *Database) OpenGenome(genome *Genome) (io.ReadCloser, error) {
	r, err := xopen.Ropen(db.genomePath(genome.Filename))
	if err != nil {
		return nil, errors.Wrap(err, "catalog: opening genome file")
	}
	return r, nil
}

// CreateKmerCollection validates (k, prefix) before touching the
// filesystem, then creates the collection's directory, then its catalog
// row; on a catalog error the directory is removed again.
func (db *Database) CreateKmerCollection(collection *KmerSetCollection) (*KmerSetCollection, error) {
	if _, err := wgskmers.NewKmerSpec(collection.K, collection.Prefix); err != nil {
		return nil, err
	}

	collection.Directory = MakeCollectionDirName(collection.Title, db.collectionDirTaken)
	dirPath := db.collectionDirPath(collection.Directory)

	if err := os.Mkdir(dirPath, 0755); err != nil {
		return nil, errors.Wrap(err, "catalog: creating collection directory")
	}

	now := time.Now().UTC()
	collection.CreatedAt, collection.UpdatedAt = now, now

	res, err := db.DB.NamedExec(`
		INSERT INTO kmer_collections
			(title, directory, prefix, k, parameters, format, extra, created_at, updated_at)
		VALUES
			(:title, :directory, :prefix, :k, :parameters, :format, :extra, :created_at, :updated_at)
	`, collection)
	if err != nil {
		os.Remove(dirPath)
		return nil, errors.Wrap(err, "catalog: inserting collection row")
	}

	id, err := res.LastInsertId()
	if err != nil {
		os.Remove(dirPath)
		return nil, errors.Wrap(err, "catalog: reading inserted collection id")
	}
	collection.ID = id

	return collection, nil
}

// StoreKmerSet writes a genome's k-mer set data into its collection's
// directory via writeBody, then inserts the catalog row; on a catalog
// error the file is removed again.
func (db *Database) StoreKmerSet(collection *KmerSetCollection, genomeID int64, dtypeStr string, hasCounts bool, count int64, writeBody func(io.Writer) error) (*KmerSet, error) {
	filename := KmerSetFilename(genomeID, collection.Format)
	path := db.kmerSetPath(collection.Directory, filename)

	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "catalog: creating k-mer set file")
	}
	if err := writeBody(f); err != nil {
		f.Close()
		os.Remove(path)
		return nil, errors.Wrap(err, "catalog: writing k-mer set data")
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, errors.Wrap(err, "catalog: closing k-mer set file")
	}

	kmerSet := &KmerSet{
		CollectionID: collection.ID,
		GenomeID:     genomeID,
		DtypeStr:     dtypeStr,
		HasCounts:    hasCounts,
		Count:        count,
		Filename:     filename,
	}

	_, err = db.DB.NamedExec(`
		INSERT INTO kmer_sets (collection_id, genome_id, dtype_str, has_counts, count, filename, extra)
		VALUES (:collection_id, :genome_id, :dtype_str, :has_counts, :count, :filename, :extra)
	`, kmerSet)
	if err != nil {
		os.Remove(path)
		return nil, errors.Wrap(err, "catalog: inserting k-mer set row")
	}

	return kmerSet, nil
}

// OpenKmerSet opens a stored k-mer set's data file for reading.
func (db *Database) OpenKmerSet(collection *KmerSetCollection, kmerSet *KmerSet) (*os.File, error) {
	f, err := os.Open(db.kmerSetPath(collection.Directory, kmerSet.Filename))
	if err != nil {
		return nil, errors.Wrap(err, "catalog: opening k-mer set file")
	}
	return f, nil
}
