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
	"time"

	"github.com/pkg/errors"
)

// StoreGenomeSet creates a new named genome set. Names must be unique;
// ported from commands/genomes.py's make_set, which rejects a duplicate
// name before the insert rather than relying on the unique constraint
// alone.
func (db *Database) StoreGenomeSet(set *GenomeSet) (*GenomeSet, error) {
	var count int
	if err := db.DB.Get(&count, `SELECT COUNT(*) FROM genome_sets WHERE name = ?`, set.Name); err != nil {
		return nil, errors.Wrap(err, "catalog: checking genome set name")
	}
	if count > 0 {
		return nil, errors.Errorf("catalog: genome set named %q already exists", set.Name)
	}

	now := time.Now().UTC()
	set.CreatedAt, set.UpdatedAt = now, now

	res, err := db.DB.NamedExec(`
		INSERT INTO genome_sets (name, description, extra, created_at, updated_at)
		VALUES (:name, :description, :extra, :created_at, :updated_at)
	`, set)
	if err != nil {
		return nil, errors.Wrap(err, "catalog: inserting genome set row")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, errors.Wrap(err, "catalog: reading inserted genome set id")
	}
	set.ID = id

	return set, nil
}

// AddGenomeToSet associates a genome with a genome set; re-adding an
// existing membership is a no-op rather than an error, since set
// membership has no meaningful duplicate state.
func (db *Database) AddGenomeToSet(setID, genomeID int64) error {
	_, err := db.DB.Exec(`
		INSERT OR IGNORE INTO genome_set_assoc (set_id, genome_id)
		VALUES (?, ?)
	`, setID, genomeID)
	if err != nil {
		return errors.Wrap(err, "catalog: adding genome to set")
	}
	return nil
}

// RemoveGenomeFromSet removes a genome's membership in a set, if present.
func (db *Database) RemoveGenomeFromSet(setID, genomeID int64) error {
	_, err := db.DB.Exec(`DELETE FROM genome_set_assoc WHERE set_id = ? AND genome_id = ?`, setID, genomeID)
	if err != nil {
		return errors.Wrap(err, "catalog: removing genome from set")
	}
	return nil
}

// ListGenomeSets returns every genome set, ordered by id.
func (db *Database) ListGenomeSets() ([]*GenomeSet, error) {
	var sets []*GenomeSet
	if err := db.DB.Select(&sets, `SELECT * FROM genome_sets ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "catalog: listing genome sets")
	}
	return sets, nil
}

// GetGenomeSet loads a genome set by id.
func (db *Database) GetGenomeSet(id int64) (*GenomeSet, error) {
	var set GenomeSet
	if err := db.DB.Get(&set, `SELECT * FROM genome_sets WHERE id = ?`, id); err != nil {
		return nil, errors.Wrap(err, "catalog: loading genome set")
	}
	return &set, nil
}
