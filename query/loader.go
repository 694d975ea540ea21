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

package query

import (
	"github.com/jlumpe/wgskmers"
	"github.com/jlumpe/wgskmers/catalog"
	"github.com/jlumpe/wgskmers/storage"
)

// RefsForCollection builds one Ref per k-mer set stored in collection,
// in deterministic genome-id order, each annotated with its genome's
// first genome-set name if it belongs to one.
func RefsForCollection(db *catalog.Database, collection *catalog.KmerSetCollection) ([]*Ref, error) {
	sets, err := db.ListKmerSets(collection.ID)
	if err != nil {
		return nil, err
	}

	refs := make([]*Ref, len(sets))
	for i := range sets {
		genome := sets[i].Genome
		kset := sets[i].KmerSet

		setName, err := db.FirstGenomeSetName(genome.ID)
		if err != nil {
			return nil, err
		}

		refs[i] = &Ref{Genome: &genome, KmerSet: &kset, SetName: setName}
	}
	return refs, nil
}

// CatalogLoader returns a Loader reading a Ref's k-mer set from
// collection's storage area, converting to Coords regardless of
// whether collection.Format is "raw" or "coords" so the engine never
// needs to know which format backs a given collection.
func CatalogLoader(db *catalog.Database, collection *catalog.KmerSetCollection) Loader {
	return func(ref *Ref) (*wgskmers.Coords, error) {
		f, err := db.OpenKmerSet(collection, ref.KmerSet)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		if collection.Format == "raw" {
			reader, err := storage.NewRawReader(f)
			if err != nil {
				return nil, err
			}
			if ref.KmerSet.HasCounts {
				cv, err := reader.ReadCountVec()
				if err != nil {
					return nil, err
				}
				return cv.ToCoords(true), nil
			}
			bv, err := reader.ReadBoolVec()
			if err != nil {
				return nil, err
			}
			return bv.ToCoords(), nil
		}

		reader, err := storage.NewCoordsReader(f)
		if err != nil {
			return nil, err
		}
		return reader.ReadCoords()
	}
}
