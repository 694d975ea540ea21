package builder

import (
	"os"
	"strings"
	"testing"

	"github.com/jlumpe/wgskmers"
	"github.com/jlumpe/wgskmers/catalog"
)

func newTestDB(t *testing.T) *catalog.Database {
	t.Helper()
	db, err := catalog.Create(t.TempDir(), false)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestBuildAddsAssembledGenomeAsBoolVec(t *testing.T) {
	db := newTestDB(t)

	genome := &catalog.Genome{
		Description: "Genome 1",
		FileFormat:  "fasta",
		IsAssembled: true,
	}
	genome, err := db.StoreGenome(strings.NewReader(">chr1\nAACGAACG\n"), genome)
	if err != nil {
		t.Fatal(err)
	}

	collection := &catalog.KmerSetCollection{
		Title:  "Test collection",
		Prefix: "A",
		K:      4,
		Format: "coords",
	}
	collection, err = db.CreateKmerCollection(collection)
	if err != nil {
		t.Fatal(err)
	}

	result, err := Build(db, collection, Options{RevComp: true, Dtype: wgskmers.U16})
	if err != nil {
		t.Fatal(err)
	}
	if result.Added != 1 {
		t.Errorf("Added = %d, want 1", result.Added)
	}
	if len(result.Errors) != 0 {
		t.Errorf("Errors = %v, want none", result.Errors)
	}
	if result.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0", result.Skipped)
	}

	kset, err := db.DB.Queryx(`SELECT * FROM kmer_sets WHERE genome_id = ?`, genome.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !kset.Next() {
		t.Fatal("expected a kmer_sets row for the genome")
	}
	var row catalog.KmerSet
	if err := kset.StructScan(&row); err != nil {
		t.Fatal(err)
	}
	kset.Close()
	if row.DtypeStr != "bool" || row.HasCounts {
		t.Errorf("kmer_sets row dtype_str=%q has_counts=%v, want bool without counts", row.DtypeStr, row.HasCounts)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	genome := &catalog.Genome{Description: "Genome 1", FileFormat: "fasta", IsAssembled: true}
	if _, err := db.StoreGenome(strings.NewReader(">chr1\nAACGAACG\n"), genome); err != nil {
		t.Fatal(err)
	}

	collection := &catalog.KmerSetCollection{Title: "C1", Prefix: "A", K: 4, Format: "coords"}
	collection, err := db.CreateKmerCollection(collection)
	if err != nil {
		t.Fatal(err)
	}

	first, err := Build(db, collection, Options{RevComp: true, Dtype: wgskmers.U16})
	if err != nil {
		t.Fatal(err)
	}
	if first.Added != 1 {
		t.Fatalf("first run Added = %d, want 1", first.Added)
	}

	second, err := Build(db, collection, Options{RevComp: true, Dtype: wgskmers.U16})
	if err != nil {
		t.Fatal(err)
	}
	if second.Added != 0 {
		t.Errorf("second run Added = %d, want 0 (already built)", second.Added)
	}
	if second.Skipped != 1 {
		t.Errorf("second run Skipped = %d, want 1", second.Skipped)
	}
}

func TestBuildTracksPerGenomeErrorsWithoutAborting(t *testing.T) {
	db := newTestDB(t)

	ok := &catalog.Genome{Description: "Good genome", FileFormat: "fasta", IsAssembled: true}
	if _, err := db.StoreGenome(strings.NewReader(">chr1\nAACGAACG\n"), ok); err != nil {
		t.Fatal(err)
	}
	bad := &catalog.Genome{Description: "Broken genome", FileFormat: "fasta", IsAssembled: true}
	if _, err := db.StoreGenome(strings.NewReader(""), bad); err != nil {
		t.Fatal(err)
	}
	// An empty FASTA file is valid input (zero records), so the broken
	// genome's empty file alone would not fail; its backing file is
	// removed below to make it unreadable instead.

	collection := &catalog.KmerSetCollection{Title: "C1", Prefix: "A", K: 4, Format: "coords"}
	collection, err := db.CreateKmerCollection(collection)
	if err != nil {
		t.Fatal(err)
	}

	// Remove the backing file for "bad" out from under the catalog row to
	// force a storage-layer failure without touching "ok".
	badPath := db.GenomePath(bad)
	if err := os.Remove(badPath); err != nil {
		t.Fatal(err)
	}

	result, err := Build(db, collection, Options{RevComp: true, Dtype: wgskmers.U16})
	if err != nil {
		t.Fatal(err)
	}
	if result.Added != 1 {
		t.Errorf("Added = %d, want 1 (only the good genome)", result.Added)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want exactly one", result.Errors)
	}
	if result.Errors[0].Genome.Description != "Broken genome" {
		t.Errorf("error recorded against wrong genome: %+v", result.Errors[0])
	}
}
