package catalog

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateAndOpen(t *testing.T) {
	dir := t.TempDir()
	db, err := Create(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if !IsDatabaseDir(dir) {
		t.Errorf("IsDatabaseDir(%s) = false after Create", dir)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
}

func TestCreateNonEmptyWithoutOverwrite(t *testing.T) {
	dir := t.TempDir()
	db, err := Create(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	db.Close()

	if _, err := Create(dir, false); err != ErrNotEmpty {
		t.Errorf("Create on non-empty dir = %v, want ErrNotEmpty", err)
	}
}

func TestFindDatabaseRoot(t *testing.T) {
	dir := t.TempDir()
	db, err := Create(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	nested := filepath.Join(dir, "a", "b", "c")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	root, err := FindDatabaseRoot(nested)
	if err != nil {
		t.Fatal(err)
	}
	if root != dir {
		t.Errorf("FindDatabaseRoot() = %q, want %q", root, dir)
	}
}

func TestStoreAndRemoveGenome(t *testing.T) {
	dir := t.TempDir()
	db, err := Create(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	genome := &Genome{
		Description: "Test organism",
		FileFormat:  "fasta",
		IsAssembled: true,
	}

	stored, err := db.StoreGenome(strings.NewReader(">chr1\nACGT\n"), genome)
	if err != nil {
		t.Fatal(err)
	}
	if stored.ID == 0 {
		t.Errorf("expected nonzero genome ID after insert")
	}
	if stored.Filename != "Test_organism.fasta" {
		t.Errorf("Filename = %q", stored.Filename)
	}

	rc, err := db.OpenGenome(stored)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	buf.ReadFrom(rc)
	rc.Close()
	if buf.String() != ">chr1\nACGT\n" {
		t.Errorf("round-tripped genome content mismatch: %q", buf.String())
	}

	if err := db.RemoveGenome(stored); err != nil {
		t.Fatal(err)
	}
	var count int
	if err := db.DB.Get(&count, `SELECT COUNT(*) FROM genomes WHERE id = ?`, stored.ID); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("genome row still present after RemoveGenome")
	}
}

func TestStoreGenomeFilenameCollision(t *testing.T) {
	dir := t.TempDir()
	db, err := Create(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	g1 := &Genome{Description: "Same name", FileFormat: "fasta", IsAssembled: true}
	if _, err := db.StoreGenome(strings.NewReader("a"), g1); err != nil {
		t.Fatal(err)
	}

	// Descriptions are unique, so use one that differs but slugifies to
	// the same base name.
	g2 := &Genome{Description: "Same-name", FileFormat: "fasta", IsAssembled: true}
	stored2, err := db.StoreGenome(strings.NewReader("b"), g2)
	if err != nil {
		t.Fatal(err)
	}
	if stored2.Filename != "Same_name_1.fasta" {
		t.Errorf("second genome Filename = %q, want Same_name_1.fasta", stored2.Filename)
	}
}

func TestCreateKmerCollectionRejectsInvalidSpec(t *testing.T) {
	dir := t.TempDir()
	db, err := Create(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	cases := []*KmerSetCollection{
		{Title: "bad prefix", Prefix: "AN", K: 11, Format: "coords"},
		{Title: "bad k", Prefix: "AT", K: 0, Format: "coords"},
		{Title: "prefix too long", Prefix: "ACGTACGTACG", K: 11, Format: "coords"},
	}
	for _, c := range cases {
		if _, err := db.CreateKmerCollection(c); err == nil {
			t.Errorf("CreateKmerCollection(%+v) succeeded, want error", c)
		}
	}

	// Rejected collections must never reach the filesystem.
	entries, err := filepath.Glob(filepath.Join(dir, relKmerCollections, "*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no collection directories created, got %v", entries)
	}
}

func TestCreateKmerCollectionAndStoreSet(t *testing.T) {
	dir := t.TempDir()
	db, err := Create(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	genome := &Genome{Description: "G1", FileFormat: "fasta", IsAssembled: true}
	if _, err := db.StoreGenome(strings.NewReader("a"), genome); err != nil {
		t.Fatal(err)
	}

	collection := &KmerSetCollection{
		Title:  "My k-mers",
		Prefix: "AT",
		K:      11,
		Format: "coords",
	}
	collection, err = db.CreateKmerCollection(collection)
	if err != nil {
		t.Fatal(err)
	}
	if collection.ID == 0 {
		t.Errorf("expected nonzero collection ID")
	}

	kset, err := db.StoreKmerSet(collection, genome.ID, "u8", false, 3, func(w io.Writer) error {
		_, err := w.Write([]byte{1, 2, 3})
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	if kset.Filename != "gen-1.coords" {
		t.Errorf("kset.Filename = %q", kset.Filename)
	}

	f, err := db.OpenKmerSet(collection, kset)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var buf bytes.Buffer
	buf.ReadFrom(f)
	if buf.Len() != 3 {
		t.Errorf("stored k-mer set body length = %d, want 3", buf.Len())
	}
}
