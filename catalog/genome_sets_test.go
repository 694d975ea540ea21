package catalog

import (
	"strings"
	"testing"
)

func TestStoreGenomeSetRejectsDuplicateName(t *testing.T) {
	dir := t.TempDir()
	db, err := Create(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	set, err := db.StoreGenomeSet(&GenomeSet{Name: "core"})
	if err != nil {
		t.Fatal(err)
	}
	if set.ID == 0 {
		t.Errorf("expected nonzero genome set ID")
	}

	if _, err := db.StoreGenomeSet(&GenomeSet{Name: "core"}); err == nil {
		t.Errorf("expected error creating duplicate-named genome set")
	}
}

func TestAddGenomeToSetAndFirstGenomeSetName(t *testing.T) {
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

	name, err := db.FirstGenomeSetName(genome.ID)
	if err != nil {
		t.Fatal(err)
	}
	if name != "" {
		t.Errorf("FirstGenomeSetName() = %q before any set membership, want \"\"", name)
	}

	set, err := db.StoreGenomeSet(&GenomeSet{Name: "core-genomes"})
	if err != nil {
		t.Fatal(err)
	}

	if err := db.AddGenomeToSet(set.ID, genome.ID); err != nil {
		t.Fatal(err)
	}
	// Re-adding an existing membership must not error.
	if err := db.AddGenomeToSet(set.ID, genome.ID); err != nil {
		t.Errorf("re-adding existing membership: %v", err)
	}

	name, err = db.FirstGenomeSetName(genome.ID)
	if err != nil {
		t.Fatal(err)
	}
	if name != "core-genomes" {
		t.Errorf("FirstGenomeSetName() = %q, want %q", name, "core-genomes")
	}

	if err := db.RemoveGenomeFromSet(set.ID, genome.ID); err != nil {
		t.Fatal(err)
	}
	name, err = db.FirstGenomeSetName(genome.ID)
	if err != nil {
		t.Fatal(err)
	}
	if name != "" {
		t.Errorf("FirstGenomeSetName() = %q after removal, want \"\"", name)
	}
}

func TestListGenomeSetsOrderedByID(t *testing.T) {
	dir := t.TempDir()
	db, err := Create(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, err := db.StoreGenomeSet(&GenomeSet{Name: "b-set"}); err != nil {
		t.Fatal(err)
	}
	if _, err := db.StoreGenomeSet(&GenomeSet{Name: "a-set"}); err != nil {
		t.Fatal(err)
	}

	sets, err := db.ListGenomeSets()
	if err != nil {
		t.Fatal(err)
	}
	if len(sets) != 2 || sets[0].Name != "b-set" || sets[1].Name != "a-set" {
		t.Errorf("ListGenomeSets() = %+v, want [b-set a-set] in insertion order", sets)
	}
}
