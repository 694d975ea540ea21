package catalog

import "testing"

func TestMakeGenomeFilenameCollision(t *testing.T) {
	existing := map[string]bool{
		"E_coli.fasta.gz": true,
		"E_coli_1.fasta.gz": true,
	}
	taken := func(name string) bool { return existing[name] }

	got := MakeGenomeFilename("E. coli", "", "fasta", "gzip", taken)
	want := "E_coli_2.fasta.gz"
	if got != want {
		t.Errorf("MakeGenomeFilename() = %q, want %q", got, want)
	}
}

func TestMakeGenomeFilenamePrefersAccession(t *testing.T) {
	taken := func(string) bool { return false }
	got := MakeGenomeFilename("Some organism", "GCF_000123.1", "fasta", "", taken)
	want := "GCF_000123_1.fasta"
	if got != want {
		t.Errorf("MakeGenomeFilename() = %q, want %q", got, want)
	}
}

func TestMakeCollectionDirNameCollision(t *testing.T) {
	existing := map[string]bool{"my_collection": true}
	taken := func(name string) bool { return existing[name] }

	got := MakeCollectionDirName("My Collection", taken)
	want := "my_collection_1"
	if got != want {
		t.Errorf("MakeCollectionDirName() = %q, want %q", got, want)
	}
}

func TestKmerSetFilename(t *testing.T) {
	if got := KmerSetFilename(42, "raw"); got != "gen-42.raw" {
		t.Errorf("KmerSetFilename(raw) = %q", got)
	}
	if got := KmerSetFilename(42, "coords"); got != "gen-42.coords" {
		t.Errorf("KmerSetFilename(coords) = %q", got)
	}
}
