package vectorize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jlumpe/wgskmers"
)

func writeFasta(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestStreamORAccumulatesAcrossRecords(t *testing.T) {
	spec, err := wgskmers.NewKmerSpec(4, "A")
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path := writeFasta(t, dir, "two.fasta", ">r1\nAACG\n>r2\nAATT\n")

	vec, err := Stream(path, spec, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if vec.Count() != 2 {
		t.Errorf("Count() = %d, want 2 (one suffix per record)", vec.Count())
	}
}

func TestStreamCountsSumsAcrossRecords(t *testing.T) {
	spec, err := wgskmers.NewKmerSpec(4, "A")
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	// Same k-mer (AACG) appears in both records; counts should sum to 2.
	path := writeFasta(t, dir, "dup.fasta", ">r1\nAACG\n>r2\nAACG\n")

	counts, err := StreamCounts(path, spec, Options{Dtype: wgskmers.U16})
	if err != nil {
		t.Fatal(err)
	}

	total := 0
	for _, c := range counts.Counts {
		total += int(c)
	}
	if total != 2 {
		t.Errorf("total counts = %d, want 2", total)
	}
}

func TestStreamCountThresholdAppliedAfterAccumulation(t *testing.T) {
	spec, err := wgskmers.NewKmerSpec(4, "A")
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	// AACG appears twice total, spread across three records; with
	// CountThreshold=2 it must end up in the boolean result even though
	// no single record alone reaches the threshold.
	path := writeFasta(t, dir, "three.fasta", ">r1\nAACG\n>r2\nAATT\n>r3\nAACG\n")

	vec, err := Stream(path, spec, Options{CountThreshold: 2, Dtype: wgskmers.U16})
	if err != nil {
		t.Fatal(err)
	}
	if vec.Count() != 1 {
		t.Errorf("Count() = %d, want 1 (only AACG reaches threshold 2)", vec.Count())
	}
}

func TestStreamQualityThresholdFiltersLowQualityKmers(t *testing.T) {
	spec, err := wgskmers.NewKmerSpec(4, "A")
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	// Phred 33 + 2 = '#', well below any reasonable threshold.
	path := writeFasta(t, dir, "low.fastq", "@r1\nAACG\n+\n####\n")

	threshold := 20
	vec, err := Stream(path, spec, Options{QualityThreshold: &threshold})
	if err != nil {
		t.Fatal(err)
	}
	if vec.Count() != 0 {
		t.Errorf("Count() = %d, want 0 (all bases below quality threshold)", vec.Count())
	}
}
