package wgskmers

import "testing"

func mustSpec(t *testing.T, k int, prefix string) KmerSpec {
	t.Helper()
	spec, err := NewKmerSpec(k, prefix)
	if err != nil {
		t.Fatal(err)
	}
	return spec
}

func TestKmerFinderForwardScan(t *testing.T) {
	spec := mustSpec(t, 4, "A")
	finder := spec.Find([]byte("ACGTACGT"), false, false)

	want, ok := SuffixIndex([]byte("CGT"), 3)
	if !ok {
		t.Fatal("SuffixIndex(CGT) not ok")
	}

	got := finder.Indices()
	if len(got) != 2 || got[0] != want || got[1] != want {
		t.Errorf("Indices() = %v, want [%d %d]", got, want, want)
	}
}

func TestKmerFinderRevComp(t *testing.T) {
	spec := mustSpec(t, 4, "A")

	// Forward scan of "CGCT" has no prefix match (k=4, single window
	// "CGCT" doesn't start with A), but its reverse complement "AGCG"
	// does.
	forwardOnly := spec.Find([]byte("CGCT"), false, false)
	if got := forwardOnly.Indices(); len(got) != 0 {
		t.Fatalf("forward-only Indices() = %v, want none", got)
	}

	withRevComp := spec.Find([]byte("CGCT"), true, false)
	want, ok := SuffixIndex([]byte("GCG"), 3)
	if !ok {
		t.Fatal("SuffixIndex(GCG) not ok")
	}
	got := withRevComp.Indices()
	if len(got) != 1 || got[0] != want {
		t.Errorf("Indices() = %v, want [%d]", got, want)
	}
}

func TestKmerFinderCircular(t *testing.T) {
	spec := mustSpec(t, 4, "A")
	seq := "GCCGACG"

	// Plain forward scan: no window starts with the prefix.
	linear := spec.Find([]byte(seq), false, false)
	if got := linear.Indices(); len(got) != 0 {
		t.Fatalf("linear Indices() = %v, want none", got)
	}

	// The wrap-around window (last 3 bases + first 3 bases = "ACGGCC")
	// does start with the prefix.
	circular := spec.Find([]byte(seq), false, true)
	want, ok := SuffixIndex([]byte("CGG"), 3)
	if !ok {
		t.Fatal("SuffixIndex(CGG) not ok")
	}
	got := circular.Indices()
	if len(got) != 1 || got[0] != want {
		t.Errorf("Indices() = %v, want [%d]", got, want)
	}
}

func TestKmerFinderQualityThreshold(t *testing.T) {
	spec := mustSpec(t, 4, "A")
	seq := []byte("AAAA")

	passQual := []byte{50, 50, 50, 50}
	passFinder := spec.FindQuality(seq, passQual, 40, false, false)
	if got := passFinder.Indices(); len(got) != 1 {
		t.Errorf("pass case Indices() = %v, want 1 index", got)
	}

	// Window minimum (30) falls below the threshold (40), so the whole
	// window is dropped even though most of it qualifies.
	failQual := []byte{50, 30, 50, 50}
	failFinder := spec.FindQuality(seq, failQual, 40, false, false)
	if got := failFinder.Indices(); len(got) != 0 {
		t.Errorf("fail case Indices() = %v, want none", got)
	}

	// A quality score exactly at the threshold still passes.
	edgeQual := []byte{40, 40, 40, 40}
	edgeFinder := spec.FindQuality(seq, edgeQual, 40, false, false)
	if got := edgeFinder.Indices(); len(got) != 1 {
		t.Errorf("edge case Indices() = %v, want 1 index", got)
	}
}

func TestKmerFinderShorterThanKYieldsNothing(t *testing.T) {
	spec := mustSpec(t, 8, "AC")
	finder := spec.Find([]byte("ACGT"), true, true)
	if got := finder.Indices(); len(got) != 0 {
		t.Errorf("Indices() = %v, want none", got)
	}
}
