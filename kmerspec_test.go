package wgskmers

import "testing"

func TestNewKmerSpecRejectsNonPositiveK(t *testing.T) {
	if _, err := NewKmerSpec(0, "A"); err != ErrInvalidK {
		t.Errorf("k=0: err = %v, want ErrInvalidK", err)
	}
	if _, err := NewKmerSpec(-1, "A"); err != ErrInvalidK {
		t.Errorf("k=-1: err = %v, want ErrInvalidK", err)
	}
}

func TestNewKmerSpecRejectsPrefixTooLongOrEqualToK(t *testing.T) {
	if _, err := NewKmerSpec(4, "ACGTA"); err != ErrInvalidPrefix {
		t.Errorf("prefix longer than k: err = %v, want ErrInvalidPrefix", err)
	}
	if _, err := NewKmerSpec(4, "ACGT"); err != ErrInvalidPrefix {
		t.Errorf("prefix equal to k: err = %v, want ErrInvalidPrefix", err)
	}
}

func TestNewKmerSpecRejectsNonACGTPrefix(t *testing.T) {
	if _, err := NewKmerSpec(4, "AN"); err != ErrInvalidPrefix {
		t.Errorf("err = %v, want ErrInvalidPrefix", err)
	}
}

func TestNewKmerSpecUppercasesPrefix(t *testing.T) {
	spec, err := NewKmerSpec(6, "ac")
	if err != nil {
		t.Fatal(err)
	}
	if spec.Prefix != "AC" {
		t.Errorf("Prefix = %q, want %q", spec.Prefix, "AC")
	}
}

func TestSuffixLenAndN(t *testing.T) {
	spec, err := NewKmerSpec(8, "AC")
	if err != nil {
		t.Fatal(err)
	}
	if spec.SuffixLen() != 6 {
		t.Errorf("SuffixLen() = %d, want 6", spec.SuffixLen())
	}
	if spec.N() != 1<<12 {
		t.Errorf("N() = %d, want %d", spec.N(), uint64(1)<<12)
	}
}

func TestSuffixIndexRoundTrip(t *testing.T) {
	cases := []string{"A", "T", "AC", "ACGT", "TTTT", "GATTACA"}
	for _, suffix := range cases {
		idx, ok := SuffixIndex([]byte(suffix), len(suffix))
		if !ok {
			t.Fatalf("SuffixIndex(%q) not ok", suffix)
		}
		back := SuffixAtIndex(idx, len(suffix))
		if string(back) != suffix {
			t.Errorf("SuffixAtIndex(SuffixIndex(%q)) = %q", suffix, back)
		}
	}
}

func TestSuffixIndexRejectsWrongLengthOrIllegalBase(t *testing.T) {
	if _, ok := SuffixIndex([]byte("AC"), 3); ok {
		t.Error("wrong length should not be ok")
	}
	if _, ok := SuffixIndex([]byte("ACN"), 3); ok {
		t.Error("illegal base should not be ok")
	}
}

func TestSuffixIndexOrdering(t *testing.T) {
	// A=0, C=1, G=2, T=3: AA < AC < CA, most-significant base first.
	aa, _ := SuffixIndex([]byte("AA"), 2)
	ac, _ := SuffixIndex([]byte("AC"), 2)
	ca, _ := SuffixIndex([]byte("CA"), 2)
	if !(aa < ac && ac < ca) {
		t.Errorf("expected AA < AC < CA, got %d, %d, %d", aa, ac, ca)
	}
}
