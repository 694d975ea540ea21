package metrics

import (
	"math"
	"testing"

	"github.com/jlumpe/wgskmers"
)

func vecOf(spec wgskmers.KmerSpec, set []uint64) (*wgskmers.BoolVec, *wgskmers.Coords) {
	v := wgskmers.NewBoolVec(spec)
	for _, i := range set {
		v.Set(i)
	}
	return v, v.ToCoords()
}

func TestDenseCoordsAgree(t *testing.T) {
	spec, _ := wgskmers.NewKmerSpec(6, "")

	cases := []struct {
		query, ref []uint64
	}{
		{[]uint64{1, 2, 3}, []uint64{2, 3, 4}},
		{[]uint64{}, []uint64{1, 2}},
		{[]uint64{1, 2}, []uint64{}},
		{[]uint64{}, []uint64{}},
		{[]uint64{5}, []uint64{5}},
		{[]uint64{0, 10, 20, 30}, []uint64{5, 10, 15, 20, 25}},
	}

	for _, m := range []*Metric{Hamming, Jaccard, AsymJaccard} {
		for _, c := range cases {
			qv, qc := vecOf(spec, c.query)
			rv, rc := vecOf(spec, c.ref)

			dense := m.Dense(qv, rv)
			coords := m.Coords(qc, rc)

			if math.IsNaN(dense) != math.IsNaN(coords) {
				t.Errorf("%s: dense=%v coords=%v NaN mismatch for query=%v ref=%v",
					m.Name, dense, coords, c.query, c.ref)
				continue
			}
			if !math.IsNaN(dense) && math.Abs(dense-coords) > 1e-9 {
				t.Errorf("%s: dense=%v coords=%v for query=%v ref=%v",
					m.Name, dense, coords, c.query, c.ref)
			}
		}
	}
}

func TestJaccardEmptyUnionIsNaN(t *testing.T) {
	spec, _ := wgskmers.NewKmerSpec(4, "")
	qv, qc := vecOf(spec, nil)
	rv, rc := vecOf(spec, nil)

	if !math.IsNaN(Jaccard.Dense(qv, rv)) {
		t.Errorf("Jaccard.Dense on two empty sets should be NaN")
	}
	if !math.IsNaN(Jaccard.Coords(qc, rc)) {
		t.Errorf("Jaccard.Coords on two empty sets should be NaN")
	}
}

func TestAsymJaccardEmptyRefIsNaN(t *testing.T) {
	spec, _ := wgskmers.NewKmerSpec(4, "")
	qv, qc := vecOf(spec, []uint64{1, 2})
	rv, rc := vecOf(spec, nil)

	if !math.IsNaN(AsymJaccard.Dense(qv, rv)) {
		t.Errorf("AsymJaccard.Dense with empty ref should be NaN")
	}
	if !math.IsNaN(AsymJaccard.Coords(qc, rc)) {
		t.Errorf("AsymJaccard.Coords with empty ref should be NaN")
	}
}

func TestHammingIdentityIsZero(t *testing.T) {
	spec, _ := wgskmers.NewKmerSpec(5, "A")
	qv, qc := vecOf(spec, []uint64{1, 4, 9, 16})

	if d := Hamming.Dense(qv, qv); d != 0 {
		t.Errorf("Hamming.Dense(x, x) = %v, want 0", d)
	}
	if d := Hamming.Coords(qc, qc); d != 0 {
		t.Errorf("Hamming.Coords(x, x) = %v, want 0", d)
	}
}

func TestJaccardIdentityIsOne(t *testing.T) {
	spec, _ := wgskmers.NewKmerSpec(5, "A")
	qv, qc := vecOf(spec, []uint64{1, 4, 9, 16})

	if j := Jaccard.Dense(qv, qv); j != 1 {
		t.Errorf("Jaccard.Dense(x, x) = %v, want 1", j)
	}
	if j := Jaccard.Coords(qc, qc); j != 1 {
		t.Errorf("Jaccard.Coords(x, x) = %v, want 1", j)
	}
}

func TestParseNamesUnknown(t *testing.T) {
	_, err := ParseNames([]string{"hamming", "bogus"})
	if err == nil {
		t.Fatal("expected error for unknown metric name")
	}
}

func TestParseNamesOrder(t *testing.T) {
	ms, err := ParseNames([]string{"asym_jacc", "hamming"})
	if err != nil {
		t.Fatal(err)
	}
	if ms[0] != AsymJaccard || ms[1] != Hamming {
		t.Errorf("ParseNames did not preserve order")
	}
}
