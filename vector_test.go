package wgskmers

import (
	"reflect"
	"testing"
)

func TestBoolVecToCoordsRoundTrip(t *testing.T) {
	spec, err := NewKmerSpec(4, "")
	if err != nil {
		t.Fatal(err)
	}
	v := NewBoolVec(spec)
	for _, i := range []uint64{3, 1, 255, 0} {
		v.Set(i)
	}

	coords := v.ToCoords()
	want := []uint64{0, 1, 3, 255}
	if !reflect.DeepEqual(coords.Indices, want) {
		t.Errorf("ToCoords().Indices = %v, want %v", coords.Indices, want)
	}
	if coords.HasCounts() {
		t.Errorf("BoolVec-derived Coords should not carry counts")
	}

	back := coords.ToBoolVec()
	if !reflect.DeepEqual(back.Bits, v.Bits) {
		t.Errorf("round-trip BoolVec mismatch")
	}
}

func TestCountVecIncrementOverflow(t *testing.T) {
	spec, _ := NewKmerSpec(2, "")
	v := NewCountVec(spec, U8)
	for i := 0; i < 255; i++ {
		if err := v.Increment(0); err != nil {
			t.Fatalf("unexpected error at i=%d: %v", i, err)
		}
	}
	if err := v.Increment(0); err != ErrCountOverflow {
		t.Errorf("Increment() at max = %v, want ErrCountOverflow", err)
	}
}

func TestCountVecToCoordsWithCounts(t *testing.T) {
	spec, _ := NewKmerSpec(3, "A")
	v := NewCountVec(spec, U16)
	v.Increment(2)
	v.Increment(2)
	v.Increment(5)

	coords := v.ToCoords(true)
	if !coords.HasCounts() {
		t.Fatal("expected counts row")
	}
	wantIdx := []uint64{2, 5}
	wantCnt := []uint32{2, 1}
	if !reflect.DeepEqual(coords.Indices, wantIdx) || !reflect.DeepEqual(coords.Counts, wantCnt) {
		t.Errorf("got indices=%v counts=%v, want indices=%v counts=%v",
			coords.Indices, coords.Counts, wantIdx, wantCnt)
	}

	back, err := coords.ToCountVec(U16)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back.Counts, v.Counts) {
		t.Errorf("round-trip CountVec mismatch")
	}
}

func TestCountVecToCountVecOverflow(t *testing.T) {
	spec, _ := NewKmerSpec(2, "")
	coords := &Coords{Spec: spec, Indices: []uint64{0}, Counts: []uint32{300}}
	if _, err := coords.ToCountVec(U8); err != ErrCountOverflow {
		t.Errorf("ToCountVec(U8) with count 300 = %v, want ErrCountOverflow", err)
	}
}

func TestFromIndicesDedupesAndSorts(t *testing.T) {
	spec, _ := NewKmerSpec(4, "")
	raw := []uint64{5, 1, 5, 3, 1, 1}

	coords := FromIndices(spec, raw, true)
	wantIdx := []uint64{1, 3, 5}
	wantCnt := []uint32{3, 1, 2}
	if !reflect.DeepEqual(coords.Indices, wantIdx) {
		t.Errorf("Indices = %v, want %v", coords.Indices, wantIdx)
	}
	if !reflect.DeepEqual(coords.Counts, wantCnt) {
		t.Errorf("Counts = %v, want %v", coords.Counts, wantCnt)
	}

	noCounts := FromIndices(spec, raw, false)
	if noCounts.HasCounts() {
		t.Errorf("expected nil Counts when withCounts=false")
	}
}

func TestThreshold(t *testing.T) {
	spec, _ := NewKmerSpec(2, "")
	v := NewCountVec(spec, U8)
	v.Counts[0] = 1
	v.Counts[1] = 3
	v.Counts[2] = 5

	b := v.Threshold(3)
	want := make([]bool, len(v.Counts))
	want[1] = true
	want[2] = true
	if !reflect.DeepEqual(b.Bits, want) {
		t.Errorf("Threshold(3).Bits = %v, want %v", b.Bits, want)
	}
}
