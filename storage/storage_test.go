package storage

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/jlumpe/wgskmers"
)

func TestRawBoolVecRoundTrip(t *testing.T) {
	spec, err := wgskmers.NewKmerSpec(4, "AT")
	if err != nil {
		t.Fatal(err)
	}
	v := wgskmers.NewBoolVec(spec)
	v.Set(0)
	v.Set(3)
	v.Set(5)

	var buf bytes.Buffer
	w := NewRawBoolWriter(&buf, spec)
	if err := w.WriteBoolVec(v); err != nil {
		t.Fatal(err)
	}

	r, err := NewRawReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if r.Kind != RawBool {
		t.Fatalf("Kind = %v, want RawBool", r.Kind)
	}
	got, err := r.ReadBoolVec()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.Bits, v.Bits) {
		t.Errorf("round-tripped Bits mismatch")
	}
}

func TestRawCountVecRoundTrip(t *testing.T) {
	spec, _ := wgskmers.NewKmerSpec(3, "")
	v := wgskmers.NewCountVec(spec, wgskmers.U16)
	v.Increment(1)
	v.Increment(1)
	v.Increment(4)

	var buf bytes.Buffer
	w := NewRawCountWriter(&buf, spec, wgskmers.U16)
	if err := w.WriteCountVec(v); err != nil {
		t.Fatal(err)
	}

	r, err := NewRawReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.ReadCountVec()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.Counts, v.Counts) {
		t.Errorf("round-tripped Counts mismatch: got %v want %v", got.Counts, v.Counts)
	}
}

func TestRawInvalidMagic(t *testing.T) {
	buf := bytes.NewBufferString("not a valid header at all........")
	if _, err := NewRawReader(buf); err != ErrInvalidRawFormat {
		t.Errorf("NewRawReader on garbage = %v, want ErrInvalidRawFormat", err)
	}
}

func TestCoordsRoundTripWithCounts(t *testing.T) {
	spec, _ := wgskmers.NewKmerSpec(5, "A")
	c := &wgskmers.Coords{
		Spec:    spec,
		Indices: []uint64{1, 4, 9, 100},
		Counts:  []uint32{1, 2, 3, 4},
	}

	var buf bytes.Buffer
	if err := WriteCoords(&buf, c); err != nil {
		t.Fatal(err)
	}

	r, err := NewCoordsReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !r.HasCounts {
		t.Fatal("expected HasCounts header flag")
	}
	got, err := r.ReadCoords()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.Indices, c.Indices) || !reflect.DeepEqual(got.Counts, c.Counts) {
		t.Errorf("round-tripped Coords mismatch: got %+v want %+v", got, c)
	}
}

func TestCoordsRoundTripNoCounts(t *testing.T) {
	spec, _ := wgskmers.NewKmerSpec(4, "")
	c := &wgskmers.Coords{Spec: spec, Indices: []uint64{0, 2, 255}}

	var buf bytes.Buffer
	if err := WriteCoords(&buf, c); err != nil {
		t.Fatal(err)
	}

	r, err := NewCoordsReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if r.HasCounts {
		t.Fatal("did not expect HasCounts header flag")
	}
	got, err := r.ReadCoords()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.Indices, c.Indices) {
		t.Errorf("round-tripped Indices mismatch: got %v want %v", got.Indices, c.Indices)
	}
	if got.HasCounts() {
		t.Errorf("expected nil Counts on round trip")
	}
}

func TestIndexWidthChoice(t *testing.T) {
	small, _ := wgskmers.NewKmerSpec(8, "")  // N = 4^8 = 65536
	large, _ := wgskmers.NewKmerSpec(18, "") // N = 4^18, exceeds uint32 range

	if w := indexWidth(small.N()); w != 4 {
		t.Errorf("indexWidth(small) = %d, want 4", w)
	}
	if w := indexWidth(large.N()); w != 8 {
		t.Errorf("indexWidth(large) = %d, want 8", w)
	}
}
