package catalog

import "testing"

func TestJSONValueScanRoundTrip(t *testing.T) {
	j := NewJSON(map[string]interface{}{"a": float64(1), "b": "two"})

	val, err := j.Value()
	if err != nil {
		t.Fatal(err)
	}

	var back JSON
	if err := back.Scan(val); err != nil {
		t.Fatal(err)
	}

	if v, ok := back.Get("a"); !ok || v != float64(1) {
		t.Errorf("Get(a) = %v, %v", v, ok)
	}
	if v, ok := back.Get("b"); !ok || v != "two" {
		t.Errorf("Get(b) = %v, %v", v, ok)
	}
	if back.Dirty() {
		t.Errorf("freshly scanned JSON should not be dirty")
	}
}

func TestJSONSetMarksDirty(t *testing.T) {
	var j JSON
	if j.Dirty() {
		t.Fatal("zero-value JSON should not be dirty")
	}
	j.Set("k", 1)
	if !j.Dirty() {
		t.Errorf("Set should mark JSON dirty")
	}
	j.ClearDirty()
	if j.Dirty() {
		t.Errorf("ClearDirty should reset dirty flag")
	}
}

func TestJSONScanNil(t *testing.T) {
	var j JSON
	j.Set("x", 1)
	if err := j.Scan(nil); err != nil {
		t.Fatal(err)
	}
	if _, ok := j.Get("x"); ok {
		t.Errorf("Scan(nil) should clear existing data")
	}
}
