// Copyright © 2018 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package catalog

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

// ErrJSONScanType means Scan received a source value of a type that
// can't hold serialized JSON.
var ErrJSONScanType = errors.New("catalog: cannot scan non-[]byte/string into JSON column")

// JSON is a free-form JSON object column, replacing the original
// model's recursive mutation-tracking dict/list proxy with a plain map
// plus an explicit Touch(): the caller marks the column dirty after
// mutating it instead of the column discovering the mutation itself.
type JSON struct {
	data  map[string]interface{}
	dirty bool
}

// NewJSON wraps an existing map as a JSON column value.
func NewJSON(data map[string]interface{}) JSON {
	if data == nil {
		data = map[string]interface{}{}
	}
	return JSON{data: data}
}

// Get returns the value at key and whether it was present.
func (j JSON) Get(key string) (interface{}, bool) {
	v, ok := j.data[key]
	return v, ok
}

// Set assigns key and marks the column dirty.
func (j *JSON) Set(key string, value interface{}) {
	if j.data == nil {
		j.data = map[string]interface{}{}
	}
	j.data[key] = value
	j.Touch()
}

// Delete removes key and marks the column dirty if it was present.
func (j *JSON) Delete(key string) {
	if _, ok := j.data[key]; ok {
		delete(j.data, key)
		j.Touch()
	}
}

// Touch marks the column as modified without otherwise changing it.
func (j *JSON) Touch() {
	j.dirty = true
}

// Dirty reports whether Set/Delete/Touch has been called since the
// value was created, scanned, or last had ClearDirty called.
func (j JSON) Dirty() bool {
	return j.dirty
}

// ClearDirty resets the dirty flag. Persisting the value does not
// clear it; callers do so explicitly.
func (j *JSON) ClearDirty() {
	j.dirty = false
}

// Value implements driver.Valuer, serializing to a JSON text column.
func (j JSON) Value() (driver.Value, error) {
	if j.data == nil {
		return "{}", nil
	}
	b, err := json.Marshal(j.data)
	if err != nil {
		return nil, errors.Wrap(err, "catalog: marshaling JSON column")
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (j *JSON) Scan(src interface{}) error {
	if src == nil {
		j.data = map[string]interface{}{}
		j.dirty = false
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return ErrJSONScanType
	}

	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return errors.Wrap(err, "catalog: unmarshaling JSON column")
	}
	j.data = data
	j.dirty = false
	return nil
}
