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

// Package storage implements the two on-disk k-mer set formats: raw, a
// self-describing dense array, and coords, a sparse sorted-coordinate
// array. Both start with a magic number and a header describing the
// KmerSpec (raw also records the element kind); raw's writer emits its
// header lazily on the first body write, coords writes it together with
// the body in one call.
package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/jlumpe/wgskmers"
)

// RawMainVersion is the main format version for the raw dense format.
const RawMainVersion uint8 = 1

// RawMinorVersion is the minor format version for the raw dense format.
const RawMinorVersion uint8 = 0

// RawMagic identifies a raw dense k-mer vector file.
var RawMagic = [8]byte{'w', 'g', 's', 'k', 'm', 'r', 'a', 'w'}

// ErrInvalidRawFormat means the magic number or version didn't match.
var ErrInvalidRawFormat = errors.New("storage: invalid raw k-mer vector format")

// ErrPrefixTooLong means a header's prefix field was too long for the
// fixed-size field it's packed into.
var ErrPrefixTooLong = errors.New("storage: prefix too long for raw format (max 255)")

var be = binary.BigEndian

// RawKind distinguishes a bool (presence) vector from a count vector in
// the raw format's header, alongside the count dtype.
type RawKind uint8

// Recognized raw vector kinds. These values are the wire encoding;
// never reorder them.
const (
	RawBool RawKind = iota
	RawU8
	RawU16
	RawU32
)

func rawKindFor(dtype wgskmers.DType) RawKind {
	switch dtype {
	case wgskmers.U8:
		return RawU8
	case wgskmers.U16:
		return RawU16
	default:
		return RawU32
	}
}

// RawHeader describes a raw dense k-mer vector file: the KmerSpec it
// was built under (K and Prefix, which pin down N = 4^(K-len(Prefix))),
// and whether the body holds presence bits or counts of a given width.
//
//	offset   bytes  name           type
//	0        8      magic          [8]byte
//	8        1      MainVersion    uint8
//	9        1      MinorVersion   uint8
//	10       1      K              uint8
//	11       1      PrefixLen      uint8
//	12       n      Prefix         [n]byte (n = PrefixLen)
//	12+n     1      Kind           uint8
//	13+n     8      N              uint64 (redundant with K/Prefix, kept for self-description)
//	21+n     ...    body           N elements, 1 byte (bool/u8), 2 (u16) or 4 (u32) bytes each
type RawHeader struct {
	MainVersion  uint8
	MinorVersion uint8
	Spec         wgskmers.KmerSpec
	Kind         RawKind
	N            uint64
}

func (h RawHeader) String() string {
	return fmt.Sprintf("raw k-mer vector v%d.%d, %s, kind=%d, N=%d",
		h.MainVersion, h.MinorVersion, h.Spec, h.Kind, h.N)
}

// elemSize returns the body's per-element width in bytes for h.Kind.
func (h RawHeader) elemSize() int {
	switch h.Kind {
	case RawBool, RawU8:
		return 1
	case RawU16:
		return 2
	default:
		return 4
	}
}

// RawReader reads a raw dense vector file, reading the whole body in
// one pass.
type RawReader struct {
	RawHeader
	r   io.Reader
	buf []byte
}

// NewRawReader reads and validates the header from r, returning a
// RawReader positioned at the start of the body.
func NewRawReader(r io.Reader) (*RawReader, error) {
	reader := &RawReader{r: r}
	if err := reader.readHeader(); err != nil {
		return nil, err
	}
	reader.buf = make([]byte, reader.elemSize())
	return reader, nil
}

func (reader *RawReader) readHeader() error {
	var m [8]byte
	if err := binary.Read(reader.r, be, &m); err != nil {
		return err
	}
	if m != RawMagic {
		return ErrInvalidRawFormat
	}

	var meta [2]uint8
	if err := binary.Read(reader.r, be, &meta); err != nil {
		return err
	}
	if meta[0] != RawMainVersion {
		return ErrInvalidRawFormat
	}
	reader.MainVersion, reader.MinorVersion = meta[0], meta[1]

	var kAndPlen [2]uint8
	if err := binary.Read(reader.r, be, &kAndPlen); err != nil {
		return err
	}
	k := int(kAndPlen[0])
	plen := int(kAndPlen[1])

	prefix := make([]byte, plen)
	if plen > 0 {
		if err := binary.Read(reader.r, be, prefix); err != nil {
			return err
		}
	}

	spec, err := wgskmers.NewKmerSpec(k, string(prefix))
	if err != nil {
		return err
	}
	reader.Spec = spec

	var kind uint8
	if err := binary.Read(reader.r, be, &kind); err != nil {
		return err
	}
	reader.Kind = RawKind(kind)

	if err := binary.Read(reader.r, be, &reader.N); err != nil {
		return err
	}
	if reader.N != spec.N() {
		return ErrInvalidRawFormat
	}

	return nil
}

// ReadBoolVec reads the full body as a BoolVec. The header must
// describe a RawBool file.
func (reader *RawReader) ReadBoolVec() (*wgskmers.BoolVec, error) {
	if reader.Kind != RawBool {
		return nil, ErrInvalidRawFormat
	}
	v := wgskmers.NewBoolVec(reader.Spec)
	body := make([]byte, reader.N)
	if _, err := io.ReadFull(reader.r, body); err != nil {
		return nil, err
	}
	for i, b := range body {
		if b != 0 {
			v.Bits[i] = true
		}
	}
	return v, nil
}

// ReadCountVec reads the full body as a CountVec matching the header's
// declared element width.
func (reader *RawReader) ReadCountVec() (*wgskmers.CountVec, error) {
	var dtype wgskmers.DType
	switch reader.Kind {
	case RawU8:
		dtype = wgskmers.U8
	case RawU16:
		dtype = wgskmers.U16
	case RawU32:
		dtype = wgskmers.U32
	default:
		return nil, ErrInvalidRawFormat
	}

	v := wgskmers.NewCountVec(reader.Spec, dtype)
	elemSize := reader.elemSize()
	body := make([]byte, int(reader.N)*elemSize)
	if _, err := io.ReadFull(reader.r, body); err != nil {
		return nil, err
	}
	for i := uint64(0); i < reader.N; i++ {
		off := int(i) * elemSize
		switch dtype {
		case wgskmers.U8:
			v.Counts[i] = uint32(body[off])
		case wgskmers.U16:
			v.Counts[i] = uint32(be.Uint16(body[off : off+2]))
		case wgskmers.U32:
			v.Counts[i] = be.Uint32(body[off : off+4])
		}
	}
	return v, nil
}

// RawWriter writes a raw dense vector file, writing the header lazily
// on the first Write call.
type RawWriter struct {
	RawHeader
	w           io.Writer
	wroteHeader bool
}

// NewRawBoolWriter creates a RawWriter for a BoolVec over spec.
func NewRawBoolWriter(w io.Writer, spec wgskmers.KmerSpec) *RawWriter {
	return &RawWriter{
		RawHeader: RawHeader{MainVersion: RawMainVersion, MinorVersion: RawMinorVersion, Spec: spec, Kind: RawBool, N: spec.N()},
		w:         w,
	}
}

// NewRawCountWriter creates a RawWriter for a CountVec of the given
// dtype over spec.
func NewRawCountWriter(w io.Writer, spec wgskmers.KmerSpec, dtype wgskmers.DType) *RawWriter {
	return &RawWriter{
		RawHeader: RawHeader{MainVersion: RawMainVersion, MinorVersion: RawMinorVersion, Spec: spec, Kind: rawKindFor(dtype), N: spec.N()},
		w:         w,
	}
}

func (writer *RawWriter) writeHeader() error {
	if len(writer.Spec.Prefix) > 255 {
		return ErrPrefixTooLong
	}
	if err := binary.Write(writer.w, be, RawMagic); err != nil {
		return err
	}
	if err := binary.Write(writer.w, be, [2]uint8{writer.MainVersion, writer.MinorVersion}); err != nil {
		return err
	}
	if err := binary.Write(writer.w, be, [2]uint8{uint8(writer.Spec.K), uint8(len(writer.Spec.Prefix))}); err != nil {
		return err
	}
	if len(writer.Spec.Prefix) > 0 {
		if err := binary.Write(writer.w, be, []byte(writer.Spec.Prefix)); err != nil {
			return err
		}
	}
	if err := binary.Write(writer.w, be, uint8(writer.Kind)); err != nil {
		return err
	}
	if err := binary.Write(writer.w, be, writer.N); err != nil {
		return err
	}
	writer.wroteHeader = true
	return nil
}

// WriteBoolVec writes v's full body. v.Spec and the writer's declared
// kind/spec must agree.
func (writer *RawWriter) WriteBoolVec(v *wgskmers.BoolVec) error {
	if writer.Kind != RawBool || v.Spec != writer.Spec {
		return ErrInvalidRawFormat
	}
	if !writer.wroteHeader {
		if err := writer.writeHeader(); err != nil {
			return err
		}
	}
	body := make([]byte, len(v.Bits))
	for i, b := range v.Bits {
		if b {
			body[i] = 1
		}
	}
	_, err := writer.w.Write(body)
	return err
}

// WriteCountVec writes v's full body, packing each count into the
// writer's declared element width. Returns ErrCountOverflow-equivalent
// behavior is not re-checked here: callers build CountVec through
// Increment, which already enforces the dtype's range.
func (writer *RawWriter) WriteCountVec(v *wgskmers.CountVec) error {
	if rawKindFor(v.Dtype) != writer.Kind || v.Spec != writer.Spec {
		return ErrInvalidRawFormat
	}
	if !writer.wroteHeader {
		if err := writer.writeHeader(); err != nil {
			return err
		}
	}
	elemSize := writer.elemSize()
	body := make([]byte, len(v.Counts)*elemSize)
	for i, c := range v.Counts {
		off := i * elemSize
		switch v.Dtype {
		case wgskmers.U8:
			body[off] = byte(c)
		case wgskmers.U16:
			be.PutUint16(body[off:off+2], uint16(c))
		case wgskmers.U32:
			be.PutUint32(body[off:off+4], c)
		}
	}
	_, err := writer.w.Write(body)
	return err
}
