package sdk

import (
	"bytes"
	"encoding/binary"
	"errors"
	"time"
)

// ErrCodec is returned by Reader when the stored bytes do not match the
// expected layout. Contracts translate it into their own failure code.
var ErrCodec = errors.New("codec: malformed record")

// Writer builds the deterministic binary form contract records are stored in.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter spins up a fresh writer so we don't leak old bytes between encodes.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// Bool squashes bools into a single byte flag for deterministic payloads.
func (w *Writer) Bool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

// Byte writes a raw tag byte, used for variant discriminants.
func (w *Writer) Byte(v byte) {
	w.buf.WriteByte(v)
}

// Uint64 writes big endian numbers so tooling can read them without guessing.
func (w *Writer) Uint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

// Int64 reuses the uint routine since casting keeps the sign bits intact.
func (w *Writer) Int64(v int64) {
	w.Uint64(uint64(v))
}

// VarUint uses varints to keep counts and lens compact.
func (w *Writer) VarUint(v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	w.buf.Write(tmp[:n])
}

// String prefixes its length then dumps UTF-8 directly.
func (w *Writer) String(s string) {
	w.VarUint(uint64(len(s)))
	w.buf.WriteString(s)
}

// Address canonicalizes the address before writing, so later parsing is easy.
func (w *Writer) Address(a Address) {
	w.String(a.String())
}

// Mutez keeps currency amounts on a single call site.
func (w *Writer) Mutez(v Mutez) {
	w.Uint64(uint64(v))
}

// Time stores timestamps as unix seconds; block timestamps have no sub-second
// resolution anyway.
func (w *Writer) Time(t time.Time) {
	w.Int64(t.Unix())
}

// Reader decodes records written by Writer. Errors are sticky: once a read
// fails every later read returns the zero value and Err reports ErrCodec.
type Reader struct {
	data []byte
	pos  int
	err  error
}

func NewReader(data []byte) *Reader { return &Reader{data: data} }

// Err reports whether any read so far ran off the record layout.
func (r *Reader) Err() error { return r.err }

func (r *Reader) fail() {
	if r.err == nil {
		r.err = ErrCodec
	}
}

func (r *Reader) take(n int) []byte {
	if r.err != nil || n < 0 || n > len(r.data)-r.pos {
		r.fail()
		return nil
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *Reader) Bool() bool {
	b := r.take(1)
	return b != nil && b[0] != 0
}

func (r *Reader) Byte() byte {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *Reader) Uint64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

func (r *Reader) Int64() int64 {
	return int64(r.Uint64())
}

func (r *Reader) VarUint() uint64 {
	if r.err != nil {
		return 0
	}
	v, n := binary.Uvarint(r.data[r.pos:])
	if n <= 0 {
		r.fail()
		return 0
	}
	r.pos += n
	return v
}

// Count reads a collection length prefix. Every encoded element takes at
// least one byte, so a count larger than the bytes left cannot be honest and
// fails the reader before any allocation happens.
func (r *Reader) Count() uint64 {
	n := r.VarUint()
	if r.err != nil {
		return 0
	}
	if n > uint64(len(r.data)-r.pos) {
		r.fail()
		return 0
	}
	return n
}

func (r *Reader) String() string {
	n := r.Count()
	b := r.take(int(n))
	if b == nil {
		return ""
	}
	return string(b)
}

func (r *Reader) Address() Address {
	return Address(r.String())
}

func (r *Reader) Mutez() Mutez {
	return Mutez(r.Uint64())
}

func (r *Reader) Time() time.Time {
	return time.Unix(r.Int64(), 0).UTC()
}
