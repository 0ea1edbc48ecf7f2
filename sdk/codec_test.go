package sdk

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func varint(v uint64) []byte {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	return tmp[:n]
}

func TestReaderRoundtrip(t *testing.T) {
	w := NewWriter()
	w.Bool(true)
	w.Byte(7)
	w.Uint64(1 << 40)
	w.Int64(-5)
	w.VarUint(300)
	w.String("hello")
	w.Address("tz1XkSSciEyTNKo2nbtnu8N2tXPXInqQLZKb")
	w.Mutez(123456)
	w.Time(time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC))

	r := NewReader(w.Bytes())
	assert.True(t, r.Bool())
	assert.Equal(t, byte(7), r.Byte())
	assert.Equal(t, uint64(1<<40), r.Uint64())
	assert.Equal(t, int64(-5), r.Int64())
	assert.Equal(t, uint64(300), r.VarUint())
	assert.Equal(t, "hello", r.String())
	assert.Equal(t, Address("tz1XkSSciEyTNKo2nbtnu8N2tXPXInqQLZKb"), r.Address())
	assert.Equal(t, Mutez(123456), r.Mutez())
	assert.Equal(t, time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC), r.Time())
	require.NoError(t, r.Err())
}

func TestReaderErrorIsSticky(t *testing.T) {
	r := NewReader([]byte{1})
	assert.Equal(t, byte(1), r.Byte())
	assert.Equal(t, uint64(0), r.Uint64())
	require.ErrorIs(t, r.Err(), ErrCodec)

	// Later reads keep returning zero values, never recovering.
	assert.Equal(t, "", r.String())
	assert.False(t, r.Bool())
	require.ErrorIs(t, r.Err(), ErrCodec)
}

func TestStringRejectsOversizedLength(t *testing.T) {
	// A length prefix that converts to a negative int must fail the reader,
	// not slice out of range.
	data := append(varint(1<<63), 'x')
	r := NewReader(data)
	assert.Equal(t, "", r.String())
	require.ErrorIs(t, r.Err(), ErrCodec)

	// A merely huge length fails the same way.
	r = NewReader(append(varint(1<<40), 'x'))
	assert.Equal(t, "", r.String())
	require.ErrorIs(t, r.Err(), ErrCodec)
}

func TestCountRejectsDishonestPrefix(t *testing.T) {
	// Two trailing bytes cannot hold three elements.
	r := NewReader(append(varint(3), 0, 0))
	assert.Equal(t, uint64(0), r.Count())
	require.ErrorIs(t, r.Err(), ErrCodec)

	r = NewReader(append(varint(2), 0, 0))
	assert.Equal(t, uint64(2), r.Count())
	require.NoError(t, r.Err())
}

func TestDecodeOperationsMalformedCount(t *testing.T) {
	// An operation count far beyond the record's bytes must fail without
	// allocating for it.
	r := NewReader(varint(1 << 40))
	assert.Nil(t, DecodeOperations(r))
	require.ErrorIs(t, r.Err(), ErrCodec)
}

func TestDecodeOperationsTruncated(t *testing.T) {
	w := NewWriter()
	EncodeOperations(w, []Operation{
		Call("KT1QmSmQ8Mj8JHNKKQmepFqQZy7kDWQ1ek69", "set_quorum", []byte{1, 2, 3}),
		Send("tz1XkSSciEyTNKo2nbtnu8N2tXPXInqQLZKb", 500),
	})
	full := w.Bytes()

	r := NewReader(full)
	ops := DecodeOperations(r)
	require.NoError(t, r.Err())
	require.Len(t, ops, 2)
	assert.Equal(t, "set_quorum", ops[0].Entry)
	assert.Equal(t, []byte{1, 2, 3}, ops[0].Payload)
	assert.Equal(t, Mutez(500), ops[1].Amount)

	r = NewReader(full[:len(full)-4])
	DecodeOperations(r)
	require.ErrorIs(t, r.Err(), ErrCodec)
}
