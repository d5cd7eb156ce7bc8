package encoding

import (
	"iter"

	"github.com/arloliu/zcurve/endian"
	"github.com/arloliu/zcurve/internal/pool"
	"github.com/arloliu/zcurve/morton"
)

// KeyRawEncoder stores each key as a fixed 8-byte word in the engine's byte order.
//
// Raw payloads support O(1) random access and suit unsorted keys or keys of
// scattered points, where deltas would not be smaller than the keys themselves.
type KeyRawEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

var _ ColumnarEncoder[morton.Key] = (*KeyRawEncoder)(nil)

// NewKeyRawEncoder creates a raw key encoder backed by a pooled buffer.
func NewKeyRawEncoder(engine endian.EndianEngine) *KeyRawEncoder {
	return &KeyRawEncoder{
		engine: engine,
		buf:    pool.GetKeyBuffer(),
	}
}

// Write appends one key.
func (e *KeyRawEncoder) Write(z morton.Key) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count++
	start := e.buf.Len()
	e.buf.ExtendOrGrow(8)
	e.engine.PutUint64(e.buf.B[start:start+8], z)
}

// WriteSlice appends keys with a single buffer growth.
func (e *KeyRawEncoder) WriteSlice(keys []morton.Key) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}
	if len(keys) == 0 {
		return
	}

	e.count += len(keys)
	start := e.buf.Len()
	e.buf.ExtendOrGrow(len(keys) * 8)
	for i, z := range keys {
		offset := start + i*8
		e.engine.PutUint64(e.buf.B[offset:offset+8], z)
	}
}

// Bytes returns the encoded payload.
func (e *KeyRawEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of encoded keys.
func (e *KeyRawEncoder) Len() int {
	return e.count
}

// Size returns the payload size, always 8*Len().
func (e *KeyRawEncoder) Size() int {
	if e.buf == nil {
		panic("encoder already finished - cannot access size after Finish()")
	}

	return e.buf.Len()
}

// Reset is a no-op: raw keys carry no state between values.
func (e *KeyRawEncoder) Reset() {}

// Finish returns the buffer to the pool.
func (e *KeyRawEncoder) Finish() {
	if e.buf != nil {
		pool.PutKeyBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// KeyRawDecoder reads payloads written by KeyRawEncoder.
type KeyRawDecoder struct {
	engine endian.EndianEngine
}

var _ ColumnarDecoder[morton.Key] = KeyRawDecoder{}

// NewKeyRawDecoder creates a raw key decoder. The engine must match the encoder's.
func NewKeyRawDecoder(engine endian.EndianEngine) KeyRawDecoder {
	return KeyRawDecoder{engine: engine}
}

// All yields count keys. Data shorter than 8*count yields nothing.
func (d KeyRawDecoder) All(data []byte, count int) iter.Seq[morton.Key] {
	return func(yield func(morton.Key) bool) {
		if count <= 0 || len(data) < count*8 {
			return
		}

		for i := range count {
			if !yield(d.engine.Uint64(data[i*8 : i*8+8])) {
				return
			}
		}
	}
}

// At returns the key at index in constant time.
func (d KeyRawDecoder) At(data []byte, index int, count int) (morton.Key, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	start := index * 8
	if start+8 > len(data) {
		return 0, false
	}

	return d.engine.Uint64(data[start : start+8]), true
}
