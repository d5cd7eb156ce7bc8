package encoding

import (
	"encoding/binary"
	"fmt"
	"iter"

	"github.com/arloliu/zcurve/internal/pool"
	"github.com/arloliu/zcurve/morton"
)

// KeyDeltaEncoder stores ascending keys as uvarint deltas.
//
// The first key is written as a full uvarint, every following key as the
// uvarint of its distance to the previous one. Keys of spatially clustered
// points are close on the curve, so most deltas fit in one or two bytes.
//
// Keys must be written in non-decreasing order; a smaller key panics.
// Callers that cannot guarantee order sort first or use KeyRawEncoder.
type KeyDeltaEncoder struct {
	buf   *pool.ByteBuffer
	prev  morton.Key
	temp  [binary.MaxVarintLen64]byte
	count int
	// started is false until the first key of the current sequence is written.
	started bool
}

var _ ColumnarEncoder[morton.Key] = (*KeyDeltaEncoder)(nil)

// NewKeyDeltaEncoder creates a delta key encoder backed by a pooled buffer.
func NewKeyDeltaEncoder() *KeyDeltaEncoder {
	return &KeyDeltaEncoder{buf: pool.GetKeyBuffer()}
}

// Write appends one key.
func (e *KeyDeltaEncoder) Write(z morton.Key) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.write(z)
}

// WriteSlice appends keys in order.
func (e *KeyDeltaEncoder) WriteSlice(keys []morton.Key) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	// Most deltas take one or two bytes.
	e.buf.Grow(len(keys) * 2)
	for _, z := range keys {
		e.write(z)
	}
}

func (e *KeyDeltaEncoder) write(z morton.Key) {
	v := z
	if e.started {
		if z < e.prev {
			panic(fmt.Sprintf("delta key encoder: key %d after %d is not ascending", z, e.prev))
		}
		v = z - e.prev
	}

	n := binary.PutUvarint(e.temp[:], v)
	e.buf.MustWrite(e.temp[:n])

	e.prev = z
	e.started = true
	e.count++
}

// Bytes returns the encoded payload.
func (e *KeyDeltaEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of encoded keys.
func (e *KeyDeltaEncoder) Len() int {
	return e.count
}

// Size returns the payload size in bytes.
func (e *KeyDeltaEncoder) Size() int {
	if e.buf == nil {
		panic("encoder already finished - cannot access size after Finish()")
	}

	return e.buf.Len()
}

// Reset starts a new delta sequence: the next key is written in full.
// The accumulated payload is kept.
func (e *KeyDeltaEncoder) Reset() {
	e.prev = 0
	e.started = false
}

// Finish returns the buffer to the pool.
func (e *KeyDeltaEncoder) Finish() {
	if e.buf != nil {
		pool.PutKeyBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
	e.Reset()
}

// KeyDeltaDecoder reads payloads written by KeyDeltaEncoder as a single sequence.
type KeyDeltaDecoder struct{}

var _ ColumnarDecoder[morton.Key] = KeyDeltaDecoder{}

// NewKeyDeltaDecoder creates a delta key decoder.
func NewKeyDeltaDecoder() KeyDeltaDecoder {
	return KeyDeltaDecoder{}
}

// All yields keys until count is reached or data runs out or is malformed.
func (d KeyDeltaDecoder) All(data []byte, count int) iter.Seq[morton.Key] {
	return func(yield func(morton.Key) bool) {
		var cur morton.Key
		offset := 0
		for i := 0; i < count; i++ {
			v, n := binary.Uvarint(data[offset:])
			if n <= 0 {
				return
			}
			offset += n

			if i == 0 {
				cur = v
			} else {
				cur += v
			}
			if !yield(cur) {
				return
			}
		}
	}
}

// At returns the key at index. Deltas force a scan from the start, so At is O(index).
func (d KeyDeltaDecoder) At(data []byte, index int, count int) (morton.Key, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	i := 0
	for z := range d.All(data, index+1) {
		if i == index {
			return z, true
		}
		i++
	}

	return 0, false
}
