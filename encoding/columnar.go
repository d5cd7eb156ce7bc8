package encoding

import "iter"

// ColumnarEncoder appends values of one column to an internal buffer.
type ColumnarEncoder[T comparable] interface {
	// Bytes returns the encoded payload.
	// The slice is valid until the next Write, WriteSlice or Finish and must not be modified.
	Bytes() []byte

	// Len returns the number of encoded values.
	Len() int

	// Size returns the payload size in bytes.
	Size() int

	// Reset clears per-sequence state but keeps the accumulated payload, so
	// Len, Size and Bytes are unchanged.
	Reset()

	// Finish returns the buffer to the pool. The encoder is unusable afterwards;
	// Write, WriteSlice, Bytes and Size panic.
	//
	//	enc := NewKeyRawEncoder(engine)
	//	defer enc.Finish()
	Finish()

	// Write appends a single value.
	Write(data T)

	// WriteSlice appends values in order.
	WriteSlice(values []T)
}

// ColumnarDecoder reads a payload produced by the matching ColumnarEncoder.
// Decoders are stateless values.
type ColumnarDecoder[T comparable] interface {
	// All yields up to count values from data. Malformed or short data ends the
	// sequence early; callers compare the yielded count against count.
	All(data []byte, count int) iter.Seq[T]

	// At returns the value at index, or false when index is outside [0, count)
	// or data is too short.
	At(data []byte, index int, count int) (T, bool)
}
