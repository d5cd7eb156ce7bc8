// Package pool provides sync.Pool-backed buffers for key encoders and blob builders.
package pool

import "sync"

const (
	// KeyBufferDefaultSize holds 2048 raw keys.
	KeyBufferDefaultSize = 16 * 1024
	// KeyBufferMaxThreshold caps the capacity of buffers returned to the pool.
	KeyBufferMaxThreshold = 1024 * 1024
)

// ByteBuffer is an append-only byte slice with explicit growth control.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates an empty buffer with the given capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, capacity)}
}

// Bytes returns the buffered data. The slice aliases the buffer.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the number of buffered bytes.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset empties the buffer and keeps its capacity.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// MustWrite appends data.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Write implements io.Writer. It never fails.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// ExtendOrGrow lengthens the buffer by n bytes, growing capacity if needed.
// The new bytes are not zeroed when capacity is reused.
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	start := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:start+n]
}

// Grow ensures room for n more bytes without another allocation.
//
// Small buffers grow by KeyBufferDefaultSize, larger ones by a quarter of their
// capacity, and never by less than n.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	growBy := KeyBufferDefaultSize
	if cap(bb.B) > 4*KeyBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	growBy = max(growBy, n)

	grown := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(grown, bb.B)
	bb.B = grown
}

// ByteBufferPool recycles ByteBuffers, dropping any that grew past maxThreshold.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool of buffers with the given initial capacity.
// A maxThreshold of zero keeps every buffer.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get returns an empty buffer.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns bb to the pool. Nil and oversized buffers are dropped.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold {
		return
	}

	bb.Reset()
	p.pool.Put(bb)
}

var keyBufferPool = NewByteBufferPool(KeyBufferDefaultSize, KeyBufferMaxThreshold)

// GetKeyBuffer takes a buffer from the shared key buffer pool.
func GetKeyBuffer() *ByteBuffer {
	return keyBufferPool.Get()
}

// PutKeyBuffer returns a buffer to the shared key buffer pool.
func PutKeyBuffer(bb *ByteBuffer) {
	keyBufferPool.Put(bb)
}
