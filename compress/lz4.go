package compress

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool reuses lz4.Compressor hash tables between calls.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor uses raw LZ4 blocks. Blocks do not record their decompressed
// size, so DecompressSized is preferred when the size is known.
type LZ4Compressor struct{}

var (
	_ Codec             = (*LZ4Compressor)(nil)
	_ SizedDecompressor = (*LZ4Compressor)(nil)
)

// NewLZ4Compressor creates an LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses data into one LZ4 block. Empty input yields nil.
//
// Incompressible input makes lz4 report zero bytes written; the block is then
// stored literally so Decompress can still restore it.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return literalLZ4Block(data), nil
	}

	return dst[:n], nil
}

// Decompress decodes a block of unknown size by retrying with a doubling
// buffer, starting at four times the input, up to 128MiB.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	for size := len(data) * 4; size <= maxPayloadSize; size *= 2 {
		buf := make([]byte, size)
		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return nil, err
		}
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}

// DecompressSized decodes a block whose decompressed size is rawSize.
func (c LZ4Compressor) DecompressSized(data []byte, rawSize int) ([]byte, error) {
	if len(data) == 0 {
		return emptyPayload("lz4", rawSize)
	}

	buf := make([]byte, rawSize)
	n, err := lz4.UncompressBlock(data, buf)
	if err != nil {
		return nil, err
	}
	if n != rawSize {
		return nil, sizeMismatch("lz4", n, rawSize)
	}

	return buf, nil
}

// literalLZ4Block encodes data as a single literal-only LZ4 sequence, which
// every LZ4 block decoder accepts.
func literalLZ4Block(data []byte) []byte {
	n := len(data)
	out := make([]byte, 0, n+n/255+16)

	if n < 15 {
		out = append(out, byte(n<<4))
	} else {
		out = append(out, 0xF0)
		rest := n - 15
		for rest >= 255 {
			out = append(out, 255)
			rest -= 255
		}
		out = append(out, byte(rest))
	}

	return append(out, data...)
}
