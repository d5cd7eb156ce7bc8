package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2Compressor stores key payloads as single S2 blocks, encoded with the
// "better" matcher.
type S2Compressor struct{}

var (
	_ Codec             = (*S2Compressor)(nil)
	_ SizedDecompressor = (*S2Compressor)(nil)
)

// NewS2Compressor creates an S2 codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress encodes a key payload. Empty input yields nil.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.EncodeBetter(nil, data), nil
}

// Decompress decodes an S2 block. Empty input yields nil.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := s2.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return out, nil
}

// DecompressSized decodes a block after checking that its recorded length is
// rawSize, so a header/payload mismatch fails before any allocation.
func (c S2Compressor) DecompressSized(data []byte, rawSize int) ([]byte, error) {
	if len(data) == 0 {
		return emptyPayload("s2", rawSize)
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}
	if n != rawSize {
		return nil, sizeMismatch("s2", n, rawSize)
	}

	out, err := s2.Decode(make([]byte, rawSize), data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return out, nil
}
