//go:build gozstd && cgo

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"
)

// zstdLevel matches the pure-Go build's SpeedBetterCompression.
const zstdLevel = 7

// Compress encodes a key payload as one zstd frame. Empty input yields nil.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, zstdLevel), nil
}

// Decompress decodes a zstd frame. Empty input yields nil.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return out, nil
}

// DecompressSized decodes a frame into a buffer of rawSize bytes.
func (c ZstdCompressor) DecompressSized(data []byte, rawSize int) ([]byte, error) {
	if len(data) == 0 {
		return emptyPayload("zstd", rawSize)
	}

	out, err := gozstd.Decompress(make([]byte, 0, rawSize), data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if len(out) != rawSize {
		return nil, sizeMismatch("zstd", len(out), rawSize)
	}

	return out, nil
}
