//go:build !(gozstd && cgo)

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Pooled single-threaded zstd coders.
var (
	zstdEncoderPool = sync.Pool{New: func() any { return newZstdEncoder() }}
	zstdDecoderPool = sync.Pool{New: func() any { return newZstdDecoder() }}
)

func newZstdEncoder() *zstd.Encoder {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderCRC(false),
	)
	if err != nil {
		panic(fmt.Sprintf("zstd encoder: %v", err))
	}

	return enc
}

func newZstdDecoder() *zstd.Decoder {
	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(maxPayloadSize),
	)
	if err != nil {
		panic(fmt.Sprintf("zstd decoder: %v", err))
	}

	return dec
}

// Compress encodes a key payload as one zstd frame. Empty input yields nil.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	enc, _ := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(enc)

	return enc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

// Decompress decodes a zstd frame. Empty input yields nil.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return zstdDecodeInto(data, nil)
}

// DecompressSized decodes a frame into a buffer of rawSize bytes.
func (c ZstdCompressor) DecompressSized(data []byte, rawSize int) ([]byte, error) {
	if len(data) == 0 {
		return emptyPayload("zstd", rawSize)
	}

	out, err := zstdDecodeInto(data, make([]byte, 0, rawSize))
	if err != nil {
		return nil, err
	}
	if len(out) != rawSize {
		return nil, sizeMismatch("zstd", len(out), rawSize)
	}

	return out, nil
}

func zstdDecodeInto(data, dst []byte) ([]byte, error) {
	dec, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(dec)

	out, err := dec.DecodeAll(data, dst)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return out, nil
}
