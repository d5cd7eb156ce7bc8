package compress

import (
	"fmt"

	"github.com/arloliu/zcurve/format"
)

// maxPayloadSize bounds decompression output when the raw size is unknown.
const maxPayloadSize = 128 * 1024 * 1024

// Compressor compresses an encoded key payload.
//
// The returned slice is owned by the caller; the input is never modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor.
// Corrupted input or input from a different algorithm returns an error.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines compression and decompression.
// Implementations in this package are stateless and safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

// SizedDecompressor is implemented by codecs that can decompress straight into
// a buffer of known size. Key blobs record their uncompressed payload size, so
// decoders prefer this path when it is available.
type SizedDecompressor interface {
	DecompressSized(data []byte, rawSize int) ([]byte, error)
}

// CompressionStats describes one compression of a payload.
type CompressionStats struct {
	Algorithm      format.CompressionType
	OriginalSize   int64
	CompressedSize int64
}

// CompressionRatio returns compressed size over original size; zero for empty input.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the saved space as a percentage.
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec returns a new codec for compressionType.
// target names the payload in the error message.
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the shared built-in codec for compressionType.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

// Decompress restores data with codec, using the sized path when the codec
// supports it and rawSize is known (non-negative).
func Decompress(codec Decompressor, data []byte, rawSize int) ([]byte, error) {
	if sized, ok := codec.(SizedDecompressor); ok && rawSize >= 0 {
		return sized.DecompressSized(data, rawSize)
	}

	return codec.Decompress(data)
}

// Measure compresses data with codec and reports the resulting sizes.
func Measure(codec Compressor, algorithm format.CompressionType, data []byte) ([]byte, CompressionStats, error) {
	out, err := codec.Compress(data)
	if err != nil {
		return nil, CompressionStats{}, err
	}

	return out, CompressionStats{
		Algorithm:      algorithm,
		OriginalSize:   int64(len(data)),
		CompressedSize: int64(len(out)),
	}, nil
}
