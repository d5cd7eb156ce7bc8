package compress

import "fmt"

// NoOpCompressor stores key payloads uncompressed.
// Returned slices alias the input.
type NoOpCompressor struct{}

var (
	_ Codec             = (*NoOpCompressor)(nil)
	_ SizedDecompressor = (*NoOpCompressor)(nil)
)

// NewNoOpCompressor creates a pass-through codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data as-is.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data as-is.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

// DecompressSized returns data as-is once its length matches rawSize.
func (c NoOpCompressor) DecompressSized(data []byte, rawSize int) ([]byte, error) {
	if len(data) != rawSize {
		return nil, sizeMismatch("none", len(data), rawSize)
	}

	return data, nil
}

// sizeMismatch reports a payload whose decompressed size disagrees with the
// size recorded in the blob header.
func sizeMismatch(algorithm string, got, want int) error {
	return fmt.Errorf("%s: decompressed %d bytes, expected %d", algorithm, got, want)
}

// emptyPayload handles a zero-length stored payload, valid only for an empty blob.
func emptyPayload(algorithm string, rawSize int) ([]byte, error) {
	if rawSize != 0 {
		return nil, sizeMismatch(algorithm, 0, rawSize)
	}

	return nil, nil
}
