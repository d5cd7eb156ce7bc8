package compress

// ZstdCompressor uses Zstandard. It gives the best ratio of the built-in
// codecs on delta-encoded key columns and suits archived key blobs.
//
// The default build uses klauspost/compress; building with the gozstd tag
// (and cgo) switches to valyala/gozstd.
type ZstdCompressor struct{}

var (
	_ Codec             = (*ZstdCompressor)(nil)
	_ SizedDecompressor = (*ZstdCompressor)(nil)
)

// NewZstdCompressor creates a Zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
