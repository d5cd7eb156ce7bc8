// Package compress provides the compression codecs applied to key blob payloads.
//
// Key blobs are built in two stages: the key column is first encoded (raw
// 8-byte words or ascending uvarint deltas, see package encoding) and the
// resulting payload is then optionally compressed here.
//
// Supported algorithms, selected with format.CompressionType:
//   - None: pass-through
//   - Zstd: best ratio; pure Go by default, cgo gozstd with the gozstd build tag
//   - S2: fast, moderate ratio
//   - LZ4: fastest decompression
//
// Sorted Morton keys of clustered points produce small, repetitive deltas, so
// delta encoding followed by Zstd usually yields the smallest blobs. Raw keys
// of scattered points are close to incompressible; None or S2 fit them best.
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	packed, err := codec.Compress(payload)
//	payload, err = compress.Decompress(codec, packed, rawSize)
package compress
