// Package blob packs Morton keys into compact, self-describing key blobs.
//
// A key blob is a 32-byte header (see package section) followed by the key
// payload: either raw 8-byte keys or uvarint deltas of sorted keys, optionally
// compressed. The header records the Morton depth, so a reader can decode keys
// back to coordinates without out-of-band information.
//
//	enc, err := blob.NewKeyEncoder(16, blob.WithKeyCompression(format.CompressionZstd))
//	_ = enc.AddPoint(5, 10)
//	data, err := enc.Finish()
//
//	kb, err := blob.DecodeKeyBlob(data)
//	kb.Contains(5, 10) // true
package blob
