package blob

import (
	"fmt"

	"github.com/arloliu/zcurve/compress"
	"github.com/arloliu/zcurve/encoding"
	"github.com/arloliu/zcurve/errs"
	"github.com/arloliu/zcurve/format"
	"github.com/arloliu/zcurve/internal/hash"
	"github.com/arloliu/zcurve/morton"
	"github.com/arloliu/zcurve/section"
)

// KeyDecoder validates a key blob and reconstructs a KeyBlob.
//
// Note: KeyDecoder is NOT thread-safe. The resulting KeyBlob is immutable and
// safe for concurrent reads.
type KeyDecoder struct {
	data   []byte
	header section.KeyHeader
}

// NewKeyDecoder parses and validates the header of data. The payload is not
// touched until Decode.
func NewKeyDecoder(data []byte) (*KeyDecoder, error) {
	header, err := section.ParseKeyHeader(data)
	if err != nil {
		return nil, err
	}

	if uint64(len(data)-section.PayloadOffset) < uint64(header.PayloadSize) {
		return nil, fmt.Errorf("%w: payload truncated, header says %d bytes, got %d",
			errs.ErrInvalidPayload, header.PayloadSize, len(data)-section.PayloadOffset)
	}
	if header.Count > MaxKeyCount {
		return nil, fmt.Errorf("%w: key count %d exceeds %d", errs.ErrInvalidPayload, header.Count, MaxKeyCount)
	}

	return &KeyDecoder{data: data, header: header}, nil
}

// Header returns the parsed header.
func (d *KeyDecoder) Header() section.KeyHeader {
	return d.header
}

// Decode decompresses the payload, verifies its checksum and checks that every
// key lies in the domain of the stored depth (and is ascending when the blob
// is marked sorted).
func (d *KeyDecoder) Decode() (KeyBlob, error) {
	h := d.header
	stored := d.data[section.PayloadOffset : section.PayloadOffset+int(h.PayloadSize)]

	codec, err := compress.GetCodec(h.Flag.CompressionType)
	if err != nil {
		return KeyBlob{}, err
	}

	raw, err := compress.Decompress(codec, stored, int(h.RawSize))
	if err != nil {
		return KeyBlob{}, fmt.Errorf("%w: %w", errs.ErrInvalidPayload, err)
	}
	if len(raw) != int(h.RawSize) {
		return KeyBlob{}, fmt.Errorf("%w: decompressed %d bytes, header says %d",
			errs.ErrInvalidPayload, len(raw), h.RawSize)
	}
	if hash.Sum(raw) != h.Checksum {
		return KeyBlob{}, errs.ErrChecksumMismatch
	}

	blob := KeyBlob{
		mc:    morton.MustNewCodec(int(h.Depth)),
		flag:  h.Flag,
		count: int(h.Count),
	}

	switch h.Flag.EncodingType {
	case format.TypeDelta:
		keys := make([]morton.Key, 0, min(blob.count, len(raw)))
		for z := range encoding.NewKeyDeltaDecoder().All(raw, blob.count) {
			keys = append(keys, z)
		}
		blob.keys = keys
	default:
		if len(raw) != 8*blob.count {
			return KeyBlob{}, fmt.Errorf("%w: raw payload of %d bytes for %d keys",
				errs.ErrInvalidPayload, len(raw), blob.count)
		}
		blob.raw = raw
		blob.rawDecoder = encoding.NewKeyRawDecoder(h.Flag.GetEndianEngine())
	}

	if err := blob.validate(); err != nil {
		return KeyBlob{}, err
	}

	return blob, nil
}

// DecodeKeyBlob is a shortcut for NewKeyDecoder followed by Decode.
func DecodeKeyBlob(data []byte) (KeyBlob, error) {
	d, err := NewKeyDecoder(data)
	if err != nil {
		return KeyBlob{}, err
	}

	return d.Decode()
}
