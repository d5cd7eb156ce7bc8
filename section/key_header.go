package section

import (
	"fmt"

	"github.com/arloliu/zcurve/errs"
	"github.com/arloliu/zcurve/format"
	"github.com/arloliu/zcurve/morton"
)

// KeyHeader is the fixed 32-byte header at the start of a key blob.
//
//	0-1    Flag.Options (always little-endian)
//	2      Flag.EncodingType
//	3      Flag.CompressionType
//	4      Depth
//	5-7    reserved, zero
//	8-15   Count
//	16-19  PayloadSize
//	20-23  RawSize
//	24-31  Checksum
type KeyHeader struct {
	// Count is the number of keys in the blob.
	Count uint64
	// Checksum is the xxHash64 of the encoded, uncompressed payload.
	Checksum uint64
	// PayloadSize is the stored (possibly compressed) payload size in bytes.
	PayloadSize uint32
	// RawSize is the encoded payload size before compression.
	RawSize uint32
	// Depth is the Morton bit depth the keys were encoded at.
	Depth uint8

	Flag KeyFlag
}

// NewKeyHeader returns a header for keys of the given depth with default flags.
func NewKeyHeader(depth int) *KeyHeader {
	return &KeyHeader{
		Depth: uint8(depth), //nolint:gosec
		Flag:  NewKeyFlag(),
	}
}

// Parse reads the header from exactly HeaderSize bytes and validates it.
func (h *KeyHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	h.Flag.Options = uint16(data[optionsOffset]) | uint16(data[optionsOffset+1])<<8
	h.Flag.EncodingType = format.EncodingType(data[encodingOffset])
	h.Flag.CompressionType = format.CompressionType(data[compressionOffset])
	h.Depth = data[depthOffset]

	if data[depthOffset+1]|data[depthOffset+2]|data[depthOffset+3] != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	engine := h.Flag.GetEndianEngine()
	h.Count = engine.Uint64(data[countOffset : countOffset+8])
	h.PayloadSize = engine.Uint32(data[payloadSizeOffset : payloadSizeOffset+4])
	h.RawSize = engine.Uint32(data[rawSizeOffset : rawSizeOffset+4])
	h.Checksum = engine.Uint64(data[checksumOffset : checksumOffset+8])

	return h.Validate()
}

// Validate checks the flag word and the depth.
func (h *KeyHeader) Validate() error {
	if err := h.Flag.Validate(); err != nil {
		return err
	}
	if err := morton.ValidateDepth(int(h.Depth)); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidHeaderFlags, err)
	}

	return nil
}

// Bytes serializes the header into HeaderSize bytes.
func (h *KeyHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)

	b[optionsOffset] = byte(h.Flag.Options)
	b[optionsOffset+1] = byte(h.Flag.Options >> 8)
	b[encodingOffset] = byte(h.Flag.EncodingType)
	b[compressionOffset] = byte(h.Flag.CompressionType)
	b[depthOffset] = h.Depth

	engine := h.Flag.GetEndianEngine()
	engine.PutUint64(b[countOffset:countOffset+8], h.Count)
	engine.PutUint32(b[payloadSizeOffset:payloadSizeOffset+4], h.PayloadSize)
	engine.PutUint32(b[rawSizeOffset:rawSizeOffset+4], h.RawSize)
	engine.PutUint64(b[checksumOffset:checksumOffset+8], h.Checksum)

	return b
}

// ParseKeyHeader parses the header at the start of data.
func ParseKeyHeader(data []byte) (KeyHeader, error) {
	if len(data) < HeaderSize {
		return KeyHeader{}, errs.ErrInvalidHeaderSize
	}

	h := KeyHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return KeyHeader{}, err
	}

	return h, nil
}
