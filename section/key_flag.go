package section

import (
	"github.com/arloliu/zcurve/endian"
	"github.com/arloliu/zcurve/errs"
	"github.com/arloliu/zcurve/format"
)

// KeyFlag is the packed flag word of a key blob header.
type KeyFlag struct {
	// Options packs the sorted bit (0), the endianness bit (1), two reserved
	// bits (2-3) and the magic number (4-15). It is always stored little-endian
	// so the byte order of the remaining fields can be read from it.
	Options uint16

	// EncodingType is the key column encoding.
	EncodingType format.EncodingType
	// CompressionType is the compression applied to the encoded payload.
	CompressionType format.CompressionType
}

// NewKeyFlag returns a little-endian flag for an unsorted, raw, uncompressed blob.
func NewKeyFlag() KeyFlag {
	return KeyFlag{
		Options:         MagicKeyV1Opt,
		EncodingType:    format.TypeRaw,
		CompressionType: format.CompressionNone,
	}
}

// IsSorted reports whether the keys are stored in ascending order.
func (f KeyFlag) IsSorted() bool {
	return f.Options&SortedMask != 0
}

// SetSorted sets or clears the sorted bit.
func (f *KeyFlag) SetSorted(sorted bool) {
	if sorted {
		f.Options |= SortedMask
	} else {
		f.Options &^= SortedMask
	}
}

// IsLittleEndian reports whether multi-byte fields are little-endian.
func (f KeyFlag) IsLittleEndian() bool {
	return f.Options&EndiannessMask == 0
}

// IsBigEndian reports whether multi-byte fields are big-endian.
func (f KeyFlag) IsBigEndian() bool {
	return f.Options&EndiannessMask != 0
}

// WithLittleEndian selects little-endian byte order.
func (f *KeyFlag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian selects big-endian byte order.
func (f *KeyFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetEndianEngine returns the engine matching the endianness bit.
func (f KeyFlag) GetEndianEngine() endian.EndianEngine {
	if f.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// GetMagicNumber returns bits 4-15 of Options.
func (f KeyFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// Validate checks the magic number, the reserved bits and the encoding and
// compression enums.
func (f KeyFlag) Validate() error {
	if f.GetMagicNumber() != MagicKeyV1Opt || f.Options&ReservedBitsMask != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	switch f.EncodingType {
	case format.TypeRaw, format.TypeDelta:
	default:
		return errs.ErrInvalidHeaderFlags
	}

	switch f.CompressionType {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
	default:
		return errs.ErrInvalidHeaderFlags
	}

	return nil
}
