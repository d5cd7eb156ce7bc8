package blob

import (
	"fmt"
	"math"

	"github.com/arloliu/zcurve/compress"
	"github.com/arloliu/zcurve/endian"
	"github.com/arloliu/zcurve/errs"
	"github.com/arloliu/zcurve/format"
	"github.com/arloliu/zcurve/internal/options"
	"github.com/arloliu/zcurve/section"
)

// MaxKeyCount is the largest number of keys a blob can hold: the raw payload
// size must fit the 32-bit size fields of the header.
const MaxKeyCount = math.MaxUint32 / 8

// KeyEncoderConfig holds the settings of a KeyEncoder.
type KeyEncoderConfig struct {
	header *section.KeyHeader
	codec  compress.Codec
	engine endian.EndianEngine
	// sorted asks Finish to sort keys; with delta encoding and sorted=false the
	// keys must already arrive in ascending order.
	sorted bool
}

// NewKeyEncoderConfig returns the default configuration: little-endian,
// delta-encoded, Zstd-compressed, sorted.
func NewKeyEncoderConfig(depth int) *KeyEncoderConfig {
	header := section.NewKeyHeader(depth)
	header.Flag.EncodingType = format.TypeDelta
	header.Flag.CompressionType = format.CompressionZstd

	return &KeyEncoderConfig{
		header: header,
		engine: header.Flag.GetEndianEngine(),
		sorted: true,
	}
}

func (c *KeyEncoderConfig) setEncoding(enc format.EncodingType) error {
	switch enc {
	case format.TypeRaw, format.TypeDelta:
		c.header.Flag.EncodingType = enc
		return nil
	default:
		return fmt.Errorf("%w: %v", errs.ErrUnsupportedEncoding, enc)
	}
}

func (c *KeyEncoderConfig) setCompression(comp format.CompressionType) error {
	codec, err := compress.CreateCodec(comp, "key payload")
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidOption, err)
	}
	c.header.Flag.CompressionType = comp
	c.codec = codec

	return nil
}

func (c *KeyEncoderConfig) setBigEndian(big bool) {
	if big {
		c.header.Flag.WithBigEndian()
	} else {
		c.header.Flag.WithLittleEndian()
	}
	c.engine = c.header.Flag.GetEndianEngine()
}

// KeyEncoderOption configures a KeyEncoder.
type KeyEncoderOption = options.Option[*KeyEncoderConfig]

// WithLittleEndian stores raw keys and header fields little-endian. It is the default.
func WithLittleEndian() KeyEncoderOption {
	return options.NoError(func(c *KeyEncoderConfig) {
		c.setBigEndian(false)
	})
}

// WithBigEndian stores raw keys and header fields big-endian, so raw key bytes
// compare in key order.
func WithBigEndian() KeyEncoderOption {
	return options.NoError(func(c *KeyEncoderConfig) {
		c.setBigEndian(true)
	})
}

// WithKeyEncoding selects the key column encoding.
func WithKeyEncoding(enc format.EncodingType) KeyEncoderOption {
	return options.New(func(c *KeyEncoderConfig) error {
		return c.setEncoding(enc)
	})
}

// WithKeyCompression selects the payload compression.
func WithKeyCompression(comp format.CompressionType) KeyEncoderOption {
	return options.New(func(c *KeyEncoderConfig) error {
		return c.setCompression(comp)
	})
}

// WithSorted controls whether Finish sorts the keys.
//
// Unsorted raw blobs keep insertion order. Unsorted delta blobs require keys
// to be added in ascending order and reject others with errs.ErrUnsortedKeys.
func WithSorted(sorted bool) KeyEncoderOption {
	return options.NoError(func(c *KeyEncoderConfig) {
		c.sorted = sorted
	})
}
