package blob

import (
	"fmt"
	"slices"

	"github.com/arloliu/zcurve/encoding"
	"github.com/arloliu/zcurve/errs"
	"github.com/arloliu/zcurve/format"
	"github.com/arloliu/zcurve/internal/hash"
	"github.com/arloliu/zcurve/internal/options"
	"github.com/arloliu/zcurve/internal/pool"
	"github.com/arloliu/zcurve/morton"
	"github.com/arloliu/zcurve/section"
)

// KeyEncoder collects Morton keys and packs them into a key blob.
//
// Note: KeyEncoder is NOT thread-safe and NOT reusable. Create a new encoder
// for every blob.
type KeyEncoder struct {
	*KeyEncoderConfig

	mc        morton.Codec
	keys      *[]morton.Key
	ascending bool
	finished  bool
}

// NewKeyEncoder creates an encoder for keys of the given depth.
func NewKeyEncoder(depth int, opts ...KeyEncoderOption) (*KeyEncoder, error) {
	mc, err := morton.NewCodec(depth)
	if err != nil {
		return nil, err
	}

	config := NewKeyEncoderConfig(depth)
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}
	if config.codec == nil {
		if err := config.setCompression(config.header.Flag.CompressionType); err != nil {
			return nil, err
		}
	}

	return &KeyEncoder{
		KeyEncoderConfig: config,
		mc:               mc,
		keys:             pool.GetKeySlice(0),
		ascending:        true,
	}, nil
}

// Depth returns the bit depth of the encoded keys.
func (e *KeyEncoder) Depth() int {
	return e.mc.Depth()
}

// Len returns the number of keys added so far.
func (e *KeyEncoder) Len() int {
	if e.keys == nil {
		return 0
	}

	return len(*e.keys)
}

// AddPoint encodes (x, y) and adds the key. Out-of-domain coordinates return
// the codec's *errs.DomainError and add nothing.
func (e *KeyEncoder) AddPoint(x, y uint64) error {
	if e.finished {
		return errs.ErrEncoderFinished
	}

	z, err := e.mc.Encode(x, y)
	if err != nil {
		return err
	}

	return e.AddKey(z)
}

// AddKey adds a key that was encoded at the encoder's depth.
func (e *KeyEncoder) AddKey(z morton.Key) error {
	if e.finished {
		return errs.ErrEncoderFinished
	}
	if z > e.mc.MaxKey() {
		return &errs.DomainError{Field: "z", Value: z, Bound: e.mc.MaxKey() + 1, Depth: e.mc.Depth()}
	}
	if len(*e.keys) >= MaxKeyCount {
		return errs.ErrTooManyKeys
	}

	if n := len(*e.keys); n > 0 && z < (*e.keys)[n-1] {
		if !e.sorted && e.header.Flag.EncodingType == format.TypeDelta {
			return fmt.Errorf("%w: %d after %d", errs.ErrUnsortedKeys, z, (*e.keys)[n-1])
		}
		e.ascending = false
	}
	*e.keys = append(*e.keys, z)

	return nil
}

// Finish encodes the collected keys, compresses the payload and returns the
// blob bytes. The encoder cannot be used afterwards.
func (e *KeyEncoder) Finish() ([]byte, error) {
	if e.finished {
		return nil, errs.ErrEncoderFinished
	}
	e.finished = true
	defer func() {
		pool.PutKeySlice(e.keys)
		e.keys = nil
	}()

	keys := *e.keys
	if e.sorted && !e.ascending {
		slices.Sort(keys)
		e.ascending = true
	}

	var enc encoding.ColumnarEncoder[morton.Key]
	switch e.header.Flag.EncodingType {
	case format.TypeDelta:
		enc = encoding.NewKeyDeltaEncoder()
	default:
		enc = encoding.NewKeyRawEncoder(e.engine)
	}
	defer enc.Finish()

	enc.WriteSlice(keys)
	raw := enc.Bytes()

	payload, err := e.codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to compress key payload: %w", err)
	}

	header := *e.header
	header.Flag.SetSorted(e.ascending)
	header.Count = uint64(len(keys))
	header.RawSize = uint32(len(raw))         //nolint:gosec
	header.PayloadSize = uint32(len(payload)) //nolint:gosec
	header.Checksum = hash.Sum(raw)

	out := make([]byte, 0, section.HeaderSize+len(payload))
	out = append(out, header.Bytes()...)
	out = append(out, payload...)

	return out, nil
}
