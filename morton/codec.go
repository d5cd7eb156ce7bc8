package morton

import (
	"fmt"

	"github.com/arloliu/zcurve/errs"
)

const (
	// MinDepth is the smallest supported bit depth.
	MinDepth = 1
	// MaxDepth is the largest supported bit depth; its keys use all 64 bits.
	MaxDepth = 32
	// DefaultDepth covers the full uint32 coordinate range.
	DefaultDepth = MaxDepth
)

// Key is a Morton (Z-order) key: the bit interleaving of one coordinate pair.
type Key = uint64

// Coordinate is a point of the 2D domain.
type Coordinate struct {
	X uint32 `json:"x" msgpack:"x"`
	Y uint32 `json:"y" msgpack:"y"`
}

// Triple is one grid point together with its key.
type Triple struct {
	X uint32
	Y uint32
	Z Key
}

// Codec maps coordinates in [0, 2^depth)² to keys in [0, 2^(2*depth)) and back.
//
// The depth is fixed at construction. A Codec is an immutable value, so it can
// be copied freely and used from any number of goroutines.
// The zero value is not usable; every method reports ErrInvalidDepth on it.
type Codec struct {
	depth uint8
}

// NewCodec creates a codec for the given bit depth.
//
// Depth must be in [MinDepth, MaxDepth]. Depth 0 is rejected rather than
// treated as a degenerate always-zero mapping.
func NewCodec(depth int) (Codec, error) {
	if err := ValidateDepth(depth); err != nil {
		return Codec{}, err
	}

	return Codec{depth: uint8(depth)}, nil //nolint:gosec
}

// MustNewCodec is like NewCodec but panics on an invalid depth.
// Intended for package-level variables and tests.
func MustNewCodec(depth int) Codec {
	c, err := NewCodec(depth)
	if err != nil {
		panic(err)
	}

	return c
}

// ValidateDepth returns an error wrapping errs.ErrInvalidDepth when depth is
// outside [MinDepth, MaxDepth].
func ValidateDepth(depth int) error {
	if depth < MinDepth || depth > MaxDepth {
		return fmt.Errorf("%w: %d not in [%d, %d]", errs.ErrInvalidDepth, depth, MinDepth, MaxDepth)
	}

	return nil
}

// Depth returns the bit depth of each coordinate.
func (c Codec) Depth() int {
	return int(c.depth)
}

// KeyBits returns the number of significant key bits, 2*depth.
func (c Codec) KeyBits() int {
	return 2 * int(c.depth)
}

// MaxCoordinate returns the largest valid coordinate, 2^depth - 1.
func (c Codec) MaxCoordinate() uint32 {
	return uint32(c.coordBound() - 1) //nolint:gosec
}

// MaxKey returns the largest valid key, 2^(2*depth) - 1.
func (c Codec) MaxKey() Key {
	if c.depth == MaxDepth {
		return ^Key(0)
	}

	return (Key(1) << (2 * c.depth)) - 1
}

// Encode interleaves the bits of x and y into a key.
//
// Bit i of x lands at key bit 2i and bit i of y at key bit 2i+1.
// Inputs at or above 2^depth are rejected with a *errs.DomainError; x is
// checked before y. Nothing is truncated or wrapped.
func (c Codec) Encode(x, y uint64) (Key, error) {
	if err := c.valid(); err != nil {
		return 0, err
	}

	bound := c.coordBound()
	if x >= bound {
		return 0, &errs.DomainError{Field: "x", Value: x, Bound: bound, Depth: int(c.depth)}
	}
	if y >= bound {
		return 0, &errs.DomainError{Field: "y", Value: y, Bound: bound, Depth: int(c.depth)}
	}

	return interleave(uint32(x), uint32(y)), nil //nolint:gosec
}

// Decode splits a key back into its coordinates.
//
// Keys at or above 2^(2*depth) are rejected with a *errs.DomainError.
// At MaxDepth every uint64 is a valid key.
func (c Codec) Decode(z Key) (x, y uint32, err error) {
	if err := c.valid(); err != nil {
		return 0, 0, err
	}

	if z > c.MaxKey() {
		return 0, 0, &errs.DomainError{Field: "z", Value: z, Bound: c.MaxKey() + 1, Depth: int(c.depth)}
	}

	x, y = deinterleave(z)

	return x, y, nil
}

// EncodeCoordinate encodes a Coordinate.
func (c Codec) EncodeCoordinate(p Coordinate) (Key, error) {
	return c.Encode(uint64(p.X), uint64(p.Y))
}

// DecodeCoordinate decodes a key into a Coordinate.
func (c Codec) DecodeCoordinate(z Key) (Coordinate, error) {
	x, y, err := c.Decode(z)
	if err != nil {
		return Coordinate{}, err
	}

	return Coordinate{X: x, Y: y}, nil
}

// EncodeAt encodes after asserting that the call site expects this codec's depth.
// A different depth fails with errs.ErrDepthMismatch before anything is computed.
func (c Codec) EncodeAt(x, y uint64, depth int) (Key, error) {
	if err := c.CheckDepth(depth); err != nil {
		return 0, err
	}

	return c.Encode(x, y)
}

// DecodeAt decodes after asserting that the call site expects this codec's depth.
func (c Codec) DecodeAt(z Key, depth int) (x, y uint32, err error) {
	if err := c.CheckDepth(depth); err != nil {
		return 0, 0, err
	}

	return c.Decode(z)
}

// CheckDepth returns errs.ErrDepthMismatch when depth differs from the codec's.
func (c Codec) CheckDepth(depth int) error {
	if err := c.valid(); err != nil {
		return err
	}
	if depth != int(c.depth) {
		return fmt.Errorf("%w: codec depth %d, call site depth %d", errs.ErrDepthMismatch, c.depth, depth)
	}

	return nil
}

// String implements fmt.Stringer.
func (c Codec) String() string {
	return fmt.Sprintf("morton.Codec(depth=%d)", c.depth)
}

func (c Codec) valid() error {
	if c.depth < MinDepth || c.depth > MaxDepth {
		return fmt.Errorf("%w: uninitialized codec", errs.ErrInvalidDepth)
	}

	return nil
}

// coordBound is 2^depth, the exclusive upper bound of a coordinate.
func (c Codec) coordBound() uint64 {
	return uint64(1) << c.depth
}

// Encode encodes (x, y) at the given depth.
func Encode(x, y uint64, depth int) (Key, error) {
	c, err := NewCodec(depth)
	if err != nil {
		return 0, err
	}

	return c.Encode(x, y)
}

// Decode decodes z at the given depth.
func Decode(z Key, depth int) (x, y uint32, err error) {
	c, err := NewCodec(depth)
	if err != nil {
		return 0, 0, err
	}

	return c.Decode(z)
}
