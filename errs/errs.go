// Package errs defines the errors returned by zcurve packages.
//
// Errors fall into two groups:
//   - Domain errors: a coordinate or key lies outside the range allowed by the
//     codec's bit depth. They are always returned as *DomainError and match
//     ErrOutOfDomain with errors.Is.
//   - Configuration errors: an invalid bit depth, a call site asserting a depth
//     different from the codec's, or an option value that cannot be honored.
//     They match ErrConfiguration with errors.Is.
//
// Round-trip mismatches found by the verifier are not errors; they are reported
// as data in verify.Run.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfDomain is matched by every *DomainError.
	ErrOutOfDomain = errors.New("value out of domain")

	// ErrConfiguration is the parent of all configuration errors.
	ErrConfiguration = errors.New("configuration error")

	ErrInvalidDepth        = fmt.Errorf("%w: invalid bit depth", ErrConfiguration)
	ErrDepthMismatch       = fmt.Errorf("%w: bit depth mismatch", ErrConfiguration)
	ErrInvalidMode         = fmt.Errorf("%w: invalid verification mode", ErrConfiguration)
	ErrInvalidOption       = fmt.Errorf("%w: invalid option", ErrConfiguration)
	ErrExhaustiveTooLarge  = fmt.Errorf("%w: domain too large for exhaustive verification", ErrConfiguration)
	ErrInvalidGridSize     = fmt.Errorf("%w: grid exceeds codec domain", ErrConfiguration)
	ErrNilCodec            = fmt.Errorf("%w: codec is nil", ErrConfiguration)
	ErrUnsupportedEncoding = fmt.Errorf("%w: unsupported key encoding", ErrConfiguration)
)

// Key blob errors.
var (
	ErrInvalidHeaderSize  = errors.New("invalid key blob header size")
	ErrInvalidHeaderFlags = errors.New("invalid key blob header flags")
	ErrInvalidPayload     = errors.New("invalid key blob payload")
	ErrChecksumMismatch   = errors.New("key blob checksum mismatch")
	ErrUnsortedKeys       = errors.New("keys must be added in ascending order")
	ErrTooManyKeys        = errors.New("too many keys for a single blob")
	ErrEncoderFinished    = errors.New("key encoder already finished")
)

// DomainError reports a coordinate or key outside [0, Bound).
type DomainError struct {
	// Field names the offending input: "x", "y" or "z".
	Field string
	// Value is the rejected input.
	Value uint64
	// Bound is the exclusive upper bound. Zero means 2^64, which only a
	// full-width key domain has, and which no uint64 value can exceed.
	Bound uint64
	// Depth is the bit depth of the codec that rejected the value.
	Depth int
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s=%d out of domain [0, %d) at depth %d", e.Field, e.Value, e.Bound, e.Depth)
}

// Unwrap makes errors.Is(err, ErrOutOfDomain) hold for every DomainError.
func (e *DomainError) Unwrap() error {
	return ErrOutOfDomain
}

// IsOutOfDomain reports whether err is, or wraps, a domain error.
func IsOutOfDomain(err error) bool {
	return errors.Is(err, ErrOutOfDomain)
}

// IsConfiguration reports whether err is, or wraps, a configuration error.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
