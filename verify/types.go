package verify

import (
	"fmt"
	"strings"

	"github.com/arloliu/zcurve/errs"
	"github.com/arloliu/zcurve/morton"
)

// Mode selects how coordinates are drawn.
type Mode uint8

const (
	// ModeSampled draws SampleCount pseudo-random coordinates from the seed.
	ModeSampled Mode = iota
	// ModeExhaustive visits every coordinate of the domain in row-major order.
	ModeExhaustive
)

func (m Mode) String() string {
	switch m {
	case ModeSampled:
		return "sampled"
	case ModeExhaustive:
		return "exhaustive"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode parses "sampled" or "exhaustive", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sampled", "sample":
		return ModeSampled, nil
	case "exhaustive", "all":
		return ModeExhaustive, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidMode, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if m != ModeSampled && m != ModeExhaustive {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidMode, uint8(m))
	}

	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed

	return nil
}

// FailureKind classifies a failing record.
type FailureKind uint8

const (
	// FailureNone marks a passing record.
	FailureNone FailureKind = iota
	// FailureMismatch: decode(encode(p)) != p.
	FailureMismatch
	// FailureCollision: the key was already produced by a different coordinate.
	FailureCollision
	// FailureEncodeError: the codec rejected an in-domain coordinate.
	FailureEncodeError
	// FailureDecodeError: the codec rejected its own key.
	FailureDecodeError
)

var failureKindNames = [...]string{"none", "mismatch", "collision", "encode_error", "decode_error"}

func (k FailureKind) String() string {
	if int(k) < len(failureKindNames) {
		return failureKindNames[k]
	}

	return fmt.Sprintf("FailureKind(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k FailureKind) MarshalText() ([]byte, error) {
	if int(k) >= len(failureKindNames) {
		return nil, fmt.Errorf("unknown failure kind %d", uint8(k))
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *FailureKind) UnmarshalText(text []byte) error {
	for i, name := range failureKindNames {
		if name == string(text) {
			*k = FailureKind(i) //nolint:gosec
			return nil
		}
	}

	return fmt.Errorf("unknown failure kind %q", text)
}

// Record is one round-trip observation.
type Record struct {
	// Index is the position in the sample sequence.
	Index uint64 `json:"index" msgpack:"index"`
	// Input is the coordinate fed to Encode.
	Input morton.Coordinate `json:"input" msgpack:"input"`
	// Encoded is the key returned by Encode; zero when Encode failed.
	Encoded morton.Key `json:"encoded" msgpack:"encoded"`
	// Decoded is the coordinate returned by Decode; zero when either call failed.
	Decoded morton.Coordinate `json:"decoded" msgpack:"decoded"`
	// Matched reports Decoded == Input.
	Matched bool `json:"matched" msgpack:"matched"`
	// Kind is FailureNone for passing records.
	Kind FailureKind `json:"kind" msgpack:"kind"`
	// Detail carries the codec error or the colliding coordinate.
	Detail string `json:"detail,omitempty" msgpack:"detail,omitempty"`
}

// Failed reports whether the record counts as a failure.
func (r Record) Failed() bool {
	return r.Kind != FailureNone
}

func (r Record) String() string {
	s := fmt.Sprintf("#%d (%d,%d) -> %d -> (%d,%d) %s",
		r.Index, r.Input.X, r.Input.Y, r.Encoded, r.Decoded.X, r.Decoded.Y, r.Kind)
	if r.Detail != "" {
		s += ": " + r.Detail
	}

	return s
}

// Run is the result of one verification. It is never modified after Run returns.
type Run struct {
	Depth       int    `json:"depth" msgpack:"depth"`
	Mode        Mode   `json:"mode" msgpack:"mode"`
	Seed        uint64 `json:"seed" msgpack:"seed"`
	SampleCount uint64 `json:"sample_count" msgpack:"sample_count"`
	// CollisionCheck reports whether keys were checked for injectivity.
	CollisionCheck bool `json:"collision_check" msgpack:"collision_check"`

	Total    uint64 `json:"total" msgpack:"total"`
	Failures uint64 `json:"failures" msgpack:"failures"`
	// FirstFailure is the failing record with the smallest index, nil on success.
	FirstFailure *Record `json:"first_failure,omitempty" msgpack:"first_failure,omitempty"`
	// FailureRecords holds the first failures in index order, up to the
	// configured limit.
	FailureRecords []Record `json:"failure_records,omitempty" msgpack:"failure_records,omitempty"`
	// Records holds every record when recording is enabled.
	Records []Record `json:"records,omitempty" msgpack:"records,omitempty"`
	// Fingerprint summarizes every record; equal runs have equal fingerprints.
	Fingerprint uint64 `json:"fingerprint" msgpack:"fingerprint"`
}

// Passed reports whether no failure was found.
func (r *Run) Passed() bool {
	return r.Failures == 0
}
