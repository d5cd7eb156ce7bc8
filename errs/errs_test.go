package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDomainError(t *testing.T) {
	err := &DomainError{Field: "x", Value: 16, Bound: 16, Depth: 4}

	require.Equal(t, "x=16 out of domain [0, 16) at depth 4", err.Error())
	require.ErrorIs(t, err, ErrOutOfDomain)
	require.True(t, IsOutOfDomain(err))
	require.False(t, IsConfiguration(err))

	wrapped := fmt.Errorf("encode: %w", err)
	var de *DomainError
	require.ErrorAs(t, wrapped, &de)
	require.Equal(t, "x", de.Field)
	require.True(t, IsOutOfDomain(wrapped))
}

func TestConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"invalid depth", ErrInvalidDepth},
		{"depth mismatch", ErrDepthMismatch},
		{"invalid mode", ErrInvalidMode},
		{"invalid option", ErrInvalidOption},
		{"exhaustive too large", ErrExhaustiveTooLarge},
		{"invalid grid", ErrInvalidGridSize},
		{"nil codec", ErrNilCodec},
		{"unsupported encoding", ErrUnsupportedEncoding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.err, ErrConfiguration)
			require.True(t, IsConfiguration(fmt.Errorf("wrapped: %w", tt.err)))
			require.False(t, IsOutOfDomain(tt.err))
		})
	}
}

func TestBlobErrorsAreDistinct(t *testing.T) {
	all := []error{
		ErrInvalidHeaderSize, ErrInvalidHeaderFlags, ErrInvalidPayload,
		ErrChecksumMismatch, ErrUnsortedKeys, ErrTooManyKeys, ErrEncoderFinished,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j {
				require.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}
