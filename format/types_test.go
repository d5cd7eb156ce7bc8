package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodingType_String(t *testing.T) {
	require.Equal(t, "Raw", TypeRaw.String())
	require.Equal(t, "Delta", TypeDelta.String())
	require.Equal(t, "Unknown", EncodingType(0).String())
}

func TestCompressionType_String(t *testing.T) {
	require.Equal(t, "None", CompressionNone.String())
	require.Equal(t, "Zstd", CompressionZstd.String())
	require.Equal(t, "S2", CompressionS2.String())
	require.Equal(t, "LZ4", CompressionLZ4.String())
	require.Equal(t, "Unknown", CompressionType(0xF).String())
}

func TestParseCompressionType(t *testing.T) {
	tests := []struct {
		in   string
		want CompressionType
		ok   bool
	}{
		{"", CompressionNone, true},
		{"none", CompressionNone, true},
		{"zstd", CompressionZstd, true},
		{"s2", CompressionS2, true},
		{"lz4", CompressionLZ4, true},
		{"gzip", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCompressionType(tt.in)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseEncodingType(t *testing.T) {
	got, ok := ParseEncodingType("raw")
	require.True(t, ok)
	require.Equal(t, TypeRaw, got)

	got, ok = ParseEncodingType("delta")
	require.True(t, ok)
	require.Equal(t, TypeDelta, got)

	_, ok = ParseEncodingType("gorilla")
	require.False(t, ok)
}
