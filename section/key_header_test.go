package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zcurve/errs"
	"github.com/arloliu/zcurve/format"
)

func TestKeyFlag_Defaults(t *testing.T) {
	f := NewKeyFlag()

	require.Equal(t, uint16(MagicKeyV1Opt), f.GetMagicNumber())
	require.True(t, f.IsLittleEndian())
	require.False(t, f.IsSorted())
	require.Equal(t, format.TypeRaw, f.EncodingType)
	require.Equal(t, format.CompressionNone, f.CompressionType)
	require.NoError(t, f.Validate())
}

func TestKeyFlag_Bits(t *testing.T) {
	f := NewKeyFlag()

	f.SetSorted(true)
	f.WithBigEndian()
	require.True(t, f.IsSorted())
	require.True(t, f.IsBigEndian())
	require.Equal(t, uint16(MagicKeyV1Opt), f.GetMagicNumber())

	f.SetSorted(false)
	f.WithLittleEndian()
	require.False(t, f.IsSorted())
	require.True(t, f.IsLittleEndian())
}

func TestKeyFlag_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *KeyFlag)
	}{
		{"bad magic", func(f *KeyFlag) { f.Options = 0xEA10 }},
		{"reserved bit", func(f *KeyFlag) { f.Options |= 0x0004 }},
		{"unknown encoding", func(f *KeyFlag) { f.EncodingType = 0x7 }},
		{"zero compression", func(f *KeyFlag) { f.CompressionType = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewKeyFlag()
			tt.mutate(&f)
			require.ErrorIs(t, f.Validate(), errs.ErrInvalidHeaderFlags)
		})
	}
}

func TestKeyHeader_RoundTrip(t *testing.T) {
	for _, bigEndian := range []bool{false, true} {
		h := NewKeyHeader(16)
		h.Count = 12345
		h.PayloadSize = 999
		h.RawSize = 4096
		h.Checksum = 0xDEADBEEFCAFEBABE
		h.Flag.SetSorted(true)
		h.Flag.EncodingType = format.TypeDelta
		h.Flag.CompressionType = format.CompressionZstd
		if bigEndian {
			h.Flag.WithBigEndian()
		}

		data := h.Bytes()
		require.Len(t, data, HeaderSize)
		// The options word is little-endian regardless of the engine.
		require.Equal(t, byte(h.Flag.Options), data[0])

		got, err := ParseKeyHeader(data)
		require.NoError(t, err)
		require.Equal(t, *h, got)
	}
}

func TestKeyHeader_ParseErrors(t *testing.T) {
	valid := NewKeyHeader(8).Bytes()

	_, err := ParseKeyHeader(valid[:HeaderSize-1])
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)

	var h KeyHeader
	require.ErrorIs(t, h.Parse(append(valid, 0)), errs.ErrInvalidHeaderSize)

	reserved := append([]byte(nil), valid...)
	reserved[6] = 1
	_, err = ParseKeyHeader(reserved)
	require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)

	for _, depth := range []byte{0, 33} {
		bad := append([]byte(nil), valid...)
		bad[4] = depth
		_, err = ParseKeyHeader(bad)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
		require.ErrorIs(t, err, errs.ErrInvalidDepth)
	}

	magic := append([]byte(nil), valid...)
	magic[1] = 0xEA
	_, err = ParseKeyHeader(magic)
	require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
}

func TestKeyHeader_ParseIgnoresTrailingPayload(t *testing.T) {
	data := append(NewKeyHeader(32).Bytes(), 1, 2, 3)

	h, err := ParseKeyHeader(data)
	require.NoError(t, err)
	require.Equal(t, uint8(32), h.Depth)
}
