package encoding

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zcurve/endian"
	"github.com/arloliu/zcurve/morton"
)

func TestKeyRawEncoder_RoundTrip(t *testing.T) {
	keys := []morton.Key{0, 1, 153, 1 << 40, ^morton.Key(0), 42}

	engines := map[string]endian.EndianEngine{
		"little": endian.GetLittleEndianEngine(),
		"big":    endian.GetBigEndianEngine(),
	}
	for name, engine := range engines {
		t.Run(name, func(t *testing.T) {
			enc := NewKeyRawEncoder(engine)
			defer enc.Finish()

			enc.Write(keys[0])
			enc.WriteSlice(keys[1:])
			require.Equal(t, len(keys), enc.Len())
			require.Equal(t, 8*len(keys), enc.Size())

			dec := NewKeyRawDecoder(engine)
			require.Equal(t, keys, slices.Collect(dec.All(enc.Bytes(), enc.Len())))

			for i, want := range keys {
				got, ok := dec.At(enc.Bytes(), i, enc.Len())
				require.True(t, ok)
				require.Equal(t, want, got)
			}
		})
	}
}

func TestKeyRawEncoder_ByteOrder(t *testing.T) {
	enc := NewKeyRawEncoder(endian.GetBigEndianEngine())
	defer enc.Finish()

	enc.Write(0x0102030405060708)
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, enc.Bytes())
}

func TestKeyRawDecoder_Bounds(t *testing.T) {
	dec := NewKeyRawDecoder(endian.GetLittleEndianEngine())
	data := make([]byte, 16)

	_, ok := dec.At(data, -1, 2)
	require.False(t, ok)
	_, ok = dec.At(data, 2, 2)
	require.False(t, ok)
	_, ok = dec.At(data, 2, 3)
	require.False(t, ok, "short data")

	require.Empty(t, slices.Collect(dec.All(data, 3)))
	require.Empty(t, slices.Collect(dec.All(nil, 0)))
}

func TestKeyRawEncoder_Finish(t *testing.T) {
	enc := NewKeyRawEncoder(endian.GetLittleEndianEngine())
	enc.Write(1)
	enc.Finish()

	require.Zero(t, enc.Len())
	require.Panics(t, func() { enc.Write(2) })
	require.Panics(t, func() { enc.WriteSlice([]morton.Key{2}) })
	require.Panics(t, func() { _ = enc.Bytes() })
	require.Panics(t, func() { _ = enc.Size() })
	require.NotPanics(t, enc.Finish)
}

func BenchmarkKeyRawEncoder_WriteSlice(b *testing.B) {
	keys := make([]morton.Key, 4096)
	for i := range keys {
		keys[i] = morton.Key(i) * 0x9E3779B97F4A7C15
	}

	b.ReportAllocs()
	for b.Loop() {
		enc := NewKeyRawEncoder(endian.GetLittleEndianEngine())
		enc.WriteSlice(keys)
		enc.Finish()
	}
}
