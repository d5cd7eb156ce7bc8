package encoding

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zcurve/morton"
)

func TestKeyDeltaEncoder_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		keys []morton.Key
	}{
		{"single", []morton.Key{153}},
		{"consecutive", []morton.Key{10, 11, 12, 13, 14}},
		{"duplicates", []morton.Key{5, 5, 5, 9}},
		{"wide", []morton.Key{0, 1 << 20, 1 << 40, ^morton.Key(0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := NewKeyDeltaEncoder()
			defer enc.Finish()

			enc.WriteSlice(tt.keys)
			require.Equal(t, len(tt.keys), enc.Len())

			dec := NewKeyDeltaDecoder()
			require.Equal(t, tt.keys, slices.Collect(dec.All(enc.Bytes(), enc.Len())))

			for i, want := range tt.keys {
				got, ok := dec.At(enc.Bytes(), i, enc.Len())
				require.True(t, ok)
				require.Equal(t, want, got)
			}
		})
	}
}

func TestKeyDeltaEncoder_Compact(t *testing.T) {
	enc := NewKeyDeltaEncoder()
	defer enc.Finish()

	for z := morton.Key(1000); z < 2000; z++ {
		enc.Write(z)
	}
	// 2-byte first key, then one byte per unit delta.
	require.Equal(t, 2+999, enc.Size())
}

func TestKeyDeltaEncoder_RejectsDescending(t *testing.T) {
	enc := NewKeyDeltaEncoder()
	defer enc.Finish()

	enc.Write(10)
	require.Panics(t, func() { enc.Write(9) })
}

func TestKeyDeltaEncoder_Reset(t *testing.T) {
	enc := NewKeyDeltaEncoder()
	defer enc.Finish()

	enc.Write(100)
	enc.Reset()
	require.NotPanics(t, func() { enc.Write(7) })
	require.Equal(t, 2, enc.Len())
}

func TestKeyDeltaDecoder_Malformed(t *testing.T) {
	dec := NewKeyDeltaDecoder()

	// A continuation byte with nothing after it.
	require.Empty(t, slices.Collect(dec.All([]byte{0x80}, 1)))

	// Fewer values than announced.
	got := slices.Collect(dec.All([]byte{0x01, 0x02}, 5))
	require.Equal(t, []morton.Key{1, 3}, got)

	_, ok := dec.At([]byte{0x01, 0x02}, 4, 5)
	require.False(t, ok)
	_, ok = dec.At([]byte{0x01}, -1, 1)
	require.False(t, ok)
}

func TestKeyDeltaEncoder_Finish(t *testing.T) {
	enc := NewKeyDeltaEncoder()
	enc.Finish()

	require.Panics(t, func() { enc.Write(1) })
	require.Panics(t, func() { _ = enc.Bytes() })
}

func BenchmarkKeyDeltaDecoder_All(b *testing.B) {
	enc := NewKeyDeltaEncoder()
	defer enc.Finish()
	for z := morton.Key(0); z < 4096*3; z += 3 {
		enc.Write(z)
	}
	data := enc.Bytes()
	dec := NewKeyDeltaDecoder()

	b.ReportAllocs()
	for b.Loop() {
		for range dec.All(data, 4096) {
		}
	}
}
