package blob

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zcurve/errs"
	"github.com/arloliu/zcurve/format"
	"github.com/arloliu/zcurve/morton"
	"github.com/arloliu/zcurve/section"
)

func encodePoints(t *testing.T, depth int, points []morton.Coordinate, opts ...KeyEncoderOption) []byte {
	t.Helper()

	enc, err := NewKeyEncoder(depth, opts...)
	require.NoError(t, err)
	for _, p := range points {
		require.NoError(t, enc.AddPoint(uint64(p.X), uint64(p.Y)))
	}
	require.Equal(t, len(points), enc.Len())

	data, err := enc.Finish()
	require.NoError(t, err)

	return data
}

func clusteredPoints(n int, depth int) []morton.Coordinate {
	rng := rand.New(rand.NewSource(3))
	limit := 1 << depth
	points := make([]morton.Coordinate, n)
	for i := range points {
		points[i] = morton.Coordinate{
			X: uint32(rng.Intn(min(limit, 512))), //nolint:gosec
			Y: uint32(rng.Intn(min(limit, 512))), //nolint:gosec
		}
	}

	return points
}

func TestKeyBlob_RoundTrip(t *testing.T) {
	points := clusteredPoints(2000, 16)
	mc := morton.MustNewCodec(16)

	want := make([]morton.Key, len(points))
	for i, p := range points {
		want[i], _ = mc.EncodeCoordinate(p)
	}
	sorted := slices.Clone(want)
	slices.Sort(sorted)

	encodings := []format.EncodingType{format.TypeRaw, format.TypeDelta}
	compressions := []format.CompressionType{
		format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4,
	}

	for _, enc := range encodings {
		for _, comp := range compressions {
			for _, big := range []bool{false, true} {
				name := enc.String() + "/" + comp.String()
				if big {
					name += "/big"
				}
				t.Run(name, func(t *testing.T) {
					opts := []KeyEncoderOption{WithKeyEncoding(enc), WithKeyCompression(comp)}
					if big {
						opts = append(opts, WithBigEndian())
					}
					data := encodePoints(t, 16, points, opts...)

					kb, err := DecodeKeyBlob(data)
					require.NoError(t, err)
					require.Equal(t, 16, kb.Depth())
					require.Equal(t, len(points), kb.Len())
					require.True(t, kb.IsSorted())
					require.Equal(t, enc, kb.Encoding())
					require.Equal(t, comp, kb.Compression())
					require.Equal(t, sorted, slices.Collect(kb.Keys()))

					for i := 0; i < kb.Len(); i += 97 {
						z, ok := kb.KeyAt(i)
						require.True(t, ok)
						require.Equal(t, sorted[i], z)
					}
					_, ok := kb.KeyAt(kb.Len())
					require.False(t, ok)

					for _, p := range points[:50] {
						require.True(t, kb.Contains(uint64(p.X), uint64(p.Y)))
					}
					require.False(t, kb.Contains(60000, 60000))
					require.False(t, kb.Contains(1<<16, 0), "out of domain")
				})
			}
		}
	}
}

func TestKeyBlob_Points(t *testing.T) {
	points := []morton.Coordinate{{X: 5, Y: 10}, {X: 0, Y: 0}, {X: 15, Y: 15}}
	data := encodePoints(t, 4, points, WithKeyEncoding(format.TypeRaw), WithSorted(false))

	kb, err := DecodeKeyBlob(data)
	require.NoError(t, err)
	require.False(t, kb.IsSorted())

	got := slices.Collect(kb.Points())
	require.Equal(t, []morton.Triple{
		{X: 5, Y: 10, Z: 153},
		{X: 0, Y: 0, Z: 0},
		{X: 15, Y: 15, Z: 255},
	}, got)

	require.True(t, kb.ContainsKey(153))
	require.False(t, kb.ContainsKey(154))
}

func TestKeyEncoder_UnsortedRawAscendingInput(t *testing.T) {
	enc, err := NewKeyEncoder(8, WithKeyEncoding(format.TypeRaw), WithSorted(false))
	require.NoError(t, err)
	for z := morton.Key(0); z < 10; z++ {
		require.NoError(t, enc.AddKey(z))
	}
	data, err := enc.Finish()
	require.NoError(t, err)

	kb, err := DecodeKeyBlob(data)
	require.NoError(t, err)
	require.True(t, kb.IsSorted(), "ascending input is marked sorted")
}

func TestKeyEncoder_UnsortedDeltaRejected(t *testing.T) {
	enc, err := NewKeyEncoder(8, WithKeyEncoding(format.TypeDelta), WithSorted(false))
	require.NoError(t, err)

	require.NoError(t, enc.AddKey(10))
	require.NoError(t, enc.AddKey(10))
	require.ErrorIs(t, enc.AddKey(9), errs.ErrUnsortedKeys)
	require.Equal(t, 2, enc.Len())
}

func TestKeyEncoder_Errors(t *testing.T) {
	_, err := NewKeyEncoder(0)
	require.ErrorIs(t, err, errs.ErrInvalidDepth)

	_, err = NewKeyEncoder(8, WithKeyEncoding(format.EncodingType(9)))
	require.ErrorIs(t, err, errs.ErrUnsupportedEncoding)

	_, err = NewKeyEncoder(8, WithKeyCompression(format.CompressionType(9)))
	require.ErrorIs(t, err, errs.ErrInvalidOption)

	enc, err := NewKeyEncoder(4)
	require.NoError(t, err)

	err = enc.AddPoint(16, 0)
	require.ErrorIs(t, err, errs.ErrOutOfDomain)
	require.ErrorIs(t, enc.AddKey(256), errs.ErrOutOfDomain)
	require.Zero(t, enc.Len())

	_, err = enc.Finish()
	require.NoError(t, err)

	_, err = enc.Finish()
	require.ErrorIs(t, err, errs.ErrEncoderFinished)
	require.ErrorIs(t, enc.AddKey(1), errs.ErrEncoderFinished)
	require.ErrorIs(t, enc.AddPoint(1, 1), errs.ErrEncoderFinished)
}

func TestKeyBlob_Empty(t *testing.T) {
	for _, enc := range []format.EncodingType{format.TypeRaw, format.TypeDelta} {
		data := encodePoints(t, 32, nil, WithKeyEncoding(enc))

		kb, err := DecodeKeyBlob(data)
		require.NoError(t, err)
		require.Zero(t, kb.Len())
		require.Empty(t, slices.Collect(kb.Keys()))
		require.False(t, kb.Contains(0, 0))
	}
}

func TestKeyDecoder_Corruption(t *testing.T) {
	points := clusteredPoints(100, 12)
	data := encodePoints(t, 12, points, WithKeyCompression(format.CompressionNone))

	d, err := NewKeyDecoder(data)
	require.NoError(t, err)
	require.Equal(t, uint64(100), d.Header().Count)

	_, err = NewKeyDecoder(data[:10])
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)

	_, err = NewKeyDecoder(data[:len(data)-1])
	require.ErrorIs(t, err, errs.ErrInvalidPayload)

	flipped := slices.Clone(data)
	flipped[section.PayloadOffset+3] ^= 0x40
	_, err = DecodeKeyBlob(flipped)
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)

	badMagic := slices.Clone(data)
	badMagic[1] = 0
	_, err = DecodeKeyBlob(badMagic)
	require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
}

func TestKeyBlob_DeltaSmallerThanRaw(t *testing.T) {
	points := clusteredPoints(5000, 20)

	raw := encodePoints(t, 20, points, WithKeyEncoding(format.TypeRaw), WithKeyCompression(format.CompressionNone))
	delta := encodePoints(t, 20, points, WithKeyEncoding(format.TypeDelta), WithKeyCompression(format.CompressionNone))

	require.Less(t, len(delta), len(raw)/2)
}

func BenchmarkKeyEncoder_Finish(b *testing.B) {
	points := clusteredPoints(10000, 16)

	b.ReportAllocs()
	for b.Loop() {
		enc, _ := NewKeyEncoder(16)
		for _, p := range points {
			_ = enc.AddPoint(uint64(p.X), uint64(p.Y))
		}
		_, _ = enc.Finish()
	}
}
