package blob

import (
	"fmt"
	"iter"
	"slices"
	"sort"

	"github.com/arloliu/zcurve/encoding"
	"github.com/arloliu/zcurve/errs"
	"github.com/arloliu/zcurve/format"
	"github.com/arloliu/zcurve/morton"
	"github.com/arloliu/zcurve/section"
)

// KeyBlob is a decoded, read-only set of Morton keys of one depth.
//
// Raw blobs read keys straight from the payload; delta blobs are expanded
// once during decoding.
type KeyBlob struct {
	mc         morton.Codec
	flag       section.KeyFlag
	count      int
	keys       []morton.Key
	raw        []byte
	rawDecoder encoding.KeyRawDecoder
}

// Depth returns the bit depth the keys were encoded at.
func (b KeyBlob) Depth() int {
	return b.mc.Depth()
}

// Codec returns a Morton codec of the blob's depth.
func (b KeyBlob) Codec() morton.Codec {
	return b.mc
}

// Len returns the number of keys.
func (b KeyBlob) Len() int {
	return b.count
}

// IsSorted reports whether the keys are stored in ascending order.
func (b KeyBlob) IsSorted() bool {
	return b.flag.IsSorted()
}

// Encoding returns the key column encoding.
func (b KeyBlob) Encoding() format.EncodingType {
	return b.flag.EncodingType
}

// Compression returns the payload compression.
func (b KeyBlob) Compression() format.CompressionType {
	return b.flag.CompressionType
}

// Keys yields the keys in stored order.
func (b KeyBlob) Keys() iter.Seq[morton.Key] {
	if b.keys != nil || b.raw == nil {
		return slices.Values(b.keys)
	}

	return b.rawDecoder.All(b.raw, b.count)
}

// KeyAt returns the key at index i, or false when i is out of range.
func (b KeyBlob) KeyAt(i int) (morton.Key, bool) {
	if b.raw == nil {
		if i < 0 || i >= len(b.keys) {
			return 0, false
		}

		return b.keys[i], true
	}

	return b.rawDecoder.At(b.raw, i, b.count)
}

// Points yields every key together with its decoded coordinates.
func (b KeyBlob) Points() iter.Seq[morton.Triple] {
	return func(yield func(morton.Triple) bool) {
		for z := range b.Keys() {
			// Keys were range-checked during decoding.
			x, y, _ := b.mc.Decode(z)
			if !yield(morton.Triple{X: x, Y: y, Z: z}) {
				return
			}
		}
	}
}

// Contains reports whether the key of (x, y) is in the blob.
// Coordinates outside the blob's domain are never contained.
func (b KeyBlob) Contains(x, y uint64) bool {
	z, err := b.mc.Encode(x, y)
	if err != nil {
		return false
	}

	return b.ContainsKey(z)
}

// ContainsKey reports whether z is in the blob, by binary search on sorted
// blobs and by a linear scan otherwise.
func (b KeyBlob) ContainsKey(z morton.Key) bool {
	if !b.IsSorted() {
		for k := range b.Keys() {
			if k == z {
				return true
			}
		}

		return false
	}

	if b.raw == nil {
		_, found := slices.BinarySearch(b.keys, z)
		return found
	}

	i := sort.Search(b.count, func(i int) bool {
		k, _ := b.KeyAt(i)
		return k >= z
	})
	k, ok := b.KeyAt(i)

	return ok && k == z
}

func (b KeyBlob) validate() error {
	maxKey := b.mc.MaxKey()
	n := 0
	var prev morton.Key
	for z := range b.Keys() {
		if z > maxKey {
			return fmt.Errorf("%w: key %d exceeds depth %d", errs.ErrInvalidPayload, z, b.mc.Depth())
		}
		if n > 0 && b.IsSorted() && z < prev {
			return fmt.Errorf("%w: key %d after %d", errs.ErrUnsortedKeys, z, prev)
		}
		prev = z
		n++
	}
	if n != b.count {
		return fmt.Errorf("%w: decoded %d keys, header says %d", errs.ErrInvalidPayload, n, b.count)
	}

	return nil
}
