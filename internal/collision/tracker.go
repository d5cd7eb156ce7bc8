package collision

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/arloliu/zcurve/morton"
)

// Tracker detects keys produced by more than one coordinate.
//
// It keeps two compressed bitmaps: the keys seen so far and the coordinates
// that produced them. A coordinate seen again is a repeated draw and never a
// collision; a new coordinate whose key is already present is.
//
// Tracker is not safe for concurrent use. The verifier feeds it in sample
// order so that the first collision it reports is deterministic.
type Tracker struct {
	keys       *roaring64.Bitmap
	coords     *roaring64.Bitmap
	collisions uint64
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		keys:   roaring64.New(),
		coords: roaring64.New(),
	}
}

// Track records that p encoded to z and reports whether z had already been
// produced by a different coordinate.
func (t *Tracker) Track(p morton.Coordinate, z morton.Key) bool {
	if !t.coords.CheckedAdd(pack(p)) {
		// Repeated draw of the same coordinate.
		return false
	}

	if t.keys.CheckedAdd(z) {
		return false
	}

	t.collisions++

	return true
}

// Seen reports whether z has been tracked.
func (t *Tracker) Seen(z morton.Key) bool {
	return t.keys.Contains(z)
}

// Collisions returns the number of collisions detected.
func (t *Tracker) Collisions() uint64 {
	return t.collisions
}

// DistinctKeys returns the number of distinct keys tracked.
func (t *Tracker) DistinctKeys() uint64 {
	return t.keys.GetCardinality()
}

// DistinctCoordinates returns the number of distinct coordinates tracked.
func (t *Tracker) DistinctCoordinates() uint64 {
	return t.coords.GetCardinality()
}

// Reset clears all tracked state so the tracker can be reused.
func (t *Tracker) Reset() {
	t.keys.Clear()
	t.coords.Clear()
	t.collisions = 0
}

func pack(p morton.Coordinate) uint64 {
	return uint64(p.Y)<<32 | uint64(p.X)
}
