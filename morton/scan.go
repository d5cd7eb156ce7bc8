package morton

import (
	"fmt"
	"iter"

	"github.com/arloliu/zcurve/errs"
)

// Scan yields every point of the width×height rectangle anchored at the origin,
// in row-major order (y outer, x inner), together with its key.
//
// The rectangle is clipped to the codec's domain, so a codec of depth 4 never
// yields more than 16×16 points. This is the feed for plotting the curve:
// consumers receive (x, y, z) triples and decide how to render them.
//
// An unusable codec yields nothing.
func (c Codec) Scan(width, height uint32) iter.Seq[Triple] {
	return func(yield func(Triple) bool) {
		if c.valid() != nil {
			return
		}

		w := min(uint64(width), c.coordBound())
		h := min(uint64(height), c.coordBound())

		for y := uint64(0); y < h; y++ {
			sy := Spread(uint32(y)) << 1 //nolint:gosec
			for x := uint64(0); x < w; x++ {
				t := Triple{X: uint32(x), Y: uint32(y), Z: Spread(uint32(x)) | sy} //nolint:gosec
				if !yield(t) {
					return
				}
			}
		}
	}
}

// MaxGridCells bounds the number of keys Grid materializes.
const MaxGridCells = 1 << 24

// Grid returns the dense key matrix Z[y][x] for the width×height rectangle at the origin.
//
// Unlike Scan, Grid does not clip: a rectangle that leaves the domain or
// holds more than MaxGridCells keys fails with errs.ErrInvalidGridSize.
// A zero width or height yields an empty grid.
func (c Codec) Grid(width, height uint32) ([][]Key, error) {
	if err := c.valid(); err != nil {
		return nil, err
	}

	bound := c.coordBound()
	if uint64(width) > bound || uint64(height) > bound {
		return nil, fmt.Errorf("%w: %dx%d at depth %d (max %d)", errs.ErrInvalidGridSize, width, height, c.depth, bound)
	}

	if cells := uint64(width) * uint64(height); cells > MaxGridCells {
		return nil, fmt.Errorf("%w: %dx%d is %d cells (max %d)", errs.ErrInvalidGridSize, width, height, cells, MaxGridCells)
	}
	if width == 0 || height == 0 {
		return [][]Key{}, nil
	}

	grid := make([][]Key, height)
	cells := make([]Key, int(width)*int(height))
	for y := range grid {
		grid[y] = cells[y*int(width) : (y+1)*int(width) : (y+1)*int(width)]
	}

	for t := range c.Scan(width, height) {
		grid[t.Y][t.X] = t.Z
	}

	return grid, nil
}
