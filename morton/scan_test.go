package morton

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zcurve/errs"
)

func TestCodec_Scan_RowMajor(t *testing.T) {
	c := MustNewCodec(4)

	var got []Triple
	for tr := range c.Scan(3, 2) {
		got = append(got, tr)
	}

	require.Equal(t, []Triple{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 1},
		{X: 2, Y: 0, Z: 4},
		{X: 0, Y: 1, Z: 2},
		{X: 1, Y: 1, Z: 3},
		{X: 2, Y: 1, Z: 6},
	}, got)
}

func TestCodec_Scan_MatchesEncode(t *testing.T) {
	c := MustNewCodec(16)
	for tr := range c.Scan(16, 16) {
		z, err := c.Encode(uint64(tr.X), uint64(tr.Y))
		require.NoError(t, err)
		require.Equal(t, z, tr.Z)
	}
}

func TestCodec_Scan_ClippedToDomain(t *testing.T) {
	c := MustNewCodec(2)

	count := 0
	for tr := range c.Scan(100, 100) {
		require.Less(t, tr.X, uint32(4))
		require.Less(t, tr.Y, uint32(4))
		count++
	}
	require.Equal(t, 16, count)
}

func TestCodec_Scan_EarlyBreak(t *testing.T) {
	c := MustNewCodec(8)

	count := 0
	for range c.Scan(256, 256) {
		count++
		if count == 10 {
			break
		}
	}
	require.Equal(t, 10, count)
}

func TestCodec_Grid(t *testing.T) {
	c := MustNewCodec(4)

	grid, err := c.Grid(16, 16)
	require.NoError(t, err)
	require.Len(t, grid, 16)

	seen := make(map[Key]bool, 256)
	for y, row := range grid {
		require.Len(t, row, 16)
		for x, z := range row {
			require.Equal(t, referenceEncode(uint32(x), uint32(y), 4), z) //nolint:gosec
			seen[z] = true
		}
	}
	// The 16x16 grid at depth 4 covers every key exactly once.
	require.Len(t, seen, 256)
	require.Equal(t, Key(153), grid[10][5])

	_, err = c.Grid(17, 16)
	require.ErrorIs(t, err, errs.ErrInvalidGridSize)

	_, err = c.Grid(16, 17)
	require.ErrorIs(t, err, errs.ErrInvalidGridSize)

	for _, size := range [][2]uint32{{0, 0}, {0, 4}, {4, 0}} {
		empty, err := c.Grid(size[0], size[1])
		require.NoError(t, err)
		require.Empty(t, empty, "%dx%d", size[0], size[1])
	}
}

func TestCodec_Grid_TooManyCells(t *testing.T) {
	c := MustNewCodec(32)

	tests := []struct {
		name          string
		width, height uint32
		wantErr       bool
	}{
		{"full square", ^uint32(0), ^uint32(0), true},
		{"one cell over", MaxGridCells + 1, 1, true},
		{"wide strip", 1 << 16, 1<<8 + 1, true},
		{"at limit", 1 << 12, 1 << 12, false},
		{"single row", 1 << 10, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var grid [][]Key
			var err error
			require.NotPanics(t, func() { grid, err = c.Grid(tt.width, tt.height) })
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrInvalidGridSize)
				require.Nil(t, grid)
				return
			}
			require.NoError(t, err)
			require.Len(t, grid, int(tt.height))
			require.Len(t, grid[0], int(tt.width))
		})
	}
}
