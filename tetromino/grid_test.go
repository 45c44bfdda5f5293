package tetromino_test

import (
	"image"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/plus3/ruzzle/tetromino"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGrid(t *testing.T) {
	t.Run("3x3", func(t *testing.T) {
		g, err := tetromino.ParseGrid("...", ".X.", "XXX")
		require.NoError(t, err)
		assert.Equal(t, tetromino.Size3, g.Size)
		assert.True(t, g.IsSolid(1, 1))
		assert.False(t, g.IsSolid(0, 0))
		assert.Equal(t, 4, g.Count())
	})

	t.Run("hash marks solid", func(t *testing.T) {
		g, err := tetromino.ParseGrid("#...", "....", "....", "...#")
		require.NoError(t, err)
		assert.True(t, g.IsSolid(0, 0))
		assert.True(t, g.IsSolid(3, 3))
	})

	t.Run("wrong row count", func(t *testing.T) {
		_, err := tetromino.ParseGrid("..", "..")
		assert.ErrorIs(t, err, tetromino.ErrGridSize)
	})

	t.Run("ragged rows", func(t *testing.T) {
		_, err := tetromino.ParseGrid("...", "....", "...")
		assert.ErrorIs(t, err, tetromino.ErrGridSize)
	})

	t.Run("must parse panics", func(t *testing.T) {
		assert.Panics(t, func() { tetromino.MustParseGrid("X") })
	})
}

func TestIsSolidOutOfRange(t *testing.T) {
	g := tetromino.MustParseGrid("XXX", "XXX", "XXX")

	for _, p := range []image.Point{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {3, 3}} {
		assert.False(t, g.IsSolid(p.X, p.Y), "cell %v", p)
	}
}

func TestRotate(t *testing.T) {
	table := tetromino.NewTable()

	t.Run("three by three corner permutation", func(t *testing.T) {
		g := tetromino.MustParseGrid(
			"XX.",
			"...",
			"..X",
		)
		want := tetromino.MustParseGrid(
			"..X",
			"..X",
			"X..",
		)
		assert.Equal(t, want, tetromino.Rotate(g, 1))
	})

	t.Run("four by four", func(t *testing.T) {
		got := tetromino.Rotate(table.Shape(tetromino.I), 1)
		want := tetromino.MustParseGrid(
			"..X.",
			"..X.",
			"..X.",
			"..X.",
		)
		assert.Equal(t, want, got)
	})

	t.Run("zero steps is identity", func(t *testing.T) {
		for k := tetromino.Kind(0); k < tetromino.Count; k++ {
			assert.Equal(t, table.Shape(k), tetromino.Rotate(table.Shape(k), 0), k.String())
		}
	})

	t.Run("four steps is identity", func(t *testing.T) {
		for k := tetromino.Kind(0); k < tetromino.Count; k++ {
			assert.Equal(t, table.Shape(k), tetromino.Rotate(table.Shape(k), 4), k.String())
		}
	})

	t.Run("composition", func(t *testing.T) {
		r := rand.New(rand.NewPCG(1, 2))
		for range 200 {
			k := tetromino.Random(r)
			a, b := r.IntN(9)-4, r.IntN(9)-4
			g := table.Shape(k)
			assert.Equal(t, tetromino.Rotate(g, a+b), tetromino.Rotate(tetromino.Rotate(g, a), b))
		}
	})

	t.Run("negative steps rotate counter-clockwise", func(t *testing.T) {
		g := table.Shape(tetromino.T)
		assert.Equal(t, tetromino.Rotate(g, 3), tetromino.Rotate(g, -1))
	})

	t.Run("preserves cell count and size", func(t *testing.T) {
		for k := tetromino.Kind(1); k < tetromino.Count; k++ {
			g := table.Shape(k)
			for s := range 4 {
				rotated := tetromino.Rotate(g, s)
				assert.Equal(t, g.Size, rotated.Size)
				assert.Equal(t, 4, rotated.Count())
			}
		}
	})
}

func TestCells(t *testing.T) {
	g := tetromino.MustParseGrid("...", ".X.", "XXX")
	got := slices.Collect(g.Cells())
	assert.Equal(t, []image.Point{{1, 1}, {0, 2}, {1, 2}, {2, 2}}, got)
}

func TestGridString(t *testing.T) {
	g := tetromino.MustParseGrid("...", ".XX", "XX.")
	assert.Equal(t, "...\n.XX\nXX.", g.String())
}
