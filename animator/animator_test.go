package animator_test

import (
	"image"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/plus3/ruzzle/animator"
	"github.com/plus3/ruzzle/gpu"
	"github.com/plus3/ruzzle/piece"
	"github.com/plus3/ruzzle/playfield"
	"github.com/plus3/ruzzle/tetromino"
	"github.com/stretchr/testify/assert"
)

var layout = animator.Layout{CellSize: 8, Scale: 0.8, StrokeWidth: 1}

func newPrims() []gpu.Primitive {
	prims := make([]gpu.Primitive, gpu.PrimBufferLen)
	for i := range prims {
		prims[i] = gpu.NewPrimitive(0.8)
	}
	return prims
}

func TestShimmer(t *testing.T) {
	t.Run("zero at time zero origin row and column", func(t *testing.T) {
		assert.Zero(t, animator.Shimmer(0, 0, 10, 16, 0))
	})

	t.Run("product of waves", func(t *testing.T) {
		tm := 1.3
		wr := math.Abs((5 - math.Abs(math.Sin(tm*0.2))*16) / 16)
		wc := math.Abs((7 - math.Abs(math.Sin(tm*0.5))*10) / 10)
		assert.InDelta(t, wr*wc, animator.Shimmer(7, 5, 10, 16, tm), 1e-6)
	})

	t.Run("bounded", func(t *testing.T) {
		for tm := 0.0; tm < 30; tm += 0.7 {
			for r := 0; r < 16; r++ {
				for c := 0; c < 10; c++ {
					w := animator.Shimmer(c, r, 10, 16, tm)
					assert.GreaterOrEqual(t, w, float32(0))
					assert.LessOrEqual(t, w, float32(1))
				}
			}
		}
	})
}

func TestBoardMatchesCells(t *testing.T) {
	table := tetromino.NewTable()
	r := rand.New(rand.NewPCG(11, 12))

	for round := range 50 {
		b := playfield.NewDefault()
		for i := range b.Size() {
			if r.IntN(3) > 0 {
				pos := b.Position(i)
				b.Set(pos.X, pos.Y, tetromino.Kind(r.IntN(tetromino.Count)))
			}
		}
		tm := r.Float64() * 100

		prims := newPrims()
		animator.Board(prims, b, table, tm, layout)

		for i, kind := range b.All() {
			p := prims[i]
			pos := b.Position(i)
			if !assert.Equal(t, table.Color(kind), p.Color, "round %d cell %v", round, pos) {
				return
			}
			if kind != tetromino.None {
				assert.Equal(t, [4]float32{0, 0, 0, 1}, p.StrokeColor, "occupied cell %v has no shimmer", pos)
				continue
			}
			w := animator.Shimmer(pos.X, pos.Y, b.Cols, b.Rows, tm)
			assert.Equal(t, [4]float32{w, w, w, 1}, p.StrokeColor, "empty cell %v", pos)
		}
		for i := b.Size(); i < len(prims); i++ {
			assert.Equal(t, gpu.NewPrimitive(0.8), prims[i], "primitive %d beyond the board is untouched", i)
		}
	}
}

func TestBoard(t *testing.T) {
	table := tetromino.NewTable()
	b := playfield.NewDefault()
	b.Set(0, 0, tetromino.I)
	b.Set(3, 2, tetromino.T)

	prims := newPrims()
	animator.Board(prims, b, table, 2.5, layout)

	t.Run("occupied cells", func(t *testing.T) {
		assert.Equal(t, table.Color(tetromino.I), prims[0].Color)
		assert.Equal(t, [4]float32{0, 0, 0, 1}, prims[0].StrokeColor)
		assert.Equal(t, int32(1), prims[0].ZIndex)

		i := b.Index(3, 2)
		assert.Equal(t, table.Color(tetromino.T), prims[i].Color)
		assert.Equal(t, int32(i+1), prims[i].ZIndex)
		assert.Equal(t, [2]float32{24, 16}, prims[i].Translate)
		assert.Equal(t, [4]float32{0, 0, 0, 1}, prims[i].StrokeColor)
	})

	t.Run("empty cells shimmer", func(t *testing.T) {
		i := b.Index(7, 9)
		w := animator.Shimmer(7, 9, 10, 16, 2.5)
		assert.Equal(t, [4]float32{0, 0, 0, 0}, prims[i].Color)
		assert.Equal(t, [4]float32{w, w, w, 1}, prims[i].StrokeColor)
		assert.Equal(t, int32(1), prims[i].ZIndex)
		assert.Equal(t, [2]float32{56, 72}, prims[i].Translate)
	})

	t.Run("overlay range untouched", func(t *testing.T) {
		assert.Equal(t, gpu.NewPrimitive(0.8), prims[b.Size()])
	})

	t.Run("short buffer is safe", func(t *testing.T) {
		short := make([]gpu.Primitive, 5)
		assert.NotPanics(t, func() { animator.Board(short, b, table, 0, layout) })
		assert.Equal(t, table.Color(tetromino.I), short[0].Color)
	})
}

func TestOverlay(t *testing.T) {
	table := tetromino.NewTable()
	b := playfield.NewDefault()
	base := b.Size()

	t.Run("solid cells take the piece colour", func(t *testing.T) {
		var p piece.Piece
		p.SpawnKind(tetromino.T, table, b)
		p.Pos = image.Pt(3, 2)

		prims := newPrims()
		animator.Overlay(prims, base, &p, table, layout)

		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				prim := prims[base+r*4+c]
				assert.Equal(t, [2]float32{float32(3+c) * 8, float32(2+r) * 8}, prim.Translate)
				assert.Equal(t, float32(0.8), prim.Scale)
				if p.Grid.IsSolid(c, r) {
					assert.Equal(t, table.Color(tetromino.T), prim.Color)
					assert.Equal(t, table.Color(tetromino.T), prim.StrokeColor)
					assert.Equal(t, float32(animator.PieceStrokeWidth), prim.Width)
					assert.Equal(t, int32(base), prim.ZIndex)
				} else {
					assert.Equal(t, animator.Hidden, prim.Color)
				}
			}
		}
	})

	t.Run("inactive piece is hidden", func(t *testing.T) {
		var p piece.Piece
		p.SpawnKind(tetromino.O, table, b)
		p.Reset()

		prims := newPrims()
		animator.Overlay(prims, base, &p, table, layout)
		for i := base; i < base+animator.OverlayCells; i++ {
			assert.Equal(t, animator.Hidden, prims[i].Color)
		}
	})

	t.Run("out of range base is safe", func(t *testing.T) {
		var p piece.Piece
		p.SpawnKind(tetromino.I, table, b)
		prims := newPrims()
		assert.NotPanics(t, func() { animator.Overlay(prims, gpu.PrimBufferLen-4, &p, table, layout) })
	})
}

func BenchmarkBoard(b *testing.B) {
	table := tetromino.NewTable()
	board := playfield.NewDefault()
	playfield.Showcase(board, table)
	prims := newPrims()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		animator.Board(prims, board, table, float64(i)*0.016, layout)
	}
}
