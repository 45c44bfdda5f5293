// Package animator writes board and piece state into per-instance primitives.
package animator

import (
	"math"

	"github.com/plus3/ruzzle/gpu"
	"github.com/plus3/ruzzle/piece"
	"github.com/plus3/ruzzle/playfield"
	"github.com/plus3/ruzzle/tetromino"
)

// OverlayCells is the number of primitives reserved for the active piece.
const OverlayCells = 16

// PieceStrokeWidth is the outline width of active piece cells.
const PieceStrokeWidth = 0.3

// Hidden is the colour of overlay cells that are not part of the piece.
var Hidden = [4]float32{1, 0, 1, 0}

// Layout places cells in world space.
type Layout struct {
	CellSize    float32
	Scale       float32
	StrokeWidth float32
}

// Shimmer is the brightness of an empty cell's outline at time t: the product
// of a row wave and a column wave sweeping the board.
func Shimmer(col, row, cols, rows int, t float64) float32 {
	fr, fc := float64(rows), float64(cols)
	wr := math.Abs((float64(row) - math.Abs(math.Sin(t*0.2))*fr) / fr)
	wc := math.Abs((float64(col) - math.Abs(math.Sin(t*0.5))*fc) / fc)
	return float32(wr * wc)
}

// Board writes one primitive per board cell into prims[0:b.Size()].
// Cells beyond len(prims) are skipped.
func Board(prims []gpu.Primitive, b *playfield.Board, table *tetromino.Table, t float64, l Layout) {
	for i, kind := range b.All() {
		if i >= len(prims) {
			return
		}
		pos := b.Position(i)
		p := &prims[i]

		p.Color = table.Color(kind)
		p.Translate = [2]float32{float32(pos.X) * l.CellSize, float32(pos.Y) * l.CellSize}
		p.Scale = l.Scale
		p.Width = l.StrokeWidth

		var w float32
		if kind == tetromino.None {
			p.ZIndex = 1
			w = Shimmer(pos.X, pos.Y, b.Cols, b.Rows, t)
		} else {
			p.ZIndex = int32(i + 1)
		}
		p.StrokeColor = [4]float32{w, w, w, 1}
	}
}

// Overlay writes the 4x4 box of the active piece into prims[base:base+16].
// Solid cells take the piece colour and sit above every board cell.
func Overlay(prims []gpu.Primitive, base int, pc *piece.Piece, table *tetromino.Table, l Layout) {
	color := table.Color(pc.Kind)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			idx := base + r*4 + c
			if idx < 0 || idx >= len(prims) {
				continue
			}
			p := &prims[idx]
			p.Translate = [2]float32{
				float32(pc.Pos.X+c) * l.CellSize,
				float32(pc.Pos.Y+r) * l.CellSize,
			}
			p.Scale = l.Scale

			if pc.Active && pc.Grid.IsSolid(c, r) {
				p.Color = color
				p.StrokeColor = color
				p.Width = PieceStrokeWidth
				p.ZIndex = int32(base)
				continue
			}
			p.Color = Hidden
			p.StrokeColor = Hidden
			p.Width = 0
			p.ZIndex = 0
		}
	}
}
