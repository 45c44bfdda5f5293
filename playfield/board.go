// Package playfield holds the board grid and the placement rules pieces are checked against.
package playfield

import (
	"errors"
	"fmt"
	"image"
	"iter"
	"strings"

	"github.com/plus3/ruzzle/tetromino"
)

const (
	DefaultCols = 10
	DefaultRows = 16
)

var (
	ErrBoardSize        = errors.New("invalid board dimensions")
	ErrIllegalPlacement = errors.New("illegal placement")
)

// Board is a row-major grid of piece kinds. Index i maps to
// (col, row) = (i mod Cols, i / Cols).
type Board struct {
	Cols  int
	Rows  int
	cells []tetromino.Kind
}

// New creates an empty board.
func New(cols, rows int) (*Board, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBoardSize, cols, rows)
	}
	return &Board{
		Cols:  cols,
		Rows:  rows,
		cells: make([]tetromino.Kind, cols*rows),
	}, nil
}

// NewDefault creates an empty 10x16 board.
func NewDefault() *Board {
	b, _ := New(DefaultCols, DefaultRows)
	return b
}

// Size returns the number of cells.
func (b *Board) Size() int {
	return len(b.cells)
}

func (b *Board) Index(col, row int) int {
	return row*b.Cols + col
}

// Position converts a cell index back to (col, row).
func (b *Board) Position(i int) image.Point {
	return image.Pt(i%b.Cols, i/b.Cols)
}

func (b *Board) InBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < b.Cols && row < b.Rows
}

// At returns the kind stored at (col, row), or None outside the board.
func (b *Board) At(col, row int) tetromino.Kind {
	if !b.InBounds(col, row) {
		return tetromino.None
	}
	return b.cells[b.Index(col, row)]
}

// Cell returns the kind stored at index i.
func (b *Board) Cell(i int) tetromino.Kind {
	return b.cells[i]
}

// Set stores k at (col, row). Out-of-bounds coordinates and invalid kinds
// are ignored and reported as false.
func (b *Board) Set(col, row int, k tetromino.Kind) bool {
	if !b.InBounds(col, row) || !k.Valid() {
		return false
	}
	b.cells[b.Index(col, row)] = k
	return true
}

// All yields every cell index with its kind.
func (b *Board) All() iter.Seq2[int, tetromino.Kind] {
	return func(yield func(int, tetromino.Kind) bool) {
		for i, k := range b.cells {
			if !yield(i, k) {
				return
			}
		}
	}
}

// Occupied counts non-empty cells.
func (b *Board) Occupied() int {
	n := 0
	for _, k := range b.cells {
		if k != tetromino.None {
			n++
		}
	}
	return n
}

func (b *Board) Clear() {
	clear(b.cells)
}

func (b *Board) Clone() *Board {
	out := &Board{Cols: b.Cols, Rows: b.Rows, cells: make([]tetromino.Kind, len(b.cells))}
	copy(out.cells, b.cells)
	return out
}

// IsPlacementLegal reports whether every solid cell of g, placed with its
// top-left corner at pos, lands inside the board on an empty cell.
func IsPlacementLegal(pos image.Point, g tetromino.Grid, b *Board) bool {
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if !g.IsSolid(c, r) {
				continue
			}
			col, row := pos.X+c, pos.Y+r
			if !b.InBounds(col, row) || b.cells[b.Index(col, row)] != tetromino.None {
				return false
			}
		}
	}
	return true
}

// Lock writes kind into every solid cell of g at pos.
// The board is left untouched when the placement is not legal.
func (b *Board) Lock(pos image.Point, g tetromino.Grid, kind tetromino.Kind) error {
	if kind == tetromino.None || !kind.Valid() {
		return fmt.Errorf("%w: cannot lock kind %v", ErrIllegalPlacement, kind)
	}
	if !IsPlacementLegal(pos, g, b) {
		return fmt.Errorf("%w: %v at %v", ErrIllegalPlacement, kind, pos)
	}
	for cell := range g.Cells() {
		b.cells[b.Index(pos.X+cell.X, pos.Y+cell.Y)] = kind
	}
	return nil
}

// ClearFullRows removes every completely filled row, shifting the rows above
// it down, and returns how many rows were removed.
func (b *Board) ClearFullRows() int {
	cleared := 0
	dst := b.Rows - 1
	for src := b.Rows - 1; src >= 0; src-- {
		if b.rowFull(src) {
			cleared++
			continue
		}
		if dst != src {
			copy(b.row(dst), b.row(src))
		}
		dst--
	}
	for ; dst >= 0; dst-- {
		clear(b.row(dst))
	}
	return cleared
}

func (b *Board) row(r int) []tetromino.Kind {
	return b.cells[r*b.Cols : (r+1)*b.Cols]
}

func (b *Board) rowFull(r int) bool {
	for _, k := range b.row(r) {
		if k == tetromino.None {
			return false
		}
	}
	return true
}

// String renders the board one row per line using kind names, '.' for empty.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.Rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for _, k := range b.row(r) {
			if k == tetromino.None {
				sb.WriteByte('.')
			} else {
				sb.WriteString(k.String())
			}
		}
	}
	return sb.String()
}
