package tetromino

import (
	"errors"
	"fmt"
	"image"
	"iter"
	"strings"
)

// ErrGridSize is returned when a grid literal is not 3x3 or 4x4.
var ErrGridSize = errors.New("grid must be 3x3 or 4x4")

// Size is the side length of a shape grid.
type Size uint8

const (
	Size3 Size = 3
	Size4 Size = 4
)

// Grid is an immutable square occupancy matrix of side 3 or 4.
// Cells outside the active Size are always empty, so callers can walk
// every grid as a 4x4 box.
type Grid struct {
	Size  Size
	cells [4][4]bool
}

// ParseGrid builds a grid from row literals. 'X' and '#' mark solid cells,
// anything else is empty.
func ParseGrid(rows ...string) (Grid, error) {
	n := len(rows)
	if n != int(Size3) && n != int(Size4) {
		return Grid{}, fmt.Errorf("%w: got %d rows", ErrGridSize, n)
	}

	g := Grid{Size: Size(n)}
	for r, row := range rows {
		if len(row) != n {
			return Grid{}, fmt.Errorf("%w: row %d has %d columns", ErrGridSize, r, len(row))
		}
		for c := 0; c < n; c++ {
			g.cells[r][c] = row[c] == 'X' || row[c] == '#'
		}
	}
	return g, nil
}

// MustParseGrid is ParseGrid for literals known to be valid.
func MustParseGrid(rows ...string) Grid {
	g, err := ParseGrid(rows...)
	if err != nil {
		panic(err)
	}
	return g
}

// IsSolid reports whether the cell at (col, row) is occupied.
// Coordinates outside the grid report false.
func (g Grid) IsSolid(col, row int) bool {
	n := int(g.Size)
	if col < 0 || row < 0 || col >= n || row >= n {
		return false
	}
	return g.cells[row][col]
}

// Cells yields the local (col, row) coordinate of every solid cell in row-major order.
func (g Grid) Cells() iter.Seq[image.Point] {
	return func(yield func(image.Point) bool) {
		for r := 0; r < int(g.Size); r++ {
			for c := 0; c < int(g.Size); c++ {
				if g.cells[r][c] && !yield(image.Pt(c, r)) {
					return
				}
			}
		}
	}
}

// Count returns the number of solid cells.
func (g Grid) Count() int {
	n := 0
	for range g.Cells() {
		n++
	}
	return n
}

// Rotate returns g turned clockwise steps times. Steps are taken modulo 4,
// so negative values rotate counter-clockwise.
func Rotate(g Grid, steps int) Grid {
	steps = ((steps % 4) + 4) % 4
	out := g
	for ; steps > 0; steps-- {
		out = rotateOnce(out)
	}
	return out
}

func rotateOnce(g Grid) Grid {
	n := int(g.Size)
	out := Grid{Size: g.Size}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			out.cells[r][c] = g.cells[n-1-c][r]
		}
	}
	return out
}

func (g Grid) String() string {
	var b strings.Builder
	for r := 0; r < int(g.Size); r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := 0; c < int(g.Size); c++ {
			if g.cells[r][c] {
				b.WriteByte('X')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}
