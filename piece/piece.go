// Package piece implements the falling piece: spawning, rotation, movement,
// gravity timing and locking into the board.
package piece

import (
	"image"
	"iter"
	"math/rand/v2"

	"github.com/plus3/ruzzle/playfield"
	"github.com/plus3/ruzzle/tetromino"
)

// Direction is a rotation request.
type Direction int8

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "cw"
	case CounterClockwise:
		return "ccw"
	}
	return "none"
}

// Piece is the active falling piece. Pos is the top-left corner of its 4x4
// box in board cells. Grid is always the kind's base grid turned Rotation times.
type Piece struct {
	Kind     tetromino.Kind
	Pos      image.Point
	Rotation uint8
	Active   bool
	Grid     tetromino.Grid
}

// Spawn activates a uniformly random playable kind at the origin.
// It reports whether the spawn position is free on b.
func (p *Piece) Spawn(r *rand.Rand, t *tetromino.Table, b *playfield.Board) bool {
	return p.SpawnKind(tetromino.Random(r), t, b)
}

// SpawnKind activates kind k at the origin with rotation 0.
func (p *Piece) SpawnKind(k tetromino.Kind, t *tetromino.Table, b *playfield.Board) bool {
	*p = Piece{
		Kind:   k,
		Active: true,
		Grid:   t.Shape(k),
	}
	return playfield.IsPlacementLegal(p.Pos, p.Grid, b)
}

// Reset deactivates the piece so the next frame spawns a new one.
func (p *Piece) Reset() {
	p.Active = false
}

// Rotate turns the piece one step in dir if the rotated grid fits at the
// current position. Rejected requests leave the piece unchanged.
func (p *Piece) Rotate(dir Direction, b *playfield.Board, t *tetromino.Table) bool {
	if !p.Active || dir == 0 {
		return false
	}
	target := uint8((int(p.Rotation) + 4 + int(dir)) % 4)
	grid := t.Rotated(p.Kind, int(target))
	if !playfield.IsPlacementLegal(p.Pos, grid, b) {
		return false
	}
	p.Rotation = target
	p.Grid = grid
	return true
}

// Move shifts the piece by (dx, dy) if the destination is legal.
func (p *Piece) Move(dx, dy int, b *playfield.Board) bool {
	if !p.Active || (dx == 0 && dy == 0) {
		return false
	}
	next := p.Pos.Add(image.Pt(dx, dy))
	if !playfield.IsPlacementLegal(next, p.Grid, b) {
		return false
	}
	p.Pos = next
	return true
}

// HardDrop moves the piece straight down until it rests and returns the
// number of rows it fell.
func (p *Piece) HardDrop(b *playfield.Board) int {
	rows := 0
	for p.Move(0, 1, b) {
		rows++
	}
	return rows
}

// Resting reports whether the piece cannot fall any further.
func (p *Piece) Resting(b *playfield.Board) bool {
	return p.Active && !playfield.IsPlacementLegal(p.Pos.Add(image.Pt(0, 1)), p.Grid, b)
}

// Lock writes the piece into b, clears completed rows and deactivates the
// piece. It returns the number of cleared rows.
func (p *Piece) Lock(b *playfield.Board) (int, error) {
	if err := b.Lock(p.Pos, p.Grid, p.Kind); err != nil {
		return 0, err
	}
	p.Reset()
	return b.ClearFullRows(), nil
}

// Cells yields the board coordinates covered by the piece.
func (p *Piece) Cells() iter.Seq[image.Point] {
	return func(yield func(image.Point) bool) {
		for c := range p.Grid.Cells() {
			if !yield(p.Pos.Add(c)) {
				return
			}
		}
	}
}
