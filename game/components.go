package game

import (
	"math/rand/v2"

	"github.com/plus3/ruzzle/ecs"
	"github.com/plus3/ruzzle/geometry"
	"github.com/plus3/ruzzle/piece"
	"github.com/plus3/ruzzle/playfield"
	"github.com/plus3/ruzzle/tetromino"
)

// Playfield is the singleton holding the board.
type Playfield struct {
	Board *playfield.Board
}

// ActivePiece is the singleton holding the falling piece.
type ActivePiece struct {
	piece.Piece
}

// Clock is the simulation time in seconds, as passed to Tick.
type Clock struct {
	Elapsed float64
}

// Shapes is the singleton holding the shape table.
type Shapes struct {
	Table *tetromino.Table
}

// Dice is the random source used for spawning. When Next is not None it is
// spawned instead of a random kind, once.
type Dice struct {
	Rand *rand.Rand
	Next tetromino.Kind
}


// Tally counts what happened since the simulation started.
type Tally struct {
	Spawns      int
	TopOuts     int
	Locks       int
	RowsCleared int
}

// Renderable marks an entity whose geometry is handed to the renderer.
type Renderable struct {
	Geo *geometry.GeoEntity
}

// BoardView marks the geometry whose primitives mirror the board and the
// active piece overlay.
type BoardView struct {
	Geo *geometry.GeoEntity
}

// Backdrop is a background quad entity.
type Backdrop struct {
	Bg *geometry.BgEntity
}

func newRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Renderable](registry)
	ecs.RegisterComponent[BoardView](registry)
	ecs.RegisterComponent[Backdrop](registry)
	return registry
}
