package game

import (
	"github.com/plus3/ruzzle/animator"
	"github.com/plus3/ruzzle/ecs"
	"github.com/plus3/ruzzle/logx"
	"github.com/plus3/ruzzle/piece"
	"github.com/plus3/ruzzle/playfield"
	"github.com/plus3/ruzzle/scene"
	"github.com/plus3/ruzzle/tetromino"
)

// SpawnSystem activates a new piece whenever none is falling. A spawn that
// collides with the stack clears the board.
type SpawnSystem struct {
	Piece  ecs.Singleton[ActivePiece]
	Field  ecs.Singleton[Playfield]
	Shapes ecs.Singleton[Shapes]
	Dice   ecs.Singleton[Dice]
	Scene  ecs.Singleton[scene.Params]
	Tally  ecs.Singleton[Tally]

	log logx.Logger
}

func (s *SpawnSystem) Execute(frame *ecs.UpdateFrame) {
	pc := &s.Piece.Get().Piece
	params := s.Scene.Get()
	if params.Intents.Reset {
		params.Intents.Reset = false
		pc.Reset()
	}
	if pc.Active {
		return
	}
	spawn(pc, s.Field.Get().Board, s.Shapes.Get().Table, s.Dice.Get(), s.Tally.Get(), s.log)
}

func spawn(pc *piece.Piece, board *playfield.Board, table *tetromino.Table, dice *Dice, tally *Tally, log logx.Logger) {
	tally.Spawns++
	var ok bool
	if k := dice.Next; k != tetromino.None {
		dice.Next = tetromino.None
		ok = pc.SpawnKind(k, table, board)
	} else {
		ok = pc.Spawn(dice.Rand, table, board)
	}
	if ok {
		log.Infof("new tetromino %s", pc.Kind)
		return
	}
	tally.TopOuts++
	log.Warnf("no room for %s, clearing %d occupied cells", pc.Kind, board.Occupied())
	board.Clear()
	log.Infof("new tetromino %s", pc.Kind)
}

// RotationSystem applies a pending rotation request.
type RotationSystem struct {
	Piece  ecs.Singleton[ActivePiece]
	Field  ecs.Singleton[Playfield]
	Shapes ecs.Singleton[Shapes]
	Scene  ecs.Singleton[scene.Params]

	log logx.Logger
}

func (s *RotationSystem) Execute(frame *ecs.UpdateFrame) {
	params := s.Scene.Get()
	dir := params.Intents.Rotate
	if dir == 0 {
		return
	}
	params.Intents.Rotate = 0

	pc := &s.Piece.Get().Piece
	if pc.Rotate(dir, s.Field.Get().Board, s.Shapes.Get().Table) {
		s.log.Debugf("rotated %s %s to %d", pc.Kind, dir, pc.Rotation)
	}
}

// GravitySystem requests a one row drop each time the interval for the
// current speed elapses. A piece that cannot fall is locked instead.
type GravitySystem struct {
	Piece ecs.Singleton[ActivePiece]
	Field ecs.Singleton[Playfield]
	Clock ecs.Singleton[Clock]
	Scene ecs.Singleton[scene.Params]
	Tally ecs.Singleton[Tally]

	log logx.Logger
}

func (s *GravitySystem) Execute(frame *ecs.UpdateFrame) {
	params := s.Scene.Get()
	if !params.Gravity.Due(s.Clock.Get().Elapsed, params.Speed) {
		return
	}

	pc := &s.Piece.Get().Piece
	board := s.Field.Get().Board
	if !pc.Resting(board) {
		params.RequestMove(0, 1)
		return
	}
	lock(pc, board, s.Tally.Get(), s.log)
}

func lock(pc *piece.Piece, board *playfield.Board, tally *Tally, log logx.Logger) {
	kind := pc.Kind
	cleared, err := pc.Lock(board)
	if err != nil {
		log.Errorf("lock %s at %v: %v", kind, pc.Pos, err)
		pc.Reset()
		return
	}
	tally.Locks++
	tally.RowsCleared += cleared
	if cleared > 0 {
		log.Infof("locked %s, cleared %d rows", kind, cleared)
		return
	}
	log.Debugf("locked %s", kind)
}

// MovementSystem applies the coalesced move request as a single step.
type MovementSystem struct {
	Piece ecs.Singleton[ActivePiece]
	Field ecs.Singleton[Playfield]
	Scene ecs.Singleton[scene.Params]

	log logx.Logger
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	params := s.Scene.Get()
	dx, dy := params.Intents.MoveX, params.Intents.MoveY
	if dx == 0 && dy == 0 {
		return
	}
	params.Intents.MoveX, params.Intents.MoveY = 0, 0

	pc := &s.Piece.Get().Piece
	if pc.Move(dx, dy, s.Field.Get().Board) {
		s.log.Debugf("moved %s to %v", pc.Kind, pc.Pos)
	}
}

// DropSystem drops the piece to the bottom and locks it on request.
type DropSystem struct {
	Piece ecs.Singleton[ActivePiece]
	Field ecs.Singleton[Playfield]
	Scene ecs.Singleton[scene.Params]
	Tally ecs.Singleton[Tally]

	log logx.Logger
}

func (s *DropSystem) Execute(frame *ecs.UpdateFrame) {
	params := s.Scene.Get()
	if !params.Intents.HardDrop {
		return
	}
	params.Intents.HardDrop = false

	pc := &s.Piece.Get().Piece
	if !pc.Active {
		return
	}
	board := s.Field.Get().Board
	rows := pc.HardDrop(board)
	s.log.Debugf("dropped %s %d rows", pc.Kind, rows)
	lock(pc, board, s.Tally.Get(), s.log)
}

// AnimatorSystem writes the board and the active piece into every BoardView.
type AnimatorSystem struct {
	Views  ecs.Query[BoardView]
	Piece  ecs.Singleton[ActivePiece]
	Field  ecs.Singleton[Playfield]
	Shapes ecs.Singleton[Shapes]
	Clock  ecs.Singleton[Clock]
	Scene  ecs.Singleton[scene.Params]
}

func (s *AnimatorSystem) Execute(frame *ecs.UpdateFrame) {
	board := s.Field.Get().Board
	table := s.Shapes.Get().Table
	layout := animator.Layout{
		CellSize:    CellSize,
		Scale:       CellScale,
		StrokeWidth: s.Scene.Get().StrokeWidth,
	}

	for view := range s.Views.Values() {
		prims := view.Geo.Primitives
		animator.Board(prims, board, table, s.Clock.Get().Elapsed, layout)
		animator.Overlay(prims, board.Size(), &s.Piece.Get().Piece, table, layout)
	}
}
