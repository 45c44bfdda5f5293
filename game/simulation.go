// Package game runs the puzzle simulation as systems on an ecs scheduler and
// exposes it through the Simulation facade driven by the engine.
package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/plus3/ruzzle/animator"
	"github.com/plus3/ruzzle/ecs"
	"github.com/plus3/ruzzle/geometry"
	"github.com/plus3/ruzzle/gpu"
	"github.com/plus3/ruzzle/logx"
	"github.com/plus3/ruzzle/piece"
	"github.com/plus3/ruzzle/playfield"
	"github.com/plus3/ruzzle/scene"
	"github.com/plus3/ruzzle/tetromino"
)

const (
	// CellSize is the world-space distance between neighbouring cells.
	CellSize = 8
	// CellScale maps the 10 unit tetrion onto exactly one CellSize.
	CellScale = 0.8
	// MinBoardSide is the smallest board side that fits every spawn box.
	MinBoardSide = 4
)

type Options struct {
	Cols, Rows int
	// Seed for the spawn sequence. Zero picks a random seed.
	Seed uint64
	// Showcase seeds the board with the demo pattern.
	Showcase bool
	// First forces the kind of the first spawned piece. None picks at random.
	First tetromino.Kind
	// Speed is the initial gravity multiplier. Non-positive means 1.
	Speed     float64
	Tolerance float64
	Logger    logx.Logger
}

// DefaultOptions returns the options for a 10x16 board with the showcase pattern.
func DefaultOptions() Options {
	return Options{
		Cols:      playfield.DefaultCols,
		Rows:      playfield.DefaultRows,
		Showcase:  true,
		Speed:     1,
		Tolerance: geometry.DefaultTolerance,
	}
}

// Simulation owns the board, the active piece, the scene and the geometry
// entities, and advances them one Tick at a time.
type Simulation struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler

	field  *ecs.Singleton[Playfield]
	active *ecs.Singleton[ActivePiece]
	scene  *ecs.Singleton[scene.Params]
	clock  *ecs.Singleton[Clock]
	shapes *ecs.Singleton[Shapes]
	dice   *ecs.Singleton[Dice]
	tally  *ecs.Singleton[Tally]

	renderables *ecs.Query[Renderable]
	backdrops   *ecs.Query[Backdrop]
	view        *geometry.GeoEntity

	seed uint64
	last float64
	log  logx.Logger
}

// New builds the geometry, seeds the singletons and registers the systems.
// Boards larger than the primitive buffer allows fail with geometry.ErrCapacity.
// Boards narrower or shorter than MinBoardSide fail with playfield.ErrBoardSize.
func New(opts Options) (*Simulation, error) {
	if opts.Logger == nil {
		opts.Logger = logx.Nop()
	}
	if opts.Cols == 0 && opts.Rows == 0 {
		opts.Cols, opts.Rows = playfield.DefaultCols, playfield.DefaultRows
	}
	if opts.Cols < MinBoardSide || opts.Rows < MinBoardSide {
		return nil, fmt.Errorf("%w: %dx%d is smaller than the %dx%d spawn box",
			playfield.ErrBoardSize, opts.Cols, opts.Rows, MinBoardSide, MinBoardSide)
	}
	if !opts.First.Valid() {
		return nil, fmt.Errorf("first piece: %w: %v", tetromino.ErrUnknownKind, opts.First)
	}
	if opts.Speed <= 0 {
		opts.Speed = 1
	}
	if opts.Seed == 0 {
		opts.Seed = rand.Uint64()
	}

	board, err := playfield.New(opts.Cols, opts.Rows)
	if err != nil {
		return nil, err
	}
	table := tetromino.NewTable()
	if opts.Showcase {
		playfield.Showcase(board, table)
	}

	builder := geometry.NewBuilder(opts.Tolerance)
	view, err := builder.BuildGeo("tetrion", geometry.TetrionPath(), board.Size()+animator.OverlayCells, CellScale, true, true)
	if err != nil {
		return nil, fmt.Errorf("board geometry: %w", err)
	}
	bg, err := builder.BuildBackground(geometry.ClipRect())
	if err != nil {
		return nil, fmt.Errorf("background geometry: %w", err)
	}

	storage := ecs.NewStorage(newRegistry())
	storage.Spawn(Renderable{Geo: view}, BoardView{Geo: view})
	storage.Spawn(Backdrop{Bg: bg})

	params := scene.New(board.Cols, board.Rows, CellSize)
	params.Speed = opts.Speed
	storage.AddSingleton(params)
	storage.AddSingleton(Playfield{Board: board})
	storage.AddSingleton(Shapes{Table: table})
	storage.AddSingleton(Dice{
		Rand: rand.New(rand.NewPCG(opts.Seed, opts.Seed>>1|1)),
		Next: opts.First,
	})

	sim := &Simulation{
		storage:     storage,
		scheduler:   ecs.NewScheduler(storage),
		field:       ecs.NewSingleton[Playfield](storage),
		active:      ecs.NewSingleton[ActivePiece](storage),
		scene:       ecs.NewSingleton[scene.Params](storage),
		clock:       ecs.NewSingleton[Clock](storage),
		shapes:      ecs.NewSingleton[Shapes](storage),
		dice:        ecs.NewSingleton[Dice](storage),
		tally:       ecs.NewSingleton[Tally](storage),
		renderables: ecs.NewQuery[Renderable](storage),
		backdrops:   ecs.NewQuery[Backdrop](storage),
		view:        view,
		seed:        opts.Seed,
		log:         opts.Logger,
	}

	log := opts.Logger
	sim.scheduler.Register(&SpawnSystem{log: log})
	sim.scheduler.Register(&RotationSystem{log: log})
	sim.scheduler.Register(&GravitySystem{log: log})
	sim.scheduler.Register(&MovementSystem{log: log})
	sim.scheduler.Register(&DropSystem{log: log})
	sim.scheduler.Register(&AnimatorSystem{})

	log.Debugf("simulation %dx%d seed %d, %d instances", board.Cols, board.Rows, opts.Seed, view.Instances)
	return sim, nil
}

// SpawnOrContinue spawns a piece unless one is already falling, and returns
// the active piece either way.
func (s *Simulation) SpawnOrContinue() *piece.Piece {
	pc := s.Piece()
	if !pc.Active {
		spawn(pc, s.Board(), s.Shapes(), s.dice.Get(), s.tally.Get(), s.log)
	}
	return pc
}

// RequestRotate queues a rotation for the next Tick.
func (s *Simulation) RequestRotate(dir piece.Direction) {
	s.Scene().RequestRotate(dir)
}

// RequestMove queues a move for the next Tick.
func (s *Simulation) RequestMove(dx, dy int) {
	s.Scene().RequestMove(dx, dy)
}

// RequestReset discards the active piece; the next Tick spawns a new one.
func (s *Simulation) RequestReset() {
	s.Scene().RequestReset()
}

// RequestHardDrop queues a drop-and-lock for the next Tick.
func (s *Simulation) RequestHardDrop() {
	s.Scene().RequestHardDrop()
}

// Tick advances the simulation to elapsed seconds since start. Time never
// runs backwards: an earlier elapsed is treated as no time passing.
func (s *Simulation) Tick(elapsed float64) {
	dt := max(elapsed-s.last, 0)
	s.last = max(elapsed, s.last)
	s.clock.Get().Elapsed = s.last
	s.scheduler.Once(dt)
}

// Primitives returns the full primitive buffer of the board geometry.
func (s *Simulation) Primitives() []gpu.Primitive {
	return s.view.Primitives
}

func (s *Simulation) Board() *playfield.Board {
	return s.field.Get().Board
}

func (s *Simulation) Piece() *piece.Piece {
	return &s.active.Get().Piece
}

func (s *Simulation) Scene() *scene.Params {
	return s.scene.Get()
}

func (s *Simulation) Shapes() *tetromino.Table {
	return s.shapes.Get().Table
}

func (s *Simulation) Elapsed() float64 {
	return s.clock.Get().Elapsed
}

func (s *Simulation) Seed() uint64 {
	return s.seed
}

// Tally returns the spawn, lock and cleared row counters.
func (s *Simulation) Tally() Tally {
	return *s.tally.Get()
}

// Entities returns the geometry drawn every frame.
func (s *Simulation) Entities() []*geometry.GeoEntity {
	var out []*geometry.GeoEntity
	for r := range s.renderables.Values() {
		out = append(out, r.Geo)
	}
	return out
}

// Background returns the background quads.
func (s *Simulation) Background() []*geometry.BgEntity {
	var out []*geometry.BgEntity
	for b := range s.backdrops.Values() {
		out = append(out, b.Bg)
	}
	return out
}

func (s *Simulation) Scheduler() *ecs.Scheduler {
	return s.scheduler
}

func (s *Simulation) Storage() *ecs.Storage {
	return s.storage
}
