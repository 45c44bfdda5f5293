// Package engine drives the frame loop: it drains input, keeps the render
// surface in sync with the window, ticks the simulation and hands the result
// to a Renderer.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/plus3/ruzzle/geometry"
	"github.com/plus3/ruzzle/gpu"
	"github.com/plus3/ruzzle/logx"
	"github.com/plus3/ruzzle/piece"
	"github.com/plus3/ruzzle/scene"
)

// ErrSurfaceOutdated is returned by Renderer.Acquire when the surface no
// longer matches the window. The engine skips the frame and resizes.
var ErrSurfaceOutdated = errors.New("surface outdated")

// Renderer draws geometry entities. Implementations own every graphics resource.
type Renderer interface {
	Init(entities []*geometry.GeoEntity, bg []*geometry.BgEntity) error
	Resize(width, height int) error
	Acquire() (Frame, error)
	Draw(f Frame, globals gpu.Globals, entities []*geometry.GeoEntity, bg []*geometry.BgEntity) error
}

// Frame is a drawable surface image valid for a single iteration.
type Frame interface {
	Present() error
}

// TitleSetter is implemented by renderers with a window title.
type TitleSetter interface {
	SetTitle(title string)
}

// InputSource delivers the events gathered since the last poll.
type InputSource interface {
	Poll() []Event
}

// Simulation is what the engine ticks and draws.
type Simulation interface {
	Tick(elapsed float64)
	Scene() *scene.Params
	Entities() []*geometry.GeoEntity
	Background() []*geometry.BgEntity
}

// Status is the outcome of one Step.
type Status uint8

const (
	// StatusIdle means no frame was requested.
	StatusIdle Status = iota
	StatusRendered
	// StatusSkipped means the surface was outdated and will be resized.
	StatusSkipped
	StatusQuit
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRendered:
		return "rendered"
	case StatusSkipped:
		return "skipped"
	case StatusQuit:
		return "quit"
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

type Engine struct {
	sim      Simulation
	renderer Renderer
	input    InputSource
	clock    Clock
	log      logx.Logger

	frames     int
	fps        int
	nextReport float64
}

type Option func(*Engine)

func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

func WithLogger(l logx.Logger) Option {
	return func(e *Engine) { e.log = l }
}

func New(sim Simulation, renderer Renderer, input InputSource, opts ...Option) *Engine {
	e := &Engine{
		sim:        sim,
		renderer:   renderer,
		input:      input,
		nextReport: 1,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.clock == nil {
		e.clock = NewWallClock()
	}
	if e.log == nil {
		e.log = logx.Nop()
	}
	return e
}

// Init hands the simulation's geometry to the renderer.
func (e *Engine) Init() error {
	if err := e.renderer.Init(e.sim.Entities(), e.sim.Background()); err != nil {
		return fmt.Errorf("init renderer: %w", err)
	}
	return nil
}

// FPS returns the frame count of the last full second.
func (e *Engine) FPS() int {
	return e.fps
}

// Title is the window title for the current speed and frame rate.
func (e *Engine) Title() string {
	return fmt.Sprintf("Ruzzle [%.1fx] %d FPS", e.sim.Scene().Speed, e.fps)
}

// Step runs one loop iteration.
func (e *Engine) Step(ctx context.Context) (Status, error) {
	if err := ctx.Err(); err != nil {
		return StatusQuit, err
	}

	params := e.sim.Scene()
	ready := false
	for _, ev := range e.input.Poll() {
		switch ev.Kind {
		case EventClose:
			return StatusQuit, nil
		case EventFrameReady:
			ready = true
			continue
		case EventAction:
			if ev.Action == ActionQuit {
				return StatusQuit, nil
			}
		}
		apply(params, ev)
		params.Ease()
	}
	if !ready {
		return StatusIdle, nil
	}

	if params.SizeChanged {
		params.SizeChanged = false
		size := params.WindowSize
		e.log.Warnf("size changed, new size: %d, %d. updating surface", size.X, size.Y)
		if err := e.renderer.Resize(size.X, size.Y); err != nil {
			return StatusIdle, fmt.Errorf("resize surface: %w", err)
		}
	}

	frame, err := e.renderer.Acquire()
	if err != nil {
		e.log.Errorf("surface error: %v", err)
		if errors.Is(err, ErrSurfaceOutdated) {
			params.SizeChanged = true
			return StatusSkipped, nil
		}
		return StatusIdle, fmt.Errorf("acquire frame: %w", err)
	}

	now := e.clock.Elapsed()
	e.sim.Tick(now)

	if err := e.renderer.Draw(frame, params.Globals(), e.sim.Entities(), e.background(params)); err != nil {
		return StatusRendered, fmt.Errorf("draw: %w", err)
	}
	if err := frame.Present(); err != nil {
		return StatusRendered, fmt.Errorf("present: %w", err)
	}

	e.frames++
	if now >= e.nextReport {
		e.report(now)
	}
	return StatusRendered, nil
}

func (e *Engine) background(params *scene.Params) []*geometry.BgEntity {
	if !params.DrawBackground {
		return nil
	}
	return e.sim.Background()
}

func (e *Engine) report(now float64) {
	e.fps = e.frames
	e.frames = 0
	e.nextReport = now + 1
	title := e.Title()
	e.log.Info(title)
	if ts, ok := e.renderer.(TitleSetter); ok {
		ts.SetTitle(title)
	}
}

// Run steps until the input asks to quit, a step fails or ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	for {
		status, err := e.Step(ctx)
		if err != nil {
			return err
		}
		if status == StatusQuit {
			return nil
		}
	}
}

func apply(p *scene.Params, ev Event) {
	switch ev.Kind {
	case EventWheel:
		p.Wheel(ev.WheelY)
	case EventCursor:
		p.SetCursor(ev.X, ev.Y)
	case EventResize:
		p.Resize(ev.Width, ev.Height)
	case EventAction:
		applyAction(p, ev.Action)
	}
}

func applyAction(p *scene.Params, a Action) {
	switch a {
	case ActionMoveLeft:
		p.RequestMove(-1, 0)
	case ActionMoveRight:
		p.RequestMove(1, 0)
	case ActionMoveUp:
		p.RequestMove(0, -1)
	case ActionMoveDown:
		p.RequestMove(0, 1)
	case ActionRotateCW:
		p.RequestRotate(piece.Clockwise)
	case ActionRotateCCW:
		p.RequestRotate(piece.CounterClockwise)
	case ActionReset:
		p.RequestReset()
	case ActionHardDrop:
		p.RequestHardDrop()
	case ActionZoomIn:
		p.ZoomIn()
	case ActionZoomOut:
		p.ZoomOut()
	case ActionSpeedUp:
		p.SpeedUp()
	case ActionSpeedDown:
		p.SpeedDown()
	case ActionToggleBackground:
		p.ToggleBackground()
	case ActionWidenStroke:
		p.WidenStroke()
	}
}
