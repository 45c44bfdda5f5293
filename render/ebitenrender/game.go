package ebitenrender

import (
	"context"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/plus3/ruzzle/engine"
	"github.com/plus3/ruzzle/game"
	"github.com/plus3/ruzzle/logx"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws on top of the scene, for example a debug UI. Captures
// reports whether the overlay currently consumes keyboard or pointer input.
type Overlay interface {
	Update()
	Draw(screen *ebiten.Image)
	Layout(width, height int)
	Captures() (keyboard, pointer bool)
}

// Game adapts the engine to ebiten.Game. Update gathers input, Draw runs
// one engine step against the screen.
type Game struct {
	ShowHUD bool
	Overlay Overlay

	ctx      context.Context
	sim      *game.Simulation
	engine   *engine.Engine
	renderer *Renderer
	input    *Input
	log      logx.Logger

	width, height int
	status        engine.Status
	err           error
}

func NewGame(ctx context.Context, sim *game.Simulation, keymap Keymap, log logx.Logger) (*Game, error) {
	renderer := NewRenderer()
	input := NewInput(keymap)
	eng := engine.New(sim, renderer, input, engine.WithLogger(log))
	if err := eng.Init(); err != nil {
		return nil, err
	}
	return &Game{
		ShowHUD:  true,
		ctx:      ctx,
		sim:      sim,
		engine:   eng,
		renderer: renderer,
		input:    input,
		log:      log,
	}, nil
}

func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	if g.status == engine.StatusQuit {
		return ebiten.Termination
	}
	keyboard, pointer := true, true
	if g.Overlay != nil {
		g.Overlay.Update()
		kb, ptr := g.Overlay.Captures()
		keyboard, pointer = !kb, !ptr
	}
	g.input.Collect(keyboard, pointer)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.err != nil || g.status == engine.StatusQuit {
		return
	}
	g.renderer.bind(screen)
	g.input.Push(engine.FrameReady())

	g.status, g.err = g.engine.Step(g.ctx)
	if g.err != nil {
		g.log.Errorf("frame: %v", g.err)
		return
	}
	if g.status == engine.StatusSkipped && g.renderer.restore(screen) {
		g.log.Debug("frame skipped, showing the last one")
	}

	if g.ShowHUD {
		g.drawHUD(screen)
	}
	if g.Overlay != nil {
		g.Overlay.Draw(screen)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	msg := fmt.Sprintf("%s  piece %s  zoom %.2f", g.engine.Title(), g.sim.Piece().Kind, g.sim.Scene().Zoom)
	text.Draw(screen, msg, basicfont.Face7x13, 8, 16, color.White)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.input.Push(engine.Resized(outsideWidth, outsideHeight))
	}
	if g.Overlay != nil {
		g.Overlay.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Renderer exposes the triangle renderer for configuration before Run.
func (g *Game) Renderer() *Renderer {
	return g.renderer
}

// Run opens the window and blocks until the game quits.
func (g *Game) Run(title string, width, height int) error {
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetWindowTitle(title)
	return ebiten.RunGame(g)
}
