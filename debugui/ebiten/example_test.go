package ebiten_test

import (
	"context"

	"github.com/plus3/ruzzle/debugui"
	debugui_ebiten "github.com/plus3/ruzzle/debugui/ebiten"
	"github.com/plus3/ruzzle/game"
	"github.com/plus3/ruzzle/logx"
	"github.com/plus3/ruzzle/render/ebitenrender"
)

func Example() {
	// The ImGui backend creates the window, so it must exist before the game.
	backend := debugui_ebiten.New("Ruzzle", 1024, 768)

	sim, err := game.New(game.DefaultOptions())
	if err != nil {
		panic(err)
	}

	g, err := ebitenrender.NewGame(context.Background(), sim, nil, logx.Nop())
	if err != nil {
		panic(err)
	}

	// Windows run in their own ecs world and draw over the board.
	g.Overlay = debugui.NewOverlay(sim, backend, logx.Nop())

	if err := g.Run("Ruzzle", 1024, 768); err != nil {
		panic(err)
	}
}
