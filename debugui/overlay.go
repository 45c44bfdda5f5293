package debugui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ruzzle/ecs"
	"github.com/plus3/ruzzle/game"
	"github.com/plus3/ruzzle/logx"
)

// Backend is the ImGui platform binding driven by an Overlay.
type Backend interface {
	BeginFrame()
	EndFrame()
	Draw(screen *ebiten.Image)
	Layout(width, height int)
}

// Target is the singleton naming the simulation under inspection.
type Target struct {
	Sim *game.Simulation
}

// RegisterComponents registers the debug UI component types.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[ImguiInputState](registry)
	ecs.RegisterComponent[Target](registry)
	ecs.RegisterComponent[FrameTimer](registry)
}

// SpawnWindows adds the performance, scene, piece, board, entity browser
// and component inspector windows to storage. The Target singleton must be
// set before the first frame.
func SpawnWindows(storage *ecs.Storage, historyFrames int) {
	target := ecs.NewSingleton[Target](storage)
	perf := NewPerformanceStats(historyFrames)
	timer := ecs.NewSingleton[FrameTimer](storage, NewFrameTimer(nil))

	withSim := func(render func(*game.Simulation)) ImguiItem {
		return ImguiItem{Render: func() {
			if sim := target.Get().Sim; sim != nil {
				render(sim)
			}
		}}
	}

	storage.Spawn(withSim(func(sim *game.Simulation) {
		perf.Record(timer.Get().Tick())
		perf.Render(sim.Storage(), sim.Scheduler())
	}))
	storage.Spawn(withSim(func(sim *game.Simulation) { renderScene(sim.Scene()) }))
	storage.Spawn(withSim(renderPiece))
	storage.Spawn(withSim(renderBoard))

	browser := NewEntityBrowser(50)
	inspector := NewInspector(browser)
	storage.Spawn(withSim(func(sim *game.Simulation) { browser.Render(sim.Storage()) }))
	storage.Spawn(withSim(func(sim *game.Simulation) { inspector.Render(sim.Storage()) }))
}

// Overlay runs the debug windows in their own ecs world and draws them over
// the game. It satisfies the ebitenrender overlay contract.
type Overlay struct {
	backend   Backend
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	input     *ecs.Singleton[ImguiInputState]
	log       logx.Logger
}

func NewOverlay(sim *game.Simulation, backend Backend, log logx.Logger) *Overlay {
	if log == nil {
		log = logx.Nop()
	}
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	SpawnWindows(storage, 120)
	ecs.NewSingleton[Target](storage).Get().Sim = sim
	input := ecs.NewSingleton[ImguiInputState](storage)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&ImguiSystem{})
	log.Debugf("debug ui: %d windows", storage.EntityCount())

	return &Overlay{
		backend:   backend,
		storage:   storage,
		scheduler: scheduler,
		input:     input,
		log:       log,
	}
}

func (o *Overlay) Storage() *ecs.Storage {
	return o.storage
}

// Update runs one ImGui frame. Window render functions execute between
// BeginFrame and EndFrame.
func (o *Overlay) Update() {
	o.backend.BeginFrame()
	o.scheduler.Once(1.0 / float64(ebiten.TPS()))
	o.backend.EndFrame()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

func (o *Overlay) Layout(width, height int) {
	o.backend.Layout(width, height)
}

// Captures reports whether ImGui wanted keyboard or pointer input last frame.
func (o *Overlay) Captures() (keyboard, pointer bool) {
	state := o.input.Get()
	return state.WantCaptureKeyboard, state.WantCaptureMouse
}
