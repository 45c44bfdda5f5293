package ebitenrender

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/ruzzle/engine"
)

// Keymap binds keys to engine actions.
type Keymap map[ebiten.Key]engine.Action

// DefaultKeymap returns the standard bindings. Arrow keys move the piece.
func DefaultKeymap() Keymap {
	return Keymap{
		ebiten.KeyEscape:     engine.ActionQuit,
		ebiten.KeyPageDown:   engine.ActionZoomOut,
		ebiten.KeyPageUp:     engine.ActionZoomIn,
		ebiten.KeyMinus:      engine.ActionSpeedDown,
		ebiten.KeyO:          engine.ActionSpeedDown,
		ebiten.KeyEqual:      engine.ActionSpeedUp,
		ebiten.KeyP:          engine.ActionSpeedUp,
		ebiten.KeyArrowLeft:  engine.ActionMoveLeft,
		ebiten.KeyArrowRight: engine.ActionMoveRight,
		ebiten.KeyArrowUp:    engine.ActionMoveUp,
		ebiten.KeyArrowDown:  engine.ActionMoveDown,
		ebiten.KeyEnter:      engine.ActionReset,
		ebiten.KeySpace:      engine.ActionRotateCW,
		ebiten.KeyX:          engine.ActionRotateCW,
		ebiten.KeyBackspace:  engine.ActionRotateCCW,
		ebiten.KeyZ:          engine.ActionRotateCCW,
		ebiten.KeyB:          engine.ActionToggleBackground,
		ebiten.KeyA:          engine.ActionWidenStroke,
		ebiten.KeyD:          engine.ActionHardDrop,
	}
}

// Translate turns pressed keys into action events, skipping unbound keys.
func (k Keymap) Translate(keys []ebiten.Key) []engine.Event {
	var out []engine.Event
	for _, key := range keys {
		if a, ok := k[key]; ok {
			out = append(out, engine.Press(a))
		}
	}
	return out
}

// Input queues ebiten input as engine events. Collect runs in Update, Poll
// is drained by the engine in Draw.
type Input struct {
	keymap Keymap
	queue  []engine.Event
	keys   []ebiten.Key
	cursor [2]int
}

func NewInput(keymap Keymap) *Input {
	if keymap == nil {
		keymap = DefaultKeymap()
	}
	return &Input{keymap: keymap}
}

func (in *Input) Push(evs ...engine.Event) {
	in.queue = append(in.queue, evs...)
}

// Poll returns and clears the queued events.
func (in *Input) Poll() []engine.Event {
	out := in.queue
	in.queue = nil
	return out
}

// Collect reads this tick's window close requests plus, unless another
// layer owns them, key presses and pointer motion.
func (in *Input) Collect(keyboard, pointer bool) {
	if ebiten.IsWindowBeingClosed() {
		in.Push(engine.Close())
	}

	if keyboard {
		in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
		in.Push(in.keymap.Translate(in.keys)...)
	}
	if !pointer {
		return
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		in.Push(engine.Wheel(dy))
	}

	x, y := ebiten.CursorPosition()
	if c := [2]int{x, y}; c != in.cursor {
		in.cursor = c
		in.Push(engine.CursorMoved(float32(x), float32(y)))
	}
}
