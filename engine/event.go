package engine

import "fmt"

// EventKind classifies an input event.
type EventKind uint8

const (
	EventNone EventKind = iota
	// EventFrameReady ends an event batch and asks for a frame.
	EventFrameReady
	EventClose
	EventResize
	EventWheel
	EventCursor
	EventAction
)

var eventKindNames = [...]string{"none", "frame-ready", "close", "resize", "wheel", "cursor", "action"}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Action is a discrete intent produced by a key press. Input sources own the
// mapping from physical keys to actions.
type Action uint8

const (
	ActionNone Action = iota
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionRotateCW
	ActionRotateCCW
	ActionReset
	ActionHardDrop
	ActionZoomIn
	ActionZoomOut
	ActionSpeedUp
	ActionSpeedDown
	ActionToggleBackground
	ActionWidenStroke
	ActionQuit
)

var actionNames = [...]string{
	"none", "move-left", "move-right", "move-up", "move-down",
	"rotate-cw", "rotate-ccw", "reset", "hard-drop",
	"zoom-in", "zoom-out", "speed-up", "speed-down",
	"toggle-background", "widen-stroke", "quit",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// Event is one input event. Only the fields relevant to Kind are set.
type Event struct {
	Kind          EventKind
	Action        Action
	Width, Height int
	X, Y          float32
	WheelY        float64
}

func FrameReady() Event {
	return Event{Kind: EventFrameReady}
}

func Close() Event {
	return Event{Kind: EventClose}
}

func Resized(width, height int) Event {
	return Event{Kind: EventResize, Width: width, Height: height}
}

func Wheel(dy float64) Event {
	return Event{Kind: EventWheel, WheelY: dy}
}

func CursorMoved(x, y float32) Event {
	return Event{Kind: EventCursor, X: x, Y: y}
}

func Press(a Action) Event {
	return Event{Kind: EventAction, Action: a}
}

func (e Event) String() string {
	switch e.Kind {
	case EventResize:
		return fmt.Sprintf("resize %dx%d", e.Width, e.Height)
	case EventWheel:
		return fmt.Sprintf("wheel %g", e.WheelY)
	case EventCursor:
		return fmt.Sprintf("cursor %g,%g", e.X, e.Y)
	case EventAction:
		return e.Action.String()
	}
	return e.Kind.String()
}
