// Package debugui draws Dear ImGui inspection windows for a running ruzzle
// simulation. Windows are ecs entities carrying an ImguiItem, rendered by
// ImguiSystem inside a storage of their own.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ruzzle/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks whether ImGui consumed this frame's input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem queues every ImguiItem render function and refreshes the
// ImguiInputState singleton.
type ImguiSystem struct {
	Items      ecs.Query[ImguiItem]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	io := imgui.CurrentIO()
	state := i.InputState.Get()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range i.Items.Values() {
		if item.Render != nil {
			frame.Commands.Defer(item.Render)
		}
	}
}
