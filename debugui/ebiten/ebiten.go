// Package ebiten binds the debug UI to the Ebiten Dear ImGui backend.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ruzzle/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// The embedded backend supplies BeginFrame, EndFrame, Draw and Layout.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

var _ debugui.Backend = (*ImguiBackend)(nil)

// New creates the backend and its window. ImGui's ini persistence is
// disabled so window layout never touches the working directory.
func New(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: backend}
}
