// Package scene holds camera state and the input intents gathered between frames.
package scene

import (
	"image"

	"github.com/plus3/ruzzle/gpu"
	"github.com/plus3/ruzzle/piece"
)

const (
	DefaultZoom   = 5.0
	DefaultWidth  = 1024
	DefaultHeight = 768

	growStep   = 1.25
	shrinkStep = 0.8

	zoomEase   = 3
	scrollEase = 3
	strokeEase = 5
)

// Intents are the piece requests collected since the last tick.
// Later requests of the same kind replace earlier ones.
type Intents struct {
	MoveX, MoveY int
	Rotate       piece.Direction
	Reset        bool
	HardDrop     bool
}

// Params is the camera and interaction state of one window.
type Params struct {
	Zoom, TargetZoom               float32
	Scroll, TargetScroll           [2]float32
	StrokeWidth, TargetStrokeWidth float32

	DrawBackground bool
	Cursor         [2]float32
	WindowSize     image.Point
	SizeChanged    bool

	Intents Intents
	Speed   float64
	Gravity piece.Gravity
}

// New returns the default scene centred on a board of cols x rows cells of cellSize units.
func New(cols, rows int, cellSize float32) Params {
	center := [2]float32{float32(cols) * cellSize / 2, float32(rows) * cellSize / 2}
	return Params{
		Zoom:              DefaultZoom,
		TargetZoom:        DefaultZoom,
		Scroll:            center,
		TargetScroll:      center,
		StrokeWidth:       1,
		TargetStrokeWidth: 1,
		DrawBackground:    true,
		WindowSize:        image.Pt(DefaultWidth, DefaultHeight),
		SizeChanged:       true,
		Speed:             1,
	}
}

// Ease moves every current value one step toward its target.
func (p *Params) Ease() {
	p.Zoom += (p.TargetZoom - p.Zoom) / zoomEase
	for i := range p.Scroll {
		p.Scroll[i] += (p.TargetScroll[i] - p.Scroll[i]) / scrollEase
	}
	p.StrokeWidth += (p.TargetStrokeWidth - p.StrokeWidth) / strokeEase
}

func (p *Params) ZoomIn() {
	p.TargetZoom *= growStep
}

func (p *Params) ZoomOut() {
	p.TargetZoom *= shrinkStep
}

// Wheel zooms out for negative deltas and in otherwise.
func (p *Params) Wheel(dy float64) {
	if dy < 0 {
		p.ZoomOut()
		return
	}
	p.ZoomIn()
}

func (p *Params) SpeedUp() {
	p.Speed *= growStep
}

func (p *Params) SpeedDown() {
	p.Speed *= shrinkStep
}

func (p *Params) WidenStroke() {
	p.TargetStrokeWidth /= shrinkStep
}

func (p *Params) ToggleBackground() {
	p.DrawBackground = !p.DrawBackground
}

func (p *Params) SetCursor(x, y float32) {
	p.Cursor = [2]float32{x, y}
}

// Resize records a new window size and flags the surface for reconfiguration.
func (p *Params) Resize(width, height int) {
	p.WindowSize = image.Pt(width, height)
	p.SizeChanged = true
}

// RequestMove records a horizontal and/or vertical move. Zero components
// leave the corresponding pending request untouched.
func (p *Params) RequestMove(dx, dy int) {
	if dx != 0 {
		p.Intents.MoveX = dx
	}
	if dy != 0 {
		p.Intents.MoveY = dy
	}
}

func (p *Params) RequestRotate(dir piece.Direction) {
	p.Intents.Rotate = dir
}

func (p *Params) RequestReset() {
	p.Intents.Reset = true
}

func (p *Params) RequestHardDrop() {
	p.Intents.HardDrop = true
}

// TakeIntents returns the pending intents and clears them.
func (p *Params) TakeIntents() Intents {
	in := p.Intents
	p.Intents = Intents{}
	return in
}

// Globals returns the camera uniform block for the current frame.
func (p *Params) Globals() gpu.Globals {
	return gpu.Globals{
		Resolution:   [2]float32{float32(p.WindowSize.X), float32(p.WindowSize.Y)},
		ScrollOffset: p.Scroll,
		Zoom:         p.Zoom,
	}
}
