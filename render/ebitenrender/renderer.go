// Package ebitenrender draws the simulation in an ebiten window and feeds
// ebiten input back to the engine.
package ebitenrender

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ruzzle/engine"
	"github.com/plus3/ruzzle/geometry"
	"github.com/plus3/ruzzle/gpu"
)

// BackgroundColor fills the window when the background is enabled.
var BackgroundColor = color.RGBA{R: 13, G: 15, B: 23, A: 255}

const maxBatchVertices = 1 << 16

// Renderer turns geometry entities into ebiten triangle batches. The screen
// image is only available inside ebiten's Draw, so Game binds it before
// each engine step. Frames are drawn into an offscreen canvas that Present
// copies to the screen; the canvas outlives the frame so a skipped frame can
// show the last presented one again.
type Renderer struct {
	AntiAlias bool

	screen    *ebiten.Image
	canvas    *ebiten.Image
	white     *ebiten.Image
	size      image.Point
	presented bool

	vertices []ebiten.Vertex
	indices  []uint16
}

func NewRenderer() *Renderer {
	return &Renderer{AntiAlias: true}
}

func (r *Renderer) Init(entities []*geometry.GeoEntity, bg []*geometry.BgEntity) error {
	for _, e := range entities {
		if len(e.Vertices) > maxBatchVertices {
			return fmt.Errorf("%w: %s has %d vertices", geometry.ErrGeometry, e.Name, len(e.Vertices))
		}
	}
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	r.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	return nil
}

// Resize records the window size. ebiten reallocates the screen itself.
func (r *Renderer) Resize(width, height int) error {
	r.size = image.Pt(width, height)
	return nil
}

func (r *Renderer) bind(screen *ebiten.Image) {
	r.screen = screen
}

type frame struct {
	r *Renderer
}

// Present copies the canvas to the screen and releases it; ebiten shows it
// when Draw returns.
func (f frame) Present() error {
	r := f.r
	if r.screen == nil || r.canvas == nil {
		return engine.ErrSurfaceOutdated
	}
	r.screen.DrawImage(r.canvas, nil)
	r.presented = true
	r.screen = nil
	return nil
}

// Last returns the last presented frame, or nil before the first one.
func (r *Renderer) Last() *ebiten.Image {
	if !r.presented {
		return nil
	}
	return r.canvas
}

// restore draws the last presented frame onto screen. It is used when the
// engine skipped a frame, since ebiten clears the screen every tick.
func (r *Renderer) restore(screen *ebiten.Image) bool {
	last := r.Last()
	if last == nil {
		return false
	}
	screen.DrawImage(last, nil)
	return true
}

// target returns the canvas, reallocating it when the screen size changed.
func (r *Renderer) target(size image.Point) *ebiten.Image {
	if r.canvas == nil || r.canvas.Bounds().Size() != size {
		if r.canvas != nil {
			r.canvas.Deallocate()
		}
		r.canvas = ebiten.NewImage(size.X, size.Y)
		r.presented = false
	}
	return r.canvas
}

func (r *Renderer) Acquire() (engine.Frame, error) {
	if r.screen == nil {
		return nil, engine.ErrSurfaceOutdated
	}
	if b := r.screen.Bounds().Size(); r.size != (image.Point{}) && b != r.size {
		return nil, fmt.Errorf("%w: screen %v, window %v", engine.ErrSurfaceOutdated, b, r.size)
	}
	return frame{r: r}, nil
}

func (r *Renderer) Draw(f engine.Frame, globals gpu.Globals, entities []*geometry.GeoEntity, bg []*geometry.BgEntity) error {
	if r.screen == nil {
		return engine.ErrSurfaceOutdated
	}
	size := r.screen.Bounds().Size()
	canvas := r.target(size)
	if len(bg) > 0 {
		canvas.Fill(BackgroundColor)
	} else {
		canvas.Clear()
	}

	for _, e := range entities {
		for _, i := range drawOrder(e) {
			p := e.Primitives[i]
			r.appendRange(e, e.Fill, p, p.Color, globals, size)
			if p.Width > 0 {
				r.appendRange(e, e.Stroke, p, p.StrokeColor, globals, size)
			}
		}
	}
	r.flush()
	return nil
}

// drawOrder sorts instances by ZIndex so nearer instances are drawn last.
func drawOrder(e *geometry.GeoEntity) []int {
	order := make([]int, e.Instances)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return e.Primitives[order[a]].ZIndex < e.Primitives[order[b]].ZIndex
	})
	return order
}

func (r *Renderer) appendRange(e *geometry.GeoEntity, rng geometry.IndexRange, p gpu.Primitive, c [4]float32, g gpu.Globals, size image.Point) {
	if c[3] <= 0 || rng.Len() == 0 {
		return
	}
	if len(r.vertices)+rng.Len() > maxBatchVertices {
		r.flush()
	}
	r.vertices, r.indices = appendTriangles(r.vertices, r.indices, e, rng, p, c, g, size)
}

// appendTriangles emits one ebiten vertex per index in rng, projected with
// the instance primitive p.
func appendTriangles(vs []ebiten.Vertex, is []uint16, e *geometry.GeoEntity, rng geometry.IndexRange, p gpu.Primitive, c [4]float32, g gpu.Globals, size image.Point) ([]ebiten.Vertex, []uint16) {
	for _, idx := range e.Indices[rng.Start:rng.End] {
		pt := gpu.ClipToScreen(gpu.Project(e.Vertices[idx], p, g), size.X, size.Y)
		is = append(is, uint16(len(vs)))
		vs = append(vs, ebiten.Vertex{
			DstX:   pt[0],
			DstY:   pt[1],
			SrcX:   1,
			SrcY:   1,
			ColorR: c[0],
			ColorG: c[1],
			ColorB: c[2],
			ColorA: c[3],
		})
	}
	return vs, is
}

func (r *Renderer) flush() {
	if len(r.indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModeStraightAlpha,
		AntiAlias:      r.AntiAlias,
	}
	r.canvas.DrawTriangles(r.vertices, r.indices, r.white, op)
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
}

func (r *Renderer) SetTitle(title string) {
	ebiten.SetWindowTitle(title)
}
