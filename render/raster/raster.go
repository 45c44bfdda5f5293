// Package raster is a software Renderer built on gogpu/gg. It rasterises the
// same vertex and primitive buffers a GPU pipeline would consume, which makes
// it usable for snapshots and headless runs.
package raster

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"sort"

	"github.com/gogpu/gg"
	"github.com/plus3/ruzzle/engine"
	"github.com/plus3/ruzzle/geometry"
	"github.com/plus3/ruzzle/gpu"
)

var ErrClosed = errors.New("raster: renderer closed")

// DefaultBackground is the clear colour used when the background is drawn.
var DefaultBackground = gg.RGBA{R: 0.05, G: 0.06, B: 0.09, A: 1}

type Renderer struct {
	// Background fills the background quads.
	Background gg.RGBA

	ctx       *gg.Context
	presented int
	closed    bool

	// instances is the encoded primitive buffer of the entity being drawn.
	instances []byte
	uniform   []byte
	uploaded  int64
}

func New(width, height int) *Renderer {
	return &Renderer{
		Background: DefaultBackground,
		ctx:        gg.NewContext(width, height),
	}
}

// Init checks that every index refers to an existing vertex and accounts
// for the vertex buffers a GPU pipeline would upload once.
func (r *Renderer) Init(entities []*geometry.GeoEntity, bg []*geometry.BgEntity) error {
	for _, e := range entities {
		for _, idx := range e.Indices {
			if int(idx) >= len(e.Vertices) {
				return fmt.Errorf("%w: %s index %d out of %d vertices", geometry.ErrGeometry, e.Name, idx, len(e.Vertices))
			}
		}
		r.uploaded += int64(len(gpu.VertexBytes(e.Vertices)))
	}
	for _, b := range bg {
		for _, idx := range b.Indices {
			if int(idx) >= len(b.Points) {
				return fmt.Errorf("%w: background index %d out of %d points", geometry.ErrGeometry, idx, len(b.Points))
			}
		}
	}
	return nil
}

func (r *Renderer) Resize(width, height int) error {
	if r.closed {
		return ErrClosed
	}
	return r.ctx.Resize(width, height)
}

type frame struct {
	r *Renderer
}

func (f frame) Present() error {
	f.r.presented++
	return nil
}

func (r *Renderer) Acquire() (engine.Frame, error) {
	if r.closed {
		return nil, ErrClosed
	}
	return frame{r: r}, nil
}

func (r *Renderer) Draw(f engine.Frame, globals gpu.Globals, entities []*geometry.GeoEntity, bg []*geometry.BgEntity) error {
	if r.closed {
		return ErrClosed
	}
	if fr, ok := f.(frame); !ok || fr.r != r {
		return fmt.Errorf("raster: foreign frame %T", f)
	}

	r.uniform = gpu.GlobalsBytes(globals)
	r.uploaded += int64(len(r.uniform))

	r.ctx.Clear()
	r.ctx.SetFillRule(gg.FillRuleNonZero)
	for _, b := range bg {
		if err := r.drawBackground(b); err != nil {
			return err
		}
	}

	for _, e := range entities {
		prims := r.upload(e.Active())
		order := make([]int, len(prims))
		for i := range order {
			order[i] = i
		}
		// painter's order stands in for the depth buffer
		sort.SliceStable(order, func(a, b int) bool {
			return prims[order[a]].ZIndex < prims[order[b]].ZIndex
		})

		for _, i := range order {
			p := prims[i]
			if err := r.drawRange(e, e.Fill, p, p.Color, globals); err != nil {
				return err
			}
			if p.Width > 0 {
				if err := r.drawRange(e, e.Stroke, p, p.StrokeColor, globals); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// upload encodes prims into the instance buffer and reads them back the way
// the vertex shader sees them.
func (r *Renderer) upload(prims []gpu.Primitive) []gpu.Primitive {
	r.instances = gpu.PrimitiveBytes(prims)
	r.uploaded += int64(len(r.instances))

	out := make([]gpu.Primitive, 0, len(prims))
	for off := 0; off+gpu.PrimitiveSize <= len(r.instances); off += gpu.PrimitiveSize {
		out = append(out, gpu.DecodePrimitive(r.instances[off:]))
	}
	return out
}

func (r *Renderer) drawBackground(b *geometry.BgEntity) error {
	w, h := r.ctx.Width(), r.ctx.Height()
	r.ctx.SetRGBA(r.Background.R, r.Background.G, r.Background.B, r.Background.A)
	for i := int(b.Range.Start); i+2 < int(b.Range.End); i += 3 {
		for k := range 3 {
			pt := gpu.ClipToScreen(b.Points[b.Indices[i+k]].Point, w, h)
			if k == 0 {
				r.ctx.MoveTo(float64(pt[0]), float64(pt[1]))
			} else {
				r.ctx.LineTo(float64(pt[0]), float64(pt[1]))
			}
		}
		r.ctx.ClosePath()
	}
	return r.ctx.Fill()
}

func (r *Renderer) drawRange(e *geometry.GeoEntity, rng geometry.IndexRange, p gpu.Primitive, color [4]float32, g gpu.Globals) error {
	if color[3] <= 0 || rng.Len() < 3 {
		return nil
	}
	w, h := r.ctx.Width(), r.ctx.Height()
	r.ctx.SetRGBA(float64(color[0]), float64(color[1]), float64(color[2]), float64(color[3]))
	for i := int(rng.Start); i+2 < int(rng.End); i += 3 {
		for k := range 3 {
			v := e.Vertices[e.Indices[i+k]]
			pt := gpu.ClipToScreen(gpu.Project(v, p, g), w, h)
			if k == 0 {
				r.ctx.MoveTo(float64(pt[0]), float64(pt[1]))
			} else {
				r.ctx.LineTo(float64(pt[0]), float64(pt[1]))
			}
		}
		r.ctx.ClosePath()
	}
	return r.ctx.Fill()
}

// Uploaded returns the bytes of vertex, uniform and instance data encoded
// so far.
func (r *Renderer) Uploaded() int64 {
	return r.uploaded
}

// Presented returns the number of frames presented so far.
func (r *Renderer) Presented() int {
	return r.presented
}

func (r *Renderer) Image() image.Image {
	return r.ctx.Image()
}

// WritePNG encodes the last drawn frame.
func (r *Renderer) WritePNG(w io.Writer) error {
	return r.ctx.EncodePNG(w)
}

// SavePNG writes the last drawn frame to path.
func (r *Renderer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := r.WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return f.Close()
}

func (r *Renderer) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.ctx.Close()
}
