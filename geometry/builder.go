package geometry

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"
	"github.com/plus3/ruzzle/gpu"
)

// DefaultTolerance is the maximum distance between a curve and its flattening.
const DefaultTolerance = 0.02

// Builder turns paths into entities.
type Builder struct {
	Tolerance float64
}

// NewBuilder returns a builder flattening curves within tolerance.
// Non-positive values select DefaultTolerance.
func NewBuilder(tolerance float64) *Builder {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Builder{Tolerance: tolerance}
}

// BuildGeo tessellates path for fill and/or stroke and wraps the result in a
// GeoEntity sized for instances.
func (b *Builder) BuildGeo(name string, path *gg.Path, instances int, scale float32, fill, stroke bool) (*GeoEntity, error) {
	lines := flatten(path, b.Tolerance)
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: %s: empty path", ErrGeometry, name)
	}

	var (
		verts   []gpu.Vertex
		indices []uint16
	)
	emit := func(tris [][3]int, base int) error {
		for _, t := range tris {
			for _, i := range t {
				idx := base + i
				if idx > math.MaxUint16 {
					return fmt.Errorf("%w: %s: too many vertices", ErrGeometry, name)
				}
				indices = append(indices, uint16(idx))
			}
		}
		return nil
	}

	if fill {
		for _, pl := range lines {
			tris, err := triangulate(pl.points)
			if err != nil {
				return nil, fmt.Errorf("%s fill: %w", name, err)
			}
			base := len(verts)
			for _, p := range pl.points {
				verts = append(verts, gpu.Vertex{Position: point32(p)})
			}
			if err := emit(tris, base); err != nil {
				return nil, err
			}
		}
	}
	fillRange := IndexRange{Start: 0, End: uint32(len(indices))}

	if stroke {
		for _, pl := range lines {
			sv, tris := strokeQuads(pl)
			if len(sv) == 0 {
				continue
			}
			base := len(verts)
			for _, v := range sv {
				verts = append(verts, gpu.Vertex{Position: point32(v.pos), Normal: point32(v.normal)})
			}
			if err := emit(tris, base); err != nil {
				return nil, err
			}
		}
	}
	strokeRange := IndexRange{Start: fillRange.End, End: uint32(len(indices))}

	return NewGeoEntity(name, verts, indices, fillRange, strokeRange, scale, instances)
}

// BuildBackground tessellates an axis-aligned rectangle into the background quad.
func (b *Builder) BuildBackground(rect gg.Rect) (*BgEntity, error) {
	path := gg.BuildPath().Rect(rect.Min.X, rect.Min.Y, rect.Width(), rect.Height()).Build()
	lines := flatten(path, b.Tolerance)
	if len(lines) != 1 {
		return nil, fmt.Errorf("%w: background", ErrGeometry)
	}

	tris, err := triangulate(lines[0].points)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}

	bg := &BgEntity{}
	for _, p := range lines[0].points {
		bg.Points = append(bg.Points, gpu.BgPoint{Point: point32(p)})
	}
	for _, t := range tris {
		bg.Indices = append(bg.Indices, uint16(t[0]), uint16(t[1]), uint16(t[2]))
	}
	bg.Range = IndexRange{Start: 0, End: uint32(len(bg.Indices))}
	return bg, nil
}

func point32(p gg.Point) [2]float32 {
	return [2]float32{float32(p.X), float32(p.Y)}
}
