// Package geometry tessellates vector paths into vertex and index buffers and
// pairs them with per-instance primitive arrays.
package geometry

import (
	"errors"
	"fmt"

	"github.com/plus3/ruzzle/gpu"
)

var (
	ErrGeometry = errors.New("cannot build geometry")
	ErrCapacity = errors.New("instance count exceeds primitive buffer")
)

// IndexRange is a half-open span of the index buffer.
type IndexRange struct {
	Start, End uint32
}

func (r IndexRange) Len() int {
	return int(r.End - r.Start)
}

// GeoEntity is one tessellated path drawn Instances times, each instance
// parameterised by the primitive at the same index.
type GeoEntity struct {
	Name       string
	Vertices   []gpu.Vertex
	Indices    []uint16
	Fill       IndexRange
	Stroke     IndexRange
	Scale      float32
	Instances  int
	Primitives []gpu.Primitive
}

// NewGeoEntity allocates a full PrimBufferLen primitive array at scale.
func NewGeoEntity(name string, vertices []gpu.Vertex, indices []uint16, fill, stroke IndexRange, scale float32, instances int) (*GeoEntity, error) {
	if instances < 0 || instances > gpu.PrimBufferLen {
		return nil, fmt.Errorf("%w: %s wants %d instances, buffer holds %d", ErrCapacity, name, instances, gpu.PrimBufferLen)
	}

	prims := make([]gpu.Primitive, gpu.PrimBufferLen)
	for i := range prims {
		prims[i] = gpu.NewPrimitive(scale)
	}

	return &GeoEntity{
		Name:       name,
		Vertices:   vertices,
		Indices:    indices,
		Fill:       fill,
		Stroke:     stroke,
		Scale:      scale,
		Instances:  instances,
		Primitives: prims,
	}, nil
}

// Active returns the primitives of the instances that are drawn.
func (e *GeoEntity) Active() []gpu.Primitive {
	return e.Primitives[:e.Instances]
}

// BgEntity is the full-screen background quad.
type BgEntity struct {
	Points  []gpu.BgPoint
	Indices []uint16
	Range   IndexRange
}
