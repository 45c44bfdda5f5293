// Package gpu defines the byte layouts shared between the simulation and the renderer.
package gpu

import (
	"encoding/binary"
	"math"
)

// PrimBufferLen is the fixed number of primitives every geometry entity carries.
const PrimBufferLen = 180

const (
	PrimitiveSize = 64
	GlobalsSize   = 24
	VertexSize    = 20
	BgPointSize   = 8
)

// Primitive is the per-instance record consumed by the vertex shader.
type Primitive struct {
	Color       [4]float32
	StrokeColor [4]float32
	Translate   [2]float32
	ZIndex      int32
	Width       float32
	Angle       float32
	Scale       float32
	_           [2]int32
}

// DefaultPrimitive is opaque black at unit scale.
var DefaultPrimitive = Primitive{
	Color: [4]float32{0, 0, 0, 1},
	Scale: 1,
}

// NewPrimitive returns DefaultPrimitive with the given scale.
func NewPrimitive(scale float32) Primitive {
	p := DefaultPrimitive
	p.Scale = scale
	return p
}

// Globals is the camera uniform block.
type Globals struct {
	Resolution   [2]float32
	ScrollOffset [2]float32
	Zoom         float32
	_            int32
}

// Vertex is a tessellated path vertex. PrimID selects the instance primitive.
type Vertex struct {
	Position [2]float32
	Normal   [2]float32
	PrimID   int32
}

// BgPoint is a background quad vertex.
type BgPoint struct {
	Point [2]float32
}

// AppendPrimitive appends the little-endian encoding of p to dst.
func AppendPrimitive(dst []byte, p Primitive) []byte {
	dst = appendFloats(dst, p.Color[:]...)
	dst = appendFloats(dst, p.StrokeColor[:]...)
	dst = appendFloats(dst, p.Translate[:]...)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(p.ZIndex))
	dst = appendFloats(dst, p.Width, p.Angle, p.Scale)
	return append(dst, make([]byte, 8)...)
}

// PrimitiveBytes encodes prims for upload into an instance buffer.
func PrimitiveBytes(prims []Primitive) []byte {
	buf := make([]byte, 0, len(prims)*PrimitiveSize)
	for _, p := range prims {
		buf = AppendPrimitive(buf, p)
	}
	return buf
}

// DecodePrimitive reads one primitive from the first PrimitiveSize bytes of b.
func DecodePrimitive(b []byte) Primitive {
	var p Primitive
	f := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b[off:])) }
	for i := range 4 {
		p.Color[i] = f(i * 4)
		p.StrokeColor[i] = f(16 + i*4)
	}
	p.Translate = [2]float32{f(32), f(36)}
	p.ZIndex = int32(binary.LittleEndian.Uint32(b[40:]))
	p.Width = f(44)
	p.Angle = f(48)
	p.Scale = f(52)
	return p
}

// GlobalsBytes encodes the uniform block.
func GlobalsBytes(g Globals) []byte {
	buf := make([]byte, 0, GlobalsSize)
	buf = appendFloats(buf, g.Resolution[0], g.Resolution[1], g.ScrollOffset[0], g.ScrollOffset[1], g.Zoom)
	return append(buf, 0, 0, 0, 0)
}

// VertexBytes encodes a vertex buffer.
func VertexBytes(verts []Vertex) []byte {
	buf := make([]byte, 0, len(verts)*VertexSize)
	for _, v := range verts {
		buf = appendFloats(buf, v.Position[0], v.Position[1], v.Normal[0], v.Normal[1])
		buf = binary.LittleEndian.AppendUint32(buf, uint32(v.PrimID))
	}
	return buf
}

func appendFloats(dst []byte, vs ...float32) []byte {
	for _, v := range vs {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
	}
	return dst
}
