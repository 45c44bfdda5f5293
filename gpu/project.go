package gpu

import "math"

// DepthRange divides ZIndex into normalised depth.
const DepthRange = 4096

// Project maps vertex v of the instance described by p to clip space, the
// transform the geometry vertex shader applies.
func Project(v Vertex, p Primitive, g Globals) [2]float32 {
	local := [2]float32{
		v.Position[0]*p.Scale + v.Normal[0]*p.Width,
		v.Position[1]*p.Scale + v.Normal[1]*p.Width,
	}
	if p.Angle != 0 {
		sin, cos := math.Sincos(float64(p.Angle))
		s, c := float32(sin), float32(cos)
		local = [2]float32{local[0]*c - local[1]*s, local[0]*s + local[1]*c}
	}

	var out [2]float32
	for i := range out {
		world := local[i] - g.ScrollOffset[i] + p.Translate[i]
		out[i] = world * g.Zoom / (0.5 * g.Resolution[i])
	}
	out[1] = -out[1]
	return out
}

// ClipToScreen converts clip coordinates to pixels with the origin top-left.
func ClipToScreen(c [2]float32, width, height int) [2]float32 {
	return [2]float32{
		(c[0] + 1) / 2 * float32(width),
		(1 - c[1]) / 2 * float32(height),
	}
}

// Depth is the normalised depth of an instance. Larger is nearer.
func Depth(p Primitive) float32 {
	return float32(p.ZIndex) / DepthRange
}
