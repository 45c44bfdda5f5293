package geometry

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"
)

const epsilon = 1e-9

// polyline is one flattened subpath.
type polyline struct {
	points []gg.Point
	closed bool
}

// flatten splits path into polylines, approximating curves within tolerance.
func flatten(path *gg.Path, tolerance float64) []polyline {
	var (
		out     []polyline
		current *polyline
		cursor  gg.Point
	)

	start := func(p gg.Point) {
		out = append(out, polyline{points: []gg.Point{p}})
		current = &out[len(out)-1]
		cursor = p
	}
	ensure := func() {
		if current == nil {
			start(cursor)
		}
	}

	for _, elem := range path.Elements() {
		switch e := elem.(type) {
		case gg.MoveTo:
			start(e.Point)
		case gg.LineTo:
			ensure()
			current.points = append(current.points, e.Point)
			cursor = e.Point
		case gg.QuadTo:
			ensure()
			seg := gg.NewPath()
			seg.MoveTo(cursor.X, cursor.Y)
			seg.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
			current.points = append(current.points, seg.Flatten(tolerance)[1:]...)
			cursor = e.Point
		case gg.CubicTo:
			ensure()
			seg := gg.NewPath()
			seg.MoveTo(cursor.X, cursor.Y)
			seg.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
			current.points = append(current.points, seg.Flatten(tolerance)[1:]...)
			cursor = e.Point
		case gg.Close:
			if current != nil {
				current.closed = true
				cursor = current.points[0]
				current = nil
			}
		}
	}

	for i := range out {
		out[i].points = dedupe(out[i].points, out[i].closed)
	}
	return out
}

// dedupe drops repeated consecutive points and, for closed loops, a trailing
// copy of the first point.
func dedupe(pts []gg.Point, closed bool) []gg.Point {
	out := pts[:0]
	for _, p := range pts {
		if len(out) > 0 && near(out[len(out)-1], p) {
			continue
		}
		out = append(out, p)
	}
	if closed && len(out) > 1 && near(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

func near(a, b gg.Point) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon
}

func signedArea(pts []gg.Point) float64 {
	var a float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

// triangulate ear-clips a simple polygon and returns index triples into pts.
func triangulate(pts []gg.Point) ([][3]int, error) {
	if len(pts) < 3 {
		return nil, fmt.Errorf("%w: polygon has %d points", ErrGeometry, len(pts))
	}
	area := signedArea(pts)
	if math.Abs(area) < epsilon {
		return nil, fmt.Errorf("%w: degenerate polygon", ErrGeometry)
	}

	ring := make([]int, len(pts))
	for i := range ring {
		ring[i] = i
	}
	if area < 0 {
		for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
			ring[i], ring[j] = ring[j], ring[i]
		}
	}

	tris := make([][3]int, 0, len(pts)-2)
	for len(ring) > 3 {
		clipped := false
		for i := range ring {
			a, b, c := ring[(i+len(ring)-1)%len(ring)], ring[i], ring[(i+1)%len(ring)]
			cross := pts[b].Sub(pts[a]).Cross(pts[c].Sub(pts[b]))
			if math.Abs(cross) < epsilon {
				// collinear vertex, drop it without emitting a sliver
				ring = append(ring[:i], ring[i+1:]...)
				clipped = true
				break
			}
			if cross < 0 || containsAny(pts, ring, a, b, c) {
				continue
			}
			tris = append(tris, [3]int{a, b, c})
			ring = append(ring[:i], ring[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return nil, fmt.Errorf("%w: polygon is not simple", ErrGeometry)
		}
	}

	last := [3]int{ring[0], ring[1], ring[2]}
	if math.Abs(pts[last[1]].Sub(pts[last[0]]).Cross(pts[last[2]].Sub(pts[last[1]]))) >= epsilon {
		tris = append(tris, last)
	}
	return tris, nil
}

func containsAny(pts []gg.Point, ring []int, a, b, c int) bool {
	for _, k := range ring {
		if k == a || k == b || k == c {
			continue
		}
		if inTriangle(pts[k], pts[a], pts[b], pts[c]) {
			return true
		}
	}
	return false
}

func inTriangle(p, a, b, c gg.Point) bool {
	d1 := b.Sub(a).Cross(p.Sub(a))
	d2 := c.Sub(b).Cross(p.Sub(b))
	d3 := a.Sub(c).Cross(p.Sub(c))
	return d1 > epsilon && d2 > epsilon && d3 > epsilon
}

// strokeVertex is a point on the outline with the offset direction for a
// unit-width stroke.
type strokeVertex struct {
	pos    gg.Point
	normal gg.Point
}

// strokeQuads expands a polyline into a triangle strip of quads, two vertices
// per input point, with mitred normals at interior joints.
func strokeQuads(pl polyline) ([]strokeVertex, [][3]int) {
	n := len(pl.points)
	if n < 2 {
		return nil, nil
	}

	segNormal := func(i, j int) gg.Point {
		d := pl.points[j].Sub(pl.points[i]).Normalize()
		return gg.Pt(-d.Y, d.X)
	}

	verts := make([]strokeVertex, 0, 2*n)
	for i, p := range pl.points {
		var m gg.Point
		switch {
		case pl.closed:
			m = miter(segNormal((i+n-1)%n, i), segNormal(i, (i+1)%n))
		case i == 0:
			m = segNormal(0, 1)
		case i == n-1:
			m = segNormal(n-2, n-1)
		default:
			m = miter(segNormal(i-1, i), segNormal(i, i+1))
		}
		verts = append(verts,
			strokeVertex{pos: p, normal: m},
			strokeVertex{pos: p, normal: m.Mul(-1)},
		)
	}

	segments := n - 1
	if pl.closed {
		segments = n
	}
	tris := make([][3]int, 0, 2*segments)
	for s := 0; s < segments; s++ {
		a, b := 2*s, 2*((s+1)%n)
		tris = append(tris, [3]int{a, a + 1, b}, [3]int{a + 1, b + 1, b})
	}
	return verts, tris
}

// miter combines two unit normals so the offset edge stays at unit distance
// from both segments.
func miter(n1, n2 gg.Point) gg.Point {
	sum := n1.Add(n2)
	denom := 1 + n1.Dot(n2)
	if denom < epsilon {
		return n1
	}
	return sum.Div(denom)
}
