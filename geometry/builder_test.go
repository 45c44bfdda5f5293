package geometry

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
	"github.com/plus3/ruzzle/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledArea(e *GeoEntity) float64 {
	var total float64
	idx := e.Indices[e.Fill.Start:e.Fill.End]
	for i := 0; i+2 < len(idx); i += 3 {
		a, b, c := e.Vertices[idx[i]].Position, e.Vertices[idx[i+1]].Position, e.Vertices[idx[i+2]].Position
		cross := float64((b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0]))
		total += math.Abs(cross) / 2
	}
	return total
}

func TestBuildGeo(t *testing.T) {
	b := NewBuilder(DefaultTolerance)

	t.Run("tetrion fill and stroke", func(t *testing.T) {
		e, err := b.BuildGeo("tetrion", TetrionPath(), 176, 0.8, true, true)
		require.NoError(t, err)

		assert.Equal(t, IndexRange{Start: 0, End: 6}, e.Fill)
		assert.Equal(t, IndexRange{Start: 6, End: 30}, e.Stroke)
		assert.Len(t, e.Vertices, 12)
		assert.InDelta(t, 100, filledArea(e), 1e-6)

		for _, v := range e.Vertices[:4] {
			assert.Equal(t, [2]float32{0, 0}, v.Normal)
		}
		for _, v := range e.Vertices[4:] {
			n := math.Hypot(float64(v.Normal[0]), float64(v.Normal[1]))
			assert.InDelta(t, math.Sqrt2, n, 1e-6)
		}
	})

	t.Run("primitives are preallocated", func(t *testing.T) {
		e, err := b.BuildGeo("tetrion", TetrionPath(), 176, 0.8, true, false)
		require.NoError(t, err)
		assert.Len(t, e.Primitives, gpu.PrimBufferLen)
		assert.Len(t, e.Active(), 176)
		assert.Equal(t, float32(0.8), e.Primitives[gpu.PrimBufferLen-1].Scale)
		assert.Zero(t, e.Stroke.Len())
	})

	t.Run("concave arrow", func(t *testing.T) {
		e, err := b.BuildGeo("arrow", arrowPath(), 1, 1, true, true)
		require.NoError(t, err)
		assert.InDelta(t, 2.1, filledArea(e), 1e-5)
		assert.Equal(t, 7*2*3, e.Stroke.Len())
	})

	t.Run("curves are flattened", func(t *testing.T) {
		fine := NewBuilder(0.001)
		e, err := fine.BuildGeo("circle", gg.BuildPath().Circle(0, 0, 1).Build(), 1, 1, true, false)
		require.NoError(t, err)
		assert.InDelta(t, math.Pi, filledArea(e), 0.01)
		assert.Greater(t, len(e.Vertices), 8)
	})

	t.Run("degenerate fill fails", func(t *testing.T) {
		line := gg.BuildPath().MoveTo(0, 0).LineTo(5, 5).Build()
		_, err := b.BuildGeo("line", line, 1, 1, true, false)
		assert.ErrorIs(t, err, ErrGeometry)

		e, err := b.BuildGeo("line", line, 1, 1, false, true)
		require.NoError(t, err)
		assert.Equal(t, 6, e.Stroke.Len())
	})

	t.Run("empty path fails", func(t *testing.T) {
		_, err := b.BuildGeo("empty", gg.NewPath(), 1, 1, true, true)
		assert.ErrorIs(t, err, ErrGeometry)
	})

	t.Run("capacity", func(t *testing.T) {
		_, err := b.BuildGeo("tetrion", TetrionPath(), gpu.PrimBufferLen+1, 1, true, true)
		assert.ErrorIs(t, err, ErrCapacity)

		_, err = b.BuildGeo("tetrion", TetrionPath(), gpu.PrimBufferLen, 1, true, true)
		assert.NoError(t, err)
	})
}

func TestBuildBackground(t *testing.T) {
	bg, err := NewBuilder(0).BuildBackground(ClipRect())
	require.NoError(t, err)
	assert.Len(t, bg.Points, 4)
	assert.Len(t, bg.Indices, 6)
	assert.Equal(t, IndexRange{Start: 0, End: 6}, bg.Range)
}

func TestTriangulate(t *testing.T) {
	t.Run("clockwise input", func(t *testing.T) {
		pts := []gg.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}
		tris, err := triangulate(pts)
		require.NoError(t, err)
		assert.Len(t, tris, 2)
	})

	t.Run("collinear points are skipped", func(t *testing.T) {
		pts := []gg.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}
		tris, err := triangulate(pts)
		require.NoError(t, err)
		var area float64
		for _, tri := range tris {
			a := math.Abs(pts[tri[1]].Sub(pts[tri[0]]).Cross(pts[tri[2]].Sub(pts[tri[0]]))) / 2
			assert.Greater(t, a, 0.0)
			area += a
		}
		assert.InDelta(t, 4, area, 1e-9)
	})

	t.Run("too few points", func(t *testing.T) {
		_, err := triangulate([]gg.Point{{X: 0, Y: 0}, {X: 1, Y: 1}})
		assert.ErrorIs(t, err, ErrGeometry)
	})
}

func TestFlattenDedupe(t *testing.T) {
	lines := flatten(TetrionPath(), DefaultTolerance)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].closed)
	assert.Len(t, lines[0].points, 4)
}

// arrowPath is a concave right-pointing arrow centred on the origin.
func arrowPath() *gg.Path {
	return gg.BuildPath().
		MoveTo(-1, -0.3).
		LineTo(0, -0.3).
		LineTo(0, -1).
		LineTo(1.5, 0).
		LineTo(0, 1).
		LineTo(0, 0.3).
		LineTo(-1, 0.3).
		Close().
		Build()
}
