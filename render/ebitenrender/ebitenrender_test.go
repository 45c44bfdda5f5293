package ebitenrender

import (
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ruzzle/engine"
	"github.com/plus3/ruzzle/geometry"
	"github.com/plus3/ruzzle/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeymapTranslate(t *testing.T) {
	km := DefaultKeymap()
	evs := km.Translate([]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyF1, ebiten.KeySpace, ebiten.KeyEscape})

	assert.Equal(t, []engine.Event{
		engine.Press(engine.ActionMoveLeft),
		engine.Press(engine.ActionRotateCW),
		engine.Press(engine.ActionQuit),
	}, evs)

	t.Run("every action except none is bound", func(t *testing.T) {
		bound := map[engine.Action]bool{}
		for _, a := range km {
			bound[a] = true
		}
		for a := engine.ActionMoveLeft; a <= engine.ActionQuit; a++ {
			assert.True(t, bound[a], "%s", a)
		}
	})
}

func TestInputQueue(t *testing.T) {
	in := NewInput(nil)
	in.Push(engine.Resized(10, 20), engine.FrameReady())

	assert.Equal(t, []engine.Event{engine.Resized(10, 20), engine.FrameReady()}, in.Poll())
	assert.Empty(t, in.Poll())
}

func TestAppendTriangles(t *testing.T) {
	e, err := geometry.NewBuilder(0).BuildGeo("tetrion", geometry.TetrionPath(), 1, 1, true, true)
	require.NoError(t, err)

	p := gpu.NewPrimitive(1)
	g := gpu.Globals{Resolution: [2]float32{100, 100}, Zoom: 1}
	red := [4]float32{1, 0, 0, 1}

	vs, is := appendTriangles(nil, nil, e, e.Fill, p, red, g, image.Pt(100, 100))
	require.Len(t, vs, e.Fill.Len())
	require.Len(t, is, e.Fill.Len())
	for i, v := range vs {
		assert.Equal(t, uint16(i), is[i])
		assert.Equal(t, float32(1), v.ColorR)
		assert.Equal(t, float32(1), v.SrcX)
		assert.GreaterOrEqual(t, v.DstX, float32(50))
		assert.LessOrEqual(t, v.DstX, float32(60))
	}

	vs, is = appendTriangles(vs, is, e, e.Stroke, p, red, g, image.Pt(100, 100))
	assert.Len(t, vs, e.Fill.Len()+e.Stroke.Len())
	assert.Equal(t, uint16(len(vs)-1), is[len(is)-1])
}

func TestDrawOrder(t *testing.T) {
	e, err := geometry.NewBuilder(0).BuildGeo("tetrion", geometry.TetrionPath(), 3, 1, true, false)
	require.NoError(t, err)
	e.Primitives[0].ZIndex = 7
	e.Primitives[1].ZIndex = 1
	e.Primitives[2].ZIndex = 1

	assert.Equal(t, []int{1, 2, 0}, drawOrder(e))
}

func TestSkippedFrameKeepsLastImage(t *testing.T) {
	r := NewRenderer()
	screen := ebiten.NewImage(40, 30)
	globals := gpu.Globals{Resolution: [2]float32{40, 30}, Zoom: 1}
	require.NoError(t, r.Resize(40, 30))
	assert.Nil(t, r.Last())
	assert.False(t, r.restore(screen), "nothing presented yet")

	r.bind(screen)
	f, err := r.Acquire()
	require.NoError(t, err)
	require.NoError(t, r.Draw(f, globals, nil, nil))
	require.NoError(t, f.Present())

	last := r.Last()
	require.NotNil(t, last)
	assert.Equal(t, image.Pt(40, 30), last.Bounds().Size())

	t.Run("outdated acquire keeps the last frame", func(t *testing.T) {
		require.NoError(t, r.Resize(80, 60))
		r.bind(screen)
		_, err := r.Acquire()
		assert.ErrorIs(t, err, engine.ErrSurfaceOutdated)
		assert.Same(t, last, r.Last())
		assert.True(t, r.restore(screen))
	})

	t.Run("a new size reallocates the canvas", func(t *testing.T) {
		bigger := ebiten.NewImage(80, 60)
		r.bind(bigger)
		f, err := r.Acquire()
		require.NoError(t, err)
		require.NoError(t, r.Draw(f, globals, nil, nil))
		assert.Nil(t, r.Last(), "not presented at the new size yet")

		require.NoError(t, f.Present())
		assert.Equal(t, image.Pt(80, 60), r.Last().Bounds().Size())
	})
}
