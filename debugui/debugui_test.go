package debugui_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ruzzle/debugui"
	"github.com/plus3/ruzzle/ecs"
	"github.com/plus3/ruzzle/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Tag struct {
	Label string
}

type Stats struct {
	Level   int8
	Count   uint16
	Ratio   float32
	Visible bool
	Note    string
	Inner   struct{ X int }
	Ref     *Tag
	hidden  int
}

func newStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Tag](registry)
	ecs.RegisterComponent[Stats](registry)
	return ecs.NewStorage(registry)
}

func TestEntityBrowser(t *testing.T) {
	storage := newStorage()
	a := storage.Spawn(Tag{Label: "a"})
	b := storage.Spawn(Tag{Label: "b"}, Stats{})
	c := storage.Spawn(Stats{})

	eb := debugui.NewEntityBrowser(2)
	eb.Refresh(storage)

	ids := func(rows []debugui.EntityRow) []ecs.EntityId {
		var out []ecs.EntityId
		for _, r := range rows {
			out = append(out, r.ID)
		}
		return out
	}

	t.Run("sorted by id", func(t *testing.T) {
		assert.Equal(t, []ecs.EntityId{a, b, c}, ids(eb.Rows()))
		assert.Equal(t, []string{"debugui_test.Tag", "debugui_test.Stats"}, eb.Rows()[1].Components)
	})

	t.Run("sort by component count descending", func(t *testing.T) {
		eb.SortBy(debugui.ColumnCount, false)
		assert.Equal(t, b, eb.Rows()[0].ID)
		eb.SortBy(debugui.ColumnID, true)
	})

	t.Run("filter matches component names case-insensitively", func(t *testing.T) {
		eb.Filter = "STATS"
		assert.Equal(t, []ecs.EntityId{b, c}, ids(eb.Rows()))
		eb.Filter = ""
	})

	t.Run("paging clamps", func(t *testing.T) {
		eb.Page = 7
		rows, pages := eb.PageRows()
		assert.Equal(t, 2, pages)
		assert.Equal(t, 1, eb.Page)
		assert.Equal(t, []ecs.EntityId{c}, ids(rows))
	})

	t.Run("refresh drops deleted selection", func(t *testing.T) {
		eb.Selected = c
		storage.Delete(c)
		eb.Refresh(storage)
		assert.Zero(t, eb.Selected)
		assert.Equal(t, []ecs.EntityId{a, b}, ids(eb.Rows()))
	})
}

func TestFields(t *testing.T) {
	fields := debugui.Fields(reflect.TypeFor[*Stats]())
	var names []string
	for _, f := range fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Level", "Count", "Ratio", "Visible", "Note", "Inner", "Ref"}, names)
	assert.True(t, fields[6].IsPointer)
	assert.Equal(t, reflect.TypeFor[Tag](), fields[6].Type)

	assert.Empty(t, debugui.Fields(reflect.TypeFor[int]()))
}

func TestSetField(t *testing.T) {
	storage := newStorage()
	id := storage.Spawn(Stats{})
	comp := storage.GetComponent(id, reflect.TypeFor[Stats]())
	v := reflect.ValueOf(comp).Elem()

	tests := []struct {
		field string
		value any
		ok    bool
	}{
		{"Level", int64(-5), true},
		{"Level", int64(300), false},
		{"Count", int64(9), true},
		{"Count", int64(-1), false},
		{"Ratio", 0.5, true},
		{"Ratio", "x", false},
		{"Visible", true, true},
		{"Note", "hello", true},
		{"Note", 3, false},
		{"Inner", 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.ok, debugui.SetField(v.FieldByName(tt.field), tt.value))
		})
	}

	got := ecs.Get[Stats](storage, id)
	assert.Equal(t, int8(-5), got.Level)
	assert.Equal(t, uint16(9), got.Count)
	assert.Equal(t, float32(0.5), got.Ratio)
	assert.True(t, got.Visible)
	assert.Equal(t, "hello", got.Note)

	assert.False(t, debugui.SetField(reflect.ValueOf(Stats{}).Field(0), int64(1)), "unaddressable")
}

func TestPerformanceStats(t *testing.T) {
	ps := debugui.NewPerformanceStats(3)
	assert.Zero(t, ps.Average())

	ps.Record(0.010)
	ps.Record(0.020)
	assert.InDelta(t, 15, ps.Average(), 1e-4)

	ps.Record(0.030)
	ps.Record(0.040)
	assert.InDelta(t, 30, ps.Average(), 1e-4, "oldest sample is overwritten")
}

func TestFrameTimer(t *testing.T) {
	now := time.Unix(100, 0)
	timer := debugui.NewFrameTimer(func() time.Time { return now })

	assert.Zero(t, timer.Tick())
	now = now.Add(250 * time.Millisecond)
	assert.InDelta(t, 0.25, timer.Tick(), 1e-9)
	assert.Zero(t, timer.Tick())
}

type fakeBackend struct {
	begins, ends int
	width        int
}

func (b *fakeBackend) BeginFrame()               { b.begins++ }
func (b *fakeBackend) EndFrame()                 { b.ends++ }
func (b *fakeBackend) Draw(screen *ebiten.Image) {}
func (b *fakeBackend) Layout(width, height int)  { b.width = width }

func TestOverlay(t *testing.T) {
	sim, err := game.New(game.DefaultOptions())
	require.NoError(t, err)

	backend := &fakeBackend{}
	overlay := debugui.NewOverlay(sim, backend, nil)

	assert.Equal(t, 6, overlay.Storage().EntityCount())
	assert.Equal(t, 6, ecs.NewQuery[debugui.ImguiItem](overlay.Storage()).Count())
	assert.Same(t, sim, ecs.NewSingleton[debugui.Target](overlay.Storage()).Get().Sim)

	keyboard, pointer := overlay.Captures()
	assert.False(t, keyboard)
	assert.False(t, pointer)

	ecs.NewSingleton[debugui.ImguiInputState](overlay.Storage()).Get().WantCaptureKeyboard = true
	keyboard, _ = overlay.Captures()
	assert.True(t, keyboard)

	overlay.Layout(640, 480)
	assert.Equal(t, 640, backend.width)
}
