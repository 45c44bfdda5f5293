package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ruzzle/ecs"
)

// PerformanceStats keeps a ring of recent frame times in milliseconds.
type PerformanceStats struct {
	history []float32
	index   int
	filled  int
}

func NewPerformanceStats(historyFrames int) *PerformanceStats {
	if historyFrames < 1 {
		historyFrames = 1
	}
	return &PerformanceStats{history: make([]float32, historyFrames)}
}

// Record stores a frame duration given in seconds.
func (ps *PerformanceStats) Record(dt float64) {
	ps.history[ps.index] = float32(dt * 1000)
	ps.index = (ps.index + 1) % len(ps.history)
	if ps.filled < len(ps.history) {
		ps.filled++
	}
}

// Average is the mean of the recorded frame times in milliseconds.
func (ps *PerformanceStats) Average() float32 {
	if ps.filled == 0 {
		return 0
	}
	var sum float32
	for _, ft := range ps.history[:ps.filled] {
		sum += ft
	}
	return sum / float32(ps.filled)
}

func (ps *PerformanceStats) Render(storage *ecs.Storage, scheduler *ecs.Scheduler) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(340, 320), imgui.CondOnce)
	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := storage.CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Pools: %d", stats.PoolCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	if avg := ps.Average(); avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000/avg))
	}
	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.history[0], int32(len(ps.history)))

	if imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, s := range scheduler.GetStats().Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(s.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", s.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(s.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(s.MaxDuration.String())
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Pools") {
		for _, p := range stats.PoolBreakdown {
			imgui.BulletText(fmt.Sprintf("%s: %d", p.ComponentType, p.Count))
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singleton Details") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	imgui.End()
}

// FrameTimer measures wall time between successive Tick calls.
type FrameTimer struct {
	last time.Time
	now  func() time.Time
}

// NewFrameTimer reads time from now, or the wall clock when now is nil.
func NewFrameTimer(now func() time.Time) FrameTimer {
	if now == nil {
		now = time.Now
	}
	return FrameTimer{now: now}
}

// Tick returns the seconds since the previous call, or zero on the first.
func (ft *FrameTimer) Tick() float64 {
	if ft.now == nil {
		ft.now = time.Now
	}
	now := ft.now()
	if ft.last.IsZero() {
		ft.last = now
		return 0
	}
	delta := now.Sub(ft.last).Seconds()
	ft.last = now
	return delta
}
