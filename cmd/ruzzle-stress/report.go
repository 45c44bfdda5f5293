package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/ruzzle/ecs"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Cols     int
	Rows     int
	Seed     uint64
	Speed    float64
	Render   bool

	// Results
	TotalTicks     int64
	TotalTime      time.Duration
	SimulatedTime  float64
	Spawns         int
	Occupied       int
	UploadedBytes  uint64
	TickTime       Stats
	Systems        []ecs.SystemStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P99     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	for _, sample := range s.Samples {
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.P99 = sorted[(len(sorted)-1)*99/100]
}

const reportTemplate = `
# Ruzzle Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Board:** {{.Cols}}x{{.Rows}}
- **Seed:** {{.Seed}}
- **Speed:** {{.Speed}}
- **Raster Rendering:** {{.Render}}

## Performance Results
- **Total Ticks:** {{.TotalTicks}}
- **Total Test Time:** {{.TotalTime}}
- **Simulated Time:** {{printf "%.1f" .SimulatedTime}}s
- **Pieces Spawned:** {{.Spawns}}
- **Occupied Cells At End:** {{.Occupied}}
{{- if .Render}}
- **GPU Data Encoded:** {{mb .UploadedBytes}} MiB ({{.UploadedBytes}} B)
{{- end}}
- **Tick Time:**
  - **Avg:** {{.TickTime.Avg}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}
  - **P99:** {{.TickTime.P99}}

## Systems
| System | Runs | Avg | Max |
|--------|------|-----|-----|
{{range .Systems}}| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{end}}
## Memory Usage
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} MiB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MiB (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}} B
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{ns (bsub .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs)}}
{{end}}`

var reportFuncs = template.FuncMap{
	"mb": func(v uint64) string {
		return fmt.Sprintf("%.2f", float64(v)/1024/1024)
	},
	"bsub": func(a, b uint64) int64 {
		return int64(a) - int64(b)
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"ns": func(ns int64) string {
		return time.Duration(ns).String()
	},
}

var reportTmpl = template.Must(template.New("report").Funcs(reportFuncs).Parse(reportTemplate))

func (r *Report) Generate(w io.Writer) error {
	return reportTmpl.Execute(w, r)
}
