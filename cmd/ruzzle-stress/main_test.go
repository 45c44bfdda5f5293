package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/plus3/ruzzle/gpu"
	"github.com/plus3/ruzzle/logx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3, 1, 2, 10}}
	s.Finalize()
	assert.Equal(t, time.Duration(1), s.Min)
	assert.Equal(t, time.Duration(10), s.Max)
	assert.Equal(t, time.Duration(4), s.Avg)
	assert.Equal(t, time.Duration(3), s.P99)
	assert.Equal(t, []time.Duration{3, 1, 2, 10}, s.Samples, "samples keep their order")

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Max)
}

func TestRun(t *testing.T) {
	for _, render := range []bool{false, true} {
		report, err := Run(context.Background(), Options{
			Duration: 50 * time.Millisecond,
			Seed:     3,
			Speed:    60,
			Render:   render,
		}, logx.Nop())
		require.NoError(t, err)

		assert.Positive(t, report.TotalTicks)
		assert.Len(t, report.TickTime.Samples, int(report.TotalTicks))
		assert.Equal(t, 10, report.Cols)
		assert.Equal(t, uint64(3), report.Seed)
		assert.Positive(t, report.Spawns)
		require.Len(t, report.Systems, 6)
		assert.Equal(t, "SpawnSystem", report.Systems[0].Name)
		assert.Equal(t, report.TotalTicks, report.Systems[0].ExecutionCount)

		var buf bytes.Buffer
		require.NoError(t, report.Generate(&buf))
		assert.Contains(t, buf.String(), "# Ruzzle Stress Test Report")
		assert.Contains(t, buf.String(), "| GravitySystem |")

		if !render {
			assert.Zero(t, report.UploadedBytes)
			assert.NotContains(t, buf.String(), "GPU Data Encoded")
			continue
		}
		// one uniform block and a full instance buffer per tick
		perTick := uint64(gpu.GlobalsSize + (report.Cols*report.Rows+16)*gpu.PrimitiveSize)
		assert.Greater(t, report.UploadedBytes, uint64(report.TotalTicks)*perTick)
		assert.Contains(t, buf.String(), "GPU Data Encoded")
	}
}

func TestRunRejectsOversizedBoard(t *testing.T) {
	_, err := Run(context.Background(), Options{Duration: time.Millisecond, Cols: 30, Rows: 30}, logx.Nop())
	assert.Error(t, err)
}
