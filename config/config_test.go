package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/ruzzle/config"
	"github.com/plus3/ruzzle/logx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, uint32(4), cfg.Graphics.SampleCount)
	assert.Equal(t, 0.02, cfg.Graphics.Tolerance)
	assert.True(t, cfg.Graphics.UseLowPowerGPU)
	assert.Equal(t, 10, cfg.Game.Cols)
	assert.Equal(t, 16, cfg.Game.Rows)
}

func TestParse(t *testing.T) {
	t.Run("graphics only", func(t *testing.T) {
		cfg, err := config.Parse([]byte(`
graphics:
  use_low_power_gpu: false
  sample_count: 1
  tolerance: 0.5
`))
		require.NoError(t, err)
		assert.False(t, cfg.Graphics.UseLowPowerGPU)
		assert.Equal(t, uint32(1), cfg.Graphics.SampleCount)
		assert.Equal(t, 0.5, cfg.Graphics.Tolerance)
		assert.Equal(t, 10, cfg.Game.Cols, "missing sections use defaults")
		assert.Equal(t, 1.0, cfg.Game.Speed)
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("game and log", func(t *testing.T) {
		cfg, err := config.Parse([]byte(`
game:
  cols: 8
  rows: 12
  speed: 2.5
  seed: 42
log:
  level: debug
  development: true
`))
		require.NoError(t, err)
		assert.Equal(t, config.Game{Cols: 8, Rows: 12, Speed: 2.5, Seed: 42}, cfg.Game)
		assert.Equal(t, config.Log{Level: "debug", Development: true}, cfg.Log)
		assert.Equal(t, uint32(4), cfg.Graphics.SampleCount)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := config.Parse([]byte("graphics: [1, 2"))
		assert.Error(t, err)
	})
}

func TestSaveRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ruzzle.yaml")
	cfg := config.Default()
	cfg.Game.Seed = 99
	cfg.Log.Level = "warn"

	require.NoError(t, config.Save(path, cfg))
	got, err := config.Read(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "sample_count: 4")
}

func TestLoad(t *testing.T) {
	t.Run("missing file writes defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ruzzle.yaml")

		cfg := config.Load(path, logx.Nop())
		assert.Equal(t, config.Default(), cfg)

		saved, err := config.Read(path)
		require.NoError(t, err)
		assert.Equal(t, config.Default(), saved)
	})

	t.Run("malformed file is replaced", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ruzzle.yaml")
		require.NoError(t, os.WriteFile(path, []byte("graphics: {sample_count: nope"), 0o644))

		cfg := config.Load(path, logx.Nop())
		assert.Equal(t, config.Default(), cfg)

		saved, err := config.Read(path)
		require.NoError(t, err)
		assert.Equal(t, config.Default(), saved)
	})

	t.Run("existing file is kept", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ruzzle.yaml")
		require.NoError(t, os.WriteFile(path, []byte("graphics:\n  sample_count: 8\n"), 0o644))

		cfg := config.Load(path, logx.Nop())
		assert.Equal(t, uint32(8), cfg.Graphics.SampleCount)
	})

	t.Run("unwritable location still yields defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing-dir", "ruzzle.yaml")
		assert.Equal(t, config.Default(), config.Load(path, logx.Nop()))
	})
}

func TestDefaultPath(t *testing.T) {
	path, err := config.DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, ".yaml", filepath.Ext(path))
}
