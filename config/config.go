// Package config loads and saves the YAML settings file that sits next to
// the executable.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/plus3/ruzzle/logx"
)

type Config struct {
	Graphics Graphics `yaml:"graphics"`
	Game     Game     `yaml:"game"`
	Log      Log      `yaml:"log"`
}

type Graphics struct {
	UseLowPowerGPU bool    `yaml:"use_low_power_gpu"`
	SampleCount    uint32  `yaml:"sample_count"`
	Tolerance      float64 `yaml:"tolerance"`
}

type Game struct {
	Cols     int     `yaml:"cols"`
	Rows     int     `yaml:"rows"`
	Speed    float64 `yaml:"speed"`
	Seed     uint64  `yaml:"seed"`
	Showcase bool    `yaml:"showcase"`
}

type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the settings written when no usable file exists.
func Default() Config {
	return Config{
		Graphics: Graphics{
			UseLowPowerGPU: true,
			SampleCount:    4,
			Tolerance:      0.02,
		},
		Game: Game{
			Cols:     10,
			Rows:     16,
			Speed:    1,
			Showcase: true,
		},
		Log: Log{Level: "info"},
	}
}

// DefaultPath is the executable path with its extension replaced by .yaml.
func DefaultPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	return strings.TrimSuffix(exe, filepath.Ext(exe)) + ".yaml", nil
}

// Parse decodes a document and fills unset fields from Default.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg.withDefaults(), nil
}

// Read loads the file at path.
func Read(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Save writes cfg to path.
func Save(path string, cfg Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// Load reads path. A missing or malformed file is replaced by the defaults,
// which are returned. Failing to write them back is only logged.
func Load(path string, log logx.Logger) Config {
	cfg, err := Read(path)
	if err == nil {
		log.Infof("loaded configuration from %s", path)
		return cfg
	}

	if errors.Is(err, os.ErrNotExist) {
		log.Warnf("no config file at %s", path)
	} else {
		log.Warnf("failed to parse config file: %v", err)
	}
	log.Info("using default configuration")

	cfg = Default()
	if err := Save(path, cfg); err != nil {
		log.Warnf("could not save default configuration: %v", err)
	}
	return cfg
}

func (c Config) withDefaults() Config {
	def := Default()
	if c.Graphics.SampleCount == 0 {
		c.Graphics.SampleCount = def.Graphics.SampleCount
	}
	if c.Graphics.Tolerance <= 0 {
		c.Graphics.Tolerance = def.Graphics.Tolerance
	}
	if c.Game.Cols <= 0 {
		c.Game.Cols = def.Game.Cols
	}
	if c.Game.Rows <= 0 {
		c.Game.Rows = def.Game.Rows
	}
	if c.Game.Speed <= 0 {
		c.Game.Speed = def.Game.Speed
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	return c
}
