package logx_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/plus3/ruzzle/logx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGetLoggerLevelByString(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		" warn ":  zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, logx.GetLoggerLevelByString(in))
		})
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := logx.New(&buf, "info", false)

	l.Debug("hidden")
	l.With("session", "abc").Infof("new tetromino %s", "T")
	require.NoError(t, l.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "info", entry["LEVEL"])
	assert.Equal(t, "new tetromino T", entry["MESSAGE"])
	assert.Equal(t, "abc", entry["session"])
	assert.Contains(t, entry["CALLER"], "logx_test.go")
	assert.False(t, logx.IsTerminal(&buf))
}

func TestFromZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := logx.FromZap(zap.New(core))

	l.Warnf("resize %dx%d", 800, 600)
	l.Error("boom")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "resize 800x600", entries[0].Message)
	assert.Equal(t, "boom", entries[1].Message)
}

func TestNop(t *testing.T) {
	l := logx.Nop()
	assert.NotPanics(t, func() {
		l.Info("x")
		l.With("k", 1).Debugf("%d", 2)
	})
}
