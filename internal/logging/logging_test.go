package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	core, logs := observer.New(level)
	Logger = zap.New(core)
	return logs
}

func TestGlobalHelpers(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel)

	Debug("hidden")
	Info("refreshed", zap.Int("targets", 2))
	Warn("live pricing disabled")
	With(zap.String("version", "0.1.0")).Named("server").Info("starting")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "server", entries[2].LoggerName)
	assert.Equal(t, "0.1.0", entries[2].ContextMap()["version"])
}

func TestNamedBeforeInitialize(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })
	Logger = nil

	assert.NotPanics(t, func() { Named("cli").Info("ignored") })
}

func TestNewRejectsUnwritableOutput(t *testing.T) {
	_, err := New(Config{Level: "info", Output: t.TempDir()})
	assert.Error(t, err)
}
