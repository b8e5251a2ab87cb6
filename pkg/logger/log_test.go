package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"maintenance-system/pkg/config"
)

func TestNewLoggerRespectsLevel(t *testing.T) {
	l := NewLogger(config.LogConfig{Level: "warn"})
	require.NotNil(t, l)

	assert.False(t, l.Core().Enabled(zap.InfoLevel))
	assert.True(t, l.Core().Enabled(zap.ErrorLevel))
}

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	l := NewLogger(config.LogConfig{Level: "info", File: path})

	l.Info("проверка записи")
	_ = l.Sync()

	assert.FileExists(t, path)
}

func TestNewLoggerUnknownLevelFallsBackToDebug(t *testing.T) {
	l := NewLogger(config.LogConfig{Level: "loud"})
	assert.True(t, l.Core().Enabled(zap.DebugLevel))
}
