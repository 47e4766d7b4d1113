package logger

import (
	"testing"

	"pageturn/internal/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	log := New(config.Log{Level: "debug", Format: "console"})
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log = New(config.Log{Level: "warn", Format: "json"})
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestNewFallsBackToInfo(t *testing.T) {
	log := New(config.Log{Level: "loud"})
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
}
