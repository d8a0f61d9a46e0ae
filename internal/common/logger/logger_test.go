package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("info"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestZapAdapter_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).
		WithFields(map[string]interface{}{"component": "session-manager"}).
		With(map[string]interface{}{"sessionId": "abc"})

	log.Info("phase changed", map[string]interface{}{"from": "greeting", "to": "purpose"})
	log.WithError(errors.New("boom")).Error("lookup failed", nil)

	entries := logs.All()
	assert.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "session-manager", first["component"])
	assert.Equal(t, "abc", first["sessionId"])
	assert.Equal(t, "purpose", first["to"])

	second := entries[1].ContextMap()
	assert.Equal(t, "boom", second["error"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestNewWithOutput_InvalidPathFallsBackToNop(t *testing.T) {
	l := NewWithOutput("info", "json", "/nonexistent-dir/for/sure/log.txt")
	assert.NotNil(t, l)
}
