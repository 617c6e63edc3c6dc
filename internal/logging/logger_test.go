package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSafeLogger_NilIsNoop(t *testing.T) {
	var l *SafeLogger

	assert.NotPanics(t, func() {
		l.Info("ignored", zap.String("k", "v"))
		l.Debug("ignored")
		l.Warn("ignored")
		l.Error("ignored")
		_ = l.With(zap.String("k", "v"))
		_ = l.Sync()
	})

	zero := &SafeLogger{}
	assert.NotPanics(t, func() {
		zero.With(zap.Int("n", 1)).Info("ignored")
	})
}

func TestSafeLogger_WritesThroughZap(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewSafeLogger(zap.New(core))

	l.With(zap.String("component", "test")).Warn("slot fetch failed", zap.Int("status", 500))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "slot fetch failed", entry.Message)
	assert.Equal(t, "test", entry.ContextMap()["component"])
	assert.EqualValues(t, 500, entry.ContextMap()["status"])
}

func TestInitLogger(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	require.NoError(t, InitLogger())
	assert.NotNil(t, Logger.zap())
}
