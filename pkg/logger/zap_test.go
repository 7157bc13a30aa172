package logger

import (
	"context"
	"testing"

	"github.com/duccv/bank-web/internal/constant"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGetLogLevel(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, getLogLevel("debug", "production").Level())
	assert.Equal(t, zapcore.WarnLevel, getLogLevel("warn", "production").Level())
	assert.Equal(t, zapcore.DebugLevel, getLogLevel("debug", "development").Level())
	assert.Equal(t, zapcore.InfoLevel, getLogLevel("loud", "development").Level())
}

func TestFromContext_AddsCorrelationID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	ctx := context.WithValue(context.Background(), constant.CorrelationIDKey, "cid-1")
	FromContext(ctx).Info("hello")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "cid-1", entries[0].ContextMap()["correlation_id"])
	}
}

func TestWithSession_Truncates(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	WithSession(zap.New(core), "0123456789abcdef").Info("x")

	assert.Equal(t, "01234567", logs.All()[0].ContextMap()["session"])
}
