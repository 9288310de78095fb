package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestNewLevelAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithWriter(&buf), WithLevel("warn"), WithEncoder(zapcore.NewJSONEncoder),
		WithFields(zap.String("app", "yuepai")))

	l.Info("hidden")
	l.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"app":"yuepai"`)
}

func TestNewBadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithWriter(&buf), WithLevel("loud"))
	l.Debug("debug")
	l.Info("info")
	assert.NotContains(t, buf.String(), "debug")
	assert.Contains(t, buf.String(), "info")
}

func TestContext(t *testing.T) {
	l := zap.NewExample()
	ctx := With(context.Background(), l)
	assert.Same(t, l, From(ctx))
	assert.Same(t, zap.L(), From(context.Background()))
}

func TestGormLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g := NewGormLogger(zap.New(core), gormlogger.Warn)

	sql := func() (string, int64) { return "SELECT 1", 1 }
	g.Trace(context.Background(), time.Now(), sql, nil)
	assert.Equal(t, 0, logs.Len())

	g.Trace(context.Background(), time.Now(), sql, gormlogger.ErrRecordNotFound)
	assert.Equal(t, 0, logs.Len())

	g.Trace(context.Background(), time.Now(), sql, errors.New("boom"))
	assert.Equal(t, 1, logs.FilterMessage("sql error").Len())

	g.Trace(context.Background(), time.Now().Add(-time.Second), sql, nil)
	assert.Equal(t, 1, logs.FilterMessage("slow sql").Len())

	g.LogMode(gormlogger.Silent).Trace(context.Background(), time.Now(), sql, errors.New("boom"))
	assert.Equal(t, 1, logs.FilterMessage("sql error").Len())
}
