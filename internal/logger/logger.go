// Package logger zap 日志：控制台/文件输出、按请求上下文传递、gorm 日志适配。
package logger

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func New(opts ...Option) *zap.Logger {
	o := &option{
		level:   zapcore.InfoLevel.String(),
		encoder: zapcore.NewConsoleEncoder,
		writer:  os.Stdout,
	}
	for _, opt := range opts {
		opt(o)
	}

	core := zapcore.NewCore(
		o.encoder(newEncoderConfig()),
		zapcore.AddSync(o.writer),
		newLevel(o.level),
	).With(o.fields)
	// error 以上带堆栈
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

func newEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		TimeKey:        "time",
		NameKey:        "logger",
		CallerKey:      "caller",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05"),
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
}

func newLevel(level string) zapcore.Level {
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		l = zapcore.InfoLevel
	}
	return l
}

type logKey struct{}

// From 取出请求上下文中的 logger，没有时退回全局 logger
func From(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return zap.L()
	}
	l, ok := ctx.Value(logKey{}).(*zap.Logger)
	if !ok {
		return zap.L()
	}
	return l
}

func With(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, logKey{}, l)
}
