package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// NewGormLogger 把 gorm 的日志输出到 zap，慢查询阈值 200ms，忽略记录不存在错误
func NewGormLogger(l *zap.Logger, level gormlogger.LogLevel) gormlogger.Interface {
	return &gormLog{
		log:           l.WithOptions(zap.WithCaller(false)).Named("gorm"),
		level:         level,
		slowThreshold: 200 * time.Millisecond,
	}
}

type gormLog struct {
	log           *zap.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func (g *gormLog) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *g
	clone.level = level
	return &clone
}

func (g *gormLog) Info(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= gormlogger.Info {
		g.log.Sugar().Infof(msg, data...)
	}
}

func (g *gormLog) Warn(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= gormlogger.Warn {
		g.log.Sugar().Warnf(msg, data...)
	}
}

func (g *gormLog) Error(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= gormlogger.Error {
		g.log.Sugar().Errorf(msg, data...)
	}
}

func (g *gormLog) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && g.level >= gormlogger.Error && !errors.Is(err, gormlogger.ErrRecordNotFound):
		sql, rows := fc()
		g.log.Error("sql error", zap.Error(err), zap.Duration("elapsed", elapsed),
			zap.Int64("rows", rows), zap.String("sql", sql), zap.String("file", utils.FileWithLineNum()))
	case g.slowThreshold != 0 && elapsed > g.slowThreshold && g.level >= gormlogger.Warn:
		sql, rows := fc()
		g.log.Warn("slow sql", zap.Duration("elapsed", elapsed),
			zap.Int64("rows", rows), zap.String("sql", sql), zap.String("file", utils.FileWithLineNum()))
	case g.level == gormlogger.Info:
		sql, rows := fc()
		g.log.Debug("sql", zap.Duration("elapsed", elapsed), zap.Int64("rows", rows), zap.String("sql", sql))
	}
}
