package database

import (
	"context"
	"errors"
	"time"

	"github.com/weatherfav/internal/logging"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// gormLogger routes gorm's output to the application log at a matching
// severity: failed statements at error, slow ones at warn and the rest at
// info. gorm's own logger.New writes everything through one Printf.
type gormLogger struct {
	cfg              logger.Config
	info, warn, fail logger.Interface
}

func newGormLogger(cfg logger.Config) *gormLogger {
	return &gormLogger{
		cfg:  cfg,
		info: logger.New(logging.Printer{Tag: "GORM", Level: logging.LevelInfo}, cfg),
		warn: logger.New(logging.Printer{Tag: "GORM", Level: logging.LevelWarn}, cfg),
		fail: logger.New(logging.Printer{Tag: "GORM", Level: logging.LevelError}, cfg),
	}
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	cfg := l.cfg
	cfg.LogLevel = level
	return &gormLogger{
		cfg:  cfg,
		info: l.info.LogMode(level),
		warn: l.warn.LogMode(level),
		fail: l.fail.LogMode(level),
	}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	l.info.Info(ctx, msg, data...)
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	l.warn.Warn(ctx, msg, data...)
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	l.fail.Error(ctx, msg, data...)
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.cfg.LogLevel <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && !(l.cfg.IgnoreRecordNotFoundError && errors.Is(err, gorm.ErrRecordNotFound)):
		l.fail.Trace(ctx, begin, fc, err)
	case l.cfg.SlowThreshold != 0 && elapsed > l.cfg.SlowThreshold:
		l.warn.Trace(ctx, begin, fc, err)
	default:
		l.info.Trace(ctx, begin, fc, err)
	}
}
