package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// slogGorm forwards gorm's query tracing into slog.
type slogGorm struct {
	base  *slog.Logger
	level logger.LogLevel
	slow  time.Duration
}

func newGormLogger(base *slog.Logger, debug bool) logger.Interface {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return &slogGorm{base: base, level: level, slow: slowQueryThreshold}
}

func (l *slogGorm) LogMode(level logger.LogLevel) logger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

func (l *slogGorm) Info(ctx context.Context, msg string, args ...any) {
	if l.level >= logger.Info {
		l.base.InfoContext(ctx, "gorm_info", "message", fmt.Sprintf(msg, args...))
	}
}

func (l *slogGorm) Warn(ctx context.Context, msg string, args ...any) {
	if l.level >= logger.Warn {
		l.base.WarnContext(ctx, "gorm_warn", "message", fmt.Sprintf(msg, args...))
	}
}

func (l *slogGorm) Error(ctx context.Context, msg string, args ...any) {
	if l.level >= logger.Error {
		l.base.ErrorContext(ctx, "gorm_error", "message", fmt.Sprintf(msg, args...))
	}
}

func (l *slogGorm) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level == logger.Silent {
		return
	}
	elapsed := time.Since(begin)

	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, gorm.ErrDuplicatedKey):
		sql, rows := fc()
		l.base.ErrorContext(ctx, "gorm_query_failed", "elapsed", elapsed, "rows", rows, "sql", sql, "error", err)
	case l.slow > 0 && elapsed > l.slow && l.level >= logger.Warn:
		sql, rows := fc()
		l.base.WarnContext(ctx, "gorm_slow_query", "elapsed", elapsed, "rows", rows, "sql", sql, "threshold", l.slow)
	case l.level >= logger.Info:
		sql, rows := fc()
		l.base.DebugContext(ctx, "gorm_query", "elapsed", elapsed, "rows", rows, "sql", sql)
	}
}
