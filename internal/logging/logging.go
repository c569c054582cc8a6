// Package logging configures the process-wide slog logger and the gorm
// logger that writes through it.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lepinkainen/humanlog"
	gormlogger "gorm.io/gorm/logger"
)

// ParseLevel maps a textual level to slog.Level. Unknown values fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup installs a human-readable handler writing to w as the default logger.
func Setup(w io.Writer, level string) *slog.Logger {
	handler := humanlog.NewHandler(w, &humanlog.Options{
		Level: ParseLevel(level),
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// GormLevel maps a textual level to the gorm logger level.
func GormLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

const slowQueryThreshold = time.Second

// NewGormLogger returns a gorm logger that writes through the default slog
// logger. gorm's error, warn and info levels map onto the slog levels of the
// same name.
func NewGormLogger(level string) gormlogger.Interface {
	return &gormLogger{
		logger: slog.Default(),
		level:  GormLevel(level),
		slow:   slowQueryThreshold,
	}
}

type gormLogger struct {
	logger *slog.Logger
	level  gormlogger.LogLevel
	slow   time.Duration
}

func (l *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *gormLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		l.logger.InfoContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		l.logger.WarnContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		l.logger.ErrorContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gormlogger.ErrRecordNotFound):
		sql, rows := fc()
		l.logger.ErrorContext(ctx, "Query failed", "error", err, "sql", sql, "rows", rows, "elapsed", elapsed)
	case l.slow > 0 && elapsed > l.slow && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.logger.WarnContext(ctx, "Slow query", "sql", sql, "rows", rows, "elapsed", elapsed, "threshold", l.slow)
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.logger.InfoContext(ctx, "Query", "sql", sql, "rows", rows, "elapsed", elapsed)
	}
}
