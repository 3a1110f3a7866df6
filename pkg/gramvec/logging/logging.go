// Package logging provides structured logging for the pipeline.
package logging

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with pipeline-specific logging methods.
type Logger struct {
	*slog.Logger
}

// New creates a new logger with the given handler. If handler is nil,
// a default text handler writing to stderr is used.
func New(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a logger that writes human-readable output to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewJSONLogger creates a logger that writes JSON output to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// Noop returns a logger that discards all output.
func Noop() *Logger {
	return New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// LogCount logs the outcome of a corpus counting pass.
func (l *Logger) LogCount(ctx context.Context, records, malformed int64, uniqueTarget, uniqueOther int) {
	l.InfoContext(ctx, "counted corpus bigrams",
		slog.Int64("records", records),
		slog.Int64("malformed", malformed),
		slog.Int("unique_target", uniqueTarget),
		slog.Int("unique_other", uniqueOther),
	)
}

// LogMappingSaved logs a persisted bigram mapping.
func (l *Logger) LogMappingSaved(ctx context.Context, path string, dimension int) {
	l.InfoContext(ctx, "saved bigram mapping",
		slog.String("path", path),
		slog.Int("dimension", dimension),
	)
}

// LogEncodeProgress logs encoding progress at flush cadence.
func (l *Logger) LogEncodeProgress(ctx context.Context, rows int64) {
	l.InfoContext(ctx, "encoding rows",
		slog.Int64("rows", rows),
	)
}

// LogEncodeDone logs the outcome of an encoding pass.
func (l *Logger) LogEncodeDone(ctx context.Context, rows, skipped, flushes int64) {
	l.InfoContext(ctx, "encoded corpus",
		slog.Int64("rows", rows),
		slog.Int64("skipped_rows", skipped),
		slog.Int64("flushes", flushes),
	)
}

// LogDatasetLoaded logs a loaded feature dataset.
func (l *Logger) LogDatasetLoaded(rows, dimension, zeros, ones int) {
	l.Info("loaded dataset",
		slog.Int("rows", rows),
		slog.Int("dimension", dimension),
		slog.Int("label_zero", zeros),
		slog.Int("label_one", ones),
	)
}
