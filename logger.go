package elki

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/kshimauchi/elki/dbscan"
)

// Logger wraps slog.Logger with clustering-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogProgress logs a progress snapshot of a clustering run.
func (l *Logger) LogProgress(ctx context.Context, p dbscan.Progress) {
	l.DebugContext(ctx, "clustering progress",
		"processed", p.Processed,
		"total", p.Total,
		"clusters", p.Clusters,
	)
}

// LogRun logs the outcome of a clustering run.
func (l *Logger) LogRun(ctx context.Context, epsilon float32, minPts int, result *dbscan.Result, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "clustering failed",
			"epsilon", epsilon,
			"minpts", minPts,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "clustering completed",
		"epsilon", epsilon,
		"minpts", minPts,
		"clusters", len(result.Clusters),
		"noise", len(result.Noise),
		"elapsed", elapsed,
	)
}

// LogSave logs a result persistence operation.
func (l *Logger) LogSave(ctx context.Context, name, codecName string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "result save failed",
			"name", name,
			"codec", codecName,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "result saved",
			"name", name,
			"codec", codecName,
		)
	}
}
