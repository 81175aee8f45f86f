package gtfparse

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with gtfparse-specific context.
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
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithPath adds a file path field to the logger.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("path", path),
	}
}

// LogParse logs completion of line tokenization.
func (l *Logger) LogParse(rows, chunks int, err error) {
	if err != nil {
		l.Error("GTF parsing failed",
			"rows", rows,
			"error", err,
		)
	} else {
		l.Debug("GTF parsing completed",
			"rows", rows,
			"chunks", chunks,
		)
	}
}

// LogExpand logs completion of attribute expansion.
func (l *Logger) LogExpand(keys []string) {
	l.Info("extracted GTF attributes",
		"count", len(keys),
		"keys", keys,
	)
}

// LogReconstruct logs reconstruction of a missing feature type.
func (l *Logger) LogReconstruct(feature string, groups int) {
	l.Info("creating rows for missing feature",
		"feature", feature,
		"groups", groups,
	)
}

// LogWrite logs completion of GTF serialization.
func (l *Logger) LogWrite(rows int, err error) {
	if err != nil {
		l.Error("GTF write failed",
			"rows", rows,
			"error", err,
		)
	} else {
		l.Debug("GTF write completed",
			"rows", rows,
		)
	}
}
