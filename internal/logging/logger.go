// Package logging provides structured logging functionality using log/slog
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/offthegrid/offthegrid/internal/config"
)

// Logger wraps slog.Logger with additional application-specific functionality
type Logger struct {
	*slog.Logger
	service string
	version string
}

// NewStructuredLogger creates a new structured logger with JSON output on stdout
func NewStructuredLogger(level string, service, version string) *Logger {
	return NewWithWriter(os.Stdout, level, "json", service, version)
}

// NewWithWriter creates a logger writing the given format ("json" or "text") to w
func NewWithWriter(w io.Writer, level, format, service, version string) *Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return &Logger{
		Logger:  slog.New(handler),
		service: service,
		version: version,
	}
}

// New builds the application logger from configuration. When a log file is
// configured, output goes to stdout and to a rotating file; the returned
// closer releases the file and is never nil.
func New(cfg config.LoggingConfig, service, version string) (*Logger, io.Closer, error) {
	if cfg.File == "" {
		return NewWithWriter(os.Stdout, cfg.Level, cfg.Format, service, version), nopCloser{}, nil
	}

	rotating, err := NewRotatingWriter(RotationConfig{
		File:      cfg.File,
		MaxSizeMB: cfg.MaxSizeMB,
		MaxFiles:  cfg.MaxFiles,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	w := io.MultiWriter(os.Stdout, rotating)
	return NewWithWriter(w, cfg.Level, cfg.Format, service, version), rotating, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Discard returns a logger that drops every record
func Discard() *Logger {
	return NewWithWriter(io.Discard, LevelError, "json", "discard", "")
}

func parseLevel(level string) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) with(args ...any) *Logger {
	return &Logger{
		Logger:  l.Logger.With(args...),
		service: l.service,
		version: l.version,
	}
}

// WithRunID tags every record with the bootstrap run identifier
func (l *Logger) WithRunID(runID string) *Logger {
	return l.with(slog.String(FieldRunID, runID))
}

// WithComponent tags every record with the emitting component
func (l *Logger) WithComponent(component string) *Logger {
	return l.with(slog.String(FieldComponent, component))
}

// WithError adds error context to the logger
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.with(slog.String(FieldError, err.Error()))
}

// WithServiceContext adds service context to the logger
func (l *Logger) WithServiceContext() *Logger {
	return l.with(
		slog.String(FieldService, l.service),
		slog.String(FieldVersion, l.version),
	)
}

// Startup logs application startup information
func (l *Logger) Startup(msg string, args ...any) {
	l.WithServiceContext().Info(msg, args...)
}

// Database logs database-related operations
func (l *Logger) Database(msg string, args ...any) {
	l.Info("database: "+msg, args...)
}

// DatabaseError logs database errors
func (l *Logger) DatabaseError(msg string, err error, args ...any) {
	l.WithError(err).Error("database: "+msg, args...)
}

// Migration logs schema migration progress
func (l *Logger) Migration(msg string, args ...any) {
	l.Info("migration: "+msg, args...)
}

// Seed logs seed progress
func (l *Logger) Seed(msg string, args ...any) {
	l.Info("seed: "+msg, args...)
}
