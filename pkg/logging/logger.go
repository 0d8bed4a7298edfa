// Package logging provides the structured logger shared by the toolkit's
// subsystems. It wraps log/slog so every record carries a component and a
// category, and exposes a level that can be changed while the UI is running.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// ParseLevel converts a configuration string into a Level.
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelDebug:
		return LevelDebug, nil
	case LevelInfo, "":
		return LevelInfo, nil
	case LevelWarn, "warning":
		return LevelWarn, nil
	case LevelError:
		return LevelError, nil
	}
	return "", fmt.Errorf("unknown log level %q", s)
}

func (l Level) slogLevel() slog.Level {
	switch l {
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

// Category represents the subsystem generating the log
type Category string

const (
	CategoryDispatch Category = "dispatch"
	CategoryLayout   Category = "layout"
	CategoryFocus    Category = "focus"
	CategoryRender   Category = "render"
	CategoryPlayback Category = "playback"
	CategoryInput    Category = "input"
	CategoryConfig   Category = "config"
	CategoryInspect  Category = "inspect"
)

// Format selects the handler used for output.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Options configures a Logger.
type Options struct {
	Level  Level
	Format Format
	// Output receives records. Defaults to os.Stderr.
	Output io.Writer
}

// Logger is a structured logger for toolkit components
type Logger struct {
	*slog.Logger
	level *slog.LevelVar
}

// New creates a logger writing to opts.Output.
func New(component string, opts Options) *Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	lv := new(slog.LevelVar)
	lv.Set(opts.Level.slogLevel())

	hopts := &slog.HandlerOptions{Level: lv}
	var handler slog.Handler
	if opts.Format == FormatText {
		handler = slog.NewTextHandler(out, hopts)
	} else {
		handler = slog.NewJSONHandler(out, hopts)
	}

	logger := slog.New(handler).With(
		slog.String("component", component),
		slog.String("system", "cellkit"),
	)
	return &Logger{Logger: logger, level: lv}
}

// Discard returns a logger that drops every record. Useful as a default.
func Discard() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		level:  new(slog.LevelVar),
	}
}

// OpenFile opens (creating directories as needed) a log file for appending.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// SetLevel changes the minimum level for this logger and every logger
// derived from it.
func (l *Logger) SetLevel(level Level) {
	l.level.Set(level.slogLevel())
}

// Enabled reports whether records at level would be emitted.
func (l *Logger) Enabled(level Level) bool {
	return l.Logger.Enabled(context.Background(), level.slogLevel())
}

// WithCategory returns a logger tagged with a subsystem category
func (l *Logger) WithCategory(c Category) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("category", string(c))),
		level:  l.level,
	}
}

// WithComponent returns a logger with UI component fields
func (l *Logger) WithComponent(id, kind string) *Logger {
	return &Logger{
		Logger: l.Logger.With(
			slog.String("component_id", id),
			slog.String("component_kind", kind),
		),
		level: l.level,
	}
}

// WithProducer returns a logger with event-producer fields
func (l *Logger) WithProducer(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("producer", name)),
		level:  l.level,
	}
}

// syncWriter serializes writes from several goroutines onto one writer.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// SyncWriter wraps w so concurrent handlers don't interleave partial lines.
func SyncWriter(w io.Writer) io.Writer {
	return &syncWriter{w: w}
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
