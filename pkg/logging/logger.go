// Package logging provides the structured logger shared by the window
// system and the demo program. It wraps log/slog with a JSON handler and
// a small set of scoping helpers.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Category represents the subsystem generating the log
type Category string

const (
	CategoryDispatch Category = "dispatch"
	CategoryTree     Category = "tree"
	CategoryDisplay  Category = "display"
	CategoryInput    Category = "input"
	CategorySettings Category = "settings"
	CategoryApp      Category = "app"
)

// Logger is a structured logger for toolkit components
type Logger struct {
	*slog.Logger

	mu   sync.Mutex
	file *os.File
}

// New creates a logger writing JSON records to w.
func New(w io.Writer, component string, level slog.Level) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{
		Logger: slog.New(handler).With(
			slog.String("component", component),
			slog.String("system", "wndkit"),
		),
	}
}

// Open creates a logger appending to the file at path. Parent
// directories are created as needed.
func Open(path, component string, level slog.Level) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	l := New(file, component, level)
	l.file = file
	return l, nil
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// WithCategory returns a logger tagged with a subsystem category
func (l *Logger) WithCategory(c Category) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("category", string(c)))}
}

// WithWindow returns a logger with window-specific fields
func (l *Logger) WithWindow(id uint32, class string) *Logger {
	return &Logger{
		Logger: l.Logger.With(
			slog.Uint64("window_id", uint64(id)),
			slog.String("window_class", class),
		),
	}
}

// WithRun returns a logger tagged with a run identifier
func (l *Logger) WithRun(runID string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("run_id", runID))}
}

// Close closes the underlying log file, if the logger owns one.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// ParseLevel maps a textual level to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
