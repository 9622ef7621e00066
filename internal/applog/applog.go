// Package applog sets up the process logger. The terminal belongs to the
// TUI, so records go to a JSON file instead of stderr.
package applog

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

var base = slog.New(slog.DiscardHandler)

// Init opens path for appending and installs a JSON handler. The returned
// closer must be called on exit. An empty path keeps logging disabled.
func Init(path string, level slog.Level) (io.Closer, error) {
	if path == "" {
		return io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	SetOutput(f, level)
	return f, nil
}

func SetOutput(w io.Writer, level slog.Level) {
	base = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

func WithComponent(name string) *slog.Logger {
	return base.With(slog.String("component", name))
}
