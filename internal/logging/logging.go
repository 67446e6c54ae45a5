package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const maxLogSize = 5 * 1024 * 1024 // 5MB

// Level is the user-facing verbosity of an installation run.
type Level string

const (
	LevelSilent  Level = "silent"
	LevelMinimal Level = "minimal"
	LevelVerbose Level = "verbose"
)

// ParseLevel accepts "silent", "minimal" or "verbose". An empty string
// means minimal.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case LevelSilent, LevelMinimal, LevelVerbose:
		return Level(s), nil
	case "":
		return LevelMinimal, nil
	default:
		return "", fmt.Errorf("unknown log level %q (want silent, minimal or verbose)", s)
	}
}

// Setup opens the JSON log file, rotating it first when it is too large.
// Verbose runs also log debug records and tee every record to stderr.
func Setup(logPath string, level Level) (*slog.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, err
	}

	if err := RotateIfNeeded(logPath); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	var w io.Writer = f
	if level == LevelVerbose {
		w = io.MultiWriter(f, os.Stderr)
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level.slogLevel(),
	})

	return slog.New(handler).With(slog.String("app", "mcp11")), nil
}

func (l Level) slogLevel() slog.Level {
	if l == LevelVerbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func RotateIfNeeded(logPath string) error {
	info, err := os.Stat(logPath)
	if err != nil {
		return nil // file doesn't exist yet
	}

	if info.Size() <= maxLogSize {
		return nil
	}

	backup := logPath + ".old"
	os.Remove(backup)
	return os.Rename(logPath, backup)
}

type NopHandler struct{}

func (NopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (NopHandler) Handle(context.Context, slog.Record) error { return nil }
func (h NopHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h NopHandler) WithGroup(string) slog.Handler           { return h }
