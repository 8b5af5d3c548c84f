package logger

import (
	"io"
	"log/slog"
	"os"
)

// New builds a logger for the given environment writing to w. Development
// gets debug-level text output with source locations; everything else gets
// JSON at info level.
func New(environment string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	var handler slog.Handler
	if environment == "development" {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler)
}

// InitLogger builds the stdout logger for the environment and installs it
// as the process default.
func InitLogger(environment string) *slog.Logger {
	logger := New(environment, os.Stdout)
	slog.SetDefault(logger)
	return logger
}
