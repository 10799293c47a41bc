// Package logging builds the process-wide slog logger.
package logging

import (
	"log/slog"
	"os"
)

// NewLogger returns a JSON slog logger writing to stdout. LOG_LEVEL=debug
// lowers the level; everything else logs at info. Records carry source
// locations so alerts point at the emitting line.
func NewLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelWarn,
	})
	return slog.New(handler)
}
