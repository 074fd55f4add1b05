package logging

import (
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"

	"pricetracker/internal/config"
)

// New builds the daemon's logger from the loaded settings: a text handler
// writing to a size-rotated log file. The logger is constructed once at
// startup and passed to every component.
func New(s config.Settings) *slog.Logger {
	maxSize := int(s.MaxLogSizeMB)
	if maxSize < 1 {
		maxSize = 1
	}

	w := &lumberjack.Logger{
		Filename:   s.LogFile,
		MaxSize:    maxSize,
		MaxBackups: s.BackupCount,
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: Level(s.LogLevel),
	})

	return slog.New(handler)
}

// Level maps a configuration log level to its slog equivalent.
// CRITICAL has no slog counterpart and maps to ERROR.
func Level(name string) slog.Level {
	switch name {
	case "DEBUG":
		return slog.LevelDebug
	case "WARNING":
		return slog.LevelWarn
	case "ERROR", "CRITICAL":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
