package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Log is safe to use before Init; Init reconfigures it from the environment.
var Log = slog.New(slog.NewJSONHandler(os.Stdout, nil))

func Init() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	// JSON handler for production-ready logging
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	Log = slog.New(handler)
}
