package logger

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// New opens a file-backed logger. The TUI owns the terminal, so logs go to
// disk; level comes from the CM_LOG env var (default: warn, empty path
// disables output entirely).
func New(path string) zerolog.Logger {
	level := parseLevel(os.Getenv("CM_LOG"))

	if path == "" {
		return zerolog.New(nil).Level(zerolog.Disabled)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.New(nil).Level(zerolog.Disabled)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.New(nil).Level(zerolog.Disabled)
	}

	return zerolog.New(f).Level(level).With().Timestamp().Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}
