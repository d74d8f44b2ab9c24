package logging

import (
	"io"
	"log/slog"
	"os"
)

// New builds a *slog.Logger that writes JSON to stderr, teeing to logFile
// when set, and installs it as the slog default. The cleanup func closes the
// log file; callers must defer it.
func New(level, logFile string) (*slog.Logger, func(), error) {
	w, cleanup, err := openWriter(logFile)
	if err != nil {
		return nil, nil, err
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, cleanup, nil
}

func openWriter(logFile string) (io.Writer, func(), error) {
	if logFile == "" {
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return io.MultiWriter(os.Stderr, f), func() { _ = f.Close() }, nil
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
