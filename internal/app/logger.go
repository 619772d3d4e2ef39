package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"

	"github.com/heartmarshall/rastreio-bot/internal/config"
)

// NewLogger creates a *slog.Logger based on the provided LogConfig
// and sets it as the default logger via slog.SetDefault.
//
// Format "json" produces structured JSON output (production).
// Format "text" produces human-readable output with source info (development).
// Level is one of: debug, info, warn, error (case-insensitive); defaults to info.
// Records go to os.Stderr and, when cfg.File is set, also to that file as JSON.
// The returned close function releases the file and is always non-nil.
func NewLogger(cfg config.LogConfig) (*slog.Logger, func() error) {
	stderr := newHandler(os.Stderr, cfg)
	closeFn := func() error { return nil }

	handler := stderr
	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			slog.New(stderr).Error("open log file, using stderr only",
				slog.String("file", cfg.File),
				slog.String("error", err.Error()),
			)
		} else {
			handler = slogmulti.Fanout(stderr, newHandler(file, config.LogConfig{Level: cfg.Level, Format: "json"}))
			closeFn = file.Close
		}
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger, closeFn
}

func newHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: strings.EqualFold(cfg.Format, "text"),
	}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
