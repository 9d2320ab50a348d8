package logx

import (
	"io"
	"log/slog"
	"strings"

	"github.com/rs/zerolog"
)

// Options selects the logging backend.
type Options struct {
	Level  string // debug, info, warn, error
	Pretty bool   // human-readable console output via zerolog
	Output io.Writer
}

// New builds a Logger: slog JSON by default, zerolog console when Pretty is set.
func New(opts Options) Logger {
	if opts.Pretty {
		zl := zerolog.New(zerolog.ConsoleWriter{Out: opts.Output, TimeFormat: "15:04:05.000"}).
			Level(zerologLevel(opts.Level)).
			With().Timestamp().Logger()
		return NewZerologAdapter(zl)
	}
	h := slog.NewJSONHandler(opts.Output, &slog.HandlerOptions{Level: slogLevel(opts.Level)})
	return NewSlogAdapter(slog.New(h))
}

func slogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

func zerologLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
