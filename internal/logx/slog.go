package logx

import (
	"context"
	"log/slog"
	"time"
)

// SlogAdapter writes through a *slog.Logger. It is the JSON backend used in production.
type SlogAdapter struct {
	l *slog.Logger
}

func NewSlogAdapter(l *slog.Logger) Logger {
	return &SlogAdapter{l: l}
}

func (s *SlogAdapter) Debug(msg string, fields ...Field) { s.log(slog.LevelDebug, msg, fields) }
func (s *SlogAdapter) Info(msg string, fields ...Field)  { s.log(slog.LevelInfo, msg, fields) }
func (s *SlogAdapter) Warn(msg string, fields ...Field)  { s.log(slog.LevelWarn, msg, fields) }
func (s *SlogAdapter) Error(msg string, fields ...Field) { s.log(slog.LevelError, msg, fields) }

func (s *SlogAdapter) With(fields ...Field) Logger {
	attrs := toAttrs(fields)
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	return &SlogAdapter{l: s.l.With(args...)}
}

// Sync is a no-op; slog handlers write synchronously.
func (s *SlogAdapter) Sync() error { return nil }

func (s *SlogAdapter) log(level slog.Level, msg string, fields []Field) {
	ctx := context.Background()
	if !s.l.Enabled(ctx, level) {
		return
	}
	s.l.LogAttrs(ctx, level, msg, toAttrs(fields)...)
}

// toAttrs keeps the common field types typed so handlers do not fall back to reflection.
func toAttrs(fields []Field) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(fields))
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			attrs = append(attrs, slog.String(f.Key, v))
		case int:
			attrs = append(attrs, slog.Int(f.Key, v))
		case int64:
			attrs = append(attrs, slog.Int64(f.Key, v))
		case bool:
			attrs = append(attrs, slog.Bool(f.Key, v))
		case time.Time:
			attrs = append(attrs, slog.Time(f.Key, v))
		case time.Duration:
			attrs = append(attrs, slog.Duration(f.Key, v))
		case error:
			attrs = append(attrs, slog.String(f.Key, v.Error()))
		default:
			attrs = append(attrs, slog.Any(f.Key, v))
		}
	}
	return attrs
}
