package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type Logger interface {
	Info(action, message, ref string, details map[string]interface{})
	Debug(action, message, ref string, details map[string]interface{})
	Warn(action, message, ref string, details map[string]interface{})
	Error(action, message, ref string, details map[string]interface{}, err error)
}

type jsonLogger struct {
	base *slog.Logger
}

// New returns a JSON logger writing to stderr; stdout belongs to the menu.
func New(service, level string) Logger {
	return NewWithWriter(os.Stderr, service, level)
}

func NewWithWriter(w io.Writer, service, level string) Logger {
	hostname, _ := os.Hostname()
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return &jsonLogger{
		base: slog.New(handler).With(
			slog.String("service", service),
			slog.String("hostname", hostname),
		),
	}
}

func (l *jsonLogger) Info(action, message, ref string, details map[string]interface{}) {
	l.log(slog.LevelInfo, action, message, ref, details, nil)
}

func (l *jsonLogger) Debug(action, message, ref string, details map[string]interface{}) {
	l.log(slog.LevelDebug, action, message, ref, details, nil)
}

func (l *jsonLogger) Warn(action, message, ref string, details map[string]interface{}) {
	l.log(slog.LevelWarn, action, message, ref, details, nil)
}

func (l *jsonLogger) Error(action, message, ref string, details map[string]interface{}, err error) {
	l.log(slog.LevelError, action, message, ref, details, err)
}

func (l *jsonLogger) log(level slog.Level, action, message, ref string, details map[string]interface{}, err error) {
	ctx := context.Background()
	if !l.base.Enabled(ctx, level) {
		return
	}

	attrs := []slog.Attr{slog.String("action", action)}
	if ref != "" {
		attrs = append(attrs, slog.String("ref", ref))
	}
	if len(details) > 0 {
		attrs = append(attrs, slog.Any("details", details))
	}
	if err != nil {
		attrs = append(attrs, slog.Any("error", errorInfo(err)))
	}

	l.base.LogAttrs(ctx, level, message, attrs...)
}
