package logger

import (
	"errors"
	"log/slog"
	"strings"
)

// ErrorInfo is how an error is rendered inside a log line.
type ErrorInfo struct {
	Msg   string   `json:"msg"`
	Chain []string `json:"chain,omitempty"`
}

func errorInfo(err error) ErrorInfo {
	info := ErrorInfo{Msg: err.Error()}
	for e := errors.Unwrap(err); e != nil; e = errors.Unwrap(e) {
		info.Chain = append(info.Chain, e.Error())
	}
	return info
}

// ParseLevel maps a config level name to a slog level. Unknown names fall
// back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

type nopLogger struct{}

// Nop discards everything.
func Nop() Logger { return nopLogger{} }

func (nopLogger) Info(string, string, string, map[string]interface{})         {}
func (nopLogger) Debug(string, string, string, map[string]interface{})        {}
func (nopLogger) Warn(string, string, string, map[string]interface{})         {}
func (nopLogger) Error(string, string, string, map[string]interface{}, error) {}
