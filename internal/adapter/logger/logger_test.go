package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestJSONLogger_WritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	lgr := NewWithWriter(&buf, "waste-tracker", "info")

	base := errors.New("disk full")
	lgr.Error("append_failed", "Failed to append entry", "entry-1", map[string]interface{}{"path": "/tmp/log"}, fmt.Errorf("write: %w", base))

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, buf.String())
	}
	if line["service"] != "waste-tracker" || line["action"] != "append_failed" || line["ref"] != "entry-1" {
		t.Errorf("unexpected fields: %v", line)
	}
	if line["level"] != "ERROR" {
		t.Errorf("expected ERROR level, got %v", line["level"])
	}
	errField, ok := line["error"].(map[string]interface{})
	if !ok || errField["msg"] != "write: disk full" {
		t.Errorf("unexpected error field: %v", line["error"])
	}
}

func TestJSONLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	lgr := NewWithWriter(&buf, "svc", "warn")

	lgr.Info("ignored", "should not appear", "", nil)
	lgr.Debug("ignored", "should not appear", "", nil)
	lgr.Warn("line_skipped", "Skipping malformed line", "", map[string]interface{}{"line": 3})

	out := strings.TrimSpace(buf.String())
	if strings.Count(out, "\n") != 0 || !strings.Contains(out, "line_skipped") {
		t.Errorf("expected only the warning, got:\n%s", out)
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("DEBUG").String() != "DEBUG" {
		t.Error("debug not parsed")
	}
	if ParseLevel("nonsense").String() != "INFO" {
		t.Error("unknown level should fall back to info")
	}
}
