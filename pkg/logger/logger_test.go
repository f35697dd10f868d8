package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLoggerFormatsMessages(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&Config{Level: "info"}, &buf).With("component", "test")

	l.Debug("hidden %d", 1)
	l.Warn("counter drift on %s", "event-1")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("want 1 record, got %d: %q", len(lines), buf.String())
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("record is not json: %v", err)
	}
	if rec["msg"] != "counter drift on event-1" || rec["level"] != "WARN" || rec["component"] != "test" {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestGetLoggerLevelDefaultsToDebug(t *testing.T) {
	if lvl := getLoggerLevel("nonsense"); lvl.String() != "DEBUG" {
		t.Errorf("level = %v", lvl)
	}
}
