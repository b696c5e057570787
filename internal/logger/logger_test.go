package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewSlogJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlog(SlogConfig{Level: "warn", Format: "json", Output: &buf})

	log.Info("dropped")
	log.Warn("kept", "photo_id", 10)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line above warn level, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected JSON output, got error: %v", err)
	}
	if entry["msg"] != "kept" || entry["service"] != "photoshare" || entry["photo_id"] != float64(10) {
		t.Errorf("unexpected entry: %v", entry)
	}
	if _, ok := entry["time"].(string); !ok {
		t.Errorf("expected formatted time, got %v", entry["time"])
	}
}

func TestNewSlogText(t *testing.T) {
	var buf bytes.Buffer
	NewSlog(SlogConfig{Level: "debug", Format: "text", Output: &buf}).Debug("hello")

	if !strings.Contains(buf.String(), "msg=hello") {
		t.Errorf("expected text output, got %q", buf.String())
	}
}
