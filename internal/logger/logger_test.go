package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_DevelopmentUsesTextAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New("development", &buf)

	logger.Debug("debug message", "key", "value")

	out := buf.String()
	if out == "" {
		t.Fatal("expected debug output in development, got none")
	}
	if !strings.Contains(out, "debug message") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "source=") {
		t.Errorf("expected source location in development output: %q", out)
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("expected text output in development, got JSON: %q", out)
	}
}

func TestNew_ProductionUsesJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New("production", &buf)

	logger.Debug("should be dropped")
	if buf.Len() != 0 {
		t.Errorf("expected debug to be suppressed in production, got %q", buf.String())
	}

	logger.Info("info message", "key", "value")

	var record map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON output in production, got %q: %v", buf.String(), err)
	}
	if record["msg"] != "info message" {
		t.Errorf("msg = %v, want %q", record["msg"], "info message")
	}
	if record["key"] != "value" {
		t.Errorf("key = %v, want %q", record["key"], "value")
	}
}
