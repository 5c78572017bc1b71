package logs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected slog.Level
		wantErr  bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := ParseLevel(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && level != tt.expected {
				t.Errorf("got %v, expected %v", level, tt.expected)
			}
		})
	}
}

func TestNewTerminalLevel(t *testing.T) {
	buf := new(bytes.Buffer)
	logger, closeFn, err := New(Options{Level: slog.LevelWarn, Writer: buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer closeFn()

	logger.Info("hidden")
	logger.Warn("shown", "page", "100")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record leaked at warn level: %q", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "page=100") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestNewFanoutToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "teletext.log")
	buf := new(bytes.Buffer)
	logger, closeFn, err := New(Options{Level: slog.LevelError, Writer: buf, File: path})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Debug("fetched page", "request_id", "abc")
	if err := closeFn(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	if buf.Len() != 0 {
		t.Errorf("terminal got debug record: %q", buf.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &record); err != nil {
		t.Fatalf("log file is not JSON: %v (%q)", err, data)
	}
	if record["msg"] != "fetched page" || record["request_id"] != "abc" {
		t.Errorf("record = %v", record)
	}
}
