package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{Level(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"trace", LevelDebug},
		{"INFO", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"invalid", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig("my-service")

	if cfg.ServiceName != "my-service" {
		t.Errorf("ServiceName = %v, want my-service", cfg.ServiceName)
	}
	if cfg.Level != "info" {
		t.Errorf("Level = %v, want info", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %v, want json", cfg.Format)
	}
}

func TestNewLogger_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		ServiceName: "taxonomy",
		Level:       "debug",
		Format:      "json",
		Output:      &buf,
	})

	logger.Debug("exception type registered", "id", "my_error", "depth", 2)
	_ = logger.Sync()

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "exception type registered" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["logger"] != "taxonomy" {
		t.Errorf("logger = %v, want taxonomy", entry["logger"])
	}
	if entry["id"] != "my_error" {
		t.Errorf("id = %v, want my_error", entry["id"])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{ServiceName: "test", Level: "warn", Output: &buf})

	logger.Info("hidden")
	logger.Warn("shown")
	_ = logger.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info entry should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("warn entry should be written")
	}
}

func TestLogger_WithLevelKeepsFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{ServiceName: "test", Level: "error", Output: &buf}).
		With("component", "registry")

	debug := logger.WithLevel(LevelDebug)
	if debug.Name() != "test" {
		t.Errorf("name should be preserved: got %v", debug.Name())
	}

	debug.Debug("now visible")
	_ = debug.Sync()

	out := buf.String()
	if !strings.Contains(out, "now visible") || !strings.Contains(out, `"component":"registry"`) {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestLogger_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{ServiceName: "cli", Format: "text", Output: &buf})

	logger.Info("hello", "key", "value")
	_ = logger.Sync()

	if !strings.Contains(buf.String(), "INFO") {
		t.Errorf("console output should contain level: %q", buf.String())
	}
}

func TestLogger_AdditionalOutputs(t *testing.T) {
	var primary, extra bytes.Buffer
	logger := NewLogger(LoggerConfig{
		ServiceName:       "test",
		Output:            &primary,
		AdditionalOutputs: []io.Writer{&extra},
	})

	logger.Info("fan out")
	_ = logger.Sync()

	if !strings.Contains(primary.String(), "fan out") {
		t.Error("primary output missing entry")
	}
	if !strings.Contains(extra.String(), "fan out") {
		t.Error("additional output missing entry")
	}
}

func TestNewNop(t *testing.T) {
	logger := NewNop()

	// Should not panic, including odd key-values
	logger.Info("message", "key1", "value1", "orphan")
	if logger.WithLevel(LevelDebug) != logger {
		t.Error("WithLevel on a nop logger should return the same logger")
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	logger := NewLogger(LoggerConfig{ServiceName: "benchmark", Output: io.Discard})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", "iteration", i)
	}
}
