package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func jsonConfig(level string) *Config {
	return &Config{Level: level, Format: "json", Output: "stdout"}
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(jsonConfig("invalid-level"), "test", &buf)
	l.Debug("hidden")
	l.Info("shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("invalid level should fall back to info")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("expected info message")
	}
}

func TestWithComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(jsonConfig("debug"), "test", &buf).
		WithComponent("descriptor").
		WithFields(Fields(FieldFilter, "tok"))
	l.Info("built", Fields(FieldStage, 1))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry[FieldComponent] != "descriptor" {
		t.Errorf("expected component=descriptor, got %v", entry[FieldComponent])
	}
	if entry[FieldFilter] != "tok" {
		t.Errorf("expected filter=tok, got %v", entry[FieldFilter])
	}
	if entry[FieldStage] != float64(1) {
		t.Errorf("expected stage=1, got %v", entry[FieldStage])
	}
	if entry["message"] != "built" {
		t.Errorf("expected message 'built', got %v", entry["message"])
	}
	if entry[FieldService] != "test" {
		t.Errorf("expected service=test, got %v", entry[FieldService])
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{Level: "info", Format: "console", NoColor: true}
	NewWithWriter(cfg, "pktchain", &buf).Warn("slow stage", Fields(FieldStage, 2))

	out := buf.String()
	for _, want := range []string{"[PKT][WAR]", "slow stage", "stage:2"} {
		if !strings.Contains(out, want) {
			t.Errorf("console output %q missing %q", out, want)
		}
	}
}

func TestDisabledLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(jsonConfig("disabled"), "test", &buf)
	l.Error("dropped", Fields(FieldFilter, "tok"))
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestWithError(t *testing.T) {
	l := NewDefault("test")
	el := l.WithError(nil)
	if el == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNop(t *testing.T) {
	// Should not panic.
	Nop().Error("discarded")
}

func TestInit(t *testing.T) {
	Init(Config{Level: "info", Format: "console"})
	if GetGlobalLogger() == nil {
		t.Fatal("expected global logger to be set after Init")
	}
}

func TestGetGlobalLoggerDefault(t *testing.T) {
	globalLogger = nil
	if GetGlobalLogger() == nil {
		t.Fatal("expected default global logger to be created")
	}
}

func TestSetGlobalLogger(t *testing.T) {
	l := NewDefault("custom")
	SetGlobalLogger(l)
	if GetGlobalLogger() != l {
		t.Error("expected SetGlobalLogger to set the global logger")
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected output 'stderr', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json", Output: "stdout"}, false},
		{"valid console", Config{Level: "debug", Format: "console", Output: "stderr"}, false},
		{"invalid level", Config{Level: "bad", Format: "json", Output: "stdout"}, true},
		{"invalid format", Config{Level: "info", Format: "xml", Output: "stdout"}, true},
		{"invalid output", Config{Level: "info", Format: "json", Output: "file"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestFields(t *testing.T) {
	m := Fields("a", 1, "b", "two", 3, "ignored", "dangling")
	if len(m) != 2 {
		t.Fatalf("expected 2 fields, got %v", m)
	}
	if m["a"] != 1 || m["b"] != "two" {
		t.Errorf("unexpected fields %v", m)
	}
}
