package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func jsonLogger(buf *bytes.Buffer, level string) *Logger {
	return NewWithWriter(buf, &Config{Level: level, Format: "json"}, "infiniter-test")
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("invalid json log line %q: %v", line, err)
	}
	return m
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("Format = %q, want console", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("Output = %q, want stderr", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("Timestamp should default to true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "debug", Format: "json", Output: "stdout"}, false},
		{"empty output allowed", Config{Level: "info", Format: "console"}, false},
		{"bad level", Config{Level: "loud", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
		{"bad output", Config{Level: "info", Format: "json", Output: "file"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := jsonLogger(&buf, "info")

	log.Info("generator evaluated", Fields(FieldGenerator, "primes", FieldPulls, 5))

	m := decodeLine(t, &buf)
	if m["message"] != "generator evaluated" {
		t.Errorf("message = %v", m["message"])
	}
	if m["level"] != "info" {
		t.Errorf("level = %v", m["level"])
	}
	if m["service"] != "infiniter-test" {
		t.Errorf("service = %v", m["service"])
	}
	if m[FieldGenerator] != "primes" {
		t.Errorf("generator = %v", m[FieldGenerator])
	}
	if m[FieldPulls] != float64(5) {
		t.Errorf("pulls = %v", m[FieldPulls])
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := jsonLogger(&buf, "warn")

	log.Debug("hidden")
	log.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %q", buf.String())
	}

	log.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn message missing: %q", buf.String())
	}
}

func TestLoggerWithComponentAndError(t *testing.T) {
	var buf bytes.Buffer
	log := jsonLogger(&buf, "debug").WithComponent("eval").WithError(errors.New("boom"))

	log.Error("evaluation failed")

	m := decodeLine(t, &buf)
	if m[FieldComponent] != "eval" {
		t.Errorf("component = %v", m[FieldComponent])
	}
	if m[FieldError] != "boom" {
		t.Errorf("error = %v", m[FieldError])
	}
}

func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := jsonLogger(&buf, "info").WithFields(Fields(FieldSequence, "fib"))

	log.Info("pull")

	m := decodeLine(t, &buf)
	if m[FieldSequence] != "fib" {
		t.Errorf("sequence = %v", m[FieldSequence])
	}
}

func TestLoggerWithContext(t *testing.T) {
	var buf bytes.Buffer
	base := jsonLogger(&buf, "info")

	if got := base.WithContext(context.Background()); got != base {
		t.Error("WithContext without request ID should return the same logger")
	}

	ctx := ContextWithRequestID(context.Background(), "req-123")
	base.WithContext(ctx).Info("handled")

	m := decodeLine(t, &buf)
	if m[FieldRequestID] != "req-123" {
		t.Errorf("request_id = %v", m[FieldRequestID])
	}
}

func TestConsoleFormatLevelTags(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, &Config{Level: "debug", Format: "console", NoColor: true}, "default")

	log.Warn("careful", Fields("k", "v"))

	out := buf.String()
	if !strings.Contains(out, "[WRN]") {
		t.Errorf("console output missing level tag: %q", out)
	}
	if !strings.Contains(out, "k:v") {
		t.Errorf("console output missing field: %q", out)
	}
	if strings.Contains(out, "service") {
		t.Errorf("default service name should not be logged: %q", out)
	}
}

func TestNopDiscards(t *testing.T) {
	log := Nop()
	log.Info("nothing")
	log.WithComponent("x").WithFields(Fields("a", 1)).Error("still nothing")
}

func TestGlobalLogger(t *testing.T) {
	prev := globalLogger
	defer SetGlobalLogger(prev)

	var buf bytes.Buffer
	SetGlobalLogger(jsonLogger(&buf, "info"))

	Info("global hello")
	if !strings.Contains(buf.String(), "global hello") {
		t.Errorf("global logger did not receive message: %q", buf.String())
	}

	buf.Reset()
	WithComponent("cli").Info("tagged")
	m := decodeLine(t, &buf)
	if m[FieldComponent] != "cli" {
		t.Errorf("component = %v", m[FieldComponent])
	}
}

func TestFieldsHelpers(t *testing.T) {
	f := Fields("a", 1, "b")
	if len(f) != 1 || f["a"] != 1 {
		t.Errorf("Fields dropped/kept wrong keys: %v", f)
	}

	ef := ErrorFields("collect", errors.New("nope"))
	if ef[FieldOperation] != "collect" || ef[FieldError] != "nope" {
		t.Errorf("ErrorFields = %v", ef)
	}

	df := DurationFields("sort", 1500*time.Millisecond)
	if df[FieldDuration] != int64(1500) {
		t.Errorf("DurationFields = %v", df)
	}
}
