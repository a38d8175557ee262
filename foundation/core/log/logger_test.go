// File: logger_test.go
// Title: Logger Tests
// Description: Tests for level filtering, context fields, formatters and
//              error integration.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2025-10-17 v0.2.0: Rewritten for the trimmed logger

package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	mdwerror "github.com/msto63/lox/foundation/core/error"
)

func newBufferLogger(level Level, format Format) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewWithConfig(Config{Level: level, Format: format, Output: buf}), buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"trace", LevelTrace, false},
		{"DEBUG", LevelDebug, false},
		{" info ", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"err", LevelError, false},
		{"fatal", LevelFatal, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(json) = %v, %v", f, err)
	}
	if f, err := ParseFormat("console"); err != nil || f != FormatConsole {
		t.Errorf("ParseFormat(console) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn, FormatText)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("visible")
	logger.Error("also visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below warn were written: %q", out)
	}
	if !strings.Contains(out, "[WRN] visible") || !strings.Contains(out, "[ERR] also visible") {
		t.Errorf("expected warn and error lines, got %q", out)
	}
}

func TestLogger_WithFieldIsImmutable(t *testing.T) {
	base, buf := newBufferLogger(LevelInfo, FormatText)
	tagged := base.WithField("component", "lox-parser")

	base.Info("from base")
	tagged.Info("from tagged", Fields{"statements": 2})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if strings.Contains(lines[0], "component") {
		t.Errorf("base logger picked up a derived field: %q", lines[0])
	}
	if !strings.Contains(lines[1], "[component=lox-parser statements=2]") {
		t.Errorf("fields not rendered in sorted order: %q", lines[1])
	}
}

func TestJSONFormatter(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatJSON)
	err := mdwerror.New("Operands must be numbers.").WithCode(mdwerror.CodeTypeMismatch)

	logger.WithName("engine").ErrorWithErr("run failed", err, Fields{"line": 3})

	var decoded map[string]interface{}
	if jerr := json.Unmarshal(buf.Bytes(), &decoded); jerr != nil {
		t.Fatalf("output is not JSON: %v (%q)", jerr, buf.String())
	}
	if decoded["level"] != "error" || decoded["message"] != "run failed" {
		t.Errorf("unexpected level/message: %v", decoded)
	}
	if decoded["logger"] != "engine" {
		t.Errorf("logger = %v", decoded["logger"])
	}
	if decoded["line"] != float64(3) {
		t.Errorf("line = %v", decoded["line"])
	}
	details, ok := decoded["error_details"].(map[string]interface{})
	if !ok || details["code"] != "TYPE_MISMATCH" {
		t.Errorf("error_details = %v", decoded["error_details"])
	}
}

func TestConsoleFormatter_Colors(t *testing.T) {
	entry := NewEntry(LevelError, "boom")
	entry.Timestamp = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	f := NewConsoleFormatter()
	out, _ := f.Format(entry)
	if !strings.HasPrefix(string(out), LevelError.Color()) || !strings.HasSuffix(string(out), "\033[0m\n") {
		t.Errorf("console output not colored: %q", out)
	}

	f.DisableColors = true
	out, _ = f.Format(entry)
	if string(out) != "12:00:00 [ERR] boom\n" {
		t.Errorf("plain console output = %q", out)
	}
}

func TestLogger_LogErrorLevelFromSeverity(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"user fault", mdwerror.New("Undefined variable 'x'.").WithCode(mdwerror.CodeUndefinedVariable), "[DBG]"},
		{"plain error", mdwerror.New("odd"), "[WRN]"},
		{"storage failure", mdwerror.New("disk full").WithCode(mdwerror.CodeStorageError), "[ERR]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(LevelTrace, FormatText)
			logger.LogError(tt.err)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("LogError() wrote %q, want level %s", buf.String(), tt.want)
			}
		})
	}
}

func TestTimer_StopOnce(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatJSON)

	timer := logger.StartTimer("run").WithField("statements", 4)
	if timer.Stop() < 0 {
		t.Error("elapsed should not be negative")
	}
	if timer.Stop() != 0 {
		t.Error("second Stop() should return zero")
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected a single completion line, got %q", buf.String())
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["message"] != "run completed" || decoded["operation"] != "run" {
		t.Errorf("unexpected timer entry: %v", decoded)
	}
	if _, ok := decoded["duration"]; ok {
		t.Error("duration should be lifted onto the entry, not kept as a field")
	}
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	if logger.IsLevelEnabled(LevelFatal) {
		t.Error("nop logger should not enable any level")
	}
	logger.Error("nothing happens")
}
