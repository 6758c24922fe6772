package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevelOff, "OFF"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("LogLevel(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"Warning", LogLevelWarn},
		{"error", LogLevelError},
		{"off", LogLevelOff},
		{"none", LogLevelOff},
		{"unknown", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf, Prefix: "test"})

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn %d", 1)
	logger.Error("error")

	out := buf.String()
	for _, absent := range []string{"[DEBUG]", "[INFO]"} {
		if strings.Contains(out, absent) {
			t.Errorf("output contains %s below the level:\n%s", absent, out)
		}
	}
	for _, present := range []string{"[WARN] test: warn 1", "[ERROR] test: error"} {
		if !strings.Contains(out, present) {
			t.Errorf("output missing %q:\n%s", present, out)
		}
	}
}

func TestLogger_Off(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelOff, Output: &buf})
	logger.Error("nothing")
	if buf.Len() != 0 {
		t.Errorf("Error() at off level wrote %q", buf.String())
	}
}

func TestLogger_FieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	logger.WithComponent("selection").WithFields(map[string]any{"b": 2, "a": "x"}).Info("drag")

	if got := buf.String(); !strings.Contains(got, "drag {a=x, b=2, component=selection}") {
		t.Errorf("Info() = %q, want sorted fields", got)
	}
}

func TestLogger_DerivedSharesSink(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	root := NewLogger(LoggerConfig{Level: LogLevelError, Output: &buf1})
	child := root.WithComponent("engine")

	child.Info("hidden")
	if buf1.Len() != 0 {
		t.Fatalf("child logged below root level: %q", buf1.String())
	}

	root.SetLevel(LogLevelInfo)
	root.SetOutput(&buf2)
	child.Info("shown")
	if !strings.Contains(buf2.String(), "shown") {
		t.Errorf("child did not follow root SetLevel/SetOutput, got %q", buf2.String())
	}
	if got := child.Level(); got != LogLevelInfo {
		t.Errorf("child.Level() = %v, want %v", got, LogLevelInfo)
	}
}

func TestOpenLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxselect.log")

	logger, err := OpenLogger(path, LogLevelDebug)
	if err != nil {
		t.Fatalf("OpenLogger() error = %v", err)
	}
	logger.Debug("first")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	logger.Debug("after close")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "first") || strings.Contains(string(data), "after close") {
		t.Errorf("log file = %q", data)
	}
}

func TestOpenLogger_BadPath(t *testing.T) {
	if _, err := OpenLogger(filepath.Join(t.TempDir(), "missing", "x.log"), LogLevelInfo); err == nil {
		t.Error("OpenLogger() in a missing directory succeeded")
	}
}

func TestLogger_SetFileSwitches(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.log"), filepath.Join(dir, "b.log")

	logger, err := OpenLogger(a, LogLevelInfo)
	if err != nil {
		t.Fatal(err)
	}
	defer logger.Close()

	logger.Info("one")
	if err := logger.SetFile(b); err != nil {
		t.Fatal(err)
	}
	logger.Info("two")

	da, _ := os.ReadFile(a)
	db, _ := os.ReadFile(b)
	if !strings.Contains(string(da), "one") || strings.Contains(string(da), "two") {
		t.Errorf("a.log = %q", da)
	}
	if !strings.Contains(string(db), "two") {
		t.Errorf("b.log = %q", db)
	}
}

func TestNullLogger(t *testing.T) {
	NullLogger.Debug("test")
	NullLogger.Info("test")
	NullLogger.Warn("test")
	NullLogger.Error("test")
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig()
	if cfg.Level != LogLevelInfo {
		t.Errorf("Level = %v, want %v", cfg.Level, LogLevelInfo)
	}
	if cfg.Prefix != "boxselect" {
		t.Errorf("Prefix = %q, want boxselect", cfg.Prefix)
	}
}
