package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Compile-time check that the renderer can log through *Logger
var _ core.Logger = (*Logger)(nil)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", DEBUG},
		{"DEBUG", DEBUG},
		{"info", INFO},
		{"warn", WARN},
		{"warning", WARN},
		{" error ", ERROR},
		{"fatal", FATAL},
		{"", INFO},
		{"verbose", INFO},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger("warn", &buf)

	logger.Debug("debug message")
	logger.Infof("info %d", 1)
	logger.Warnf("warn %d", 2)
	logger.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info 1") {
		t.Errorf("Messages below WARN should be dropped, got %q", out)
	}
	if !strings.Contains(out, "[WARN ]") || !strings.Contains(out, "warn 2") {
		t.Errorf("Expected warning line, got %q", out)
	}
	if !strings.Contains(out, "[ERROR]") || !strings.Contains(out, "error message") {
		t.Errorf("Expected error line, got %q", out)
	}
}

func TestLogger_PrintfIsInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger("info", &buf)

	logger.Printf("Tiles remaining: %d\n", 3)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected a single line without a blank trailer, got %q", buf.String())
	}
	if !strings.Contains(lines[0], "[INFO ]") || !strings.HasSuffix(lines[0], "Tiles remaining: 3") {
		t.Errorf("Unexpected line %q", lines[0])
	}
	if !strings.Contains(lines[0], "logger_test.go:") {
		t.Errorf("Expected caller file in prefix, got %q", lines[0])
	}

	buf.Reset()
	logger.SetLevel("error")
	logger.Printf("hidden")
	if buf.Len() != 0 {
		t.Errorf("Printf should be filtered above INFO, got %q", buf.String())
	}
}

func TestLogger_Colors(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger("debug", &buf)
	logger.EnableColors(true)

	logger.Debugf("colored")

	if !strings.HasPrefix(buf.String(), "\033[36m") || !strings.Contains(buf.String(), "\033[0m") {
		t.Errorf("Expected ANSI colored prefix, got %q", buf.String())
	}
}

func TestLogger_FatalExits(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger("info", &buf)

	exitCode := -1
	logger.exit = func(code int) { exitCode = code }

	logger.Fatalf("cannot continue: %s", "boom")

	if exitCode != 1 {
		t.Errorf("Expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "[FATAL]") || !strings.Contains(buf.String(), "cannot continue: boom") {
		t.Errorf("Expected fatal line, got %q", buf.String())
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "render.log")

	logger, err := NewFileLogger("debug", path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger.Info("written to file")
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("Expected message in log file, got %q", string(data))
	}
	if strings.Contains(string(data), "\033[") {
		t.Error("File output should not be colored")
	}
}

func TestNewMultiLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "render.log")

	logger, err := NewMultiLogger("warn", path)
	if err != nil {
		t.Fatalf("NewMultiLogger failed: %v", err)
	}
	logger.Info("filtered out")
	logger.Warnf("tile %d slow", 7)
	logger.Close()
	logger.Close() // Second close is a no-op

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "[WARN ]") || !strings.Contains(string(data), "tile 7 slow") {
		t.Errorf("Expected warning in log file, got %q", string(data))
	}
	if strings.Contains(string(data), "filtered out") {
		t.Error("Info message should be filtered at warn level")
	}
}

func TestTeeLogger_WritesBothOutputs(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "render.log")

	logger, err := newTeeLogger("info", &console, path)
	if err != nil {
		t.Fatalf("newTeeLogger failed: %v", err)
	}
	logger.Printf("Tiles remaining: %d\n", 3)
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	for name, out := range map[string]string{"console": console.String(), "file": string(data)} {
		if !strings.Contains(out, "Tiles remaining: 3") {
			t.Errorf("Expected message on %s, got %q", name, out)
		}
		if strings.Contains(out, "\033[") {
			t.Errorf("%s output should not be colored", name)
		}
	}
}

func TestNewMultiLogger_BadPath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := NewMultiLogger("info", filepath.Join(blocker, "render.log")); err == nil {
		t.Error("Expected error when the log directory is a file")
	}
}

func TestLogLevel_String(t *testing.T) {
	if WARN.String() != "WARN" {
		t.Errorf("Expected WARN, got %q", WARN.String())
	}
	if LogLevel(42).String() != "LogLevel(42)" {
		t.Errorf("Unexpected name for unknown level: %q", LogLevel(42).String())
	}
}
