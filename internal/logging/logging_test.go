package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// quietLogger captures output like NewBuffered but leaves verbose off,
// so debug-only paths can be checked for silence.
func quietLogger() (*Logger, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	return &Logger{base: log.New(buf)}, buf
}

func resetDefault() {
	std = nil
	once = sync.Once{}
}

func TestDebugSuppressedInNormalMode(t *testing.T) {
	logger, buf := quietLogger()

	logger.Debug("catalog cache miss")

	if got := buf.String(); strings.Contains(got, "catalog cache miss") {
		t.Errorf("debug output should be suppressed outside debug mode, got: %s", got)
	}
}

func TestBufferedLoggerCapturesDebug(t *testing.T) {
	logger, buf := NewBuffered()

	logger.Debug("hydration plan computed", "ounces", 34.5)

	if got := buf.String(); !strings.Contains(got, "hydration plan computed") {
		t.Errorf("buffered logger dropped a debug line, got: %s", got)
	}
}

func TestWithComponent(t *testing.T) {
	logger, buf := NewBuffered()

	child := logger.WithComponent("library")
	child.Info("catalog loaded", "cards", 36)

	got := buf.String()
	if !strings.Contains(got, "component=library") {
		t.Errorf("child logger output missing component tag: %s", got)
	}
	if !strings.Contains(got, "catalog loaded") {
		t.Errorf("child logger output missing message: %s", got)
	}

	// The parent logger must stay untagged
	buf.Reset()
	logger.Info("plain message")
	if got := buf.String(); strings.Contains(got, "component=") {
		t.Errorf("parent logger picked up a component tag: %s", got)
	}
}

func TestTraceMsg(t *testing.T) {
	logger, buf := NewBuffered()

	logger.TraceMsg(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	got := buf.String()
	if !strings.Contains(got, "tea msg") {
		t.Errorf("trace output missing marker, got: %s", got)
	}
	if !strings.Contains(got, "tea.KeyMsg") {
		t.Errorf("trace output missing message type, got: %s", got)
	}

	quiet, qbuf := quietLogger()
	quiet.TraceMsg(tea.KeyMsg{Type: tea.KeySpace})
	if qbuf.Len() != 0 {
		t.Errorf("message tracing should be silent outside debug mode, got: %s", qbuf.String())
	}
}

func TestTiming(t *testing.T) {
	logger, buf := NewBuffered()

	started := time.Now()
	time.Sleep(time.Millisecond)
	logger.Timing("catalog_load", started)

	got := buf.String()
	for _, want := range []string{"timing", "op=catalog_load", "took="} {
		if !strings.Contains(got, want) {
			t.Errorf("timing output missing %q, got: %s", want, got)
		}
	}
}

func TestNewDebugModeWritesLogFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DEBUG", "1")

	logger := New()
	if !logger.verbose {
		t.Error("DEBUG env var should enable verbose logging")
	}
	logger.Debug("late meal check", "window_minutes", 90)

	data, err := os.ReadFile(filepath.Join(".", debugLogName))
	if err != nil {
		t.Fatalf("expected debug log file to exist: %v", err)
	}
	if !strings.Contains(string(data), "late meal check") {
		t.Errorf("debug log missing entry, got: %s", data)
	}
}

func TestNewNormalMode(t *testing.T) {
	t.Setenv("DEBUG", "")

	if logger := New(); logger.verbose {
		t.Error("verbose logging should be off without the DEBUG env var")
	}
}

func TestPackageShorthands(t *testing.T) {
	resetDefault()

	// The shared logger writes to stderr at warn level; this only checks
	// that the shorthands run before anything configured a logger.
	Info("shorthand info")
	Warn("shorthand warn")
	Error("shorthand error")
	Debug("shorthand debug")
}

func TestDefaultReturnsSingleton(t *testing.T) {
	resetDefault()

	first := Default()
	if second := Default(); first != second {
		t.Error("Default() should hand out one shared instance")
	}
}

func BenchmarkInfo(b *testing.B) {
	logger, _ := NewBuffered()

	b.ResetTimer()
	for range b.N {
		logger.Info("set logged", "exercise", "floor press")
	}
}

func BenchmarkDebug(b *testing.B) {
	logger, _ := NewBuffered()

	b.ResetTimer()
	for range b.N {
		logger.Debug("set logged", "exercise", "floor press")
	}
}
