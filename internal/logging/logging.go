package logging

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

const debugLogName = "fittrack-debug.log"

// Logger wraps charmbracelet/log for the whole application.
//
// Stdout is reserved for the MCP JSON-RPC stream, so output goes either to
// stderr (normal mode, warnings and up) or to a debug log file (DEBUG env
// var set, everything).
type Logger struct {
	base    *log.Logger
	verbose bool
}

var (
	std  *Logger
	once sync.Once
)

// Default returns the shared logger, building it on first use. Code
// without an injected logger (config loading happens before one exists)
// logs through this.
func Default() *Logger {
	once.Do(func() { std = New() })
	return std
}

// Package-level shorthands for the shared logger.
func Info(msg string, keyvals ...any)  { Default().Info(msg, keyvals...) }
func Warn(msg string, keyvals ...any)  { Default().Warn(msg, keyvals...) }
func Error(msg string, keyvals ...any) { Default().Error(msg, keyvals...) }
func Debug(msg string, keyvals ...any) { Default().Debug(msg, keyvals...) }

// New builds the process-wide logger. With DEBUG set it writes
// everything to fittrack-debug.log in the working directory; otherwise
// warnings and errors go to stderr.
func New() *Logger {
	if os.Getenv("DEBUG") == "" {
		return &Logger{base: stderrLogger(log.WarnLevel)}
	}

	base, err := debugFileLogger()
	if err != nil {
		base = stderrLogger(log.DebugLevel)
		base.Warn("Debug log file unavailable, logging to stderr", "error", err)
	}
	return &Logger{base: base, verbose: true}
}

func stderrLogger(level log.Level) *log.Logger {
	base := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "FitTrack",
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	base.SetLevel(level)
	return base
}

// debugFileLogger truncates and reopens the debug log on each run.
func debugFileLogger() (*log.Logger, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	logPath := filepath.Join(cwd, debugLogName)

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}

	base := log.NewWithOptions(logFile, log.Options{
		Prefix:          "FitTrack",
		ReportTimestamp: true,
		ReportCaller:    true,
		TimeFormat:      time.Kitchen,
	})
	base.SetLevel(log.DebugLevel)
	base.Info("Debug logging enabled", "log_file", logPath)
	return base, nil
}

// WithComponent returns a child logger tagged with a component name so
// subsystems (library, mcp, tui) can be told apart in shared output.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{base: l.base.With("component", name), verbose: l.verbose}
}

func (l *Logger) Info(msg string, keyvals ...any)  { l.base.Info(msg, keyvals...) }
func (l *Logger) Warn(msg string, keyvals ...any)  { l.base.Warn(msg, keyvals...) }
func (l *Logger) Error(msg string, keyvals ...any) { l.base.Error(msg, keyvals...) }

func (l *Logger) Debug(msg string, keyvals ...any) {
	if l.verbose {
		l.base.Debug(msg, keyvals...)
	}
}

// TraceMsg records a bubbletea message. Only active in debug mode
// because the browser produces one per keystroke.
func (l *Logger) TraceMsg(msg tea.Msg) {
	if l.verbose {
		l.base.Debug("tea msg", "type", fmt.Sprintf("%T", msg), "value", fmt.Sprintf("%+v", msg))
	}
}

// Timing records the elapsed time of an operation in debug mode. Call it
// deferred with the start time captured up front:
//
//	defer logger.Timing("catalog reload", time.Now())
func (l *Logger) Timing(op string, start time.Time) {
	if l.verbose {
		l.base.Debug("timing", "op", op, "took", time.Since(start))
	}
}

// NewBuffered returns a logger that captures output in a buffer so tests
// can assert on it. Debug logging is enabled and timestamps are off.
func NewBuffered() (*Logger, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	base := log.NewWithOptions(buf, log.Options{Prefix: "test"})
	base.SetLevel(log.DebugLevel)
	return &Logger{base: base, verbose: true}, buf
}
