// Package logger is taskr's leveled logger. Lines are written as
// "<timestamp> [LEVEL] message". Output is discarded until a log file is
// set, since the terminal belongs to the TUI and the MCP stdio transport.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level orders log severity from Debug up to Error.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

var levelAliases = map[string]Level{
	"":        LevelInfo,
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

func (l Level) String() string {
	if l < LevelDebug || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel maps a config or env value to a Level. Empty means info.
func ParseLevel(s string) (Level, error) {
	if lvl, ok := levelAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return lvl, nil
	}
	return LevelInfo, fmt.Errorf("invalid log level: %s", s)
}

// Logger filters by level and owns the log file it writes to, if any.
type Logger struct {
	mu    sync.Mutex
	level Level
	out   *log.Logger
	file  *os.File
}

// Default backs the package-level helpers.
var Default = New()

// New returns a logger seeded from TASKR_LOG_LEVEL and TASKR_LOG_FILE.
// Bad values are ignored; Configure reports them later.
func New() *Logger {
	l := &Logger{level: LevelInfo, out: log.New(io.Discard, "", log.LstdFlags)}
	if lvl, err := ParseLevel(os.Getenv("TASKR_LOG_LEVEL")); err == nil {
		l.level = lvl
	}
	if path := os.Getenv("TASKR_LOG_FILE"); path != "" {
		_ = l.SetFile(path)
	}
	return l
}

// Configure applies a level and an optional log file path.
// An empty path leaves the current output untouched.
func (l *Logger) Configure(level, path string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	l.SetLevel(lvl)
	if path == "" {
		return nil
	}
	return l.SetFile(path)
}

// SetFile redirects output to path, appending. A previously opened file
// is closed.
func (l *Logger) SetFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.swapFile(f)
	l.out.SetOutput(f)
	return nil
}

// Close releases the log file and falls back to discarding. Repeat calls
// are no-ops.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.out.SetOutput(io.Discard)
	return err
}

func (l *Logger) swapFile(f *os.File) {
	if l.file != nil {
		_ = l.file.Close()
	}
	l.file = f
}

func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// SetOutput writes to w without taking ownership of it.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.swapFile(nil)
	l.out.SetOutput(w)
}

// Enabled reports whether messages at level would be written.
func (l *Logger) Enabled(level Level) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return level >= l.level
}

// Logf writes one line at level.
func (l *Logger) Logf(level Level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}
	l.out.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...any) { l.Logf(LevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.Logf(LevelInfo, format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.Logf(LevelWarn, format, args...) }
func (l *Logger) Error(format string, args ...any) { l.Logf(LevelError, format, args...) }

// Package-level helpers on Default.

func Configure(level, path string) error { return Default.Configure(level, path) }
func Close() error                       { return Default.Close() }
func Debug(format string, args ...any)   { Default.Logf(LevelDebug, format, args...) }
func Info(format string, args ...any)    { Default.Logf(LevelInfo, format, args...) }
func Warn(format string, args ...any)    { Default.Logf(LevelWarn, format, args...) }
func Error(format string, args ...any)   { Default.Logf(LevelError, format, args...) }
