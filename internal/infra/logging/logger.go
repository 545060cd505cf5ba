// Package logging provides leveled, issue-scoped logging for git-triage.
// Lines go to an output stream (normally stderr) and, optionally, are
// appended to a log file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/runoshun/git-triage/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger writes formatted log lines.
// Fields are ordered to minimize memory padding.
type Logger struct {
	out      io.Writer
	file     *os.File
	now      func() time.Time
	filePath string
	mu       sync.Mutex
	level    slog.Level
}

// New creates a Logger that writes to out at the given minimum level.
// A nil out discards console output.
func New(out io.Writer, level slog.Level) *Logger {
	if out == nil {
		out = io.Discard
	}
	return &Logger{
		out:   out,
		level: level,
		now:   time.Now,
	}
}

// Nop returns a Logger that writes nothing.
func Nop() *Logger {
	return New(io.Discard, slog.LevelError+1)
}

// WithFile additionally appends every line to the file at path.
// The file is opened lazily on the first write.
func (l *Logger) WithFile(path string) *Logger {
	l.filePath = path
	return l
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ensureFile opens or returns the log file.
func (l *Logger) ensureFile() (*os.File, error) {
	if l.file != nil {
		return l.file, nil
	}

	if err := os.MkdirAll(filepath.Dir(l.filePath), 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	// G302: Log files are append-only and need read access by repository users
	f, err := os.OpenFile(l.filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l.file = f
	return f, nil
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// formatLog formats a log entry.
// Format: [2025-12-30 09:32:51] [INFO] [issue-42] [category] message
func formatLog(t time.Time, level slog.Level, issue int, category, msg string) string {
	scope := "global"
	if issue > 0 {
		scope = fmt.Sprintf("issue-%d", issue)
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		scope,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (l *Logger) log(level slog.Level, issue int, category, msg string) {
	if level < l.level {
		return
	}

	entry := formatLog(l.now(), level, issue, category, msg)

	l.mu.Lock()
	defer l.mu.Unlock()

	_, _ = io.WriteString(l.out, entry)
	if l.filePath != "" {
		if f, err := l.ensureFile(); err == nil {
			_, _ = io.WriteString(f, entry)
		}
	}
}

// Info logs an info message.
func (l *Logger) Info(issue int, category, msg string) {
	l.log(slog.LevelInfo, issue, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(issue int, category, msg string) {
	l.log(slog.LevelDebug, issue, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(issue int, category, msg string) {
	l.log(slog.LevelWarn, issue, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(issue int, category, msg string) {
	l.log(slog.LevelError, issue, category, msg)
}
