package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/bashhack/commitpulse/internal/common"
	"github.com/charmbracelet/lipgloss"
	"github.com/lmittmann/tint"
)

var _ common.Logger = (*DefaultLogger)(nil)

const (
	prefixInfo    = "ℹ️ "
	prefixSuccess = "✅"
	prefixWarning = "⚠️ "
	prefixError   = "❌"
)

// DefaultLogger pairs a slog debug stream with styled console output.
type DefaultLogger struct {
	mu      sync.Mutex
	logger  *slog.Logger
	enabled bool
	verbose bool
	stdout  io.Writer
	stderr  io.Writer
	styles  styles
	file    *os.File
}

// styles renders the console prefixes; a renderer bound to a non-terminal
// writer emits plain text.
type styles struct {
	info    lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
}

func newStyles(stdout, stderr io.Writer) styles {
	out := lipgloss.NewRenderer(stdout)
	errOut := lipgloss.NewRenderer(stderr)
	return styles{
		info:    out.NewStyle().Foreground(lipgloss.Color("#5B8DEF")),
		success: out.NewStyle().Foreground(lipgloss.Color("#3FB950")).Bold(true),
		warning: out.NewStyle().Foreground(lipgloss.Color("#D29922")),
		err:     errOut.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	}
}

// NewWithOutput builds a logger whose console lines go to stdout and stderr.
// With enabled set, debug records go to logFile (its directory is created);
// if the file cannot be opened they go to stderr instead.
func NewWithOutput(enabled bool, logFile string, verbose bool, stdout, stderr io.Writer) *DefaultLogger {
	l := &DefaultLogger{
		enabled: enabled,
		verbose: verbose,
		stdout:  stdout,
		stderr:  stderr,
		styles:  newStyles(stdout, stderr),
		logger:  newConsoleLogger(stderr),
	}
	if !enabled || logFile == "" {
		return l
	}

	f, err := openLogFile(logFile)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "⚠️ Failed to open log file: %v, using stderr instead\n", err)
		return l
	}
	l.file = f
	l.logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo}))
	_, _ = fmt.Fprintf(stdout, "🔍 Debug logging enabled. Logs will be written to: %s\n", logFile)
	l.logger.Info("commitpulse debug logging started")
	return l
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

// newConsoleLogger is the debug stream used when no log file is available
func newConsoleLogger(w io.Writer) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: "15:04:05.000",
		NoColor:    !isTerminal(w),
	}))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// WithRunID tags every subsequent debug record with the given run identifier
func (l *DefaultLogger) WithRunID(id string) *DefaultLogger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = l.logger.With(slog.String("run_id", id))
	return l
}

// record writes msg to the debug stream when debug logging is on.
// Callers hold l.mu.
func (l *DefaultLogger) record(level slog.Level, msg string) {
	if l.enabled {
		l.logger.Log(context.Background(), level, msg)
	}
}

// emit prints a prefixed console line.
func emit(w io.Writer, style lipgloss.Style, prefix, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", style.Render(prefix), msg)
}

// Info records msg in the debug stream only.
func (l *DefaultLogger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record(slog.LevelInfo, fmt.Sprintf(format, args...))
}

// InfoToUser prints msg on stdout and records it.
func (l *DefaultLogger) InfoToUser(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	l.record(slog.LevelInfo, msg)
	emit(l.stdout, l.styles.info, prefixInfo, msg)
}

func (l *DefaultLogger) Success(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	l.record(slog.LevelInfo, msg)
	emit(l.stdout, l.styles.success, prefixSuccess, msg)
}

// Warning records msg and echoes it to stdout in verbose mode.
func (l *DefaultLogger) Warning(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	l.record(slog.LevelWarn, msg)
	if l.verbose {
		emit(l.stdout, l.styles.warning, prefixWarning, msg)
	}
}

func (l *DefaultLogger) WarningToUser(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	l.record(slog.LevelWarn, msg)
	emit(l.stdout, l.styles.warning, prefixWarning, msg)
}

// Error records msg and always prints it on stderr.
func (l *DefaultLogger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	l.record(slog.LevelError, msg)
	emit(l.stderr, l.styles.err, prefixError, msg)
}

// StatusMessage prints an unprefixed line that is never recorded.
func (l *DefaultLogger) StatusMessage(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(l.stdout, format+"\n", args...)
}

// Close syncs and closes the log file. Calling it twice is safe.
func (l *DefaultLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		if err := l.file.Sync(); err != nil {
			return err
		}
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// NewNop returns a logger that discards everything
func NewNop() *DefaultLogger {
	return NewWithOutput(false, "", false, io.Discard, io.Discard)
}
