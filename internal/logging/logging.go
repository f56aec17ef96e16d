// Package logging builds the leveled loggers used by the CLI and the TUI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	envLevel  = "WEEKPLAN_LOG_LEVEL"
	envFormat = "WEEKPLAN_LOG_FORMAT"
	envFile   = "WEEKPLAN_LOG_FILE"
)

type Options struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	Prefix          string
}

// DefaultOptions reads WEEKPLAN_LOG_LEVEL / WEEKPLAN_LOG_FORMAT, defaulting to warn + text.
func DefaultOptions() Options {
	return Options{
		Level:           ParseLevel(os.Getenv(envLevel), log.WarnLevel),
		Formatter:       ParseFormatter(os.Getenv(envFormat)),
		ReportTimestamp: true,
		Prefix:          "weekplan",
	}
}

func New(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          opts.Prefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// OpenTUI returns a logger for the interactive program. The terminal belongs to
// bubbletea, so output goes to WEEKPLAN_LOG_FILE when set and is dropped otherwise.
// The returned close func is always non-nil.
func OpenTUI() (*log.Logger, func() error, error) {
	path := strings.TrimSpace(os.Getenv(envFile))
	if path == "" {
		return Discard(), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	opts := DefaultOptions()
	opts.Level = ParseLevel(os.Getenv(envLevel), log.DebugLevel)
	return New(f, opts), f.Close, nil
}

func ParseLevel(level string, fallback log.Level) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return fallback
	}
}

func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
