package slog

import (
	"context"
	"fmt"
	"io"
	stdslog "log/slog"
	"os"
	"strings"
	"sync/atomic"

	"golang.org/x/term"
)

type LogLevel = string

const (
	DEBUG LogLevel = "DEBUG"
	INFO           = "INFO"
	WARN           = "WARN"
	ERROR          = "ERROR"
	FATAL          = "FATAL"
)

// Format selects the handler used to render records.
type Format = string

const (
	FormatAuto Format = "auto"
	FormatText        = "text"
	FormatJSON        = "json"
)

var (
	logger atomic.Pointer[stdslog.Logger]
	exit   = os.Exit
)

func init() {
	logger.Store(newLogger(stdslog.LevelInfo, FormatAuto, os.Stderr))
}

func isTerminal(w io.Writer) bool {
	fd, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(fd.Fd()))
}

func newLogger(level stdslog.Level, format Format, w io.Writer) *stdslog.Logger {
	options := &stdslog.HandlerOptions{Level: level}
	if format == FormatJSON || (format == FormatAuto && !isTerminal(w)) {
		return stdslog.New(stdslog.NewJSONHandler(w, options))
	}
	return stdslog.New(stdslog.NewTextHandler(w, options))
}

// ParseLevel maps a level name (case-insensitive) to a slog level.
func ParseLevel(name string) (stdslog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case DEBUG:
		return stdslog.LevelDebug, nil
	case INFO, "":
		return stdslog.LevelInfo, nil
	case WARN, "WARNING":
		return stdslog.LevelWarn, nil
	case ERROR:
		return stdslog.LevelError, nil
	}
	return stdslog.LevelInfo, fmt.Errorf("ParseLevel: unknown log level `%s`", name)
}

// Configure replaces the process logger. With FormatAuto, text is written when
// w is a terminal and JSON otherwise.
func Configure(level string, format Format, w io.Writer) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	switch format {
	case FormatAuto, FormatText, FormatJSON:
	case "":
		format = FormatAuto
	default:
		return fmt.Errorf("Configure: unknown log format `%s`", format)
	}
	logger.Store(newLogger(lvl, format, w))
	return nil
}

// Logger exposes the configured structured logger for callers that want
// key/value attributes.
func Logger() *stdslog.Logger {
	return logger.Load()
}

// DebugEnabled reports whether DEBUG records are written, so callers can skip
// work that only feeds debug output.
func DebugEnabled() bool {
	return logger.Load().Enabled(context.Background(), stdslog.LevelDebug)
}

// Calls to the logger at DEBUG level. Arguments are handled in the manner of fmt.Printf.
func Debugf(format string, v ...any) {
	logger.Load().Debug(fmt.Sprintf(format, v...))
}

// Calls to the logger at INFO level. Arguments are handled in the manner of fmt.Printf.
func Infof(format string, v ...any) {
	logger.Load().Info(fmt.Sprintf(format, v...))
}

// Calls to the logger at INFO level. Arguments are handled in the manner of fmt.Print.
func Info(v ...any) {
	logger.Load().Info(fmt.Sprint(v...))
}

// Calls to the logger at WARN level. Arguments are handled in the manner of fmt.Printf.
func Warnf(format string, v ...any) {
	logger.Load().Warn(fmt.Sprintf(format, v...))
}

// Calls to the logger at ERROR level. Arguments are handled in the manner of fmt.Printf.
func Errorf(format string, v ...any) {
	logger.Load().Error(fmt.Sprintf(format, v...))
}

// Calls to the logger at ERROR level. Arguments are handled in the manner of fmt.Print.
func Error(v ...any) {
	logger.Load().Error(fmt.Sprint(v...))
}

// Logs at ERROR level with a FATAL tag, then calls os.Exit(1). Arguments are handled in the manner of fmt.Printf.
func Fatalf(format string, v ...any) {
	logger.Load().Error(fmt.Sprintf(format, v...), "tag", FATAL)
	exit(1)
}

// Logs at ERROR level with a FATAL tag, then calls os.Exit(1). Arguments are handled in the manner of fmt.Print.
func Fatal(v ...any) {
	logger.Load().Error(fmt.Sprint(v...), "tag", FATAL)
	exit(1)
}
