// Package logger provides the process-wide structured logger.
//
// Call sites pass a message followed by alternating key/value pairs:
//
//	logger.Info("movie created", "id", movie.ID, "title", movie.Title)
package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
)

var (
	mu   sync.RWMutex
	root = newRoot(hclog.Info, false, os.Stderr)
)

func newRoot(level hclog.Level, json bool, out io.Writer) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:       "filmadmin",
		Level:      level,
		JSONFormat: json,
		Output:     out,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
}

// Configure rebuilds the root logger from a level name ("debug", "info", ...)
// and a format ("json" or anything else for human readable output).
func Configure(level, format string) {
	ConfigureOutput(level, format, os.Stderr)
}

// ConfigureOutput is Configure with an explicit writer.
func ConfigureOutput(level, format string, out io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	root = newRoot(ParseLevel(level), strings.EqualFold(format, "json"), out)
}

// SetLevel changes the level of the root logger and every logger derived
// from it.
func SetLevel(level string) {
	mu.RLock()
	defer mu.RUnlock()
	root.SetLevel(ParseLevel(level))
}

// ParseLevel maps a level name to an hclog level, defaulting to info.
func ParseLevel(level string) hclog.Level {
	l := hclog.LevelFromString(strings.TrimSpace(level))
	if l == hclog.NoLevel {
		return hclog.Info
	}
	return l
}

// Default returns the root logger.
func Default() hclog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}

// Named returns a sub-logger, e.g. Named("catalog") logs as "filmadmin.catalog".
func Named(name string) hclog.Logger {
	return Default().Named(name)
}

// Info logs informational messages
func Info(msg string, args ...interface{}) {
	Default().Info(msg, args...)
}

// Warn logs warning messages
func Warn(msg string, args ...interface{}) {
	Default().Warn(msg, args...)
}

// Error logs error messages
func Error(msg string, args ...interface{}) {
	Default().Error(msg, args...)
}

// Debug logs debug messages
func Debug(msg string, args ...interface{}) {
	Default().Debug(msg, args...)
}
