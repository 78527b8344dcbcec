// Package logger builds charmbracelet/log loggers for the wordkit binaries.
// Everything logs to stderr: stdout carries the msgpack stream.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Setup points the global logger at stderr with debug or warn level.
func Setup(debug bool) {
	log.SetDefault(log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: debug,
		Formatter:       log.TextFormatter,
		Level:           levelFor(debug),
	}))
}

func levelFor(debug bool) log.Level {
	if debug {
		return log.DebugLevel
	}
	return log.WarnLevel
}

// New creates a prefixed charm log that respects the global log level.
func New(prefix string) *log.Logger {
	return NewWithWriter(os.Stderr, prefix)
}

// NewWithWriter is New with a custom destination.
func NewWithWriter(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: log.GetLevel() == log.DebugLevel,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}
