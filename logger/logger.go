// Package logger provides the shared zerolog logger used across bitblast.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	logger = zerolog.New(w).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

// Logger returns the package logger.
func Logger() zerolog.Logger {
	return logger
}

// Set replaces the package logger.
func Set(l zerolog.Logger) {
	logger = l
}

// Disable discards all log output. Useful in tests and benchmarks.
func Disable() {
	logger = zerolog.New(io.Discard)
}

// SetOutput redirects log output to w.
func SetOutput(w io.Writer) {
	logger = logger.Output(w)
}
