package logging

import (
	"io"
	"log/slog"
)

// Verbose reports whether Setup enabled debug-level logging.
var Verbose bool

// Setup configures the structured logger. With verbose=false only warnings
// and errors are emitted. With json=true logs are written as JSON lines.
func Setup(verbose, json bool, w io.Writer) {
	Verbose = verbose

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// Debug logs a debug message with structured key-value pairs.
func Debug(msg string, args ...any) {
	slog.Debug(msg, args...)
}

// Info logs an info message with structured key-value pairs.
func Info(msg string, args ...any) {
	slog.Info(msg, args...)
}

// Warn logs a warning message with structured key-value pairs.
func Warn(msg string, args ...any) {
	slog.Warn(msg, args...)
}

// Error logs an error message with structured key-value pairs.
func Error(msg string, args ...any) {
	slog.Error(msg, args...)
}
