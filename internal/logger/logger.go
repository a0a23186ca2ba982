package logger

import (
	"io"
	"log/slog"
	"os"
)

var Logger *slog.Logger

// Init configures the default logger. format is "text" or "json".
func Init(format string, debug bool) {
	Logger = New(os.Stderr, format, debug)
	slog.SetDefault(Logger)
}

// New builds a logger writing to w, wrapped in a ContextHandler.
func New(w io.Writer, format string, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(NewContextHandler(handler))
}

func Info(msg string, args ...any) {
	slog.Info(msg, args...)
}

func Error(msg string, args ...any) {
	slog.Error(msg, args...)
}

func Debug(msg string, args ...any) {
	slog.Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	slog.Warn(msg, args...)
}
