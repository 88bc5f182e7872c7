// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"neptis/internal/config"
)

// Setup installs the default logger described by cfg, writing to console.
// When cfg.File is set, output is also written to a rotating log file.
// The returned closer releases the file and is never nil.
func Setup(cfg config.LoggingConfig, console io.Writer) io.Closer {
	handler, closer := NewHandler(cfg, console)
	slog.SetDefault(slog.New(handler))
	return closer
}

// NewHandler builds the handler Setup installs.
func NewHandler(cfg config.LoggingConfig, console io.Writer) (slog.Handler, io.Closer) {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	}

	var closer io.Closer = nopCloser{}
	out := console
	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    5, // MB
			MaxBackups: 7,
			MaxAge:     30, // days
			Compress:   true,
			LocalTime:  true,
		}
		closer = file
		if console == nil {
			out = file
		} else {
			out = io.MultiWriter(console, file)
		}
	}
	if out == nil {
		out = os.Stderr
	}

	if strings.EqualFold(cfg.Format, "text") {
		return slog.NewTextHandler(out, opts), closer
	}
	return slog.NewJSONHandler(out, opts), closer
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
