// Package logging wraps log/slog behind the small level-aware surface the
// producer loop and CLI use to report transitions (EOS reached, seek class)
// and filter open — the Go analog of the original's
// msg_Info/msg_Warn/msg_RBuf calls. No third-party structured logging
// library appears anywhere in the retrieval pack for this kind of
// long-lived background worker; every repo that logs falls back to stdlib
// log or log/slog, so this package does the same.
package logging

import (
	"context"
	"log/slog"
	"os"

	"github.com/streamring/streamring/config"
)

// LevelTrace sits below slog's Debug for the chattiest producer messages.
const LevelTrace slog.Level = slog.LevelDebug - 4

type Logger struct {
	logger *slog.Logger
}

// New builds a Logger from a config.LogConfig, choosing a text or JSON
// handler and the configured minimum level. Output goes to stderr so it
// never mixes into a stream copied to stdout.
func New(cfg config.LogConfig) *Logger {
	level := parseLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return &Logger{logger: slog.New(handler)}
}

// Discard returns a Logger that drops everything, for tests and library
// callers that don't want producer chatter.
func Discard() *Logger {
	return &Logger{logger: slog.New(slog.NewTextHandler(discardWriter{}, &slog.HandlerOptions{Level: slog.LevelError + 100}))}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func parseLevel(level string) slog.Level {
	switch level {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) Trace(msg string, args ...any) {
	l.logger.Log(context.Background(), LevelTrace, msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}
