package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger écrit sur stdout et dans un fichier journalisé par lumberjack.
type Logger struct {
	sl      *slog.Logger
	rotator *lumberjack.Logger
}

func NewLogger(logPath, logLevel string) *Logger {
	rotator := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	}

	handler := slog.NewTextHandler(
		io.MultiWriter(os.Stdout, rotator),
		&slog.HandlerOptions{Level: parseLevel(logLevel)},
	)

	return &Logger{
		sl:      slog.New(handler),
		rotator: rotator,
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

func (l *Logger) Debug(msg string, fields ...any) {
	l.sl.Debug(msg, fields...)
}

func (l *Logger) Info(msg string, fields ...any) {
	l.sl.Info(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...any) {
	l.sl.Warn(msg, fields...)
}

func (l *Logger) Error(msg string, fields ...any) {
	l.sl.Error(msg, fields...)
}

func (l *Logger) Close() error {
	return l.rotator.Close()
}
