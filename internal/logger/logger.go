package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Logger struct {
	service  string
	hostname string
	handler  *slog.Logger
}

// New creates a JSON logger. The shell owns stdout, so callers
// normally pass os.Stderr.
func New(service string, w io.Writer, level slog.Level) *Logger {
	hostname, _ := os.Hostname()

	handler := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))

	return &Logger{
		service:  service,
		hostname: hostname,
		handler:  handler,
	}
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *Logger {
	return New("discard", io.Discard, slog.LevelError+1)
}

// ParseLevel maps a config level name to a slog level.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

func GenerateRequestID() string {
	return uuid.NewString()
}

func (l *Logger) Info(action, message, requestID string, fields map[string]any) {
	l.log(slog.LevelInfo, action, message, requestID, fields)
}

func (l *Logger) Debug(action, message, requestID string, fields map[string]any) {
	l.log(slog.LevelDebug, action, message, requestID, fields)
}

func (l *Logger) Error(action, message, requestID string, err error, fields map[string]any) {
	attrs := l.baseAttrs(action, requestID, fields)
	if err != nil {
		attrs = append(attrs, slog.Group("error",
			slog.String("msg", err.Error()),
			slog.String("stack", string(debug.Stack())),
		))
	}
	l.handler.LogAttrs(context.TODO(), slog.LevelError, message, attrs...)
}

func (l *Logger) log(level slog.Level, action, message, requestID string, fields map[string]any) {
	l.handler.LogAttrs(context.TODO(), level, message, l.baseAttrs(action, requestID, fields)...)
}

func (l *Logger) baseAttrs(action, requestID string, fields map[string]any) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		slog.String("service", l.service),
		slog.String("hostname", l.hostname),
		slog.String("action", action),
		slog.String("request_id", requestID),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	return attrs
}
