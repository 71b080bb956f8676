package logger

import (
	"context"
	"log/slog"
	"os"
)

// Logger writes JSON lines to stdout. Every record carries the service name
// and hostname so logs from several instances can be merged.
type Logger struct {
	service  string
	hostname string
	handler  *slog.Logger
}

func New(service string) *Logger {
	hostname, _ := os.Hostname()
	handler := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	return &Logger{service: service, hostname: hostname, handler: handler}
}

func (l *Logger) Info(action, requestID, message string) {
	l.log(slog.LevelInfo, action, requestID, message, nil)
}

func (l *Logger) Warn(action, requestID, message string, err error) {
	l.log(slog.LevelWarn, action, requestID, message, err)
}

func (l *Logger) Error(action, requestID, message string, err error) {
	l.log(slog.LevelError, action, requestID, message, err)
}

func (l *Logger) log(level slog.Level, action, requestID, message string, err error) {
	attrs := []slog.Attr{
		slog.String("service", l.service),
		slog.String("hostname", l.hostname),
		slog.String("action", action),
		slog.String("request_id", requestID),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.handler.LogAttrs(context.TODO(), level, message, attrs...)
}
