package logger

import (
	"log/slog"
	"time"
)

// LogGame logs discrete game events (restocks, purchases, meteor phases).
func LogGame(msg string, attrs ...any) {
	baseAttrs := []any{slog.String("type", "game")}
	slog.Info(msg, append(baseAttrs, attrs...)...)
}

// LogRequest logs web request handling.
func LogRequest(method, path string, status int, duration time.Duration) {
	attrs := []any{
		slog.String("type", "web"),
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Duration("took", duration),
	}

	if status >= 500 {
		slog.Error("Request failed", attrs...)
	} else if status >= 400 {
		slog.Warn("Request rejected", attrs...)
	} else {
		slog.Info("Request served", attrs...)
	}
}

// LogSystem logs system events
func LogSystem(msg string, attrs ...any) {
	baseAttrs := []any{slog.String("type", "sys")}
	slog.Info(msg, append(baseAttrs, attrs...)...)
}

// LogError logs error events
func LogError(msg string, err error, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "error"),
		slog.Any("error", err),
	}
	slog.Error(msg, append(baseAttrs, attrs...)...)
}
