// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger for background components that have no request
// context to pull a logger from.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the default logger instance for background components.
var GlobalLogger *Logger

func init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	GlobalLogger = &Logger{Logger: slog.New(handler)}
}

// UseLogger points GlobalLogger at l, normally the request logger from middleware.
func UseLogger(l *slog.Logger) {
	if l != nil {
		GlobalLogger = &Logger{Logger: l}
	}
}

// RelayLogger writes chat relay events with the relay name attached.
type RelayLogger struct {
	relay string
}

func NewRelayLogger(relay string) *RelayLogger {
	return &RelayLogger{relay: relay}
}

func (l *RelayLogger) Connected(ctx context.Context, userID uint, connID string, live int) {
	GlobalLogger.InfoContext(ctx, "chat connection opened",
		slog.String("relay", l.relay),
		slog.Uint64("user_id", uint64(userID)),
		slog.String("conn_id", connID),
		slog.Int("live_connections", live),
	)
}

// Disconnected logs the end of a connection and how long it lived.
func (l *RelayLogger) Disconnected(ctx context.Context, userID uint, connID, reason string, since time.Time) {
	GlobalLogger.InfoContext(ctx, "chat connection closed",
		slog.String("relay", l.relay),
		slog.Uint64("user_id", uint64(userID)),
		slog.String("conn_id", connID),
		slog.String("reason", reason),
		slog.Duration("lifetime", time.Since(since)),
	)
}

// Failed logs an error at a named relay stage (deliver, publish, ...).
func (l *RelayLogger) Failed(ctx context.Context, userID uint, err error, stage string) {
	GlobalLogger.ErrorContext(ctx, "chat relay error",
		slog.String("relay", l.relay),
		slog.Uint64("user_id", uint64(userID)),
		slog.String("stage", stage),
		slog.String("error", err.Error()),
	)
}

func (l *RelayLogger) Lifecycle(ctx context.Context, event string, attrs ...any) {
	GlobalLogger.InfoContext(ctx, "chat relay "+event, append([]any{slog.String("relay", l.relay)}, attrs...)...)
}
