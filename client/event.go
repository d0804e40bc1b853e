package client

import (
	"context"
	"log/slog"

	"github.com/spetersoncode/genstudio/retry"
)

// LogEvents drains events into logger until the channel closes or ctx ends.
// Retries and exhaustion are logged at warn level, everything else at debug.
func LogEvents(ctx context.Context, events <-chan retry.Event, logger *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			logEvent(ctx, logger, ev)
		}
	}
}

func logEvent(ctx context.Context, logger *slog.Logger, ev retry.Event) {
	level := slog.LevelDebug
	switch ev.Type {
	case retry.EventRetrying, retry.EventExhausted:
		level = slog.LevelWarn
	}
	attrs := []any{
		"request_id", ev.RequestID,
		"action", ev.Action,
		"attempt", ev.Attempt,
		"max_attempts", ev.MaxAttempts,
	}
	if ev.Credential != "" {
		attrs = append(attrs, "key", ev.Credential)
	}
	if ev.Error != nil {
		attrs = append(attrs, "error", ev.Error, "class", string(ev.Class))
	}
	if ev.Delay > 0 {
		attrs = append(attrs, "delay", ev.Delay)
	}
	logger.Log(ctx, level, string(ev.Type), attrs...)
}
