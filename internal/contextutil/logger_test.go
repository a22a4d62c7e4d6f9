package contextutil

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func TestLoggerFromContext(t *testing.T) {
	ctx := context.Background()

	// Without a logger attached, the default logger comes back.
	if got := LoggerFromContext(ctx); got != slog.Default() {
		t.Error("LoggerFromContext() without logger should return slog.Default()")
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx = WithLogger(ctx, logger)

	if got := LoggerFromContext(ctx); got != logger {
		t.Error("LoggerFromContext() should return the attached logger")
	}
}
