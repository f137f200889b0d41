// Package logging defines a minimal structured-logging interface used across
// the project, with slog and zerolog backends.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/rs/zerolog"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key-value pairs, e.g.:
//
//	log.Info(ctx, "starting server", "addr", addr, "mode", mode)
type Logger interface {
	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key-value pairs.
	With(args ...any) Logger
}

// Backend names accepted by New.
const (
	BackendZerolog = "zerolog"
	BackendSlog    = "slog"
)

// New builds a JSON logger writing to w. An empty backend selects zerolog.
func New(backend string, w io.Writer) (Logger, error) {
	switch backend {
	case "", BackendZerolog:
		return NewZerologLogger(zerolog.New(w).With().Timestamp().Logger()), nil
	case BackendSlog:
		return NewSlogLogger(slog.New(slog.NewJSONHandler(w, nil))), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}

type ctxKey struct{}

type fieldsKey struct{}

// WithFields returns a context whose key-value pairs every backend adds to
// lines logged with it, ahead of the call's own args.
func WithFields(ctx context.Context, args ...any) context.Context {
	return context.WithValue(ctx, fieldsKey{}, append(contextFields(ctx), args...))
}

func contextFields(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	f, _ := ctx.Value(fieldsKey{}).([]any)
	return f[:len(f):len(f)]
}

func withContextFields(ctx context.Context, args []any) []any {
	f := contextFields(ctx)
	if len(f) == 0 {
		return args
	}
	return append(f, args...)
}

// WithLogger stores l in ctx, typically a request-scoped child logger.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored by WithLogger, or fallback.
func FromContext(ctx context.Context, fallback Logger) Logger {
	if l, ok := ctx.Value(ctxKey{}).(Logger); ok {
		return l
	}
	return fallback
}
