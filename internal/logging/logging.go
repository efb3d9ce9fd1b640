package logging

import (
	"context"
	"io"
	"log/slog"
)

// New returns a text logger writing to w. Verbose enables debug records.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Arg is one named parameter echoed by Catch.
type Arg struct {
	Name    string
	Value   any
	Default any
}

// Catch logs the arguments of op at debug level, runs fn and logs how it ended.
// With debug disabled on the logger it only runs fn.
func Catch[T any](ctx context.Context, logger *slog.Logger, op string, args []Arg, fn func() (T, error)) (T, error) {
	if logger == nil || !logger.Enabled(ctx, slog.LevelDebug) {
		return fn()
	}

	attrs := make([]any, 0, len(args))
	for _, a := range args {
		if a.Default != nil {
			attrs = append(attrs, slog.Group(a.Name, slog.Any("value", a.Value), slog.Any("default", a.Default)))
			continue
		}
		attrs = append(attrs, slog.Any(a.Name, a.Value))
	}
	logger.DebugContext(ctx, "start catching arguments", append([]any{slog.String("op", op)}, attrs...)...)

	out, err := fn()
	if err != nil {
		logger.DebugContext(ctx, "finish catching arguments", slog.String("op", op), slog.String("error", err.Error()))
		return out, err
	}
	logger.DebugContext(ctx, "finish catching arguments", slog.String("op", op))
	return out, nil
}
