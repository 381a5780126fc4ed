package logging

import (
	"context"
	"errors"
	"log/slog"
)

// FanoutHandler sends each record to every wrapped handler that accepts its
// level. A failing sink does not stop delivery to the others.
type FanoutHandler struct {
	sinks []slog.Handler
}

func NewFanoutHandler(sinks ...slog.Handler) *FanoutHandler {
	return &FanoutHandler{sinks: sinks}
}

func (f *FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.sinks {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f *FanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, h := range f.sinks {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &FanoutHandler{sinks: mapSinks(f.sinks, func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })}
}

func (f *FanoutHandler) WithGroup(name string) slog.Handler {
	return &FanoutHandler{sinks: mapSinks(f.sinks, func(h slog.Handler) slog.Handler { return h.WithGroup(name) })}
}

func mapSinks(in []slog.Handler, fn func(slog.Handler) slog.Handler) []slog.Handler {
	out := make([]slog.Handler, len(in))
	for i, h := range in {
		out[i] = fn(h)
	}
	return out
}
