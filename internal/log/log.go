// Package log provides a context-aware logging utility using slog.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type slogFieldKey struct{}

var slogFields slogFieldKey

// ContextHandler adds the attributes stored with AppendCtx to every record.
type ContextHandler struct {
	slog.Handler
}

// Handle adds contextual attributes to the Record before
// calling the underlying handler.
func (h ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(slogFields).([]slog.Attr); ok {
		r.AddAttrs(attrs...)
	}
	return h.Handler.Handle(ctx, r)
}

func (h ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return ContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h ContextHandler) WithGroup(name string) slog.Handler {
	return ContextHandler{Handler: h.Handler.WithGroup(name)}
}

// AppendCtx adds an slog attribute to the provided context so that it will be
// included in any Record created with such context.
func AppendCtx(parent context.Context, attr slog.Attr) context.Context {
	if parent == nil {
		parent = context.Background()
	}

	v, _ := parent.Value(slogFields).([]slog.Attr)
	// Copy so sibling contexts never share a backing array.
	attrs := make([]slog.Attr, 0, len(v)+1)
	attrs = append(attrs, v...)
	attrs = append(attrs, attr)
	return context.WithValue(parent, slogFields, attrs)
}

type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// NewWithWriter builds a logger writing to w.
func NewWithWriter(w io.Writer, format Format, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if format == FormatText {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(ContextHandler{Handler: h})
}

// New logs JSON to stderr.
func New(level slog.Level) *slog.Logger {
	return NewWithWriter(os.Stderr, FormatJSON, level)
}

func NullLogger() *slog.Logger {
	return NewWithWriter(io.Discard, FormatJSON, slog.LevelError+1)
}
