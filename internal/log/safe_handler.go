package log

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/macro-dynamic/TracesCleaner/internal/chars"
)

// maxValueLen is the maximum number of runes a string attribute value may
// carry before it is truncated.
const maxValueLen = 256

// SafeHandler wraps an slog.Handler and escapes invisible characters in
// string attribute values. A zero-width space or bidi override inside
// logged user text would otherwise pass into the terminal unseen, which is
// exactly what this tool exists to prevent.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Callers keep using plain slog.String attributes for scanned text
type SafeHandler struct {
	// handler is the underlying slog handler that receives escaped records.
	handler slog.Handler
}

// NewSafeHandler creates a SafeHandler wrapping the given handler.
// If handler is nil, the returned SafeHandler uses slog.Default().Handler().
func NewSafeHandler(handler slog.Handler) *SafeHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &SafeHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *SafeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle escapes the record's attributes and passes it to the underlying
// handler.
func (h *SafeHandler) Handle(ctx context.Context, r slog.Record) error {
	escaped := slog.NewRecord(r.Time, r.Level, EscapeValue(r.Message), r.PC)

	r.Attrs(func(a slog.Attr) bool {
		escaped.AddAttrs(h.escapeAttr(a))
		return true
	})

	return h.handler.Handle(ctx, escaped)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are escaped before being added.
func (h *SafeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	escapedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		escapedAttrs[i] = h.escapeAttr(a)
	}
	return &SafeHandler{handler: h.handler.WithAttrs(escapedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *SafeHandler) WithGroup(name string) slog.Handler {
	return &SafeHandler{handler: h.handler.WithGroup(name)}
}

// escapeAttr escapes a single attribute, recursively handling groups.
func (h *SafeHandler) escapeAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		escapedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			escapedAttrs[i] = h.escapeAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(escapedAttrs...)}
	}

	if a.Value.Kind() == slog.KindString {
		return slog.String(a.Key, EscapeValue(a.Value.String()))
	}

	return a
}

// EscapeValue replaces every invisible or control character in s with its
// U+XXXX label and truncates overlong values. The result is safe to print
// on a terminal.
func EscapeValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	written := 0
	for _, r := range s {
		if written == maxValueLen {
			b.WriteString("...")
			break
		}
		if desc, ok := chars.Describe(r); ok {
			b.WriteString(desc.CodeLabel)
		} else {
			b.WriteRune(r)
		}
		written++
	}

	return b.String()
}

// NewSafeLogger creates a text-format slog.Logger whose output has
// invisible characters escaped. The logger writes to w at the given level,
// typically os.Stderr at slog.LevelWarn.
func NewSafeLogger(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	return slog.New(NewSafeHandler(textHandler))
}

// NewSafeJSONLogger creates a JSON-format slog.Logger with the same
// escaping. Useful for structured log aggregation.
func NewSafeJSONLogger(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	jsonHandler := slog.NewJSONHandler(w, opts)
	return slog.New(NewSafeHandler(jsonHandler))
}
