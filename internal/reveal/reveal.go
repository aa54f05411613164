package reveal

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/macro-dynamic/TracesCleaner/internal/chars"
)

// htmlEscaper rewrites the five characters that are unsafe inside an HTML
// fragment. Replacements are not rescanned, so escaping is single-pass.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Renderer produces annotated HTML fragments from plain text.
type Renderer struct {
	includeFormatting bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithFormatting controls whether tab, line feed, and carriage return
// receive annotation spans. Enabled by default.
func WithFormatting(include bool) Option {
	return func(r *Renderer) {
		r.includeFormatting = include
	}
}

// NewRenderer creates a Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{includeFormatting: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render walks text once and returns an HTML fragment. Plain runs are
// accumulated and escaped in one pass per run rather than rune by rune.
func (r *Renderer) Render(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	pending := 0
	flush := func(end int) {
		if pending < end {
			b.WriteString(htmlEscaper.Replace(text[pending:end]))
		}
	}

	for i := 0; i < len(text); {
		ch, size := utf8.DecodeRuneInString(text[i:])

		desc, annotated := r.classify(ch)
		if !annotated {
			i += size
			continue
		}

		flush(i)
		if desc.Category == chars.CategoryFormatting {
			writeFormatSpan(&b, desc, formatSymbol(ch))
			b.WriteRune(ch)
		} else {
			writeHiddenSpan(&b, desc)
		}
		i += size
		pending = i
	}
	flush(len(text))

	return b.String()
}

// classify reports whether ch receives an annotation span, mirroring the
// detector's flagging rules.
func (r *Renderer) classify(ch rune) (chars.Descriptor, bool) {
	if desc, ok := chars.Lookup(ch); ok {
		if desc.Category == chars.CategoryFormatting && !r.includeFormatting {
			return chars.Descriptor{}, false
		}
		return desc, true
	}
	if chars.IsGenericControl(ch) {
		return chars.ControlDescriptor(ch), true
	}
	if chars.IsSupplementary(ch) {
		return chars.SupplementaryDescriptor(ch), true
	}
	return chars.Descriptor{}, false
}

// formatSymbol returns the visible stand-in for a formatting character.
func formatSymbol(ch rune) string {
	switch ch {
	case '\t':
		return "→"
	case '\n':
		return "¶"
	case '\r':
		return "␍"
	}
	return ""
}

func writeHiddenSpan(b *strings.Builder, desc chars.Descriptor) {
	fmt.Fprintf(b, `<span class="hidden-char" title="%s (%s)">%s</span>`, desc.Name, desc.CodeLabel, desc.CodeLabel)
}

func writeFormatSpan(b *strings.Builder, desc chars.Descriptor, symbol string) {
	fmt.Fprintf(b, `<span class="format-char" title="%s (%s)">%s</span>`, desc.Name, desc.CodeLabel, symbol)
}
