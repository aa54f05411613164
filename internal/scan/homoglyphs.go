package scan

import (
	"github.com/macro-dynamic/TracesCleaner/internal/chars"
	"github.com/macro-dynamic/TracesCleaner/internal/model"
)

// HomoglyphScanner finds characters that render like ASCII but are different
// code points.
type HomoglyphScanner struct{}

// NewHomoglyphScanner creates a HomoglyphScanner.
func NewHomoglyphScanner() *HomoglyphScanner {
	return &HomoglyphScanner{}
}

// Scan walks the text once and returns every lookalike character with its
// suggested replacement. The typography exemption applies per character:
// no-break spaces, curly quotes, and dashes are never flagged, regardless of
// surrounding text.
func (s *HomoglyphScanner) Scan(text string) *model.HomoglyphResult {
	result := model.NewHomoglyphResult()

	for pos, r := range []rune(text) {
		if chars.IsExemptTypography(r) {
			continue
		}
		if e, ok := chars.HomoglyphLookup(r); ok {
			result.Record(e, pos)
		}
	}

	return result
}
