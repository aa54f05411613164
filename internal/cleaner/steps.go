package cleaner

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/macro-dynamic/TracesCleaner/internal/chars"
)

var (
	// tagPattern matches anything between angle brackets. Deliberately
	// naive: no nesting, no attribute quoting, not a real HTML parser.
	tagPattern = regexp.MustCompile(`<[^>]*>`)

	// entityPattern matches the six supported entities, case-insensitively.
	entityPattern = regexp.MustCompile(`(?i)&(nbsp|amp|lt|gt|quot|#39);`)

	// spaceRunPattern matches runs of two or more ordinary spaces.
	spaceRunPattern = regexp.MustCompile(` {2,}`)

	// The strip transformers are stateless and safe for concurrent use.
	hiddenRemover        = runes.Remove(runes.In(chars.StripTable()))
	supplementaryRemover = runes.Remove(runes.In(chars.SupplementaryTable()))
)

var entityReplacements = map[string]string{
	"&nbsp;": " ",
	"&amp;":  "&",
	"&lt;":   "<",
	"&gt;":   ">",
	"&quot;": `"`,
	"&#39;":  "'",
}

// stripHTML removes tag-shaped substrings, then decodes the six supported
// entities in a single pass so a decoded ampersand cannot start a second
// decode.
func stripHTML(text string) string {
	text = tagPattern.ReplaceAllString(text, "")
	return entityPattern.ReplaceAllStringFunc(text, func(match string) string {
		return entityReplacements[strings.ToLower(match)]
	})
}

// stripHidden removes every named non-formatting registry character and
// every generic control character.
func stripHidden(text string) string {
	out, _, err := transform.String(hiddenRemover, text)
	if err != nil {
		return text
	}
	return out
}

// stripSupplementary removes Tag and Variation Selector Supplement
// characters.
func stripSupplementary(text string) string {
	out, _, err := transform.String(supplementaryRemover, text)
	if err != nil {
		return text
	}
	return out
}

// normalizeNFC applies canonical composition.
func normalizeNFC(text string) string {
	return norm.NFC.String(text)
}

// foldHomoglyphs replaces lookalike characters with their ASCII
// equivalents. The typography exemption applies per character, same as in
// detection.
func foldHomoglyphs(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if !chars.IsExemptTypography(r) {
			if e, ok := chars.HomoglyphLookup(r); ok {
				b.WriteString(e.Replacement)
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// trimTrailing strips spaces and tabs before each line break and at the end
// of the text. Line breaks themselves are preserved, including CRLF pairs.
func trimTrailing(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.HasSuffix(line, "\r") {
			lines[i] = strings.TrimRight(strings.TrimSuffix(line, "\r"), " \t") + "\r"
			continue
		}
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

// collapseSpaces reduces every run of two or more ordinary spaces to one.
// Newlines are untouched.
func collapseSpaces(text string) string {
	return spaceRunPattern.ReplaceAllString(text, " ")
}

func runeLen(text string) int {
	return utf8.RuneCountInString(text)
}
