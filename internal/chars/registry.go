package chars

import (
	"fmt"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// Category classifies a registered code point by the role it plays in text.
// Categories drive reporting (severity mapping, grouping) and cleaning
// (formatting characters survive cleaning, everything else is stripped).
type Category string

const (
	// CategoryFormatting covers ordinary whitespace controls (Tab, LF, CR)
	// that shape text legitimately. They are reported only on request and
	// are never removed by cleaning.
	CategoryFormatting Category = "formatting"

	// CategoryZeroWidth covers characters with no visual width and no
	// joining semantics, the classic payload carrier.
	CategoryZeroWidth Category = "zero-width"

	// CategoryDirection covers Unicode bidirectional control marks. These
	// can visually reorder text and are a known spoofing vector.
	CategoryDirection Category = "direction"

	// CategorySeparator covers the Unicode line and paragraph separators,
	// which most editors render invisibly or inconsistently.
	CategorySeparator Category = "separator"

	// CategoryJoiner covers zero-width joining controls that alter how
	// neighboring characters combine.
	CategoryJoiner Category = "joiner"

	// CategoryMathInvisible covers the invisible mathematical operators
	// from the General Punctuation block.
	CategoryMathInvisible Category = "math-invisible"

	// CategoryBOM is the byte order mark when it appears mid-text.
	CategoryBOM Category = "bom"

	// CategoryFormat covers miscellaneous format characters such as the
	// soft hyphen and the Khmer inherent vowels.
	CategoryFormat Category = "format"

	// CategoryVariation covers variation selectors, which modify the glyph
	// of the preceding character and are invisible on their own.
	CategoryVariation Category = "variation"

	// CategoryAnnotation covers the interlinear annotation controls.
	CategoryAnnotation Category = "annotation"

	// CategoryFiller covers filler characters that render as blank glyphs
	// (Hangul fillers, Mongolian vowel separator, braille blank).
	CategoryFiller Category = "filler"

	// CategorySpace covers non-standard space widths from the General
	// Punctuation block plus the narrow no-break, medium mathematical, and
	// ideographic spaces.
	CategorySpace Category = "space"

	// CategoryControl is the synthesized category for generic control
	// characters outside the named registry.
	CategoryControl Category = "control"
)

// Descriptor describes a single classified code point.
type Descriptor struct {
	// Name is the human-readable character name, e.g. "Zero-Width Space".
	Name string `json:"name"`

	// CodeLabel is the canonical code point label, e.g. "U+200B".
	CodeLabel string `json:"code"`

	// Category is the classification bucket the character belongs to.
	Category Category `json:"category"`
}

// Entry pairs a code point with its descriptor. Registry returns entries in
// definition order.
type Entry struct {
	Rune rune
	Descriptor
}

// Label formats r as a canonical code point label with at least four
// uppercase hex digits, e.g. "U+200B" or "U+E0001".
func Label(r rune) string {
	return fmt.Sprintf("U+%04X", r)
}

func entry(r rune, name string, cat Category) Entry {
	return Entry{Rune: r, Descriptor: Descriptor{Name: name, CodeLabel: Label(r), Category: cat}}
}

// registry lists every named code point in definition order. The order is
// load-bearing: the whitespace analyzer reports special spaces in this order,
// and reference output (providers table, reveal legend) follows it.
var registry = buildRegistry()

func buildRegistry() []Entry {
	entries := []Entry{
		// Whitespace formatting controls. Legitimate text structure;
		// reported only when formatting detection is requested.
		entry(0x0009, "Tab", CategoryFormatting),
		entry(0x000A, "Line Feed", CategoryFormatting),
		entry(0x000D, "Carriage Return", CategoryFormatting),

		entry(0x200B, "Zero-Width Space", CategoryZeroWidth),

		entry(0x034F, "Combining Grapheme Joiner", CategoryJoiner),
		entry(0x200C, "Zero-Width Non-Joiner", CategoryJoiner),
		entry(0x200D, "Zero-Width Joiner", CategoryJoiner),
		entry(0x2060, "Word Joiner", CategoryJoiner),

		entry(0x061C, "Arabic Letter Mark", CategoryDirection),
		entry(0x200E, "Left-To-Right Mark", CategoryDirection),
		entry(0x200F, "Right-To-Left Mark", CategoryDirection),
		entry(0x202A, "Left-To-Right Embedding", CategoryDirection),
		entry(0x202B, "Right-To-Left Embedding", CategoryDirection),
		entry(0x202C, "Pop Directional Formatting", CategoryDirection),
		entry(0x202D, "Left-To-Right Override", CategoryDirection),
		entry(0x202E, "Right-To-Left Override", CategoryDirection),
		entry(0x2066, "Left-To-Right Isolate", CategoryDirection),
		entry(0x2067, "Right-To-Left Isolate", CategoryDirection),
		entry(0x2068, "First Strong Isolate", CategoryDirection),
		entry(0x2069, "Pop Directional Isolate", CategoryDirection),

		entry(0x2028, "Line Separator", CategorySeparator),
		entry(0x2029, "Paragraph Separator", CategorySeparator),

		entry(0x2061, "Function Application", CategoryMathInvisible),
		entry(0x2062, "Invisible Times", CategoryMathInvisible),
		entry(0x2063, "Invisible Separator", CategoryMathInvisible),
		entry(0x2064, "Invisible Plus", CategoryMathInvisible),

		entry(0xFEFF, "Byte Order Mark", CategoryBOM),

		entry(0x00AD, "Soft Hyphen", CategoryFormat),
		entry(0x17B4, "Khmer Vowel Inherent Aq", CategoryFormat),
		entry(0x17B5, "Khmer Vowel Inherent Aa", CategoryFormat),
	}

	// Variation Selector-1 through -16.
	for i := 0; i < 16; i++ {
		entries = append(entries,
			entry(rune(0xFE00+i), fmt.Sprintf("Variation Selector-%d", i+1), CategoryVariation))
	}

	entries = append(entries,
		entry(0xFFF9, "Interlinear Annotation Anchor", CategoryAnnotation),
		entry(0xFFFA, "Interlinear Annotation Separator", CategoryAnnotation),
		entry(0xFFFB, "Interlinear Annotation Terminator", CategoryAnnotation),

		entry(0x115F, "Hangul Choseong Filler", CategoryFiller),
		entry(0x1160, "Hangul Jungseong Filler", CategoryFiller),
		entry(0x180E, "Mongolian Vowel Separator", CategoryFiller),
		entry(0x2800, "Braille Pattern Blank", CategoryFiller),
		entry(0x3164, "Hangul Filler", CategoryFiller),
		entry(0xFFA0, "Halfwidth Hangul Filler", CategoryFiller),

		entry(0x2000, "En Quad", CategorySpace),
		entry(0x2001, "Em Quad", CategorySpace),
		entry(0x2002, "En Space", CategorySpace),
		entry(0x2003, "Em Space", CategorySpace),
		entry(0x2004, "Three-Per-Em Space", CategorySpace),
		entry(0x2005, "Four-Per-Em Space", CategorySpace),
		entry(0x2006, "Six-Per-Em Space", CategorySpace),
		entry(0x2007, "Figure Space", CategorySpace),
		entry(0x2008, "Punctuation Space", CategorySpace),
		entry(0x2009, "Thin Space", CategorySpace),
		entry(0x200A, "Hair Space", CategorySpace),
		entry(0x202F, "Narrow No-Break Space", CategorySpace),
		entry(0x205F, "Medium Mathematical Space", CategorySpace),
		entry(0x3000, "Ideographic Space", CategorySpace),
	)

	return entries
}

// controlTable matches generic control characters: C0 controls except
// Tab (0x09), LF (0x0A), FF (0x0C), and CR (0x0D), plus DEL and the C1 block.
var controlTable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0000, Hi: 0x0008, Stride: 1},
		{Lo: 0x000B, Hi: 0x000B, Stride: 1},
		{Lo: 0x000E, Hi: 0x001F, Stride: 1},
		{Lo: 0x007F, Hi: 0x009F, Stride: 1},
	},
	LatinOffset: 4,
}

// supplementaryTable matches the Tags block and the Variation Selector
// Supplement. Both live above the Basic Multilingual Plane and are matched
// as explicit rune ranges.
var supplementaryTable = &unicode.RangeTable{
	R32: []unicode.Range32{
		{Lo: 0xE0000, Hi: 0xE007F, Stride: 1},
		{Lo: 0xE0100, Hi: 0xE01EF, Stride: 1},
	},
}

var (
	registryIndex = make(map[rune]Descriptor, len(registry))
	spaceRunes    []rune

	// stripTable merges every named non-formatting code point with the
	// generic control ranges. The cleaner removes everything it matches.
	stripTable *unicode.RangeTable
)

func init() {
	strippable := make([]rune, 0, len(registry))
	for _, e := range registry {
		registryIndex[e.Rune] = e.Descriptor
		if e.Category == CategorySpace {
			spaceRunes = append(spaceRunes, e.Rune)
		}
		if e.Category != CategoryFormatting {
			strippable = append(strippable, e.Rune)
		}
	}
	stripTable = rangetable.Merge(rangetable.New(strippable...), controlTable)
}

// Lookup returns the descriptor for a named registry code point.
func Lookup(r rune) (Descriptor, bool) {
	d, ok := registryIndex[r]
	return d, ok
}

// Registry returns a copy of the named registry in definition order.
func Registry() []Entry {
	entries := make([]Entry, len(registry))
	copy(entries, registry)
	return entries
}

// SpaceRunes returns the space-category code points in definition order.
func SpaceRunes() []rune {
	runes := make([]rune, len(spaceRunes))
	copy(runes, spaceRunes)
	return runes
}

// IsGenericControl reports whether r is a generic control character:
// 0x00-0x08, 0x0B, 0x0E-0x1F, 0x7F, or 0x80-0x9F. Tab, LF, FF, and CR are
// excluded; the first three of those are named formatting entries.
func IsGenericControl(r rune) bool {
	switch {
	case r >= 0x0000 && r <= 0x0008:
		return true
	case r == 0x000B:
		return true
	case r >= 0x000E && r <= 0x001F:
		return true
	case r == 0x007F:
		return true
	case r >= 0x0080 && r <= 0x009F:
		return true
	default:
		return false
	}
}

// ControlDescriptor synthesizes a descriptor for a generic control character.
func ControlDescriptor(r rune) Descriptor {
	return Descriptor{Name: "Control Character", CodeLabel: Label(r), Category: CategoryControl}
}

// IsSupplementary reports whether r falls in the Tags block
// (U+E0000-U+E007F) or the Variation Selector Supplement (U+E0100-U+E01EF).
func IsSupplementary(r rune) bool {
	return unicode.Is(supplementaryTable, r)
}

// SupplementaryDescriptor synthesizes a descriptor for a supplementary-plane
// code point matched by IsSupplementary.
func SupplementaryDescriptor(r rune) Descriptor {
	if r >= 0xE0100 && r <= 0xE01EF {
		return Descriptor{Name: "Variation Selector Supplement", CodeLabel: Label(r), Category: CategoryVariation}
	}
	return Descriptor{Name: "Tag Character", CodeLabel: Label(r), Category: CategoryFormat}
}

// Describe classifies r against the named registry, the generic control
// ranges, and the supplementary-plane ranges, in that order. It returns
// false for ordinary visible characters.
func Describe(r rune) (Descriptor, bool) {
	if d, ok := Lookup(r); ok {
		return d, true
	}
	if IsGenericControl(r) {
		return ControlDescriptor(r), true
	}
	if IsSupplementary(r) {
		return SupplementaryDescriptor(r), true
	}
	return Descriptor{}, false
}

// StripTable returns the range table of code points removed by cleaning:
// every named non-formatting registry entry plus the generic control ranges.
// The table is shared and must be treated as read-only.
func StripTable() *unicode.RangeTable {
	return stripTable
}

// SupplementaryTable returns the range table for the Tags block and the
// Variation Selector Supplement. The table is shared and must be treated as
// read-only.
func SupplementaryTable() *unicode.RangeTable {
	return supplementaryTable
}
