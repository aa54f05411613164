package chars

import "fmt"

// HomoglyphEntry maps a lookalike character to its ASCII equivalent.
type HomoglyphEntry struct {
	Rune rune

	// Name is the human-readable character name, e.g. "Cyrillic Small Ie".
	Name string

	// Replacement is the ASCII text the character masquerades as. Most
	// replacements are a single character; the ellipsis expands to "...".
	Replacement string
}

// homoglyphs lists every confusable character in definition order:
// typographic punctuation first, then Cyrillic, Greek, and the fullwidth
// ASCII block.
var homoglyphs = buildHomoglyphs()

func buildHomoglyphs() []HomoglyphEntry {
	entries := []HomoglyphEntry{
		// Typographic punctuation. The first seven are ordinary word
		// processor output and are exempt from detection and cleaning.
		{Rune: 0x00A0, Name: "No-Break Space", Replacement: " "},
		{Rune: 0x2018, Name: "Left Single Quotation Mark", Replacement: "'"},
		{Rune: 0x2019, Name: "Right Single Quotation Mark", Replacement: "'"},
		{Rune: 0x201C, Name: "Left Double Quotation Mark", Replacement: `"`},
		{Rune: 0x201D, Name: "Right Double Quotation Mark", Replacement: `"`},
		{Rune: 0x2013, Name: "En Dash", Replacement: "-"},
		{Rune: 0x2014, Name: "Em Dash", Replacement: "-"},

		{Rune: 0x00B4, Name: "Acute Accent", Replacement: "'"},
		{Rune: 0x02BC, Name: "Modifier Letter Apostrophe", Replacement: "'"},
		{Rune: 0x2026, Name: "Horizontal Ellipsis", Replacement: "..."},
		{Rune: 0x2032, Name: "Prime", Replacement: "'"},
		{Rune: 0x00AB, Name: "Left-Pointing Double Angle Quotation Mark", Replacement: `"`},
		{Rune: 0x00BB, Name: "Right-Pointing Double Angle Quotation Mark", Replacement: `"`},

		// Cyrillic capitals that render identically to Latin.
		{Rune: 0x0405, Name: "Cyrillic Capital Dze", Replacement: "S"},
		{Rune: 0x0406, Name: "Cyrillic Capital Byelorussian-Ukrainian I", Replacement: "I"},
		{Rune: 0x0408, Name: "Cyrillic Capital Je", Replacement: "J"},
		{Rune: 0x0410, Name: "Cyrillic Capital A", Replacement: "A"},
		{Rune: 0x0412, Name: "Cyrillic Capital Ve", Replacement: "B"},
		{Rune: 0x0415, Name: "Cyrillic Capital Ie", Replacement: "E"},
		{Rune: 0x041A, Name: "Cyrillic Capital Ka", Replacement: "K"},
		{Rune: 0x041C, Name: "Cyrillic Capital Em", Replacement: "M"},
		{Rune: 0x041D, Name: "Cyrillic Capital En", Replacement: "H"},
		{Rune: 0x041E, Name: "Cyrillic Capital O", Replacement: "O"},
		{Rune: 0x0420, Name: "Cyrillic Capital Er", Replacement: "P"},
		{Rune: 0x0421, Name: "Cyrillic Capital Es", Replacement: "C"},
		{Rune: 0x0422, Name: "Cyrillic Capital Te", Replacement: "T"},
		{Rune: 0x0423, Name: "Cyrillic Capital U", Replacement: "Y"},
		{Rune: 0x0425, Name: "Cyrillic Capital Ha", Replacement: "X"},

		// Cyrillic small letters.
		{Rune: 0x0430, Name: "Cyrillic Small A", Replacement: "a"},
		{Rune: 0x0435, Name: "Cyrillic Small Ie", Replacement: "e"},
		{Rune: 0x043E, Name: "Cyrillic Small O", Replacement: "o"},
		{Rune: 0x0440, Name: "Cyrillic Small Er", Replacement: "p"},
		{Rune: 0x0441, Name: "Cyrillic Small Es", Replacement: "c"},
		{Rune: 0x0443, Name: "Cyrillic Small U", Replacement: "y"},
		{Rune: 0x0445, Name: "Cyrillic Small Ha", Replacement: "x"},
		{Rune: 0x0455, Name: "Cyrillic Small Dze", Replacement: "s"},
		{Rune: 0x0456, Name: "Cyrillic Small Byelorussian-Ukrainian I", Replacement: "i"},
		{Rune: 0x0458, Name: "Cyrillic Small Je", Replacement: "j"},

		// Greek capitals.
		{Rune: 0x0391, Name: "Greek Capital Alpha", Replacement: "A"},
		{Rune: 0x0392, Name: "Greek Capital Beta", Replacement: "B"},
		{Rune: 0x0395, Name: "Greek Capital Epsilon", Replacement: "E"},
		{Rune: 0x0396, Name: "Greek Capital Zeta", Replacement: "Z"},
		{Rune: 0x0397, Name: "Greek Capital Eta", Replacement: "H"},
		{Rune: 0x0399, Name: "Greek Capital Iota", Replacement: "I"},
		{Rune: 0x039A, Name: "Greek Capital Kappa", Replacement: "K"},
		{Rune: 0x039C, Name: "Greek Capital Mu", Replacement: "M"},
		{Rune: 0x039D, Name: "Greek Capital Nu", Replacement: "N"},
		{Rune: 0x039F, Name: "Greek Capital Omicron", Replacement: "O"},
		{Rune: 0x03A1, Name: "Greek Capital Rho", Replacement: "P"},
		{Rune: 0x03A4, Name: "Greek Capital Tau", Replacement: "T"},
		{Rune: 0x03A5, Name: "Greek Capital Upsilon", Replacement: "Y"},
		{Rune: 0x03A7, Name: "Greek Capital Chi", Replacement: "X"},

		// Greek small letters.
		{Rune: 0x03B9, Name: "Greek Small Iota", Replacement: "i"},
		{Rune: 0x03BA, Name: "Greek Small Kappa", Replacement: "k"},
		{Rune: 0x03BD, Name: "Greek Small Nu", Replacement: "v"},
		{Rune: 0x03BF, Name: "Greek Small Omicron", Replacement: "o"},
		{Rune: 0x03C5, Name: "Greek Small Upsilon", Replacement: "u"},
	}

	// Fullwidth ASCII variants map uniformly to 0x21-0x7E.
	for i := 0; i < 0x5E; i++ {
		ascii := rune(0x21 + i)
		entries = append(entries, HomoglyphEntry{
			Rune:        rune(0xFF01 + i),
			Name:        fmt.Sprintf("Fullwidth %c", ascii),
			Replacement: string(ascii),
		})
	}

	return entries
}

// exemptTypography is the blanket exemption set: common word processor
// punctuation that stays in the text unless homoglyph fixing is asked to
// touch it explicitly. The exemption is per-character and does not depend on
// surrounding text.
var exemptTypography = map[rune]bool{
	0x00A0: true, // no-break space
	0x2018: true, // left single quotation mark
	0x2019: true, // right single quotation mark
	0x201C: true, // left double quotation mark
	0x201D: true, // right double quotation mark
	0x2013: true, // en dash
	0x2014: true, // em dash
}

var homoglyphIndex = make(map[rune]HomoglyphEntry, len(homoglyphs))

func init() {
	for _, e := range homoglyphs {
		homoglyphIndex[e.Rune] = e
	}
}

// HomoglyphLookup returns the table entry for a confusable character.
func HomoglyphLookup(r rune) (HomoglyphEntry, bool) {
	e, ok := homoglyphIndex[r]
	return e, ok
}

// Homoglyphs returns a copy of the homoglyph table in definition order.
func Homoglyphs() []HomoglyphEntry {
	entries := make([]HomoglyphEntry, len(homoglyphs))
	copy(entries, homoglyphs)
	return entries
}

// IsExemptTypography reports whether r belongs to the blanket typography
// exemption (no-break space, curly quotes, en and em dash).
func IsExemptTypography(r rune) bool {
	return exemptTypography[r]
}
