package chars

import "testing"

// TestHomoglyphLookup verifies replacements for representative confusables.
func TestHomoglyphLookup(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		r           rune
		replacement string
	}{
		{name: "cyrillic small ie", r: 0x0435, replacement: "e"},
		{name: "cyrillic small o", r: 0x043E, replacement: "o"},
		{name: "cyrillic capital a", r: 0x0410, replacement: "A"},
		{name: "greek small omicron", r: 0x03BF, replacement: "o"},
		{name: "greek capital rho", r: 0x03A1, replacement: "P"},
		{name: "no-break space", r: 0x00A0, replacement: " "},
		{name: "right single quote", r: 0x2019, replacement: "'"},
		{name: "em dash", r: 0x2014, replacement: "-"},
		{name: "ellipsis", r: 0x2026, replacement: "..."},
		{name: "fullwidth exclamation", r: 0xFF01, replacement: "!"},
		{name: "fullwidth capital a", r: 0xFF21, replacement: "A"},
		{name: "fullwidth small z", r: 0xFF5A, replacement: "z"},
		{name: "fullwidth tilde", r: 0xFF5E, replacement: "~"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			e, ok := HomoglyphLookup(tc.r)
			if !ok {
				t.Fatalf("HomoglyphLookup(%U) not found, expected entry", tc.r)
			}
			if e.Replacement != tc.replacement {
				t.Errorf("HomoglyphLookup(%U).Replacement = %q, expected %q", tc.r, e.Replacement, tc.replacement)
			}
		})
	}
}

// TestHomoglyphLookupUnknown verifies that ordinary Latin text has no entry.
func TestHomoglyphLookupUnknown(t *testing.T) {
	t.Parallel()

	for _, r := range []rune{'a', 'O', '0', ' ', '-', '\''} {
		if _, ok := HomoglyphLookup(r); ok {
			t.Errorf("HomoglyphLookup(%U) found, expected absent", r)
		}
	}
}

// TestIsExemptTypography verifies the blanket exemption set.
func TestIsExemptTypography(t *testing.T) {
	t.Parallel()

	exempt := []rune{0x00A0, 0x2018, 0x2019, 0x201C, 0x201D, 0x2013, 0x2014}
	for _, r := range exempt {
		if !IsExemptTypography(r) {
			t.Errorf("IsExemptTypography(%U) = false, expected true", r)
		}
	}

	flagged := []rune{0x0435, 0x03BF, 0xFF21, 0x2026, 0x00B4, 'e'}
	for _, r := range flagged {
		if IsExemptTypography(r) {
			t.Errorf("IsExemptTypography(%U) = true, expected false", r)
		}
	}
}

// TestExemptEntriesStayInTable verifies that every exempt character still
// has a replacement, so explicit homoglyph fixing can describe it.
func TestExemptEntriesStayInTable(t *testing.T) {
	t.Parallel()

	for _, r := range []rune{0x00A0, 0x2018, 0x2019, 0x201C, 0x201D, 0x2013, 0x2014} {
		if _, ok := HomoglyphLookup(r); !ok {
			t.Errorf("HomoglyphLookup(%U) not found, expected exempt characters to stay mapped", r)
		}
	}
}

// TestHomoglyphsOrder verifies definition order and copy semantics.
func TestHomoglyphsOrder(t *testing.T) {
	t.Parallel()

	entries := Homoglyphs()
	if len(entries) == 0 {
		t.Fatal("Homoglyphs() returned no entries")
	}
	if entries[0].Rune != 0x00A0 {
		t.Errorf("Homoglyphs()[0] = %U, expected U+00A0", entries[0].Rune)
	}
	if last := entries[len(entries)-1]; last.Rune != 0xFF5E {
		t.Errorf("Homoglyphs() last = %U, expected U+FF5E", last.Rune)
	}

	entries[0].Replacement = "mutated"
	if fresh := Homoglyphs(); fresh[0].Replacement == "mutated" {
		t.Error("Homoglyphs() returned shared backing storage, expected a copy")
	}
}
