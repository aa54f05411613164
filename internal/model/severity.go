package model

// Severity represents the risk level of a scan finding.
// This allows ranking findings by how likely they are to carry a payload,
// spoof a reader, or mark text as machine-generated.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Severity int

const (
	// SeverityInfo indicates informational findings with no direct risk.
	// Examples: tabs and line feeds when formatting detection is requested,
	// double spaces between sentences.
	SeverityInfo Severity = iota

	// SeverityLow indicates minor issues with limited impact.
	// Examples: special space characters, trailing whitespace, mixed line
	// endings. These are fingerprinting signals rather than payloads.
	SeverityLow

	// SeverityMedium indicates characters that should not appear in normal
	// prose. Examples: zero-width spaces, joiners, variation selectors,
	// stray byte order marks. These are the classic watermark carriers.
	SeverityMedium

	// SeverityHigh indicates characters that can actively mislead a reader
	// or a parser. Examples: bidirectional overrides, generic control
	// characters, lookalike letters from other scripts, Tag characters.
	SeverityHigh

	// SeverityCritical is reserved for combinations that indicate active
	// deception, such as a bidirectional override together with homoglyphs.
	SeverityCritical
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// FindingInfo contains metadata about a finding type including severity,
// impact description, and remediation recommendation.
type FindingInfo struct {
	Severity       Severity
	Impact         string
	Recommendation string
}

// findingInfoMapping maps finding types to their metadata.
// This centralized mapping ensures consistent risk assessment across the
// application.
//
// Design decision: We use a map rather than embedding severity in each
// finding type because:
// 1. It allows updating risk assessments without modifying type definitions
// 2. It provides a single source of truth for risk levels
// 3. It makes it easy to generate severity documentation
var findingInfoMapping = map[string]FindingInfo{
	// CRITICAL - Combinations indicating active deception
	"spoofing_combination": {
		Severity:       SeverityCritical,
		Impact:         "Bidirectional control marks combined with lookalike characters are the signature of deliberately spoofed text, such as disguised URLs or reversed file extensions.",
		Recommendation: "Treat the text as hostile. Clean it and compare the visible form against the cleaned form before trusting it.",
	},

	// HIGH - Characters that mislead readers or parsers
	"bidi_control": {
		Severity:       SeverityHigh,
		Impact:         "Bidirectional control marks can visually reorder text, hiding the true content of identifiers, URLs, or code from a human reader.",
		Recommendation: "Remove the marks with the cleaner unless the text legitimately mixes right-to-left and left-to-right scripts.",
	},
	"control_char": {
		Severity:       SeverityHigh,
		Impact:         "Raw control characters can corrupt terminals, break parsers, or smuggle escape sequences into logs and downstream tools.",
		Recommendation: "Strip control characters; legitimate plain text never needs them.",
	},
	"tag_char": {
		Severity:       SeverityHigh,
		Impact:         "Unicode Tag characters are invisible and can encode an arbitrary hidden payload alongside the visible text.",
		Recommendation: "Strip the Tags block entirely; it has no legitimate use in modern text.",
	},
	"homoglyph": {
		Severity:       SeverityHigh,
		Impact:         "Lookalike characters from other scripts make visually identical strings compare unequal, enabling spoofed names, domains, and identifiers.",
		Recommendation: "Fold homoglyphs to their ASCII equivalents with the fix-homoglyphs option, then review the changed positions.",
	},

	// MEDIUM - Invisible characters that mark or watermark text
	"zero_width_char": {
		Severity:       SeverityMedium,
		Impact:         "Zero-width spaces carry no meaning in prose and are the most common carrier for invisible watermarks and tracking payloads.",
		Recommendation: "Strip zero-width characters before publishing or diffing the text.",
	},
	"joiner_char": {
		Severity:       SeverityMedium,
		Impact:         "Joiner controls alter how neighboring characters combine and survive copy-paste invisibly, making text compare unequal to its visible form.",
		Recommendation: "Strip joiners unless the text contains scripts or emoji sequences that genuinely need them.",
	},
	"invisible_math": {
		Severity:       SeverityMedium,
		Impact:         "Invisible mathematical operators render as nothing and almost never appear outside generated or watermarked content.",
		Recommendation: "Strip invisible operators; formulas that need them should live in markup, not plain text.",
	},
	"stray_bom": {
		Severity:       SeverityMedium,
		Impact:         "A byte order mark inside a document breaks naive concatenation and string comparison while remaining invisible in most editors.",
		Recommendation: "Strip interior byte order marks; only a leading BOM in a file has a defined meaning.",
	},
	"format_char": {
		Severity:       SeverityMedium,
		Impact:         "Format characters such as the soft hyphen change rendering conditionally and hide reliably from visual review.",
		Recommendation: "Strip format characters unless the text is typeset material that depends on them.",
	},
	"variation_selector": {
		Severity:       SeverityMedium,
		Impact:         "Variation selectors are invisible glyph modifiers; sequences of them can encode hidden data at arbitrary density.",
		Recommendation: "Strip variation selectors from plain text; emoji presentation is the only common legitimate use.",
	},
	"annotation_control": {
		Severity:       SeverityMedium,
		Impact:         "Interlinear annotation controls are legacy layout characters that hide annotation text from plain-text rendering.",
		Recommendation: "Strip annotation controls; they have no role outside specialized CJK layout systems.",
	},
	"filler_char": {
		Severity:       SeverityMedium,
		Impact:         "Filler characters render as blank glyphs and are routinely used to fake empty usernames and messages.",
		Recommendation: "Strip filler characters from any text that should read as its visible form.",
	},

	// LOW - Fingerprinting signals rather than payloads
	"special_space": {
		Severity:       SeverityLow,
		Impact:         "Non-standard space widths survive copy-paste from typeset sources and AI output, making text fingerprintable and search-unfriendly.",
		Recommendation: "Strip special spaces; the cleaner's space collapsing restores ordinary spacing.",
	},
	"unicode_separator": {
		Severity:       SeverityLow,
		Impact:         "Line and paragraph separators render inconsistently across editors and break line-based tooling.",
		Recommendation: "Replace Unicode separators with ordinary line feeds via cleaning.",
	},
	"trailing_whitespace": {
		Severity:       SeverityLow,
		Impact:         "Trailing whitespace is invisible in rendered text but shows up in diffs and is a common artifact of generated output.",
		Recommendation: "Trim line ends with the cleaner.",
	},
	"mixed_line_endings": {
		Severity:       SeverityLow,
		Impact:         "Mixed CRLF and LF terminators indicate the text was assembled from multiple sources and confuse line-based tools.",
		Recommendation: "Normalize the text to a single line-ending convention.",
	},

	// INFO - Visible structure, reported only on request
	"formatting_char": {
		Severity:       SeverityInfo,
		Impact:         "Tabs, line feeds, and carriage returns are ordinary text structure. They are listed only when formatting detection is requested.",
		Recommendation: "No action needed.",
	},
	"double_space": {
		Severity:       SeverityInfo,
		Impact:         "Runs of repeated spaces between words are a typography habit and an occasional generation artifact, not a risk.",
		Recommendation: "Collapse repeated spaces with the cleaner if uniform spacing matters.",
	},
}

// GetFindingInfo returns the metadata for a given finding type.
// Unknown types default to an informational finding with no guidance, so a
// missing mapping never escalates a report.
func GetFindingInfo(findingType string) FindingInfo {
	if info, ok := findingInfoMapping[findingType]; ok {
		return info
	}
	return FindingInfo{Severity: SeverityInfo}
}

// GetSeverity returns the severity level for a given finding type.
func GetSeverity(findingType string) Severity {
	return GetFindingInfo(findingType).Severity
}
