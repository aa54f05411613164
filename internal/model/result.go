package model

import "github.com/macro-dynamic/TracesCleaner/internal/chars"

// DetectionEntry aggregates every occurrence of one hidden character.
type DetectionEntry struct {
	// Rune is the detected code point. Not serialized; Char carries it.
	Rune rune `json:"-"`

	// Char is the character itself, as a string.
	Char string `json:"char"`

	// Name is the human-readable character name.
	Name string `json:"name"`

	// CodeLabel is the canonical code point label, e.g. "U+200B".
	CodeLabel string `json:"code"`

	// Category is the classification bucket from the character registry.
	Category chars.Category `json:"category"`

	// Count is the number of occurrences, always >= 1.
	Count int `json:"count"`

	// Positions holds the zero-based rune offsets of each occurrence, in
	// ascending order.
	Positions []int `json:"positions"`
}

// DetectionResult is the positional inventory produced by one detection scan.
// Entries appear in first-seen order; Total always equals the sum of entry
// counts.
type DetectionResult struct {
	Total   int               `json:"total"`
	Entries []*DetectionEntry `json:"entries"`

	index map[rune]*DetectionEntry
}

// NewDetectionResult creates an empty detection result.
func NewDetectionResult() *DetectionResult {
	return &DetectionResult{index: make(map[rune]*DetectionEntry)}
}

// Record adds one occurrence of r at the given rune offset.
func (dr *DetectionResult) Record(r rune, d chars.Descriptor, pos int) {
	e, ok := dr.index[r]
	if !ok {
		e = &DetectionEntry{
			Rune:      r,
			Char:      string(r),
			Name:      d.Name,
			CodeLabel: d.CodeLabel,
			Category:  d.Category,
		}
		dr.index[r] = e
		dr.Entries = append(dr.Entries, e)
	}
	e.Count++
	e.Positions = append(e.Positions, pos)
	dr.Total++
}

// Entry returns the aggregated entry for r. It works on results rebuilt from
// JSON, where the rune index is not populated.
func (dr *DetectionResult) Entry(r rune) (*DetectionEntry, bool) {
	if dr.index != nil {
		e, ok := dr.index[r]
		return e, ok
	}
	for _, e := range dr.Entries {
		if e.Char == string(r) {
			return e, true
		}
	}
	return nil, false
}

// HomoglyphEntry aggregates every occurrence of one lookalike character.
type HomoglyphEntry struct {
	Rune rune `json:"-"`

	// Char is the lookalike character itself.
	Char string `json:"char"`

	// Name is the human-readable character name.
	Name string `json:"name"`

	// CodeLabel is the canonical code point label.
	CodeLabel string `json:"code"`

	// Replacement is the plain ASCII text the character should become.
	Replacement string `json:"replacement"`

	// Count is the number of occurrences, always >= 1.
	Count int `json:"count"`

	// Positions holds the zero-based rune offsets of each occurrence.
	Positions []int `json:"positions"`
}

// HomoglyphResult is the inventory produced by one homoglyph scan.
// Entries appear in first-seen order.
type HomoglyphResult struct {
	Total   int               `json:"total"`
	Entries []*HomoglyphEntry `json:"entries"`

	index map[rune]*HomoglyphEntry
}

// NewHomoglyphResult creates an empty homoglyph result.
func NewHomoglyphResult() *HomoglyphResult {
	return &HomoglyphResult{index: make(map[rune]*HomoglyphEntry)}
}

// Record adds one occurrence of the table entry he at the given rune offset.
func (hr *HomoglyphResult) Record(he chars.HomoglyphEntry, pos int) {
	e, ok := hr.index[he.Rune]
	if !ok {
		e = &HomoglyphEntry{
			Rune:        he.Rune,
			Char:        string(he.Rune),
			Name:        he.Name,
			CodeLabel:   chars.Label(he.Rune),
			Replacement: he.Replacement,
		}
		hr.index[he.Rune] = e
		hr.Entries = append(hr.Entries, e)
	}
	e.Count++
	e.Positions = append(e.Positions, pos)
	hr.Total++
}

// Entry returns the aggregated entry for r.
func (hr *HomoglyphResult) Entry(r rune) (*HomoglyphEntry, bool) {
	if hr.index != nil {
		e, ok := hr.index[r]
		return e, ok
	}
	for _, e := range hr.Entries {
		if e.Char == string(r) {
			return e, true
		}
	}
	return nil, false
}

// IssueKind identifies one class of whitespace anomaly.
type IssueKind string

const (
	// IssueTrailingSpace is horizontal whitespace before a line break.
	IssueTrailingSpace IssueKind = "trailing-space"

	// IssueDoubleSpace is a run of two or more ordinary spaces between
	// non-space characters.
	IssueDoubleSpace IssueKind = "double-space"

	// IssueMixedEndings is the presence of both CRLF and bare LF line
	// terminators in the same text.
	IssueMixedEndings IssueKind = "mixed-endings"

	// IssueSpecialSpace is a non-standard space character from the
	// registry's space category.
	IssueSpecialSpace IssueKind = "special-space"
)

// WhitespaceIssue is one whitespace anomaly found by the analyzer.
type WhitespaceIssue struct {
	Kind IssueKind `json:"kind"`

	// Description is a human-readable account of the anomaly.
	Description string `json:"description"`

	// Count is the number of occurrences contributing to the issue.
	// Mixed line endings contribute at most 1.
	Count int `json:"count"`

	// CodeLabel identifies the character for special-space issues.
	CodeLabel string `json:"code,omitempty"`
}

// WhitespaceResult is the outcome of one whitespace anomaly scan. Issues
// preserve the fixed check order: trailing, double-space, mixed endings,
// then each special space in registry definition order.
type WhitespaceResult struct {
	Total  int               `json:"total"`
	Issues []WhitespaceIssue `json:"issues"`
}

// Add appends an issue and raises the total by its count.
func (wr *WhitespaceResult) Add(issue WhitespaceIssue) {
	wr.Issues = append(wr.Issues, issue)
	wr.Total += issue.Count
}
