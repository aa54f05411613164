package model

import (
	"time"
	"unicode/utf8"
)

// ScanReport is the complete result of scanning one text.
// It collects the outputs of the three scanners plus metadata about the
// input, and is the unit stored in the scan-history database.
type ScanReport struct {
	// Source identifies where the text came from: a file path or "stdin".
	Source string `json:"source"`

	// DateScanned is when the scan was performed.
	DateScanned time.Time `json:"date_scanned"`

	// InputRunes is the input length in Unicode code points.
	InputRunes int `json:"input_runes"`

	// InputBytes is the input length in bytes.
	InputBytes int `json:"input_bytes"`

	// Detection holds the hidden-character inventory, if that check ran.
	Detection *DetectionResult `json:"detection,omitempty"`

	// Homoglyphs holds the lookalike-character inventory, if that check ran.
	Homoglyphs *HomoglyphResult `json:"homoglyphs,omitempty"`

	// Whitespace holds the whitespace anomalies, if that check ran.
	Whitespace *WhitespaceResult `json:"whitespace,omitempty"`

	// PerformedChecks lists the checks that ran, in execution order.
	PerformedChecks []string `json:"performed_checks,omitempty"`

	// Summary is the severity-ranked digest derived from the results above.
	Summary *Summary `json:"summary,omitempty"`
}

// NewScanReport creates a report shell for the given input text.
func NewScanReport(source, text string) *ScanReport {
	return &ScanReport{
		Source:      source,
		DateScanned: time.Now(),
		InputRunes:  utf8.RuneCountInString(text),
		InputBytes:  len(text),
	}
}

// AddPerformedCheck records that a named check ran.
func (r *ScanReport) AddPerformedCheck(name string) {
	r.PerformedChecks = append(r.PerformedChecks, name)
}

// TotalIssues returns the combined total across all checks that ran.
func (r *ScanReport) TotalIssues() int {
	total := 0
	if r.Detection != nil {
		total += r.Detection.Total
	}
	if r.Homoglyphs != nil {
		total += r.Homoglyphs.Total
	}
	if r.Whitespace != nil {
		total += r.Whitespace.Total
	}
	return total
}

// IsClean reports whether no check found anything.
func (r *ScanReport) IsClean() bool {
	return r.TotalIssues() == 0
}
