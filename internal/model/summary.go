package model

import (
	"fmt"
	"time"

	"github.com/macro-dynamic/TracesCleaner/internal/chars"
)

// Summary is a severity-ranked, human-readable digest of a scan.
//
// Design decision: We create a separate digest rather than just printing
// parts of ScanReport because:
// 1. It provides a consistent, curated view of the most important findings
// 2. It can be serialized to JSON for tools that want structured but simple output
// 3. It separates presentation concerns from data collection
type Summary struct {
	// Source identifies the scanned input.
	Source string `json:"source"`

	// DateScanned is when the scan was performed.
	DateScanned time.Time `json:"date_scanned"`

	// === Severity Summary ===

	// CriticalCount is the number of critical findings.
	CriticalCount int `json:"critical_count"`

	// HighCount is the number of high severity findings.
	HighCount int `json:"high_count"`

	// MediumCount is the number of medium severity findings.
	MediumCount int `json:"medium_count"`

	// LowCount is the number of low severity findings.
	LowCount int `json:"low_count"`

	// InfoCount is the number of informational findings.
	InfoCount int `json:"info_count"`

	// === Check Totals ===

	// HiddenTotal is the number of hidden-character occurrences.
	HiddenTotal int `json:"hidden_total"`

	// HomoglyphTotal is the number of lookalike-character occurrences.
	HomoglyphTotal int `json:"homoglyph_total"`

	// WhitespaceTotal is the number of whitespace anomaly occurrences.
	WhitespaceTotal int `json:"whitespace_total"`

	// === Findings ===

	// Findings contains all categorized findings.
	Findings []Finding `json:"findings,omitempty"`
}

// Finding represents a single finding in the summary.
type Finding struct {
	// Type is the finding type identifier.
	// This maps to the findingInfoMapping in severity.go.
	Type string `json:"type"`

	// Severity is the risk level.
	Severity Severity `json:"severity"`

	// SeverityText is the human-readable severity.
	SeverityText string `json:"severity_text"`

	// Title is a short description of the finding.
	Title string `json:"title"`

	// Description provides more detail about the finding.
	Description string `json:"description,omitempty"`

	// Impact explains why this finding matters.
	Impact string `json:"impact,omitempty"`

	// Recommendation provides guidance on how to address this finding.
	Recommendation string `json:"recommendation,omitempty"`

	// Value is the specific value found, usually a U+XXXX code label.
	Value string `json:"value,omitempty"`

	// Count is the number of occurrences behind this finding.
	Count int `json:"count"`

	// Positions holds the rune offsets of the occurrences, when known.
	Positions []int `json:"positions,omitempty"`
}

// NewSummary builds the severity digest for a scan report.
func NewSummary(report *ScanReport) *Summary {
	s := &Summary{
		Source:      report.Source,
		DateScanned: report.DateScanned,
	}

	if report.Detection != nil {
		s.HiddenTotal = report.Detection.Total
		s.collectDetectionFindings(report.Detection)
	}
	if report.Homoglyphs != nil {
		s.HomoglyphTotal = report.Homoglyphs.Total
		s.collectHomoglyphFindings(report.Homoglyphs)
	}
	if report.Whitespace != nil {
		s.WhitespaceTotal = report.Whitespace.Total
		s.collectWhitespaceFindings(report.Whitespace)
	}

	s.flagSpoofingCombination(report)
	s.countBySeverity()

	return s
}

// findingTypeForCategory maps a registry category to its finding type.
func findingTypeForCategory(cat chars.Category) string {
	switch cat {
	case chars.CategoryFormatting:
		return "formatting_char"
	case chars.CategoryZeroWidth:
		return "zero_width_char"
	case chars.CategoryDirection:
		return "bidi_control"
	case chars.CategorySeparator:
		return "unicode_separator"
	case chars.CategoryJoiner:
		return "joiner_char"
	case chars.CategoryMathInvisible:
		return "invisible_math"
	case chars.CategoryBOM:
		return "stray_bom"
	case chars.CategoryFormat:
		return "format_char"
	case chars.CategoryVariation:
		return "variation_selector"
	case chars.CategoryAnnotation:
		return "annotation_control"
	case chars.CategoryFiller:
		return "filler_char"
	case chars.CategorySpace:
		return "special_space"
	case chars.CategoryControl:
		return "control_char"
	default:
		return "hidden_char"
	}
}

// collectDetectionFindings adds one finding per distinct hidden character.
func (s *Summary) collectDetectionFindings(dr *DetectionResult) {
	for _, e := range dr.Entries {
		findingType := findingTypeForCategory(e.Category)
		// The Tags block carries payloads and ranks above the rest of the
		// format category.
		if e.Rune >= 0xE0000 && e.Rune <= 0xE007F {
			findingType = "tag_char"
		}

		description := "Hidden character found by the registry scan"
		switch e.Category {
		case chars.CategoryFormatting:
			description = "Formatting character, reported on request"
		case chars.CategoryControl:
			description = "Generic control character outside the named registry"
		}

		s.addFinding(findingType, e.Name, description, e.CodeLabel, e.Count, e.Positions)
	}
}

// collectHomoglyphFindings adds one finding per distinct lookalike character.
func (s *Summary) collectHomoglyphFindings(hr *HomoglyphResult) {
	for _, e := range hr.Entries {
		description := fmt.Sprintf("Renders like %q but is a different code point", e.Replacement)
		s.addFinding("homoglyph", e.Name, description, e.CodeLabel, e.Count, e.Positions)
	}
}

// collectWhitespaceFindings adds findings for whitespace anomalies.
// Special-space issues are skipped: the same characters already appear as
// detection findings.
func (s *Summary) collectWhitespaceFindings(wr *WhitespaceResult) {
	for _, issue := range wr.Issues {
		switch issue.Kind {
		case IssueTrailingSpace:
			s.addFinding("trailing_whitespace", "Trailing Whitespace",
				issue.Description, "", issue.Count, nil)
		case IssueDoubleSpace:
			s.addFinding("double_space", "Repeated Spaces",
				issue.Description, "", issue.Count, nil)
		case IssueMixedEndings:
			s.addFinding("mixed_line_endings", "Mixed Line Endings",
				issue.Description, "", issue.Count, nil)
		case IssueSpecialSpace:
			continue
		}
	}
}

// flagSpoofingCombination raises a critical finding when direction controls
// and lookalike characters appear in the same text. Either alone misleads;
// together they indicate deliberate spoofing.
func (s *Summary) flagSpoofingCombination(report *ScanReport) {
	if report.Homoglyphs == nil || report.Homoglyphs.Total == 0 {
		return
	}
	if report.Detection == nil {
		return
	}
	for _, e := range report.Detection.Entries {
		if e.Category == chars.CategoryDirection {
			s.addFinding("spoofing_combination", "Direction Controls With Homoglyphs",
				"Bidirectional control marks and lookalike characters occur in the same text",
				"", 1, nil)
			return
		}
	}
}

// addFinding adds a finding to the summary.
func (s *Summary) addFinding(findingType, title, description, value string, count int, positions []int) {
	info := GetFindingInfo(findingType)
	s.Findings = append(s.Findings, Finding{
		Type:           findingType,
		Severity:       info.Severity,
		SeverityText:   info.Severity.String(),
		Title:          title,
		Description:    description,
		Impact:         info.Impact,
		Recommendation: info.Recommendation,
		Value:          value,
		Count:          count,
		Positions:      positions,
	})
}

// countBySeverity counts findings by severity level.
func (s *Summary) countBySeverity() {
	for _, f := range s.Findings {
		switch f.Severity {
		case SeverityCritical:
			s.CriticalCount++
		case SeverityHigh:
			s.HighCount++
		case SeverityMedium:
			s.MediumCount++
		case SeverityLow:
			s.LowCount++
		case SeverityInfo:
			s.InfoCount++
		}
	}
}

// TotalFindings returns the total number of findings.
func (s *Summary) TotalFindings() int {
	return len(s.Findings)
}

// HasFindings returns true if there are any findings.
func (s *Summary) HasFindings() bool {
	return len(s.Findings) > 0
}

// GetFindingsBySeverity returns findings filtered by severity.
func (s *Summary) GetFindingsBySeverity(severity Severity) []Finding {
	var result []Finding
	for _, f := range s.Findings {
		if f.Severity == severity {
			result = append(result, f)
		}
	}
	return result
}
