package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/macro-dynamic/TracesCleaner/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting and severity tags.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no findings are shown.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report in human-readable format, including the
// per-character inventories behind the findings.
func (w *SimpleWriter) Write(report *model.ScanReport) error {
	summary := summaryFor(report)

	var sb strings.Builder

	w.writeHeader(&sb, summary)
	sb.WriteString(fmt.Sprintf("Input Size:     %d runes (%d bytes)\n", report.InputRunes, report.InputBytes))
	if len(report.PerformedChecks) > 0 {
		sb.WriteString(fmt.Sprintf("Checks:         %s\n", strings.Join(report.PerformedChecks, ", ")))
	}
	w.writeStatus(&sb, summary)
	sb.WriteString("\n")

	w.writeSummary(&sb, summary)
	w.writeFindings(&sb, summary)
	w.writeHiddenCharacters(&sb, report)
	w.writeHomoglyphs(&sb, report)
	w.writeWhitespace(&sb, report)
	w.writeFooter(&sb)

	_, err := w.output.Write([]byte(sb.String()))
	return err
}

// WriteSummary outputs only the severity digest in human-readable format.
func (w *SimpleWriter) WriteSummary(summary *model.Summary) error {
	var sb strings.Builder

	w.writeHeader(&sb, summary)
	w.writeStatus(&sb, summary)
	sb.WriteString("\n")
	w.writeSummary(&sb, summary)
	w.writeFindings(&sb, summary)
	w.writeFooter(&sb)

	_, err := w.output.Write([]byte(sb.String()))
	return err
}

// writeHeader writes the report header with scan information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, summary *model.Summary) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                       TRACESCLEANER REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Source:         %s\n", summary.Source))
	sb.WriteString(fmt.Sprintf("Scan Date:      %s\n", summary.DateScanned.Format("2006-01-02 15:04:05 MST")))
}

// writeStatus writes the one-line scan verdict.
func (w *SimpleWriter) writeStatus(sb *strings.Builder, summary *model.Summary) {
	if summary.HasFindings() {
		sb.WriteString(fmt.Sprintf("Status:         %d finding(s)\n", summary.TotalFindings()))
	} else {
		sb.WriteString("Status:         Clean\n")
	}
}

// writeSummary writes the severity summary section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, summary *model.Summary) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SEVERITY SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  CRITICAL: %d\n", summary.CriticalCount))
	sb.WriteString(fmt.Sprintf("  HIGH:     %d\n", summary.HighCount))
	sb.WriteString(fmt.Sprintf("  MEDIUM:   %d\n", summary.MediumCount))
	sb.WriteString(fmt.Sprintf("  LOW:      %d\n", summary.LowCount))
	sb.WriteString(fmt.Sprintf("  INFO:     %d\n", summary.InfoCount))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("  Hidden characters:    %d\n", summary.HiddenTotal))
	sb.WriteString(fmt.Sprintf("  Homoglyphs:           %d\n", summary.HomoglyphTotal))
	sb.WriteString(fmt.Sprintf("  Whitespace anomalies: %d\n", summary.WhitespaceTotal))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("  TOTAL:    %d findings\n", summary.TotalFindings()))
	sb.WriteString("\n")
}

// writeFindings writes all findings grouped by severity.
func (w *SimpleWriter) writeFindings(sb *strings.Builder, summary *model.Summary) {
	if !summary.HasFindings() && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FINDINGS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, severity := range severityOrder {
		findings := summary.GetFindingsBySeverity(severity)
		if len(findings) == 0 && !w.showEmpty {
			continue
		}

		w.writeFindingsForSeverity(sb, severity, findings)
	}
}

// writeFindingsForSeverity writes findings of a specific severity level.
func (w *SimpleWriter) writeFindingsForSeverity(sb *strings.Builder, severity model.Severity, findings []model.Finding) {
	indicator := w.getSeverityIndicator(severity)
	sb.WriteString(fmt.Sprintf("[%s] %s\n", indicator, severity.String()))

	if len(findings) == 0 {
		sb.WriteString("  No findings\n\n")
		return
	}

	for _, finding := range findings {
		sb.WriteString(fmt.Sprintf("  * %s\n", finding.Title))
		if finding.Value != "" {
			sb.WriteString(fmt.Sprintf("    Value: %s\n", finding.Value))
		}
		if finding.Count > 0 {
			sb.WriteString(fmt.Sprintf("    Count: %d\n", finding.Count))
		}
		if w.verbose && len(finding.Positions) > 0 {
			sb.WriteString(fmt.Sprintf("    Positions: %s\n", formatPositions(finding.Positions)))
		}
		if w.verbose && finding.Description != "" {
			sb.WriteString(fmt.Sprintf("    Description: %s\n", finding.Description))
		}
		if w.verbose && finding.Recommendation != "" {
			sb.WriteString(fmt.Sprintf("    Recommendation: %s\n", finding.Recommendation))
		}
	}
	sb.WriteString("\n")
}

// getSeverityIndicator returns a visual indicator for the severity level.
func (w *SimpleWriter) getSeverityIndicator(severity model.Severity) string {
	switch severity {
	case model.SeverityCritical:
		return "!!!"
	case model.SeverityHigh:
		return "!!"
	case model.SeverityMedium:
		return "!"
	case model.SeverityLow:
		return "-"
	case model.SeverityInfo:
		return "i"
	default:
		return "?"
	}
}

// writeHiddenCharacters writes the per-character detection inventory.
func (w *SimpleWriter) writeHiddenCharacters(sb *strings.Builder, report *model.ScanReport) {
	if report.Detection == nil || (len(report.Detection.Entries) == 0 && !w.showEmpty) {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("HIDDEN CHARACTERS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(report.Detection.Entries) == 0 {
		sb.WriteString("  No hidden characters found\n")
	}
	for _, entry := range report.Detection.Entries {
		sb.WriteString(fmt.Sprintf("  %-9s %-32s x%d at %s\n",
			entry.CodeLabel, fmt.Sprintf("%s (%s)", entry.Name, entry.Category), entry.Count, formatPositions(entry.Positions)))
	}
	sb.WriteString("\n")
}

// writeHomoglyphs writes the lookalike-character inventory.
func (w *SimpleWriter) writeHomoglyphs(sb *strings.Builder, report *model.ScanReport) {
	if report.Homoglyphs == nil || (len(report.Homoglyphs.Entries) == 0 && !w.showEmpty) {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("HOMOGLYPHS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(report.Homoglyphs.Entries) == 0 {
		sb.WriteString("  No homoglyphs found\n")
	}
	for _, entry := range report.Homoglyphs.Entries {
		sb.WriteString(fmt.Sprintf("  %-9s %-32s -> %q x%d at %s\n",
			entry.CodeLabel, entry.Name, entry.Replacement, entry.Count, formatPositions(entry.Positions)))
	}
	sb.WriteString("\n")
}

// writeWhitespace writes the whitespace anomaly list.
func (w *SimpleWriter) writeWhitespace(sb *strings.Builder, report *model.ScanReport) {
	if report.Whitespace == nil || (len(report.Whitespace.Issues) == 0 && !w.showEmpty) {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("WHITESPACE ANOMALIES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(report.Whitespace.Issues) == 0 {
		sb.WriteString("  No whitespace anomalies found\n")
	}
	for _, issue := range report.Whitespace.Issues {
		sb.WriteString(fmt.Sprintf("  [%s] %s (count %d)\n", issue.Kind, issue.Description, issue.Count))
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by TracesCleaner\n")
	sb.WriteString("https://github.com/macro-dynamic/TracesCleaner\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

// formatPositions renders rune offsets, capping long lists.
func formatPositions(positions []int) string {
	const maxShown = 10

	shown := positions
	suffix := ""
	if len(shown) > maxShown {
		shown = shown[:maxShown]
		suffix = " ..."
	}

	parts := make([]string, len(shown))
	for i, p := range shown {
		parts[i] = strconv.Itoa(p)
	}
	return "[" + strings.Join(parts, " ") + suffix + "]"
}
