package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/macro-dynamic/TracesCleaner/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation, pull request comments, and
// sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter

	// withProviders appends the AI provider reference table.
	withProviders bool
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithProviderReference appends a reference table of known AI provider
// artifacts to the report.
func WithProviderReference() MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.withProviders = true
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.ScanReport) error {
	summary := summaryFor(report)
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report, summary)
	w.writeSummary(md, summary)
	w.writeFindings(md, summary)
	w.writeCharacterDetails(md, report)
	if w.withProviders {
		w.writeProviders(md)
	}
	w.writeFooter(md)

	return md.Build()
}

// WriteSummary outputs only the severity digest in Markdown format.
func (w *MarkdownWriter) WriteSummary(summary *model.Summary) error {
	md := markdown.NewMarkdown(w.output)

	md.H1("TracesCleaner Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", "`" + summary.Source + "`"},
			{"Scan Date", summary.DateScanned.Format("2006-01-02 15:04:05 MST")},
			{"Status", w.getStatusText(summary)},
		},
	})
	md.PlainText("")

	w.writeSummary(md, summary)
	w.writeFindings(md, summary)
	w.writeFooter(md)

	return md.Build()
}

// writeHeader writes the report header with scan information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.ScanReport, summary *model.Summary) {
	md.H1("TracesCleaner Report")
	md.PlainText("")

	// Basic info table
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", "`" + summary.Source + "`"},
			{"Scan Date", summary.DateScanned.Format("2006-01-02 15:04:05 MST")},
			{"Input Size", fmt.Sprintf("%d runes (%d bytes)", report.InputRunes, report.InputBytes)},
			{"Hidden Characters", strconv.Itoa(summary.HiddenTotal)},
			{"Homoglyphs", strconv.Itoa(summary.HomoglyphTotal)},
			{"Whitespace Issues", strconv.Itoa(summary.WhitespaceTotal)},
			{"Status", w.getStatusText(summary)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on the summary state.
func (w *MarkdownWriter) getStatusText(summary *model.Summary) string {
	if summary.HasFindings() {
		return fmt.Sprintf("⚠️ %d finding(s)", summary.TotalFindings())
	}
	return "✅ Clean"
}

// writeSummary writes the severity summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, summary *model.Summary) {
	md.H2("Severity Summary")
	md.PlainText("")

	// Summary table
	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Count"},
		Rows: [][]string{
			{"🔴 Critical", strconv.Itoa(summary.CriticalCount)},
			{"🟠 High", strconv.Itoa(summary.HighCount)},
			{"🟡 Medium", strconv.Itoa(summary.MediumCount)},
			{"🔵 Low", strconv.Itoa(summary.LowCount)},
			{"⚪ Info", strconv.Itoa(summary.InfoCount)},
			{"**Total**", "**" + strconv.Itoa(summary.TotalFindings()) + "**"},
		},
	})
	md.PlainText("")

	// Add pie chart if there are findings
	if summary.HasFindings() {
		w.writePieChart(md, summary)
	}

	// Add alert based on severity
	w.writeAlert(md, summary)
}

// writePieChart writes a mermaid pie chart for severity distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary *model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Finding Severity Distribution"),
		piechart.WithShowData(true),
	)

	if summary.CriticalCount > 0 {
		chart.LabelAndIntValue("Critical", uint64(summary.CriticalCount))
	}
	if summary.HighCount > 0 {
		chart.LabelAndIntValue("High", uint64(summary.HighCount))
	}
	if summary.MediumCount > 0 {
		chart.LabelAndIntValue("Medium", uint64(summary.MediumCount))
	}
	if summary.LowCount > 0 {
		chart.LabelAndIntValue("Low", uint64(summary.LowCount))
	}
	if summary.InfoCount > 0 {
		chart.LabelAndIntValue("Info", uint64(summary.InfoCount))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on severity counts.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary *model.Summary) {
	switch {
	case summary.CriticalCount > 0:
		md.Cautionf(
			"Critical issues detected! %d finding(s) can reorder or conceal displayed text.",
			summary.CriticalCount,
		)
	case summary.HighCount > 0:
		md.Warningf(
			"High severity issues detected. %d finding(s) hide invisible characters in the text.",
			summary.HighCount,
		)
	case summary.MediumCount > 0:
		md.Importantf(
			"Medium severity issues found. %d finding(s) may be lookalike substitutions or unusual spaces.",
			summary.MediumCount,
		)
	case summary.TotalFindings() > 0:
		md.Note("Only low severity and informational findings detected.")
	default:
		md.Tip("No hidden characters or anomalies detected.")
	}
	md.PlainText("")
}

// writeFindings writes all findings grouped by severity.
func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, summary *model.Summary) {
	if !summary.HasFindings() {
		md.H2("Findings")
		md.PlainText("")
		md.PlainText("No findings detected.")
		md.PlainText("")
		return
	}

	md.H2("Findings")
	md.PlainText("")

	severities := []struct {
		level  model.Severity
		header string
	}{
		{model.SeverityCritical, "### 🔴 Critical"},
		{model.SeverityHigh, "### 🟠 High"},
		{model.SeverityMedium, "### 🟡 Medium"},
		{model.SeverityLow, "### 🔵 Low"},
		{model.SeverityInfo, "### ⚪ Info"},
	}

	for _, sev := range severities {
		findings := summary.GetFindingsBySeverity(sev.level)
		if len(findings) == 0 {
			continue
		}

		md.PlainText(sev.header)
		md.PlainText("")
		w.writeFindingsTable(md, findings)
	}
}

// writeFindingsTable writes a table of findings with details.
func (w *MarkdownWriter) writeFindingsTable(md *markdown.Markdown, findings []model.Finding) {
	headers := []string{"Title", "Value", "Count", "Recommendation"}

	rows := make([][]string, len(findings))
	for i, f := range findings {
		value := f.Value
		if value == "" {
			value = "-"
		}
		count := "-"
		if f.Count > 0 {
			count = strconv.Itoa(f.Count)
		}
		rec := f.Recommendation
		if rec == "" {
			rec = "-"
		}

		rows[i] = []string{
			f.Title,
			truncateString(value, 50),
			count,
			truncateString(rec, 60),
		}
	}

	md.Table(markdown.TableSet{
		Header: headers,
		Rows:   rows,
	})
	md.PlainText("")

	// Add detailed descriptions for all findings
	for _, f := range findings {
		if f.Description == "" {
			continue
		}
		text := f.Description
		if f.Impact != "" {
			text += " **Impact:** " + f.Impact
		}
		md.Details(f.Title, text)
	}
	md.PlainText("")
}

// writeCharacterDetails writes collapsible position tables for the
// per-character inventories.
func (w *MarkdownWriter) writeCharacterDetails(md *markdown.Markdown, report *model.ScanReport) {
	if report.Detection != nil && len(report.Detection.Entries) > 0 {
		rows := make([][]string, len(report.Detection.Entries))
		for i, e := range report.Detection.Entries {
			rows[i] = []string{
				e.CodeLabel,
				e.Name,
				string(e.Category),
				strconv.Itoa(e.Count),
				formatPositions(e.Positions),
			}
		}
		md.Details("Hidden character positions", w.tableString(
			[]string{"Code", "Name", "Category", "Count", "Positions"}, rows))
		md.PlainText("")
	}

	if report.Homoglyphs != nil && len(report.Homoglyphs.Entries) > 0 {
		rows := make([][]string, len(report.Homoglyphs.Entries))
		for i, e := range report.Homoglyphs.Entries {
			rows[i] = []string{
				e.CodeLabel,
				e.Name,
				"`" + e.Replacement + "`",
				strconv.Itoa(e.Count),
				formatPositions(e.Positions),
			}
		}
		md.Details("Homoglyph positions", w.tableString(
			[]string{"Code", "Name", "Replacement", "Count", "Positions"}, rows))
		md.PlainText("")
	}
}

// tableString renders a markdown table to a string for embedding inside
// details blocks.
func (w *MarkdownWriter) tableString(header []string, rows [][]string) string {
	inner := markdown.NewMarkdown(io.Discard)
	inner.Table(markdown.TableSet{
		Header: header,
		Rows:   rows,
	})
	return inner.String()
}

// writeProviders writes the AI provider artifact reference table.
func (w *MarkdownWriter) writeProviders(md *markdown.Markdown) {
	md.H2("Provider Reference")
	md.PlainText("")

	providers := model.Providers()
	rows := make([][]string, len(providers))
	for i, p := range providers {
		rows[i] = []string{
			p.Icon + " " + p.DisplayLabel,
			strings.Join(p.Techniques, "; "),
			string(p.Effectiveness),
			p.Note,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Provider", "Known Artifacts", "Cleaning", "Note"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [TracesCleaner](https://github.com/macro-dynamic/TracesCleaner)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
