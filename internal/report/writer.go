package report

import (
	"io"

	"github.com/macro-dynamic/TracesCleaner/internal/model"
)

// Writer defines the interface for report output.
// Implementations write scan results in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// Write outputs the full report to the configured destination.
	Write(report *model.ScanReport) error

	// WriteSummary outputs only the severity digest.
	// This is useful for quick summaries without full details.
	WriteSummary(summary *model.Summary) error
}

// severityOrder is the rendering order shared by all writers, most severe
// first.
var severityOrder = []model.Severity{
	model.SeverityCritical,
	model.SeverityHigh,
	model.SeverityMedium,
	model.SeverityLow,
	model.SeverityInfo,
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *model.ScanReport) error {
	for _, w := range m.writers {
		if err := w.Write(report); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary outputs the summary to all configured Writers.
func (m *MultiWriter) WriteSummary(summary *model.Summary) error {
	for _, w := range m.writers {
		if err := w.WriteSummary(summary); err != nil {
			return err
		}
	}
	return nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// summaryFor returns the report's summary, building it on demand.
func summaryFor(report *model.ScanReport) *model.Summary {
	if report.Summary != nil {
		return report.Summary
	}
	return model.NewSummary(report)
}
