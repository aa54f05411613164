package report

import (
	"encoding/json"
	"io"

	"github.com/macro-dynamic/TracesCleaner/internal/model"
)

// JSONWriter outputs reports in JSON format.
// This format is designed for machine consumption, piping into jq, and
// integration with CI tooling.
type JSONWriter struct {
	baseWriter

	// prefix and indent control JSON formatting.
	prefix string
	indent string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent sets custom indentation for JSON output.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.prefix = prefix
		w.indent = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.prefix = ""
		w.indent = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
// By default, output is pretty-printed with two-space indentation.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
		prefix:     "",
		indent:     "  ",
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report as JSON.
func (w *JSONWriter) Write(report *model.ScanReport) error {
	return w.writeJSON(report)
}

// WriteSummary outputs only the severity digest as JSON.
func (w *JSONWriter) WriteSummary(summary *model.Summary) error {
	return w.writeJSON(summary)
}

// writeJSON marshals the value and writes it with a trailing newline.
func (w *JSONWriter) writeJSON(v any) error {
	var (
		data []byte
		err  error
	)

	if w.indent != "" || w.prefix != "" {
		data, err = json.MarshalIndent(v, w.prefix, w.indent)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	data = append(data, '\n')
	_, err = w.output.Write(data)
	return err
}

// JSONReport wraps a scan report with version metadata for the full
// JSON output format.
type JSONReport struct {
	Version string            `json:"version"`
	Report  *model.ScanReport `json:"report"`
	Summary *model.Summary    `json:"summary"`
}

// FullJSONWriter outputs reports wrapped with tool version metadata.
type FullJSONWriter struct {
	*JSONWriter

	version string
}

// NewFullJSONWriter creates a JSONWriter that wraps each report with
// version metadata.
func NewFullJSONWriter(output io.Writer, version string, opts ...JSONWriterOption) *FullJSONWriter {
	return &FullJSONWriter{
		JSONWriter: NewJSONWriter(output, opts...),
		version:    version,
	}
}

// Write outputs the full report as JSON, wrapped with version metadata.
func (w *FullJSONWriter) Write(report *model.ScanReport) error {
	return w.writeJSON(JSONReport{
		Version: w.version,
		Report:  report,
		Summary: summaryFor(report),
	})
}
