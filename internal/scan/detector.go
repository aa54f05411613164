package scan

import (
	"github.com/macro-dynamic/TracesCleaner/internal/chars"
	"github.com/macro-dynamic/TracesCleaner/internal/model"
)

// Detector scans text for hidden characters: named registry entries, generic
// control characters, and supplementary-plane Tag and variation selector
// characters.
type Detector struct {
	includeFormatting bool
}

// DetectorOption configures a Detector.
type DetectorOption func(*Detector)

// WithFormatting includes the formatting category (Tab, LF, CR) in detection
// results. Formatting characters are excluded by default because ordinary
// structured text would otherwise always report findings.
func WithFormatting(include bool) DetectorOption {
	return func(d *Detector) {
		d.includeFormatting = include
	}
}

// NewDetector creates a Detector. Without options, formatting characters are
// not reported.
func NewDetector(opts ...DetectorOption) *Detector {
	d := &Detector{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect walks the text once and returns the positional inventory of every
// flagged character. Positions are zero-based rune offsets.
func (d *Detector) Detect(text string) *model.DetectionResult {
	result := model.NewDetectionResult()

	for pos, r := range []rune(text) {
		if desc, ok := chars.Lookup(r); ok {
			if desc.Category == chars.CategoryFormatting && !d.includeFormatting {
				continue
			}
			result.Record(r, desc, pos)
			continue
		}
		if chars.IsGenericControl(r) {
			result.Record(r, chars.ControlDescriptor(r), pos)
			continue
		}
		if chars.IsSupplementary(r) {
			result.Record(r, chars.SupplementaryDescriptor(r), pos)
		}
	}

	return result
}
