package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/macro-dynamic/TracesCleaner/internal/database"
	"github.com/macro-dynamic/TracesCleaner/internal/model"
	"github.com/macro-dynamic/TracesCleaner/internal/scan"
)

// DetectStep runs the hidden-character detection scan.
//
// Design decision: Each check is a separate step because:
// 1. Checks can be added or removed without touching the others
// 2. The performed-check list in the report mirrors the step list
// 3. Step toggles live in the scan context's config, not in the step
type DetectStep struct{}

// NewDetectStep creates a detection step.
func NewDetectStep() *DetectStep {
	return &DetectStep{}
}

// Name returns the step name.
func (s *DetectStep) Name() string {
	return "detect"
}

// Do executes the detection scan. Formatting characters are included only
// when the scan context's config asks for them.
func (s *DetectStep) Do(ctx context.Context, sc *ScanContext) error {
	includeFormatting := false
	if sc.Config != nil {
		includeFormatting = sc.Config.IncludeFormatting
	}

	detector := scan.NewDetector(scan.WithFormatting(includeFormatting))
	sc.Report.Detection = detector.Detect(sc.Text)
	return nil
}

// HomoglyphStep runs the lookalike-character scan.
type HomoglyphStep struct{}

// NewHomoglyphStep creates a homoglyph scan step.
func NewHomoglyphStep() *HomoglyphStep {
	return &HomoglyphStep{}
}

// Name returns the step name.
func (s *HomoglyphStep) Name() string {
	return "homoglyphs"
}

// Do executes the homoglyph scan.
func (s *HomoglyphStep) Do(ctx context.Context, sc *ScanContext) error {
	sc.Report.Homoglyphs = scan.NewHomoglyphScanner().Scan(sc.Text)
	return nil
}

// WhitespaceStep runs the whitespace anomaly scan.
type WhitespaceStep struct{}

// NewWhitespaceStep creates a whitespace analysis step.
func NewWhitespaceStep() *WhitespaceStep {
	return &WhitespaceStep{}
}

// Name returns the step name.
func (s *WhitespaceStep) Name() string {
	return "whitespace"
}

// Do executes the whitespace analysis.
func (s *WhitespaceStep) Do(ctx context.Context, sc *ScanContext) error {
	sc.Report.Whitespace = scan.NewWhitespaceAnalyzer().Analyze(sc.Text)
	return nil
}

// SummarizeStep builds the severity digest from the accumulated results.
// It must run after the analysis steps.
type SummarizeStep struct{}

// NewSummarizeStep creates a summarization step.
func NewSummarizeStep() *SummarizeStep {
	return &SummarizeStep{}
}

// Name returns the step name.
func (s *SummarizeStep) Name() string {
	return "summarize"
}

// Do builds the summary.
func (s *SummarizeStep) Do(ctx context.Context, sc *ScanContext) error {
	sc.Report.Summary = model.NewSummary(sc.Report)
	return nil
}

// PersistStep appends the finished report to the scan history database.
//
// Design decision: Persistence is a pipeline step rather than a call in the
// CLI because batch scans then get history for free, and the step list in
// the report shows whether a scan was recorded.
type PersistStep struct {
	// db is the history database to write to.
	db *database.HistoryDB

	// logger for structured logging.
	logger *slog.Logger
}

// PersistStepOption configures a PersistStep.
type PersistStepOption func(*PersistStep)

// WithPersistLogger sets a custom logger for the persist step.
func WithPersistLogger(logger *slog.Logger) PersistStepOption {
	return func(s *PersistStep) {
		s.logger = logger
	}
}

// NewPersistStep creates a persistence step backed by db.
func NewPersistStep(db *database.HistoryDB, opts ...PersistStepOption) *PersistStep {
	s := &PersistStep{
		db:     db,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *PersistStep) Name() string {
	return "persist"
}

// Do stores the report keyed by the input content hash.
func (s *PersistStep) Do(ctx context.Context, sc *ScanContext) error {
	id, err := s.db.SaveScanReport(ctx, sc.Report, InputHash(sc.Text))
	if err != nil {
		return fmt.Errorf("save scan report: %w", err)
	}

	s.logger.Debug("scan report saved",
		"id", id,
		"source", sc.Source,
	)
	return nil
}

// NewScanPipeline creates a pipeline with the standard scan steps in order:
// detection, homoglyph scan, whitespace analysis, then summarization.
// When db is non-nil, a persistence step records the report in the scan
// history.
//
// Design decision: We provide a default pipeline because:
// 1. Most callers want all checks
// 2. Reduces boilerplate in the CLI
// 3. Ensures the summary is built after every analysis step has run
func NewScanPipeline(db *database.HistoryDB, opts ...Option) *Pipeline {
	p := New(opts...)

	p.AddSteps(
		NewDetectStep(),
		NewHomoglyphStep(),
		NewWhitespaceStep(),
		NewSummarizeStep(),
	)

	if db != nil {
		p.AddStep(NewPersistStep(db))
	}

	return p
}
