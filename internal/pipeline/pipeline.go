package pipeline

import (
	"context"
	"log/slog"

	"github.com/macro-dynamic/TracesCleaner/internal/config"
	"github.com/macro-dynamic/TracesCleaner/internal/model"
)

// ScanContext carries one input through the pipeline steps.
type ScanContext struct {
	// Source identifies the input: a file path or "stdin".
	Source string

	// Text is the input being scanned. Steps read it and never modify it.
	Text string

	// Config supplies the scan options steps consult. May be nil, in which
	// case steps fall back to their defaults.
	Config *config.Config

	// Report accumulates the results of each step.
	Report *model.ScanReport
}

// NewScanContext creates a scan context with an empty report shell.
func NewScanContext(source, text string, cfg *config.Config) *ScanContext {
	return &ScanContext{
		Source: source,
		Text:   text,
		Config: cfg,
		Report: model.NewScanReport(source, text),
	}
}

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the accumulated
// scan context from previous steps.
//
// Design decision: We use an interface rather than function types because:
// 1. It allows steps to carry configuration state
// 2. It provides a Name() method for logging and the performed-check list
// 3. It's more extensible for future features (e.g., per-step options)
type Step interface {
	// Do executes the pipeline step.
	// It receives the context for cancellation, and the scan context to fill.
	Do(ctx context.Context, sc *ScanContext) error

	// Name returns the step's name for logging and the performed-check list.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
// It maintains a list of steps and executes them in order.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError determines whether to continue executing steps
	// after one fails. If false, the pipeline stops on first error.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
// This follows the functional options pattern for clean API design.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, the default logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to continue execution
// even when a step fails.
//
// Design decision: This option exists because a persistence failure (e.g.
// a read-only history database) shouldn't discard an otherwise complete
// scan. The default is to stop on error because the analysis steps only
// fail for fundamental problems.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps:           make([]Step, 0),
		continueOnError: false,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence.
// It respects context cancellation and logs each step's execution.
//
// Design decision: We check context.Done() before each step rather than
// during, because the analysis steps are fast single passes over the text.
// This keeps cancellation points between steps while steps stay simple.
//
// Steps that complete are recorded in the report's performed-check list;
// failed steps are not.
func (p *Pipeline) Execute(ctx context.Context, sc *ScanContext) error {
	for _, step := range p.steps {
		// Check for cancellation before starting each step
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
			// Continue with execution
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"source", sc.Source,
		)

		if err := step.Do(ctx, sc); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"source", sc.Source,
				"error", err,
			)

			if !p.continueOnError {
				return err
			}
			continue
		}

		sc.Report.AddPerformedCheck(step.Name())
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
