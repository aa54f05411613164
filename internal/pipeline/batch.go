package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/macro-dynamic/TracesCleaner/internal/config"
	"github.com/macro-dynamic/TracesCleaner/internal/model"
	"golang.org/x/sync/errgroup"
)

// BatchProcessor handles concurrent scanning of multiple input files.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding batch
// functionality to Pipeline because:
// 1. It keeps the Pipeline focused on single-scan execution
// 2. It allows different batch strategies (e.g., rate limiting, retries)
// 3. It provides cleaner separation of concerns
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each scan.
	// We use a factory to ensure each scan gets a fresh pipeline instance.
	pipelineFactory func() *Pipeline

	// cfg supplies the scan options attached to each scan context.
	cfg *config.Config

	// concurrency is the maximum number of concurrent scans.
	concurrency int

	// extractHTML forces HTML text extraction for every file, regardless
	// of extension.
	extractHTML bool

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed scan reports in input order.
	// Access is synchronized via mutex.
	results []*model.ScanReport
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent scans.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithHTMLExtraction forces HTML text extraction for every file.
// Without it, extraction applies only to .html and .htm files.
func WithHTMLExtraction(extract bool) BatchOption {
	return func(b *BatchProcessor) {
		b.extractHTML = extract
	}
}

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called for each scan to create a fresh
// pipeline instance. This ensures that pipeline state doesn't leak between
// scans and allows for per-scan customization if needed.
func NewBatchProcessor(cfg *config.Config, pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		cfg:             cfg,
		concurrency:     4,
		results:         make([]*model.ScanReport, 0),
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch scans multiple files concurrently.
// It respects the configured concurrency limit and context cancellation.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each file gets its own goroutine, but only 'concurrency' goroutines
// run simultaneously.
//
// Results keep the input order. The first failure (unreadable file,
// persistence error) cancels the remaining scans and is returned; slots
// for files that did not complete stay nil.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, paths []string) ([]*model.ScanReport, error) {
	bp.logger.Info("starting batch scan",
		"total_files", len(paths),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	// Pre-allocate results slice to maintain order
	bp.results = make([]*model.ScanReport, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			// Check for cancellation before starting
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Debug("scanning file",
				"path", path,
				"index", i+1,
				"total", len(paths),
			)

			sc, err := bp.contextFor(path)
			if err != nil {
				return err
			}

			pipeline := bp.pipelineFactory()
			if err := pipeline.Execute(ctx, sc); err != nil {
				return err
			}

			bp.mu.Lock()
			bp.results[i] = sc.Report
			bp.mu.Unlock()

			return nil
		})
	}

	err := g.Wait()

	elapsed := time.Since(startTime)
	bp.logger.Info("batch scan complete",
		"total_files", len(paths),
		"elapsed", elapsed,
	)

	return bp.results, err
}

// contextFor reads one file and builds its scan context.
func (bp *BatchProcessor) contextFor(path string) (*ScanContext, error) {
	return ScanContextForFile(path, bp.cfg, bp.extractHTML)
}
