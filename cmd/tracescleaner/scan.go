package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/macro-dynamic/TracesCleaner/internal/config"
	"github.com/macro-dynamic/TracesCleaner/internal/database"
	"github.com/macro-dynamic/TracesCleaner/internal/log"
	"github.com/macro-dynamic/TracesCleaner/internal/model"
	"github.com/macro-dynamic/TracesCleaner/internal/pipeline"
	"github.com/macro-dynamic/TracesCleaner/internal/report"
	"github.com/macro-dynamic/TracesCleaner/internal/walker"
	"github.com/spf13/cobra"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [file...|-]",
		Short: "Scan text for hidden Unicode characters and anomalies",
		Long: `Scan inspects text for character-level artifacts without modifying it.

It runs three checks over each input:
- Hidden characters (zero-width marks, bidi controls, BOM, variation selectors)
- Homoglyphs (Cyrillic/Greek lookalikes substituted for Latin letters)
- Whitespace anomalies (trailing spaces, double spaces, unusual space widths)

Reports are saved to the scan history database unless --no-history is given.
The exit code is 1 when any input has findings and 0 when everything is
clean, so scan works as a CI gate.

Examples:
  # Scan a single file
  tracescleaner scan document.txt

  # Scan a clipboard paste from stdin
  pbpaste | tracescleaner scan -

  # Scan several files concurrently
  tracescleaner scan docs/*.md --batch 8

  # Scan every text file under a directory
  tracescleaner scan --recursive docs/

  # Machine-readable report for tooling
  tracescleaner scan --format json document.txt

  # Scan the visible text of a saved web page
  tracescleaner scan page.html

  # Apply a named profile from .tracescleaner
  tracescleaner scan --profile paste-check document.txt

Configuration file (.tracescleaner) example:
  defaults:
    normalize: true
  profiles:
    paste-check:
      include_formatting: false
      format: simple
    pre-commit:
      format: json`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	// Detection flags
	cmd.Flags().Bool("include-formatting", false,
		"Also flag tab, line feed, and carriage return")
	cmd.Flags().Bool("html", false,
		"Extract visible text from HTML before scanning, regardless of file extension")

	// Source expansion flags
	cmd.Flags().BoolP("recursive", "r", false,
		"Expand directories given as sources into the text files they contain")

	// Batch scanning flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent scans when multiple files are given")

	// Report flags
	cmd.Flags().StringP("format", "f", config.FormatSimple,
		"Report format: simple, json, or markdown")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// Profile and history flags
	cmd.Flags().StringP("profile", "p", "",
		"Named profile from the configuration file")
	cmd.Flags().Bool("no-history", false,
		"Do not save the scan report to the history database")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildScanConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// getConfigFlag retrieves the config file path from the command or its parent.
func getConfigFlag(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		path, err = cmd.Root().PersistentFlags().GetString("config")
		if err != nil {
			return ""
		}
	}
	return path
}

// buildScanConfig creates a Config from cobra command flags.
// Profile values from the configuration file apply first; flags given on
// the command line override them.
func buildScanConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Profile, err = cmd.Flags().GetString("profile")
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath = getConfigFlag(cmd)

	if err := applyProfileConfig(cfg); err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("include-formatting") {
		cfg.IncludeFormatting, err = cmd.Flags().GetBool("include-formatting")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("format") {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return nil, err
		}
		cfg.Format = normalizeFormat(format)
	}

	cfg.Output, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.ExtractHTML, err = cmd.Flags().GetBool("html")
	if err != nil {
		return nil, err
	}

	cfg.Recursive, err = cmd.Flags().GetBool("recursive")
	if err != nil {
		return nil, err
	}

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.Save = !noHistory
	cfg.DBDir = config.XDGDataDir()

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.Sources = args

	return cfg, nil
}

// applyProfileConfig resolves the configuration file and overlays the
// selected profile onto cfg.
// If the user explicitly specified a config file path, a missing file is an
// error. If no path was specified, a missing file is fine unless a profile
// was requested, because the profile has to come from somewhere.
func applyProfileConfig(cfg *config.Config) error {
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath == "" {
		if explicitConfigPath {
			return fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
		}
		if cfg.Profile != "" {
			return fmt.Errorf("profile %q requested but no configuration file found", cfg.Profile)
		}
		return nil
	}

	file, err := config.LoadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}

	profile, err := file.GetProfile(cfg.Profile)
	if err != nil {
		return fmt.Errorf("profile %q: %w", cfg.Profile, err)
	}
	cfg.ApplyProfile(profile)

	return nil
}

// normalizeFormat maps accepted aliases onto the canonical format names.
func normalizeFormat(format string) string {
	if format == "text" {
		return config.FormatSimple
	}
	return format
}

// setupLogger creates a structured logger based on verbosity setting.
// Attribute values are escaped before writing because log lines routinely
// quote scanned text, which contains the very characters being hunted.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return log.NewSafeLogger(os.Stderr, level)
}

// runScan executes the scan.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	sources, err := expandSources(ctx, cfg)
	if err != nil {
		return err
	}

	logger.Info("starting scan",
		"sources", len(sources),
		"format", cfg.Format,
		"save", cfg.Save,
	)

	var db *database.HistoryDB
	if cfg.Save {
		dir := cfg.DBDir
		if dir == "" {
			dir = config.XDGDataDir()
		}
		var err error
		db, err = database.Open(dir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close()
		logger.Debug("history database opened", "dir", dir)
	}

	reports, err := collectScanReports(ctx, cfg, sources, db, logger)
	if err != nil {
		return err
	}

	output, cleanup, err := openOutput(cfg.Output)
	if err != nil {
		return err
	}
	defer cleanup()

	writer := newReportWriter(output, cfg)
	for _, scanReport := range reports {
		if err := writer.Write(scanReport); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	for _, scanReport := range reports {
		if !scanReport.IsClean() {
			return errFindingsDetected
		}
	}
	return nil
}

// expandSources resolves the configured sources into concrete scan inputs.
// Empty sources mean stdin. Directories expand into the text files they
// contain when recursion is enabled and are an error otherwise, so a stray
// directory argument does not silently scan nothing.
func expandSources(ctx context.Context, cfg *config.Config) ([]string, error) {
	sources := cfg.Sources
	if len(sources) == 0 {
		sources = []string{"-"}
	}

	expanded := make([]string, 0, len(sources))
	var w *walker.Walker
	for _, src := range sources {
		if src == "-" {
			expanded = append(expanded, src)
			continue
		}

		info, err := os.Stat(src)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", src, err)
		}
		if !info.IsDir() {
			expanded = append(expanded, src)
			continue
		}

		if !cfg.Recursive {
			return nil, fmt.Errorf("%s is a directory (use --recursive)", src)
		}
		if w == nil {
			w = walker.New()
		}
		files, err := w.Walk(ctx, src)
		if err != nil {
			return nil, err
		}
		expanded = append(expanded, files...)
	}
	return expanded, nil
}

// collectScanReports scans every source and returns the reports in input
// order. Multiple files scan concurrently when the batch size allows it.
func collectScanReports(ctx context.Context, cfg *config.Config, sources []string, db *database.HistoryDB, logger *slog.Logger) ([]*model.ScanReport, error) {
	factory := func() *pipeline.Pipeline {
		return pipeline.NewScanPipeline(db, pipeline.WithLogger(logger))
	}

	if len(sources) > 1 && cfg.BatchSize > 1 {
		bp := pipeline.NewBatchProcessor(cfg, factory,
			pipeline.WithConcurrency(cfg.BatchSize),
			pipeline.WithBatchLogger(logger),
			pipeline.WithHTMLExtraction(cfg.ExtractHTML),
		)
		return bp.ProcessBatch(ctx, sources)
	}

	reports := make([]*model.ScanReport, 0, len(sources))
	for _, src := range sources {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		sc, err := pipeline.ScanContextForFile(src, cfg, cfg.ExtractHTML)
		if err != nil {
			return nil, err
		}

		if err := factory().Execute(ctx, sc); err != nil {
			return nil, fmt.Errorf("scan %s: %w", sc.Source, err)
		}
		reports = append(reports, sc.Report)
	}
	return reports, nil
}

// openOutput resolves the report destination. The cleanup function closes
// the file when one was opened and is a no-op for stdout.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// newReportWriter builds the report writer for the configured format.
func newReportWriter(output io.Writer, cfg *config.Config) report.Writer {
	switch cfg.Format {
	case config.FormatJSON:
		return report.NewFullJSONWriter(output, getVersion())
	case config.FormatMarkdown:
		return report.NewMarkdownWriter(output)
	default:
		var opts []report.SimpleWriterOption
		if cfg.Verbose {
			opts = append(opts, report.WithVerbose(true))
		}
		return report.NewSimpleWriter(output, opts...)
	}
}
