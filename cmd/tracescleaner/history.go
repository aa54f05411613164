package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/macro-dynamic/TracesCleaner/internal/config"
	"github.com/macro-dynamic/TracesCleaner/internal/database"
	"github.com/spf13/cobra"
)

// defaultHistoryLimit caps listings so an old database does not flood the
// terminal.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past scans and character statistics",
		Long: `History lists scan reports saved by previous runs, newest first.

With --source it narrows the listing to one input path, which shows how a
repeatedly scanned document evolved. With --top-chars it lists the hidden
characters seen most often across all scans instead.

Examples:
  # Recent scans
  tracescleaner history

  # History of one document
  tracescleaner history --source report.md

  # Most frequently seen hidden characters
  tracescleaner history --top-chars

  # Re-render an old report
  tracescleaner history show 12 --format markdown`,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of rows to list")
	cmd.Flags().String("source", "",
		"Only list scans of the given source path")
	cmd.Flags().Bool("top-chars", false,
		"List the most frequently seen hidden characters instead of scans")

	cmd.AddCommand(NewHistoryShowCmd())

	return cmd
}

// NewHistoryShowCmd creates the history show subcommand.
func NewHistoryShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Re-render a stored scan report",
		Long: `Show rehydrates the report saved under the given ID and renders it in
any report format, so an old scan can be turned into JSON or Markdown
after the fact. The ID column of the history listing provides the IDs.`,
		Args: cobra.ExactArgs(1),
		RunE: runHistoryShowCmd,
	}

	cmd.Flags().StringP("format", "f", config.FormatSimple,
		"Report format: simple, json, or markdown")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path instead of stdout")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	source, err := cmd.Flags().GetString("source")
	if err != nil {
		return err
	}
	topChars, err := cmd.Flags().GetBool("top-chars")
	if err != nil {
		return err
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	db, err := openHistoryDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	out := cmd.OutOrStdout()

	if topChars {
		return listTopCharacters(ctx, db, limit, out)
	}
	return listScans(ctx, db, source, limit, out)
}

// runHistoryShowCmd executes the history show subcommand.
func runHistoryShowCmd(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid scan ID %q: %w", args[0], err)
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	db, err := openHistoryDB()
	if err != nil {
		return err
	}
	defer db.Close()

	output, cleanup, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer cleanup()

	return showStoredReport(context.Background(), db, id, format, output)
}

// openHistoryDB opens the history database in its default location.
func openHistoryDB() (*database.HistoryDB, error) {
	return database.Open(config.XDGDataDir(), database.DefaultOptions())
}

// listScans writes recent scan records as an aligned table. An empty source
// lists scans of every input.
func listScans(ctx context.Context, db *database.HistoryDB, source string, limit int, out io.Writer) error {
	var records []database.ScanRecord
	var err error
	if source == "" {
		records, err = db.RecentScans(ctx, limit)
	} else {
		records, err = db.ScansBySource(ctx, source, limit)
	}
	if err != nil {
		return fmt.Errorf("failed to list scan history: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No scans recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "  %-6s  %-20s  %-7s  %-11s  %-11s  %s\n",
		"ID", "Date", "Hidden", "Homoglyphs", "Whitespace", "Source")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 76))
	for _, r := range records {
		fmt.Fprintf(out, "  %-6d  %-20s  %-7d  %-11d  %-11d  %s\n",
			r.ID,
			r.ScannedAt.Format("2006-01-02 15:04:05"),
			r.TotalHidden,
			r.TotalHomoglyphs,
			r.TotalWhitespace,
			r.Source,
		)
	}
	return nil
}

// listTopCharacters writes the cross-scan character frequency table.
func listTopCharacters(ctx context.Context, db *database.HistoryDB, limit int, out io.Writer) error {
	stats, err := db.TopCharacters(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list character statistics: %w", err)
	}

	if len(stats) == 0 {
		fmt.Fprintln(out, "No hidden characters recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "  %-8s  %-36s  %-13s  %-7s  %s\n",
		"Code", "Name", "Category", "Count", "Last Seen")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 88))
	for _, s := range stats {
		fmt.Fprintf(out, "  %-8s  %-36s  %-13s  %-7d  %s\n",
			s.CodeLabel,
			s.Name,
			s.Category,
			s.TotalCount,
			s.LastSeen.Format("2006-01-02 15:04:05"),
		)
	}
	return nil
}

// showStoredReport rehydrates the report with the given ID and renders it.
func showStoredReport(ctx context.Context, db *database.HistoryDB, id int64, format string, output io.Writer) error {
	scanReport, err := db.GetScanReport(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load scan report: %w", err)
	}
	if scanReport == nil {
		return fmt.Errorf("no scan with ID %d", id)
	}

	cfg := config.NewConfig(config.WithFormat(normalizeFormat(format)))
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	return newReportWriter(output, cfg).Write(scanReport)
}
