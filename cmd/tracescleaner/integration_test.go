package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/macro-dynamic/TracesCleaner/internal/config"
	"github.com/macro-dynamic/TracesCleaner/internal/database"
)

// skipIfShort skips the test if -short flag is set.
// Integration tests run full scan pipelines against a real SQLite database.
func skipIfShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
}

// TestIntegrationScanHistoryShow runs a scan that persists to a database,
// then reads the result back through the history helpers.
func TestIntegrationScanHistoryShow(t *testing.T) {
	skipIfShort(t)
	t.Parallel()

	ctx := context.Background()
	tmpDir := t.TempDir()

	inputPath := filepath.Join(tmpDir, "draft.txt")
	if err := os.WriteFile(inputPath, []byte("before​after\n"), 0600); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}

	reportPath := filepath.Join(tmpDir, "report.txt")
	dbDir := filepath.Join(tmpDir, "db")

	cfg := config.NewConfig(
		config.WithSources([]string{inputPath}),
		config.WithOutput(reportPath),
		config.WithSave(true),
		config.WithDBDir(dbDir),
	)

	err := runScan(ctx, cfg, testLogger())
	if !errors.Is(err, errFindingsDetected) {
		t.Fatalf("expected findings, got: %v", err)
	}

	content, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	if !strings.Contains(string(content), inputPath) {
		t.Errorf("expected report to name the source, got %q", string(content))
	}

	// Read the persisted scan back through the history path.
	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		t.Fatalf("failed to reopen database: %v", err)
	}
	defer db.Close()

	records, err := db.RecentScans(ctx, 10)
	if err != nil {
		t.Fatalf("failed to list scans: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 scan record, got %d", len(records))
	}
	if records[0].Source != inputPath {
		t.Errorf("expected source %q, got %q", inputPath, records[0].Source)
	}
	if records[0].TotalHidden != 1 {
		t.Errorf("expected 1 hidden character, got %d", records[0].TotalHidden)
	}

	var listing bytes.Buffer
	if err := listScans(ctx, db, "", 10, &listing); err != nil {
		t.Fatalf("failed to render listing: %v", err)
	}
	if !strings.Contains(listing.String(), inputPath) {
		t.Errorf("expected listing to name the source, got %q", listing.String())
	}

	var shown bytes.Buffer
	if err := showStoredReport(ctx, db, records[0].ID, config.FormatJSON, &shown); err != nil {
		t.Fatalf("failed to re-render stored report: %v", err)
	}
	if !strings.Contains(shown.String(), `"version"`) {
		t.Error("expected JSON rendering of stored report")
	}
	if !strings.Contains(shown.String(), inputPath) {
		t.Error("expected stored report to name the source")
	}
}

// TestIntegrationScanCleanRescan runs the scan, clean, rescan cycle and
// verifies the second scan comes back clean.
func TestIntegrationScanCleanRescan(t *testing.T) {
	skipIfShort(t)
	t.Parallel()

	ctx := context.Background()
	tmpDir := t.TempDir()

	// A zero-width space and a Cyrillic es posing as Latin c.
	inputPath := filepath.Join(tmpDir, "dirty.txt")
	if err := os.WriteFile(inputPath, []byte("a​b сat\n"), 0600); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}

	scanCfg := config.NewConfig(
		config.WithSources([]string{inputPath}),
		config.WithOutput(filepath.Join(tmpDir, "first.txt")),
	)
	err := runScan(ctx, scanCfg, testLogger())
	if !errors.Is(err, errFindingsDetected) {
		t.Fatalf("expected findings on first scan, got: %v", err)
	}

	cleanCfg := config.NewConfig(
		config.WithSources([]string{inputPath}),
		config.WithFixHomoglyphs(true),
	)
	if err := runClean(cleanCfg, true, testLogger()); err != nil {
		t.Fatalf("failed to clean in place: %v", err)
	}

	cleaned, err := os.ReadFile(inputPath)
	if err != nil {
		t.Fatalf("failed to read cleaned file: %v", err)
	}
	if string(cleaned) != "ab cat\n" {
		t.Errorf("expected cleaned content %q, got %q", "ab cat\n", string(cleaned))
	}

	rescanCfg := config.NewConfig(
		config.WithSources([]string{inputPath}),
		config.WithOutput(filepath.Join(tmpDir, "second.txt")),
	)
	if err := runScan(ctx, rescanCfg, testLogger()); err != nil {
		t.Errorf("expected clean rescan, got: %v", err)
	}
}

// TestIntegrationStdinScan scans text arriving on standard input.
// Not parallel because it swaps os.Stdin.
func TestIntegrationStdinScan(t *testing.T) {
	skipIfShort(t)

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	if _, err := w.WriteString("hidden​here"); err != nil {
		t.Fatalf("failed to write to pipe: %v", err)
	}
	w.Close()

	oldStdin := os.Stdin
	os.Stdin = r
	defer func() {
		os.Stdin = oldStdin
		r.Close()
	}()

	reportPath := filepath.Join(t.TempDir(), "report.txt")
	cfg := config.NewConfig(
		config.WithSources([]string{"-"}),
		config.WithOutput(reportPath),
	)

	scanErr := runScan(context.Background(), cfg, testLogger())
	if !errors.Is(scanErr, errFindingsDetected) {
		t.Fatalf("expected findings, got: %v", scanErr)
	}

	content, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	if !strings.Contains(string(content), "stdin") {
		t.Errorf("expected report to label the source as stdin, got %q", string(content))
	}
}

// TestIntegrationInitProfileScan generates a configuration file with init
// and scans with one of its profiles through the full command path.
func TestIntegrationInitProfileScan(t *testing.T) {
	skipIfShort(t)
	t.Setenv("HOME", t.TempDir())

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, ".tracescleaner")

	initRoot := NewRootCmd()
	initRoot.SetArgs([]string{"init", "-o", cfgPath})
	if err := initRoot.Execute(); err != nil {
		t.Fatalf("failed to generate config: %v", err)
	}

	inputPath := filepath.Join(tmpDir, "input.txt")
	if err := os.WriteFile(inputPath, []byte("a​b\n"), 0600); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}
	outPath := filepath.Join(tmpDir, "out.json")

	scanRoot := NewRootCmd()
	scanRoot.SetArgs([]string{
		"scan",
		"--config", cfgPath,
		"--profile", "pre-commit",
		"--no-history",
		"--output", outPath,
		inputPath,
	})

	err := scanRoot.Execute()
	if !errors.Is(err, errFindingsDetected) {
		t.Fatalf("expected findings, got: %v", err)
	}

	// The pre-commit profile selects JSON output.
	content, readErr := os.ReadFile(outPath)
	if readErr != nil {
		t.Fatalf("failed to read output: %v", readErr)
	}
	if !strings.Contains(string(content), `"version"`) {
		t.Errorf("expected JSON output from the pre-commit profile, got %q", string(content))
	}
	if !strings.Contains(string(content), `"report"`) {
		t.Error("expected wrapped report in JSON output")
	}
}

// Example_integrationTest demonstrates how to run integration tests.
func Example_integrationTest() {
	// Run integration tests with:
	//   go test -v ./cmd/tracescleaner/... -run TestIntegration
	//
	// Skip integration tests with:
	//   go test -v -short ./cmd/tracescleaner/...

	fmt.Println("See TestIntegrationScanHistoryShow for a complete example")
	// Output: See TestIntegrationScanHistoryShow for a complete example
}
