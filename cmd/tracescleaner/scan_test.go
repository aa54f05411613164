package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/macro-dynamic/TracesCleaner/internal/config"
	"github.com/macro-dynamic/TracesCleaner/internal/database"
	"github.com/macro-dynamic/TracesCleaner/internal/report"
	"github.com/spf13/cobra"
)

// TestNewScanCmd tests the scan command creation.
func TestNewScanCmd(t *testing.T) {
	t.Parallel()

	cmd := NewScanCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "scan [file...|-]" {
			t.Errorf("expected use 'scan [file...|-]', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("has include-formatting flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("include-formatting")
		if flag == nil {
			t.Fatal("expected include-formatting flag")
		}
		if flag.DefValue != "false" {
			t.Errorf("expected default 'false', got %q", flag.DefValue)
		}
	})

	t.Run("has html flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("html")
		if flag == nil {
			t.Fatal("expected html flag")
		}
		if flag.DefValue != "false" {
			t.Errorf("expected default 'false', got %q", flag.DefValue)
		}
	})

	t.Run("has batch flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("batch")
		if flag == nil {
			t.Fatal("expected batch flag")
		}
		if flag.Shorthand != "b" {
			t.Errorf("expected shorthand 'b', got %q", flag.Shorthand)
		}
		if flag.DefValue != "4" {
			t.Errorf("expected default '4', got %q", flag.DefValue)
		}
	})

	t.Run("has format flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("format")
		if flag == nil {
			t.Fatal("expected format flag")
		}
		if flag.Shorthand != "f" {
			t.Errorf("expected shorthand 'f', got %q", flag.Shorthand)
		}
		if flag.DefValue != config.FormatSimple {
			t.Errorf("expected default %q, got %q", config.FormatSimple, flag.DefValue)
		}
	})

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %q", flag.Shorthand)
		}
	})

	t.Run("has profile flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("profile")
		if flag == nil {
			t.Fatal("expected profile flag")
		}
		if flag.Shorthand != "p" {
			t.Errorf("expected shorthand 'p', got %q", flag.Shorthand)
		}
	})

	t.Run("has no-history flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("no-history")
		if flag == nil {
			t.Fatal("expected no-history flag")
		}
		if flag.DefValue != "false" {
			t.Errorf("expected default 'false', got %q", flag.DefValue)
		}
	})

	t.Run("has recursive flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("recursive")
		if flag == nil {
			t.Fatal("expected recursive flag")
		}
		if flag.Shorthand != "r" {
			t.Errorf("expected shorthand 'r', got %q", flag.Shorthand)
		}
		if flag.DefValue != "false" {
			t.Errorf("expected default 'false', got %q", flag.DefValue)
		}
	})

	t.Run("does not have db-dir flag (uses XDG)", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("db-dir")
		if flag != nil {
			t.Error("db-dir flag should not exist (always uses XDG data directory)")
		}
	})
}

// TestSetupLogger tests the logger setup.
func TestSetupLogger(t *testing.T) {
	t.Parallel()

	t.Run("creates logger for verbose mode", func(t *testing.T) {
		t.Parallel()
		logger := setupLogger(true)
		if logger == nil {
			t.Error("expected non-nil logger")
		}
	})

	t.Run("creates logger for non-verbose mode", func(t *testing.T) {
		t.Parallel()
		logger := setupLogger(false)
		if logger == nil {
			t.Error("expected non-nil logger")
		}
	})
}

// TestGetVerboseFlag tests the verbose flag retrieval.
func TestGetVerboseFlag(t *testing.T) {
	t.Run("returns false when flag not set", func(t *testing.T) {
		cmd := NewScanCmd()
		result := getVerboseFlag(cmd)
		if result {
			t.Error("expected false when flag not set")
		}
	})

	t.Run("returns value from parent verbose flag", func(t *testing.T) {
		root := NewRootCmd()
		_ = root.PersistentFlags().Set("verbose", "true")

		scanCmd, _, err := root.Find([]string{"scan"})
		if err != nil {
			t.Fatalf("failed to find scan command: %v", err)
		}

		result := getVerboseFlag(scanCmd)
		if !result {
			t.Error("expected true from parent verbose flag")
		}
	})
}

// TestNormalizeFormat tests the format alias mapping.
func TestNormalizeFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"text", config.FormatSimple},
		{"simple", config.FormatSimple},
		{"json", config.FormatJSON},
		{"markdown", config.FormatMarkdown},
		{"bogus", "bogus"},
	}
	for _, tt := range tests {
		if got := normalizeFormat(tt.in); got != tt.want {
			t.Errorf("normalizeFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestBuildScanConfig tests configuration building from flags.
func TestBuildScanConfig(t *testing.T) {
	// HOME is redirected so a developer's real ~/.tracescleaner cannot
	// leak into config discovery.
	t.Setenv("HOME", t.TempDir())

	t.Run("builds config with default values", func(t *testing.T) {
		cmd := NewScanCmd()
		cfg, err := buildScanConfig(cmd, []string{"test.txt"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg == nil {
			t.Fatal("expected non-nil config")
		}
		if len(cfg.Sources) != 1 || cfg.Sources[0] != "test.txt" {
			t.Errorf("expected sources [test.txt], got %v", cfg.Sources)
		}
		if cfg.IncludeFormatting {
			t.Error("expected IncludeFormatting to be false")
		}
		if cfg.Format != config.FormatSimple {
			t.Errorf("expected format %q, got %q", config.FormatSimple, cfg.Format)
		}
		if cfg.BatchSize != config.DefaultBatchSize {
			t.Errorf("expected batch size %d, got %d", config.DefaultBatchSize, cfg.BatchSize)
		}
		if !cfg.Save {
			t.Error("expected Save to be true by default")
		}
		if cfg.DBDir != config.XDGDataDir() {
			t.Errorf("expected DBDir %q, got %q", config.XDGDataDir(), cfg.DBDir)
		}
	})

	t.Run("builds config with include-formatting", func(t *testing.T) {
		cmd := NewScanCmd()
		_ = cmd.Flags().Set("include-formatting", "true")
		cfg, err := buildScanConfig(cmd, []string{"test.txt"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !cfg.IncludeFormatting {
			t.Error("expected IncludeFormatting to be true")
		}
	})

	t.Run("builds config with custom batch size", func(t *testing.T) {
		cmd := NewScanCmd()
		_ = cmd.Flags().Set("batch", "8")
		cfg, err := buildScanConfig(cmd, []string{"test.txt"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.BatchSize != 8 {
			t.Errorf("expected BatchSize 8, got %d", cfg.BatchSize)
		}
	})

	t.Run("builds config with json format", func(t *testing.T) {
		cmd := NewScanCmd()
		_ = cmd.Flags().Set("format", "json")
		cfg, err := buildScanConfig(cmd, []string{"test.txt"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Format != config.FormatJSON {
			t.Errorf("expected format %q, got %q", config.FormatJSON, cfg.Format)
		}
	})

	t.Run("accepts text as format alias", func(t *testing.T) {
		cmd := NewScanCmd()
		_ = cmd.Flags().Set("format", "text")
		cfg, err := buildScanConfig(cmd, []string{"test.txt"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Format != config.FormatSimple {
			t.Errorf("expected format %q, got %q", config.FormatSimple, cfg.Format)
		}
	})

	t.Run("no-history disables saving", func(t *testing.T) {
		cmd := NewScanCmd()
		_ = cmd.Flags().Set("no-history", "true")
		cfg, err := buildScanConfig(cmd, []string{"test.txt"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Save {
			t.Error("expected Save to be false with --no-history")
		}
	})

	t.Run("builds config with output file", func(t *testing.T) {
		cmd := NewScanCmd()
		_ = cmd.Flags().Set("output", "/tmp/report.json")
		cfg, err := buildScanConfig(cmd, []string{"test.txt"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Output != "/tmp/report.json" {
			t.Errorf("expected Output '/tmp/report.json', got %q", cfg.Output)
		}
	})

	t.Run("builds config with multiple sources", func(t *testing.T) {
		cmd := NewScanCmd()
		cfg, err := buildScanConfig(cmd, []string{"a.txt", "b.txt", "c.txt"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(cfg.Sources) != 3 {
			t.Errorf("expected 3 sources, got %d", len(cfg.Sources))
		}
	})

	t.Run("builds config with recursive", func(t *testing.T) {
		cmd := NewScanCmd()
		_ = cmd.Flags().Set("recursive", "true")
		cfg, err := buildScanConfig(cmd, []string{"docs"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !cfg.Recursive {
			t.Error("expected Recursive to be true")
		}
	})
}

// TestBuildScanConfigWithConfigFile tests profile application from a
// configuration file.
func TestBuildScanConfigWithConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	writeConfigFile := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), ".tracescleaner")
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}
		return path
	}

	findScanCmd := func(t *testing.T, configPath string) *cobra.Command {
		t.Helper()
		root := NewRootCmd()
		_ = root.PersistentFlags().Set("config", configPath)
		scanCmd, _, err := root.Find([]string{"scan"})
		if err != nil {
			t.Fatalf("failed to find scan command: %v", err)
		}
		return scanCmd
	}

	t.Run("applies defaults section without profile", func(t *testing.T) {
		configPath := writeConfigFile(t, `defaults:
  include_formatting: true
  format: markdown
`)
		scanCmd := findScanCmd(t, configPath)

		cfg, err := buildScanConfig(scanCmd, []string{"test.txt"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !cfg.IncludeFormatting {
			t.Error("expected IncludeFormatting from defaults")
		}
		if cfg.Format != config.FormatMarkdown {
			t.Errorf("expected format %q, got %q", config.FormatMarkdown, cfg.Format)
		}
	})

	t.Run("applies named profile", func(t *testing.T) {
		configPath := writeConfigFile(t, `profiles:
  strict:
    include_formatting: true
    format: json
`)
		scanCmd := findScanCmd(t, configPath)
		_ = scanCmd.Flags().Set("profile", "strict")

		cfg, err := buildScanConfig(scanCmd, []string{"test.txt"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !cfg.IncludeFormatting {
			t.Error("expected IncludeFormatting from profile")
		}
		if cfg.Format != config.FormatJSON {
			t.Errorf("expected format %q, got %q", config.FormatJSON, cfg.Format)
		}
	})

	t.Run("command line flag overrides profile", func(t *testing.T) {
		configPath := writeConfigFile(t, `profiles:
  strict:
    format: markdown
`)
		scanCmd := findScanCmd(t, configPath)
		_ = scanCmd.Flags().Set("profile", "strict")
		_ = scanCmd.Flags().Set("format", "json")

		cfg, err := buildScanConfig(scanCmd, []string{"test.txt"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Format != config.FormatJSON {
			t.Errorf("expected flag to win, got format %q", cfg.Format)
		}
	})

	t.Run("returns error for unknown profile", func(t *testing.T) {
		configPath := writeConfigFile(t, `profiles:
  strict:
    format: json
`)
		scanCmd := findScanCmd(t, configPath)
		_ = scanCmd.Flags().Set("profile", "nonexistent")

		_, err := buildScanConfig(scanCmd, []string{"test.txt"})
		if err == nil {
			t.Fatal("expected error for unknown profile")
		}
		if !errors.Is(err, config.ErrProfileNotFound) {
			t.Errorf("expected ErrProfileNotFound, got %v", err)
		}
	})

	t.Run("returns error for missing explicit config file", func(t *testing.T) {
		scanCmd := findScanCmd(t, filepath.Join(t.TempDir(), "missing.yaml"))

		_, err := buildScanConfig(scanCmd, []string{"test.txt"})
		if err == nil {
			t.Fatal("expected error for missing config file")
		}
	})

	t.Run("returns error for profile without config file", func(t *testing.T) {
		cmd := NewScanCmd()
		_ = cmd.Flags().Set("profile", "strict")

		_, err := buildScanConfig(cmd, []string{"test.txt"})
		if err == nil {
			t.Fatal("expected error for profile without config file")
		}
	})

	t.Run("returns error for invalid config file", func(t *testing.T) {
		configPath := writeConfigFile(t, "{invalid yaml")
		scanCmd := findScanCmd(t, configPath)

		_, err := buildScanConfig(scanCmd, []string{"test.txt"})
		if err == nil {
			t.Fatal("expected error for invalid config file")
		}
	})
}

// TestOpenOutput tests report destination resolution.
func TestOpenOutput(t *testing.T) {
	t.Parallel()

	t.Run("empty path falls back to stdout", func(t *testing.T) {
		t.Parallel()
		w, cleanup, err := openOutput("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer cleanup()

		if w != os.Stdout {
			t.Error("expected stdout writer for empty path")
		}
	})

	t.Run("creates output file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "report.txt")

		w, cleanup, err := openOutput(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := w.Write([]byte("hello")); err != nil {
			t.Fatalf("failed to write: %v", err)
		}
		cleanup()

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read output file: %v", err)
		}
		if string(content) != "hello" {
			t.Errorf("expected 'hello', got %q", string(content))
		}
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "subdir", "nested", "report.txt")

		_, cleanup, err := openOutput(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cleanup()

		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Error("expected output file to be created in nested directory")
		}
	})
}

// TestNewReportWriter tests writer selection per format.
func TestNewReportWriter(t *testing.T) {
	t.Parallel()

	t.Run("json format", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig(config.WithFormat(config.FormatJSON))
		w := newReportWriter(os.Stdout, cfg)
		if _, ok := w.(*report.FullJSONWriter); !ok {
			t.Errorf("expected *report.FullJSONWriter, got %T", w)
		}
	})

	t.Run("markdown format", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig(config.WithFormat(config.FormatMarkdown))
		w := newReportWriter(os.Stdout, cfg)
		if _, ok := w.(*report.MarkdownWriter); !ok {
			t.Errorf("expected *report.MarkdownWriter, got %T", w)
		}
	})

	t.Run("simple format", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		w := newReportWriter(os.Stdout, cfg)
		if _, ok := w.(*report.SimpleWriter); !ok {
			t.Errorf("expected *report.SimpleWriter, got %T", w)
		}
	})
}

// testLogger returns a quiet logger for exercising run functions.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// TestExpandSources tests resolution of files, stdin, and directories
// into concrete scan inputs.
func TestExpandSources(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("passes plain files through", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "one.txt")
		if err := os.WriteFile(path, []byte("text"), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		cfg := config.NewConfig(config.WithSources([]string{path}))
		got, err := expandSources(ctx, cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0] != path {
			t.Errorf("expected [%s], got %v", path, got)
		}
	})

	t.Run("defaults to stdin without sources", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		got, err := expandSources(ctx, cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0] != "-" {
			t.Errorf("expected [-], got %v", got)
		}
	})

	t.Run("passes explicit stdin marker through", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig(config.WithSources([]string{"-"}))
		got, err := expandSources(ctx, cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0] != "-" {
			t.Errorf("expected [-], got %v", got)
		}
	})

	t.Run("rejects directory without recursive", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		cfg := config.NewConfig(config.WithSources([]string{dir}))
		_, err := expandSources(ctx, cfg)
		if err == nil {
			t.Fatal("expected error for directory source")
		}
		if !strings.Contains(err.Error(), "use --recursive") {
			t.Errorf("expected --recursive hint, got: %v", err)
		}
	})

	t.Run("expands directory with recursive", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(dir, "sub"), 0750); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		for _, name := range []string{"a.txt", filepath.Join("sub", "b.txt")} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("text"), 0600); err != nil {
				t.Fatalf("failed to write file: %v", err)
			}
		}

		cfg := config.NewConfig(
			config.WithSources([]string{dir}),
			config.WithRecursive(true),
		)
		got, err := expandSources(ctx, cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{
			filepath.Join(dir, "a.txt"),
			filepath.Join(dir, "sub", "b.txt"),
		}
		if len(got) != len(want) {
			t.Fatalf("expected %d files, got %d: %v", len(want), len(got), got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("file %d: expected %q, got %q", i, want[i], got[i])
			}
		}
	})

	t.Run("mixes files and directories", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		single := filepath.Join(dir, "single.txt")
		if err := os.WriteFile(single, []byte("text"), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		tree := filepath.Join(dir, "tree")
		if err := os.MkdirAll(tree, 0750); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		nested := filepath.Join(tree, "nested.txt")
		if err := os.WriteFile(nested, []byte("text"), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		cfg := config.NewConfig(
			config.WithSources([]string{single, tree}),
			config.WithRecursive(true),
		)
		got, err := expandSources(ctx, cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{single, nested}
		if len(got) != len(want) {
			t.Fatalf("expected %d sources, got %d: %v", len(want), len(got), got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("source %d: expected %q, got %q", i, want[i], got[i])
			}
		}
	})

	t.Run("returns error for missing source", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig(config.WithSources([]string{filepath.Join(t.TempDir(), "missing.txt")}))
		_, err := expandSources(ctx, cfg)
		if err == nil {
			t.Fatal("expected error for missing source")
		}
	})
}

// TestCollectScanReports tests scanning with and without the batch path.
func TestCollectScanReports(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	logger := testLogger()

	t.Run("scans a single file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "one.txt")
		if err := os.WriteFile(path, []byte("a​b"), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		cfg := config.NewConfig(config.WithSources([]string{path}))
		reports, err := collectScanReports(ctx, cfg, []string{path}, nil, logger)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(reports) != 1 {
			t.Fatalf("expected 1 report, got %d", len(reports))
		}
		if reports[0].Source != path {
			t.Errorf("expected source %q, got %q", path, reports[0].Source)
		}
		if reports[0].Detection == nil || reports[0].Detection.Total != 1 {
			t.Error("expected one hidden character finding")
		}
	})

	t.Run("scans multiple files in input order", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		paths := make([]string, 0, 3)
		for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, []byte("text "+name), 0600); err != nil {
				t.Fatalf("failed to write file: %v", err)
			}
			paths = append(paths, path)
		}

		cfg := config.NewConfig(config.WithSources(paths))
		reports, err := collectScanReports(ctx, cfg, paths, nil, logger)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(reports) != 3 {
			t.Fatalf("expected 3 reports, got %d", len(reports))
		}
		for i, rep := range reports {
			if rep.Source != paths[i] {
				t.Errorf("report %d: expected source %q, got %q", i, paths[i], rep.Source)
			}
		}
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "missing.txt")

		cfg := config.NewConfig()
		_, err := collectScanReports(ctx, cfg, []string{path}, nil, logger)
		if err == nil {
			t.Fatal("expected error for missing file")
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "one.txt")
		if err := os.WriteFile(path, []byte("text"), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		cfg := config.NewConfig()
		_, err := collectScanReports(cancelled, cfg, []string{path}, nil, logger)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

// TestRunScan tests the full scan run.
func TestRunScan(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	logger := testLogger()

	t.Run("returns findings sentinel for dirty input", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		input := filepath.Join(dir, "dirty.txt")
		if err := os.WriteFile(input, []byte("a​b"), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		output := filepath.Join(dir, "report.txt")

		cfg := config.NewConfig(
			config.WithSources([]string{input}),
			config.WithOutput(output),
		)

		err := runScan(ctx, cfg, logger)
		if !errors.Is(err, errFindingsDetected) {
			t.Fatalf("expected errFindingsDetected, got %v", err)
		}

		content, err := os.ReadFile(output)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if len(content) == 0 {
			t.Error("expected report to be written before the sentinel error")
		}
	})

	t.Run("returns nil for clean input", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		input := filepath.Join(dir, "clean.txt")
		if err := os.WriteFile(input, []byte("plain text\n"), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		output := filepath.Join(dir, "report.txt")

		cfg := config.NewConfig(
			config.WithSources([]string{input}),
			config.WithOutput(output),
		)

		if err := runScan(ctx, cfg, logger); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("scans a directory recursively", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		docs := filepath.Join(dir, "docs")
		if err := os.MkdirAll(filepath.Join(docs, "sub"), 0750); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if err := os.WriteFile(filepath.Join(docs, "clean.txt"), []byte("plain\n"), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		if err := os.WriteFile(filepath.Join(docs, "sub", "dirty.txt"), []byte("a​b"), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		output := filepath.Join(dir, "report.txt")

		cfg := config.NewConfig(
			config.WithSources([]string{docs}),
			config.WithRecursive(true),
			config.WithOutput(output),
		)

		err := runScan(ctx, cfg, logger)
		if !errors.Is(err, errFindingsDetected) {
			t.Fatalf("expected errFindingsDetected, got %v", err)
		}

		content, err := os.ReadFile(output)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.Contains(string(content), filepath.Join("sub", "dirty.txt")) {
			t.Error("expected report to cover the nested dirty file")
		}
	})

	t.Run("saves report to history database", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		input := filepath.Join(dir, "dirty.txt")
		if err := os.WriteFile(input, []byte("a​b"), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		output := filepath.Join(dir, "report.txt")
		dbDir := filepath.Join(dir, "db")

		cfg := config.NewConfig(
			config.WithSources([]string{input}),
			config.WithOutput(output),
			config.WithSave(true),
			config.WithDBDir(dbDir),
		)

		err := runScan(ctx, cfg, logger)
		if !errors.Is(err, errFindingsDetected) {
			t.Fatalf("expected errFindingsDetected, got %v", err)
		}

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
			t.Fatalf("expected 1 saved scan, got %d", len(records))
		}
		if records[0].Source != input {
			t.Errorf("expected source %q, got %q", input, records[0].Source)
		}
		if records[0].TotalHidden != 1 {
			t.Errorf("expected 1 hidden character, got %d", records[0].TotalHidden)
		}
	})
}

// TestRunScanCmdExitBehavior tests the scan command through the root
// command, covering the exit-code contract's error classes.
func TestRunScanCmdExitBehavior(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	t.Run("findings surface as sentinel error", func(t *testing.T) {
		dir := t.TempDir()
		input := filepath.Join(dir, "dirty.txt")
		if err := os.WriteFile(input, []byte("a​b"), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		output := filepath.Join(dir, "report.txt")

		root := NewRootCmd()
		root.SetArgs([]string{"scan", input, "--no-history", "--output", output})

		err := root.Execute()
		if !errors.Is(err, errFindingsDetected) {
			t.Fatalf("expected errFindingsDetected, got %v", err)
		}
	})

	t.Run("missing input is an operational error", func(t *testing.T) {
		root := NewRootCmd()
		root.SetArgs([]string{"scan", filepath.Join(t.TempDir(), "missing.txt"), "--no-history"})

		err := root.Execute()
		if err == nil {
			t.Fatal("expected error for missing input")
		}
		if errors.Is(err, errFindingsDetected) {
			t.Error("missing input must not be reported as findings")
		}
	})

	t.Run("invalid format is an operational error", func(t *testing.T) {
		dir := t.TempDir()
		input := filepath.Join(dir, "ok.txt")
		if err := os.WriteFile(input, []byte("fine"), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		root := NewRootCmd()
		root.SetArgs([]string{"scan", input, "--no-history", "--format", "xml"})

		err := root.Execute()
		if err == nil {
			t.Fatal("expected error for invalid format")
		}
		if !strings.Contains(err.Error(), "invalid report format") {
			t.Errorf("expected invalid format error, got: %v", err)
		}
	})
}
