package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/macro-dynamic/TracesCleaner/internal/cleaner"
	"github.com/macro-dynamic/TracesCleaner/internal/config"
	"github.com/macro-dynamic/TracesCleaner/internal/pipeline"
	"github.com/spf13/cobra"
)

// NewCleanCmd creates the clean command.
func NewCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [file...|-]",
		Short: "Remove hidden Unicode characters from text",
		Long: `Clean strips character-level artifacts and prints the sanitized text.

By default it removes hidden characters and supplementary-plane tag
characters, normalizes to NFC, trims trailing whitespace, and collapses
double spaces. HTML stripping and homoglyph folding are opt-in because
they rewrite visible content.

Examples:
  # Clean a file to stdout
  tracescleaner clean document.txt

  # Clean a clipboard paste
  pbpaste | tracescleaner clean - | pbcopy

  # Rewrite files in place
  tracescleaner clean --in-place docs/*.md

  # Also fold Cyrillic and Greek lookalikes to ASCII
  tracescleaner clean --fix-homoglyphs suspicious.txt

  # Strip markup from copied rich text
  tracescleaner clean --strip-html pasted.html`,
		Args: cobra.ArbitraryArgs,
		RunE: runCleanCmd,
	}

	// Cleaning step flags
	cmd.Flags().Bool("strip-html", false,
		"Remove HTML tags and decode entities before cleaning")
	cmd.Flags().Bool("fix-homoglyphs", false,
		"Replace Cyrillic and Greek lookalikes with their ASCII equivalents")
	cmd.Flags().Bool("no-normalize", false,
		"Skip NFC normalization")

	// Output flags
	cmd.Flags().StringP("output", "o", "",
		"Write cleaned text to specified file path instead of stdout")
	cmd.Flags().BoolP("in-place", "i", false,
		"Rewrite each input file with its cleaned content")

	// Profile flag
	cmd.Flags().StringP("profile", "p", "",
		"Named profile from the configuration file")

	return cmd
}

// runCleanCmd executes the clean command.
func runCleanCmd(cmd *cobra.Command, args []string) error {
	cfg, inPlace, err := buildCleanConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	return runClean(cfg, inPlace, logger)
}

// buildCleanConfig creates a Config from cobra command flags.
// Profile values from the configuration file apply first; flags given on
// the command line override them.
func buildCleanConfig(cmd *cobra.Command, args []string) (*config.Config, bool, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Profile, err = cmd.Flags().GetString("profile")
	if err != nil {
		return nil, false, err
	}
	cfg.ConfigFilePath = getConfigFlag(cmd)

	if err := applyProfileConfig(cfg); err != nil {
		return nil, false, err
	}

	if cmd.Flags().Changed("strip-html") {
		cfg.StripHTML, err = cmd.Flags().GetBool("strip-html")
		if err != nil {
			return nil, false, err
		}
	}

	if cmd.Flags().Changed("fix-homoglyphs") {
		cfg.FixHomoglyphs, err = cmd.Flags().GetBool("fix-homoglyphs")
		if err != nil {
			return nil, false, err
		}
	}

	if cmd.Flags().Changed("no-normalize") {
		noNormalize, err := cmd.Flags().GetBool("no-normalize")
		if err != nil {
			return nil, false, err
		}
		cfg.Normalize = !noNormalize
	}

	cfg.Output, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, false, err
	}

	inPlace, err := cmd.Flags().GetBool("in-place")
	if err != nil {
		return nil, false, err
	}

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.Sources = args

	return cfg, inPlace, nil
}

// runClean executes the clean.
func runClean(cfg *config.Config, inPlace bool, logger *slog.Logger) error {
	sources := cfg.Sources
	if len(sources) == 0 {
		sources = []string{"-"}
	}

	if inPlace {
		if cfg.Output != "" {
			return fmt.Errorf("cannot combine --in-place with --output")
		}
		for _, src := range sources {
			if src == "-" {
				return fmt.Errorf("cannot clean stdin in place")
			}
		}
	}

	c := cleaner.NewCleaner(
		cleaner.WithStripHTML(cfg.StripHTML),
		cleaner.WithFixHomoglyphs(cfg.FixHomoglyphs),
		cleaner.WithNormalize(cfg.Normalize),
	)

	logger.Info("starting clean",
		"sources", len(sources),
		"strip_html", cfg.StripHTML,
		"fix_homoglyphs", cfg.FixHomoglyphs,
		"normalize", cfg.Normalize,
	)

	if inPlace {
		for _, src := range sources {
			if err := cleanInPlace(c, cfg, src, logger); err != nil {
				return err
			}
		}
		return nil
	}

	output, cleanup, err := openOutput(cfg.Output)
	if err != nil {
		return err
	}
	defer cleanup()

	for _, src := range sources {
		source, text, err := pipeline.ReadInput(src)
		if err != nil {
			return err
		}

		cleaned := cleanText(c, cfg, source, text, logger)
		if _, err := io.WriteString(output, cleaned); err != nil {
			return fmt.Errorf("failed to write cleaned text: %w", err)
		}
	}
	return nil
}

// cleanInPlace rewrites one file with its cleaned content, keeping the
// file's permission bits.
func cleanInPlace(c *cleaner.Cleaner, cfg *config.Config, path string, logger *slog.Logger) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	source, text, err := pipeline.ReadInput(path)
	if err != nil {
		return err
	}

	cleaned := cleanText(c, cfg, source, text, logger)
	if cleaned == text {
		logger.Debug("file already clean", "source", source)
		return nil
	}

	if err := os.WriteFile(path, []byte(cleaned), info.Mode().Perm()); err != nil { //nolint:gosec // Rewriting the user's own input file is intentional
		return fmt.Errorf("failed to rewrite %s: %w", path, err)
	}

	logger.Info("rewrote file", "source", source)
	return nil
}

// cleanText cleans one input, logging per-step rune counts when verbose.
func cleanText(c *cleaner.Cleaner, cfg *config.Config, source, text string, logger *slog.Logger) string {
	if !cfg.Verbose {
		return c.Clean(text)
	}

	cleaned, traces := c.CleanWithTrace(text)
	for _, t := range traces {
		logger.Debug("cleaning step",
			"source", source,
			"step", t.Name,
			"before", t.Before,
			"after", t.After,
			"removed", t.Before-t.After,
		)
	}
	return cleaned
}
