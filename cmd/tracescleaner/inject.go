package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/macro-dynamic/TracesCleaner/internal/inject"
	"github.com/macro-dynamic/TracesCleaner/internal/pipeline"
	"github.com/spf13/cobra"
)

// NewInjectCmd creates the inject command.
func NewInjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inject [file|-]",
		Short: "Insert invisible characters into text",
		Long: `Inject inserts invisible characters into the input at random positions
and prints the result. The insertion count goes to stderr so the injected
text can be piped cleanly.

This is the test-fixture companion to scan and clean: injected text should
always come back flagged by scan and restored by clean. It is also useful
for checking how editors, diff tools, and review interfaces display hidden
characters.

By default only Zero-Width Space is inserted. Additional character types
are enabled per flag.

Examples:
  # Produce a fixture with zero-width spaces
  tracescleaner inject article.txt --output fixture.txt

  # Deterministic output for repeatable tests
  tracescleaner inject --seed 42 article.txt

  # Use the full character set
  tracescleaner inject --zwnj --bom --invisible-separator article.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInjectCmd,
	}

	// Character selection flags
	cmd.Flags().Bool("zwsp", true, "Insert Zero-Width Space (U+200B)")
	cmd.Flags().Bool("zwnj", false, "Insert Zero-Width Non-Joiner (U+200C)")
	cmd.Flags().Bool("bom", false, "Insert Byte Order Mark (U+FEFF)")
	cmd.Flags().Bool("invisible-separator", false, "Insert Invisible Separator (U+2063)")

	cmd.Flags().Int64("seed", 0, "Random seed for deterministic insertion positions")
	cmd.Flags().StringP("output", "o", "",
		"Write injected text to specified file path instead of stdout")

	return cmd
}

// runInjectCmd executes the inject command.
func runInjectCmd(cmd *cobra.Command, args []string) error {
	opts, err := buildInjectOptions(cmd)
	if err != nil {
		return err
	}

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	path := "-"
	if len(args) > 0 {
		path = args[0]
	}

	source, text, err := pipeline.ReadInput(path)
	if err != nil {
		return err
	}

	injectorOpts := []inject.Option{inject.WithCharacters(opts)}
	// Changed distinguishes an explicit --seed 0 from the flag being absent.
	if cmd.Flags().Changed("seed") {
		seed, err := cmd.Flags().GetInt64("seed")
		if err != nil {
			return err
		}
		injectorOpts = append(injectorOpts, inject.WithSeed(seed))
	}

	injected, count := inject.NewInjector(injectorOpts...).Inject(text)

	logger.Debug("injected characters",
		"source", source,
		"insertions", count,
	)

	output, cleanup, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := io.WriteString(output, injected); err != nil {
		return fmt.Errorf("failed to write injected text: %w", err)
	}

	fmt.Fprintf(os.Stderr, "inserted %d invisible character(s)\n", count)
	return nil
}

// buildInjectOptions reads the character selection flags.
func buildInjectOptions(cmd *cobra.Command) (inject.Options, error) {
	var opts inject.Options
	var err error

	opts.ZWSP, err = cmd.Flags().GetBool("zwsp")
	if err != nil {
		return inject.Options{}, err
	}
	opts.ZWNJ, err = cmd.Flags().GetBool("zwnj")
	if err != nil {
		return inject.Options{}, err
	}
	opts.BOM, err = cmd.Flags().GetBool("bom")
	if err != nil {
		return inject.Options{}, err
	}
	opts.InvisibleSeparator, err = cmd.Flags().GetBool("invisible-separator")
	if err != nil {
		return inject.Options{}, err
	}

	return opts, nil
}
