// Package main provides the entry point for the TracesCleaner CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes. Scan distinguishes "input is not clean" from operational
// failures so CI jobs can gate on findings without masking real errors.
const (
	exitClean    = 0
	exitFindings = 1
	exitError    = 2
)

// errFindingsDetected signals a scan that completed successfully but found
// hidden characters, homoglyphs, or whitespace anomalies. The report has
// already been written when this error surfaces.
var errFindingsDetected = errors.New("findings detected")

// NewRootCmd creates the root command for TracesCleaner.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracescleaner",
		Short: "Detect and remove invisible Unicode characters from text",
		Long: `TracesCleaner inspects text for invisible Unicode characters, lookalike
substitutions (homoglyphs), and whitespace anomalies. These artifacts are
commonly left by AI-generation pipelines, copy-paste from web UIs, or
deliberate watermarking.

Scan reports what it finds without touching the input. Clean removes the
artifacts and prints sanitized text. Reveal renders the input as annotated
HTML so every hidden character becomes visible.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .tracescleaner in current or home directory)")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewCleanCmd())
	cmd.AddCommand(NewRevealCmd())
	cmd.AddCommand(NewInjectCmd())
	cmd.AddCommand(NewProvidersCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command and maps its outcome to an exit code:
// exitClean for a clean run, exitFindings when a scan reported findings,
// exitError otherwise.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		if errors.Is(err, errFindingsDetected) {
			os.Exit(exitFindings)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitError)
	}
}
