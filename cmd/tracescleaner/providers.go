package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/macro-dynamic/TracesCleaner/internal/config"
	"github.com/macro-dynamic/TracesCleaner/internal/model"
	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"
)

// NewProvidersCmd creates the providers command.
func NewProvidersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "providers [name]",
		Short: "Show known AI provider text artifacts",
		Long: `Providers renders the reference table of text artifacts observed in the
output of known AI providers, together with how completely character-level
cleaning removes each provider's artifacts.

The table is informational. Detection and cleaning never branch on a
provider; they always run every check.

Examples:
  # List all known providers
  tracescleaner providers

  # Detail for one provider
  tracescleaner providers chatgpt

  # Markdown table for documentation
  tracescleaner providers --format markdown`,
		Args: cobra.MaximumNArgs(1),
		RunE: runProvidersCmd,
	}

	cmd.Flags().StringP("format", "f", config.FormatSimple,
		"Output format: simple or markdown")
	cmd.Flags().StringP("output", "o", "",
		"Write table to specified file path instead of stdout")

	return cmd
}

// runProvidersCmd executes the providers command.
func runProvidersCmd(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	format = normalizeFormat(format)

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	profiles := model.Providers()
	if len(args) == 1 {
		profile, ok := model.GetProviderProfile(args[0])
		if !ok {
			return fmt.Errorf("unknown provider %q (known: %s)", args[0], strings.Join(providerNames(), ", "))
		}
		profiles = []model.AIProviderProfile{profile}
	}

	output, cleanup, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer cleanup()

	switch format {
	case config.FormatMarkdown:
		return writeProvidersMarkdown(output, profiles)
	case config.FormatSimple, config.FormatJSON:
		// JSON has no dedicated provider rendering; fall back to text.
		writeProvidersText(output, profiles)
		return nil
	default:
		return fmt.Errorf("configuration error: %w", config.ErrInvalidFormat)
	}
}

// providerNames returns the lookup keys of all known providers, sorted.
func providerNames() []string {
	profiles := model.Providers()
	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// writeProvidersText renders the provider table as aligned plain text.
func writeProvidersText(output io.Writer, profiles []model.AIProviderProfile) {
	fmt.Fprintf(output, "Known AI provider artifacts (%d provider(s))\n\n", len(profiles))
	fmt.Fprintf(output, "  %-10s  %-9s  %s\n", "Provider", "Cleaning", "Known Artifacts")
	fmt.Fprintln(output, "  "+strings.Repeat("-", 76))

	for _, p := range profiles {
		first := ""
		rest := p.Techniques
		if len(rest) > 0 {
			first = rest[0]
			rest = rest[1:]
		}
		fmt.Fprintf(output, "  %-10s  %-9s  %s\n", p.DisplayLabel, p.Effectiveness, first)
		for _, t := range rest {
			fmt.Fprintf(output, "  %-10s  %-9s  %s\n", "", "", t)
		}
		fmt.Fprintf(output, "  %-10s  %-9s  note: %s\n", "", "", p.Note)
	}
}

// writeProvidersMarkdown renders the provider table as a Markdown document.
func writeProvidersMarkdown(output io.Writer, profiles []model.AIProviderProfile) error {
	md := markdown.NewMarkdown(output)

	md.H1("AI Provider Artifact Reference")
	md.PlainText("")

	rows := make([][]string, len(profiles))
	for i, p := range profiles {
		rows[i] = []string{
			p.Icon + " " + p.DisplayLabel,
			strings.Join(p.Techniques, "; "),
			string(p.Effectiveness),
			p.Note,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Provider", "Known Artifacts", "Cleaning", "Note"},
		Rows:   rows,
	})
	md.PlainText("")

	return md.Build()
}
