package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/macro-dynamic/TracesCleaner/internal/pipeline"
	"github.com/macro-dynamic/TracesCleaner/internal/reveal"
	"github.com/spf13/cobra"
)

// revealPageTemplate wraps a rendered fragment in a standalone document so
// the annotations are styled when the output is opened in a browser.
const revealPageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>tracescleaner reveal</title>
<style>
  body { font-family: ui-monospace, SFMono-Regular, Menlo, monospace; margin: 2rem; line-height: 1.6; }
  pre { white-space: pre-wrap; word-break: break-word; }
  .hidden-char { background: #ffd7d7; color: #a40000; border-radius: 2px; padding: 0 2px; font-size: 0.85em; }
  .format-char { color: #9aa0a6; }
</style>
</head>
<body>
<pre>%s</pre>
</body>
</html>
`

// NewRevealCmd creates the reveal command.
func NewRevealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reveal [file|-]",
		Short: "Render text as HTML with hidden characters made visible",
		Long: `Reveal produces an HTML rendering of the input in which every hidden
character appears as an inline badge showing its code point, and formatting
characters appear as visible symbols (tab as an arrow, line feed as a
pilcrow). Visible text is HTML-escaped and kept as is.

By default the output is a fragment for embedding. With --full-page it is
wrapped in a minimal standalone document with the annotation styles, ready
to open in a browser.

Examples:
  # Inspect a suspicious paste in the browser
  pbpaste | tracescleaner reveal - --full-page --output reveal.html

  # Emit a fragment for embedding elsewhere
  tracescleaner reveal document.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRevealCmd,
	}

	cmd.Flags().Bool("include-formatting", true,
		"Annotate tab, line feed, and carriage return with visible symbols")
	cmd.Flags().Bool("full-page", false,
		"Wrap the fragment in a standalone HTML document")
	cmd.Flags().StringP("output", "o", "",
		"Write HTML to specified file path instead of stdout")

	return cmd
}

// runRevealCmd executes the reveal command.
func runRevealCmd(cmd *cobra.Command, args []string) error {
	includeFormatting, err := cmd.Flags().GetBool("include-formatting")
	if err != nil {
		return err
	}
	fullPage, err := cmd.Flags().GetBool("full-page")
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

	renderer := reveal.NewRenderer(reveal.WithFormatting(includeFormatting))
	html := renderer.Render(text)
	if fullPage {
		html = fmt.Sprintf(revealPageTemplate, html)
	}

	logger.Debug("rendered input",
		"source", source,
		"full_page", fullPage,
		"bytes", len(html),
	)

	output, cleanup, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := io.WriteString(output, html); err != nil {
		return fmt.Errorf("failed to write HTML: %w", err)
	}
	if !strings.HasSuffix(html, "\n") {
		if _, err := io.WriteString(output, "\n"); err != nil {
			return fmt.Errorf("failed to write HTML: %w", err)
		}
	}
	return nil
}
