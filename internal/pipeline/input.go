package pipeline

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/macro-dynamic/TracesCleaner/internal/config"
	"golang.org/x/crypto/sha3"
	"golang.org/x/net/html"
)

// SourceStdin is the source label used for input read from standard input.
const SourceStdin = "stdin"

// ReadInput reads the text to scan from path, or from stdin when path is "-".
// It returns the source label for the report alongside the text. Invalid
// UTF-8 is passed through unchanged; the scanners handle it byte by byte.
func ReadInput(path string) (source, text string, err error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return SourceStdin, string(data), nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return "", "", fmt.Errorf("read input: %w", err)
	}
	return path, string(data), nil
}

// ScanContextForFile reads path and prepares a scan context for it, running
// HTML text extraction when forced or when the file name indicates HTML.
func ScanContextForFile(path string, cfg *config.Config, extractHTML bool) (*ScanContext, error) {
	source, text, err := ReadInput(path)
	if err != nil {
		return nil, err
	}

	if extractHTML || IsHTMLPath(path) {
		text, err = ExtractHTMLText(strings.NewReader(text))
		if err != nil {
			return nil, fmt.Errorf("extract text from %s: %w", source, err)
		}
	}

	return NewScanContext(source, text, cfg), nil
}

// IsHTMLPath reports whether path has an HTML file extension.
func IsHTMLPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".html" || ext == ".htm"
}

// ExtractHTMLText returns the visible text of an HTML document.
// Script and style content is skipped; markup is discarded.
//
// Design decision: We use golang.org/x/net/html rather than regex because
// it correctly handles the malformed HTML that copy-pasted fragments
// usually are, and entity references arrive already decoded.
func ExtractHTMLText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var sb strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return sb.String(), nil
}

// InputHash returns the SHA3-256 hex digest of the input text.
// The history database stores it so re-scans of identical content can be
// correlated across differently named sources.
func InputHash(text string) string {
	hash := sha3.Sum256([]byte(text))
	return hex.EncodeToString(hash[:])
}
