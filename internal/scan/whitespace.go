package scan

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/macro-dynamic/TracesCleaner/internal/chars"
	"github.com/macro-dynamic/TracesCleaner/internal/model"
)

// WhitespaceAnalyzer finds whitespace anomalies: trailing whitespace,
// repeated spaces between words, mixed line-ending conventions, and special
// space characters.
type WhitespaceAnalyzer struct{}

// NewWhitespaceAnalyzer creates a WhitespaceAnalyzer.
func NewWhitespaceAnalyzer() *WhitespaceAnalyzer {
	return &WhitespaceAnalyzer{}
}

// Analyze runs the four checks and returns their issues in fixed order:
// trailing whitespace, repeated spaces, mixed line endings, then each
// special space character in registry definition order.
func (a *WhitespaceAnalyzer) Analyze(text string) *model.WhitespaceResult {
	result := &model.WhitespaceResult{}

	if n := countTrailingLines(text); n > 0 {
		result.Add(model.WhitespaceIssue{
			Kind:        model.IssueTrailingSpace,
			Description: fmt.Sprintf("%d line(s) end with whitespace", n),
			Count:       n,
		})
	}

	if n := countSpaceRuns(text); n > 0 {
		result.Add(model.WhitespaceIssue{
			Kind:        model.IssueDoubleSpace,
			Description: fmt.Sprintf("%d run(s) of repeated spaces between words", n),
			Count:       n,
		})
	}

	if hasMixedEndings(text) {
		result.Add(model.WhitespaceIssue{
			Kind:        model.IssueMixedEndings,
			Description: "both CRLF and bare LF line endings present",
			Count:       1,
		})
	}

	for _, r := range chars.SpaceRunes() {
		n := strings.Count(text, string(r))
		if n == 0 {
			continue
		}
		desc, _ := chars.Lookup(r)
		result.Add(model.WhitespaceIssue{
			Kind:        model.IssueSpecialSpace,
			Description: fmt.Sprintf("%s (%s)", desc.Name, desc.CodeLabel),
			Count:       n,
			CodeLabel:   desc.CodeLabel,
		})
	}

	return result
}

// countTrailingLines counts lines whose content ends with a space or tab.
// The final segment of text without a trailing newline counts as a line.
func countTrailingLines(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		switch line[len(line)-1] {
		case ' ', '\t':
			count++
		}
	}
	return count
}

// countSpaceRuns counts runs of two or more ordinary spaces that sit
// strictly between non-whitespace characters. Requiring a non-whitespace
// character before the run excludes indentation; requiring one after
// excludes trailing whitespace, which the trailing check already covers.
func countSpaceRuns(text string) int {
	runes := []rune(text)
	count := 0

	for i := 0; i < len(runes); {
		if runes[i] != ' ' {
			i++
			continue
		}

		start := i
		for i < len(runes) && runes[i] == ' ' {
			i++
		}

		if i-start < 2 || start == 0 || i >= len(runes) {
			continue
		}
		if unicode.IsSpace(runes[start-1]) || unicode.IsSpace(runes[i]) {
			continue
		}
		count++
	}

	return count
}

// hasMixedEndings reports whether the text contains both CRLF pairs and
// LF characters not preceded by CR.
func hasMixedEndings(text string) bool {
	if !strings.Contains(text, "\r\n") {
		return false
	}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' && (i == 0 || text[i-1] != '\r') {
			return true
		}
	}
	return false
}
