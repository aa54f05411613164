// Package report renders scan results in multiple output formats.
//
// Three writers share one interface: SimpleWriter for terminal reading,
// JSONWriter for tool integration, and MarkdownWriter for pasting into
// issues and pull requests. MultiWriter fans a report out to several
// destinations at once, typically terminal plus file.
package report
