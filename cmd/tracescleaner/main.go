// Package main provides the entry point for the TracesCleaner CLI.
//
// TracesCleaner inspects text for invisible Unicode characters, lookalike
// substitutions, and whitespace anomalies left behind by AI-generation
// pipelines and copy-paste from web UIs. It can report, visualize, remove,
// or (for demonstration) re-inject them.
//
// Usage:
//
//	tracescleaner scan <file>
//	tracescleaner clean <file>
//	cat paste.txt | tracescleaner scan -
//
// See --help for all available options.
package main

// main is the entry point for TracesCleaner.
func main() {
	Execute()
}
