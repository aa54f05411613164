// Package model defines the core data structures used throughout TracesCleaner.
//
// This package contains the following main types:
//   - DetectionResult: positional inventory of hidden characters in a text
//   - HomoglyphResult: lookalike characters with replacement suggestions
//   - WhitespaceResult: whitespace anomalies (trailing, run-on, mixed endings)
//   - ScanReport: the main scan result structure
//   - Summary: a severity-ranked, human-readable digest of a scan
//   - AIProviderProfile: reference data about provider watermark habits
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (scan, pipeline, report, database) need to
// use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// scan-history storage.
package model
