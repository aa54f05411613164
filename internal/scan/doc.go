// Package scan provides the detection scanners for hidden and disguised
// Unicode characters.
//
// # Purpose
//
// This package turns raw text into the positional inventories defined in
// the model package. It contains no I/O and no policy: callers decide what
// to do with the results.
//
// # Design Philosophy
//
// Each concern is a separate scanner type with a single entry point:
//   - Detector finds registry characters, generic controls, and
//     supplementary-plane characters (Tags, Variation Selector Supplement)
//   - HomoglyphScanner finds lookalike characters with ASCII replacements
//   - WhitespaceAnalyzer finds trailing whitespace, repeated spaces, mixed
//     line endings, and special space characters
//
// This split was chosen because each check has its own options and its own
// result shape, and because the CLI lets users run them selectively.
//
// # Scanning Model
//
// All scanners walk the decoded code points of the input exactly once per
// check. Positions in results are zero-based rune offsets, so a character
// outside the Basic Multilingual Plane advances the position by one, not
// two. Results list distinct characters in first-seen order; every scan of
// the same text yields identical results.
//
// Invalid UTF-8 sequences decode as U+FFFD and are not flagged by any
// scanner.
package scan
