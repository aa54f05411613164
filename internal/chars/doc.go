// Package chars defines the character classification data used throughout
// TracesCleaner.
//
// This package contains two static tables:
//   - Registry: named invisible and formatting code points with their
//     human-readable names, canonical U+XXXX labels, and categories
//   - Homoglyph table: lookalike characters (Cyrillic, Greek, fullwidth,
//     typographic punctuation) mapped to their ASCII equivalents
//
// Beyond the named registry, the package classifies two synthesized groups
// that are too large to enumerate by name:
//   - Generic control characters (C0 controls except Tab/LF/CR, DEL, and the
//     C1 block)
//   - Supplementary-plane ranges: Tag characters (U+E0000-U+E007F), used for
//     steganographic payloads, and the Variation Selector Supplement
//     (U+E0100-U+E01EF)
//
// Design decision: Both tables are package-initialized and immutable.
// Detection, cleaning, visualization, and logging all consult the same data,
// so centralizing it here keeps the tools consistent with each other and
// avoids import cycles. Accessors return copies; callers cannot mutate the
// tables.
package chars
