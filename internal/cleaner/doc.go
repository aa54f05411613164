// Package cleaner removes hidden characters and whitespace artifacts from
// text through a fixed sequence of transformation steps.
//
// Step order is load-bearing: folding homoglyphs before stripping invisible
// characters would leave stray zero-width characters between a lookalike and
// its replacement, and normalizing before stripping could compose code
// points the registry expects literally. The steps run in this order:
//
//  1. strip-html (optional): naive tag removal plus six-entity decoding
//  2. strip-hidden: named non-formatting registry characters and generic
//     controls
//  3. strip-supplementary: Tags and Variation Selector Supplement blocks
//  4. normalize (default on): Unicode NFC composition
//  5. fix-homoglyphs (optional): fold lookalikes to ASCII
//  6. trim-trailing: horizontal whitespace before line breaks
//  7. collapse-spaces: runs of ordinary spaces become one space
//
// Cleaning is idempotent for fixed options, with one documented exception:
// HTML entity decoding is a one-shot textual rewrite, so text that spells
// out an entity twice over ("&amp;amp;") keeps decoding on repeated runs.
package cleaner
