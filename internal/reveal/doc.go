// Package reveal renders text as an HTML fragment in which every invisible
// or disguised character is replaced by a visible annotation span.
//
// The renderer flags exactly the characters the detector flags under the
// same formatting setting. Hidden characters are replaced outright by a
// span carrying their code point label; formatting characters (tab, line
// feed, carriage return) keep their literal character after the span so
// line structure survives. Removing the annotation spans and un-escaping
// the five HTML entities reconstructs the input minus its hidden
// characters.
package reveal
