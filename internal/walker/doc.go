// Package walker discovers scannable text files under a directory tree.
//
// The scan command accepts directories when asked to work recursively; this
// package expands each directory into the regular text files it contains,
// in deterministic lexical order, while skipping version-control metadata,
// binary files, and files beyond the configured size cap. The filters keep
// a tree scan focused on the files a person actually edits.
package walker
