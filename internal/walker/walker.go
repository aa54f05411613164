package walker

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/karrick/godirwalk"
)

// Default traversal limits.
const (
	// DefaultMaxFiles caps how many files a single walk returns.
	// This prevents an accidental scan of an enormous tree.
	DefaultMaxFiles = 10000

	// DefaultMaxFileSize is the largest file a walk admits, in bytes.
	// Larger files are almost never prose worth scanning.
	DefaultMaxFileSize int64 = 10 * 1024 * 1024 // 10MB

	// sniffLen is how many leading bytes are inspected to classify a file
	// as text or binary.
	sniffLen = 512
)

// Walker expands a directory tree into the list of text files to scan.
// It applies depth, count, and size limits, skips version-control metadata,
// and filters out binary files.
//
// Design decision: We build on github.com/karrick/godirwalk rather than
// filepath.WalkDir because:
//  1. Its ErrorCallback lets an unreadable subtree be skipped without
//     error-handling branches inside the visit callback
//  2. It streams directory entries instead of loading each directory
//     into a slice, which matters for large vendored trees
//  3. Sorted traversal is the default, so repeated scans of the same tree
//     list files in the same order
type Walker struct {
	// maxDepth limits how many directory levels below the root are
	// entered. 0 means only files directly in the root; negative means
	// no limit.
	maxDepth int

	// maxFiles limits the total number of files returned.
	// The walk stops quietly once the cap is reached.
	maxFiles int

	// maxFileSize is the largest admitted file in bytes.
	// Zero or negative means no limit.
	maxFileSize int64

	// ignorePatterns are glob patterns for entries to skip.
	// A pattern without a separator matches the entry name (".git",
	// "*.min.js"); a pattern with a separator matches the slash-joined
	// path below the root ("vendor/*").
	ignorePatterns []string

	// followPatterns restrict which files are returned. If set, only
	// files matching at least one pattern are admitted. Directories are
	// still entered, so "*.md" finds Markdown files at any depth.
	followPatterns []string
}

// Option configures a Walker.
type Option func(*Walker)

// WithMaxDepth limits how many directory levels below the root are entered.
// 0 means only files directly in the root; negative means no limit.
func WithMaxDepth(depth int) Option {
	return func(w *Walker) {
		w.maxDepth = depth
	}
}

// WithMaxFiles caps how many files a walk returns.
func WithMaxFiles(n int) Option {
	return func(w *Walker) {
		w.maxFiles = n
	}
}

// WithMaxFileSize sets the largest admitted file in bytes.
func WithMaxFileSize(size int64) Option {
	return func(w *Walker) {
		w.maxFileSize = size
	}
}

// WithIgnorePatterns replaces the default set of patterns to skip.
func WithIgnorePatterns(patterns []string) Option {
	return func(w *Walker) {
		w.ignorePatterns = patterns
	}
}

// WithFollowPatterns restricts the walk to files matching at least one
// pattern.
func WithFollowPatterns(patterns []string) Option {
	return func(w *Walker) {
		w.followPatterns = patterns
	}
}

// New creates a Walker with default limits. Version-control metadata
// directories are ignored unless the ignore set is replaced.
func New(opts ...Option) *Walker {
	w := &Walker{
		maxDepth:       -1,
		maxFiles:       DefaultMaxFiles,
		maxFileSize:    DefaultMaxFileSize,
		ignorePatterns: []string{".git", ".hg", ".svn"},
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Walk returns the admitted files under root in lexical order.
// The context is checked on every entry, so a cancelled scan stops
// mid-tree. Hitting the file cap stops the walk quietly with the files
// gathered so far. Unreadable entries are skipped, not reported.
func (w *Walker) Walk(ctx context.Context, root string) ([]string, error) {
	root = filepath.Clean(root)
	files := make([]string, 0)
	sniff := make([]byte, sniffLen)

	// The callback signals both stop conditions through filepath.SkipDir,
	// which the walk honors as pruning rather than failure. Real errors
	// returned from a callback are version-dependent territory in walk
	// libraries; SkipDir is not.
	var ctxErr error
	var capped bool

	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(osPathname string, de *godirwalk.Dirent) error {
			if ctxErr != nil || capped {
				return filepath.SkipDir
			}
			if err := ctx.Err(); err != nil {
				ctxErr = err
				return filepath.SkipDir
			}
			if osPathname == root {
				return nil
			}

			rel, err := filepath.Rel(root, osPathname)
			if err != nil {
				return nil
			}
			relPath := filepath.ToSlash(rel)

			if de.IsDir() {
				if w.matchesAny(w.ignorePatterns, relPath, de.Name()) {
					return filepath.SkipDir
				}
				if w.maxDepth >= 0 && strings.Count(relPath, "/")+1 > w.maxDepth {
					return filepath.SkipDir
				}
				return nil
			}

			// Symlinks, sockets, and devices are never scanned.
			if !de.IsRegular() {
				return nil
			}
			if w.matchesAny(w.ignorePatterns, relPath, de.Name()) {
				return nil
			}
			if len(w.followPatterns) > 0 && !w.matchesAny(w.followPatterns, relPath, de.Name()) {
				return nil
			}
			if !w.admit(osPathname, sniff) {
				return nil
			}

			files = append(files, osPathname)
			if w.maxFiles > 0 && len(files) >= w.maxFiles {
				capped = true
				return filepath.SkipDir
			}
			return nil
		},
		ErrorCallback: func(_ string, _ error) godirwalk.ErrorAction {
			return godirwalk.SkipNode
		},
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	if ctxErr != nil {
		return nil, ctxErr
	}

	return files, nil
}

// admit reports whether the file is small enough and looks like text.
// A NUL byte in the leading bytes classifies the file as binary, the
// same heuristic git uses.
func (w *Walker) admit(pathname string, sniff []byte) bool {
	f, err := os.Open(pathname) //nolint:gosec // Walking user-requested directories is intentional
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false
	}
	if w.maxFileSize > 0 && info.Size() > w.maxFileSize {
		return false
	}

	n, err := f.Read(sniff)
	if err != nil && err != io.EOF {
		return false
	}
	return bytes.IndexByte(sniff[:n], 0x00) < 0
}

// matchesAny reports whether any pattern matches the entry.
func (w *Walker) matchesAny(patterns []string, relPath, name string) bool {
	for _, pattern := range patterns {
		if matchPattern(pattern, relPath, name) {
			return true
		}
	}
	return false
}

// matchPattern matches one glob pattern against an entry. Patterns without
// a separator match the bare entry name; patterns with a separator match
// the slash-joined path below the walk root. A trailing "/*" matches the
// whole subtree, not just direct children.
func matchPattern(pattern, relPath, name string) bool {
	if !strings.Contains(pattern, "/") {
		matched, err := path.Match(pattern, name)
		return err == nil && matched
	}

	if strings.HasSuffix(pattern, "/*") {
		prefix := strings.TrimSuffix(pattern, "/*")
		if relPath == prefix || strings.HasPrefix(relPath, prefix+"/") {
			return true
		}
	}

	matched, err := path.Match(pattern, relPath)
	return err == nil && matched
}
