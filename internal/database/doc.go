// Package database provides SQLite-based storage for scan history.
//
// Every saved scan keeps the full report as JSON next to a fingerprint of
// the input text, so past results can be listed, re-read, and compared
// without re-scanning. A per-character statistics table accumulates counts
// across scans and powers the "most frequent hidden characters" view of
// the history command.
//
// The database lives in the XDG data directory by default and uses
// modernc.org/sqlite, a pure Go driver, so the binary stays CGO-free.
package database
