// Package log provides slog handlers that keep invisible characters out of
// log output. Scanned text fragments routinely appear in log attributes, so
// every string value is escaped before it reaches the terminal or a log
// file.
package log
