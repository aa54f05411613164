package config

import "errors"

// Configuration errors.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances at each return site. This allows callers to
// use errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrConfigNotFound is returned when the configuration file does not
	// exist at the resolved path.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrProfileNotFound is returned when the requested profile name is
	// not present in the configuration file.
	ErrProfileNotFound = errors.New("profile not found in configuration file")

	// ErrInvalidFormat is returned when the report format is not one of
	// simple, json, or markdown.
	ErrInvalidFormat = errors.New("invalid report format: must be simple, json, or markdown")

	// ErrInvalidBatchSize is returned when the scan concurrency is below
	// one.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be at least 1")
)
