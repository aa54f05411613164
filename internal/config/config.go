package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "tracescleaner"

	// FormatSimple is the human-readable report format written to the
	// terminal. It is the default because scan output is usually read by a
	// person deciding whether to clean.
	FormatSimple = "simple"

	// FormatJSON is the machine-readable report format. It carries the
	// complete detection inventory including positions.
	FormatJSON = "json"

	// FormatMarkdown is the GitHub Flavored Markdown report format, suited
	// for pasting into issues and pull requests.
	FormatMarkdown = "markdown"

	// DefaultBatchSize is the number of files scanned concurrently when
	// multiple inputs are given.
	DefaultBatchSize = 4
)

// Config holds all configuration options for tracescleaner.
// This struct is designed to be populated from CLI flags and an optional
// profile file and passed through the application via dependency injection
// rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., ScanConfig, CleanConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// Profile is the name of the profile to apply from the configuration
	// file. Empty means use only the file's defaults section.
	Profile string

	// IncludeFormatting makes the detector flag tab, line feed, and
	// carriage return. Off by default because ordinary text is full of
	// them.
	IncludeFormatting bool

	// StripHTML enables HTML tag removal and entity decoding as the first
	// cleaning step.
	StripHTML bool

	// FixHomoglyphs enables folding of look-alike characters to their
	// plain equivalents during cleaning.
	FixHomoglyphs bool

	// Normalize enables Unicode NFC normalization during cleaning.
	// Enabled by default.
	Normalize bool

	// Format selects the report format: FormatSimple, FormatJSON, or
	// FormatMarkdown.
	Format string

	// Output is the file path the report is written to. Empty means
	// stdout.
	Output string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// Save persists scan reports to the history database.
	Save bool

	// BatchSize is the number of files scanned concurrently when multiple
	// inputs are given.
	BatchSize int

	// ExtractHTML forces visible-text extraction before scanning, even for
	// inputs whose file name does not end in .html or .htm.
	ExtractHTML bool

	// Recursive expands directories given as sources into the text files
	// they contain.
	Recursive bool

	// DBDir overrides the directory holding the history database.
	// Empty means the XDG data directory.
	DBDir string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .tracescleaner in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// Sources is the list of files to scan. Empty means read stdin.
	Sources []string
}

// Option configures a Config.
type Option func(*Config)

// WithProfile selects a named profile from the configuration file.
func WithProfile(name string) Option {
	return func(c *Config) { c.Profile = name }
}

// WithIncludeFormatting controls detection of formatting characters.
func WithIncludeFormatting(include bool) Option {
	return func(c *Config) { c.IncludeFormatting = include }
}

// WithStripHTML controls the HTML stripping cleaning step.
func WithStripHTML(strip bool) Option {
	return func(c *Config) { c.StripHTML = strip }
}

// WithFixHomoglyphs controls homoglyph folding during cleaning.
func WithFixHomoglyphs(fix bool) Option {
	return func(c *Config) { c.FixHomoglyphs = fix }
}

// WithNormalize controls NFC normalization during cleaning.
func WithNormalize(normalize bool) Option {
	return func(c *Config) { c.Normalize = normalize }
}

// WithFormat selects the report format.
func WithFormat(format string) Option {
	return func(c *Config) { c.Format = format }
}

// WithOutput directs the report to a file instead of stdout.
func WithOutput(path string) Option {
	return func(c *Config) { c.Output = path }
}

// WithVerbose enables debug logging.
func WithVerbose(verbose bool) Option {
	return func(c *Config) { c.Verbose = verbose }
}

// WithSave persists scan reports to the history database.
func WithSave(save bool) Option {
	return func(c *Config) { c.Save = save }
}

// WithBatchSize sets the scan concurrency for multiple inputs.
func WithBatchSize(n int) Option {
	return func(c *Config) { c.BatchSize = n }
}

// WithExtractHTML forces HTML text extraction before scanning.
func WithExtractHTML(extract bool) Option {
	return func(c *Config) { c.ExtractHTML = extract }
}

// WithRecursive expands directory sources into the files they contain.
func WithRecursive(recursive bool) Option {
	return func(c *Config) { c.Recursive = recursive }
}

// WithDBDir overrides the history database directory.
func WithDBDir(dir string) Option {
	return func(c *Config) { c.DBDir = dir }
}

// WithConfigFilePath sets an explicit configuration file path.
func WithConfigFilePath(path string) Option {
	return func(c *Config) { c.ConfigFilePath = path }
}

// WithSources sets the files to scan.
func WithSources(sources []string) Option {
	return func(c *Config) { c.Sources = sources }
}

// NewConfig creates a new Config with default values, then applies opts.
//
// Design decision: We use a constructor function instead of relying on
// zero values because some defaults are non-zero (normalization on, simple
// format). This also serves as documentation of what the defaults are.
func NewConfig(opts ...Option) *Config {
	c := &Config{
		Normalize: true,
		Format:    FormatSimple,
		BatchSize: DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ApplyProfile overlays a profile's non-empty fields onto the Config.
// Pointer fields left nil in the profile keep the Config's current value.
func (c *Config) ApplyProfile(p Profile) {
	if p.IncludeFormatting != nil {
		c.IncludeFormatting = *p.IncludeFormatting
	}
	if p.StripHTML != nil {
		c.StripHTML = *p.StripHTML
	}
	if p.FixHomoglyphs != nil {
		c.FixHomoglyphs = *p.FixHomoglyphs
	}
	if p.Normalize != nil {
		c.Normalize = *p.Normalize
	}
	if p.Format != "" {
		c.Format = p.Format
	}
}

// XDGDataDir returns the XDG data directory for tracescleaner.
// On Linux: ~/.local/share/tracescleaner
// On macOS: ~/Library/Application Support/tracescleaner
// On Windows: %LOCALAPPDATA%\tracescleaner
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for tracescleaner.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for tracescleaner.
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any scanning begins.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatSimple, FormatJSON, FormatMarkdown:
	default:
		return ErrInvalidFormat
	}
	if c.BatchSize < 1 {
		return ErrInvalidBatchSize
	}
	return nil
}
