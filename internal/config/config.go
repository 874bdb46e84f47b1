package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultBatchSize of 10 concurrent page audits. Agents are CPU-bound
	// regex scans, so higher values only help on many-core machines.
	DefaultBatchSize = 10

	// DefaultMaxFileSize limits how much of a rendered HTML file is read.
	// 10MB is far beyond any real page and keeps memory bounded when a
	// directory contains unexpected large files.
	DefaultMaxFileSize = 10 * 1024 * 1024

	// AppName is the application name used for XDG directory paths.
	AppName = "pageaudit"
)

// Config holds all configuration options for pageaudit.
// It is populated from CLI flags and passed through the application
// rather than kept in global state.
type Config struct {
	// Inputs are the files and directories to audit.
	// Directories are walked recursively for .html and .htm files.
	Inputs []string

	// ManifestPath is a YAML file listing pages as url/file pairs.
	// Either Inputs or ManifestPath must be set.
	ManifestPath string

	// BaseURL is prepended to the path of each input file relative to the
	// input root to form the page url. When empty, a canonical link in the
	// markup is used, falling back to a file:// url.
	BaseURL string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// BatchSize is the number of pages audited concurrently.
	BatchSize int

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .pageaudit in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// SiteConfigs holds site-specific configurations loaded from the config file.
	SiteConfigs *File

	// JSONReport enables JSON report output instead of plain text.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of plain text.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// MinScore makes the audit command fail when the average score of the
	// run is below it. Zero disables the gate.
	MinScore int

	// DBDir is the directory path for the SQLite history database.
	// Defaults to XDG data directory (~/.local/share/pageaudit on Linux).
	DBDir string

	// SaveToDB indicates whether to save audits to the history database.
	SaveToDB bool

	// MaxFileSize is the maximum number of bytes read from one input file.
	// Larger files are rejected. Zero uses DefaultMaxFileSize.
	MaxFileSize int64
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		BatchSize:   DefaultBatchSize,
		MaxFileSize: DefaultMaxFileSize,
		SaveToDB:    true,
	}
}

// XDGDataDir returns the XDG data directory for pageaudit.
// On Linux: ~/.local/share/pageaudit
// On macOS: ~/Library/Application Support/pageaudit
// On Windows: %LOCALAPPDATA%\pageaudit
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for pageaudit.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as a sentinel error.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 && c.ManifestPath == "" {
		return ErrNoInput
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.MinScore < 0 || c.MinScore > 100 {
		return ErrInvalidMinScore
	}

	if c.MaxFileSize < 0 {
		return ErrInvalidMaxFileSize
	}

	return nil
}

// EffectiveMaxFileSize returns MaxFileSize, or the default when unset.
func (c *Config) EffectiveMaxFileSize() int64 {
	if c.MaxFileSize == 0 {
		return DefaultMaxFileSize
	}
	return c.MaxFileSize
}
