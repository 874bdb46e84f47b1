package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() so callers can use
// errors.Is() while users still get a readable message.
var (
	// ErrNoInput is returned when neither input paths nor a manifest is given.
	ErrNoInput = errors.New("no input specified: provide HTML files, directories or --manifest")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidMinScore is returned when --min-score is outside 0..100.
	ErrInvalidMinScore = errors.New("invalid min score: must be between 0 and 100")

	// ErrInvalidMaxFileSize is returned when the max file size is negative.
	// Use 0 for the default limit.
	ErrInvalidMaxFileSize = errors.New("invalid max file size: must be non-negative")
)
