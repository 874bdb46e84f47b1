package source

import "errors"

var (
	// ErrUnsupportedFile is returned for an explicit input file that is not
	// .html or .htm. Such files inside directories are skipped silently.
	ErrUnsupportedFile = errors.New("unsupported file: only .html and .htm are audited")

	// ErrFileTooLarge is returned when a file exceeds the size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrEmptyManifest is returned for a manifest without pages.
	ErrEmptyManifest = errors.New("manifest lists no pages")

	// ErrNoPages is returned when the inputs contain no auditable page.
	ErrNoPages = errors.New("no HTML pages found")
)
