package model

// PageInput is one caller-supplied page: a url and its rendered markup.
type PageInput struct {
	// URL is the page address. It is not validated.
	URL string `json:"url" yaml:"url"`

	// HTML is the fully rendered markup.
	HTML string `json:"-" yaml:"-"`
}

// PageFailure records a page that could not be audited.
// A failure is never represented as a score; it is listed separately.
type PageFailure struct {
	// Index is the position of the page in the batch input.
	Index int `json:"index"`

	// URL is the page that failed.
	URL string `json:"url"`

	// Reason is the error message.
	Reason string `json:"reason"`

	// Err is the underlying error for errors.Is / errors.As.
	Err error `json:"-"`
}

// Error implements the error interface.
func (f PageFailure) Error() string {
	return f.URL + ": " + f.Reason
}

// Unwrap returns the underlying error.
func (f PageFailure) Unwrap() error {
	return f.Err
}

// BatchResult is the outcome of auditing many pages.
type BatchResult struct {
	// Audits holds the successfully audited pages in input order.
	Audits []PageAudit `json:"audits"`

	// Failures holds the pages that could not be audited, in input order.
	Failures []PageFailure `json:"failures,omitempty"`
}

// HasFailures reports whether any page failed.
func (b *BatchResult) HasFailures() bool {
	return len(b.Failures) > 0
}

// FailedURLs returns the urls of all failed pages.
func (b *BatchResult) FailedURLs() []string {
	urls := make([]string, len(b.Failures))
	for i, f := range b.Failures {
		urls[i] = f.URL
	}
	return urls
}
