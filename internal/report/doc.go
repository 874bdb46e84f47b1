// Package report renders page audits for people and tools.
//
// This package contains writers for different output formats:
//   - TextWriter: plain text for terminals and CI artifacts (see Generate)
//   - MarkdownWriter: Markdown with a status pie chart for pull requests
//   - JSONWriter: structured JSON for tool integration
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed with MultiWriter for multi-format output.
// Report data structures live in the model package.
package report
