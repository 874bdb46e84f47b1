package source

import (
	"net/url"
	"path/filepath"
	"strings"
)

// shouldAudit checks if a page url passes the ignore/follow patterns.
//
// Logic:
//  1. If the url path matches any ignore pattern, skip it
//  2. If follow patterns are set and the path matches none, skip it
//  3. Otherwise, audit it
func shouldAudit(pageURL string, ignorePatterns, followPatterns []string) bool {
	u, err := url.Parse(pageURL)
	if err != nil {
		return false
	}

	path := u.Path
	if path == "" {
		path = "/"
	}

	for _, pattern := range ignorePatterns {
		if matchPattern(pattern, path) {
			return false
		}
	}

	if len(followPatterns) == 0 {
		return true
	}
	for _, pattern := range followPatterns {
		if matchPattern(pattern, path) {
			return true
		}
	}
	return false
}

// matchPattern checks if a path matches a glob pattern.
// Patterns can use:
//   - * to match any sequence of non-separator characters
//   - ? to match any single character
//   - a trailing /* to match everything below a directory
//
// Examples:
//   - "/drafts/*" matches "/drafts/a.html", "/drafts/2025/b.html"
//   - "*.htm" matches "/legacy/index.htm"
//   - "/v?/index.html" matches "/v1/index.html"
func matchPattern(pattern, path string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
		if strings.HasPrefix(path, prefix+"/") || path == prefix {
			return true
		}
	}

	if strings.HasPrefix(pattern, "*.") && !strings.Contains(pattern, "/") {
		if strings.HasSuffix(path, strings.TrimPrefix(pattern, "*")) {
			return true
		}
	}

	matched, err := filepath.Match(pattern, path)
	if err == nil && matched {
		return true
	}

	// Patterns without a slash are tried against the last segment too.
	if !strings.Contains(pattern, "/") {
		matched, err := filepath.Match(pattern, filepath.Base(path))
		if err == nil && matched {
			return true
		}
	}
	return false
}
