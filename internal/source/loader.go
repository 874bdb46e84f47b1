package source

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/pageaudit/internal/config"
	"github.com/nao1215/pageaudit/internal/model"
)

// Loader reads rendered HTML pages from the local filesystem.
type Loader struct {
	// baseURL is joined with relative file paths to form page urls.
	baseURL string

	// maxFileSize limits the bytes read from a single file.
	maxFileSize int64

	// sites supplies per-host ignore/follow patterns. May be nil.
	sites *config.File

	logger *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithBaseURL sets the url prefix for file inputs.
func WithBaseURL(baseURL string) Option {
	return func(l *Loader) {
		l.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithMaxFileSize sets the per-file size limit in bytes.
// Non-positive values keep the default.
func WithMaxFileSize(n int64) Option {
	return func(l *Loader) {
		if n > 0 {
			l.maxFileSize = n
		}
	}
}

// WithSites applies the ignore/follow patterns of a configuration file.
func WithSites(sites *config.File) Option {
	return func(l *Loader) {
		l.sites = sites
	}
}

// WithLogger sets a custom logger for the Loader.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		maxFileSize: config.DefaultMaxFileSize,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l
}

// Load reads every page named by paths. A path is an .html/.htm file or a
// directory walked recursively. Pages are returned in argument order, and
// within a directory in lexical order. A file given twice is loaded once.
func (l *Loader) Load(ctx context.Context, paths []string) ([]model.PageInput, error) {
	var pages []model.PageInput
	seen := make(map[string]bool)

	for _, p := range paths {
		files, root, err := l.expand(p)
		if err != nil {
			return nil, err
		}

		for _, file := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			abs, err := filepath.Abs(file)
			if err != nil {
				return nil, err
			}
			if seen[abs] {
				continue
			}
			seen[abs] = true

			page, err := l.loadFile(file, root, "")
			if err != nil {
				return nil, err
			}
			if !l.accept(page.URL) {
				l.logger.Debug("page skipped by pattern", "url", page.URL, "file", file)
				continue
			}
			pages = append(pages, page)
		}
	}

	if len(pages) == 0 {
		return nil, ErrNoPages
	}

	l.logger.Debug("pages loaded", "count", len(pages))
	return pages, nil
}

// expand resolves a path argument to its HTML files and the root used for
// relative urls.
func (l *Loader) expand(path string) ([]string, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to access %s: %w", path, err)
	}

	if !info.IsDir() {
		if !isHTMLFile(path) {
			return nil, "", fmt.Errorf("%s: %w", path, ErrUnsupportedFile)
		}
		return []string{path}, filepath.Dir(path), nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Hidden directories such as .git never hold pages.
			if p != path && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if isHTMLFile(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to walk %s: %w", path, err)
	}
	return files, path, nil
}

// loadFile reads and decodes one file. When pageURL is empty it is derived
// from the base url, the canonical link or the file path.
func (l *Loader) loadFile(file, root, pageURL string) (model.PageInput, error) {
	data, err := l.readFile(file)
	if err != nil {
		return model.PageInput{}, err
	}

	markup, err := decodeHTML(data)
	if err != nil {
		return model.PageInput{}, fmt.Errorf("failed to decode %s: %w", file, err)
	}

	if pageURL == "" {
		pageURL, err = l.pageURL(file, root, markup)
		if err != nil {
			return model.PageInput{}, err
		}
	}
	return model.PageInput{URL: pageURL, HTML: markup}, nil
}

func (l *Loader) readFile(file string) ([]byte, error) {
	f, err := os.Open(file) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, l.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	if int64(len(data)) > l.maxFileSize {
		return nil, fmt.Errorf("%s exceeds %d bytes: %w", file, l.maxFileSize, ErrFileTooLarge)
	}
	return data, nil
}

func (l *Loader) pageURL(file, root, markup string) (string, error) {
	if l.baseURL != "" {
		rel, err := filepath.Rel(root, file)
		if err != nil {
			return "", err
		}
		return l.baseURL + "/" + filepath.ToSlash(rel), nil
	}

	if canonical := canonicalURL(markup); canonical != "" {
		return canonical, nil
	}

	abs, err := filepath.Abs(file)
	if err != nil {
		return "", err
	}
	return "file://" + filepath.ToSlash(abs), nil
}

// accept applies the site patterns for the page's host.
func (l *Loader) accept(pageURL string) bool {
	if l.sites == nil {
		return true
	}
	sc := l.sites.GetSiteConfigForURL(pageURL)
	return shouldAudit(pageURL, sc.IgnorePatterns, sc.FollowPatterns)
}

func isHTMLFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	default:
		return false
	}
}
