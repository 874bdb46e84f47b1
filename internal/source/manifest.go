package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/pageaudit/internal/model"
	"gopkg.in/yaml.v3"
)

// Manifest lists pages to audit explicitly.
//
//	pages:
//	  - url: https://shop.example.com/
//	    file: build/index.html
type Manifest struct {
	Pages []ManifestEntry `yaml:"pages"`
}

// ManifestEntry pairs a page url with the file holding its rendered markup.
type ManifestEntry struct {
	// URL is the page address. When empty it is derived like a file input.
	URL string `yaml:"url"`

	// File is relative to the manifest's directory unless absolute.
	File string `yaml:"file"`
}

// ReadManifest parses a manifest file.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided manifest path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	if len(m.Pages) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyManifest)
	}
	for i, e := range m.Pages {
		if e.File == "" {
			return nil, fmt.Errorf("%s: page %d has no file", path, i+1)
		}
	}
	return &m, nil
}

// LoadManifest reads the pages listed in a manifest, in manifest order.
// Site patterns are not applied; a manifest is already an explicit choice.
func (l *Loader) LoadManifest(ctx context.Context, path string) ([]model.PageInput, error) {
	m, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	pages := make([]model.PageInput, 0, len(m.Pages))
	for _, e := range m.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		file := e.File
		if !filepath.IsAbs(file) {
			file = filepath.Join(dir, file)
		}

		page, err := l.loadFile(file, dir, e.URL)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	l.logger.Debug("manifest loaded", "manifest", path, "count", len(pages))
	return pages, nil
}
