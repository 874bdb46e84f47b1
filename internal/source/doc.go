// Package source loads already-rendered HTML pages for auditing.
//
// Pages come from local files, directories walked recursively for .html
// and .htm files, or a YAML manifest pairing urls with files. Nothing is
// fetched over the network and no script is executed; the markup is
// audited exactly as it was saved.
//
// # Page urls
//
// Each page needs a url because several checks depend on it (HTTPS, own
// host for internal links). The url is chosen in this order:
//  1. the url given in the manifest entry
//  2. the base url joined with the file path relative to the input root
//  3. the canonical link declared in the markup
//  4. a file:// url of the absolute path
//
// # Encodings
//
// Files are decoded to UTF-8 with golang.org/x/net/html/charset, which
// honours a byte order mark or a <meta charset> declaration and falls back
// to windows-1252 for invalid UTF-8.
//
// # Usage
//
//	loader := source.NewLoader(source.WithBaseURL("https://shop.example.com"))
//	pages, err := loader.Load(ctx, []string{"public/"})
package source
