// Package main provides the entry point for the pageaudit CLI.
//
// pageaudit scores rendered HTML pages along five quality dimensions:
// design/layout, SEO/performance, content/accessibility,
// e-commerce/conversion and technical/security.
//
// Usage:
//
//	pageaudit audit ./build
//	pageaudit audit --manifest pages.yaml
//	pageaudit history https://shop.example.com/
//
// See --help for all available options.
package main

// main is the entry point for pageaudit.
func main() {
	Execute()
}
