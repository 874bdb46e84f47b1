package agent

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinVisibleTextLength is the minimum number of characters of visible text.
const MinVisibleTextLength = 300

var (
	altAttrRegex    = regexp.MustCompile(`(?is)\balt\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'>]+))`)
	landmarkRegex   = regexp.MustCompile(`(?i)<(main|article|section)[\s>]`)
	anyHeadingRegex = regexp.MustCompile(`(?i)<h[1-6][\s>]`)
	skipNavRegex    = regexp.MustCompile(`(?i)skip[\s_-]?(to[\s_-]?)?(main|content|nav)|skip-link`)
	ariaAttrRegex   = regexp.MustCompile(`(?i)\baria-[a-z]+\s*=|\brole\s*=`)
	tagRegex        = regexp.MustCompile(`(?s)<[^>]*>`)
)

// ContentAgent checks accessibility affordances and content volume.
type ContentAgent struct {
	tableAgent
}

// NewContentAgent creates a new ContentAgent.
func NewContentAgent(opts ...Option) *ContentAgent {
	o := newOptions(opts)
	return &ContentAgent{tableAgent{
		id:    IDContent,
		name:  NameContent,
		clock: o.Clock,
		checks: []Check{
			{
				ID:             "image_missing_alt",
				Deduction:      15,
				Issue:          "Images missing alt text",
				Recommendation: "Add descriptive alt text to every informative image",
				Failed: func(p Page) bool {
					return anyImage(p.HTML, func(tag string) bool {
						return !hasAltText(tag)
					})
				},
			},
			{
				ID:             "no_semantic_landmarks",
				Deduction:      10,
				Issue:          "No semantic HTML landmarks (main, article, section)",
				Recommendation: "Wrap content in <main>, <article> or <section> elements",
				Failed:         missing(landmarkRegex),
			},
			{
				ID:             "no_headings",
				Deduction:      20,
				Issue:          "No heading structure found",
				Recommendation: "Organize content with h1-h6 headings",
				Failed:         missing(anyHeadingRegex),
			},
			{
				ID:             "no_skip_navigation",
				Deduction:      5,
				Issue:          "Missing skip navigation link",
				Recommendation: "Add a \"Skip to main content\" link for keyboard users",
				Failed:         missing(skipNavRegex),
			},
			{
				ID:             "thin_content",
				Deduction:      10,
				Issue:          "Insufficient text content",
				Recommendation: "Provide at least 300 characters of meaningful text",
				Failed: func(p Page) bool {
					return utf8.RuneCountInString(VisibleText(p.HTML)) < MinVisibleTextLength
				},
			},
			{
				ID:             "no_aria",
				Deduction:      5,
				Issue:          "No ARIA attributes found",
				Recommendation: "Add ARIA labels and roles to interactive elements",
				Failed:         missing(ariaAttrRegex),
			},
		},
	}}
}

// VisibleText strips every tag from the markup and trims the result.
// Runs of whitespace inside the text are kept as they are.
func VisibleText(html string) string {
	return strings.TrimSpace(tagRegex.ReplaceAllString(html, ""))
}

// hasAltText reports whether an <img> tag carries a non-empty alt attribute.
func hasAltText(tag string) bool {
	m := altAttrRegex.FindStringSubmatch(tag)
	if m == nil {
		return false
	}
	value := m[1] + m[2] + m[3]
	return strings.TrimSpace(value) != ""
}
