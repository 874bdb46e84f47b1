package agent

import "regexp"

var (
	viewportRegex = regexp.MustCompile(`(?i)viewport`)
	layoutRegex   = regexp.MustCompile(`(?i)grid|flex`)
	serifRegex    = regexp.MustCompile(`(?i)serif|georgia`)
	h1Regex       = regexp.MustCompile(`(?i)<h1[\s>]`)
	h2Regex       = regexp.MustCompile(`(?i)<h2[\s>]`)

	// blackOnBlackRegex matches a black text colour immediately followed by a
	// black background in the same declaration block.
	blackOnBlackRegex = regexp.MustCompile(
		`(?i)color:\s*(#000000|#000|black)\s*;\s*background(-color)?:\s*(#000000|#000|black)`,
	)
)

// DesignAgent checks layout, typography and visual hierarchy.
type DesignAgent struct {
	tableAgent
}

// NewDesignAgent creates a new DesignAgent.
func NewDesignAgent(opts ...Option) *DesignAgent {
	o := newOptions(opts)
	return &DesignAgent{tableAgent{
		id:    IDDesign,
		name:  NameDesign,
		clock: o.Clock,
		checks: []Check{
			{
				ID:             "missing_viewport",
				Deduction:      20,
				Issue:          "Missing viewport meta tag",
				Recommendation: "Add <meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"> for mobile layouts",
				Failed:         missing(viewportRegex),
			},
			{
				ID:             "no_modern_layout",
				Deduction:      15,
				Issue:          "No CSS grid or flexbox layout detected",
				Recommendation: "Use CSS grid or flexbox for responsive page structure",
				Failed:         missing(layoutRegex),
			},
			{
				ID:             "no_serif_typography",
				Deduction:      10,
				Issue:          "No serif typography detected",
				Recommendation: "Use a readable serif font stack such as Georgia for long-form text",
				Failed:         missing(serifRegex),
			},
			{
				ID:             "weak_heading_hierarchy",
				Deduction:      15,
				Issue:          "Incomplete heading hierarchy (missing h1 or h2)",
				Recommendation: "Structure the page with one h1 and descriptive h2 section headings",
				Failed: func(p Page) bool {
					return !h1Regex.MatchString(p.HTML) || !h2Regex.MatchString(p.HTML)
				},
			},
			{
				ID:             "black_on_black",
				Deduction:      10,
				Issue:          "Black text on black background detected",
				Recommendation: "Fix the color contrast so text is readable against its background",
				Failed:         present(blackOnBlackRegex),
			},
		},
	}}
}
