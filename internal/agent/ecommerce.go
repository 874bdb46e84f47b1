package agent

import "regexp"

// MinTrustSignals is the number of trust keyword occurrences a page needs.
const MinTrustSignals = 2

var (
	// Keywords are anchored at a word start so that CSS such as "border"
	// does not read as purchase intent, while "ordering" still does.
	purchaseIntentRegex = regexp.MustCompile(`(?i)\b(buy|purchase|order|add to cart)`)
	pricingRegex        = regexp.MustCompile(`(?i)[$€£¥₹]|price`)
	trustKeywordRegex   = regexp.MustCompile(`(?i)\b(trust|secure|guarantee|feedback|positive)`)
	relatedContentRegex = regexp.MustCompile(`(?i)related|you may also like|recommended|similar (products|items|books)`)
	socialProofRegex    = regexp.MustCompile(`(?i)testimonial|review|customer`)
)

// EcommerceAgent checks conversion signals: intent, pricing and trust.
type EcommerceAgent struct {
	tableAgent
}

// NewEcommerceAgent creates a new EcommerceAgent.
func NewEcommerceAgent(opts ...Option) *EcommerceAgent {
	o := newOptions(opts)
	return &EcommerceAgent{tableAgent{
		id:    IDEcommerce,
		name:  NameEcommerce,
		clock: o.Clock,
		checks: []Check{
			{
				ID:             "no_call_to_action",
				Deduction:      20,
				Issue:          "No purchase call-to-action found",
				Recommendation: "Add clear Buy or Add to Cart buttons",
				Failed:         missing(purchaseIntentRegex),
			},
			{
				ID:             "no_pricing",
				Deduction:      15,
				Issue:          "No pricing information displayed",
				Recommendation: "Show prices clearly next to each product",
				Failed:         missing(pricingRegex),
			},
			{
				ID:             "few_trust_signals",
				Deduction:      10,
				Issue:          "Insufficient trust signals",
				Recommendation: "Add secure checkout badges, guarantees and positive feedback",
				Failed: func(p Page) bool {
					return CountTrustSignals(p.HTML) < MinTrustSignals
				},
			},
			{
				ID:             "no_related_content",
				Deduction:      10,
				Issue:          "No related product or content suggestions",
				Recommendation: "Add a related items section to encourage further browsing",
				Failed:         missing(relatedContentRegex),
			},
			{
				ID:             "no_social_proof",
				Deduction:      10,
				Issue:          "No social proof (reviews or testimonials)",
				Recommendation: "Display customer reviews and testimonials",
				Failed:         missing(socialProofRegex),
			},
		},
	}}
}

// CountTrustSignals counts trust keyword occurrences in the markup.
func CountTrustSignals(html string) int {
	return len(trustKeywordRegex.FindAllStringIndex(html, -1))
}
