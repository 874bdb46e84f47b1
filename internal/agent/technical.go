package agent

import (
	"regexp"
	"strings"
)

var (
	securityHeaderRegex = regexp.MustCompile(
		`(?i)content-security-policy|x-frame-options|strict-transport-security|x-content-type-options|referrer-policy`,
	)
	unsafeJSRegex      = regexp.MustCompile(`eval\(|innerHTML`)
	errorHandlingRegex = regexp.MustCompile(`(?i)onerror|catch\s*\(|error-boundary|error-message|role\s*=\s*["']alert["']`)
	responsiveRegex    = regexp.MustCompile(`(?i)@media|responsive`)
)

// TechnicalAgent checks transport security, unsafe scripting and robustness.
type TechnicalAgent struct {
	tableAgent
}

// NewTechnicalAgent creates a new TechnicalAgent.
func NewTechnicalAgent(opts ...Option) *TechnicalAgent {
	o := newOptions(opts)
	return &TechnicalAgent{tableAgent{
		id:    IDTechnical,
		name:  NameTechnical,
		clock: o.Clock,
		checks: []Check{
			{
				ID:             "no_security_headers",
				Deduction:      10,
				Issue:          "No security headers declared",
				Recommendation: "Declare a Content-Security-Policy and X-Frame-Options for the page",
				Failed:         missing(securityHeaderRegex),
			},
			{
				ID:             "not_https",
				Deduction:      20,
				Issue:          "Page is not served over HTTPS",
				Recommendation: "Serve the page over HTTPS and redirect plain HTTP",
				Failed: func(p Page) bool {
					return !strings.HasPrefix(p.URL, "https://")
				},
			},
			{
				ID:             "unsafe_javascript",
				Deduction:      10,
				Issue:          "Unsafe JavaScript patterns (eval or innerHTML)",
				Recommendation: "Replace eval and innerHTML with safe DOM APIs such as textContent",
				Failed:         present(unsafeJSRegex),
			},
			{
				ID:             "no_error_handling",
				Deduction:      5,
				Issue:          "No visible error handling",
				Recommendation: "Handle script and resource errors and show a user-facing error state",
				Failed:         missing(errorHandlingRegex),
			},
			{
				ID:             "not_responsive",
				Deduction:      10,
				Issue:          "No responsive design rules detected",
				Recommendation: "Add CSS media queries for small and large screens",
				Failed:         missing(responsiveRegex),
			},
		},
	}}
}
