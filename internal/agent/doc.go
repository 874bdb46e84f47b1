// Package agent provides the heuristic quality agents that score a page.
//
// # Purpose
//
// Each agent covers one quality dimension of a rendered HTML document and
// turns it into an AuditResult: a score, a pass mark and a list of issues,
// each paired with a recommendation.
//
// # Design
//
// Agents follow a rule-table pattern. Every agent is an ordered list of
// Checks; a Check is a fixed deduction plus an issue and recommendation
// string, triggered by a pattern test against the markup. Evaluate walks the
// table in order, so issue order always matches table order.
//
// The checks are literal substring and regular expression tests against the
// markup string. They intentionally do not build a DOM: "contains grid
// anywhere" is the rule, including inside scripts or comments.
//
// # Dimensions
//
//   - Design/Layout: viewport, layout system, typography, heading hierarchy
//   - SEO/Performance: title, description, structured data, links, images
//   - Content/Accessibility: alt text, landmarks, headings, text volume, ARIA
//   - E-commerce/Conversion: purchase intent, pricing, trust, social proof
//   - Technical/Security: security headers, https, unsafe JS, responsiveness
//
// # Usage
//
//	for _, a := range agent.Defaults() {
//	    result, err := a.Audit(url, html)
//	    ...
//	}
//
// Agents hold no state between calls and are safe for concurrent use.
package agent
