package agent

import (
	"regexp"
	"time"

	"github.com/nao1215/pageaudit/internal/model"
)

// Page is the input a check is evaluated against.
type Page struct {
	URL  string
	HTML string
}

// Check is one heuristic rule: a fixed deduction applied when Failed
// reports true, together with the issue it describes and how to fix it.
type Check struct {
	// ID identifies the check within its agent, e.g. "missing_title".
	ID string

	// Deduction is the number of points subtracted when the check fails.
	Deduction int

	// Issue is the human-readable problem description.
	Issue string

	// Recommendation is the paired remedy.
	Recommendation string

	// Failed reports whether the page triggers this check.
	Failed func(p Page) bool
}

// Evaluate runs checks in order against the page and returns the result.
// Each failed check contributes exactly one issue and one recommendation.
func Evaluate(agentName string, checks []Check, p Page, at time.Time) model.AuditResult {
	card := model.NewScorecard(agentName, p.URL)
	for _, c := range checks {
		if c.Failed(p) {
			card.Deduct(c.Deduction, c.Issue, c.Recommendation)
		}
	}
	return card.Result(at)
}

// tableAgent implements Agent on top of a check table.
type tableAgent struct {
	id     string
	name   string
	checks []Check
	clock  func() time.Time
}

// ID returns the agent ID.
func (a *tableAgent) ID() string {
	return a.id
}

// Name returns the agent display name.
func (a *tableAgent) Name() string {
	return a.name
}

// Checks returns a copy of the agent's rule table.
func (a *tableAgent) Checks() []Check {
	out := make([]Check, len(a.checks))
	copy(out, a.checks)
	return out
}

// Audit evaluates the page against the rule table.
func (a *tableAgent) Audit(url, html string) (model.AuditResult, error) {
	return Evaluate(a.name, a.checks, Page{URL: url, HTML: html}, a.clock()), nil
}

// missing returns a predicate that fails when re does not match the markup.
func missing(re *regexp.Regexp) func(Page) bool {
	return func(p Page) bool {
		return !re.MatchString(p.HTML)
	}
}

// present returns a predicate that fails when re matches the markup.
func present(re *regexp.Regexp) func(Page) bool {
	return func(p Page) bool {
		return re.MatchString(p.HTML)
	}
}

// imgTagRegex matches a single <img> start tag.
var imgTagRegex = regexp.MustCompile(`(?is)<img\b[^>]*>`)

// anyImage reports whether any <img> tag satisfies pred.
func anyImage(html string, pred func(tag string) bool) bool {
	for _, tag := range imgTagRegex.FindAllString(html, -1) {
		if pred(tag) {
			return true
		}
	}
	return false
}
