package model

import (
	"math"
	"regexp"
	"strings"
)

// Status is the page-level grade derived from the overall score.
type Status string

const (
	// StatusExcellent covers overall scores 90-100.
	StatusExcellent Status = "excellent"
	// StatusGood covers overall scores 80-89.
	StatusGood Status = "good"
	// StatusNeedsImprovement covers overall scores 60-79.
	StatusNeedsImprovement Status = "needs-improvement"
	// StatusPoor covers overall scores 0-59.
	StatusPoor Status = "poor"
)

// Statuses lists every status from best to worst.
// Report writers iterate this slice so bucket order never changes.
var Statuses = []Status{
	StatusExcellent,
	StatusGood,
	StatusNeedsImprovement,
	StatusPoor,
}

// String returns the status value.
func (s Status) String() string {
	return string(s)
}

// ClassifyScore maps an overall score onto its status bucket.
// The thresholds are exhaustive and non-overlapping.
func ClassifyScore(score int) Status {
	switch {
	case score >= 90:
		return StatusExcellent
	case score >= 80:
		return StatusGood
	case score >= 60:
		return StatusNeedsImprovement
	default:
		return StatusPoor
	}
}

// DefaultTitle is used when the markup carries no usable <title>.
const DefaultTitle = "Untitled"

// titleRegex matches the first <title> element, case-insensitively and
// across line breaks.
var titleRegex = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

// ExtractTitle returns the trimmed text of the first <title> element.
// It returns DefaultTitle when there is none or it is blank.
func ExtractTitle(html string) string {
	m := titleRegex.FindStringSubmatch(html)
	if m == nil {
		return DefaultTitle
	}
	title := strings.TrimSpace(m[1])
	if title == "" {
		return DefaultTitle
	}
	return title
}

// RoundMean returns the mean of values rounded half up.
// An empty input yields 0.
func RoundMean(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return int(math.Floor(float64(sum)/float64(len(values)) + 0.5))
}

// PageAudit aggregates every agent result for one page.
type PageAudit struct {
	// URL is the audited page url.
	URL string `json:"url"`

	// Title is taken from the first <title> element.
	Title string `json:"title"`

	// Results holds one entry per agent in registration order.
	Results []AuditResult `json:"results"`

	// OverallScore is the rounded mean of the agent scores.
	OverallScore int `json:"overall_score"`

	// Status is derived from OverallScore.
	Status Status `json:"status"`
}

// NewPageAudit assembles a PageAudit from ordered agent results.
// The overall score and status are always derived here, never supplied.
func NewPageAudit(url, html string, results []AuditResult) *PageAudit {
	scores := make([]int, len(results))
	for i, r := range results {
		scores[i] = r.Score
	}
	overall := RoundMean(scores)

	owned := make([]AuditResult, len(results))
	copy(owned, results)

	return &PageAudit{
		URL:          url,
		Title:        ExtractTitle(html),
		Results:      owned,
		OverallScore: overall,
		Status:       ClassifyScore(overall),
	}
}

// TotalIssues returns the number of issues across all agents.
func (p *PageAudit) TotalIssues() int {
	total := 0
	for _, r := range p.Results {
		total += r.IssueCount()
	}
	return total
}

// Result returns the result of the named agent, if present.
func (p *PageAudit) Result(agent string) (AuditResult, bool) {
	for _, r := range p.Results {
		if r.Agent == agent {
			return r, true
		}
	}
	return AuditResult{}, false
}
