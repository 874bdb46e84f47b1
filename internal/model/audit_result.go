package model

import "time"

// PassThreshold is the minimum score at which an agent result passes.
const PassThreshold = 80

// MaxScore is the starting score of every agent evaluation.
const MaxScore = 100

// AuditResult is one agent's verdict for one page.
//
// Issues and Recommendations are positionally paired: Issues[i] is the
// problem that Recommendations[i] addresses. Results are built through a
// Scorecard, which keeps the pairing and the score bounds intact.
type AuditResult struct {
	// Agent is the display name of the quality dimension.
	Agent string `json:"agent"`

	// Page is the audited url. It is opaque and never validated.
	Page string `json:"page"`

	// Score is in the range [0, 100].
	Score int `json:"score"`

	// Passed is true when Score >= PassThreshold.
	Passed bool `json:"passed"`

	// Issues lists the triggered checks in rule-table order.
	Issues []string `json:"issues"`

	// Recommendations lists one remedy per issue.
	Recommendations []string `json:"recommendations"`

	// Timestamp is when the evaluation happened. Informational only.
	Timestamp time.Time `json:"timestamp"`
}

// IssueCount returns the number of triggered checks.
func (r AuditResult) IssueCount() int {
	return len(r.Issues)
}

// Scorecard accumulates deductions for a single agent evaluation.
// It starts at MaxScore and never drops below zero.
type Scorecard struct {
	agent           string
	page            string
	score           int
	issues          []string
	recommendations []string
}

// NewScorecard starts a scorecard for the given agent and page.
func NewScorecard(agent, page string) *Scorecard {
	return &Scorecard{
		agent:           agent,
		page:            page,
		score:           MaxScore,
		issues:          make([]string, 0),
		recommendations: make([]string, 0),
	}
}

// Deduct subtracts points and records the issue with its recommendation.
// Negative point values are treated as zero.
func (s *Scorecard) Deduct(points int, issue, recommendation string) {
	if points < 0 {
		points = 0
	}
	s.score -= points
	if s.score < 0 {
		s.score = 0
	}
	s.issues = append(s.issues, issue)
	s.recommendations = append(s.recommendations, recommendation)
}

// Score returns the current score.
func (s *Scorecard) Score() int {
	return s.score
}

// Result freezes the scorecard into an AuditResult stamped with at.
func (s *Scorecard) Result(at time.Time) AuditResult {
	issues := make([]string, len(s.issues))
	copy(issues, s.issues)
	recs := make([]string, len(s.recommendations))
	copy(recs, s.recommendations)

	return AuditResult{
		Agent:           s.agent,
		Page:            s.page,
		Score:           s.score,
		Passed:          s.score >= PassThreshold,
		Issues:          issues,
		Recommendations: recs,
		Timestamp:       at,
	}
}
