package model

import "time"

// Summary is the aggregate view over a set of page audits.
type Summary struct {
	// TotalPages is the number of audited pages.
	TotalPages int `json:"total_pages"`

	// === Status Buckets ===

	// Excellent is the number of pages scoring 90-100.
	Excellent int `json:"excellent"`

	// Good is the number of pages scoring 80-89.
	Good int `json:"good"`

	// NeedsImprovement is the number of pages scoring 60-79.
	NeedsImprovement int `json:"needs_improvement"`

	// Poor is the number of pages scoring 0-59.
	Poor int `json:"poor"`

	// AverageScore is the rounded mean of the overall scores.
	// Zero when there are no pages.
	AverageScore int `json:"average_score"`
}

// NewSummary computes a Summary from page audits.
func NewSummary(audits []PageAudit) Summary {
	s := Summary{TotalPages: len(audits)}
	scores := make([]int, len(audits))

	for i, a := range audits {
		scores[i] = a.OverallScore
		switch a.Status {
		case StatusExcellent:
			s.Excellent++
		case StatusGood:
			s.Good++
		case StatusNeedsImprovement:
			s.NeedsImprovement++
		case StatusPoor:
			s.Poor++
		}
	}

	s.AverageScore = RoundMean(scores)
	return s
}

// Count returns the number of pages in the given status bucket.
func (s Summary) Count(status Status) int {
	switch status {
	case StatusExcellent:
		return s.Excellent
	case StatusGood:
		return s.Good
	case StatusNeedsImprovement:
		return s.NeedsImprovement
	case StatusPoor:
		return s.Poor
	default:
		return 0
	}
}

// AverageStatus classifies the average score.
func (s Summary) AverageStatus() Status {
	return ClassifyScore(s.AverageScore)
}

// Report is everything a report writer needs.
type Report struct {
	// GeneratedAt is the single non-deterministic value in a report.
	GeneratedAt time.Time `json:"generated_at"`

	// Summary is computed from Audits.
	Summary Summary `json:"summary"`

	// Audits are the page audits in input order.
	Audits []PageAudit `json:"audits"`

	// Failures are pages that could not be audited.
	Failures []PageFailure `json:"failures,omitempty"`
}

// NewReport builds a Report for the given audits.
func NewReport(audits []PageAudit, generatedAt time.Time) *Report {
	return &Report{
		GeneratedAt: generatedAt,
		Summary:     NewSummary(audits),
		Audits:      audits,
	}
}

// NewBatchReport builds a Report from a batch outcome, keeping its failures.
func NewBatchReport(result *BatchResult, generatedAt time.Time) *Report {
	r := NewReport(result.Audits, generatedAt)
	r.Failures = result.Failures
	return r
}
