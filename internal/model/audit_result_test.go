package model

import (
	"testing"
	"time"
)

// TestScorecard tests deduction bookkeeping.
func TestScorecard(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("starts at max score and passes", func(t *testing.T) {
		t.Parallel()

		r := NewScorecard("Design/Layout", "https://example.com/").Result(at)

		if r.Score != 100 {
			t.Errorf("expected score 100, got %d", r.Score)
		}
		if !r.Passed {
			t.Error("expected result to pass")
		}
		if len(r.Issues) != 0 || len(r.Recommendations) != 0 {
			t.Errorf("expected no issues, got %v / %v", r.Issues, r.Recommendations)
		}
		if !r.Timestamp.Equal(at) {
			t.Errorf("expected timestamp %v, got %v", at, r.Timestamp)
		}
	})

	t.Run("pairs issues with recommendations", func(t *testing.T) {
		t.Parallel()

		sc := NewScorecard("SEO/Performance", "u")
		sc.Deduct(25, "Missing title tag", "Add a title")
		sc.Deduct(20, "Missing meta description", "Add a description")
		r := sc.Result(at)

		if r.Score != 55 {
			t.Errorf("expected score 55, got %d", r.Score)
		}
		if r.Passed {
			t.Error("expected result to fail")
		}
		if len(r.Issues) != len(r.Recommendations) {
			t.Fatalf("issues/recommendations mismatch: %d vs %d", len(r.Issues), len(r.Recommendations))
		}
		if r.Issues[0] != "Missing title tag" || r.Recommendations[1] != "Add a description" {
			t.Errorf("unexpected pairing: %v / %v", r.Issues, r.Recommendations)
		}
	})

	t.Run("clamps at zero", func(t *testing.T) {
		t.Parallel()

		sc := NewScorecard("a", "u")
		for range 5 {
			sc.Deduct(30, "issue", "rec")
		}
		r := sc.Result(at)

		if r.Score != 0 {
			t.Errorf("expected score 0, got %d", r.Score)
		}
		if r.IssueCount() != 5 {
			t.Errorf("expected 5 issues, got %d", r.IssueCount())
		}
	})

	t.Run("ignores negative deductions", func(t *testing.T) {
		t.Parallel()

		sc := NewScorecard("a", "u")
		sc.Deduct(-10, "issue", "rec")

		if sc.Score() != 100 {
			t.Errorf("expected score 100, got %d", sc.Score())
		}
	})

	t.Run("passes exactly at threshold", func(t *testing.T) {
		t.Parallel()

		sc := NewScorecard("a", "u")
		sc.Deduct(20, "issue", "rec")
		if !sc.Result(at).Passed {
			t.Error("expected score 80 to pass")
		}
		sc.Deduct(1, "issue", "rec")
		if sc.Result(at).Passed {
			t.Error("expected score 79 to fail")
		}
	})

	t.Run("result is detached from scorecard", func(t *testing.T) {
		t.Parallel()

		sc := NewScorecard("a", "u")
		sc.Deduct(5, "first", "rec")
		r := sc.Result(at)
		sc.Deduct(5, "second", "rec")

		if len(r.Issues) != 1 {
			t.Errorf("expected frozen result to keep 1 issue, got %d", len(r.Issues))
		}
	})
}
