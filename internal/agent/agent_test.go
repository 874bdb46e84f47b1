package agent

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

// TestDefaults tests registration order and identity of the built-in agents.
func TestDefaults(t *testing.T) {
	t.Parallel()

	agents := Defaults()

	wantIDs := []string{IDDesign, IDSEO, IDContent, IDEcommerce, IDTechnical}
	wantNames := []string{NameDesign, NameSEO, NameContent, NameEcommerce, NameTechnical}

	if len(agents) != len(wantIDs) {
		t.Fatalf("expected %d agents, got %d", len(wantIDs), len(agents))
	}
	for i, a := range agents {
		if a.ID() != wantIDs[i] {
			t.Errorf("agent %d: expected id %q, got %q", i, wantIDs[i], a.ID())
		}
		if a.Name() != wantNames[i] {
			t.Errorf("agent %d: expected name %q, got %q", i, wantNames[i], a.Name())
		}
		if _, ok := a.(RuleTable); !ok {
			t.Errorf("agent %s does not expose its rule table", a.ID())
		}
	}
}

// TestPerfectPage tests that a page satisfying every rule scores 100 everywhere.
func TestPerfectPage(t *testing.T) {
	t.Parallel()

	for _, a := range Defaults(WithClock(fixedClock)) {
		t.Run(a.ID(), func(t *testing.T) {
			t.Parallel()

			r, err := a.Audit(perfectURL, perfectPage)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Score != 100 {
				t.Errorf("expected score 100, got %d (issues: %v)", r.Score, r.Issues)
			}
			if !r.Passed {
				t.Error("expected result to pass")
			}
			if r.Agent != a.Name() || r.Page != perfectURL {
				t.Errorf("unexpected identity: agent=%q page=%q", r.Agent, r.Page)
			}
			if !r.Timestamp.Equal(fixedTime) {
				t.Errorf("expected pinned timestamp, got %v", r.Timestamp)
			}
		})
	}
}

// TestBarePage tests the exact scores of a page with almost nothing in it.
func TestBarePage(t *testing.T) {
	t.Parallel()

	want := map[string]int{
		IDDesign:    40,
		IDSEO:       30,
		IDContent:   50,
		IDEcommerce: 35,
		IDTechnical: 55,
	}

	for _, a := range Defaults() {
		r, err := a.Audit("http://bare.example.com/", barePage)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", a.ID(), err)
		}
		if r.Score != want[a.ID()] {
			t.Errorf("%s: expected score %d, got %d (issues: %v)", a.ID(), want[a.ID()], r.Score, r.Issues)
		}
		if r.Passed {
			t.Errorf("%s: expected result to fail", a.ID())
		}
	}
}

// TestResultInvariants tests score bounds, pass mark and pairing over
// a spread of inputs.
func TestResultInvariants(t *testing.T) {
	t.Parallel()

	inputs := []struct{ url, html string }{
		{"", ""},
		{"http://x", barePage},
		{perfectURL, perfectPage},
		{"https://shop.example.com/", seoFullMarks},
		{"ftp://odd", strings.Repeat("<img>", 50)},
		{"https://a", `<div style="color: #000; background: #000">eval(x) innerHTML</div>`},
		{"not a url", "\xff\xfe invalid utf-8 <title>x</title>"},
	}

	for _, in := range inputs {
		for _, a := range Defaults() {
			r, err := a.Audit(in.url, in.html)
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", a.ID(), err)
			}
			if r.Score < 0 || r.Score > 100 {
				t.Errorf("%s: score %d out of range", a.ID(), r.Score)
			}
			if r.Passed != (r.Score >= 80) {
				t.Errorf("%s: passed=%v with score %d", a.ID(), r.Passed, r.Score)
			}
			if len(r.Issues) != len(r.Recommendations) {
				t.Errorf("%s: %d issues vs %d recommendations", a.ID(), len(r.Issues), len(r.Recommendations))
			}
		}
	}
}

// TestIdempotence tests that auditing the same input twice yields the same
// verdict apart from the timestamp.
func TestIdempotence(t *testing.T) {
	t.Parallel()

	for _, a := range Defaults() {
		first, err := a.Audit("http://x", barePage)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", a.ID(), err)
		}
		time.Sleep(time.Millisecond)
		second, err := a.Audit("http://x", barePage)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", a.ID(), err)
		}

		first.Timestamp = time.Time{}
		second.Timestamp = time.Time{}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("%s: results differ:\n%+v\n%+v", a.ID(), first, second)
		}
	}
}

// TestEvaluate tests the rule-table engine in isolation.
func TestEvaluate(t *testing.T) {
	t.Parallel()

	always := func(Page) bool { return true }
	never := func(Page) bool { return false }

	checks := []Check{
		{ID: "a", Deduction: 60, Issue: "A", Recommendation: "fix A", Failed: always},
		{ID: "b", Deduction: 10, Issue: "B", Recommendation: "fix B", Failed: never},
		{ID: "c", Deduction: 60, Issue: "C", Recommendation: "fix C", Failed: always},
	}

	r := Evaluate("Test", checks, Page{URL: "u"}, fixedTime)

	if r.Score != 0 {
		t.Errorf("expected clamped score 0, got %d", r.Score)
	}
	if !reflect.DeepEqual(r.Issues, []string{"A", "C"}) {
		t.Errorf("unexpected issues %v", r.Issues)
	}
	if !reflect.DeepEqual(r.Recommendations, []string{"fix A", "fix C"}) {
		t.Errorf("unexpected recommendations %v", r.Recommendations)
	}
}

// TestChecksAreCopied tests that callers cannot mutate an agent's table.
func TestChecksAreCopied(t *testing.T) {
	t.Parallel()

	a := NewDesignAgent()
	checks := a.Checks()
	checks[0].Deduction = 99

	if a.Checks()[0].Deduction != 20 {
		t.Error("expected rule table to be unaffected by caller mutation")
	}
}

// TestDeductionTotals tests that every table's deductions match its dimension.
func TestDeductionTotals(t *testing.T) {
	t.Parallel()

	want := map[string]int{
		IDDesign:    70,
		IDSEO:       90,
		IDContent:   65,
		IDEcommerce: 65,
		IDTechnical: 55,
	}

	for _, a := range Defaults() {
		total := 0
		for _, c := range a.(RuleTable).Checks() {
			total += c.Deduction
			if c.Issue == "" || c.Recommendation == "" {
				t.Errorf("%s/%s: empty issue or recommendation", a.ID(), c.ID)
			}
		}
		if total != want[a.ID()] {
			t.Errorf("%s: expected total deduction %d, got %d", a.ID(), want[a.ID()], total)
		}
	}
}
