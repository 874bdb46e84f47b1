package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nao1215/pageaudit/internal/agent"
	"github.com/nao1215/pageaudit/internal/model"
)

// TestNewCoordinator tests the Coordinator constructor.
func TestNewCoordinator(t *testing.T) {
	t.Parallel()

	t.Run("uses built-in agents by default", func(t *testing.T) {
		t.Parallel()

		c := NewCoordinator()
		agents := c.Agents()
		if len(agents) != 5 {
			t.Fatalf("expected 5 agents, got %d", len(agents))
		}
		if agents[0].ID() != agent.IDDesign || agents[4].ID() != agent.IDTechnical {
			t.Errorf("unexpected agent order: %s ... %s", agents[0].ID(), agents[4].ID())
		}
		if c.logger == nil {
			t.Error("expected non-nil logger")
		}
	})

	t.Run("applies WithAgents option", func(t *testing.T) {
		t.Parallel()

		c := NewCoordinator(WithAgents(&mockAgent{id: "a", name: "A", score: 100}))
		if len(c.Agents()) != 1 {
			t.Errorf("expected 1 agent, got %d", len(c.Agents()))
		}
	})

	t.Run("empty WithAgents fails every audit", func(t *testing.T) {
		t.Parallel()

		c := NewCoordinator(WithAgents())
		_, err := c.Audit(context.Background(), "https://x", "")
		if !errors.Is(err, ErrNoAgents) {
			t.Errorf("expected ErrNoAgents, got %v", err)
		}
	})
}

// TestCoordinatorAudit tests aggregation of agent results.
func TestCoordinatorAudit(t *testing.T) {
	t.Parallel()

	t.Run("aggregates results in registration order", func(t *testing.T) {
		t.Parallel()

		// The slowest agent is registered first to show completion order
		// does not affect result order.
		c := NewCoordinator(WithAgents(
			&mockAgent{id: "a", name: "A", score: 90, delay: 20 * time.Millisecond},
			&mockAgent{id: "b", name: "B", score: 80},
			&mockAgent{id: "c", name: "C", score: 85},
		))

		page, err := c.Audit(context.Background(), "https://x", "<title> Shop </title>")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"A", "B", "C"}
		for i, r := range page.Results {
			if r.Agent != want[i] {
				t.Errorf("result %d: expected %s, got %s", i, want[i], r.Agent)
			}
		}
		// mean(90, 80, 85) = 85
		if page.OverallScore != 85 {
			t.Errorf("expected overall score 85, got %d", page.OverallScore)
		}
		if page.Status != model.StatusGood {
			t.Errorf("expected status good, got %s", page.Status)
		}
		if page.Title != "Shop" {
			t.Errorf("expected title Shop, got %q", page.Title)
		}
	})

	t.Run("rounds half up", func(t *testing.T) {
		t.Parallel()

		c := NewCoordinator(WithAgents(
			&mockAgent{id: "a", name: "A", score: 90},
			&mockAgent{id: "b", name: "B", score: 89},
		))

		page, err := c.Audit(context.Background(), "https://x", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// mean = 89.5
		if page.OverallScore != 90 {
			t.Errorf("expected overall score 90, got %d", page.OverallScore)
		}
		if page.Status != model.StatusExcellent {
			t.Errorf("expected status excellent, got %s", page.Status)
		}
	})

	t.Run("built-in agents with pinned clock", func(t *testing.T) {
		t.Parallel()

		at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
		c := NewCoordinator(WithClock(func() time.Time { return at }))

		page, err := c.Audit(context.Background(), "http://bare.example.com/", "<html><body>hello</body></html>")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(page.Results) != 5 {
			t.Fatalf("expected 5 results, got %d", len(page.Results))
		}
		for _, r := range page.Results {
			if !r.Timestamp.Equal(at) {
				t.Errorf("%s: expected pinned timestamp, got %v", r.Agent, r.Timestamp)
			}
		}
		// (40 + 30 + 50 + 35 + 55) / 5 = 42
		if page.OverallScore != 42 {
			t.Errorf("expected overall score 42, got %d", page.OverallScore)
		}
		if page.Status != model.StatusPoor {
			t.Errorf("expected status poor, got %s", page.Status)
		}
		if page.Title != model.DefaultTitle {
			t.Errorf("expected default title, got %q", page.Title)
		}
	})
}

// TestCoordinatorFailures tests that any agent failure fails the page.
func TestCoordinatorFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		agents  []agent.Agent
		html    string
		wantErr error
		agent   string
	}{
		{
			name: "agent error",
			agents: []agent.Agent{
				&mockAgent{id: "a", name: "A", score: 100},
				&mockAgent{id: "b", name: "B", score: 100, failOn: "trigger"},
			},
			html:    "<p>trigger</p>",
			wantErr: errMockAgent,
			agent:   "B",
		},
		{
			name: "agent panic",
			agents: []agent.Agent{
				&mockAgent{id: "a", name: "A", score: 100, panicOn: "trigger"},
			},
			html:    "trigger",
			wantErr: ErrAgentPanic,
			agent:   "A",
		},
		{
			name:    "result out of range",
			agents:  []agent.Agent{brokenAgent{}},
			wantErr: ErrInvalidResult,
			agent:   "Broken",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewCoordinator(WithAgents(tt.agents...))
			page, err := c.Audit(context.Background(), "https://x", tt.html)
			if page != nil {
				t.Error("expected no partial page audit")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}

			var agentErr *AgentError
			if !errors.As(err, &agentErr) {
				t.Fatalf("expected *AgentError, got %T", err)
			}
			if agentErr.Agent != tt.agent || agentErr.URL != "https://x" {
				t.Errorf("unexpected agent error identity: %+v", agentErr)
			}
		})
	}
}

// TestCoordinatorCancelled tests that a cancelled context fails the page.
func TestCoordinatorCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := &mockAgent{id: "a", name: "A", score: 100}
	c := NewCoordinator(WithAgents(a))

	page, err := c.Audit(ctx, "https://x", "")
	if page != nil {
		t.Error("expected no page audit")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if a.calls.Load() != 0 {
		t.Errorf("expected agent not to run, ran %d times", a.calls.Load())
	}
}
