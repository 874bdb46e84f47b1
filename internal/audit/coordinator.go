package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/pageaudit/internal/agent"
	"github.com/nao1215/pageaudit/internal/model"
	"golang.org/x/sync/errgroup"
)

// PageAuditor audits a single page.
// Coordinator implements it; BatchAuditor depends only on this interface.
type PageAuditor interface {
	Audit(ctx context.Context, url, html string) (*model.PageAudit, error)
}

// Coordinator runs every registered agent against one page and
// aggregates the results.
type Coordinator struct {
	// agents in registration order. Results keep this order.
	agents []agent.Agent

	// clock is passed to the built-in agents when no agents are given.
	clock func() time.Time

	// agentsSet records whether WithAgents was used.
	agentsSet bool

	logger *slog.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithAgents replaces the built-in agents.
// Calling it with no agents leaves the Coordinator empty and every Audit
// call fails with ErrNoAgents.
func WithAgents(agents ...agent.Agent) Option {
	return func(c *Coordinator) {
		c.agents = append([]agent.Agent(nil), agents...)
		c.agentsSet = true
	}
}

// WithLogger sets a custom logger for the Coordinator.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// WithClock sets the clock used by the built-in agents to stamp results.
// It has no effect on agents supplied with WithAgents.
func WithClock(clock func() time.Time) Option {
	return func(c *Coordinator) {
		c.clock = clock
	}
}

// NewCoordinator creates a Coordinator.
// Without WithAgents it runs agent.Defaults.
func NewCoordinator(opts ...Option) *Coordinator {
	c := &Coordinator{}
	for _, opt := range opts {
		opt(c)
	}

	if !c.agentsSet {
		c.agents = agent.Defaults(agent.WithClock(c.clock))
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Agents returns the registered agents in registration order.
func (c *Coordinator) Agents() []agent.Agent {
	return append([]agent.Agent(nil), c.agents...)
}

// Audit evaluates one page with every agent concurrently.
//
// Each agent writes into its own slot so the joined results are in
// registration order regardless of completion order. The first agent
// failure is returned as *AgentError and no PageAudit is produced.
// A cancelled context also fails the page.
func (c *Coordinator) Audit(ctx context.Context, url, html string) (*model.PageAudit, error) {
	if len(c.agents) == 0 {
		return nil, ErrNoAgents
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("audit %s: %w", url, err)
	}

	results := make([]model.AuditResult, len(c.agents))

	g, gctx := errgroup.WithContext(ctx)
	for i, a := range c.agents {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := runAgent(a, url, html)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.logger.Debug("page audit failed",
			"url", url,
			"error", err,
		)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("audit %s: %w", url, err)
	}

	page := model.NewPageAudit(url, html, results)

	c.logger.Debug("page audited",
		"url", url,
		"overall_score", page.OverallScore,
		"status", page.Status.String(),
	)
	return page, nil
}

// runAgent calls a.Audit and converts errors and panics into *AgentError.
func runAgent(a agent.Agent, url, html string) (result model.AuditResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &AgentError{
				Agent: a.Name(),
				URL:   url,
				Err:   fmt.Errorf("%w: %v", ErrAgentPanic, r),
			}
		}
	}()

	result, err = a.Audit(url, html)
	if err != nil {
		return model.AuditResult{}, &AgentError{Agent: a.Name(), URL: url, Err: err}
	}
	if err := validateResult(result); err != nil {
		return model.AuditResult{}, &AgentError{Agent: a.Name(), URL: url, Err: err}
	}
	return result, nil
}

func validateResult(r model.AuditResult) error {
	switch {
	case r.Score < 0 || r.Score > model.MaxScore:
		return fmt.Errorf("%w: score %d out of range", ErrInvalidResult, r.Score)
	case r.Passed != (r.Score >= model.PassThreshold):
		return fmt.Errorf("%w: passed=%t with score %d", ErrInvalidResult, r.Passed, r.Score)
	case len(r.Issues) != len(r.Recommendations):
		return fmt.Errorf("%w: %d issues but %d recommendations",
			ErrInvalidResult, len(r.Issues), len(r.Recommendations))
	}
	return nil
}
