package audit

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nao1215/pageaudit/internal/model"
)

var errMockAgent = errors.New("mock agent failure")

// mockAgent is a configurable agent for testing.
type mockAgent struct {
	id    string
	name  string
	score int

	// failOn makes Audit return errMockAgent when the markup contains it.
	failOn string

	// panicOn makes Audit panic when the markup contains it.
	panicOn string

	// delay is slept before returning.
	delay time.Duration

	calls atomic.Int32
}

func (m *mockAgent) ID() string   { return m.id }
func (m *mockAgent) Name() string { return m.name }

func (m *mockAgent) Audit(url, html string) (model.AuditResult, error) {
	m.calls.Add(1)
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if m.panicOn != "" && strings.Contains(html, m.panicOn) {
		panic("boom")
	}
	if m.failOn != "" && strings.Contains(html, m.failOn) {
		return model.AuditResult{}, errMockAgent
	}

	card := model.NewScorecard(m.name, url)
	if m.score < model.MaxScore {
		card.Deduct(model.MaxScore-m.score, "mock issue", "mock recommendation")
	}
	return card.Result(time.Time{}), nil
}

// brokenAgent returns a result that violates the score contract.
type brokenAgent struct{}

func (brokenAgent) ID() string   { return "broken" }
func (brokenAgent) Name() string { return "Broken" }

func (brokenAgent) Audit(url, _ string) (model.AuditResult, error) {
	return model.AuditResult{Agent: "Broken", Page: url, Score: 150, Passed: true}, nil
}

// mockAuditor is a PageAuditor that tracks concurrency.
type mockAuditor struct {
	delay  time.Duration
	failOn string

	// block makes Audit wait for ctx to be cancelled when the url contains it.
	block string

	active    atomic.Int32
	maxActive atomic.Int32

	mu   sync.Mutex
	seen []string
}

func (m *mockAuditor) Audit(ctx context.Context, url, html string) (*model.PageAudit, error) {
	n := m.active.Add(1)
	defer m.active.Add(-1)
	for {
		cur := m.maxActive.Load()
		if n <= cur || m.maxActive.CompareAndSwap(cur, n) {
			break
		}
	}

	m.mu.Lock()
	m.seen = append(m.seen, url)
	m.mu.Unlock()

	if m.block != "" && strings.Contains(url, m.block) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if m.failOn != "" && strings.Contains(html, m.failOn) {
		return nil, errMockAgent
	}

	card := model.NewScorecard("Mock", url)
	return model.NewPageAudit(url, html, []model.AuditResult{card.Result(time.Time{})}), nil
}
