package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/pageaudit/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages audited at the same time
// when WithConcurrency is not given.
const DefaultConcurrency = 10

// PageHook is called once per page as soon as it finishes.
// Exactly one of page and err is non-nil. It runs on worker goroutines,
// so it must be safe for concurrent use.
type PageHook func(index int, url string, page *model.PageAudit, err error)

// BatchAuditor audits many pages concurrently.
// It uses errgroup to manage goroutines and respect the concurrency limit.
type BatchAuditor struct {
	// auditor evaluates one page. Each call is independent.
	auditor PageAuditor

	// concurrency is the maximum number of pages audited at once.
	concurrency int

	// hook is notified per finished page. May be nil.
	hook PageHook

	logger *slog.Logger
}

// BatchOption configures a BatchAuditor.
type BatchOption func(*BatchAuditor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchAuditor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent page audits.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchAuditor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithPageHook registers a callback for finished pages.
func WithPageHook(hook PageHook) BatchOption {
	return func(b *BatchAuditor) {
		b.hook = hook
	}
}

// NewBatchAuditor creates a BatchAuditor that delegates each page to auditor.
func NewBatchAuditor(auditor PageAuditor, opts ...BatchOption) *BatchAuditor {
	b := &BatchAuditor{
		auditor:     auditor,
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// Concurrency returns the configured concurrency limit.
func (b *BatchAuditor) Concurrency() int {
	return b.concurrency
}

// Run audits every page and returns the successful audits in input order
// together with the failures.
//
// A page failure never stops the batch. When ctx is cancelled, pages that
// already finished are kept, pages that had not finished are recorded as
// failures carrying the context error, and Run returns the partial result
// with ctx.Err().
func (b *BatchAuditor) Run(ctx context.Context, pages []model.PageInput) (*model.BatchResult, error) {
	b.logger.Info("starting batch audit",
		"total_pages", len(pages),
		"concurrency", b.concurrency,
	)
	startTime := time.Now()

	// Index-owned slots keep the input order without locking.
	audits := make([]*model.PageAudit, len(pages))
	errs := make([]error, len(pages))

	var g errgroup.Group
	g.SetLimit(b.concurrency)

	for i, page := range pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				b.notify(i, page.URL, nil, err)
				return nil
			}

			b.logger.Debug("auditing page",
				"url", page.URL,
				"index", i+1,
				"total", len(pages),
			)

			audit, err := b.auditor.Audit(ctx, page.URL, page.HTML)
			if err != nil {
				// The page is recorded as failed; other pages continue.
				b.logger.Warn("page audit failed",
					"url", page.URL,
					"error", err,
				)
				errs[i] = err
				b.notify(i, page.URL, nil, err)
				return nil
			}

			audits[i] = audit
			b.notify(i, page.URL, audit, nil)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := collect(pages, audits, errs)

	b.logger.Info("batch audit complete",
		"total_pages", len(pages),
		"audited", len(result.Audits),
		"failed", len(result.Failures),
		"elapsed", time.Since(startTime),
	)

	return result, ctx.Err()
}

func (b *BatchAuditor) notify(index int, url string, page *model.PageAudit, err error) {
	if b.hook != nil {
		b.hook(index, url, page, err)
	}
}

func collect(pages []model.PageInput, audits []*model.PageAudit, errs []error) *model.BatchResult {
	result := &model.BatchResult{
		Audits: make([]model.PageAudit, 0, len(pages)),
	}
	for i, page := range pages {
		if errs[i] != nil {
			result.Failures = append(result.Failures, model.PageFailure{
				Index:  i,
				URL:    page.URL,
				Reason: errs[i].Error(),
				Err:    errs[i],
			})
			continue
		}
		result.Audits = append(result.Audits, *audits[i])
	}
	return result
}
