package agent

import (
	"time"

	"github.com/nao1215/pageaudit/internal/model"
)

// Agent IDs, in registration order.
const (
	IDDesign    = "design"
	IDSEO       = "seo"
	IDContent   = "content"
	IDEcommerce = "ecommerce"
	IDTechnical = "technical"
)

// Agent display names, used as AuditResult.Agent.
const (
	NameDesign    = "Design/Layout"
	NameSEO       = "SEO/Performance"
	NameContent   = "Content/Accessibility"
	NameEcommerce = "E-commerce/Conversion"
	NameTechnical = "Technical/Security"
)

// Agent scores a single page along one quality dimension.
//
// Audit must be a pure function of its inputs: the same url and markup always
// yield the same score, issues and recommendations. An error means the page
// could not be evaluated at all; it is never a low score.
type Agent interface {
	// ID returns a short identifier such as "seo".
	ID() string

	// Name returns the display name such as "SEO/Performance".
	Name() string

	// Audit evaluates the page.
	Audit(url, html string) (model.AuditResult, error)
}

// Options configures the built-in agents.
type Options struct {
	// SiteDomains are extra hosts whose absolute links count as internal
	// for the SEO agent. The page's own host always counts.
	SiteDomains []string

	// Clock stamps result timestamps. Defaults to time.Now.
	Clock func() time.Time
}

// Option configures Options.
type Option func(*Options)

// WithSiteDomains adds hosts treated as internal by the SEO agent.
func WithSiteDomains(domains ...string) Option {
	return func(o *Options) {
		o.SiteDomains = append(o.SiteDomains, domains...)
	}
}

// WithClock sets the clock used to stamp results.
func WithClock(clock func() time.Time) Option {
	return func(o *Options) {
		if clock != nil {
			o.Clock = clock
		}
	}
}

func newOptions(opts []Option) Options {
	o := Options{Clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Defaults returns the five built-in agents in registration order:
// Design, SEO, Content, Ecommerce, Technical.
func Defaults(opts ...Option) []Agent {
	return []Agent{
		NewDesignAgent(opts...),
		NewSEOAgent(opts...),
		NewContentAgent(opts...),
		NewEcommerceAgent(opts...),
		NewTechnicalAgent(opts...),
	}
}

// RuleTable is implemented by agents backed by a check table.
type RuleTable interface {
	Agent
	Checks() []Check
}

// Checks returns the rule table of a, or nil when a is not table-driven.
func Checks(a Agent) []Check {
	if rt, ok := a.(RuleTable); ok {
		return rt.Checks()
	}
	return nil
}
