package audit

import (
	"errors"
	"fmt"
)

var (
	// ErrNoAgents is returned when a Coordinator has no agents to run.
	ErrNoAgents = errors.New("no agents registered")

	// ErrAgentPanic marks an agent that panicked during Audit.
	ErrAgentPanic = errors.New("agent panicked")

	// ErrInvalidResult marks an agent result that breaks the score contract:
	// a score outside 0..100, a wrong pass mark or unpaired issues.
	ErrInvalidResult = errors.New("invalid agent result")
)

// AgentError reports that one agent could not evaluate a page.
type AgentError struct {
	// Agent is the display name of the failing agent.
	Agent string

	// URL is the page being audited.
	URL string

	// Err is the cause.
	Err error
}

// Error implements the error interface.
func (e *AgentError) Error() string {
	return fmt.Sprintf("agent %s failed on %s: %v", e.Agent, e.URL, e.Err)
}

// Unwrap returns the cause.
func (e *AgentError) Unwrap() error {
	return e.Err
}
