// Package llm abstracts the decision service that maps a free-form
// question to one analytical operation from the catalog.
package llm

import (
	"context"
)

// Proposal is the decision service's answer for one question: either a
// tool choice with raw arguments, or direct text when no tool applies.
type Proposal struct {
	// Tool is the chosen operation name. Empty when the service declined
	// to pick a tool and answered in prose instead.
	Tool string

	// Args holds the raw, unvalidated arguments for Tool.
	Args map[string]any

	// Text is the direct answer when Tool is empty.
	Text string
}

// IsToolCall reports whether the proposal names an operation to run.
func (p *Proposal) IsToolCall() bool {
	return p != nil && p.Tool != ""
}

// Proposer is the capability interface over the decision service. Given a
// question and the rendered operation catalog it returns a Proposal.
// Implementations differ in how the backing model communicates its choice
// (native tool-calling vs. JSON embedded in text); callers never know
// which backend is in use.
type Proposer interface {
	Propose(ctx context.Context, question string, tools []ToolDefinition) (*Proposal, error)
}
