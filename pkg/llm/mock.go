package llm

import (
	"context"
)

// MockProposer is a configurable Proposer for tests.
type MockProposer struct {
	// ProposeFunc is called when Propose is invoked. If nil, an empty
	// text proposal is returned.
	ProposeFunc func(ctx context.Context, question string, tools []ToolDefinition) (*Proposal, error)

	// ProposeCalls counts invocations for verification.
	ProposeCalls int

	// LastQuestion records the most recent question received.
	LastQuestion string
}

var _ Proposer = (*MockProposer)(nil)

// Propose implements Proposer.
func (m *MockProposer) Propose(ctx context.Context, question string, tools []ToolDefinition) (*Proposal, error) {
	m.ProposeCalls++
	m.LastQuestion = question
	if m.ProposeFunc != nil {
		return m.ProposeFunc(ctx, question, tools)
	}
	return &Proposal{}, nil
}
