package agent

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vendabot/vendabot-engine/pkg/apperrors"
	"github.com/vendabot/vendabot-engine/pkg/catalog"
	"github.com/vendabot/vendabot-engine/pkg/llm"
	"github.com/vendabot/vendabot-engine/pkg/sales"
)

// fakeExecutor records the operation and arguments it was asked to run
// and returns canned rows.
type fakeExecutor struct {
	rows     []sales.Row
	lastOp   catalog.Operation
	lastArgs map[string]any
	calls    int
}

func (f *fakeExecutor) Execute(_ context.Context, op catalog.Operation, args map[string]any) []sales.Row {
	f.calls++
	f.lastOp = op
	f.lastArgs = args
	return f.rows
}

func TestProcessMessage_ToolCall(t *testing.T) {
	executor := &fakeExecutor{rows: []sales.Row{{
		"modelo":            "iPhone 15",
		"fabricante":        "Apple",
		"unidades_vendidas": int64(1200),
		"receita_total":     float64(1199880),
	}}}
	proposer := &llm.MockProposer{
		ProposeFunc: func(_ context.Context, _ string, _ []llm.ToolDefinition) (*llm.Proposal, error) {
			return &llm.Proposal{
				Tool: "get_top_products",
				Args: map[string]any{"month": float64(6), "year": float64(2024), "limit": float64(1)},
			}, nil
		},
	}

	a := New(proposer, executor, 2024, zap.NewNop())
	answer := a.ProcessMessage(context.Background(), "qual celular vendeu mais em junho de 2024?")

	assert.Equal(t, 1, proposer.ProposeCalls)
	assert.Equal(t, 1, executor.calls)
	assert.Equal(t, catalog.OpTopProducts, executor.lastOp)
	assert.Equal(t, map[string]any{"month": 6, "year": 2024, "limit": 1}, executor.lastArgs)
	assert.Contains(t, answer, "iPhone 15 (Apple)")
	assert.Contains(t, answer, "1,200")
	assert.Contains(t, answer, "1,199,880.00")
}

func TestProcessMessage_FillsDefaultYear(t *testing.T) {
	executor := &fakeExecutor{rows: []sales.Row{{
		"mes_nome":       "Novembro",
		"receita_total":  float64(3200000),
		"total_unidades": int64(4100),
	}}}
	proposer := &llm.MockProposer{
		ProposeFunc: func(_ context.Context, _ string, _ []llm.ToolDefinition) (*llm.Proposal, error) {
			return &llm.Proposal{Tool: "get_best_selling_month", Args: map[string]any{}}, nil
		},
	}

	a := New(proposer, executor, 2024, zap.NewNop())
	a.ProcessMessage(context.Background(), "qual foi o melhor mês de vendas?")

	require.Equal(t, 1, executor.calls)
	assert.Equal(t, 2024, executor.lastArgs["year"])
}

func TestProcessMessage_DirectTextBypassesExecutor(t *testing.T) {
	executor := &fakeExecutor{}
	proposer := &llm.MockProposer{
		ProposeFunc: func(_ context.Context, _ string, _ []llm.ToolDefinition) (*llm.Proposal, error) {
			return &llm.Proposal{Text: "Olá! Posso ajudar com dados de vendas de smartphones."}, nil
		},
	}

	a := New(proposer, executor, 2024, zap.NewNop())
	answer := a.ProcessMessage(context.Background(), "oi, tudo bem?")

	assert.Equal(t, "Olá! Posso ajudar com dados de vendas de smartphones.", answer)
	assert.Zero(t, executor.calls)
}

func TestProcessMessage_UnknownTool(t *testing.T) {
	executor := &fakeExecutor{}
	proposer := &llm.MockProposer{
		ProposeFunc: func(_ context.Context, _ string, _ []llm.ToolDefinition) (*llm.Proposal, error) {
			return &llm.Proposal{Tool: "get_weather", Args: map[string]any{}}, nil
		},
	}

	a := New(proposer, executor, 2024, zap.NewNop())
	answer := a.ProcessMessage(context.Background(), "vai chover amanhã?")

	assert.Contains(t, answer, "não reconheci o tipo de consulta")
	assert.Zero(t, executor.calls)
}

func TestProcessMessage_InvalidArguments(t *testing.T) {
	executor := &fakeExecutor{}
	proposer := &llm.MockProposer{
		ProposeFunc: func(_ context.Context, _ string, _ []llm.ToolDefinition) (*llm.Proposal, error) {
			// month is required and missing.
			return &llm.Proposal{Tool: "get_monthly_revenue", Args: map[string]any{"year": float64(2024)}}, nil
		},
	}

	a := New(proposer, executor, 2024, zap.NewNop())
	answer := a.ProcessMessage(context.Background(), "qual a receita?")

	assert.Contains(t, answer, "não entendi todos os detalhes")
	assert.Zero(t, executor.calls)
}

func TestProcessMessage_ProposerBadArguments(t *testing.T) {
	proposer := &llm.MockProposer{
		ProposeFunc: func(_ context.Context, _ string, _ []llm.ToolDefinition) (*llm.Proposal, error) {
			return nil, fmt.Errorf("%w: malformed JSON", apperrors.ErrBadArguments)
		},
	}

	a := New(proposer, &fakeExecutor{}, 2024, zap.NewNop())
	answer := a.ProcessMessage(context.Background(), "???")

	assert.Contains(t, answer, "não consegui interpretar a resposta da IA")
}

func TestProcessMessage_ProposerFailure(t *testing.T) {
	proposer := &llm.MockProposer{
		ProposeFunc: func(_ context.Context, _ string, _ []llm.ToolDefinition) (*llm.Proposal, error) {
			return nil, errors.New("connection refused")
		},
	}

	a := New(proposer, &fakeExecutor{}, 2024, zap.NewNop())
	answer := a.ProcessMessage(context.Background(), "qual o top de vendas?")

	assert.Contains(t, answer, "🐞 Ocorreu um erro ao comunicar com a IA")
}

func TestProcessMessage_TrimsQuestion(t *testing.T) {
	proposer := &llm.MockProposer{
		ProposeFunc: func(_ context.Context, question string, _ []llm.ToolDefinition) (*llm.Proposal, error) {
			return &llm.Proposal{Text: "ok"}, nil
		},
	}

	a := New(proposer, &fakeExecutor{}, 2024, zap.NewNop())
	a.ProcessMessage(context.Background(), "  qual o top?  ")

	assert.Equal(t, "qual o top?", proposer.LastQuestion)
}
