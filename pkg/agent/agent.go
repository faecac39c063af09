// Package agent orchestrates one inbound question end to end: resolve
// the intent with the decision service, execute the chosen operation,
// format the rows. Every failure path still produces user-visible text;
// the pipeline never answers with silence.
package agent

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/vendabot/vendabot-engine/pkg/apperrors"
	"github.com/vendabot/vendabot-engine/pkg/catalog"
	"github.com/vendabot/vendabot-engine/pkg/formatter"
	"github.com/vendabot/vendabot-engine/pkg/llm"
	"github.com/vendabot/vendabot-engine/pkg/sales"
)

// QueryExecutor runs one validated operation and returns its rows.
// *sales.Store is the production implementation.
type QueryExecutor interface {
	Execute(ctx context.Context, op catalog.Operation, args map[string]any) []sales.Row
}

// Agent ties the catalog, the decision service and the query executor
// together. It holds no per-question state: each ProcessMessage call is
// independent and nothing persists across questions.
type Agent struct {
	proposer   llm.Proposer
	executor   QueryExecutor
	tools      []llm.ToolDefinition
	reportYear int
	logger     *zap.Logger
}

// New creates an Agent. reportYear is the year assumed when a question
// does not name one.
func New(proposer llm.Proposer, executor QueryExecutor, reportYear int, logger *zap.Logger) *Agent {
	return &Agent{
		proposer:   proposer,
		executor:   executor,
		tools:      catalog.ToolDefinitions(),
		reportYear: reportYear,
		logger:     logger.Named("agent"),
	}
}

// ProcessMessage answers one question. The decision service and the
// database are each called at most once; no retries.
func (a *Agent) ProcessMessage(ctx context.Context, question string) string {
	question = strings.TrimSpace(question)

	proposal, err := a.proposer.Propose(ctx, question, a.tools)
	if err != nil {
		a.logger.Error("intent resolution failed", zap.Error(err))
		if errors.Is(err, apperrors.ErrBadArguments) {
			return "😕 Desculpe, não consegui interpretar a resposta da IA para essa pergunta. Pode reformular?"
		}
		return "🐞 Ocorreu um erro ao comunicar com a IA. Tente novamente em instantes."
	}

	// The service declined to pick a tool: its text is the answer and
	// the executor and formatter are bypassed entirely.
	if !proposal.IsToolCall() {
		return proposal.Text
	}

	desc, ok := catalog.Get(proposal.Tool)
	if !ok {
		a.logger.Warn("decision service proposed unknown tool",
			zap.String("tool", proposal.Tool))
		return "😕 Desculpe, não reconheci o tipo de consulta solicitado. Pode reformular a pergunta?"
	}

	args, err := catalog.NormalizeArgs(desc, proposal.Args, a.reportYear)
	if err != nil {
		a.logger.Warn("invalid tool arguments",
			zap.String("tool", proposal.Tool),
			zap.Error(err))
		return "😕 Desculpe, não entendi todos os detalhes da pergunta. Pode reformular incluindo o período desejado?"
	}

	a.logger.Info("executing operation",
		zap.String("operation", string(desc.Operation)),
		zap.Any("arguments", args))

	rows := a.executor.Execute(ctx, desc.Operation, args)
	return formatter.Format(desc.Operation, rows)
}
