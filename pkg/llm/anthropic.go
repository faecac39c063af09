package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"

	"github.com/vendabot/vendabot-engine/pkg/apperrors"
)

// AnthropicProposer drives the decision through a plain-text prompt: the
// model is instructed to answer with a single JSON object naming the tool
// and its parameters, which is then extracted from the response text. A
// response with no JSON object is taken as a direct prose answer.
type AnthropicProposer struct {
	client       *anthropic.Client
	model        string
	systemPrompt string
	logger       *zap.Logger
}

// AnthropicConfig holds configuration for the prompted-JSON backend.
type AnthropicConfig struct {
	Model        string
	APIKey       string
	SystemPrompt string
}

// NewAnthropicProposer creates a prompted-JSON proposer.
func NewAnthropicProposer(cfg *AnthropicConfig, logger *zap.Logger) (*AnthropicProposer, error) {
	if cfg.APIKey == "" {
		return nil, apperrors.ErrNoAPIKey
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	return &AnthropicProposer{
		client:       anthropic.NewClient(cfg.APIKey),
		model:        cfg.Model,
		systemPrompt: cfg.SystemPrompt,
		logger:       logger.Named("llm.anthropic"),
	}, nil
}

var _ Proposer = (*AnthropicProposer)(nil)

// toolEnvelope is the JSON shape the model is asked to produce.
type toolEnvelope struct {
	Tool   string         `json:"tool"`
	Params map[string]any `json:"params"`
}

// Propose sends the question plus the prose catalog rendering and parses
// the embedded {"tool": ..., "params": ...} object from the reply.
func (p *AnthropicProposer) Propose(ctx context.Context, question string, tools []ToolDefinition) (*Proposal, error) {
	prompt := renderToolPrompt(question, tools)
	start := time.Now()

	resp, err := p.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(p.model),
		MaxTokens: 1024,
		System:    p.systemPrompt,
		Messages: []anthropic.Message{
			{Role: anthropic.RoleUser, Content: []anthropic.MessageContent{
				anthropic.NewTextMessageContent(prompt),
			}},
		},
	})
	if err != nil {
		p.logger.Error("messages request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, fmt.Errorf("decision service request: %w", err)
	}

	text := firstTextBlock(resp)

	p.logger.Debug("messages request finished",
		zap.Int("response_len", len(text)),
		zap.Duration("elapsed", time.Since(start)))

	return parsePromptedProposal(text)
}

// parsePromptedProposal turns raw model output into a Proposal. Absence
// of any JSON object means the model answered in prose; a present but
// unparseable object is a bad-arguments error.
func parsePromptedProposal(text string) (*Proposal, error) {
	raw, attempted, err := ExtractJSONObject(text)
	if !attempted {
		return &Proposal{Text: text}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrBadArguments, err)
	}

	var env toolEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrBadArguments, err)
	}

	if env.Tool == "" {
		// JSON that names no tool is still a prose answer.
		return &Proposal{Text: text}, nil
	}

	if env.Params == nil {
		env.Params = map[string]any{}
	}

	return &Proposal{Tool: env.Tool, Args: env.Params}, nil
}

// firstTextBlock returns the first text content block of a response.
func firstTextBlock(resp anthropic.MessagesResponse) string {
	for _, block := range resp.Content {
		if block.Type == anthropic.MessagesContentTypeText && block.Text != nil {
			return *block.Text
		}
	}
	return ""
}

// renderToolPrompt inlines the catalog as a natural-language enumeration
// with the response contract the parser expects.
func renderToolPrompt(question string, tools []ToolDefinition) string {
	var b strings.Builder

	b.WriteString("Ferramentas disponíveis:\n\n")
	for _, t := range tools {
		schema, _ := json.Marshal(t.Parameters)
		fmt.Fprintf(&b, "- %s: %s\n  Parâmetros (JSON Schema): %s\n", t.Name, t.Description, schema)
	}

	b.WriteString("\nSe a pergunta puder ser respondida com uma ferramenta, responda SOMENTE com um objeto JSON ")
	b.WriteString(`no formato {"tool": "<nome>", "params": {...}}. Exemplo: para "qual celular vendeu mais em junho de 2024?" responda `)
	b.WriteString(`{"tool": "get_top_products", "params": {"month": 6, "year": 2024, "limit": 1}}. `)
	b.WriteString("Se nenhuma ferramenta se aplicar, responda em texto simples, sem JSON.\n\nPergunta: ")
	b.WriteString(question)

	return b.String()
}
