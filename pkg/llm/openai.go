package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/vendabot/vendabot-engine/pkg/apperrors"
)

// OpenAIProposer talks to any OpenAI-compatible chat completion endpoint
// (OpenAI, Groq) using native tool-calling.
type OpenAIProposer struct {
	client       *openai.Client
	model        string
	systemPrompt string
	logger       *zap.Logger
}

// OpenAIConfig holds configuration for the OpenAI-compatible backend.
type OpenAIConfig struct {
	BaseURL      string // e.g. "https://api.groq.com/openai/v1"
	Model        string
	APIKey       string
	SystemPrompt string
}

// NewOpenAIProposer creates a tool-calling proposer against an
// OpenAI-compatible endpoint.
func NewOpenAIProposer(cfg *OpenAIConfig, logger *zap.Logger) (*OpenAIProposer, error) {
	if cfg.APIKey == "" {
		return nil, apperrors.ErrNoAPIKey
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}

	return &OpenAIProposer{
		client:       openai.NewClientWithConfig(clientConfig),
		model:        cfg.Model,
		systemPrompt: cfg.SystemPrompt,
		logger:       logger.Named("llm.openai"),
	}, nil
}

var _ Proposer = (*OpenAIProposer)(nil)

// Propose sends the question with the tool catalog and returns the first
// tool call the model makes, or its text answer when it declines to call
// any tool. Exactly one completion request is made per question.
func (p *OpenAIProposer) Propose(ctx context.Context, question string, tools []ToolDefinition) (*Proposal, error) {
	start := time.Now()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
		Tools:      buildOpenAITools(tools),
		ToolChoice: "auto",
		MaxTokens:  4096,
	})
	if err != nil {
		p.logger.Error("completion request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, fmt.Errorf("decision service request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in decision service response")
	}

	msg := resp.Choices[0].Message

	p.logger.Debug("completion finished",
		zap.Int("tool_calls", len(msg.ToolCalls)),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("elapsed", time.Since(start)))

	if len(msg.ToolCalls) == 0 {
		return &Proposal{Text: msg.Content}, nil
	}

	call := msg.ToolCalls[0]

	var args map[string]any
	if strings.TrimSpace(call.Function.Arguments) != "" {
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			return nil, fmt.Errorf("%w: tool %q: %v", apperrors.ErrBadArguments, call.Function.Name, err)
		}
	}
	if args == nil {
		args = map[string]any{}
	}

	p.logger.Info("tool proposed",
		zap.String("tool", call.Function.Name),
		zap.String("arguments", call.Function.Arguments))

	return &Proposal{Tool: call.Function.Name, Args: args}, nil
}

// buildOpenAITools converts tool definitions to the OpenAI wire format.
func buildOpenAITools(tools []ToolDefinition) []openai.Tool {
	out := make([]openai.Tool, 0, len(tools))
	for _, t := range tools {
		out = append(out, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	return out
}
