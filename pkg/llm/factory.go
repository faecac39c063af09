package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/vendabot/vendabot-engine/pkg/config"
)

// NewProposer builds the configured decision-service backend. Both
// implementations satisfy Proposer; callers never learn which one they
// got.
func NewProposer(cfg *config.LLMConfig, systemPrompt string, logger *zap.Logger) (Proposer, error) {
	switch cfg.Provider {
	case "groq", "openai":
		return NewOpenAIProposer(&OpenAIConfig{
			BaseURL:      cfg.BaseURL,
			Model:        cfg.Model,
			APIKey:       cfg.APIKey,
			SystemPrompt: systemPrompt,
		}, logger)
	case "anthropic":
		return NewAnthropicProposer(&AnthropicConfig{
			Model:        cfg.AnthropicModel,
			APIKey:       cfg.AnthropicAPIKey,
			SystemPrompt: systemPrompt,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}
