package llm

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendabot/vendabot-engine/pkg/apperrors"
)

func TestParsePromptedProposal_ToolCall(t *testing.T) {
	text := `{"tool": "get_top_products", "params": {"month": 6, "year": 2024, "limit": 1}}`

	proposal, err := parsePromptedProposal(text)
	require.NoError(t, err)
	require.True(t, proposal.IsToolCall())
	assert.Equal(t, "get_top_products", proposal.Tool)
	assert.Equal(t, float64(6), proposal.Args["month"])
	assert.Equal(t, float64(2024), proposal.Args["year"])
}

func TestParsePromptedProposal_ToolCallWithSurroundingProse(t *testing.T) {
	text := `Vou consultar os dados. {"tool": "get_monthly_revenue", "params": {"month": 3, "year": 2024}}`

	proposal, err := parsePromptedProposal(text)
	require.NoError(t, err)
	require.True(t, proposal.IsToolCall())
	assert.Equal(t, "get_monthly_revenue", proposal.Tool)
}

func TestParsePromptedProposal_ProseAnswer(t *testing.T) {
	text := "Não tenho uma consulta para isso, mas posso ajudar com dados de vendas."

	proposal, err := parsePromptedProposal(text)
	require.NoError(t, err)
	assert.False(t, proposal.IsToolCall())
	assert.Equal(t, text, proposal.Text)
}

func TestParsePromptedProposal_JSONWithoutToolIsProse(t *testing.T) {
	text := `{"answer": "olá!"}`

	proposal, err := parsePromptedProposal(text)
	require.NoError(t, err)
	assert.False(t, proposal.IsToolCall())
	assert.Equal(t, text, proposal.Text)
}

func TestParsePromptedProposal_MalformedJSONIsBadArguments(t *testing.T) {
	_, err := parsePromptedProposal(`{"tool": "get_top_products", "params": {`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrBadArguments))
}

func TestParsePromptedProposal_NilParamsBecomesEmptyMap(t *testing.T) {
	proposal, err := parsePromptedProposal(`{"tool": "get_best_selling_month"}`)
	require.NoError(t, err)
	require.True(t, proposal.IsToolCall())
	require.NotNil(t, proposal.Args)
	assert.Empty(t, proposal.Args)
}

func TestRenderToolPrompt(t *testing.T) {
	tools := []ToolDefinition{
		NewToolDefinition("get_top_products", "Produtos mais vendidos", map[string]ParameterProperty{
			"month": {Type: "integer", Description: "Mês (1-12)"},
		}, []string{"month"}),
	}

	prompt := renderToolPrompt("qual o top de vendas?", tools)

	assert.True(t, strings.Contains(prompt, "get_top_products"))
	assert.True(t, strings.Contains(prompt, "Produtos mais vendidos"))
	assert.True(t, strings.Contains(prompt, `"tool"`))
	assert.True(t, strings.Contains(prompt, "qual o top de vendas?"))
}
