package sales

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vendabot/vendabot-engine/pkg/catalog"
)

func TestExecute_NoDatabase(t *testing.T) {
	store := NewStore(nil, zap.NewNop())

	rows := store.Execute(context.Background(), catalog.OpTopProducts, map[string]any{"year": 2024})

	require.Len(t, rows, 1)
	detail, isErr := IsError(rows)
	assert.True(t, isErr)
	assert.Equal(t, "Sem conexão com o banco de dados.", detail)
}

func TestConnected(t *testing.T) {
	assert.False(t, (&Store{}).Connected())
}

func TestIsError(t *testing.T) {
	_, isErr := IsError(nil)
	assert.False(t, isErr)

	_, isErr = IsError([]Row{})
	assert.False(t, isErr)

	_, isErr = IsError([]Row{{"modelo": "iPhone 15"}})
	assert.False(t, isErr)

	detail, isErr := IsError([]Row{{ErrorKey: "boom"}})
	assert.True(t, isErr)
	assert.Equal(t, "boom", detail)
}
