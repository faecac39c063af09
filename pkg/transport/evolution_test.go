package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vendabot/vendabot-engine/pkg/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*EvolutionClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewEvolutionClient(&config.EvolutionConfig{
		BaseURL:  server.URL,
		APIKey:   "test-key",
		Instance: "vendabot",
	}, zap.NewNop())
	return client, server
}

func TestSendText(t *testing.T) {
	var (
		gotPath   string
		gotAPIKey string
		gotBody   sendTextPayload
	)
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("apikey")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	})

	err := client.SendText(context.Background(), "5511999999999@s.whatsapp.net", "📱 resposta")
	require.NoError(t, err)

	assert.Equal(t, "/message/sendText/vendabot", gotPath)
	assert.Equal(t, "test-key", gotAPIKey)
	assert.Equal(t, "5511999999999@s.whatsapp.net", gotBody.Number)
	assert.Equal(t, "📱 resposta", gotBody.TextMessage.Text)
	assert.Equal(t, 1200, gotBody.Options.Delay)
	assert.Equal(t, "composing", gotBody.Options.Presence)
}

func TestSendText_RejectedStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "instance not found"}`, http.StatusUnauthorized)
	})

	err := client.SendText(context.Background(), "5511999999999@s.whatsapp.net", "oi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestSendText_ServerDown(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	err := client.SendText(context.Background(), "5511999999999@s.whatsapp.net", "oi")
	require.Error(t, err)
}
