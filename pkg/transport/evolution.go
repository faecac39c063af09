// Package transport sends outbound messages through the Evolution API.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/vendabot/vendabot-engine/pkg/config"
)

// Sender delivers a text reply to a recipient. Implemented by
// EvolutionClient; handlers accept the interface so tests can fake it.
type Sender interface {
	SendText(ctx context.Context, recipient, text string) error
}

// EvolutionClient posts messages to an Evolution API instance.
type EvolutionClient struct {
	baseURL    string
	apiKey     string
	instance   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewEvolutionClient creates a client for the configured instance.
func NewEvolutionClient(cfg *config.EvolutionConfig, logger *zap.Logger) *EvolutionClient {
	return &EvolutionClient{
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		instance: cfg.Instance,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger.Named("evolution"),
	}
}

var _ Sender = (*EvolutionClient)(nil)

// sendTextPayload is the Evolution API sendText body. The composing
// presence and delay make the reply feel typed rather than instantaneous.
type sendTextPayload struct {
	Number  string `json:"number"`
	Options struct {
		Delay    int    `json:"delay"`
		Presence string `json:"presence"`
	} `json:"options"`
	TextMessage struct {
		Text string `json:"text"`
	} `json:"textMessage"`
}

// SendText posts one text message addressed to recipient.
func (c *EvolutionClient) SendText(ctx context.Context, recipient, text string) error {
	endpoint, err := url.JoinPath(c.baseURL, "message", "sendText", c.instance)
	if err != nil {
		return fmt.Errorf("build sendText URL: %w", err)
	}

	var payload sendTextPayload
	payload.Number = recipient
	payload.Options.Delay = 1200
	payload.Options.Presence = "composing"
	payload.TextMessage.Text = text

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal sendText payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create sendText request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call Evolution API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Error("Evolution API rejected message",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(respBody)))
		return fmt.Errorf("Evolution API returned status %d", resp.StatusCode)
	}

	c.logger.Info("message sent",
		zap.String("recipient", recipient),
		zap.Int("text_len", len(text)))
	return nil
}
