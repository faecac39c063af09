package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vendabot/vendabot-engine/pkg/transport"
)

// eventNewMessage is the Evolution API event for an inbound message.
const eventNewMessage = "messages.upsert"

// Responder answers one question with user-facing text. Implemented by
// *agent.Agent.
type Responder interface {
	ProcessMessage(ctx context.Context, question string) string
}

// WebhookHandler receives Evolution API webhooks and replies through the
// outbound transport.
type WebhookHandler struct {
	responder Responder
	sender    transport.Sender
	logger    *zap.Logger
}

// NewWebhookHandler creates a WebhookHandler.
func NewWebhookHandler(responder Responder, sender transport.Sender, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		responder: responder,
		sender:    sender,
		logger:    logger.Named("webhook"),
	}
}

// RegisterRoutes registers the webhook route on the given mux.
func (h *WebhookHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/webhook", h.Webhook)
}

// webhookPayload is the subset of the messages.upsert event we consume.
type webhookPayload struct {
	Event string `json:"event"`
	Data  *struct {
		Key struct {
			RemoteJid string `json:"remoteJid"`
			FromMe    bool   `json:"fromMe"`
		} `json:"key"`
		Message struct {
			Conversation string `json:"conversation"`
		} `json:"message"`
	} `json:"data"`
}

// Webhook handles POST /webhook. Every recognized-but-incomplete payload
// is acknowledged with 200 and ignored: the Evolution API retries on
// non-2xx and there is nothing useful to retry.
func (h *WebhookHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		_ = ErrorResponse(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}

	var payload webhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_payload", "body is not valid JSON")
		return
	}

	if payload.Event != eventNewMessage || payload.Data == nil {
		_ = WriteJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	if payload.Data.Key.FromMe {
		_ = WriteJSON(w, http.StatusOK, map[string]string{"status": "ignored_from_me"})
		return
	}

	sender := payload.Data.Key.RemoteJid
	text := payload.Data.Message.Conversation
	if sender == "" || text == "" {
		_ = WriteJSON(w, http.StatusOK, map[string]string{"status": "received"})
		return
	}

	requestID := uuid.NewString()
	logger := h.logger.With(zap.String("request_id", requestID))
	logger.Info("inbound message",
		zap.String("sender", sender),
		zap.Int("text_len", len(text)))

	reply := h.responder.ProcessMessage(r.Context(), text)

	// A transport failure must not fail the webhook: log it and ack.
	if err := h.sender.SendText(r.Context(), sender, reply); err != nil {
		logger.Error("failed to send reply", zap.Error(err))
	}

	_ = WriteJSON(w, http.StatusOK, map[string]string{"status": "received"})
}
