package handlers

import (
	"net/http"
	"runtime"

	"go.uber.org/zap"

	"github.com/vendabot/vendabot-engine/pkg/config"
)

// PingResponse contains service status and version information.
type PingResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	Service     string `json:"service"`
	GoVersion   string `json:"go_version"`
	Environment string `json:"environment"`
	Database    string `json:"database"`
}

// HealthHandler handles health check and ping endpoints.
type HealthHandler struct {
	cfg         *config.Config
	dbConnected func() bool
	logger      *zap.Logger
}

// NewHealthHandler creates a HealthHandler. dbConnected reports whether
// the sales database connection is live.
func NewHealthHandler(cfg *config.Config, dbConnected func() bool, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{cfg: cfg, dbConnected: dbConnected, logger: logger}
}

// RegisterRoutes registers the health handler's routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/ping", h.Ping)
}

// Health handles GET /health requests with a bare "ok".
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ping handles GET /ping requests with service details. The service
// stays "ok" even without a database: the pipeline degrades to error-row
// answers instead of going down.
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	dbStatus := "connected"
	if h.dbConnected == nil || !h.dbConnected() {
		dbStatus = "disconnected"
	}

	response := PingResponse{
		Status:      "ok",
		Version:     h.cfg.Version,
		Service:     "vendabot-engine",
		GoVersion:   runtime.Version(),
		Environment: h.cfg.Env,
		Database:    dbStatus,
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode ping response", zap.Error(err))
	}
}
