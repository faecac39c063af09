package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vendabot/vendabot-engine/pkg/agent"
	"github.com/vendabot/vendabot-engine/pkg/catalog"
	"github.com/vendabot/vendabot-engine/pkg/config"
	"github.com/vendabot/vendabot-engine/pkg/database"
	"github.com/vendabot/vendabot-engine/pkg/handlers"
	"github.com/vendabot/vendabot-engine/pkg/llm"
	"github.com/vendabot/vendabot-engine/pkg/logging"
	"github.com/vendabot/vendabot-engine/pkg/mcp"
	mcptools "github.com/vendabot/vendabot-engine/pkg/mcp/tools"
	"github.com/vendabot/vendabot-engine/pkg/middleware"
	"github.com/vendabot/vendabot-engine/pkg/prompts"
	"github.com/vendabot/vendabot-engine/pkg/sales"
	"github.com/vendabot/vendabot-engine/pkg/transport"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Optional .env for local development; real deployments use the
	// process environment.
	_ = godotenv.Load()

	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.Int("report_year", cfg.ReportYear),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.URL)))

	// The catalog and the executable operation set must never drift.
	if err := sales.VerifyCatalog(catalog.Operations()); err != nil {
		logger.Fatal("catalog mismatch", zap.Error(err))
	}

	// A database failure here is degraded mode, not a crash: every
	// query answers with an error row until the process restarts.
	ctx := context.Background()
	var db *database.DB
	if cfg.Database.URL != "" {
		db, err = database.NewConnection(ctx, &database.Config{URL: cfg.Database.URL})
		if err != nil {
			logger.Error("database connection failed, running degraded",
				zap.String("detail", logging.SanitizeError(err)))
			db = nil
		} else {
			defer db.Close()
			if err := database.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath, logger); err != nil {
				logger.Error("migrations failed",
					zap.String("detail", logging.SanitizeError(err)))
			}
		}
	} else {
		logger.Warn("DATABASE_URL not set, running degraded")
	}

	store := sales.NewStore(db, logger)

	proposer, err := llm.NewProposer(&cfg.LLM, prompts.System(cfg.ReportYear), logger)
	if err != nil {
		logger.Fatal("failed to create decision service client", zap.Error(err))
	}

	bot := agent.New(proposer, store, cfg.ReportYear, logger)
	evolution := transport.NewEvolutionClient(&cfg.Evolution, logger)

	mux := http.NewServeMux()

	handlers.NewWebhookHandler(bot, evolution, logger).RegisterRoutes(mux)
	handlers.NewHealthHandler(cfg, store.Connected, logger).RegisterRoutes(mux)

	mcpServer := mcp.NewServer("vendabot-engine", cfg.Version, logger)
	mcptools.RegisterSalesTools(mcpServer.MCP(), &mcptools.SalesToolDeps{
		Executor:   store,
		ReportYear: cfg.ReportYear,
		Logger:     logger,
	})
	mcptools.RegisterHealthTool(mcpServer.MCP(), cfg.Version, store.Connected)
	mux.Handle("/mcp", mcpServer.NewStreamableHTTPServer())

	handler := middleware.AccessLog(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("starting vendabot-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
