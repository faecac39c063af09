// Command ask answers a single question from the command line, for
// offline and scripted use:
//
//	ask "qual celular vendeu mais em junho de 2024?"
//
// The answer is printed to stdout. Exit code 1 signals a missing
// argument or a construction failure (missing credentials included).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vendabot/vendabot-engine/pkg/agent"
	"github.com/vendabot/vendabot-engine/pkg/catalog"
	"github.com/vendabot/vendabot-engine/pkg/config"
	"github.com/vendabot/vendabot-engine/pkg/database"
	"github.com/vendabot/vendabot-engine/pkg/llm"
	"github.com/vendabot/vendabot-engine/pkg/logging"
	"github.com/vendabot/vendabot-engine/pkg/prompts"
	"github.com/vendabot/vendabot-engine/pkg/sales"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Erro: Pergunta não fornecida.")
		os.Exit(1)
	}
	question := os.Args[1]

	_ = godotenv.Load()

	cfg, err := config.Load("dev")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro de configuração: %v\n", err)
		os.Exit(1)
	}

	// Keep the terminal quiet below warnings; the answer is the output.
	logConfig := zap.NewDevelopmentConfig()
	logConfig.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	logger, err := logConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao criar logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	if err := sales.VerifyCatalog(catalog.Operations()); err != nil {
		fmt.Fprintf(os.Stderr, "Erro no catálogo de operações: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var db *database.DB
	if cfg.Database.URL != "" {
		db, err = database.NewConnection(ctx, &database.Config{URL: cfg.Database.URL})
		if err != nil {
			// Degraded: every query answers with an error row.
			fmt.Fprintf(os.Stderr, "Aviso: sem conexão com o banco: %s\n", logging.SanitizeError(err))
			db = nil
		} else {
			defer db.Close()
		}
	}

	proposer, err := llm.NewProposer(&cfg.LLM, prompts.System(cfg.ReportYear), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao criar cliente de IA: %v\n", err)
		os.Exit(1)
	}

	bot := agent.New(proposer, sales.NewStore(db, logger), cfg.ReportYear, logger)
	fmt.Println(bot.ProcessMessage(ctx, question))
}
