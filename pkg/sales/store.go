// Package sales executes the fixed analytical operations against the
// vendas_smartphones fact table.
package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/vendabot/vendabot-engine/pkg/catalog"
	"github.com/vendabot/vendabot-engine/pkg/database"
	"github.com/vendabot/vendabot-engine/pkg/logging"
)

// errEmptyProductList signals a multi-product lookup with nothing to look
// up; Execute maps it to an empty result rather than an error row.
var errEmptyProductList = errors.New("empty product list")

// Store runs catalog operations against the sales database. A nil db is
// a supported degraded mode: every execution yields an error row instead
// of data, and the process keeps serving.
type Store struct {
	db     *database.DB
	logger *zap.Logger
}

// NewStore creates a Store over the given connection. db may be nil when
// the startup connection failed.
func NewStore(db *database.DB, logger *zap.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger.Named("sales"),
	}
}

// Connected reports whether the store has a live database connection.
func (s *Store) Connected() bool {
	return s.db != nil
}

// Execute runs one operation with normalized arguments and returns its
// rows. Failures never propagate: any fault rolls the transaction back
// and comes back as a single error row the formatter can render.
func (s *Store) Execute(ctx context.Context, op catalog.Operation, args map[string]any) []Row {
	if s.db == nil {
		return errorResult("Sem conexão com o banco de dados.")
	}

	query, params, err := BuildQuery(op, args)
	if err != nil {
		if errors.Is(err, errEmptyProductList) {
			return []Row{}
		}
		return errorResult(fmt.Sprintf("Erro ao montar a consulta: %v", err))
	}

	rows, err := s.query(ctx, query, params)
	if err != nil {
		s.logger.Error("query failed",
			zap.String("operation", string(op)),
			zap.String("detail", logging.SanitizeError(err)))
		return errorResult(fmt.Sprintf("Erro ao executar query: %v", err))
	}

	return rows
}

// query runs one read inside a read-only transaction. The deferred
// rollback guarantees no transaction state survives a failure path.
func (s *Store) query(ctx context.Context, query string, params []any) ([]Row, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	pgRows, err := tx.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer pgRows.Close()

	fieldDescs := pgRows.FieldDescriptions()
	columns := make([]string, len(fieldDescs))
	for i, fd := range fieldDescs {
		columns[i] = string(fd.Name)
	}

	result := make([]Row, 0)
	for pgRows.Next() {
		values, err := pgRows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row values: %w", err)
		}

		row := make(Row, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		result = append(result, row)
	}
	if err := pgRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	pgRows.Close()

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return result, nil
}
