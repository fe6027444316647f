package source

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/hzlparlak/Crm-Analytics/internal/domain/model"
)

// PostgresSource reads transactions from a Postgres table.
type PostgresSource struct {
	dsn string
}

// NewPostgresSource creates a Postgres-backed source. The DSN uses the
// usual keyword/value or URL form accepted by lib/pq.
func NewPostgresSource(dsn string) *PostgresSource {
	return &PostgresSource{dsn: dsn}
}

// Load opens a connection, verifies it, and reads the transactions table.
func (s *PostgresSource) Load(ctx context.Context) ([]model.Transaction, error) {
	db, err := sql.Open("postgres", s.dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenSource, err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: ping postgres: %w", ErrOpenSource, err)
	}

	rows, err := db.QueryContext(ctx, transactionQuery)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}
