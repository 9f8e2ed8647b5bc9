package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines the ability to manage database transactions.
// Repositories embedding this can compose multi-statement atomic operations.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	Rollback(ctx context.Context, tx pgx.Tx) error
}
