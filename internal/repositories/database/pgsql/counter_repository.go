package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/cynthiamunja/saleSync/internal/core/ports/repositories"
	"github.com/cynthiamunja/saleSync/internal/models"
)

type PgxReceiptCounterRepository struct {
	db *pgxpool.Pool
}

func newPgxReceiptCounterRepository(db *pgxpool.Pool) portsrepo.ReceiptCounterRepository {
	return &PgxReceiptCounterRepository{db: db}
}

var _ portsrepo.ReceiptCounterRepository = (*PgxReceiptCounterRepository)(nil)

// NextReceiptSequenceInTx allocates the next sequence for a period. The
// insert-or-increment upsert is a single statement: first use of a period
// creates the row at 1, and concurrent allocators serialize on the row lock,
// so no two transactions ever read the same value. The caller's transaction
// aborting leaves a gap in the sequence, never a duplicate.
func (r *PgxReceiptCounterRepository) NextReceiptSequenceInTx(ctx context.Context, tx pgx.Tx, year int, month int) (int64, error) {
	query := `
        INSERT INTO receipt_counters (year, month, sequence)
        VALUES ($1, $2, 1)
        ON CONFLICT (year, month) DO UPDATE SET sequence = receipt_counters.sequence + 1
        RETURNING year, month, sequence;
    `
	var counter models.ReceiptCounter
	if err := tx.QueryRow(ctx, query, year, month).Scan(&counter.Year, &counter.Month, &counter.Sequence); err != nil {
		return 0, fmt.Errorf("failed to allocate receipt sequence for %d-%02d: %w", year, month, translatePgError(err))
	}
	return counter.Sequence, nil
}
