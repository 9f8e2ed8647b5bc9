package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// ReceiptCounterRepository allocates receipt sequence numbers.
type ReceiptCounterRepository interface {
	// NextReceiptSequenceInTx atomically increments and returns the counter
	// for the (year, month) period, creating it at 1 on first use. Two
	// concurrent callers never observe the same value; gaps from aborted
	// sales are acceptable.
	NextReceiptSequenceInTx(ctx context.Context, tx pgx.Tx, year int, month int) (int64, error)
}
