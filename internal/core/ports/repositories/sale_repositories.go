package repositories

import (
	"context"
	"time"

	"github.com/cynthiamunja/saleSync/internal/core/domain"
)

// SaleFilter narrows a sale listing. Nil/zero fields are ignored.
type SaleFilter struct {
	CashierID string
	IsActive  *bool
	From      *time.Time
	To        *time.Time
}

// SaleReader defines read operations for sale data.
type SaleReader interface {
	// FindSaleByID retrieves a sale with its line items.
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// ListSales retrieves sales matching the filter, newest first, items included.
	ListSales(ctx context.Context, filter SaleFilter, limit, offset int) ([]domain.Sale, error)
}

// SaleWriter defines the transactional write operations for sales.
type SaleWriter interface {
	// CreateSale commits a checkout as one database transaction: it reserves
	// stock for every line item through the inventory ledger, allocates the
	// receipt sequence for the sale's period, freezes per-line price/cost
	// snapshots, and inserts the sale with its items. On any failure the
	// transaction aborts and no stock decrement, sequence row or sale record
	// is visible. The returned sale carries the generated receipt number,
	// the frozen snapshots and the computed total.
	CreateSale(ctx context.Context, sale domain.Sale) (*domain.Sale, error)

	// VoidSale reverses a committed sale as one database transaction: it
	// locks the sale row, rejects ErrNotFound / ErrAlreadyVoided, restores
	// stock for every line item and flips is_active to false. Safe to retry;
	// a second void cannot double-restore stock.
	VoidSale(ctx context.Context, saleID string, voidedBy string, now time.Time) (*domain.Sale, error)
}

// SaleRepositoryFacade combines all sale repository interfaces.
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
}
