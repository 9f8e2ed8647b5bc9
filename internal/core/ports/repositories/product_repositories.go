package repositories

import (
	"context"
	"time"

	"github.com/cynthiamunja/saleSync/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ListProductsFilter narrows a product listing.
type ListProductsFilter struct {
	CategoryID string
	OnlyActive bool
}

// ProductReader defines read operations for product data.
type ProductReader interface {
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, filter ListProductsFilter, limit, offset int) ([]domain.Product, error)
	SearchProductsByName(ctx context.Context, query string, limit int) ([]domain.Product, error)
}

// ProductWriter defines write operations for product data outside the sale path.
type ProductWriter interface {
	SaveProduct(ctx context.Context, product domain.Product) error
	UpdateProduct(ctx context.Context, product domain.Product) error

	// AdjustStock applies a manual stock correction (delta may be negative).
	// The update is conditional: it fails with ErrInsufficientStock when the
	// adjustment would take stock below zero. Returns the new quantity.
	AdjustStock(ctx context.Context, productID string, delta int64, updatedBy string, now time.Time) (int64, error)

	SetProductActive(ctx context.Context, productID string, active bool, updatedBy string, now time.Time) error
}

// ReservedStock is what the ledger returns for a successful reservation: the
// remaining quantity plus the price/cost snapshot read in the same statement,
// so the frozen sale prices are exactly the ones the decrement saw.
type ReservedStock struct {
	NewStockQuantity int64
	UnitPrice        decimal.Decimal
	UnitCost         decimal.Decimal
	ProductName      string
}

// InventoryLedger owns all stock mutations on the sale path. Both operations
// run inside a caller-provided transaction so a sale's reservations, receipt
// allocation and record insert commit or abort as one unit.
type InventoryLedger interface {
	// ReserveStockInTx atomically decrements stock by quantity iff the
	// product is active and has at least that much on hand. The check and
	// the decrement are a single conditional UPDATE; there is no
	// read-then-write window. Fails with ErrNotFound, ErrProductInactive or
	// ErrInsufficientStock.
	ReserveStockInTx(ctx context.Context, tx pgx.Tx, productID string, quantity int64) (*ReservedStock, error)

	// ReleaseStockInTx unconditionally increments stock for each item.
	// Used only by void compensation; never fails on stock bounds.
	ReleaseStockInTx(ctx context.Context, tx pgx.Tx, items []domain.SaleItem) error
}

// ProductRepositoryFacade combines all product repository interfaces.
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
	InventoryLedger
}
