package services

import (
	"context"

	"github.com/cynthiamunja/saleSync/internal/core/domain"
	portsrepo "github.com/cynthiamunja/saleSync/internal/core/ports/repositories"
	"github.com/cynthiamunja/saleSync/internal/dto"
)

// SaleSvcFacade defines the sale transaction operations.
type SaleSvcFacade interface {
	// CreateSale validates the request, then commits the checkout atomically:
	// per-item stock reservation, receipt number allocation and the sale
	// insert succeed or fail as one unit. Validation failures
	// (ErrValidation) are rejected before any storage access. Transient
	// write conflicts (ErrConflict) are retried a bounded number of times.
	CreateSale(ctx context.Context, req dto.CreateSaleRequest, cashierID string) (*domain.Sale, error)

	// VoidSale reverses a committed sale: restores stock for every line item
	// and marks the sale inactive, atomically. Fails with ErrNotFound or
	// ErrAlreadyVoided; a retried void never double-restores stock.
	VoidSale(ctx context.Context, saleID string, voidedBy string) (*domain.Sale, error)

	GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)
	ListSales(ctx context.Context, filter portsrepo.SaleFilter, limit, offset int) ([]domain.Sale, error)
}
