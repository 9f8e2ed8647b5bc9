package services

import (
	"context"

	"github.com/cynthiamunja/saleSync/internal/core/domain"
	portsrepo "github.com/cynthiamunja/saleSync/internal/core/ports/repositories"
	"github.com/cynthiamunja/saleSync/internal/dto"
)

// ProductSvcFacade defines product catalog operations. Stock mutations on the
// sale path do not go through here; they belong to the inventory ledger.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error)
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, filter portsrepo.ListProductsFilter, limit, offset int) ([]domain.Product, error)
	SearchProducts(ctx context.Context, query string, limit int) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, updaterUserID string) (*domain.Product, error)

	// AdjustStock applies a manual correction; fails with ErrInsufficientStock
	// if the result would be negative. Returns the new quantity.
	AdjustStock(ctx context.Context, productID string, delta int64, updaterUserID string) (int64, error)

	ActivateProduct(ctx context.Context, productID string, updaterUserID string) error
	DeactivateProduct(ctx context.Context, productID string, updaterUserID string) error
}
