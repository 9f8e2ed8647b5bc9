package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cynthiamunja/saleSync/internal/apperrors"
	"github.com/cynthiamunja/saleSync/internal/core/domain"
	portsrepo "github.com/cynthiamunja/saleSync/internal/core/ports/repositories"
	portssvc "github.com/cynthiamunja/saleSync/internal/core/ports/services"
	"github.com/cynthiamunja/saleSync/internal/dto"
	"github.com/cynthiamunja/saleSync/internal/middleware"
)

// productService provides product catalog operations.
type productService struct {
	productRepo  portsrepo.ProductRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.ProductSvcFacade {
	return &productService{productRepo: productRepo, categoryRepo: categoryRepo}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

func (s *productService) checkCategoryExists(ctx context.Context, categoryID string) error {
	if _, err := s.categoryRepo.FindCategoryByID(ctx, categoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("category %s does not exist: %w", categoryID, apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to check category %s: %w", categoryID, err)
	}
	return nil
}

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Price.LessThan(decimal.Zero) || req.CostPrice.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("price and cost price must be non-negative: %w", apperrors.ErrValidation)
	}
	if req.StockQuantity < 0 {
		return nil, fmt.Errorf("stock quantity must be non-negative: %w", apperrors.ErrValidation)
	}
	if err := s.checkCategoryExists(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := domain.Product{
		ProductID:     uuid.NewString(),
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		CostPrice:     req.CostPrice,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID), slog.String("name", product.Name))
	return &product, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product by ID: %w", err)
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, filter portsrepo.ListProductsFilter, limit, offset int) ([]domain.Product, error) {
	products, err := s.productRepo.ListProducts(ctx, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *productService) SearchProducts(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is required: %w", apperrors.ErrValidation)
	}
	products, err := s.productRepo.SearchProductsByName(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, updaterUserID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product for update: %w", err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("price must be non-negative: %w", apperrors.ErrValidation)
		}
		product.Price = *req.Price
	}
	if req.CostPrice != nil {
		if req.CostPrice.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("cost price must be non-negative: %w", apperrors.ErrValidation)
		}
		product.CostPrice = *req.CostPrice
	}
	if req.CategoryID != nil {
		if err := s.checkCategoryExists(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *req.CategoryID
	}

	product.LastUpdatedAt = time.Now().UTC()
	product.LastUpdatedBy = updaterUserID

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

// AdjustStock applies a manual correction through the repository's guarded
// update. Price snapshots on past sales are unaffected.
func (s *productService) AdjustStock(ctx context.Context, productID string, delta int64, updaterUserID string) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if delta == 0 {
		return 0, fmt.Errorf("stock adjustment cannot be zero: %w", apperrors.ErrValidation)
	}

	newQuantity, err := s.productRepo.AdjustStock(ctx, productID, delta, updaterUserID, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to adjust stock: %w", err)
	}

	logger.Info("Stock adjusted",
		slog.String("product_id", productID),
		slog.Int64("delta", delta),
		slog.Int64("new_quantity", newQuantity),
	)
	return newQuantity, nil
}

func (s *productService) ActivateProduct(ctx context.Context, productID string, updaterUserID string) error {
	if err := s.productRepo.SetProductActive(ctx, productID, true, updaterUserID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to activate product: %w", err)
	}
	return nil
}

func (s *productService) DeactivateProduct(ctx context.Context, productID string, updaterUserID string) error {
	if err := s.productRepo.SetProductActive(ctx, productID, false, updaterUserID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to deactivate product: %w", err)
	}
	return nil
}
