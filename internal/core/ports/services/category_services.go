package services

import (
	"context"

	"github.com/cynthiamunja/saleSync/internal/core/domain"
	"github.com/cynthiamunja/saleSync/internal/dto"
)

// CategorySvcFacade defines category management operations.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, onlyActive bool) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, updaterUserID string) (*domain.Category, error)
	DeactivateCategory(ctx context.Context, categoryID string, updaterUserID string) error
}
