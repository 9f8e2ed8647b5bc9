package repositories

import (
	"context"
	"time"

	"github.com/cynthiamunja/saleSync/internal/core/domain"
)

// CategoryReader defines read operations for category data.
type CategoryReader interface {
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, onlyActive bool) ([]domain.Category, error)
}

// CategoryWriter defines write operations for category data.
type CategoryWriter interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeactivateCategory(ctx context.Context, categoryID string, updatedBy string, now time.Time) error
}

// CategoryRepositoryFacade combines all category repository interfaces.
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
