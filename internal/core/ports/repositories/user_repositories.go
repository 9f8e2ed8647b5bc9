package repositories

import (
	"context"
	"time"

	"github.com/cynthiamunja/saleSync/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsersByRole retrieves users holding a specific role;
	// onlyActive restricts the result to active users.
	FindUsersByRole(ctx context.Context, role domain.UserRole, onlyActive bool) ([]domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	SaveUser(ctx context.Context, user domain.User) error
	UpdateUser(ctx context.Context, user domain.User) error
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error
	DeactivateUser(ctx context.Context, userID string, updatedBy string, now time.Time) error
}

// UserRepositoryFacade combines all user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
