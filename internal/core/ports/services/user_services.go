package services

import (
	"context"

	"github.com/cynthiamunja/saleSync/internal/core/domain"
	"github.com/cynthiamunja/saleSync/internal/dto"
)

// UserSvcFacade defines user management operations.
type UserSvcFacade interface {
	// GetUserByID retrieves a user; non-admin callers may only read themselves.
	GetUserByID(ctx context.Context, userID string, requesterID string, requesterRole domain.UserRole) (*domain.User, error)

	// GetAuthenticatedUser resolves a user by ID without role gating; used by
	// the auth middleware to attach the caller to the request.
	GetAuthenticatedUser(ctx context.Context, userID string) (*domain.User, error)

	// ListCashiers lists users with the cashier role (admin/manager only).
	ListCashiers(ctx context.Context, requesterRole domain.UserRole) ([]domain.User, error)

	// ListManagers lists active users with the manager role (admin only).
	ListManagers(ctx context.Context, requesterRole domain.UserRole) ([]domain.User, error)

	// UpdateProfile updates the caller's own profile fields.
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// DeactivateUser marks a user inactive (admin only).
	DeactivateUser(ctx context.Context, userID string, requesterID string, requesterRole domain.UserRole) error
}
