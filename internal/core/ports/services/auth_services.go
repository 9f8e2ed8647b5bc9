package services

import (
	"context"

	"github.com/cynthiamunja/saleSync/internal/core/domain"
	"github.com/cynthiamunja/saleSync/internal/dto"
)

// AuthSvcFacade defines authentication operations.
type AuthSvcFacade interface {
	// RegisterCashier creates a new user forced to the cashier role.
	RegisterCashier(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// CreateUser creates a user with an explicit role, subject to the
	// creator's own role: admins may create any role, managers only
	// managers and cashiers.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorRole domain.UserRole) (*domain.User, error)

	// Login verifies credentials and issues a signed token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
