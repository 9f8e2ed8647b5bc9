package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cynthiamunja/saleSync/internal/apperrors"
	"github.com/cynthiamunja/saleSync/internal/core/domain"
	portsrepo "github.com/cynthiamunja/saleSync/internal/core/ports/repositories"
	portssvc "github.com/cynthiamunja/saleSync/internal/core/ports/services"
	"github.com/cynthiamunja/saleSync/internal/dto"
	"github.com/cynthiamunja/saleSync/internal/middleware"
	"github.com/cynthiamunja/saleSync/internal/utils"
)

// userService provides user management operations.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string, requesterID string, requesterRole domain.UserRole) (*domain.User, error) {
	if requesterRole != domain.RoleAdmin && requesterRole != domain.RoleManager && userID != requesterID {
		return nil, fmt.Errorf("cannot read another user's profile: %w", apperrors.ErrForbidden)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

func (s *userService) GetAuthenticatedUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve authenticated user: %w", err)
	}
	return user, nil
}

func (s *userService) ListCashiers(ctx context.Context, requesterRole domain.UserRole) ([]domain.User, error) {
	if requesterRole != domain.RoleAdmin && requesterRole != domain.RoleManager {
		return nil, fmt.Errorf("listing cashiers requires admin or manager: %w", apperrors.ErrForbidden)
	}
	users, err := s.userRepo.FindUsersByRole(ctx, domain.RoleCashier, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list cashiers: %w", err)
	}
	return users, nil
}

func (s *userService) ListManagers(ctx context.Context, requesterRole domain.UserRole) ([]domain.User, error) {
	if requesterRole != domain.RoleAdmin {
		return nil, fmt.Errorf("listing managers requires admin: %w", apperrors.ErrForbidden)
	}
	users, err := s.userRepo.FindUsersByRole(ctx, domain.RoleManager, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list managers: %w", err)
	}
	return users, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user for update: %w", err)
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = userID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	logger.Info("Profile updated", slog.String("user_id", userID))
	return user, nil
}

func (s *userService) DeactivateUser(ctx context.Context, userID string, requesterID string, requesterRole domain.UserRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if requesterRole != domain.RoleAdmin {
		return fmt.Errorf("deactivating users requires admin: %w", apperrors.ErrForbidden)
	}
	if userID == requesterID {
		return fmt.Errorf("cannot deactivate own account: %w", apperrors.ErrValidation)
	}

	if err := s.userRepo.DeactivateUser(ctx, userID, requesterID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	logger.Info("User deactivated", slog.String("user_id", userID), slog.String("deactivated_by", requesterID))
	return nil
}
