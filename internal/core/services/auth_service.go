package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cynthiamunja/saleSync/internal/apperrors"
	"github.com/cynthiamunja/saleSync/internal/core/domain"
	portsrepo "github.com/cynthiamunja/saleSync/internal/core/ports/repositories"
	portssvc "github.com/cynthiamunja/saleSync/internal/core/ports/services"
	"github.com/cynthiamunja/saleSync/internal/dto"
	"github.com/cynthiamunja/saleSync/internal/middleware"
	"github.com/cynthiamunja/saleSync/internal/platform/config"
	"github.com/cynthiamunja/saleSync/internal/utils"
)

// ErrInvalidCredentials is returned on any login failure so responses never
// reveal whether the email exists.
var ErrInvalidCredentials = errors.New("invalid email or password")

// authService provides registration, user creation and login.
type authService struct {
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade) portssvc.AuthSvcFacade {
	return &authService{cfg: cfg, userRepo: userRepo}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) newUser(fullName, email, password, phoneNumber string, role domain.UserRole, createdBy string) (domain.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	userID := uuid.NewString()
	if createdBy == "" {
		createdBy = userID
	}
	return domain.User{
		UserID:       userID,
		FullName:     fullName,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PhoneNumber:  phoneNumber,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}, nil
}

// RegisterCashier creates a self-registered user. The role is forced to
// cashier; elevated roles are only assigned through CreateUser.
func (s *authService) RegisterCashier(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.newUser(req.FullName, req.Email, req.Password, req.PhoneNumber, domain.RoleCashier, "")
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Registration rejected, email already in use")
			return nil, fmt.Errorf("email already registered: %w", apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	logger.Info("Cashier registered", slog.String("user_id", user.UserID))
	return &user, nil
}

// CreateUser creates a user with an explicit role. Admins may assign any
// role; managers may only create managers and cashiers.
func (s *authService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorRole domain.UserRole) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	role := domain.UserRole(req.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("unknown role %q: %w", req.Role, apperrors.ErrValidation)
	}
	if creatorRole != domain.RoleAdmin && role == domain.RoleAdmin {
		logger.Warn("Admin creation attempted by non-admin", slog.String("creator_role", string(creatorRole)))
		return nil, fmt.Errorf("only admins may create admin accounts: %w", apperrors.ErrForbidden)
	}

	user, err := s.newUser(req.FullName, req.Email, req.Password, req.PhoneNumber, role, "")
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("email already registered: %w", apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("User created", slog.String("user_id", user.UserID), slog.String("role", string(role)))
	return &user, nil
}

// Login verifies credentials and issues a signed token. The invalid-email and
// wrong-password paths return the same error.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.IsActive {
		logger.Warn("Login attempt on deactivated account", slog.String("user_id", user.UserID))
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Login failed, password mismatch", slog.String("user_id", user.UserID))
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	now := time.Now().UTC()
	if err := s.userRepo.UpdateLastLogin(ctx, user.UserID, now); err != nil {
		// Login still succeeds; the timestamp is advisory.
		logger.Warn("Failed to update last login", slog.String("user_id", user.UserID), slog.String("error", err.Error()))
	}
	user.LastLoginAt = &now

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	}, nil
}
