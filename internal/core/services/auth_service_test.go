package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/cynthiamunja/saleSync/internal/apperrors"
	"github.com/cynthiamunja/saleSync/internal/core/domain"
	portssvc "github.com/cynthiamunja/saleSync/internal/core/ports/services"
	"github.com/cynthiamunja/saleSync/internal/core/services"
	"github.com/cynthiamunja/saleSync/internal/dto"
	"github.com/cynthiamunja/saleSync/internal/platform/config"
	"github.com/cynthiamunja/saleSync/internal/utils"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsersByRole(ctx context.Context, role domain.UserRole, onlyActive bool) ([]domain.User, error) {
	args := m.Called(ctx, role, onlyActive)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

func (m *MockUserRepository) DeactivateUser(ctx context.Context, userID string, updatedBy string, now time.Time) error {
	args := m.Called(ctx, userID, updatedBy, now)
	return args.Error(0)
}

// --- Test Suite ---
type AuthServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.AuthSvcFacade
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	cfg := &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "salesync-test",
	}
	suite.service = services.NewAuthService(cfg, suite.mockUserRepo)
}

// --- RegisterCashier Tests ---

func (suite *AuthServiceTestSuite) TestRegisterCashier_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		FullName:    "Jane Doe",
		Email:       "Jane@Example.com",
		Password:    "password123",
		PhoneNumber: "0712345678",
	}

	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Role == domain.RoleCashier &&
			user.Email == "jane@example.com" &&
			user.IsActive &&
			user.PasswordHash != "" &&
			user.PasswordHash != req.Password
	})).Return(nil).Once()

	user, err := suite.service.RegisterCashier(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal(domain.RoleCashier, user.Role)
	suite.NotEmpty(user.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestRegisterCashier_DuplicateEmail() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		FullName:    "Jane Doe",
		Email:       "jane@example.com",
		Password:    "password123",
		PhoneNumber: "0712345678",
	}

	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Return(apperrors.ErrDuplicate).Once()

	user, err := suite.service.RegisterCashier(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

// --- CreateUser Tests ---

func (suite *AuthServiceTestSuite) TestCreateUser_ManagerCannotCreateAdmin() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		FullName:    "Evil Admin",
		Email:       "evil@example.com",
		Password:    "password123",
		PhoneNumber: "0712345678",
		Role:        "admin",
	}

	user, err := suite.service.CreateUser(ctx, req, domain.RoleManager)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestCreateUser_UnknownRole() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		FullName:    "Who Knows",
		Email:       "who@example.com",
		Password:    "password123",
		PhoneNumber: "0712345678",
		Role:        "supervisor",
	}

	user, err := suite.service.CreateUser(ctx, req, domain.RoleAdmin)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AuthServiceTestSuite) TestCreateUser_AdminCreatesManager() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		FullName:    "New Manager",
		Email:       "manager@example.com",
		Password:    "password123",
		PhoneNumber: "0712345678",
		Role:        "manager",
	}

	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Role == domain.RoleManager
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req, domain.RoleAdmin)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal(domain.RoleManager, user.Role)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- Login Tests ---

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	password := "password123"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)

	userID := uuid.NewString()
	storedUser := &domain.User{
		UserID:       userID,
		FullName:     "Jane Doe",
		Email:        "jane@example.com",
		PasswordHash: hash,
		Role:         domain.RoleCashier,
		IsActive:     true,
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "jane@example.com").Return(storedUser, nil).Once()
	suite.mockUserRepo.On("UpdateLastLogin", ctx, userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Email: "Jane@Example.com", Password: password})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.NotEmpty(resp.Token)
	suite.Equal(userID, resp.User.UserID)
	suite.NotNil(resp.User.LastLoginAt)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-password")
	suite.Require().NoError(err)

	storedUser := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "jane@example.com",
		PasswordHash: hash,
		IsActive:     true,
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "jane@example.com").Return(storedUser, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Email: "jane@example.com", Password: "wrong-password"})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateLastLogin", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownEmail() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ghost@example.com").
		Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Email: "ghost@example.com", Password: "whatever"})

	suite.Require().Error(err)
	suite.Nil(resp)
	// identical error to the wrong-password path
	suite.ErrorIs(err, services.ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLogin_DeactivatedAccount() {
	ctx := context.Background()
	hash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)

	storedUser := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "jane@example.com",
		PasswordHash: hash,
		IsActive:     false,
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "jane@example.com").Return(storedUser, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Email: "jane@example.com", Password: "password123"})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
