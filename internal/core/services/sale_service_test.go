package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/cynthiamunja/saleSync/internal/apperrors"
	"github.com/cynthiamunja/saleSync/internal/core/domain"
	portsrepo "github.com/cynthiamunja/saleSync/internal/core/ports/repositories"
	portssvc "github.com/cynthiamunja/saleSync/internal/core/ports/services"
	"github.com/cynthiamunja/saleSync/internal/core/services"
	"github.com/cynthiamunja/saleSync/internal/dto"
)

// --- Mock SaleRepository ---
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) CreateSale(ctx context.Context, sale domain.Sale) (*domain.Sale, error) {
	args := m.Called(ctx, sale)
	var created *domain.Sale
	if args.Get(0) != nil {
		created = args.Get(0).(*domain.Sale)
	}
	return created, args.Error(1)
}

func (m *MockSaleRepository) VoidSale(ctx context.Context, saleID string, voidedBy string, now time.Time) (*domain.Sale, error) {
	args := m.Called(ctx, saleID, voidedBy, now)
	var voided *domain.Sale
	if args.Get(0) != nil {
		voided = args.Get(0).(*domain.Sale)
	}
	return voided, args.Error(1)
}

func (m *MockSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	var sale *domain.Sale
	if args.Get(0) != nil {
		sale = args.Get(0).(*domain.Sale)
	}
	return sale, args.Error(1)
}

func (m *MockSaleRepository) ListSales(ctx context.Context, filter portsrepo.SaleFilter, limit, offset int) ([]domain.Sale, error) {
	args := m.Called(ctx, filter, limit, offset)
	var sales []domain.Sale
	if args.Get(0) != nil {
		sales = args.Get(0).([]domain.Sale)
	}
	return sales, args.Error(1)
}

// --- Test Suite ---
type SaleServiceTestSuite struct {
	suite.Suite
	mockSaleRepo *MockSaleRepository
	service      portssvc.SaleSvcFacade
}

func (suite *SaleServiceTestSuite) SetupTest() {
	suite.mockSaleRepo = new(MockSaleRepository)
	suite.service = services.NewSaleService(suite.mockSaleRepo)
}

func validSaleRequest() dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		Products: []dto.SaleItemRequest{
			{ProductID: uuid.NewString(), Quantity: 2},
			{ProductID: uuid.NewString(), Quantity: 1},
		},
		PaymentMethod: "cash",
	}
}

// --- CreateSale Tests ---

func (suite *SaleServiceTestSuite) TestCreateSale_Success() {
	ctx := context.Background()
	cashierID := uuid.NewString()
	req := validSaleRequest()

	committed := &domain.Sale{
		SaleID:        uuid.NewString(),
		ReceiptNumber: "SALE-2025-08-042",
		TotalAmount:   decimal.NewFromInt(350),
		PaymentMethod: domain.PaymentCash,
		CashierID:     cashierID,
		IsActive:      true,
	}

	suite.mockSaleRepo.On("CreateSale", ctx, mock.MatchedBy(func(sale domain.Sale) bool {
		return sale.CashierID == cashierID &&
			sale.PaymentMethod == domain.PaymentCash &&
			len(sale.Items) == 2 &&
			sale.SaleID != "" &&
			sale.Items[0].SaleItemID != ""
	})).Return(committed, nil).Once()

	sale, err := suite.service.CreateSale(ctx, req, cashierID)

	suite.Require().NoError(err)
	suite.Require().NotNil(sale)
	suite.Equal("SALE-2025-08-042", sale.ReceiptNumber)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_EmptyItems() {
	ctx := context.Background()

	req := dto.CreateSaleRequest{Products: nil, PaymentMethod: "cash"}

	sale, err := suite.service.CreateSale(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrValidation)
	// Validation failures must never reach storage.
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "CreateSale", mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestCreateSale_InvalidQuantity() {
	ctx := context.Background()

	req := dto.CreateSaleRequest{
		Products:      []dto.SaleItemRequest{{ProductID: uuid.NewString(), Quantity: 0}},
		PaymentMethod: "cash",
	}

	sale, err := suite.service.CreateSale(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "CreateSale", mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestCreateSale_DuplicateProduct() {
	ctx := context.Background()
	productID := uuid.NewString()

	req := dto.CreateSaleRequest{
		Products: []dto.SaleItemRequest{
			{ProductID: productID, Quantity: 1},
			{ProductID: productID, Quantity: 3},
		},
		PaymentMethod: "cash",
	}

	sale, err := suite.service.CreateSale(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "CreateSale", mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestCreateSale_UnknownPaymentMethod() {
	ctx := context.Background()

	req := dto.CreateSaleRequest{
		Products:      []dto.SaleItemRequest{{ProductID: uuid.NewString(), Quantity: 1}},
		PaymentMethod: "barter",
	}

	sale, err := suite.service.CreateSale(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "CreateSale", mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestCreateSale_MissingCashier() {
	ctx := context.Background()

	sale, err := suite.service.CreateSale(ctx, validSaleRequest(), "")

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "CreateSale", mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestCreateSale_InsufficientStock() {
	ctx := context.Background()

	suite.mockSaleRepo.On("CreateSale", ctx, mock.AnythingOfType("domain.Sale")).
		Return(nil, apperrors.ErrInsufficientStock).Once()

	sale, err := suite.service.CreateSale(ctx, validSaleRequest(), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_ConflictRetriesThenSucceeds() {
	ctx := context.Background()

	committed := &domain.Sale{SaleID: uuid.NewString(), ReceiptNumber: "SALE-2025-08-001", IsActive: true}

	suite.mockSaleRepo.On("CreateSale", ctx, mock.AnythingOfType("domain.Sale")).
		Return(nil, apperrors.ErrConflict).Twice()
	suite.mockSaleRepo.On("CreateSale", ctx, mock.AnythingOfType("domain.Sale")).
		Return(committed, nil).Once()

	sale, err := suite.service.CreateSale(ctx, validSaleRequest(), uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(sale)
	suite.Equal(committed.ReceiptNumber, sale.ReceiptNumber)
	suite.mockSaleRepo.AssertNumberOfCalls(suite.T(), "CreateSale", 3)
}

func (suite *SaleServiceTestSuite) TestCreateSale_ConflictRetriesExhausted() {
	ctx := context.Background()

	suite.mockSaleRepo.On("CreateSale", ctx, mock.AnythingOfType("domain.Sale")).
		Return(nil, apperrors.ErrConflict).Times(3)

	sale, err := suite.service.CreateSale(ctx, validSaleRequest(), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockSaleRepo.AssertNumberOfCalls(suite.T(), "CreateSale", 3)
}

func (suite *SaleServiceTestSuite) TestCreateSale_NonRetryableErrorNotRetried() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockSaleRepo.On("CreateSale", ctx, mock.AnythingOfType("domain.Sale")).
		Return(nil, expectedErr).Once()

	sale, err := suite.service.CreateSale(ctx, validSaleRequest(), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.mockSaleRepo.AssertNumberOfCalls(suite.T(), "CreateSale", 1)
}

// --- VoidSale Tests ---

func (suite *SaleServiceTestSuite) TestVoidSale_Success() {
	ctx := context.Background()
	saleID := uuid.NewString()
	voidedBy := uuid.NewString()

	voided := &domain.Sale{SaleID: saleID, ReceiptNumber: "SALE-2025-08-007", IsActive: false}

	suite.mockSaleRepo.On("VoidSale", ctx, saleID, voidedBy, mock.AnythingOfType("time.Time")).
		Return(voided, nil).Once()

	sale, err := suite.service.VoidSale(ctx, saleID, voidedBy)

	suite.Require().NoError(err)
	suite.Require().NotNil(sale)
	suite.False(sale.IsActive)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestVoidSale_NotFound() {
	ctx := context.Background()
	saleID := uuid.NewString()

	suite.mockSaleRepo.On("VoidSale", ctx, saleID, mock.Anything, mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrNotFound).Once()

	sale, err := suite.service.VoidSale(ctx, saleID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *SaleServiceTestSuite) TestVoidSale_AlreadyVoided() {
	ctx := context.Background()
	saleID := uuid.NewString()

	suite.mockSaleRepo.On("VoidSale", ctx, saleID, mock.Anything, mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrAlreadyVoided).Once()

	sale, err := suite.service.VoidSale(ctx, saleID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrAlreadyVoided)
	suite.mockSaleRepo.AssertNumberOfCalls(suite.T(), "VoidSale", 1)
}

func (suite *SaleServiceTestSuite) TestVoidSale_MissingSaleID() {
	ctx := context.Background()

	sale, err := suite.service.VoidSale(ctx, "", uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "VoidSale", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Read Tests ---

func (suite *SaleServiceTestSuite) TestGetSaleByID_NotFound() {
	ctx := context.Background()
	saleID := uuid.NewString()

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(nil, apperrors.ErrNotFound).Once()

	sale, err := suite.service.GetSaleByID(ctx, saleID)

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *SaleServiceTestSuite) TestListSales_PassesFilter() {
	ctx := context.Background()
	cashierID := uuid.NewString()
	filter := portsrepo.SaleFilter{CashierID: cashierID}
	expected := []domain.Sale{{SaleID: uuid.NewString(), CashierID: cashierID}}

	suite.mockSaleRepo.On("ListSales", ctx, filter, 10, 0).Return(expected, nil).Once()

	sales, err := suite.service.ListSales(ctx, filter, 10, 0)

	suite.Require().NoError(err)
	suite.Len(sales, 1)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func TestSaleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}
