package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/cynthiamunja/saleSync/internal/apperrors"
	"github.com/cynthiamunja/saleSync/internal/core/domain"
	portsrepo "github.com/cynthiamunja/saleSync/internal/core/ports/repositories"
	portssvc "github.com/cynthiamunja/saleSync/internal/core/ports/services"
	"github.com/cynthiamunja/saleSync/internal/core/services"
	"github.com/cynthiamunja/saleSync/internal/dto"
)

// --- Mock ProductRepository ---
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	var product *domain.Product
	if args.Get(0) != nil {
		product = args.Get(0).(*domain.Product)
	}
	return product, args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, filter portsrepo.ListProductsFilter, limit, offset int) ([]domain.Product, error) {
	args := m.Called(ctx, filter, limit, offset)
	var products []domain.Product
	if args.Get(0) != nil {
		products = args.Get(0).([]domain.Product)
	}
	return products, args.Error(1)
}

func (m *MockProductRepository) SearchProductsByName(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	args := m.Called(ctx, query, limit)
	var products []domain.Product
	if args.Get(0) != nil {
		products = args.Get(0).([]domain.Product)
	}
	return products, args.Error(1)
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, productID string, delta int64, updatedBy string, now time.Time) (int64, error) {
	args := m.Called(ctx, productID, delta, updatedBy, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) SetProductActive(ctx context.Context, productID string, active bool, updatedBy string, now time.Time) error {
	args := m.Called(ctx, productID, active, updatedBy, now)
	return args.Error(0)
}

func (m *MockProductRepository) ReserveStockInTx(ctx context.Context, tx pgx.Tx, productID string, quantity int64) (*portsrepo.ReservedStock, error) {
	args := m.Called(ctx, tx, productID, quantity)
	var reserved *portsrepo.ReservedStock
	if args.Get(0) != nil {
		reserved = args.Get(0).(*portsrepo.ReservedStock)
	}
	return reserved, args.Error(1)
}

func (m *MockProductRepository) ReleaseStockInTx(ctx context.Context, tx pgx.Tx, items []domain.SaleItem) error {
	args := m.Called(ctx, tx, items)
	return args.Error(0)
}

// --- Mock CategoryRepository ---
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	var category *domain.Category
	if args.Get(0) != nil {
		category = args.Get(0).(*domain.Category)
	}
	return category, args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, onlyActive bool) ([]domain.Category, error) {
	args := m.Called(ctx, onlyActive)
	var categories []domain.Category
	if args.Get(0) != nil {
		categories = args.Get(0).([]domain.Category)
	}
	return categories, args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeactivateCategory(ctx context.Context, categoryID string, updatedBy string, now time.Time) error {
	args := m.Called(ctx, categoryID, updatedBy, now)
	return args.Error(0)
}

// --- Test Suite ---
type ProductServiceTestSuite struct {
	suite.Suite
	mockProductRepo  *MockProductRepository
	mockCategoryRepo *MockCategoryRepository
	service          portssvc.ProductSvcFacade
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.service = services.NewProductService(suite.mockProductRepo, suite.mockCategoryRepo)
}

func (suite *ProductServiceTestSuite) TestCreateProduct_Success() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	creatorID := uuid.NewString()

	req := dto.CreateProductRequest{
		Name:          "Maize Flour 2kg",
		Description:   "Sifted maize flour",
		Price:         decimal.NewFromFloat(185.00),
		CostPrice:     decimal.NewFromFloat(150.00),
		StockQuantity: 40,
		CategoryID:    categoryID,
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).
		Return(&domain.Category{CategoryID: categoryID, Name: "Dry Goods", IsActive: true}, nil).Once()
	suite.mockProductRepo.On("SaveProduct", ctx, mock.MatchedBy(func(p domain.Product) bool {
		return p.Name == req.Name && p.StockQuantity == 40 && p.IsActive && p.CreatedBy == creatorID
	})).Return(nil).Once()

	product, err := suite.service.CreateProduct(ctx, req, creatorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(product)
	suite.NotEmpty(product.ProductID)
	suite.mockProductRepo.AssertExpectations(suite.T())
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestCreateProduct_UnknownCategory() {
	ctx := context.Background()
	categoryID := uuid.NewString()

	req := dto.CreateProductRequest{
		Name:        "Orphan Product",
		Description: "No category",
		Price:       decimal.NewFromInt(10),
		CostPrice:   decimal.NewFromInt(5),
		CategoryID:  categoryID,
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).
		Return(nil, apperrors.ErrNotFound).Once()

	product, err := suite.service.CreateProduct(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(product)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "SaveProduct", mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestCreateProduct_NegativePrice() {
	ctx := context.Background()

	req := dto.CreateProductRequest{
		Name:        "Bad Price",
		Description: "Negative",
		Price:       decimal.NewFromInt(-1),
		CostPrice:   decimal.NewFromInt(5),
		CategoryID:  uuid.NewString(),
	}

	product, err := suite.service.CreateProduct(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(product)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ProductServiceTestSuite) TestAdjustStock_Success() {
	ctx := context.Background()
	productID := uuid.NewString()
	updaterID := uuid.NewString()

	suite.mockProductRepo.On("AdjustStock", ctx, productID, int64(-5), updaterID, mock.AnythingOfType("time.Time")).
		Return(int64(15), nil).Once()

	newQuantity, err := suite.service.AdjustStock(ctx, productID, -5, updaterID)

	suite.Require().NoError(err)
	suite.Equal(int64(15), newQuantity)
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestAdjustStock_ZeroDelta() {
	ctx := context.Background()

	_, err := suite.service.AdjustStock(ctx, uuid.NewString(), 0, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "AdjustStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestAdjustStock_BelowZeroRejected() {
	ctx := context.Background()
	productID := uuid.NewString()
	updaterID := uuid.NewString()

	suite.mockProductRepo.On("AdjustStock", ctx, productID, int64(-100), updaterID, mock.AnythingOfType("time.Time")).
		Return(int64(0), apperrors.ErrInsufficientStock).Once()

	_, err := suite.service.AdjustStock(ctx, productID, -100, updaterID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_FreezesPastSales() {
	// Catalog price changes only touch the products row; sale items keep
	// their frozen unit_price, so nothing else is updated here.
	ctx := context.Background()
	productID := uuid.NewString()
	updaterID := uuid.NewString()
	newPrice := decimal.NewFromInt(250)

	existing := &domain.Product{
		ProductID: productID,
		Name:      "Cooking Oil 1L",
		Price:     decimal.NewFromInt(220),
		CostPrice: decimal.NewFromInt(180),
		IsActive:  true,
	}

	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(existing, nil).Once()
	suite.mockProductRepo.On("UpdateProduct", ctx, mock.MatchedBy(func(p domain.Product) bool {
		return p.Price.Equal(newPrice) && p.LastUpdatedBy == updaterID
	})).Return(nil).Once()

	product, err := suite.service.UpdateProduct(ctx, productID, dto.UpdateProductRequest{Price: &newPrice}, updaterID)

	suite.Require().NoError(err)
	suite.True(product.Price.Equal(newPrice))
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestSearchProducts_EmptyQuery() {
	ctx := context.Background()

	products, err := suite.service.SearchProducts(ctx, "", 10)

	suite.Require().Error(err)
	suite.Nil(products)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
