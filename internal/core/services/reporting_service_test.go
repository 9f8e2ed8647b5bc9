package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/cynthiamunja/saleSync/internal/apperrors"
	portsrepo "github.com/cynthiamunja/saleSync/internal/core/ports/repositories"
	portssvc "github.com/cynthiamunja/saleSync/internal/core/ports/services"
	"github.com/cynthiamunja/saleSync/internal/core/services"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) SummarizeRevenue(ctx context.Context, from, to time.Time) (*portsrepo.RevenueSummary, error) {
	args := m.Called(ctx, from, to)
	var summary *portsrepo.RevenueSummary
	if args.Get(0) != nil {
		summary = args.Get(0).(*portsrepo.RevenueSummary)
	}
	return summary, args.Error(1)
}

func (m *MockReportingRepository) DailyBreakdown(ctx context.Context, from, to time.Time) ([]portsrepo.DailyRevenue, error) {
	args := m.Called(ctx, from, to)
	var days []portsrepo.DailyRevenue
	if args.Get(0) != nil {
		days = args.Get(0).([]portsrepo.DailyRevenue)
	}
	return days, args.Error(1)
}

func (m *MockReportingRepository) SummarizeProfit(ctx context.Context, from, to time.Time) (*portsrepo.ProfitSummary, error) {
	args := m.Called(ctx, from, to)
	var summary *portsrepo.ProfitSummary
	if args.Get(0) != nil {
		summary = args.Get(0).(*portsrepo.ProfitSummary)
	}
	return summary, args.Error(1)
}

func (m *MockReportingRepository) TopSellingProducts(ctx context.Context, from, to time.Time, limit int) ([]portsrepo.ProductSales, error) {
	args := m.Called(ctx, from, to, limit)
	var products []portsrepo.ProductSales
	if args.Get(0) != nil {
		products = args.Get(0).([]portsrepo.ProductSales)
	}
	return products, args.Error(1)
}

func (m *MockReportingRepository) SalesByPaymentMethod(ctx context.Context, from, to time.Time) ([]portsrepo.PaymentMethodTotal, error) {
	args := m.Called(ctx, from, to)
	var methods []portsrepo.PaymentMethodTotal
	if args.Get(0) != nil {
		methods = args.Get(0).([]portsrepo.PaymentMethodTotal)
	}
	return methods, args.Error(1)
}

// --- Test Suite ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	service           portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo)
}

func (suite *ReportingServiceTestSuite) TestDailyRevenue_Success() {
	ctx := context.Background()
	from := time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	summary := &portsrepo.RevenueSummary{
		TotalRevenue: decimal.NewFromInt(12500),
		TotalSales:   37,
	}

	suite.mockReportingRepo.On("SummarizeRevenue", ctx, from, to).Return(summary, nil).Once()

	report, err := suite.service.DailyRevenue(ctx, "2025-08-14")

	suite.Require().NoError(err)
	suite.Equal("2025-08-14", report.Date)
	suite.True(report.TotalRevenue.Equal(decimal.NewFromInt(12500)))
	suite.Equal(int64(37), report.TotalSales)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestDailyRevenue_BadDate() {
	ctx := context.Background()

	report, err := suite.service.DailyRevenue(ctx, "14-08-2025")

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "SummarizeRevenue", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestMonthlySummary_RangeCoversWholeMonth() {
	ctx := context.Background()
	from := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	summary := &portsrepo.RevenueSummary{
		TotalRevenue:   decimal.NewFromInt(340000),
		TotalSales:     912,
		TotalItemsSold: 2410,
	}

	suite.mockReportingRepo.On("SummarizeRevenue", ctx, from, to).Return(summary, nil).Once()

	report, err := suite.service.MonthlySummary(ctx, "2025-12")

	suite.Require().NoError(err)
	suite.Equal("2025-12", report.Month)
	suite.Equal(int64(2410), report.TotalItemsSold)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestMonthlyBreakdown_BadMonth() {
	ctx := context.Background()

	report, err := suite.service.MonthlyBreakdown(ctx, "2025-13-01")

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestMonthlyBreakdown_Success() {
	ctx := context.Background()
	from := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	days := []portsrepo.DailyRevenue{
		{Day: 1, DailyRevenue: decimal.NewFromInt(8000), TotalSales: 21},
		{Day: 3, DailyRevenue: decimal.NewFromInt(9500), TotalSales: 26},
	}

	suite.mockReportingRepo.On("DailyBreakdown", ctx, from, to).Return(days, nil).Once()

	report, err := suite.service.MonthlyBreakdown(ctx, "2025-08")

	suite.Require().NoError(err)
	suite.Equal("2025-08", report.Month)
	suite.Len(report.Days, 2)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestYearlySummary_RangeCoversWholeYear() {
	ctx := context.Background()
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	summary := &portsrepo.RevenueSummary{
		TotalRevenue: decimal.NewFromInt(4100000),
		TotalSales:   11204,
	}

	suite.mockReportingRepo.On("SummarizeRevenue", ctx, from, to).Return(summary, nil).Once()

	report, err := suite.service.YearlySummary(ctx, "2025")

	suite.Require().NoError(err)
	suite.Equal("2025", report.Year)
	suite.True(report.TotalRevenue.Equal(decimal.NewFromInt(4100000)))
	suite.Equal(int64(11204), report.TotalSales)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestYearlySummary_BadYear() {
	ctx := context.Background()

	report, err := suite.service.YearlySummary(ctx, "25")

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "SummarizeRevenue", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestProfitReport_Success() {
	ctx := context.Background()
	from := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	summary := &portsrepo.ProfitSummary{
		TotalRevenue: decimal.NewFromInt(90000),
		TotalCost:    decimal.NewFromInt(61000),
		TotalProfit:  decimal.NewFromInt(29000),
	}

	suite.mockReportingRepo.On("SummarizeProfit", ctx, from, to).Return(summary, nil).Once()

	report, err := suite.service.ProfitReport(ctx, "2025-08")

	suite.Require().NoError(err)
	suite.Equal("2025-08", report.Month)
	suite.True(report.TotalProfit.Equal(decimal.NewFromInt(29000)))
	suite.True(report.TotalProfit.Equal(report.TotalRevenue.Sub(report.TotalCost)))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestProfitReport_BadMonth() {
	ctx := context.Background()

	report, err := suite.service.ProfitReport(ctx, "August 2025")

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "SummarizeProfit", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestTopProducts_LimitsToFive() {
	ctx := context.Background()
	from := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	products := []portsrepo.ProductSales{
		{ProductID: "p-1", ProductName: "Soda 500ml", QuantitySold: 410, TotalRevenue: decimal.NewFromInt(20500)},
		{ProductID: "p-2", ProductName: "Bread", QuantitySold: 180, TotalRevenue: decimal.NewFromInt(10800)},
	}

	suite.mockReportingRepo.On("TopSellingProducts", ctx, from, to, 5).Return(products, nil).Once()

	report, err := suite.service.TopProducts(ctx, "2025-08")

	suite.Require().NoError(err)
	suite.Equal("2025-08", report.Month)
	suite.Len(report.Products, 2)
	suite.Equal("Soda 500ml", report.Products[0].ProductName)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestPaymentMethodBreakdown_Success() {
	ctx := context.Background()
	from := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	methods := []portsrepo.PaymentMethodTotal{
		{PaymentMethod: "cash", TotalAmount: decimal.NewFromInt(52000), TotalSales: 140},
		{PaymentMethod: "mpesa", TotalAmount: decimal.NewFromInt(38000), TotalSales: 97},
	}

	suite.mockReportingRepo.On("SalesByPaymentMethod", ctx, from, to).Return(methods, nil).Once()

	report, err := suite.service.PaymentMethodBreakdown(ctx, "2025-08")

	suite.Require().NoError(err)
	suite.Equal("2025-08", report.Month)
	suite.Len(report.Methods, 2)
	suite.Equal("cash", report.Methods[0].PaymentMethod)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
