package services

import (
	"context"
	"fmt"
	"time"

	"github.com/cynthiamunja/saleSync/internal/apperrors"
	portsrepo "github.com/cynthiamunja/saleSync/internal/core/ports/repositories"
	portssvc "github.com/cynthiamunja/saleSync/internal/core/ports/services"
	"github.com/cynthiamunja/saleSync/internal/dto"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
	yearLayout  = "2006"
)

// topProductsLimit caps the best-seller ranking.
const topProductsLimit = 5

// reportingService provides revenue reporting over active sales.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) DailyRevenue(ctx context.Context, date string) (*dto.DailyRevenueResponse, error) {
	day, err := time.Parse(dayLayout, date)
	if err != nil {
		return nil, fmt.Errorf("date must be formatted YYYY-MM-DD: %w", apperrors.ErrValidation)
	}

	from := day
	to := day.AddDate(0, 0, 1)

	summary, err := s.reportingRepo.SummarizeRevenue(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize daily revenue: %w", err)
	}

	return &dto.DailyRevenueResponse{
		Date:         date,
		TotalRevenue: summary.TotalRevenue,
		TotalSales:   summary.TotalSales,
	}, nil
}

func (s *reportingService) MonthlySummary(ctx context.Context, month string) (*dto.MonthlySummaryResponse, error) {
	from, err := time.Parse(monthLayout, month)
	if err != nil {
		return nil, fmt.Errorf("month must be formatted YYYY-MM: %w", apperrors.ErrValidation)
	}
	to := from.AddDate(0, 1, 0)

	summary, err := s.reportingRepo.SummarizeRevenue(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize monthly revenue: %w", err)
	}

	return &dto.MonthlySummaryResponse{
		Month:          month,
		TotalRevenue:   summary.TotalRevenue,
		TotalSales:     summary.TotalSales,
		TotalItemsSold: summary.TotalItemsSold,
	}, nil
}

func (s *reportingService) MonthlyBreakdown(ctx context.Context, month string) (*dto.MonthlyBreakdownResponse, error) {
	from, err := time.Parse(monthLayout, month)
	if err != nil {
		return nil, fmt.Errorf("month must be formatted YYYY-MM: %w", apperrors.ErrValidation)
	}
	to := from.AddDate(0, 1, 0)

	days, err := s.reportingRepo.DailyBreakdown(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to build monthly breakdown: %w", err)
	}

	return &dto.MonthlyBreakdownResponse{
		Month: month,
		Days:  days,
	}, nil
}

func (s *reportingService) YearlySummary(ctx context.Context, year string) (*dto.YearlySummaryResponse, error) {
	from, err := time.Parse(yearLayout, year)
	if err != nil {
		return nil, fmt.Errorf("year must be formatted YYYY: %w", apperrors.ErrValidation)
	}
	to := from.AddDate(1, 0, 0)

	summary, err := s.reportingRepo.SummarizeRevenue(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize yearly revenue: %w", err)
	}

	return &dto.YearlySummaryResponse{
		Year:         year,
		TotalRevenue: summary.TotalRevenue,
		TotalSales:   summary.TotalSales,
	}, nil
}

func (s *reportingService) ProfitReport(ctx context.Context, month string) (*dto.ProfitReportResponse, error) {
	from, err := time.Parse(monthLayout, month)
	if err != nil {
		return nil, fmt.Errorf("month must be formatted YYYY-MM: %w", apperrors.ErrValidation)
	}
	to := from.AddDate(0, 1, 0)

	summary, err := s.reportingRepo.SummarizeProfit(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize profit: %w", err)
	}

	return &dto.ProfitReportResponse{
		Month:        month,
		TotalRevenue: summary.TotalRevenue,
		TotalCost:    summary.TotalCost,
		TotalProfit:  summary.TotalProfit,
	}, nil
}

func (s *reportingService) TopProducts(ctx context.Context, month string) (*dto.TopProductsResponse, error) {
	from, err := time.Parse(monthLayout, month)
	if err != nil {
		return nil, fmt.Errorf("month must be formatted YYYY-MM: %w", apperrors.ErrValidation)
	}
	to := from.AddDate(0, 1, 0)

	products, err := s.reportingRepo.TopSellingProducts(ctx, from, to, topProductsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank top products: %w", err)
	}

	return &dto.TopProductsResponse{
		Month:    month,
		Products: products,
	}, nil
}

func (s *reportingService) PaymentMethodBreakdown(ctx context.Context, month string) (*dto.PaymentMethodBreakdownResponse, error) {
	from, err := time.Parse(monthLayout, month)
	if err != nil {
		return nil, fmt.Errorf("month must be formatted YYYY-MM: %w", apperrors.ErrValidation)
	}
	to := from.AddDate(0, 1, 0)

	methods, err := s.reportingRepo.SalesByPaymentMethod(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to split revenue by payment method: %w", err)
	}

	return &dto.PaymentMethodBreakdownResponse{
		Month:   month,
		Methods: methods,
	}, nil
}
