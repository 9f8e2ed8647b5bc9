package services

import (
	"context"

	"github.com/cynthiamunja/saleSync/internal/dto"
)

// ReportingSvcFacade defines revenue reporting operations over active sales.
type ReportingSvcFacade interface {
	// DailyRevenue summarizes one calendar day (date formatted YYYY-MM-DD).
	DailyRevenue(ctx context.Context, date string) (*dto.DailyRevenueResponse, error)

	// MonthlySummary summarizes one calendar month (month formatted YYYY-MM).
	MonthlySummary(ctx context.Context, month string) (*dto.MonthlySummaryResponse, error)

	// MonthlyBreakdown lists per-day revenue within a month (YYYY-MM).
	MonthlyBreakdown(ctx context.Context, month string) (*dto.MonthlyBreakdownResponse, error)

	// YearlySummary summarizes one calendar year (year formatted YYYY).
	YearlySummary(ctx context.Context, year string) (*dto.YearlySummaryResponse, error)

	// ProfitReport computes revenue, cost and profit for a month (YYYY-MM)
	// from the per-line price and cost snapshots.
	ProfitReport(ctx context.Context, month string) (*dto.ProfitReportResponse, error)

	// TopProducts ranks a month's best-selling products by quantity sold.
	TopProducts(ctx context.Context, month string) (*dto.TopProductsResponse, error)

	// PaymentMethodBreakdown splits a month's revenue per payment method.
	PaymentMethodBreakdown(ctx context.Context, month string) (*dto.PaymentMethodBreakdownResponse, error)
}
