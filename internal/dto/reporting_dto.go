package dto

import (
	"github.com/shopspring/decimal"

	portsrepo "github.com/cynthiamunja/saleSync/internal/core/ports/repositories"
)

// DailyRevenueResponse is the revenue summary for a single day.
type DailyRevenueResponse struct {
	Date         string          `json:"date"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalSales   int64           `json:"totalSales"`
}

// MonthlySummaryResponse aggregates a whole month of active sales.
type MonthlySummaryResponse struct {
	Month          string          `json:"month"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	TotalSales     int64           `json:"totalSales"`
	TotalItemsSold int64           `json:"totalItemsSold"`
}

// MonthlyBreakdownResponse lists per-day revenue within a month.
type MonthlyBreakdownResponse struct {
	Month string                   `json:"month"`
	Days  []portsrepo.DailyRevenue `json:"days"`
}

// YearlySummaryResponse aggregates a whole year of active sales.
type YearlySummaryResponse struct {
	Year         string          `json:"year"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalSales   int64           `json:"totalSales"`
}

// ProfitReportResponse is the revenue/cost/profit margin for one month,
// computed from the price and cost snapshots frozen on each sale line.
type ProfitReportResponse struct {
	Month        string          `json:"month"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalCost    decimal.Decimal `json:"totalCost"`
	TotalProfit  decimal.Decimal `json:"totalProfit"`
}

// TopProductsResponse ranks a month's best sellers by quantity sold.
type TopProductsResponse struct {
	Month    string                   `json:"month"`
	Products []portsrepo.ProductSales `json:"products"`
}

// PaymentMethodBreakdownResponse splits a month's revenue per payment method.
type PaymentMethodBreakdownResponse struct {
	Month   string                         `json:"month"`
	Methods []portsrepo.PaymentMethodTotal `json:"methods"`
}
