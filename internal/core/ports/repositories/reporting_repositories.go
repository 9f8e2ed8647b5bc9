package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RevenueSummary aggregates active sales over a period.
type RevenueSummary struct {
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	TotalSales     int64           `json:"totalSales"`
	TotalItemsSold int64           `json:"totalItemsSold"`
}

// DailyRevenue is one day's slice of a monthly breakdown.
type DailyRevenue struct {
	Day          int             `json:"day"`
	DailyRevenue decimal.Decimal `json:"dailyRevenue"`
	TotalSales   int64           `json:"totalSales"`
}

// ProfitSummary aggregates line-item revenue against the frozen unit costs,
// so the margin reflects what each product actually cost when it was sold.
type ProfitSummary struct {
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalCost    decimal.Decimal `json:"totalCost"`
	TotalProfit  decimal.Decimal `json:"totalProfit"`
}

// ProductSales is one product's aggregated sales over a period.
type ProductSales struct {
	ProductID    string          `json:"productID"`
	ProductName  string          `json:"productName"`
	QuantitySold int64           `json:"quantitySold"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
}

// PaymentMethodTotal is the revenue and sale count taken through one
// payment method over a period.
type PaymentMethodTotal struct {
	PaymentMethod string          `json:"paymentMethod"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	TotalSales    int64           `json:"totalSales"`
}

// ReportingRepository runs revenue aggregations over active sales.
// Voided sales are excluded everywhere. All ranges are half-open [from, to).
type ReportingRepository interface {
	SummarizeRevenue(ctx context.Context, from, to time.Time) (*RevenueSummary, error)
	DailyBreakdown(ctx context.Context, from, to time.Time) ([]DailyRevenue, error)
	SummarizeProfit(ctx context.Context, from, to time.Time) (*ProfitSummary, error)
	TopSellingProducts(ctx context.Context, from, to time.Time, limit int) ([]ProductSales, error)
	SalesByPaymentMethod(ctx context.Context, from, to time.Time) ([]PaymentMethodTotal, error)
}
