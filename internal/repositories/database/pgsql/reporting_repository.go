package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/cynthiamunja/saleSync/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SummarizeRevenue aggregates revenue, sale count and items sold over the
// half-open interval [from, to). Voided sales are excluded.
func (r *reportingRepository) SummarizeRevenue(ctx context.Context, from, to time.Time) (*portsrepo.RevenueSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(s.total_amount), 0) AS total_revenue,
			COUNT(s.sale_id) AS total_sales,
			COALESCE((
				SELECT SUM(si.quantity)
				FROM sale_items si
				JOIN sales s2 ON si.sale_id = s2.sale_id
				WHERE s2.is_active AND s2.created_at >= $1 AND s2.created_at < $2
			), 0) AS total_items_sold
		FROM sales s
		WHERE s.is_active AND s.created_at >= $1 AND s.created_at < $2
	`

	var summary portsrepo.RevenueSummary
	err := r.Pool.QueryRow(ctx, query, from, to).Scan(
		&summary.TotalRevenue,
		&summary.TotalSales,
		&summary.TotalItemsSold,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying revenue summary: %w", err)
	}

	return &summary, nil
}

// DailyBreakdown splits revenue of the half-open interval [from, to) per day.
// Days with no active sales are omitted from the result.
func (r *reportingRepository) DailyBreakdown(ctx context.Context, from, to time.Time) ([]portsrepo.DailyRevenue, error) {
	query := `
		SELECT
			EXTRACT(DAY FROM s.created_at)::int AS day,
			SUM(s.total_amount) AS daily_revenue,
			COUNT(s.sale_id) AS total_sales
		FROM sales s
		WHERE s.is_active AND s.created_at >= $1 AND s.created_at < $2
		GROUP BY day
		ORDER BY day ASC
	`

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying daily breakdown: %w", err)
	}
	defer rows.Close()

	result := []portsrepo.DailyRevenue{}
	for rows.Next() {
		var row portsrepo.DailyRevenue
		if err := rows.Scan(&row.Day, &row.DailyRevenue, &row.TotalSales); err != nil {
			return nil, fmt.Errorf("error scanning daily breakdown row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily breakdown rows: %w", err)
	}

	return result, nil
}

// SummarizeProfit sums line revenue and line cost over the half-open interval
// [from, to), using the unit_price and unit_cost frozen on each sale item.
// Later catalog price changes never move a past period's margin.
func (r *reportingRepository) SummarizeProfit(ctx context.Context, from, to time.Time) (*portsrepo.ProfitSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(si.quantity * si.unit_price), 0) AS total_revenue,
			COALESCE(SUM(si.quantity * si.unit_cost), 0) AS total_cost
		FROM sale_items si
		JOIN sales s ON si.sale_id = s.sale_id
		WHERE s.is_active AND s.created_at >= $1 AND s.created_at < $2
	`

	var summary portsrepo.ProfitSummary
	err := r.Pool.QueryRow(ctx, query, from, to).Scan(
		&summary.TotalRevenue,
		&summary.TotalCost,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying profit summary: %w", err)
	}
	summary.TotalProfit = summary.TotalRevenue.Sub(summary.TotalCost)

	return &summary, nil
}

// TopSellingProducts ranks products by quantity sold over the half-open
// interval [from, to). Ties break on revenue, then product name.
func (r *reportingRepository) TopSellingProducts(ctx context.Context, from, to time.Time, limit int) ([]portsrepo.ProductSales, error) {
	query := `
		SELECT
			si.product_id,
			p.name,
			SUM(si.quantity) AS quantity_sold,
			SUM(si.quantity * si.unit_price) AS total_revenue
		FROM sale_items si
		JOIN sales s ON si.sale_id = s.sale_id
		JOIN products p ON p.product_id = si.product_id
		WHERE s.is_active AND s.created_at >= $1 AND s.created_at < $2
		GROUP BY si.product_id, p.name
		ORDER BY quantity_sold DESC, total_revenue DESC, p.name ASC
		LIMIT $3
	`

	rows, err := r.Pool.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying top selling products: %w", err)
	}
	defer rows.Close()

	result := []portsrepo.ProductSales{}
	for rows.Next() {
		var row portsrepo.ProductSales
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.QuantitySold, &row.TotalRevenue); err != nil {
			return nil, fmt.Errorf("error scanning top product row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top product rows: %w", err)
	}

	return result, nil
}

// SalesByPaymentMethod splits revenue of the half-open interval [from, to)
// per payment method. Methods with no active sales are omitted.
func (r *reportingRepository) SalesByPaymentMethod(ctx context.Context, from, to time.Time) ([]portsrepo.PaymentMethodTotal, error) {
	query := `
		SELECT
			s.payment_method,
			SUM(s.total_amount) AS total_amount,
			COUNT(s.sale_id) AS total_sales
		FROM sales s
		WHERE s.is_active AND s.created_at >= $1 AND s.created_at < $2
		GROUP BY s.payment_method
		ORDER BY s.payment_method ASC
	`

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying sales by payment method: %w", err)
	}
	defer rows.Close()

	result := []portsrepo.PaymentMethodTotal{}
	for rows.Next() {
		var row portsrepo.PaymentMethodTotal
		if err := rows.Scan(&row.PaymentMethod, &row.TotalAmount, &row.TotalSales); err != nil {
			return nil, fmt.Errorf("error scanning payment method row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment method rows: %w", err)
	}

	return result, nil
}
