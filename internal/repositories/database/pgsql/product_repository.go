package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cynthiamunja/saleSync/internal/apperrors"
	"github.com/cynthiamunja/saleSync/internal/core/domain"
	portsrepo "github.com/cynthiamunja/saleSync/internal/core/ports/repositories"
	"github.com/cynthiamunja/saleSync/internal/models"
	"github.com/cynthiamunja/saleSync/internal/utils/mapping"
)

type PgxProductRepository struct {
	db *pgxpool.Pool
}

func newPgxProductRepository(db *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{db: db}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

const productColumns = `product_id, name, description, price, cost_price, stock_quantity, category_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanProduct(row pgx.Row) (models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.Name,
		&m.Description,
		&m.Price,
		&m.CostPrice,
		&m.StockQuantity,
		&m.CategoryID,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `
        INSERT INTO products (` + productColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	_, err := r.db.Exec(ctx, query,
		m.ProductID,
		m.Name,
		m.Description,
		m.Price,
		m.CostPrice,
		m.StockQuantity,
		m.CategoryID,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if translated := translatePgError(err); errors.Is(translated, apperrors.ErrDuplicate) {
			return fmt.Errorf("product %q: %w", product.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`
	m, err := scanProduct(r.db.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID %s: %w", productID, err)
	}
	domainProduct := mapping.ToDomainProduct(m)
	return &domainProduct, nil
}

func (r *PgxProductRepository) ListProducts(ctx context.Context, filter portsrepo.ListProductsFilter, limit, offset int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []interface{}{}
	argNum := 1
	if filter.CategoryID != "" {
		query += fmt.Sprintf(" AND category_id = $%d", argNum)
		args = append(args, filter.CategoryID)
		argNum++
	}
	if filter.OnlyActive {
		query += " AND is_active"
	}
	query += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d;", argNum, argNum+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	modelProducts := []models.Product{}
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		modelProducts = append(modelProducts, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", rows.Err())
	}

	return mapping.ToDomainProductSlice(modelProducts), nil
}

func (r *PgxProductRepository) SearchProductsByName(ctx context.Context, search string, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
        SELECT ` + productColumns + `
        FROM products
        WHERE name ILIKE '%' || $1 || '%'
        ORDER BY name ASC
        LIMIT $2;
    `
	rows, err := r.db.Query(ctx, query, search, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	modelProducts := []models.Product{}
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		modelProducts = append(modelProducts, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", rows.Err())
	}

	return mapping.ToDomainProductSlice(modelProducts), nil
}

func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `
        UPDATE products
        SET name = $1, description = $2, price = $3, cost_price = $4, category_id = $5, last_updated_at = $6, last_updated_by = $7
        WHERE product_id = $8;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		m.Name,
		m.Description,
		m.Price,
		m.CostPrice,
		m.CategoryID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.ProductID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update product query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("product not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// AdjustStock applies a manual correction. The WHERE clause guards the lower
// bound so a negative delta never races stock below zero.
func (r *PgxProductRepository) AdjustStock(ctx context.Context, productID string, delta int64, updatedBy string, now time.Time) (int64, error) {
	query := `
        UPDATE products
        SET stock_quantity = stock_quantity + $2, last_updated_at = $3, last_updated_by = $4
        WHERE product_id = $1 AND stock_quantity + $2 >= 0
        RETURNING stock_quantity;
    `
	var newQuantity int64
	err := r.db.QueryRow(ctx, query, productID, delta, now, updatedBy).Scan(&newQuantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish a missing product from a rejected adjustment.
			var exists bool
			if checkErr := r.db.QueryRow(ctx, `SELECT TRUE FROM products WHERE product_id = $1;`, productID).Scan(&exists); checkErr != nil {
				if errors.Is(checkErr, pgx.ErrNoRows) {
					return 0, apperrors.ErrNotFound
				}
				return 0, fmt.Errorf("failed to check product %s: %w", productID, checkErr)
			}
			return 0, fmt.Errorf("adjustment of %d rejected for product %s: %w", delta, productID, apperrors.ErrInsufficientStock)
		}
		return 0, fmt.Errorf("failed to adjust stock for product %s: %w", productID, err)
	}
	return newQuantity, nil
}

func (r *PgxProductRepository) SetProductActive(ctx context.Context, productID string, active bool, updatedBy string, now time.Time) error {
	query := `
        UPDATE products
        SET is_active = $2, last_updated_at = $3, last_updated_by = $4
        WHERE product_id = $1;
    `
	cmdTag, err := r.db.Exec(ctx, query, productID, active, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to set product active flag: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("product not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// ReserveStockInTx performs the availability check and the decrement in a
// single conditional UPDATE, returning the price snapshot from the same row
// version the decrement saw. A zero-row result is diagnosed with a follow-up
// SELECT inside the same transaction.
func (r *PgxProductRepository) ReserveStockInTx(ctx context.Context, tx pgx.Tx, productID string, quantity int64) (*portsrepo.ReservedStock, error) {
	query := `
        UPDATE products
        SET stock_quantity = stock_quantity - $2
        WHERE product_id = $1 AND is_active AND stock_quantity >= $2
        RETURNING stock_quantity, price, cost_price, name;
    `
	var reserved portsrepo.ReservedStock
	err := tx.QueryRow(ctx, query, productID, quantity).Scan(
		&reserved.NewStockQuantity,
		&reserved.UnitPrice,
		&reserved.UnitCost,
		&reserved.ProductName,
	)
	if err == nil {
		return &reserved, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to reserve stock for product %s: %w", productID, translatePgError(err))
	}

	var isActive bool
	var available int64
	checkErr := tx.QueryRow(ctx, `SELECT is_active, stock_quantity FROM products WHERE product_id = $1;`, productID).Scan(&isActive, &available)
	if checkErr != nil {
		if errors.Is(checkErr, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %s: %w", productID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to check product %s: %w", productID, checkErr)
	}
	if !isActive {
		return nil, fmt.Errorf("product %s: %w", productID, apperrors.ErrProductInactive)
	}
	return nil, fmt.Errorf("product %s has %d, requested %d: %w", productID, available, quantity, apperrors.ErrInsufficientStock)
}

// ReleaseStockInTx restores the quantities of voided line items. Increments
// are unconditional; restoring stock can never violate the lower bound.
func (r *PgxProductRepository) ReleaseStockInTx(ctx context.Context, tx pgx.Tx, items []domain.SaleItem) error {
	if len(items) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `UPDATE products SET stock_quantity = stock_quantity + $2 WHERE product_id = $1;`
	for _, item := range items {
		batch.Queue(query, item.ProductID, item.Quantity)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for _, item := range items {
		cmdTag, err := results.Exec()
		if err != nil {
			return fmt.Errorf("failed to restore stock for product %s: %w", item.ProductID, translatePgError(err))
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("product %s missing during stock restore: %w", item.ProductID, apperrors.ErrNotFound)
		}
	}

	return nil
}
