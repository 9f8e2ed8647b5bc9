package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cynthiamunja/saleSync/internal/apperrors"
	"github.com/cynthiamunja/saleSync/internal/core/domain"
	portsrepo "github.com/cynthiamunja/saleSync/internal/core/ports/repositories"
	"github.com/cynthiamunja/saleSync/internal/models"
	"github.com/cynthiamunja/saleSync/internal/utils/mapping"
)

// PgxSaleRepository composes the inventory ledger and the receipt counter so
// a checkout's stock decrements, sequence allocation and record insert share
// one transaction.
type PgxSaleRepository struct {
	BaseRepository
	ledger      portsrepo.InventoryLedger
	counterRepo portsrepo.ReceiptCounterRepository
}

func newPgxSaleRepository(db *pgxpool.Pool, ledger portsrepo.InventoryLedger, counterRepo portsrepo.ReceiptCounterRepository) portsrepo.SaleRepositoryFacade {
	return &PgxSaleRepository{
		BaseRepository: BaseRepository{Pool: db},
		ledger:         ledger,
		counterRepo:    counterRepo,
	}
}

var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

const saleColumns = `sale_id, receipt_number, total_amount, payment_method, cashier_id, is_active, created_at`
const saleItemColumns = `sale_item_id, sale_id, product_id, quantity, unit_price, unit_cost`

func scanSale(row pgx.Row) (models.Sale, error) {
	var m models.Sale
	err := row.Scan(
		&m.SaleID,
		&m.ReceiptNumber,
		&m.TotalAmount,
		&m.PaymentMethod,
		&m.CashierID,
		&m.IsActive,
		&m.CreatedAt,
	)
	return m, err
}

// CreateSale runs the whole checkout in one transaction. Items are processed
// in product ID order so two concurrent sales touching the same products
// acquire row locks in the same order and cannot deadlock each other.
func (r *PgxSaleRepository) CreateSale(ctx context.Context, sale domain.Sale) (*domain.Sale, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	items := make([]domain.SaleItem, len(sale.Items))
	copy(items, sale.Items)
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

	for i := range items {
		reserved, err := r.ledger.ReserveStockInTx(ctx, tx, items[i].ProductID, items[i].Quantity)
		if err != nil {
			return nil, err
		}
		items[i].SaleID = sale.SaleID
		items[i].UnitPrice = reserved.UnitPrice
		items[i].UnitCost = reserved.UnitCost
	}

	sequence, err := r.counterRepo.NextReceiptSequenceInTx(ctx, tx, sale.CreatedAt.Year(), int(sale.CreatedAt.Month()))
	if err != nil {
		return nil, err
	}

	sale.Items = items
	sale.ReceiptNumber = domain.FormatReceiptNumber(sale.CreatedAt.Year(), sale.CreatedAt.Month(), sequence)
	sale.TotalAmount = sale.ComputeTotal()
	sale.IsActive = true

	if err := r.insertSaleInTx(ctx, tx, sale); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &sale, nil
}

func (r *PgxSaleRepository) insertSaleInTx(ctx context.Context, tx pgx.Tx, sale domain.Sale) error {
	m := mapping.ToModelSale(sale)
	saleQuery := `
        INSERT INTO sales (` + saleColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7);
    `
	_, err := tx.Exec(ctx, saleQuery,
		m.SaleID,
		m.ReceiptNumber,
		m.TotalAmount,
		m.PaymentMethod,
		m.CashierID,
		m.IsActive,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sale: %w", translatePgError(err))
	}

	batch := &pgx.Batch{}
	itemQuery := `
        INSERT INTO sale_items (` + saleItemColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	for _, item := range sale.Items {
		im := mapping.ToModelSaleItem(item)
		batch.Queue(itemQuery,
			im.SaleItemID,
			im.SaleID,
			im.ProductID,
			im.Quantity,
			im.UnitPrice,
			im.UnitCost,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range sale.Items {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert sale item: %w", translatePgError(err))
		}
	}

	return nil
}

// VoidSale reverses a sale in one transaction. The FOR UPDATE lock on the
// sale row serializes concurrent voids of the same sale, and the conditional
// flip on is_active means a lost race surfaces as ErrAlreadyVoided instead of
// a second stock restore.
func (r *PgxSaleRepository) VoidSale(ctx context.Context, saleID string, voidedBy string, now time.Time) (*domain.Sale, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	lockQuery := `SELECT ` + saleColumns + ` FROM sales WHERE sale_id = $1 FOR UPDATE;`
	m, err := scanSale(tx.QueryRow(ctx, lockQuery, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("sale %s: %w", saleID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock sale %s: %w", saleID, translatePgError(err))
	}
	sale := mapping.ToDomainSale(m)
	if err := sale.CanVoid(); err != nil {
		return nil, err
	}

	items, err := r.findSaleItemsInTx(ctx, tx, saleID)
	if err != nil {
		return nil, err
	}

	if err := r.ledger.ReleaseStockInTx(ctx, tx, items); err != nil {
		return nil, err
	}

	voidQuery := `
        UPDATE sales
        SET is_active = FALSE, voided_at = $2, voided_by = $3
        WHERE sale_id = $1 AND is_active;
    `
	cmdTag, err := tx.Exec(ctx, voidQuery, saleID, now, voidedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to void sale %s: %w", saleID, translatePgError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, fmt.Errorf("sale %s: %w", saleID, apperrors.ErrAlreadyVoided)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	sale.IsActive = false
	sale.Items = items
	return &sale, nil
}

func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE sale_id = $1;`
	m, err := scanSale(r.Pool.QueryRow(ctx, query, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("sale %s: %w", saleID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find sale by ID %s: %w", saleID, err)
	}

	items, err := r.findSaleItems(ctx, saleID)
	if err != nil {
		return nil, err
	}

	sale := mapping.ToDomainSale(m)
	sale.Items = items
	return &sale, nil
}

func (r *PgxSaleRepository) ListSales(ctx context.Context, filter portsrepo.SaleFilter, limit, offset int) ([]domain.Sale, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + saleColumns + ` FROM sales WHERE 1=1`
	args := []interface{}{}
	argNum := 1
	if filter.CashierID != "" {
		query += fmt.Sprintf(" AND cashier_id = $%d", argNum)
		args = append(args, filter.CashierID)
		argNum++
	}
	if filter.IsActive != nil {
		query += fmt.Sprintf(" AND is_active = $%d", argNum)
		args = append(args, *filter.IsActive)
		argNum++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argNum)
		args = append(args, *filter.From)
		argNum++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND created_at < $%d", argNum)
		args = append(args, *filter.To)
		argNum++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d;", argNum, argNum+1)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	sales := []domain.Sale{}
	saleIDs := []string{}
	for rows.Next() {
		m, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale row: %w", err)
		}
		sales = append(sales, mapping.ToDomainSale(m))
		saleIDs = append(saleIDs, m.SaleID)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating sale rows: %w", rows.Err())
	}
	if len(sales) == 0 {
		return sales, nil
	}

	itemsBySale, err := r.findSaleItemsBySaleIDs(ctx, saleIDs)
	if err != nil {
		return nil, err
	}
	for i := range sales {
		sales[i].Items = itemsBySale[sales[i].SaleID]
	}

	return sales, nil
}

func (r *PgxSaleRepository) findSaleItems(ctx context.Context, saleID string) ([]domain.SaleItem, error) {
	query := `SELECT ` + saleItemColumns + ` FROM sale_items WHERE sale_id = $1 ORDER BY product_id ASC;`
	rows, err := r.Pool.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale items for %s: %w", saleID, err)
	}
	defer rows.Close()
	return collectSaleItems(rows)
}

func (r *PgxSaleRepository) findSaleItemsInTx(ctx context.Context, tx pgx.Tx, saleID string) ([]domain.SaleItem, error) {
	query := `SELECT ` + saleItemColumns + ` FROM sale_items WHERE sale_id = $1 ORDER BY product_id ASC;`
	rows, err := tx.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale items for %s: %w", saleID, err)
	}
	defer rows.Close()
	return collectSaleItems(rows)
}

func (r *PgxSaleRepository) findSaleItemsBySaleIDs(ctx context.Context, saleIDs []string) (map[string][]domain.SaleItem, error) {
	query := `SELECT ` + saleItemColumns + ` FROM sale_items WHERE sale_id = ANY($1) ORDER BY product_id ASC;`
	rows, err := r.Pool.Query(ctx, query, saleIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale items: %w", err)
	}
	defer rows.Close()

	items, err := collectSaleItems(rows)
	if err != nil {
		return nil, err
	}

	bySale := make(map[string][]domain.SaleItem, len(saleIDs))
	for _, item := range items {
		bySale[item.SaleID] = append(bySale[item.SaleID], item)
	}
	return bySale, nil
}

func collectSaleItems(rows pgx.Rows) ([]domain.SaleItem, error) {
	modelItems := []models.SaleItem{}
	for rows.Next() {
		var m models.SaleItem
		err := rows.Scan(
			&m.SaleItemID,
			&m.SaleID,
			&m.ProductID,
			&m.Quantity,
			&m.UnitPrice,
			&m.UnitCost,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale item row: %w", err)
		}
		modelItems = append(modelItems, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating sale item rows: %w", rows.Err())
	}
	return mapping.ToDomainSaleItemSlice(modelItems), nil
}
