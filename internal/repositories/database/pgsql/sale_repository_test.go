package pgsql

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/cynthiamunja/saleSync/internal/apperrors"
	"github.com/cynthiamunja/saleSync/internal/core/domain"
	portsrepo "github.com/cynthiamunja/saleSync/internal/core/ports/repositories"
)

// SaleRepositoryIntegrationTestSuite exercises the checkout and void
// transactions against a real Postgres instance. It is skipped unless
// TEST_DATABASE_URL points at a throwaway database; every test truncates
// the tables it touches.
type SaleRepositoryIntegrationTestSuite struct {
	suite.Suite
	pool        *pgxpool.Pool
	productRepo portsrepo.ProductRepositoryFacade
	saleRepo    portsrepo.SaleRepositoryFacade

	cashierID  string
	categoryID string
}

func (suite *SaleRepositoryIntegrationTestSuite) SetupSuite() {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		suite.T().Skip("TEST_DATABASE_URL not set; skipping database integration tests")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	suite.Require().NoError(err)
	suite.Require().NoError(pool.Ping(ctx))
	suite.pool = pool

	suite.Require().NoError(applyMigrations(dsn))

	suite.productRepo = newPgxProductRepository(pool)
	counterRepo := newPgxReceiptCounterRepository(pool)
	suite.saleRepo = newPgxSaleRepository(pool, suite.productRepo, counterRepo)
}

func (suite *SaleRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *SaleRepositoryIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	_, err := suite.pool.Exec(ctx, `TRUNCATE sale_items, sales, receipt_counters, products, categories, users CASCADE`)
	suite.Require().NoError(err)

	suite.cashierID = suite.seedUser("cashier")
	suite.categoryID = suite.seedCategory("Beverages")
}

func applyMigrations(dsn string) error {
	migrationDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer migrationDB.Close()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://../../../../migrations", "postgres", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	return dbErr
}

func (suite *SaleRepositoryIntegrationTestSuite) seedUser(role string) string {
	userID := uuid.NewString()
	now := time.Now().UTC()
	_, err := suite.pool.Exec(context.Background(), `
        INSERT INTO users (user_id, full_name, email, password_hash, role, is_active, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, 'x', $4, TRUE, $5, $1, $5, $1)`,
		userID, "Test "+role, role+"-"+userID+"@example.com", role, now)
	suite.Require().NoError(err)
	return userID
}

func (suite *SaleRepositoryIntegrationTestSuite) seedCategory(name string) string {
	categoryID := uuid.NewString()
	now := time.Now().UTC()
	_, err := suite.pool.Exec(context.Background(), `
        INSERT INTO categories (category_id, name, is_active, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, TRUE, $3, $4, $3, $4)`,
		categoryID, name, now, suite.cashierID)
	suite.Require().NoError(err)
	return categoryID
}

func (suite *SaleRepositoryIntegrationTestSuite) seedProduct(name, price, cost string, stock int64, active bool) string {
	productID := uuid.NewString()
	now := time.Now().UTC()
	_, err := suite.pool.Exec(context.Background(), `
        INSERT INTO products (product_id, name, price, cost_price, stock_quantity, category_id, is_active, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $8, $9)`,
		productID, name, price, cost, stock, suite.categoryID, active, now, suite.cashierID)
	suite.Require().NoError(err)
	return productID
}

func (suite *SaleRepositoryIntegrationTestSuite) stockOf(productID string) int64 {
	var stock int64
	err := suite.pool.QueryRow(context.Background(), `SELECT stock_quantity FROM products WHERE product_id = $1`, productID).Scan(&stock)
	suite.Require().NoError(err)
	return stock
}

func (suite *SaleRepositoryIntegrationTestSuite) countRows(table string) int64 {
	var count int64
	err := suite.pool.QueryRow(context.Background(), fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).Scan(&count)
	suite.Require().NoError(err)
	return count
}

func (suite *SaleRepositoryIntegrationTestSuite) newSale(items ...domain.SaleItem) domain.Sale {
	for i := range items {
		items[i].SaleItemID = uuid.NewString()
	}
	return domain.Sale{
		SaleID:        uuid.NewString(),
		Items:         items,
		PaymentMethod: domain.PaymentCash,
		CashierID:     suite.cashierID,
		CreatedAt:     time.Now().UTC(),
	}
}

func (suite *SaleRepositoryIntegrationTestSuite) TestReserveStock_UnknownProduct() {
	ctx := context.Background()
	tx, err := suite.pool.Begin(ctx)
	suite.Require().NoError(err)
	defer tx.Rollback(ctx)

	_, err = suite.productRepo.ReserveStockInTx(ctx, tx, uuid.NewString(), 1)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *SaleRepositoryIntegrationTestSuite) TestReserveStock_InactiveProduct() {
	ctx := context.Background()
	productID := suite.seedProduct("Discontinued Soda", "50.00", "30.00", 10, false)

	tx, err := suite.pool.Begin(ctx)
	suite.Require().NoError(err)
	defer tx.Rollback(ctx)

	_, err = suite.productRepo.ReserveStockInTx(ctx, tx, productID, 1)
	suite.ErrorIs(err, apperrors.ErrProductInactive)
}

func (suite *SaleRepositoryIntegrationTestSuite) TestReserveStock_InsufficientStock() {
	ctx := context.Background()
	productID := suite.seedProduct("Soda 500ml", "50.00", "30.00", 2, true)

	tx, err := suite.pool.Begin(ctx)
	suite.Require().NoError(err)
	_, err = suite.productRepo.ReserveStockInTx(ctx, tx, productID, 3)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.Require().NoError(tx.Rollback(ctx))

	suite.Equal(int64(2), suite.stockOf(productID))
}

func (suite *SaleRepositoryIntegrationTestSuite) TestCreateSale_FreezesPricesAndAllocatesReceipt() {
	ctx := context.Background()
	productID := suite.seedProduct("Soda 500ml", "50.00", "30.00", 10, true)

	sale := suite.newSale(domain.SaleItem{ProductID: productID, Quantity: 3})
	created, err := suite.saleRepo.CreateSale(ctx, sale)
	suite.Require().NoError(err)

	now := sale.CreatedAt
	suite.Equal(domain.FormatReceiptNumber(now.Year(), now.Month(), 1), created.ReceiptNumber)
	suite.True(created.IsActive)
	suite.Require().Len(created.Items, 1)
	suite.True(created.Items[0].UnitPrice.Equal(decimal.RequireFromString("50.00")))
	suite.True(created.Items[0].UnitCost.Equal(decimal.RequireFromString("30.00")))
	suite.True(created.TotalAmount.Equal(decimal.RequireFromString("150.00")))
	suite.Equal(int64(7), suite.stockOf(productID))
}

func (suite *SaleRepositoryIntegrationTestSuite) TestCreateSale_SequenceIncrementsPerPeriod() {
	ctx := context.Background()
	productID := suite.seedProduct("Soda 500ml", "50.00", "30.00", 10, true)

	first, err := suite.saleRepo.CreateSale(ctx, suite.newSale(domain.SaleItem{ProductID: productID, Quantity: 1}))
	suite.Require().NoError(err)
	second, err := suite.saleRepo.CreateSale(ctx, suite.newSale(domain.SaleItem{ProductID: productID, Quantity: 1}))
	suite.Require().NoError(err)

	now := time.Now().UTC()
	suite.Equal(domain.FormatReceiptNumber(now.Year(), now.Month(), 1), first.ReceiptNumber)
	suite.Equal(domain.FormatReceiptNumber(now.Year(), now.Month(), 2), second.ReceiptNumber)
}

func (suite *SaleRepositoryIntegrationTestSuite) TestCreateSale_MiddleItemWithoutStockLeavesNothingBehind() {
	ctx := context.Background()
	plenty := suite.seedProduct("Bread", "60.00", "40.00", 5, true)
	scarce := suite.seedProduct("Milk 1L", "70.00", "55.00", 1, true)

	sale := suite.newSale(
		domain.SaleItem{ProductID: plenty, Quantity: 2},
		domain.SaleItem{ProductID: scarce, Quantity: 3},
	)
	created, err := suite.saleRepo.CreateSale(ctx, sale)
	suite.Require().Nil(created)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)

	suite.Equal(int64(5), suite.stockOf(plenty))
	suite.Equal(int64(1), suite.stockOf(scarce))
	suite.Equal(int64(0), suite.countRows("sales"))
	suite.Equal(int64(0), suite.countRows("sale_items"))
	suite.Equal(int64(0), suite.countRows("receipt_counters"))
}

func (suite *SaleRepositoryIntegrationTestSuite) TestCreateSale_OversellResolvesToOneWinner() {
	ctx := context.Background()
	productID := suite.seedProduct("Last Crate", "900.00", "700.00", 3, true)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = suite.saleRepo.CreateSale(ctx, suite.newSale(domain.SaleItem{ProductID: productID, Quantity: 2}))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			suite.ErrorIs(err, apperrors.ErrInsufficientStock)
		}
	}
	suite.Equal(1, succeeded)
	suite.Equal(int64(1), suite.stockOf(productID))
	suite.Equal(int64(1), suite.countRows("sales"))
}

func (suite *SaleRepositoryIntegrationTestSuite) TestVoidSale_RestoresStockExactlyOnce() {
	ctx := context.Background()
	productID := suite.seedProduct("Soda 500ml", "50.00", "30.00", 10, true)
	managerID := suite.seedUser("manager")

	created, err := suite.saleRepo.CreateSale(ctx, suite.newSale(domain.SaleItem{ProductID: productID, Quantity: 4}))
	suite.Require().NoError(err)
	suite.Equal(int64(6), suite.stockOf(productID))

	voided, err := suite.saleRepo.VoidSale(ctx, created.SaleID, managerID, time.Now().UTC())
	suite.Require().NoError(err)
	suite.False(voided.IsActive)
	suite.Equal(int64(10), suite.stockOf(productID))

	_, err = suite.saleRepo.VoidSale(ctx, created.SaleID, managerID, time.Now().UTC())
	suite.ErrorIs(err, apperrors.ErrAlreadyVoided)
	suite.Equal(int64(10), suite.stockOf(productID))
}

func (suite *SaleRepositoryIntegrationTestSuite) TestVoidSale_UnknownSale() {
	ctx := context.Background()
	managerID := suite.seedUser("manager")

	_, err := suite.saleRepo.VoidSale(ctx, uuid.NewString(), managerID, time.Now().UTC())
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestSaleRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(SaleRepositoryIntegrationTestSuite))
}
