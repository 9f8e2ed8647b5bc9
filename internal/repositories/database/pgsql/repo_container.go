package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/cynthiamunja/saleSync/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	productRepo := newPgxProductRepository(dbPool)
	counterRepo := newPgxReceiptCounterRepository(dbPool)
	saleRepo := newPgxSaleRepository(dbPool, productRepo, counterRepo)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:      userRepo,
		CategoryRepo:  categoryRepo,
		ProductRepo:   productRepo,
		SaleRepo:      saleRepo,
		ReportingRepo: reportingRepo,
	}
}
