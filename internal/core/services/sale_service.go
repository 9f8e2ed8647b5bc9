package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cynthiamunja/saleSync/internal/apperrors"
	"github.com/cynthiamunja/saleSync/internal/core/domain"
	portsrepo "github.com/cynthiamunja/saleSync/internal/core/ports/repositories"
	portssvc "github.com/cynthiamunja/saleSync/internal/core/ports/services"
	"github.com/cynthiamunja/saleSync/internal/dto"
	"github.com/cynthiamunja/saleSync/internal/middleware"
)

// maxConflictRetries bounds the automatic replays of a checkout or void that
// aborted on a transient write conflict. Conflicted transactions committed
// nothing, so replaying them is safe.
const maxConflictRetries = 3

// saleService provides the sale transaction operations.
type saleService struct {
	saleRepo portsrepo.SaleRepositoryFacade
}

// NewSaleService creates a new SaleService.
func NewSaleService(saleRepo portsrepo.SaleRepositoryFacade) portssvc.SaleSvcFacade {
	return &saleService{saleRepo: saleRepo}
}

var _ portssvc.SaleSvcFacade = (*saleService)(nil)

// validateCreateSale rejects malformed checkouts before any storage access.
func (s *saleService) validateCreateSale(req dto.CreateSaleRequest) error {
	if len(req.Products) == 0 {
		return fmt.Errorf("sale must contain at least one product: %w", apperrors.ErrValidation)
	}
	if !domain.PaymentMethod(req.PaymentMethod).IsValid() {
		return fmt.Errorf("unknown payment method %q: %w", req.PaymentMethod, apperrors.ErrValidation)
	}
	seen := make(map[string]struct{}, len(req.Products))
	for _, line := range req.Products {
		if line.ProductID == "" {
			return fmt.Errorf("product ID is required on every line: %w", apperrors.ErrValidation)
		}
		if line.Quantity < 1 {
			return fmt.Errorf("quantity for product %s must be at least 1: %w", line.ProductID, apperrors.ErrValidation)
		}
		if _, dup := seen[line.ProductID]; dup {
			return fmt.Errorf("product %s appears more than once: %w", line.ProductID, apperrors.ErrValidation)
		}
		seen[line.ProductID] = struct{}{}
	}
	return nil
}

// CreateSale validates the request and commits the checkout atomically.
// Transient write conflicts are replayed up to maxConflictRetries times; any
// other failure is returned as-is with nothing persisted.
func (s *saleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest, cashierID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if cashierID == "" {
		return nil, fmt.Errorf("cashier ID is required: %w", apperrors.ErrValidation)
	}
	if err := s.validateCreateSale(req); err != nil {
		logger.Warn("Sale request rejected", slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()
	sale := domain.Sale{
		SaleID:        uuid.NewString(),
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		CashierID:     cashierID,
		CreatedAt:     now,
		Items:         make([]domain.SaleItem, len(req.Products)),
	}
	for i, line := range req.Products {
		sale.Items[i] = domain.SaleItem{
			SaleItemID: uuid.NewString(),
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
		}
	}

	var created *domain.Sale
	var err error
	for attempt := 1; attempt <= maxConflictRetries; attempt++ {
		created, err = s.saleRepo.CreateSale(ctx, sale)
		if err == nil {
			logger.Info("Sale created",
				slog.String("sale_id", created.SaleID),
				slog.String("receipt_number", created.ReceiptNumber),
				slog.Int("items", len(created.Items)),
			)
			return created, nil
		}
		if !errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		logger.Warn("Sale transaction conflicted, retrying", slog.Int("attempt", attempt), slog.String("error", err.Error()))
	}

	logger.Error("Sale transaction failed after retries", slog.String("error", err.Error()))
	return nil, fmt.Errorf("sale could not be committed after %d attempts: %w", maxConflictRetries, err)
}

// VoidSale reverses a committed sale. The repository rejects a second void of
// the same sale, so retried requests cannot double-restore stock.
func (s *saleService) VoidSale(ctx context.Context, saleID string, voidedBy string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if saleID == "" {
		return nil, fmt.Errorf("sale ID is required: %w", apperrors.ErrValidation)
	}

	now := time.Now().UTC()

	var voided *domain.Sale
	var err error
	for attempt := 1; attempt <= maxConflictRetries; attempt++ {
		voided, err = s.saleRepo.VoidSale(ctx, saleID, voidedBy, now)
		if err == nil {
			logger.Info("Sale voided",
				slog.String("sale_id", voided.SaleID),
				slog.String("receipt_number", voided.ReceiptNumber),
				slog.String("voided_by", voidedBy),
			)
			return voided, nil
		}
		if !errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		logger.Warn("Void transaction conflicted, retrying", slog.Int("attempt", attempt), slog.String("error", err.Error()))
	}

	logger.Error("Void transaction failed after retries", slog.String("error", err.Error()))
	return nil, fmt.Errorf("void could not be committed after %d attempts: %w", maxConflictRetries, err)
}

func (s *saleService) GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sale by ID: %w", err)
	}
	return sale, nil
}

func (s *saleService) ListSales(ctx context.Context, filter portsrepo.SaleFilter, limit, offset int) ([]domain.Sale, error) {
	sales, err := s.saleRepo.ListSales(ctx, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}
