package domain_test

import (
	"testing"
	"time"

	"github.com/cynthiamunja/saleSync/internal/apperrors"
	"github.com/cynthiamunja/saleSync/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatReceiptNumber(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month    time.Month
		sequence int64
		want     string
	}{
		{
			name:     "single digit sequence is zero padded",
			year:     2024,
			month:    time.July,
			sequence: 1,
			want:     "SALE-2024-07-001",
		},
		{
			name:     "three digit sequence keeps width",
			year:     2024,
			month:    time.December,
			sequence: 999,
			want:     "SALE-2024-12-999",
		},
		{
			name:     "sequence beyond padding widens instead of wrapping",
			year:     2025,
			month:    time.January,
			sequence: 1042,
			want:     "SALE-2025-01-1042",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.FormatReceiptNumber(tt.year, tt.month, tt.sequence)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSale_ComputeTotal(t *testing.T) {
	sale := domain.Sale{
		Items: []domain.SaleItem{
			{ProductID: "p1", Quantity: 4, UnitPrice: decimal.NewFromFloat(2.50)},
			{ProductID: "p2", Quantity: 1, UnitPrice: decimal.NewFromFloat(10.00)},
		},
	}

	assert.True(t, decimal.NewFromFloat(20.00).Equal(sale.ComputeTotal()))
}

func TestSale_ComputeTotal_Empty(t *testing.T) {
	assert.True(t, decimal.Zero.Equal(domain.Sale{}.ComputeTotal()))
}

func TestSale_CanVoid(t *testing.T) {
	active := domain.Sale{SaleID: "s1", IsActive: true}
	assert.NoError(t, active.CanVoid())

	voided := domain.Sale{SaleID: "s2", IsActive: false}
	assert.ErrorIs(t, voided.CanVoid(), apperrors.ErrAlreadyVoided)
}
