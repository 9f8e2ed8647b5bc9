package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cynthiamunja/saleSync/internal/apperrors"
)

// PaymentMethod is an opaque tag recorded on the sale; no payment processing
// happens here.
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentMpesa PaymentMethod = "mpesa"
	PaymentCard  PaymentMethod = "card"
)

// IsValid checks if the payment method is one of the recognized values.
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCash, PaymentMpesa, PaymentCard:
		return true
	}
	return false
}

// SaleItem is one line of a sale. UnitPrice and UnitCost are frozen copies of
// the product's price and cost at sale time; later catalog changes never
// alter a persisted sale.
type SaleItem struct {
	SaleItemID string          `json:"saleItemID"`
	SaleID     string          `json:"saleID"`
	ProductID  string          `json:"productID"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	UnitCost   decimal.Decimal `json:"unitCost"`
}

// LineTotal returns quantity times the frozen unit price.
func (i SaleItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// Sale is an immutable record of a completed checkout. The only field that
// ever changes after creation is IsActive, flipped exactly once (true to
// false) when the sale is voided.
type Sale struct {
	SaleID        string          `json:"saleID"`
	ReceiptNumber string          `json:"receiptNumber"`
	Items         []SaleItem      `json:"items"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	CashierID     string          `json:"cashierID"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ComputeTotal sums the line totals of all items.
func (s Sale) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// CanVoid reports whether the sale is in a state that permits voiding.
// active -> voided is the only legal transition; voiding a voided sale is
// rejected so stock is never restored twice.
func (s Sale) CanVoid() error {
	if !s.IsActive {
		return fmt.Errorf("sale %s: %w", s.SaleID, apperrors.ErrAlreadyVoided)
	}
	return nil
}

// FormatReceiptNumber builds the human-readable receipt number for a sale.
// The sequence is zero-padded to three digits; fmt widens the representation
// past 999 rather than wrapping, so receipt numbers stay unique at any volume.
func FormatReceiptNumber(year int, month time.Month, sequence int64) string {
	return fmt.Sprintf("SALE-%d-%02d-%03d", year, int(month), sequence)
}
