package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is the opaque payment tag stored on a sale.
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentMpesa PaymentMethod = "mpesa"
	PaymentCard  PaymentMethod = "card"
)

// Sale mirrors the sales table. Rows are immutable after insert except for
// is_active, flipped once when the sale is voided.
type Sale struct {
	SaleID        string          `json:"saleID"`
	ReceiptNumber string          `json:"receiptNumber"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	CashierID     string          `json:"cashierID"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// SaleItem mirrors the sale_items table. unit_price and unit_cost are the
// frozen snapshot captured at sale time.
type SaleItem struct {
	SaleItemID string          `json:"saleItemID"`
	SaleID     string          `json:"saleID"`
	ProductID  string          `json:"productID"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	UnitCost   decimal.Decimal `json:"unitCost"`
}
