package domain

import "github.com/shopspring/decimal"

// Product is a catalog item with stock on hand.
// StockQuantity is never mutated directly by callers; all decrements go
// through the inventory ledger's conditional update so it can never go
// negative.
type Product struct {
	ProductID     string          `json:"productID"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	CostPrice     decimal.Decimal `json:"costPrice"`
	StockQuantity int64           `json:"stockQuantity"`
	CategoryID    string          `json:"categoryID"`
	IsActive      bool            `json:"isActive"`
	AuditFields
}
