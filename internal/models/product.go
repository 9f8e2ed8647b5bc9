package models

import "github.com/shopspring/decimal"

// Product mirrors the products table. stock_quantity carries a CHECK
// (stock_quantity >= 0) constraint as a backstop behind the ledger's
// conditional decrement.
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
