package dto

import (
	"time"

	"github.com/cynthiamunja/saleSync/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaleItemRequest is one requested checkout line.
type SaleItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
}

// CreateSaleRequest is the payload for a checkout.
type CreateSaleRequest struct {
	Products      []SaleItemRequest `json:"products" binding:"required,min=1,dive"`
	PaymentMethod string            `json:"paymentMethod" binding:"required,paymentmethod"`
}

// ListSalesParams defines query parameters for listing sales.
type ListSalesParams struct {
	CashierID string `form:"cashierId"`
	Active    string `form:"active"` // "true", "false" or empty for both
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Limit     int    `form:"limit,default=50"`
	Offset    int    `form:"offset,default=0"`
}

// SaleItemResponse is the public view of a sale line item.
type SaleItemResponse struct {
	ProductID string          `json:"productID"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	UnitCost  decimal.Decimal `json:"unitCost"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// SaleResponse is the public view of a sale.
type SaleResponse struct {
	SaleID        string             `json:"saleID"`
	ReceiptNumber string             `json:"receiptNumber"`
	Items         []SaleItemResponse `json:"items"`
	TotalAmount   decimal.Decimal    `json:"totalAmount"`
	PaymentMethod string             `json:"paymentMethod"`
	CashierID     string             `json:"cashierID"`
	IsActive      bool               `json:"isActive"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// ToSaleResponse converts a domain.Sale to its response DTO.
func ToSaleResponse(s *domain.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i, item := range s.Items {
		items[i] = SaleItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			UnitCost:  item.UnitCost,
			LineTotal: item.LineTotal(),
		}
	}
	return SaleResponse{
		SaleID:        s.SaleID,
		ReceiptNumber: s.ReceiptNumber,
		Items:         items,
		TotalAmount:   s.TotalAmount,
		PaymentMethod: string(s.PaymentMethod),
		CashierID:     s.CashierID,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
	}
}

// ListSalesResponse wraps a list of sales.
type ListSalesResponse struct {
	Count int            `json:"count"`
	Sales []SaleResponse `json:"sales"`
}

// ToListSalesResponse converts a slice of domain.Sale.
func ToListSalesResponse(sales []domain.Sale) ListSalesResponse {
	responses := make([]SaleResponse, len(sales))
	for i := range sales {
		responses[i] = ToSaleResponse(&sales[i])
	}
	return ListSalesResponse{Count: len(responses), Sales: responses}
}
