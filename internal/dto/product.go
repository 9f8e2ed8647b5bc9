package dto

import (
	"time"

	"github.com/cynthiamunja/saleSync/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest is the payload for creating a product.
type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	CostPrice     decimal.Decimal `json:"costPrice" binding:"required"`
	StockQuantity int64           `json:"stockQuantity" binding:"min=0"`
	CategoryID    string          `json:"categoryID" binding:"required"`
}

// UpdateProductRequest defines the data allowed for updating a product.
// Stock corrections go through AdjustStockRequest, not here.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CostPrice   *decimal.Decimal `json:"costPrice"`
	CategoryID  *string          `json:"categoryID"`
}

// AdjustStockRequest applies a manual stock correction; delta may be negative.
type AdjustStockRequest struct {
	Delta int64 `json:"stockQuantity" binding:"required"`
}

// ListProductsParams defines query parameters for listing products.
type ListProductsParams struct {
	CategoryID string `form:"category"`
	Active     bool   `form:"active"`
	Limit      int    `form:"limit,default=50"`
	Offset     int    `form:"offset,default=0"`
}

// ProductResponse is the public view of a product.
type ProductResponse struct {
	ProductID     string          `json:"productID"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	CostPrice     decimal.Decimal `json:"costPrice"`
	StockQuantity int64           `json:"stockQuantity"`
	CategoryID    string          `json:"categoryID"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToProductResponse converts a domain.Product to its response DTO.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:     p.ProductID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		CostPrice:     p.CostPrice,
		StockQuantity: p.StockQuantity,
		CategoryID:    p.CategoryID,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
	}
}

// ListProductsResponse wraps a list of products.
type ListProductsResponse struct {
	Count    int               `json:"count"`
	Products []ProductResponse `json:"products"`
}

// ToListProductsResponse converts a slice of domain.Product.
func ToListProductsResponse(products []domain.Product) ListProductsResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return ListProductsResponse{Count: len(responses), Products: responses}
}
