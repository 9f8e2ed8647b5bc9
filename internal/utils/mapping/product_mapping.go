package mapping

import (
	"github.com/cynthiamunja/saleSync/internal/core/domain"
	"github.com/cynthiamunja/saleSync/internal/models"
)

// ToModelProduct converts a domain.Product for DB storage.
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:     d.ProductID,
		Name:          d.Name,
		Description:   d.Description,
		Price:         d.Price,
		CostPrice:     d.CostPrice,
		StockQuantity: d.StockQuantity,
		CategoryID:    d.CategoryID,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a models.Product from the DB.
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:     m.ProductID,
		Name:          m.Name,
		Description:   m.Description,
		Price:         m.Price,
		CostPrice:     m.CostPrice,
		StockQuantity: m.StockQuantity,
		CategoryID:    m.CategoryID,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProductSlice converts a slice of models.Product.
func ToDomainProductSlice(ms []models.Product) []domain.Product {
	ds := make([]domain.Product, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProduct(m)
	}
	return ds
}
