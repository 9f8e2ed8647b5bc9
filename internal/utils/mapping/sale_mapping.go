package mapping

import (
	"github.com/cynthiamunja/saleSync/internal/core/domain"
	"github.com/cynthiamunja/saleSync/internal/models"
)

// ToModelSale converts a domain.Sale header for DB storage.
func ToModelSale(d domain.Sale) models.Sale {
	return models.Sale{
		SaleID:        d.SaleID,
		ReceiptNumber: d.ReceiptNumber,
		TotalAmount:   d.TotalAmount,
		PaymentMethod: models.PaymentMethod(d.PaymentMethod),
		CashierID:     d.CashierID,
		IsActive:      d.IsActive,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainSale converts a models.Sale header from the DB.
func ToDomainSale(m models.Sale) domain.Sale {
	return domain.Sale{
		SaleID:        m.SaleID,
		ReceiptNumber: m.ReceiptNumber,
		TotalAmount:   m.TotalAmount,
		PaymentMethod: domain.PaymentMethod(m.PaymentMethod),
		CashierID:     m.CashierID,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
	}
}

// ToModelSaleItem converts a domain.SaleItem for DB storage.
func ToModelSaleItem(d domain.SaleItem) models.SaleItem {
	return models.SaleItem{
		SaleItemID: d.SaleItemID,
		SaleID:     d.SaleID,
		ProductID:  d.ProductID,
		Quantity:   d.Quantity,
		UnitPrice:  d.UnitPrice,
		UnitCost:   d.UnitCost,
	}
}

// ToDomainSaleItem converts a models.SaleItem from the DB.
func ToDomainSaleItem(m models.SaleItem) domain.SaleItem {
	return domain.SaleItem{
		SaleItemID: m.SaleItemID,
		SaleID:     m.SaleID,
		ProductID:  m.ProductID,
		Quantity:   m.Quantity,
		UnitPrice:  m.UnitPrice,
		UnitCost:   m.UnitCost,
	}
}

// ToDomainSaleItemSlice converts a slice of models.SaleItem.
func ToDomainSaleItemSlice(ms []models.SaleItem) []domain.SaleItem {
	ds := make([]domain.SaleItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSaleItem(m)
	}
	return ds
}
