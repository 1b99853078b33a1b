package domain

import "github.com/shopspring/decimal"

// StockStatus is always derived from quantity and reorder point.
type StockStatus string

const (
	StatusInStock    StockStatus = "IN_STOCK"
	StatusLowStock   StockStatus = "LOW_STOCK"
	StatusOutOfStock StockStatus = "OUT_OF_STOCK"
)

// Valid reports whether s is a known status.
func (s StockStatus) Valid() bool {
	switch s {
	case StatusInStock, StatusLowStock, StatusOutOfStock:
		return true
	}
	return false
}

// NeedsAlert reports whether a record in this status should raise a low stock alert.
func (s StockStatus) NeedsAlert() bool {
	return s == StatusLowStock || s == StatusOutOfStock
}

// DeriveStatus computes the stock status for a quantity against a reorder point.
func DeriveStatus(quantity, reorderPoint decimal.Decimal) StockStatus {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return StatusOutOfStock
	}
	if reorderPoint.IsPositive() && quantity.LessThanOrEqual(reorderPoint) {
		return StatusLowStock
	}
	return StatusInStock
}
