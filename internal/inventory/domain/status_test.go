package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	testCases := []struct {
		name         string
		quantity     string
		reorderPoint string
		want         StockStatus
	}{
		{"zero quantity", "0", "10", StatusOutOfStock},
		{"zero quantity no reorder point", "0", "0", StatusOutOfStock},
		{"below reorder point", "5", "10", StatusLowStock},
		{"at reorder point", "10", "10", StatusLowStock},
		{"above reorder point", "10.5", "10", StatusInStock},
		{"no reorder point", "1", "0", StatusInStock},
		{"fractional low", "0.25", "1", StatusLowStock},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveStatus(decimal.RequireFromString(tc.quantity), decimal.RequireFromString(tc.reorderPoint))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStockStatus_NeedsAlert(t *testing.T) {
	assert.True(t, StatusLowStock.NeedsAlert())
	assert.True(t, StatusOutOfStock.NeedsAlert())
	assert.False(t, StatusInStock.NeedsAlert())
}

func TestInventoryRecord_SetQuantityDerivesStatus(t *testing.T) {
	rec := NewInventoryRecord(NewRecordKey(ItemKindMaterial, "42", ""), fixedNow)
	assert.Equal(t, UnassignedLocation, rec.StorageLocation)
	assert.Equal(t, StatusOutOfStock, rec.Status)

	rec.SetQuantity(decimal.NewFromInt(20), decimal.NewFromInt(10), fixedNow)
	assert.Equal(t, StatusInStock, rec.Status)

	rec.SetQuantity(decimal.NewFromInt(5), decimal.NewFromInt(10), fixedNow)
	assert.Equal(t, StatusLowStock, rec.Status)
}

func TestSortKeys(t *testing.T) {
	keys := []RecordKey{
		NewRecordKey(ItemKindTool, "1", "B"),
		NewRecordKey(ItemKindTool, "1", "A"),
	}
	SortKeys(keys)
	assert.Equal(t, "A", keys[0].Location)
	assert.Equal(t, "B", keys[1].Location)
}
