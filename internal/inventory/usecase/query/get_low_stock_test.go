package query

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
)

func TestGetLowStock(t *testing.T) {
	store := &recordStore{}
	store.add(domain.ItemKindMaterial, "m1", "A", 2, 10) // 20%
	store.add(domain.ItemKindMaterial, "m1", "B", 9, 10) // 90%
	store.add(domain.ItemKindProduct, "p1", "A", 0, 4)   // 0%
	store.add(domain.ItemKindProduct, "p2", "A", 5, 0)   // no reorder point
	store.add(domain.ItemKindTool, "t1", "A", 5, 10)     // 50%
	store.add(domain.ItemKindTool, "orphan", "A", 0, 10) // no catalog entry

	details := newFakeDetails()
	details.set(domain.ItemKindMaterial, "m1", "Resin", 10)
	details.set(domain.ItemKindProduct, "p1", "Chair", 4)
	details.set(domain.ItemKindProduct, "p2", "Table", 0)
	details.set(domain.ItemKindTool, "t1", "Saw", 10)

	h := NewGetLowStockHandler(store, details, 2)
	items, err := h.Handle(context.Background(), GetLowStockQuery{ThresholdPercentage: decimal.NewFromInt(50)})
	require.NoError(t, err)

	require.Len(t, items, 3)
	assert.Equal(t, "p1", items[0].ItemID)
	assert.True(t, items[0].Percentage.IsZero())
	assert.Equal(t, "m1", items[1].ItemID)
	assert.Equal(t, "A", items[1].Location)
	assert.True(t, items[1].Percentage.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, "Saw", items[2].Name)

	// six records in batches of two, one details lookup per distinct item
	assert.Len(t, store.lists, 3)
	assert.Equal(t, 5, details.lookups)
}

func TestGetLowStock_KindFilter(t *testing.T) {
	store := &recordStore{}
	store.add(domain.ItemKindMaterial, "m1", "A", 1, 10)
	store.add(domain.ItemKindTool, "t1", "A", 1, 10)
	details := newFakeDetails()
	details.set(domain.ItemKindMaterial, "m1", "Resin", 10)
	details.set(domain.ItemKindTool, "t1", "Saw", 10)

	h := NewGetLowStockHandler(store, details, 0)
	items, err := h.Handle(context.Background(), GetLowStockQuery{ThresholdPercentage: decimal.NewFromInt(100), ItemKind: domain.ItemKindTool})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, domain.ItemKindTool, items[0].ItemKind)
}

func TestGetLowStock_Validation(t *testing.T) {
	h := NewGetLowStockHandler(&recordStore{}, newFakeDetails(), 0)

	_, err := h.Handle(context.Background(), GetLowStockQuery{ThresholdPercentage: decimal.NewFromInt(-1)})
	assert.Equal(t, domain.CodeValidation, domain.GetCode(err))

	items, err := h.Handle(context.Background(), GetLowStockQuery{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGetLowStock_ThresholdBoundary(t *testing.T) {
	store := &recordStore{}
	over := domain.NewInventoryRecord(domain.NewRecordKey(domain.ItemKindMaterial, "m1", "A"), testNow)
	over.SetQuantity(decimal.RequireFromString("10.0004"), decimal.NewFromInt(10), testNow)
	at := domain.NewInventoryRecord(domain.NewRecordKey(domain.ItemKindMaterial, "m2", "A"), testNow)
	at.SetQuantity(decimal.NewFromInt(10), decimal.NewFromInt(10), testNow)
	store.records = []domain.InventoryRecord{*over, *at}

	details := newFakeDetails()
	details.set(domain.ItemKindMaterial, "m1", "Resin", 10)
	details.set(domain.ItemKindMaterial, "m2", "Glue", 10)

	h := NewGetLowStockHandler(store, details, 0)
	items, err := h.Handle(context.Background(), GetLowStockQuery{ThresholdPercentage: decimal.NewFromInt(100)})
	require.NoError(t, err)

	// 100.004% is above the threshold even though it rounds to 100.00
	require.Len(t, items, 1)
	assert.Equal(t, "m2", items[0].ItemID)
	assert.True(t, items[0].Percentage.Equal(decimal.NewFromInt(100)))
}
