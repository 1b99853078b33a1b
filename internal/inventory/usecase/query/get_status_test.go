package query

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
)

func TestGetStatus_SingleLocation(t *testing.T) {
	store := &recordStore{}
	store.add(domain.ItemKindMaterial, "42", "A", 3, 5)
	details := newFakeDetails()
	details.set(domain.ItemKindMaterial, "42", "Copper wire", 5)

	h := NewGetStatusHandler(store, details, nil)
	view, err := h.Handle(context.Background(), GetStatusQuery{ItemKind: domain.ItemKindMaterial, ItemID: "42", Location: "A"})
	require.NoError(t, err)

	assert.Equal(t, "Copper wire", view.Name)
	assert.Equal(t, "pc", view.Unit)
	assert.Equal(t, "A", view.Location)
	assert.True(t, view.Quantity.Equal(decimal.NewFromInt(3)))
	assert.True(t, view.ReorderPoint.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, domain.StatusLowStock, view.Status)
	assert.Equal(t, int64(1), view.Version)
}

func TestGetStatus_MissingRecordIsOutOfStock(t *testing.T) {
	details := newFakeDetails()
	details.set(domain.ItemKindTool, "9", "Drill", 1)

	h := NewGetStatusHandler(&recordStore{}, details, nil)
	view, err := h.Handle(context.Background(), GetStatusQuery{ItemKind: domain.ItemKindTool, ItemID: "9", Location: "B"})
	require.NoError(t, err)
	assert.True(t, view.Quantity.IsZero())
	assert.Equal(t, domain.StatusOutOfStock, view.Status)
	assert.Nil(t, view.UpdatedAt)
}

func TestGetStatus_AggregateAcrossLocations(t *testing.T) {
	store := &recordStore{}
	store.add(domain.ItemKindProduct, "p1", "A", 4, 10)
	store.add(domain.ItemKindProduct, "p1", "B", 8, 10)
	store.add(domain.ItemKindProduct, "p2", "A", 1, 10)
	details := newFakeDetails()
	details.set(domain.ItemKindProduct, "p1", "Widget", 10)

	h := NewGetStatusHandler(store, details, nil)
	view, err := h.Handle(context.Background(), GetStatusQuery{ItemKind: domain.ItemKindProduct, ItemID: "p1"})
	require.NoError(t, err)

	assert.Empty(t, view.Location)
	assert.True(t, view.Quantity.Equal(decimal.NewFromInt(12)))
	assert.Equal(t, domain.StatusInStock, view.Status)
	require.Len(t, view.Locations, 2)
	assert.Equal(t, domain.StatusLowStock, view.Locations[0].Status)
}

func TestGetStatus_ServedFromCache(t *testing.T) {
	store := &recordStore{}
	store.add(domain.ItemKindMaterial, "42", domain.UnassignedLocation, 7, 5)
	details := newFakeDetails()
	details.set(domain.ItemKindMaterial, "42", "Copper wire", 5)
	cache := newMapCache()

	h := NewGetStatusHandler(store, details, cache)
	q := GetStatusQuery{ItemKind: domain.ItemKindMaterial, ItemID: "42", Location: domain.UnassignedLocation}

	first, err := h.Handle(context.Background(), q)
	require.NoError(t, err)
	second, err := h.Handle(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, 1, details.lookups)
	assert.Equal(t, 1, cache.sets)
	assert.Contains(t, cache.data, domain.StatusCacheKey(domain.NewRecordKey(domain.ItemKindMaterial, "42", "")))
	assert.True(t, first.Quantity.Equal(second.Quantity))
	assert.Equal(t, first.Status, second.Status)
}

func TestGetStatus_Errors(t *testing.T) {
	h := NewGetStatusHandler(&recordStore{}, newFakeDetails(), nil)

	_, err := h.Handle(context.Background(), GetStatusQuery{ItemKind: "gadget", ItemID: "1"})
	assert.Equal(t, domain.CodeValidation, domain.GetCode(err))

	_, err = h.Handle(context.Background(), GetStatusQuery{ItemKind: domain.ItemKindTool, ItemID: "1"})
	assert.Equal(t, domain.CodeEntityNotFound, domain.GetCode(err))
}
