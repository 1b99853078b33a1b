package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
	"github.com/tair/inventory-ledger/internal/inventory/inventorytest"
)

var tool3 = domain.ItemRef{Kind: domain.ItemKindTool, ID: "3"}

func TestCreateInventory(t *testing.T) {
	store := inventorytest.NewMemStore()
	cache := &inventorytest.Cache{}
	h := NewCreateInventoryHandler(store, inventorytest.DetailsWithReorderPoint(tool3, 1), inventorytest.Locations{"A": true}, NewNotifier(nil, cache), testOptions())
	ctx := context.Background()

	record, err := h.Handle(ctx, CreateInventoryCommand{ItemKind: tool3.Kind, ItemID: tool3.ID, Location: "A"})
	require.NoError(t, err)
	assert.True(t, record.Quantity.IsZero())
	assert.Equal(t, domain.StatusOutOfStock, record.Status)
	assert.Empty(t, store.Log())
	assert.Contains(t, cache.Keys(), domain.ItemCacheKey(tool3))

	_, err = h.Handle(ctx, CreateInventoryCommand{ItemKind: tool3.Kind, ItemID: tool3.ID, Location: "A"})
	assert.Equal(t, domain.CodeRecordExists, domain.GetCode(err))

	_, err = h.Handle(ctx, CreateInventoryCommand{ItemKind: tool3.Kind, ItemID: tool3.ID, Location: "Q"})
	assert.Equal(t, domain.CodeLocationNotFound, domain.GetCode(err))

	_, err = h.Handle(ctx, CreateInventoryCommand{ItemKind: tool3.Kind, ItemID: "missing"})
	assert.Equal(t, domain.CodeEntityNotFound, domain.GetCode(err))
}

func TestDeleteInventory(t *testing.T) {
	store := inventorytest.NewMemStore()
	cache := &inventorytest.Cache{}
	h := NewDeleteInventoryHandler(store, NewNotifier(nil, cache), testOptions())
	ctx := context.Background()

	keyA := domain.NewRecordKey(tool3.Kind, tool3.ID, "A")
	keyB := domain.NewRecordKey(tool3.Kind, tool3.ID, "B")
	store.Seed(keyA, 0, 1)
	store.Seed(keyB, 2, 1)

	_, err := h.Handle(ctx, DeleteInventoryCommand{ItemKind: tool3.Kind, ItemID: tool3.ID})
	require.Error(t, err)
	assert.Equal(t, domain.CodeNonzeroStock, domain.GetCode(err))
	assert.NotNil(t, store.Record(keyA))

	store.Seed(keyB, 0, 1)
	removed, err := h.Handle(ctx, DeleteInventoryCommand{ItemKind: tool3.Kind, ItemID: tool3.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Nil(t, store.Record(keyA))
	assert.Nil(t, store.Record(keyB))
	assert.Contains(t, cache.Patterns(), domain.ItemStatusPattern(tool3))
}
