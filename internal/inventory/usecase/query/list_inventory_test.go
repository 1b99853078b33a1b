package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
)

func TestListInventory_Filters(t *testing.T) {
	store := &recordStore{}
	store.add(domain.ItemKindProduct, "p1", "A", 0, 5)
	store.add(domain.ItemKindProduct, "p2", "A", 20, 5)
	store.add(domain.ItemKindMaterial, "m1", "B", 3, 5)
	h := NewListInventoryHandler(store)
	ctx := context.Background()

	page, err := h.Handle(ctx, ListInventoryQuery{ItemKind: domain.ItemKindProduct})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	page, err = h.Handle(ctx, ListInventoryQuery{Status: domain.StatusOutOfStock})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "p1", page.Items[0].ItemID)

	page, err = h.Handle(ctx, ListInventoryQuery{Location: "B", Text: "M1"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, domain.ItemKindMaterial, page.Items[0].ItemKind)
}

func TestListInventory_Pagination(t *testing.T) {
	store := &recordStore{}
	for _, id := range []string{"a", "b", "c"} {
		store.add(domain.ItemKindTool, id, "", 1, 0)
	}
	h := NewListInventoryHandler(store)

	page, err := h.Handle(context.Background(), ListInventoryQuery{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Items, 1)

	page, err = h.Handle(context.Background(), ListInventoryQuery{Limit: 1000, Offset: 10})
	require.NoError(t, err)
	assert.Equal(t, 100, page.Limit)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)

	page, err = h.Handle(context.Background(), ListInventoryQuery{})
	require.NoError(t, err)
	assert.Equal(t, 10, page.Limit)
}

func TestListInventory_RejectsUnknownFilters(t *testing.T) {
	h := NewListInventoryHandler(&recordStore{})

	_, err := h.Handle(context.Background(), ListInventoryQuery{Status: "HALF_FULL"})
	assert.Equal(t, domain.CodeValidation, domain.GetCode(err))

	_, err = h.Handle(context.Background(), ListInventoryQuery{ItemKind: "gadget"})
	assert.Equal(t, domain.CodeValidation, domain.GetCode(err))
}

func TestGetHistory(t *testing.T) {
	item := domain.ItemRef{Kind: domain.ItemKindMaterial, ID: "42"}
	log := &historyLog{entries: []domain.TransactionLogEntry{
		{ItemKind: item.Kind, ItemID: item.ID, Kind: domain.TransactionAdjustment},
		{ItemKind: domain.ItemKindTool, ItemID: "42", Kind: domain.TransactionAdjustment},
		{ItemKind: item.Kind, ItemID: item.ID, Kind: domain.TransactionTransfer},
	}}
	h := NewGetHistoryHandler(log)

	entries, err := h.Handle(context.Background(), GetHistoryQuery{ItemKind: item.Kind, ItemID: item.ID, Limit: 500})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.TransactionTransfer, entries[1].Kind)
	assert.Equal(t, 100, log.limit)

	_, err = h.Handle(context.Background(), GetHistoryQuery{ItemKind: item.Kind})
	assert.Equal(t, domain.CodeValidation, domain.GetCode(err))
}
