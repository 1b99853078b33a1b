package command

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
	"github.com/tair/inventory-ledger/internal/inventory/inventorytest"
)

func newReconcileHandler(f *adjustFixture) *ReconcileInventoryHandler {
	return NewReconcileInventoryHandler(f.handler)
}

func reconcileCmd(item domain.ItemRef, actual int64, location string) ReconcileInventoryCommand {
	return ReconcileInventoryCommand{
		ItemKind:       item.Kind,
		ItemID:         item.ID,
		ActualQuantity: decimal.NewFromInt(actual),
		CountID:        "count-1",
		Location:       location,
		PerformedBy:    "auditor",
	}
}

func TestReconcileInventory_MatchingCountWritesNothing(t *testing.T) {
	f := newAdjustFixture(inventorytest.DetailsWithReorderPoint(material42, 5))
	key := domain.NewRecordKey(material42.Kind, material42.ID, "A")
	f.store.Seed(key, 9, 5)

	res, err := newReconcileHandler(f).Handle(context.Background(), reconcileCmd(material42, 9, "A"))
	require.NoError(t, err)

	assert.True(t, res.Adjustment.IsZero())
	assert.Nil(t, res.Entry)
	assert.Empty(t, f.store.Log())
	assert.Empty(t, f.publisher.Types())
	assert.Equal(t, int64(1), f.store.Record(key).Version)
}

func TestReconcileInventory_MatchesEquivalentAdjustment(t *testing.T) {
	key := domain.NewRecordKey(material42.Kind, material42.ID, "A")

	viaCount := newAdjustFixture(inventorytest.DetailsWithReorderPoint(material42, 5))
	viaCount.store.Seed(key, 7, 5)
	res, err := newReconcileHandler(viaCount).Handle(context.Background(), reconcileCmd(material42, 10, "A"))
	require.NoError(t, err)
	assert.True(t, res.Adjustment.Equal(decimal.NewFromInt(3)))
	assert.True(t, res.PreviousQuantity.Equal(decimal.NewFromInt(7)))

	viaAdjust := newAdjustFixture(inventorytest.DetailsWithReorderPoint(material42, 5))
	viaAdjust.store.Seed(key, 7, 5)
	cmd := adjustCmd(material42, 3, domain.ReasonCorrection)
	cmd.Location = "A"
	_, err = viaAdjust.handler.Handle(context.Background(), cmd)
	require.NoError(t, err)

	counted := viaCount.store.Record(key)
	adjusted := viaAdjust.store.Record(key)
	assert.True(t, counted.Quantity.Equal(adjusted.Quantity))
	assert.Equal(t, adjusted.Status, counted.Status)
	assert.Equal(t, adjusted.Version, counted.Version)

	entries := viaCount.store.Log()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.TransactionReconciliation, entries[0].Kind)
	assert.Equal(t, domain.ReasonPhysicalCount, entries[0].ReasonCode)
	assert.Equal(t, "count-1", entries[0].ReferenceID)
	assert.Equal(t, domain.ReferenceKindCount, entries[0].ReferenceKind)
	assert.Equal(t, "auditor", entries[0].PerformedBy)

	assert.Equal(t, []string{
		domain.EventTypeInventoryAdjusted,
		domain.EventTypeInventoryReconciled,
	}, viaCount.publisher.Types())
}

func TestReconcileInventory_CountBelowRecordedQuantity(t *testing.T) {
	f := newAdjustFixture(inventorytest.DetailsWithReorderPoint(material42, 5))
	key := domain.NewRecordKey(material42.Kind, material42.ID, "")
	f.store.Seed(key, 12, 5)

	res, err := newReconcileHandler(f).Handle(context.Background(), reconcileCmd(material42, 0, ""))
	require.NoError(t, err)
	assert.True(t, res.Adjustment.Equal(decimal.NewFromInt(-12)))
	assert.Equal(t, domain.StatusOutOfStock, res.Record.Status)

	stored := f.store.Record(key)
	require.NotNil(t, stored)
	assert.True(t, stored.Quantity.IsZero())
	assert.Contains(t, f.publisher.Types(), domain.EventTypeLowStockAlert)
}

func TestReconcileInventory_CreatesMissingRecord(t *testing.T) {
	f := newAdjustFixture(inventorytest.DetailsWithReorderPoint(material42, 5))

	res, err := newReconcileHandler(f).Handle(context.Background(), reconcileCmd(material42, 4, "B"))
	require.NoError(t, err)
	assert.True(t, res.PreviousQuantity.IsZero())
	assert.True(t, res.Record.Quantity.Equal(decimal.NewFromInt(4)))
	require.NotNil(t, f.store.Record(domain.NewRecordKey(material42.Kind, material42.ID, "B")))
}

func TestReconcileInventory_NegativeCountRejected(t *testing.T) {
	f := newAdjustFixture(inventorytest.DetailsWithReorderPoint(material42, 5))

	_, err := newReconcileHandler(f).Handle(context.Background(), reconcileCmd(material42, -1, ""))
	assert.Equal(t, domain.CodeValidation, domain.GetCode(err))
	assert.Zero(t, f.store.FindCount())
}
