package consumer

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
	"github.com/tair/inventory-ledger/internal/inventory/inventorytest"
	"github.com/tair/inventory-ledger/internal/inventory/usecase/command"
	"github.com/tair/inventory-ledger/kafka"
)

var material42 = domain.ItemRef{Kind: domain.ItemKindMaterial, ID: "42"}

type registrar map[string]kafka.EventHandler

func (r registrar) RegisterHandler(eventType string, handler kafka.EventHandler) {
	r[eventType] = handler
}

func newTestConsumer(store *inventorytest.MemStore) *MovementConsumer {
	opts := command.Options{
		Retry:   command.RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond},
		Timeout: time.Second,
		Now:     func() time.Time { return inventorytest.Now },
	}
	details := inventorytest.DetailsWithReorderPoint(material42, 5)
	locations := inventorytest.Locations{"A": true, "B": true}
	notifier := command.NewNotifier(&inventorytest.Publisher{}, &inventorytest.Cache{})

	adjust := command.NewAdjustInventoryHandler(store, details, notifier, opts)
	return NewMovementConsumer(
		adjust,
		command.NewTransferInventoryHandler(store, details, locations, notifier, opts),
		command.NewReconcileInventoryHandler(adjust),
	)
}

func TestMovementConsumer_Register(t *testing.T) {
	r := registrar{}
	newTestConsumer(inventorytest.NewMemStore()).Register(r)

	assert.Contains(t, r, kafka.EventTypeAdjustRequested)
	assert.Contains(t, r, kafka.EventTypeTransferRequested)
	assert.Contains(t, r, kafka.EventTypeReconcileRequested)
}

func TestMovementConsumer_AppliesRequests(t *testing.T) {
	store := inventorytest.NewMemStore()
	c := newTestConsumer(store)
	ctx := context.Background()

	err := c.HandleAdjust(ctx, kafka.Message{
		EventType: kafka.EventTypeAdjustRequested,
		EventID:   "evt-receipt",
		Value:     []byte(`{"item_kind":"material","item_id":"42","quantity_change":"10","reason_code":"purchase_receipt","reason_text":"PO-7","location":"A"}`),
	})
	require.NoError(t, err)

	err = c.HandleTransfer(ctx, kafka.Message{
		EventType: kafka.EventTypeTransferRequested,
		Value:     []byte(`{"item_kind":"material","item_id":"42","quantity":"4","from_location":"A","to_location":"B","reference_id":"mv-1"}`),
	})
	require.NoError(t, err)

	err = c.HandleReconcile(ctx, kafka.Message{
		EventType: kafka.EventTypeReconcileRequested,
		EventID:   "evt-count",
		Value:     []byte(`{"item_kind":"material","item_id":"42","actual_quantity":"5","location":"A"}`),
	})
	require.NoError(t, err)

	a := store.Record(domain.NewRecordKey(material42.Kind, material42.ID, "A"))
	b := store.Record(domain.NewRecordKey(material42.Kind, material42.ID, "B"))
	assert.True(t, a.Quantity.Equal(decimal.NewFromInt(5)))
	assert.True(t, b.Quantity.Equal(decimal.NewFromInt(4)))

	entries := store.Log()
	require.Len(t, entries, 3)
	assert.Equal(t, "evt-receipt", entries[0].ReferenceID)
	assert.Equal(t, domain.ReasonPurchaseReceipt, entries[0].ReasonCode)
	assert.Equal(t, "mv-1", entries[1].ReferenceID)
	assert.Equal(t, "evt-count", entries[2].ReferenceID)
	assert.Equal(t, domain.TransactionReconciliation, entries[2].Kind)
}

func TestMovementConsumer_RejectsBadMessages(t *testing.T) {
	c := newTestConsumer(inventorytest.NewMemStore())
	ctx := context.Background()

	err := c.HandleAdjust(ctx, kafka.Message{EventType: kafka.EventTypeAdjustRequested, Value: []byte(`{`)})
	assert.Equal(t, domain.CodeValidation, domain.GetCode(err))

	err = c.HandleAdjust(ctx, kafka.Message{Value: []byte(`{"item_kind":"material","item_id":"42","quantity_change":"1","reason_code":"GIFT","reason_text":"x"}`)})
	assert.Equal(t, domain.CodeValidation, domain.GetCode(err))

	err = c.HandleTransfer(ctx, kafka.Message{Value: []byte(`{"item_kind":"material","item_id":"42","quantity":"1","from_location":"A","to_location":"B"}`)})
	assert.Equal(t, domain.CodeInsufficientInventory, domain.GetCode(err))
}

func TestMovementConsumer_RedeliveryIsNoop(t *testing.T) {
	store := inventorytest.NewMemStore()
	c := newTestConsumer(store)
	ctx := context.Background()

	adjust := kafka.Message{
		EventType: kafka.EventTypeAdjustRequested,
		EventID:   "evt-receipt",
		Value:     []byte(`{"item_kind":"material","item_id":"42","quantity_change":"10","reason_code":"purchase_receipt","reason_text":"PO-7","location":"A"}`),
	}
	transfer := kafka.Message{
		EventType: kafka.EventTypeTransferRequested,
		EventID:   "evt-move",
		Value:     []byte(`{"item_kind":"material","item_id":"42","quantity":"4","from_location":"A","to_location":"B"}`),
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, c.HandleAdjust(ctx, adjust))
		require.NoError(t, c.HandleTransfer(ctx, transfer))
	}

	a := store.Record(domain.NewRecordKey(material42.Kind, material42.ID, "A"))
	b := store.Record(domain.NewRecordKey(material42.Kind, material42.ID, "B"))
	assert.True(t, a.Quantity.Equal(decimal.NewFromInt(6)))
	assert.True(t, b.Quantity.Equal(decimal.NewFromInt(4)))
	assert.Len(t, store.Log(), 2)
}
