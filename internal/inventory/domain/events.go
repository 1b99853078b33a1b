package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types published by the ledger.
const (
	EventTypeInventoryAdjusted    = "inventory.adjusted"
	EventTypeInventoryTransferred = "inventory.transferred"
	EventTypeInventoryReconciled  = "inventory.reconciled"
	EventTypeLowStockAlert        = "inventory.low_stock"
)

// Event is a domain event emitted after a committed mutation.
type Event interface {
	EventType() string
	ItemRef() ItemRef
}

// InventoryAdjusted is emitted for every committed adjustment.
type InventoryAdjusted struct {
	Item             ItemRef         `json:"item"`
	Location         string          `json:"location"`
	PreviousQuantity decimal.Decimal `json:"previous_quantity"`
	NewQuantity      decimal.Decimal `json:"new_quantity"`
	ReasonCode       ReasonCode      `json:"reason_code"`
	ReasonText       string          `json:"reason_text"`
	OccurredAt       time.Time       `json:"occurred_at"`
}

func (e InventoryAdjusted) EventType() string { return EventTypeInventoryAdjusted }
func (e InventoryAdjusted) ItemRef() ItemRef   { return e.Item }

// InventoryTransferred is emitted for every committed transfer.
type InventoryTransferred struct {
	Item       ItemRef         `json:"item"`
	From       string          `json:"from"`
	To         string          `json:"to"`
	Quantity   decimal.Decimal `json:"quantity"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func (e InventoryTransferred) EventType() string { return EventTypeInventoryTransferred }
func (e InventoryTransferred) ItemRef() ItemRef   { return e.Item }

// InventoryReconciled is emitted when a physical count changed the recorded quantity.
type InventoryReconciled struct {
	Item             ItemRef         `json:"item"`
	Location         string          `json:"location"`
	PreviousQuantity decimal.Decimal `json:"previous_quantity"`
	NewQuantity      decimal.Decimal `json:"new_quantity"`
	Delta            decimal.Decimal `json:"delta"`
	CountID          string          `json:"count_id,omitempty"`
	OccurredAt       time.Time       `json:"occurred_at"`
}

func (e InventoryReconciled) EventType() string { return EventTypeInventoryReconciled }
func (e InventoryReconciled) ItemRef() ItemRef   { return e.Item }

// LowStockAlert is emitted whenever an adjustment leaves a record low or out of stock.
type LowStockAlert struct {
	Item         ItemRef         `json:"item"`
	Location     string          `json:"location"`
	Quantity     decimal.Decimal `json:"quantity"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	Status       StockStatus     `json:"status"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

func (e LowStockAlert) EventType() string { return EventTypeLowStockAlert }
func (e LowStockAlert) ItemRef() ItemRef   { return e.Item }
