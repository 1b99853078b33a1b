package kafka

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Kafka topics
const (
	TopicInventoryEvents    = "inventory-events"
	TopicInventoryMovements = "inventory-movements"
	TopicCatalogEvents      = "catalog-events"
)

// Stock-movement request types consumed from TopicInventoryMovements
const (
	EventTypeAdjustRequested    = "inventory.adjust.requested"
	EventTypeTransferRequested  = "inventory.transfer.requested"
	EventTypeReconcileRequested = "inventory.reconcile.requested"
)

// Catalog change types consumed from TopicCatalogEvents. The message value
// is the full catalog row.
const (
	EventTypeProductUpserted  = "catalog.product.upserted"
	EventTypeMaterialUpserted = "catalog.material.upserted"
	EventTypeToolUpserted     = "catalog.tool.upserted"
)

// EventEnvelope wraps every domain event published to TopicInventoryEvents
type EventEnvelope struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	ItemKind  string          `json:"item_kind"`
	ItemID    string          `json:"item_id"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// AdjustRequestedEvent asks the ledger to apply a single-location change,
// e.g. from order fulfillment or purchase receiving
type AdjustRequestedEvent struct {
	EventID        string          `json:"event_id"`
	ItemKind       string          `json:"item_kind"`
	ItemID         string          `json:"item_id"`
	QuantityChange decimal.Decimal `json:"quantity_change"`
	ReasonCode     string          `json:"reason_code"`
	ReasonText     string          `json:"reason_text"`
	Location       string          `json:"location,omitempty"`
	ReferenceID    string          `json:"reference_id,omitempty"`
	ReferenceKind  string          `json:"reference_kind,omitempty"`
	PerformedBy    string          `json:"performed_by,omitempty"`
	Timestamp      time.Time       `json:"timestamp"`
}

// TransferRequestedEvent asks the ledger to move stock between locations
type TransferRequestedEvent struct {
	EventID      string          `json:"event_id"`
	ItemKind     string          `json:"item_kind"`
	ItemID       string          `json:"item_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	FromLocation string          `json:"from_location"`
	ToLocation   string          `json:"to_location"`
	Notes        string          `json:"notes,omitempty"`
	ReferenceID  string          `json:"reference_id,omitempty"`
	PerformedBy  string          `json:"performed_by,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
}

// ReconcileRequestedEvent carries a physical count result
type ReconcileRequestedEvent struct {
	EventID        string          `json:"event_id"`
	ItemKind       string          `json:"item_kind"`
	ItemID         string          `json:"item_id"`
	ActualQuantity decimal.Decimal `json:"actual_quantity"`
	CountID        string          `json:"count_id,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	Location       string          `json:"location,omitempty"`
	PerformedBy    string          `json:"performed_by,omitempty"`
	Timestamp      time.Time       `json:"timestamp"`
}
