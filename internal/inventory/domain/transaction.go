package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionLogEntry is an immutable audit entry for one committed quantity change.
type TransactionLogEntry struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	ItemKind       ItemKind        `json:"item_kind" gorm:"type:varchar(32);not null;index:idx_inventory_tx_item,priority:1"`
	ItemID         string          `json:"item_id" gorm:"type:varchar(128);not null;index:idx_inventory_tx_item,priority:2"`
	QuantityChange decimal.Decimal `json:"quantity_change" gorm:"type:numeric(20,4);not null"`
	Kind           TransactionKind `json:"transaction_kind" gorm:"column:transaction_kind;type:varchar(16);not null"`
	ReasonCode     ReasonCode      `json:"adjustment_reason_code,omitempty" gorm:"column:adjustment_reason_code;type:varchar(32)"`
	ReferenceID    string          `json:"reference_id,omitempty" gorm:"type:varchar(128);index:idx_inventory_tx_reference,priority:2"`
	ReferenceKind  string          `json:"reference_kind,omitempty" gorm:"type:varchar(32);index:idx_inventory_tx_reference,priority:1"`
	FromLocation   string          `json:"from_location,omitempty" gorm:"type:varchar(128)"`
	ToLocation     string          `json:"to_location,omitempty" gorm:"type:varchar(128)"`
	Notes          string          `json:"notes,omitempty"`
	PerformedBy    string          `json:"performed_by,omitempty" gorm:"type:varchar(128)"`
	OccurredAt     time.Time       `json:"occurred_at" gorm:"not null;index:idx_inventory_tx_item,priority:3"`
}

// TableName specifies the table name
func (TransactionLogEntry) TableName() string {
	return "inventory_transactions"
}
