package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// UnassignedLocation is the sentinel location for stock that has not been put away.
const UnassignedLocation = "UNASSIGNED"

// NormalizeLocation maps an empty location onto the unassigned sentinel.
func NormalizeLocation(location string) string {
	location = strings.TrimSpace(location)
	if location == "" {
		return UnassignedLocation
	}
	return location
}

// RecordKey identifies exactly one inventory record.
type RecordKey struct {
	Kind     ItemKind
	ItemID   string
	Location string
}

// NewRecordKey builds a key, normalizing the location.
func NewRecordKey(kind ItemKind, itemID, location string) RecordKey {
	return RecordKey{Kind: kind, ItemID: itemID, Location: NormalizeLocation(location)}
}

func (k RecordKey) Item() ItemRef {
	return ItemRef{Kind: k.Kind, ID: k.ItemID}
}

func (k RecordKey) String() string {
	return fmt.Sprintf("%s#%s@%s", k.Kind, k.ItemID, k.Location)
}

func (k RecordKey) metadata() map[string]string {
	return map[string]string{
		"item_kind": string(k.Kind),
		"item_id":   k.ItemID,
		"location":  k.Location,
	}
}

// SortKeys orders keys by location so multi-record operations always touch
// rows in the same sequence.
func SortKeys(keys []RecordKey) {
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Location < keys[j].Location
	})
}

// InventoryRecord is the current quantity snapshot for one item at one location.
type InventoryRecord struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	ItemKind        ItemKind        `json:"item_kind" gorm:"type:varchar(32);not null;uniqueIndex:idx_inventory_record_key,priority:1"`
	ItemID          string          `json:"item_id" gorm:"type:varchar(128);not null;uniqueIndex:idx_inventory_record_key,priority:2"`
	StorageLocation string          `json:"storage_location" gorm:"type:varchar(128);not null;uniqueIndex:idx_inventory_record_key,priority:3;index"`
	Quantity        decimal.Decimal `json:"quantity" gorm:"type:numeric(20,4);not null;default:0"`
	Status          StockStatus     `json:"status" gorm:"type:varchar(16);not null;index"`
	Version         int64           `json:"version" gorm:"not null;default:1"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (InventoryRecord) TableName() string {
	return "inventory_records"
}

// Key returns the record's composite key.
func (r *InventoryRecord) Key() RecordKey {
	return RecordKey{Kind: r.ItemKind, ItemID: r.ItemID, Location: r.StorageLocation}
}

// NewInventoryRecord builds an unsaved record at zero quantity.
func NewInventoryRecord(key RecordKey, now time.Time) *InventoryRecord {
	return &InventoryRecord{
		ItemKind:        key.Kind,
		ItemID:          key.ItemID,
		StorageLocation: key.Location,
		Quantity:        decimal.Zero,
		Status:          StatusOutOfStock,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// SetQuantity replaces the quantity and re-derives status. It is the only way
// engine code changes a record's quantity.
func (r *InventoryRecord) SetQuantity(quantity, reorderPoint decimal.Decimal, now time.Time) {
	r.Quantity = quantity
	r.Status = DeriveStatus(quantity, reorderPoint)
	r.UpdatedAt = now
}

// Clone returns an independent copy.
func (r *InventoryRecord) Clone() *InventoryRecord {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}
