package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RecordFilter narrows a record listing.
type RecordFilter struct {
	Kind     ItemKind
	Status   StockStatus
	Location string
	Text     string
	Limit    int
	Offset   int
}

// InventoryRecordStore is the keyed store of current quantities.
// Find returns (nil, nil) when no record exists for the key.
type InventoryRecordStore interface {
	Find(ctx context.Context, key RecordKey) (*InventoryRecord, error)
	FindByItem(ctx context.Context, item ItemRef) ([]InventoryRecord, error)
	List(ctx context.Context, filter RecordFilter) ([]InventoryRecord, int64, error)
	// Create inserts a new record; a duplicate key is a ConcurrentModification.
	Create(ctx context.Context, record *InventoryRecord) error
	// Update writes record conditioned on expectedVersion and bumps record.Version.
	Update(ctx context.Context, record *InventoryRecord, expectedVersion int64) error
	// Delete removes the record conditioned on expectedVersion.
	Delete(ctx context.Context, key RecordKey, expectedVersion int64) error
}

// TransactionLog is the append-only audit trail.
type TransactionLog interface {
	Append(ctx context.Context, entry *TransactionLogEntry) error
	History(ctx context.Context, item ItemRef, limit, offset int) ([]TransactionLogEntry, error)
	// HasReference reports whether an entry for item already carries the
	// given external reference.
	HasReference(ctx context.Context, item ItemRef, referenceKind, referenceID string) (bool, error)
}

// Repositories are the stores bound to one transaction.
type Repositories interface {
	Records() InventoryRecordStore
	Transactions() TransactionLog
}

// UnitOfWork runs fn inside one atomic transaction. Returning an error from
// fn rolls back every write made through repos.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// ItemDetails is the read-only view of an item owned by another module.
type ItemDetails struct {
	Name         string          `json:"name"`
	Cost         decimal.Decimal `json:"cost"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	Unit         string          `json:"unit"`
}

// ItemDetailsProvider resolves item metadata. Implementations return an
// ENTITY_NOT_FOUND error for unknown items.
type ItemDetailsProvider interface {
	GetItemDetails(ctx context.Context, item ItemRef) (ItemDetails, error)
}

// LocationValidator checks storage locations.
type LocationValidator interface {
	LocationExists(ctx context.Context, location string) (bool, error)
}

// EventPublisher delivers domain events to other services.
type EventPublisher interface {
	Publish(ctx context.Context, events ...Event) error
}

// CacheInvalidator drops cached read views.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, keys ...string) error
	InvalidatePattern(ctx context.Context, pattern string) error
}

// Clock returns the current time; tests substitute a fixed clock.
type Clock func() time.Time
