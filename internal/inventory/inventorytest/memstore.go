// Package inventorytest provides in-memory implementations of the ledger
// ports for tests.
package inventorytest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
)

// Now is the fixed clock used by seeded records.
var Now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// MemStore is a transactional in-memory store with optimistic version checks
// at write and commit time.
type MemStore struct {
	mu        sync.Mutex
	records   map[domain.RecordKey]*domain.InventoryRecord
	entries   []domain.TransactionLogEntry
	nextID    uint
	conflicts int
	finds     int

	beforeUpdate       func(key domain.RecordKey)
	alwaysBeforeUpdate func(key domain.RecordKey)
}

func NewMemStore() *MemStore {
	return &MemStore{records: make(map[domain.RecordKey]*domain.InventoryRecord)}
}

// Seed commits a record directly.
func (s *MemStore) Seed(key domain.RecordKey, quantity, reorderPoint int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := domain.NewInventoryRecord(key, Now)
	rec.SetQuantity(decimal.NewFromInt(quantity), decimal.NewFromInt(reorderPoint), Now)
	s.nextID++
	rec.ID = s.nextID
	s.records[key] = rec
}

func (s *MemStore) Record(key domain.RecordKey) *domain.InventoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[key].Clone()
}

func (s *MemStore) Log() []domain.TransactionLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.TransactionLogEntry(nil), s.entries...)
}

func (s *MemStore) ConflictCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conflicts
}

func (s *MemStore) FindCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finds
}

// Records reads committed state outside any transaction.
func (s *MemStore) Records() domain.InventoryRecordStore {
	return &memTx{store: s, writes: make(map[domain.RecordKey]*memWrite)}
}

// Transactions reads the committed log outside any transaction.
func (s *MemStore) Transactions() domain.TransactionLog {
	return &memTx{store: s, writes: make(map[domain.RecordKey]*memWrite)}
}

func (s *MemStore) Execute(ctx context.Context, fn func(repos domain.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &memTx{store: s, writes: make(map[domain.RecordKey]*memWrite)}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.commit(tx)
}

func (s *MemStore) commit(tx *memTx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, w := range tx.writes {
		current, ok := s.records[key]
		if w.create && ok || !w.create && (!ok || current.Version != w.base) {
			s.conflicts++
			return domain.ConcurrentModification(key, w.base)
		}
	}
	for key, w := range tx.writes {
		if w.record == nil {
			delete(s.records, key)
			continue
		}
		s.records[key] = w.record.Clone()
	}
	for _, e := range tx.entries {
		s.nextID++
		e.ID = s.nextID
		s.entries = append(s.entries, *e)
	}
	return nil
}

type memWrite struct {
	base   int64
	create bool
	record *domain.InventoryRecord
}

type memTx struct {
	store   *MemStore
	writes  map[domain.RecordKey]*memWrite
	entries []*domain.TransactionLogEntry
}

func (t *memTx) Records() domain.InventoryRecordStore { return t }
func (t *memTx) Transactions() domain.TransactionLog  { return t }

func (t *memTx) current(key domain.RecordKey) *domain.InventoryRecord {
	if w, ok := t.writes[key]; ok {
		return w.record.Clone()
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	return t.store.records[key].Clone()
}

func (t *memTx) Find(_ context.Context, key domain.RecordKey) (*domain.InventoryRecord, error) {
	t.store.mu.Lock()
	t.store.finds++
	t.store.mu.Unlock()
	return t.current(key), nil
}

func (t *memTx) FindByItem(_ context.Context, item domain.ItemRef) ([]domain.InventoryRecord, error) {
	var out []domain.InventoryRecord
	for _, r := range t.snapshot() {
		if r.ItemKind == item.Kind && r.ItemID == item.ID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (t *memTx) List(_ context.Context, filter domain.RecordFilter) ([]domain.InventoryRecord, int64, error) {
	var out []domain.InventoryRecord
	for _, r := range t.snapshot() {
		if filter.Kind != "" && r.ItemKind != filter.Kind {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.Location != "" && r.StorageLocation != filter.Location {
			continue
		}
		out = append(out, r)
	}
	total := int64(len(out))
	if filter.Offset < len(out) {
		out = out[filter.Offset:]
	} else {
		out = nil
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, total, nil
}

func (t *memTx) snapshot() []domain.InventoryRecord {
	t.store.mu.Lock()
	merged := make(map[domain.RecordKey]*domain.InventoryRecord, len(t.store.records))
	for k, r := range t.store.records {
		merged[k] = r.Clone()
	}
	t.store.mu.Unlock()
	for k, w := range t.writes {
		merged[k] = w.record.Clone()
	}

	out := make([]domain.InventoryRecord, 0, len(merged))
	for _, r := range merged {
		if r != nil {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key().String() < out[j].Key().String()
	})
	return out
}

func (t *memTx) runHooks(key domain.RecordKey) {
	t.store.mu.Lock()
	once := t.store.beforeUpdate
	t.store.beforeUpdate = nil
	always := t.store.alwaysBeforeUpdate
	t.store.mu.Unlock()
	if once != nil {
		once(key)
	}
	if always != nil {
		always(key)
	}
}

func (t *memTx) Create(_ context.Context, record *domain.InventoryRecord) error {
	key := record.Key()
	if t.current(key) != nil {
		t.store.mu.Lock()
		t.store.conflicts++
		t.store.mu.Unlock()
		return domain.ConcurrentModification(key, 0)
	}
	record.Version = 1
	t.writes[key] = &memWrite{create: true, record: record.Clone()}
	return nil
}

func (t *memTx) versionedWrite(key domain.RecordKey, expected int64, next *domain.InventoryRecord) error {
	t.runHooks(key)

	var version int64
	base := expected
	if w, ok := t.writes[key]; ok {
		if w.record != nil {
			version = w.record.Version
		}
		base = w.base
	} else {
		t.store.mu.Lock()
		if r, ok := t.store.records[key]; ok {
			version = r.Version
		}
		t.store.mu.Unlock()
	}
	if version == 0 || version != expected {
		t.store.mu.Lock()
		t.store.conflicts++
		t.store.mu.Unlock()
		return domain.ConcurrentModification(key, expected)
	}

	create := false
	if w, ok := t.writes[key]; ok {
		create = w.create
	}
	t.writes[key] = &memWrite{base: base, create: create, record: next}
	return nil
}

func (t *memTx) Update(_ context.Context, record *domain.InventoryRecord, expectedVersion int64) error {
	next := record.Clone()
	next.Version = expectedVersion + 1
	if err := t.versionedWrite(record.Key(), expectedVersion, next); err != nil {
		return err
	}
	record.Version = expectedVersion + 1
	return nil
}

func (t *memTx) Delete(_ context.Context, key domain.RecordKey, expectedVersion int64) error {
	return t.versionedWrite(key, expectedVersion, nil)
}

func (t *memTx) Append(_ context.Context, entry *domain.TransactionLogEntry) error {
	t.entries = append(t.entries, entry)
	return nil
}

func (t *memTx) History(_ context.Context, item domain.ItemRef, limit, offset int) ([]domain.TransactionLogEntry, error) {
	var out []domain.TransactionLogEntry
	for _, e := range t.store.Log() {
		if e.ItemKind == item.Kind && e.ItemID == item.ID {
			out = append(out, e)
		}
	}
	if offset < len(out) {
		out = out[offset:]
	} else {
		out = nil
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (t *memTx) HasReference(_ context.Context, item domain.ItemRef, referenceKind, referenceID string) (bool, error) {
	entries := t.store.Log()
	for _, e := range t.entries {
		entries = append(entries, *e)
	}
	for _, e := range entries {
		if e.ItemKind == item.Kind && e.ItemID == item.ID &&
			e.ReferenceKind == referenceKind && e.ReferenceID == referenceID {
			return true, nil
		}
	}
	return false, nil
}

// Details resolves items from a fixed map.
type Details map[domain.ItemRef]domain.ItemDetails

func (f Details) GetItemDetails(_ context.Context, item domain.ItemRef) (domain.ItemDetails, error) {
	d, ok := f[item]
	if !ok {
		return domain.ItemDetails{}, domain.ItemNotFound(item)
	}
	return d, nil
}

// DetailsWithReorderPoint returns details for a single item.
func DetailsWithReorderPoint(item domain.ItemRef, reorderPoint int64) Details {
	return Details{item: {
		Name:         "item " + item.ID,
		Cost:         decimal.NewFromInt(1),
		ReorderPoint: decimal.NewFromInt(reorderPoint),
		Unit:         "pc",
	}}
}

// Locations accepts the listed codes and the unassigned sentinel.
type Locations map[string]bool

func (f Locations) LocationExists(_ context.Context, location string) (bool, error) {
	return location == domain.UnassignedLocation || f[location], nil
}

// Publisher records published events.
type Publisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *Publisher) Publish(_ context.Context, events ...domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *Publisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

// Cache records invalidations.
type Cache struct {
	mu       sync.Mutex
	keys     []string
	patterns []string
}

func (c *Cache) Invalidate(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys = append(c.keys, keys...)
	return nil
}

func (c *Cache) InvalidatePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.patterns = append(c.patterns, pattern)
	return nil
}

// OnNextWrite runs fn once, outside the lock, before the next versioned write
// is checked. It is how tests commit a competing writer mid-transaction.
func (s *MemStore) OnNextWrite(fn func(key domain.RecordKey)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.beforeUpdate = fn
}

// OnEveryWrite runs fn before every versioned write.
func (s *MemStore) OnEveryWrite(fn func(key domain.RecordKey)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alwaysBeforeUpdate = fn
}

// BumpVersion simulates a committed write by another process.
func (s *MemStore) BumpVersion(key domain.RecordKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.records[key]; ok {
		r.Version++
	}
}

// SumChanges totals the quantity changes of entries.
func SumChanges(entries []domain.TransactionLogEntry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.QuantityChange)
	}
	return sum
}

// Keys returns every invalidated key.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.keys...)
}

// Patterns returns every invalidated pattern.
func (c *Cache) Patterns() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.patterns...)
}

var (
	_ domain.UnitOfWork          = (*MemStore)(nil)
	_ domain.Repositories        = (*MemStore)(nil)
	_ domain.ItemDetailsProvider = Details(nil)
	_ domain.LocationValidator   = Locations(nil)
	_ domain.EventPublisher      = (*Publisher)(nil)
	_ domain.CacheInvalidator    = (*Cache)(nil)
)
