package query

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type listCall struct {
	filter domain.RecordFilter
}

// recordStore is a read-only fake; the write methods are never reached by
// query handlers.
type recordStore struct {
	domain.InventoryRecordStore
	records []domain.InventoryRecord
	lists   []listCall
}

func (s *recordStore) add(kind domain.ItemKind, id, location string, qty, reorderPoint int64) {
	rec := domain.NewInventoryRecord(domain.NewRecordKey(kind, id, location), testNow)
	rec.SetQuantity(decimal.NewFromInt(qty), decimal.NewFromInt(reorderPoint), testNow)
	s.records = append(s.records, *rec)
	sort.Slice(s.records, func(i, j int) bool {
		return s.records[i].Key().String() < s.records[j].Key().String()
	})
}

func (s *recordStore) Find(_ context.Context, key domain.RecordKey) (*domain.InventoryRecord, error) {
	for i := range s.records {
		if s.records[i].Key() == key {
			return s.records[i].Clone(), nil
		}
	}
	return nil, nil
}

func (s *recordStore) FindByItem(_ context.Context, item domain.ItemRef) ([]domain.InventoryRecord, error) {
	var out []domain.InventoryRecord
	for _, r := range s.records {
		if r.Key().Item() == item {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *recordStore) List(_ context.Context, filter domain.RecordFilter) ([]domain.InventoryRecord, int64, error) {
	s.lists = append(s.lists, listCall{filter: filter})
	var matched []domain.InventoryRecord
	for _, r := range s.records {
		if filter.Kind != "" && r.ItemKind != filter.Kind {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.Location != "" && r.StorageLocation != filter.Location {
			continue
		}
		if filter.Text != "" && !strings.Contains(strings.ToLower(r.ItemID+" "+r.StorageLocation), strings.ToLower(filter.Text)) {
			continue
		}
		matched = append(matched, r)
	}
	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

type fakeDetails struct {
	items   map[domain.ItemRef]domain.ItemDetails
	lookups int
}

func newFakeDetails() *fakeDetails {
	return &fakeDetails{items: make(map[domain.ItemRef]domain.ItemDetails)}
}

func (f *fakeDetails) set(kind domain.ItemKind, id, name string, reorderPoint int64) {
	f.items[domain.ItemRef{Kind: kind, ID: id}] = domain.ItemDetails{
		Name:         name,
		Cost:         decimal.NewFromInt(1),
		ReorderPoint: decimal.NewFromInt(reorderPoint),
		Unit:         "pc",
	}
}

func (f *fakeDetails) GetItemDetails(_ context.Context, item domain.ItemRef) (domain.ItemDetails, error) {
	f.lookups++
	d, ok := f.items[item]
	if !ok {
		return domain.ItemDetails{}, domain.ItemNotFound(item)
	}
	return d, nil
}

// mapCache stores JSON like the redis cache does.
type mapCache struct {
	data map[string][]byte
	sets int
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (c *mapCache) Get(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *mapCache) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.sets++
	c.data[key] = raw
	return nil
}

type historyLog struct {
	domain.TransactionLog
	entries []domain.TransactionLogEntry
	limit   int
	offset  int
}

func (l *historyLog) History(_ context.Context, item domain.ItemRef, limit, offset int) ([]domain.TransactionLogEntry, error) {
	l.limit, l.offset = limit, offset
	var out []domain.TransactionLogEntry
	for _, e := range l.entries {
		if e.ItemKind == item.Kind && e.ItemID == item.ID {
			out = append(out, e)
		}
	}
	return out, nil
}
