package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
)

// ListInventoryQuery represents the query to list inventory records
type ListInventoryQuery struct {
	ItemKind domain.ItemKind
	Status   domain.StockStatus
	Location string
	Text     string
	Limit    int
	Offset   int
}

// Page is one page of a listing.
type Page[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// ListInventoryHandler handles list inventory query
type ListInventoryHandler struct {
	records domain.InventoryRecordStore
}

// NewListInventoryHandler creates a new list inventory handler
func NewListInventoryHandler(records domain.InventoryRecordStore) *ListInventoryHandler {
	return &ListInventoryHandler{records: records}
}

// Handle executes the list inventory query
func (h *ListInventoryHandler) Handle(ctx context.Context, q ListInventoryQuery) (*Page[domain.InventoryRecord], error) {
	if q.ItemKind != "" && !q.ItemKind.Valid() {
		return nil, domain.Validation("unknown item kind", map[string]string{"item_kind": string(q.ItemKind)})
	}
	if q.Status != "" && !q.Status.Valid() {
		return nil, domain.Validation("unknown stock status", map[string]string{"status": string(q.Status)})
	}
	limit, offset := paginate(q.Limit, q.Offset)

	filter := domain.RecordFilter{
		Kind:   q.ItemKind,
		Status: q.Status,
		Text:   strings.TrimSpace(q.Text),
		Limit:  limit,
		Offset: offset,
	}
	if strings.TrimSpace(q.Location) != "" {
		filter.Location = domain.NormalizeLocation(q.Location)
	}

	records, total, err := h.records.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventories: %w", err)
	}
	if records == nil {
		records = []domain.InventoryRecord{}
	}

	return &Page[domain.InventoryRecord]{Items: records, Total: total, Limit: limit, Offset: offset}, nil
}

func paginate(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
