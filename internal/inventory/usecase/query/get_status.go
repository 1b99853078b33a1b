package query

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
	"github.com/tair/inventory-ledger/pkg/logger"
)

// StatusCache is a read-through cache for status views. Misses report
// (false, nil).
type StatusCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// GetStatusQuery represents the query to get an item's stock status. An
// empty Location returns the aggregate over every location.
type GetStatusQuery struct {
	ItemKind domain.ItemKind
	ItemID   string
	Location string
}

// LocationQuantity is one location's share of an aggregate view.
type LocationQuantity struct {
	Location string             `json:"location"`
	Quantity decimal.Decimal    `json:"quantity"`
	Status   domain.StockStatus `json:"status"`
}

// StatusView joins inventory state with the item's catalog details.
type StatusView struct {
	ItemKind     domain.ItemKind    `json:"item_kind"`
	ItemID       string             `json:"item_id"`
	Name         string             `json:"name"`
	Unit         string             `json:"unit"`
	Location     string             `json:"location,omitempty"`
	Quantity     decimal.Decimal    `json:"quantity"`
	ReorderPoint decimal.Decimal    `json:"reorder_point"`
	Status       domain.StockStatus `json:"status"`
	Version      int64              `json:"version,omitempty"`
	Locations    []LocationQuantity `json:"locations,omitempty"`
	UpdatedAt    *time.Time         `json:"updated_at,omitempty"`
}

// GetStatusHandler handles get status query
type GetStatusHandler struct {
	records domain.InventoryRecordStore
	details domain.ItemDetailsProvider
	cache   StatusCache
}

// NewGetStatusHandler creates a new get status handler; cache may be nil.
func NewGetStatusHandler(records domain.InventoryRecordStore, details domain.ItemDetailsProvider, cache StatusCache) *GetStatusHandler {
	return &GetStatusHandler{records: records, details: details, cache: cache}
}

// Handle executes the get status query
func (h *GetStatusHandler) Handle(ctx context.Context, q GetStatusQuery) (*StatusView, error) {
	if !q.ItemKind.Valid() {
		return nil, domain.Validation("unknown item kind", map[string]string{"item_kind": string(q.ItemKind)})
	}
	if strings.TrimSpace(q.ItemID) == "" {
		return nil, domain.Validation("item_id is required", nil)
	}

	item := domain.ItemRef{Kind: q.ItemKind, ID: q.ItemID}
	aggregate := strings.TrimSpace(q.Location) == ""
	key := domain.NewRecordKey(q.ItemKind, q.ItemID, q.Location)

	cacheKey := domain.StatusCacheKey(key)
	if aggregate {
		cacheKey = domain.ItemCacheKey(item)
	}

	if view, ok := h.cached(ctx, cacheKey); ok {
		return view, nil
	}

	details, err := h.details.GetItemDetails(ctx, item)
	if err != nil {
		return nil, err
	}

	view := &StatusView{
		ItemKind:     item.Kind,
		ItemID:       item.ID,
		Name:         details.Name,
		Unit:         details.Unit,
		ReorderPoint: details.ReorderPoint,
	}

	if aggregate {
		records, err := h.records.FindByItem(ctx, item)
		if err != nil {
			return nil, fmt.Errorf("failed to load inventory: %w", err)
		}
		total := decimal.Zero
		for _, r := range records {
			total = total.Add(r.Quantity)
			view.Locations = append(view.Locations, LocationQuantity{
				Location: r.StorageLocation,
				Quantity: r.Quantity,
				Status:   r.Status,
			})
			if view.UpdatedAt == nil || r.UpdatedAt.After(*view.UpdatedAt) {
				updated := r.UpdatedAt
				view.UpdatedAt = &updated
			}
		}
		view.Quantity = total
	} else {
		record, err := h.records.Find(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to load inventory: %w", err)
		}
		view.Location = key.Location
		view.Quantity = decimal.Zero
		if record != nil {
			view.Quantity = record.Quantity
			view.Version = record.Version
			updated := record.UpdatedAt
			view.UpdatedAt = &updated
		}
	}
	view.Status = domain.DeriveStatus(view.Quantity, view.ReorderPoint)

	h.store(ctx, cacheKey, view)
	return view, nil
}

func (h *GetStatusHandler) cached(ctx context.Context, key string) (*StatusView, bool) {
	if h.cache == nil {
		return nil, false
	}
	var view StatusView
	ok, err := h.cache.Get(ctx, key, &view)
	if err != nil {
		logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Status cache read failed")
		return nil, false
	}
	if ok {
		logger.Debug(ctx).Str("cache_key", key).Msg("Cache hit")
	}
	return &view, ok
}

func (h *GetStatusHandler) store(ctx context.Context, key string, view *StatusView) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Set(ctx, key, view); err != nil {
		logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Failed to cache status view")
	}
}
