package query

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
	"github.com/tair/inventory-ledger/pkg/logger"
)

const defaultScanBatch = 200

var hundred = decimal.NewFromInt(100)

// GetLowStockQuery selects records whose quantity is at most
// ThresholdPercentage percent of their reorder point.
type GetLowStockQuery struct {
	ThresholdPercentage decimal.Decimal
	ItemKind            domain.ItemKind
}

// LowStockItem is one row of the low-stock report.
type LowStockItem struct {
	ItemKind     domain.ItemKind    `json:"item_kind"`
	ItemID       string             `json:"item_id"`
	Name         string             `json:"name"`
	Location     string             `json:"location"`
	Quantity     decimal.Decimal    `json:"quantity"`
	ReorderPoint decimal.Decimal    `json:"reorder_point"`
	Percentage   decimal.Decimal    `json:"percentage"`
	Status       domain.StockStatus `json:"status"`
}

// GetLowStockHandler handles get low stock query
type GetLowStockHandler struct {
	records   domain.InventoryRecordStore
	details   domain.ItemDetailsProvider
	batchSize int
}

// NewGetLowStockHandler creates a new low stock handler. Records are read in
// pages of batchSize.
func NewGetLowStockHandler(records domain.InventoryRecordStore, details domain.ItemDetailsProvider, batchSize int) *GetLowStockHandler {
	if batchSize <= 0 {
		batchSize = defaultScanBatch
	}
	return &GetLowStockHandler{records: records, details: details, batchSize: batchSize}
}

// Handle scans every record and looks up its reorder point. Items without a
// positive reorder point are never reported. Results are ordered by
// percentage, lowest first.
func (h *GetLowStockHandler) Handle(ctx context.Context, q GetLowStockQuery) ([]LowStockItem, error) {
	if q.ThresholdPercentage.IsNegative() {
		return nil, domain.Validation("threshold percentage cannot be negative", map[string]string{"threshold": q.ThresholdPercentage.String()})
	}
	if q.ItemKind != "" && !q.ItemKind.Valid() {
		return nil, domain.Validation("unknown item kind", map[string]string{"item_kind": string(q.ItemKind)})
	}

	// One item usually has records at several locations.
	detailsByItem := make(map[domain.ItemRef]*domain.ItemDetails)
	lookup := func(item domain.ItemRef) (*domain.ItemDetails, error) {
		if d, ok := detailsByItem[item]; ok {
			return d, nil
		}
		d, err := h.details.GetItemDetails(ctx, item)
		if err != nil {
			if domain.IsCode(err, domain.CodeEntityNotFound) {
				logger.Warn(ctx).Str("item", item.String()).Msg("Inventory record without catalog item, skipping")
				detailsByItem[item] = nil
				return nil, nil
			}
			return nil, err
		}
		detailsByItem[item] = &d
		return &d, nil
	}

	var out []LowStockItem
	for offset := 0; ; offset += h.batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		batch, total, err := h.records.List(ctx, domain.RecordFilter{Kind: q.ItemKind, Limit: h.batchSize, Offset: offset})
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory: %w", err)
		}

		for _, r := range batch {
			d, err := lookup(r.Key().Item())
			if err != nil {
				return nil, err
			}
			if d == nil || !d.ReorderPoint.IsPositive() {
				continue
			}
			// Compare the exact ratio; rounding is for display only.
			exact := r.Quantity.Mul(hundred).Div(d.ReorderPoint)
			if exact.GreaterThan(q.ThresholdPercentage) {
				continue
			}
			out = append(out, LowStockItem{
				ItemKind:     r.ItemKind,
				ItemID:       r.ItemID,
				Name:         d.Name,
				Location:     r.StorageLocation,
				Quantity:     r.Quantity,
				ReorderPoint: d.ReorderPoint,
				Percentage:   exact.Round(2),
				Status:       r.Status,
			})
		}

		if len(batch) < h.batchSize || int64(offset+len(batch)) >= total {
			break
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Percentage.Cmp(out[j].Percentage); c != 0 {
			return c < 0
		}
		if out[i].ItemID != out[j].ItemID {
			return out[i].ItemID < out[j].ItemID
		}
		return out[i].Location < out[j].Location
	})
	if out == nil {
		out = []LowStockItem{}
	}

	logger.Debug(ctx).
		Str("threshold", q.ThresholdPercentage.String()).
		Int("matches", len(out)).
		Msg("Low stock scan complete")
	return out, nil
}
