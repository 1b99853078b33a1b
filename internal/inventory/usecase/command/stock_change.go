package command

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
)

// stockChange describes one single-record quantity change. It is the
// primitive adjustments, transfers and reconciliations are built from.
type stockChange struct {
	key          domain.RecordKey
	current      *domain.InventoryRecord
	delta        decimal.Decimal
	reorderPoint decimal.Decimal
	// removeEmpty deletes the record instead of storing a zero quantity.
	removeEmpty bool
}

// stockChangeResult is the outcome of applying a stockChange.
type stockChangeResult struct {
	previous decimal.Decimal
	record   *domain.InventoryRecord
	removed  bool
}

// apply checks the non-negative invariant and writes the record under the
// version check. A missing record is only created for a positive delta.
func (c stockChange) apply(ctx context.Context, records domain.InventoryRecordStore, now time.Time) (stockChangeResult, error) {
	res := stockChangeResult{previous: decimal.Zero}
	if c.current != nil {
		res.previous = c.current.Quantity
	}

	if c.current == nil && !c.delta.IsPositive() {
		return res, domain.Insufficient(c.key, c.delta.Neg(), decimal.Zero)
	}

	next := res.previous.Add(c.delta)
	if next.IsNegative() {
		return res, domain.Insufficient(c.key, c.delta.Neg(), res.previous)
	}

	if c.current == nil {
		record := domain.NewInventoryRecord(c.key, now)
		record.SetQuantity(next, c.reorderPoint, now)
		if err := records.Create(ctx, record); err != nil {
			return res, err
		}
		res.record = record
		return res, nil
	}

	record := c.current.Clone()
	record.SetQuantity(next, c.reorderPoint, now)

	if c.removeEmpty && next.IsZero() {
		if err := records.Delete(ctx, c.key, c.current.Version); err != nil {
			return res, err
		}
		res.record = record
		res.removed = true
		return res, nil
	}

	if err := records.Update(ctx, record, c.current.Version); err != nil {
		return res, err
	}
	res.record = record
	return res, nil
}
