package command

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
	"github.com/tair/inventory-ledger/pkg/logger"
)

// ReconcileInventoryCommand corrects a record to match a physical count
type ReconcileInventoryCommand struct {
	ItemKind       domain.ItemKind
	ItemID         string
	ActualQuantity decimal.Decimal
	CountID        string
	Notes          string
	Location       string
	PerformedBy    string
}

func (c ReconcileInventoryCommand) validate() error {
	if !c.ItemKind.Valid() {
		return domain.Validation("unknown item kind", map[string]string{"item_kind": string(c.ItemKind)})
	}
	if strings.TrimSpace(c.ItemID) == "" {
		return domain.Validation("item_id is required", nil)
	}
	if c.ActualQuantity.IsNegative() {
		return domain.Validation("counted quantity cannot be negative", map[string]string{"actual_quantity": c.ActualQuantity.String()})
	}
	return nil
}

// ReconcileInventoryResult reports the applied delta. Record is nil only
// when no record exists and the count was zero.
type ReconcileInventoryResult struct {
	Adjustment       decimal.Decimal
	PreviousQuantity decimal.Decimal
	Record           *domain.InventoryRecord
	Entry            *domain.TransactionLogEntry
}

// ReconcileInventoryHandler handles reconcile inventory command
type ReconcileInventoryHandler struct {
	adjust *AdjustInventoryHandler
}

// NewReconcileInventoryHandler creates a reconcile handler that delegates
// quantity changes to the adjust handler.
func NewReconcileInventoryHandler(adjust *AdjustInventoryHandler) *ReconcileInventoryHandler {
	return &ReconcileInventoryHandler{adjust: adjust}
}

// Handle executes the reconcile inventory command
func (h *ReconcileInventoryHandler) Handle(ctx context.Context, cmd ReconcileInventoryCommand) (result *ReconcileInventoryResult, err error) {
	start := time.Now()
	defer func() { observe("reconcile", start, err) }()

	if err := cmd.validate(); err != nil {
		return nil, err
	}

	a := h.adjust
	ctx, cancel := a.opts.withDeadline(ctx)
	defer cancel()

	key := domain.NewRecordKey(cmd.ItemKind, cmd.ItemID, cmd.Location)
	details, err := a.details.GetItemDetails(ctx, key.Item())
	if err != nil {
		return nil, err
	}

	reasonText := cmd.Notes
	if strings.TrimSpace(reasonText) == "" {
		reasonText = "physical count"
	}

	var adjusted *AdjustInventoryResult
	err = a.opts.Retry.Run(ctx, "reconcile", func(ctx context.Context) error {
		adjusted = nil
		return a.uow.Execute(ctx, func(repos domain.Repositories) error {
			current, err := repos.Records().Find(ctx, key)
			if err != nil {
				return err
			}

			previous := decimal.Zero
			if current != nil {
				previous = current.Quantity
			}
			delta := cmd.ActualQuantity.Sub(previous)
			result = &ReconcileInventoryResult{
				Adjustment:       delta,
				PreviousQuantity: previous,
				Record:           current,
			}
			if delta.IsZero() {
				return nil
			}

			adjusted, err = a.apply(ctx, repos, adjustment{
				key:           key,
				current:       current,
				delta:         delta,
				reorderPoint:  details.ReorderPoint,
				kind:          domain.TransactionReconciliation,
				reasonCode:    domain.ReasonPhysicalCount,
				reasonText:    reasonText,
				referenceID:   cmd.CountID,
				referenceKind: domain.ReferenceKindCount,
				performedBy:   cmd.PerformedBy,
			})
			if err != nil {
				return err
			}
			result.Record = adjusted.Record
			result.Entry = adjusted.Entry
			return nil
		})
	})
	if err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("item", key.String()).
			Str("actual_quantity", cmd.ActualQuantity.String()).
			Str("count_id", cmd.CountID).
			Msg("Inventory reconciliation rejected")
		return nil, err
	}

	if adjusted == nil {
		logger.Info(ctx).
			Str("item", key.String()).
			Str("quantity", result.PreviousQuantity.String()).
			Str("count_id", cmd.CountID).
			Msg("Physical count matches recorded quantity")
		return result, nil
	}

	events := adjustedEvents(key, adjusted, domain.ReasonPhysicalCount, reasonText)
	events = append(events, domain.InventoryReconciled{
		Item:             key.Item(),
		Location:         key.Location,
		PreviousQuantity: result.PreviousQuantity,
		NewQuantity:      adjusted.Record.Quantity,
		Delta:            result.Adjustment,
		CountID:          cmd.CountID,
		OccurredAt:       adjusted.Entry.OccurredAt,
	})
	a.notifier.publish(ctx, events...)
	a.notifier.invalidate(ctx, key.Item(), key.Location)

	logger.Info(ctx).
		Str("item", key.String()).
		Str("previous_quantity", result.PreviousQuantity.String()).
		Str("new_quantity", adjusted.Record.Quantity.String()).
		Str("delta", result.Adjustment.String()).
		Str("count_id", cmd.CountID).
		Msg("Inventory reconciled")

	return result, nil
}
