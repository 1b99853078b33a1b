package command

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
	"github.com/tair/inventory-ledger/pkg/logger"
)

// AdjustInventoryCommand represents a single-location quantity change
type AdjustInventoryCommand struct {
	ItemKind       domain.ItemKind
	ItemID         string
	QuantityChange decimal.Decimal
	ReasonCode     domain.ReasonCode
	ReasonText     string
	Location       string
	ReferenceID    string
	ReferenceKind  string
	PerformedBy    string
}

func (c AdjustInventoryCommand) validate() error {
	if !c.ItemKind.Valid() {
		return domain.Validation("unknown item kind", map[string]string{"item_kind": string(c.ItemKind)})
	}
	if strings.TrimSpace(c.ItemID) == "" {
		return domain.Validation("item_id is required", nil)
	}
	if !c.ReasonCode.Valid() {
		return domain.Validation("unrecognized adjustment reason", map[string]string{"reason_code": string(c.ReasonCode)})
	}
	if strings.TrimSpace(c.ReasonText) == "" {
		return domain.Validation("reason text is required", nil)
	}
	if c.QuantityChange.IsZero() {
		return domain.Validation("quantity change cannot be zero", map[string]string{"quantity_change": c.QuantityChange.String()})
	}
	return nil
}

// AdjustInventoryResult is the committed outcome of an adjustment
type AdjustInventoryResult struct {
	Record           *domain.InventoryRecord
	PreviousQuantity decimal.Decimal
	ReorderPoint     decimal.Decimal
	Entry            *domain.TransactionLogEntry
}

// AdjustInventoryHandler handles adjust inventory command
type AdjustInventoryHandler struct {
	uow      domain.UnitOfWork
	details  domain.ItemDetailsProvider
	notifier *Notifier
	opts     Options
}

// NewAdjustInventoryHandler creates a new adjust inventory handler
func NewAdjustInventoryHandler(uow domain.UnitOfWork, details domain.ItemDetailsProvider, notifier *Notifier, opts Options) *AdjustInventoryHandler {
	return &AdjustInventoryHandler{
		uow:      uow,
		details:  details,
		notifier: notifier,
		opts:     opts.withDefaults(),
	}
}

// Handle executes the adjust inventory command
func (h *AdjustInventoryHandler) Handle(ctx context.Context, cmd AdjustInventoryCommand) (result *AdjustInventoryResult, err error) {
	start := time.Now()
	defer func() { observe("adjust", start, err) }()

	if err := cmd.validate(); err != nil {
		return nil, err
	}

	ctx, cancel := h.opts.withDeadline(ctx)
	defer cancel()

	key := domain.NewRecordKey(cmd.ItemKind, cmd.ItemID, cmd.Location)
	details, err := h.details.GetItemDetails(ctx, key.Item())
	if err != nil {
		return nil, err
	}

	err = h.opts.Retry.Run(ctx, "adjust", func(ctx context.Context) error {
		return h.uow.Execute(ctx, func(repos domain.Repositories) error {
			current, err := repos.Records().Find(ctx, key)
			if err != nil {
				return err
			}
			result, err = h.apply(ctx, repos, adjustment{
				key:           key,
				current:       current,
				delta:         cmd.QuantityChange,
				reorderPoint:  details.ReorderPoint,
				kind:          domain.TransactionAdjustment,
				reasonCode:    cmd.ReasonCode,
				reasonText:    cmd.ReasonText,
				referenceID:   cmd.ReferenceID,
				referenceKind: cmd.ReferenceKind,
				performedBy:   cmd.PerformedBy,
			})
			return err
		})
	})
	if err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("item", key.String()).
			Str("quantity_change", cmd.QuantityChange.String()).
			Str("reason_code", string(cmd.ReasonCode)).
			Msg("Inventory adjustment rejected")
		return nil, err
	}

	h.notifier.publish(ctx, adjustedEvents(key, result, cmd.ReasonCode, cmd.ReasonText)...)
	h.notifier.invalidate(ctx, key.Item(), key.Location)

	logger.Info(ctx).
		Str("item", key.String()).
		Str("previous_quantity", result.PreviousQuantity.String()).
		Str("new_quantity", result.Record.Quantity.String()).
		Str("status", string(result.Record.Status)).
		Str("reason_code", string(cmd.ReasonCode)).
		Msg("Inventory adjusted")

	return result, nil
}

// adjustment is the input to the shared adjust primitive.
type adjustment struct {
	key           domain.RecordKey
	current       *domain.InventoryRecord
	delta         decimal.Decimal
	reorderPoint  decimal.Decimal
	kind          domain.TransactionKind
	reasonCode    domain.ReasonCode
	reasonText    string
	referenceID   string
	referenceKind string
	performedBy   string
}

// apply writes the record change and its log entry through repos. It must
// run inside a unit of work so both commit together.
func (h *AdjustInventoryHandler) apply(ctx context.Context, repos domain.Repositories, a adjustment) (*AdjustInventoryResult, error) {
	if err := ensureNewReference(ctx, repos.Transactions(), a.key.Item(), a.referenceKind, a.referenceID); err != nil {
		return nil, err
	}

	now := h.opts.Now()
	change, err := stockChange{
		key:          a.key,
		current:      a.current,
		delta:        a.delta,
		reorderPoint: a.reorderPoint,
	}.apply(ctx, repos.Records(), now)
	if err != nil {
		return nil, err
	}

	entry := &domain.TransactionLogEntry{
		ItemKind:       a.key.Kind,
		ItemID:         a.key.ItemID,
		QuantityChange: a.delta,
		Kind:           a.kind,
		ReasonCode:     a.reasonCode,
		ReferenceID:    a.referenceID,
		ReferenceKind:  a.referenceKind,
		ToLocation:     a.key.Location,
		Notes:          a.reasonText,
		PerformedBy:    a.performedBy,
		OccurredAt:     now,
	}
	if a.delta.IsNegative() {
		entry.FromLocation, entry.ToLocation = a.key.Location, ""
	}
	if err := repos.Transactions().Append(ctx, entry); err != nil {
		return nil, err
	}

	return &AdjustInventoryResult{
		Record:           change.record,
		PreviousQuantity: change.previous,
		ReorderPoint:     a.reorderPoint,
		Entry:            entry,
	}, nil
}

// ensureNewReference rejects a movement whose reference was already logged
// for the item, so a redelivered request is applied once.
func ensureNewReference(ctx context.Context, log domain.TransactionLog, item domain.ItemRef, referenceKind, referenceID string) error {
	if referenceID == "" {
		return nil
	}
	seen, err := log.HasReference(ctx, item, referenceKind, referenceID)
	if err != nil {
		return err
	}
	if seen {
		return domain.DuplicateReference(item, referenceKind, referenceID)
	}
	return nil
}

func adjustedEvents(key domain.RecordKey, result *AdjustInventoryResult, reason domain.ReasonCode, reasonText string) []domain.Event {
	now := result.Entry.OccurredAt
	events := []domain.Event{domain.InventoryAdjusted{
		Item:             key.Item(),
		Location:         key.Location,
		PreviousQuantity: result.PreviousQuantity,
		NewQuantity:      result.Record.Quantity,
		ReasonCode:       reason,
		ReasonText:       reasonText,
		OccurredAt:       now,
	}}
	if result.Record.Status.NeedsAlert() {
		events = append(events, domain.LowStockAlert{
			Item:         key.Item(),
			Location:     key.Location,
			Quantity:     result.Record.Quantity,
			ReorderPoint: result.ReorderPoint,
			Status:       result.Record.Status,
			OccurredAt:   now,
		})
	}
	return events
}
