package command

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
	"github.com/tair/inventory-ledger/pkg/logger"
)

// TransferInventoryCommand represents a move of stock between two locations
type TransferInventoryCommand struct {
	ItemKind     domain.ItemKind
	ItemID       string
	Quantity     decimal.Decimal
	FromLocation string
	ToLocation   string
	Notes        string
	ReferenceID  string
	PerformedBy  string
}

func (c TransferInventoryCommand) validate() error {
	if !c.ItemKind.Valid() {
		return domain.Validation("unknown item kind", map[string]string{"item_kind": string(c.ItemKind)})
	}
	if strings.TrimSpace(c.ItemID) == "" {
		return domain.Validation("item_id is required", nil)
	}
	if !c.Quantity.IsPositive() {
		return domain.Validation("transfer quantity must be positive", map[string]string{"quantity": c.Quantity.String()})
	}
	if domain.NormalizeLocation(c.FromLocation) == domain.NormalizeLocation(c.ToLocation) {
		return domain.Validation("source and destination locations must differ", map[string]string{"location": domain.NormalizeLocation(c.FromLocation)})
	}
	return nil
}

// TransferInventoryResult holds both endpoints after the move. From reports
// a zero quantity when the source record was removed.
type TransferInventoryResult struct {
	From        *domain.InventoryRecord
	To          *domain.InventoryRecord
	FromRemoved bool
	Entry       *domain.TransactionLogEntry
}

// TransferInventoryHandler handles transfer inventory command
type TransferInventoryHandler struct {
	uow       domain.UnitOfWork
	details   domain.ItemDetailsProvider
	locations domain.LocationValidator
	notifier  *Notifier
	opts      Options
}

// NewTransferInventoryHandler creates a new transfer inventory handler
func NewTransferInventoryHandler(
	uow domain.UnitOfWork,
	details domain.ItemDetailsProvider,
	locations domain.LocationValidator,
	notifier *Notifier,
	opts Options,
) *TransferInventoryHandler {
	return &TransferInventoryHandler{
		uow:       uow,
		details:   details,
		locations: locations,
		notifier:  notifier,
		opts:      opts.withDefaults(),
	}
}

// Handle executes the transfer inventory command
func (h *TransferInventoryHandler) Handle(ctx context.Context, cmd TransferInventoryCommand) (result *TransferInventoryResult, err error) {
	start := time.Now()
	defer func() { observe("transfer", start, err) }()

	if err := cmd.validate(); err != nil {
		return nil, err
	}

	ctx, cancel := h.opts.withDeadline(ctx)
	defer cancel()

	fromKey := domain.NewRecordKey(cmd.ItemKind, cmd.ItemID, cmd.FromLocation)
	toKey := domain.NewRecordKey(cmd.ItemKind, cmd.ItemID, cmd.ToLocation)

	for _, loc := range []string{fromKey.Location, toKey.Location} {
		ok, err := h.locations.LocationExists(ctx, loc)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.LocationNotFound(loc)
		}
	}

	details, err := h.details.GetItemDetails(ctx, fromKey.Item())
	if err != nil {
		return nil, err
	}

	err = h.opts.Retry.Run(ctx, "transfer", func(ctx context.Context) error {
		return h.uow.Execute(ctx, func(repos domain.Repositories) error {
			result, err = h.move(ctx, repos, fromKey, toKey, cmd, details.ReorderPoint)
			return err
		})
	})
	if err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("from", fromKey.String()).
			Str("to", toKey.Location).
			Str("quantity", cmd.Quantity.String()).
			Msg("Inventory transfer rejected")
		return nil, err
	}

	h.notifier.publish(ctx, domain.InventoryTransferred{
		Item:       fromKey.Item(),
		From:       fromKey.Location,
		To:         toKey.Location,
		Quantity:   cmd.Quantity,
		OccurredAt: result.Entry.OccurredAt,
	})
	h.notifier.invalidate(ctx, fromKey.Item(), fromKey.Location, toKey.Location)

	logger.Info(ctx).
		Str("item", fromKey.Item().String()).
		Str("from", fromKey.Location).
		Str("to", toKey.Location).
		Str("quantity", cmd.Quantity.String()).
		Bool("source_removed", result.FromRemoved).
		Msg("Inventory transferred")

	return result, nil
}

// move loads both endpoints, checks the source, then writes both records and
// the TRANSFER entry. Loads and writes follow location order.
func (h *TransferInventoryHandler) move(
	ctx context.Context,
	repos domain.Repositories,
	fromKey, toKey domain.RecordKey,
	cmd TransferInventoryCommand,
	reorderPoint decimal.Decimal,
) (*TransferInventoryResult, error) {
	if err := ensureNewReference(ctx, repos.Transactions(), fromKey.Item(), "", cmd.ReferenceID); err != nil {
		return nil, err
	}

	keys := []domain.RecordKey{fromKey, toKey}
	domain.SortKeys(keys)

	loaded := make(map[string]*domain.InventoryRecord, 2)
	for _, key := range keys {
		record, err := repos.Records().Find(ctx, key)
		if err != nil {
			return nil, err
		}
		loaded[key.Location] = record
	}

	source := loaded[fromKey.Location]
	available := decimal.Zero
	if source != nil {
		available = source.Quantity
	}
	if available.LessThan(cmd.Quantity) {
		return nil, domain.Insufficient(fromKey, cmd.Quantity, available)
	}

	changes := map[string]stockChange{
		fromKey.Location: {
			key:          fromKey,
			current:      source,
			delta:        cmd.Quantity.Neg(),
			reorderPoint: reorderPoint,
			removeEmpty:  true,
		},
		toKey.Location: {
			key:          toKey,
			current:      loaded[toKey.Location],
			delta:        cmd.Quantity,
			reorderPoint: reorderPoint,
		},
	}

	now := h.opts.Now()
	result := &TransferInventoryResult{}
	for _, key := range keys {
		res, err := changes[key.Location].apply(ctx, repos.Records(), now)
		if err != nil {
			return nil, err
		}
		if key.Location == fromKey.Location {
			result.From = res.record
			result.FromRemoved = res.removed
		} else {
			result.To = res.record
		}
	}

	result.Entry = &domain.TransactionLogEntry{
		ItemKind:       fromKey.Kind,
		ItemID:         fromKey.ItemID,
		QuantityChange: cmd.Quantity,
		Kind:           domain.TransactionTransfer,
		ReferenceID:    cmd.ReferenceID,
		FromLocation:   fromKey.Location,
		ToLocation:     toKey.Location,
		Notes:          cmd.Notes,
		PerformedBy:    cmd.PerformedBy,
		OccurredAt:     now,
	}
	if err := repos.Transactions().Append(ctx, result.Entry); err != nil {
		return nil, err
	}
	return result, nil
}
