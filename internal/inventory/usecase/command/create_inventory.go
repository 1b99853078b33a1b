package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
	"github.com/tair/inventory-ledger/pkg/logger"
)

// CreateInventoryCommand registers an empty record when the owning item is created
type CreateInventoryCommand struct {
	ItemKind domain.ItemKind
	ItemID   string
	Location string
}

// CreateInventoryHandler handles create inventory command
type CreateInventoryHandler struct {
	uow       domain.UnitOfWork
	details   domain.ItemDetailsProvider
	locations domain.LocationValidator
	notifier  *Notifier
	opts      Options
}

// NewCreateInventoryHandler creates a new create inventory handler
func NewCreateInventoryHandler(
	uow domain.UnitOfWork,
	details domain.ItemDetailsProvider,
	locations domain.LocationValidator,
	notifier *Notifier,
	opts Options,
) *CreateInventoryHandler {
	return &CreateInventoryHandler{
		uow:       uow,
		details:   details,
		locations: locations,
		notifier:  notifier,
		opts:      opts.withDefaults(),
	}
}

// Handle executes the create inventory command. The record starts at zero
// quantity, so no transaction log entry is written.
func (h *CreateInventoryHandler) Handle(ctx context.Context, cmd CreateInventoryCommand) (record *domain.InventoryRecord, err error) {
	start := time.Now()
	defer func() { observe("create", start, err) }()

	if !cmd.ItemKind.Valid() {
		return nil, domain.Validation("unknown item kind", map[string]string{"item_kind": string(cmd.ItemKind)})
	}
	if strings.TrimSpace(cmd.ItemID) == "" {
		return nil, domain.Validation("item_id is required", nil)
	}

	ctx, cancel := h.opts.withDeadline(ctx)
	defer cancel()

	key := domain.NewRecordKey(cmd.ItemKind, cmd.ItemID, cmd.Location)
	if _, err := h.details.GetItemDetails(ctx, key.Item()); err != nil {
		return nil, err
	}
	ok, err := h.locations.LocationExists(ctx, key.Location)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.LocationNotFound(key.Location)
	}

	err = h.uow.Execute(ctx, func(repos domain.Repositories) error {
		existing, err := repos.Records().Find(ctx, key)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.RecordExists(key)
		}
		record = domain.NewInventoryRecord(key, h.opts.Now())
		if err := repos.Records().Create(ctx, record); err != nil {
			if domain.IsCode(err, domain.CodeConcurrentModification) {
				return domain.RecordExists(key)
			}
			return fmt.Errorf("failed to create inventory: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.notifier.invalidate(ctx, key.Item(), key.Location)
	logger.Info(ctx).Str("item", key.String()).Msg("Inventory record created")
	return record, nil
}
