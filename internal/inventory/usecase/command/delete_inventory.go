package command

import (
	"context"
	"strings"
	"time"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
	"github.com/tair/inventory-ledger/pkg/logger"
)

// DeleteInventoryCommand removes an item's records when the owning item is deleted
type DeleteInventoryCommand struct {
	ItemKind domain.ItemKind
	ItemID   string
}

// DeleteInventoryHandler handles delete inventory command
type DeleteInventoryHandler struct {
	uow      domain.UnitOfWork
	notifier *Notifier
	opts     Options
}

// NewDeleteInventoryHandler creates a new delete inventory handler
func NewDeleteInventoryHandler(uow domain.UnitOfWork, notifier *Notifier, opts Options) *DeleteInventoryHandler {
	return &DeleteInventoryHandler{uow: uow, notifier: notifier, opts: opts.withDefaults()}
}

// Handle executes the delete inventory command. Items with stock on hand at
// any location are refused with NONZERO_STOCK; zero them out through an
// adjustment first.
func (h *DeleteInventoryHandler) Handle(ctx context.Context, cmd DeleteInventoryCommand) (removed int, err error) {
	start := time.Now()
	defer func() { observe("delete", start, err) }()

	if !cmd.ItemKind.Valid() {
		return 0, domain.Validation("unknown item kind", map[string]string{"item_kind": string(cmd.ItemKind)})
	}
	if strings.TrimSpace(cmd.ItemID) == "" {
		return 0, domain.Validation("item_id is required", nil)
	}

	ctx, cancel := h.opts.withDeadline(ctx)
	defer cancel()

	item := domain.ItemRef{Kind: cmd.ItemKind, ID: cmd.ItemID}
	err = h.opts.Retry.Run(ctx, "delete", func(ctx context.Context) error {
		removed = 0
		return h.uow.Execute(ctx, func(repos domain.Repositories) error {
			records, err := repos.Records().FindByItem(ctx, item)
			if err != nil {
				return err
			}
			for i := range records {
				if !records[i].Quantity.IsZero() {
					return domain.NonzeroStock(records[i].Key(), records[i].Quantity)
				}
			}
			for i := range records {
				if err := repos.Records().Delete(ctx, records[i].Key(), records[i].Version); err != nil {
					return err
				}
				removed++
			}
			return nil
		})
	})
	if err != nil {
		return 0, err
	}

	h.notifier.invalidateItem(ctx, item)
	logger.Info(ctx).Str("item", item.String()).Int("records_removed", removed).Msg("Inventory records deleted")
	return removed, nil
}
