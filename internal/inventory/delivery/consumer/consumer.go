package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
	"github.com/tair/inventory-ledger/internal/inventory/usecase/command"
	"github.com/tair/inventory-ledger/kafka"
	"github.com/tair/inventory-ledger/pkg/logger"
)

// Registrar is the part of the Kafka consumer the movement handlers need.
type Registrar interface {
	RegisterHandler(eventType string, handler kafka.EventHandler)
}

// MovementConsumer applies stock-movement requests published by order
// fulfillment, purchase receiving and cycle counting.
type MovementConsumer struct {
	adjust    *command.AdjustInventoryHandler
	transfer  *command.TransferInventoryHandler
	reconcile *command.ReconcileInventoryHandler
}

// NewMovementConsumer creates a new movement consumer
func NewMovementConsumer(
	adjust *command.AdjustInventoryHandler,
	transfer *command.TransferInventoryHandler,
	reconcile *command.ReconcileInventoryHandler,
) *MovementConsumer {
	return &MovementConsumer{adjust: adjust, transfer: transfer, reconcile: reconcile}
}

// Register binds every request type to its handler.
func (c *MovementConsumer) Register(r Registrar) {
	r.RegisterHandler(kafka.EventTypeAdjustRequested, c.HandleAdjust)
	r.RegisterHandler(kafka.EventTypeTransferRequested, c.HandleTransfer)
	r.RegisterHandler(kafka.EventTypeReconcileRequested, c.HandleReconcile)
}

// HandleAdjust applies an AdjustRequestedEvent.
func (c *MovementConsumer) HandleAdjust(ctx context.Context, msg kafka.Message) error {
	var event kafka.AdjustRequestedEvent
	if err := decode(msg, &event); err != nil {
		return err
	}
	reason, err := domain.ParseReasonCode(event.ReasonCode)
	if err != nil {
		return err
	}

	_, err = c.adjust.Handle(ctx, command.AdjustInventoryCommand{
		ItemKind:       domain.ItemKind(event.ItemKind),
		ItemID:         event.ItemID,
		QuantityChange: event.QuantityChange,
		ReasonCode:     reason,
		ReasonText:     event.ReasonText,
		Location:       event.Location,
		ReferenceID:    firstNonEmpty(event.ReferenceID, msg.EventID),
		ReferenceKind:  event.ReferenceKind,
		PerformedBy:    event.PerformedBy,
	})
	return skipDuplicate(ctx, msg, err)
}

// HandleTransfer applies a TransferRequestedEvent.
func (c *MovementConsumer) HandleTransfer(ctx context.Context, msg kafka.Message) error {
	var event kafka.TransferRequestedEvent
	if err := decode(msg, &event); err != nil {
		return err
	}

	_, err := c.transfer.Handle(ctx, command.TransferInventoryCommand{
		ItemKind:     domain.ItemKind(event.ItemKind),
		ItemID:       event.ItemID,
		Quantity:     event.Quantity,
		FromLocation: event.FromLocation,
		ToLocation:   event.ToLocation,
		Notes:        event.Notes,
		ReferenceID:  firstNonEmpty(event.ReferenceID, msg.EventID),
		PerformedBy:  event.PerformedBy,
	})
	return skipDuplicate(ctx, msg, err)
}

// HandleReconcile applies a ReconcileRequestedEvent.
func (c *MovementConsumer) HandleReconcile(ctx context.Context, msg kafka.Message) error {
	var event kafka.ReconcileRequestedEvent
	if err := decode(msg, &event); err != nil {
		return err
	}

	_, err := c.reconcile.Handle(ctx, command.ReconcileInventoryCommand{
		ItemKind:       domain.ItemKind(event.ItemKind),
		ItemID:         event.ItemID,
		ActualQuantity: event.ActualQuantity,
		CountID:        firstNonEmpty(event.CountID, msg.EventID),
		Notes:          event.Notes,
		Location:       event.Location,
		PerformedBy:    event.PerformedBy,
	})
	return skipDuplicate(ctx, msg, err)
}

// skipDuplicate acknowledges a redelivered request whose reference is
// already in the log.
func skipDuplicate(ctx context.Context, msg kafka.Message, err error) error {
	if !domain.IsCode(err, domain.CodeDuplicateReference) {
		return err
	}
	md := domain.GetMetadata(err)
	logger.Info(ctx).
		Str("event_type", msg.EventType).
		Str("event_id", msg.EventID).
		Str("reference_kind", md["reference_kind"]).
		Str("reference_id", md["reference_id"]).
		Msg("Movement request already applied, skipping")
	return nil
}

func decode(msg kafka.Message, dest any) error {
	if err := json.Unmarshal(msg.Value, dest); err != nil {
		return domain.Validation(fmt.Sprintf("malformed %s message: %v", msg.EventType, err), nil)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
