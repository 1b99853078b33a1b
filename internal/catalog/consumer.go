package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
	"github.com/tair/inventory-ledger/kafka"
	"github.com/tair/inventory-ledger/pkg/logger"
)

// Writer persists catalog rows.
type Writer interface {
	SaveProduct(ctx context.Context, p *Product) error
	SaveMaterial(ctx context.Context, m *Material) error
	SaveTool(ctx context.Context, t *Tool) error
}

// Registrar is the part of the Kafka consumer the catalog handlers need.
type Registrar interface {
	RegisterHandler(eventType string, handler kafka.EventHandler)
}

// Consumer keeps the catalog tables in step with the modules that own
// products, materials and tools.
type Consumer struct {
	writer Writer
	cache  domain.CacheInvalidator
}

// NewConsumer creates a catalog consumer; cache may be nil.
func NewConsumer(writer Writer, cache domain.CacheInvalidator) *Consumer {
	return &Consumer{writer: writer, cache: cache}
}

// Register binds every catalog change type to its handler.
func (c *Consumer) Register(r Registrar) {
	r.RegisterHandler(kafka.EventTypeProductUpserted, c.HandleProduct)
	r.RegisterHandler(kafka.EventTypeMaterialUpserted, c.HandleMaterial)
	r.RegisterHandler(kafka.EventTypeToolUpserted, c.HandleTool)
}

// HandleProduct upserts a product row.
func (c *Consumer) HandleProduct(ctx context.Context, msg kafka.Message) error {
	var p Product
	if err := decode(msg, &p, &p.Item); err != nil {
		return err
	}
	if err := c.writer.SaveProduct(ctx, &p); err != nil {
		return err
	}
	c.saved(ctx, domain.ItemRef{Kind: domain.ItemKindProduct, ID: p.ID}, p.Item)
	return nil
}

// HandleMaterial upserts a material row.
func (c *Consumer) HandleMaterial(ctx context.Context, msg kafka.Message) error {
	var m Material
	if err := decode(msg, &m, &m.Item); err != nil {
		return err
	}
	if err := c.writer.SaveMaterial(ctx, &m); err != nil {
		return err
	}
	c.saved(ctx, domain.ItemRef{Kind: domain.ItemKindMaterial, ID: m.ID}, m.Item)
	return nil
}

// HandleTool upserts a tool row.
func (c *Consumer) HandleTool(ctx context.Context, msg kafka.Message) error {
	var t Tool
	if err := decode(msg, &t, &t.Item); err != nil {
		return err
	}
	if err := c.writer.SaveTool(ctx, &t); err != nil {
		return err
	}
	c.saved(ctx, domain.ItemRef{Kind: domain.ItemKindTool, ID: t.ID}, t.Item)
	return nil
}

// saved drops cached status views of the item; a new reorder point changes
// every location's status.
func (c *Consumer) saved(ctx context.Context, ref domain.ItemRef, item Item) {
	if c.cache != nil {
		if err := c.cache.InvalidatePattern(ctx, domain.ItemStatusPattern(ref)); err != nil {
			logger.Error(ctx).Err(err).Str("item", ref.String()).Msg("Failed to invalidate item status cache")
		}
		if err := c.cache.Invalidate(ctx, domain.ItemCacheKey(ref)); err != nil {
			logger.Error(ctx).Err(err).Str("item", ref.String()).Msg("Failed to invalidate item cache")
		}
	}

	logger.Info(ctx).
		Str("item", ref.String()).
		Str("reorder_point", item.ReorderPoint.String()).
		Bool("active", item.IsActive).
		Msg("Catalog item saved")
}

func decode(msg kafka.Message, dest any, item *Item) error {
	if err := json.Unmarshal(msg.Value, dest); err != nil {
		return domain.Validation(fmt.Sprintf("malformed %s message: %v", msg.EventType, err), nil)
	}
	item.ID = strings.TrimSpace(item.ID)
	if item.ID == "" {
		return domain.Validation("catalog item id is required", nil)
	}
	if strings.TrimSpace(item.Name) == "" {
		return domain.Validation("catalog item name is required", map[string]string{"item_id": item.ID})
	}
	if item.ReorderPoint.IsNegative() {
		return domain.Validation("reorder point cannot be negative", map[string]string{"item_id": item.ID, "reorder_point": item.ReorderPoint.String()})
	}
	if item.Unit == "" {
		item.Unit = "pc"
	}
	return nil
}
