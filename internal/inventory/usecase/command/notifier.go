package command

import (
	"context"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
	"github.com/tair/inventory-ledger/pkg/logger"
)

// Notifier fans committed changes out to the event publisher and the cache.
// Both are fire-and-forget: failures are logged and never undo a commit.
type Notifier struct {
	publisher domain.EventPublisher
	cache     domain.CacheInvalidator
}

// NewNotifier creates a notifier; either collaborator may be nil.
func NewNotifier(publisher domain.EventPublisher, cache domain.CacheInvalidator) *Notifier {
	return &Notifier{publisher: publisher, cache: cache}
}

func (n *Notifier) publish(ctx context.Context, events ...domain.Event) {
	if n == nil || n.publisher == nil || len(events) == 0 {
		return
	}
	for _, e := range events {
		if alert, ok := e.(domain.LowStockAlert); ok {
			lowStockAlertsTotal.WithLabelValues(string(alert.Item.Kind), string(alert.Status)).Inc()
		}
	}
	if err := n.publisher.Publish(ctx, events...); err != nil {
		logger.Error(ctx).
			Err(err).
			Str("item", events[0].ItemRef().String()).
			Int("event_count", len(events)).
			Msg("Failed to publish inventory events")
	}
}

// invalidate drops the status keys of the touched locations and the item's
// aggregate key.
func (n *Notifier) invalidate(ctx context.Context, item domain.ItemRef, locations ...string) {
	if n == nil || n.cache == nil {
		return
	}
	keys := make([]string, 0, len(locations)+1)
	for _, loc := range locations {
		keys = append(keys, domain.StatusCacheKey(domain.RecordKey{Kind: item.Kind, ItemID: item.ID, Location: loc}))
	}
	keys = append(keys, domain.ItemCacheKey(item))

	if err := n.cache.Invalidate(ctx, keys...); err != nil {
		logger.Error(ctx).
			Err(err).
			Strs("keys", keys).
			Msg("Failed to invalidate inventory cache")
	}
}

// invalidateItem drops every cached view of an item.
func (n *Notifier) invalidateItem(ctx context.Context, item domain.ItemRef) {
	if n == nil || n.cache == nil {
		return
	}
	if err := n.cache.InvalidatePattern(ctx, domain.ItemStatusPattern(item)); err != nil {
		logger.Error(ctx).Err(err).Str("item", item.String()).Msg("Failed to invalidate inventory cache")
	}
	n.invalidate(ctx, item)
}
