package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
)

// GetHistoryQuery represents the query to read an item's audit trail
type GetHistoryQuery struct {
	ItemKind domain.ItemKind
	ItemID   string
	Limit    int
	Offset   int
}

// GetHistoryHandler handles get history query
type GetHistoryHandler struct {
	log domain.TransactionLog
}

// NewGetHistoryHandler creates a new get history handler
func NewGetHistoryHandler(log domain.TransactionLog) *GetHistoryHandler {
	return &GetHistoryHandler{log: log}
}

// Handle returns log entries oldest first.
func (h *GetHistoryHandler) Handle(ctx context.Context, q GetHistoryQuery) ([]domain.TransactionLogEntry, error) {
	if !q.ItemKind.Valid() {
		return nil, domain.Validation("unknown item kind", map[string]string{"item_kind": string(q.ItemKind)})
	}
	if strings.TrimSpace(q.ItemID) == "" {
		return nil, domain.Validation("item_id is required", nil)
	}
	limit, offset := paginate(q.Limit, q.Offset)

	entries, err := h.log.History(ctx, domain.ItemRef{Kind: q.ItemKind, ID: q.ItemID}, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	if entries == nil {
		entries = []domain.TransactionLogEntry{}
	}
	return entries, nil
}
