package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
	"github.com/tair/inventory-ledger/internal/inventory/inventorytest"
	"github.com/tair/inventory-ledger/kafka"
)

type registrar map[string]kafka.EventHandler

func (r registrar) RegisterHandler(eventType string, handler kafka.EventHandler) {
	r[eventType] = handler
}

func TestConsumer_Register(t *testing.T) {
	r := registrar{}
	NewConsumer(nil, nil).Register(r)

	assert.Contains(t, r, kafka.EventTypeProductUpserted)
	assert.Contains(t, r, kafka.EventTypeMaterialUpserted)
	assert.Contains(t, r, kafka.EventTypeToolUpserted)
}

func TestConsumer_UpsertsCatalogRows(t *testing.T) {
	db := openTestDB(t)
	c := NewGormCatalog(db)
	require.NoError(t, c.AutoMigrate())
	cache := &inventorytest.Cache{}
	consumer := NewConsumer(c, cache)
	registry := NewGormRegistry(c)
	ctx := context.Background()

	err := consumer.HandleMaterial(ctx, kafka.Message{
		EventType: kafka.EventTypeMaterialUpserted,
		Value:     []byte(`{"id":"42","name":"Copper wire","unit":"m","cost":"1.25","reorder_point":"10","is_active":true,"supplier":"acme"}`),
	})
	require.NoError(t, err)

	err = consumer.HandleProduct(ctx, kafka.Message{
		EventType: kafka.EventTypeProductUpserted,
		Value:     []byte(`{"id":"p1","name":"Chair","reorder_point":"2","is_active":true,"sku":"CH-1"}`),
	})
	require.NoError(t, err)

	err = consumer.HandleTool(ctx, kafka.Message{
		EventType: kafka.EventTypeToolUpserted,
		Value:     []byte(`{"id":"t1","name":"Drill","is_active":true,"serial_number":"SN-1"}`),
	})
	require.NoError(t, err)

	d, err := registry.GetItemDetails(ctx, domain.ItemRef{Kind: domain.ItemKindMaterial, ID: "42"})
	require.NoError(t, err)
	assert.Equal(t, "Copper wire", d.Name)
	assert.True(t, d.ReorderPoint.Equal(decimal.NewFromInt(10)))

	d, err = registry.GetItemDetails(ctx, domain.ItemRef{Kind: domain.ItemKindProduct, ID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "pc", d.Unit)

	_, err = registry.GetItemDetails(ctx, domain.ItemRef{Kind: domain.ItemKindTool, ID: "t1"})
	require.NoError(t, err)

	// A later change replaces the row.
	err = consumer.HandleMaterial(ctx, kafka.Message{
		EventType: kafka.EventTypeMaterialUpserted,
		Value:     []byte(`{"id":"42","name":"Copper wire","unit":"m","reorder_point":"4","is_active":true}`),
	})
	require.NoError(t, err)
	d, err = registry.GetItemDetails(ctx, domain.ItemRef{Kind: domain.ItemKindMaterial, ID: "42"})
	require.NoError(t, err)
	assert.True(t, d.ReorderPoint.Equal(decimal.NewFromInt(4)))

	material := domain.ItemRef{Kind: domain.ItemKindMaterial, ID: "42"}
	assert.Contains(t, cache.Patterns(), domain.ItemStatusPattern(material))
	assert.Contains(t, cache.Keys(), domain.ItemCacheKey(material))
}

func TestConsumer_RejectsBadMessages(t *testing.T) {
	consumer := NewConsumer(nil, nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		value string
	}{
		{"malformed", `{`},
		{"missing id", `{"name":"Glue"}`},
		{"missing name", `{"id":"9"}`},
		{"negative reorder point", `{"id":"9","name":"Glue","reorder_point":"-1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := consumer.HandleMaterial(ctx, kafka.Message{EventType: kafka.EventTypeMaterialUpserted, Value: []byte(tt.value)})
			assert.Equal(t, domain.CodeValidation, domain.GetCode(err))
		})
	}
}
