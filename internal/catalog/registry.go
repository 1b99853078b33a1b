package catalog

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
)

var tracer = otel.Tracer("catalog")

// Source resolves the details of one item kind.
type Source interface {
	Details(ctx context.Context, id string) (domain.ItemDetails, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, id string) (domain.ItemDetails, error)

func (f SourceFunc) Details(ctx context.Context, id string) (domain.ItemDetails, error) {
	return f(ctx, id)
}

// Registry dispatches detail lookups by item kind.
type Registry struct {
	sources map[domain.ItemKind]Source
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sources: make(map[domain.ItemKind]Source, len(domain.ItemKinds))}
}

// NewGormRegistry registers the gorm catalog for every kind.
func NewGormRegistry(c *GormCatalog) *Registry {
	return NewRegistry().
		Register(domain.ItemKindProduct, c.Products()).
		Register(domain.ItemKindMaterial, c.Materials()).
		Register(domain.ItemKindTool, c.Tools())
}

// Register binds a source to kind, replacing any previous binding.
func (r *Registry) Register(kind domain.ItemKind, source Source) *Registry {
	r.sources[kind] = source
	return r
}

// GetItemDetails implements domain.ItemDetailsProvider.
func (r *Registry) GetItemDetails(ctx context.Context, item domain.ItemRef) (domain.ItemDetails, error) {
	ctx, span := tracer.Start(ctx, "catalog.GetItemDetails",
		trace.WithAttributes(
			attribute.String("item.kind", string(item.Kind)),
			attribute.String("item.id", item.ID),
		),
	)
	defer span.End()

	source, ok := r.sources[item.Kind]
	if !ok {
		err := domain.Validation("no catalog registered for item kind", map[string]string{"item_kind": string(item.Kind)})
		span.SetStatus(codes.Error, err.Error())
		return domain.ItemDetails{}, err
	}

	details, err := source.Details(ctx, item.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.ItemDetails{}, err
	}

	span.SetAttributes(attribute.String("item.reorder_point", details.ReorderPoint.String()))
	span.SetStatus(codes.Ok, "")
	return details, nil
}

var _ domain.ItemDetailsProvider = (*Registry)(nil)
