package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
)

// GormCatalog reads and maintains the per-kind catalog tables.
type GormCatalog struct {
	db *gorm.DB
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

func (c *GormCatalog) AutoMigrate() error {
	return c.db.AutoMigrate(&Product{}, &Material{}, &Tool{})
}

// Products, Materials and Tools are the per-kind detail sources.
func (c *GormCatalog) Products() Source  { return gormSource[Product]{db: c.db, kind: domain.ItemKindProduct} }
func (c *GormCatalog) Materials() Source { return gormSource[Material]{db: c.db, kind: domain.ItemKindMaterial} }
func (c *GormCatalog) Tools() Source     { return gormSource[Tool]{db: c.db, kind: domain.ItemKindTool} }

// SaveProduct inserts or updates a product.
func (c *GormCatalog) SaveProduct(ctx context.Context, p *Product) error {
	return upsert(ctx, c.db, p)
}

// SaveMaterial inserts or updates a material.
func (c *GormCatalog) SaveMaterial(ctx context.Context, m *Material) error {
	return upsert(ctx, c.db, m)
}

// SaveTool inserts or updates a tool.
func (c *GormCatalog) SaveTool(ctx context.Context, t *Tool) error {
	return upsert(ctx, c.db, t)
}

func upsert[T catalogItem](ctx context.Context, db *gorm.DB, item *T) error {
	err := db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(item).Error
	if err != nil {
		return fmt.Errorf("failed to save catalog item: %w", err)
	}
	return nil
}

type gormSource[T catalogItem] struct {
	db   *gorm.DB
	kind domain.ItemKind
}

func (s gormSource[T]) Details(ctx context.Context, id string) (domain.ItemDetails, error) {
	var model T
	err := s.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ItemDetails{}, domain.ItemNotFound(domain.ItemRef{Kind: s.kind, ID: id})
	}
	if err != nil {
		return domain.ItemDetails{}, domain.Internal("catalog.Details", err)
	}
	return itemOf(&model).Details(), nil
}

func itemOf[T catalogItem](model *T) Item {
	switch m := any(model).(type) {
	case *Product:
		return m.Item
	case *Material:
		return m.Item
	case *Tool:
		return m.Item
	}
	return Item{}
}
