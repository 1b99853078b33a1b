package catalog

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
)

// Item holds the attributes every catalog kind shares.
type Item struct {
	ID           string          `json:"id" gorm:"primaryKey;size:64"`
	Name         string          `json:"name" gorm:"not null"`
	Description  string          `json:"description"`
	Unit         string          `json:"unit" gorm:"size:16;not null;default:'pc'"`
	Cost         decimal.Decimal `json:"cost" gorm:"type:numeric(20,4);not null;default:0"`
	ReorderPoint decimal.Decimal `json:"reorder_point" gorm:"type:numeric(20,4);not null;default:0"`
	IsActive     bool            `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `json:"-" gorm:"index"`
}

// Details projects the item onto the view the ledger consumes.
func (i Item) Details() domain.ItemDetails {
	return domain.ItemDetails{
		Name:         i.Name,
		Cost:         i.Cost,
		ReorderPoint: i.ReorderPoint,
		Unit:         i.Unit,
	}
}

// Product is a finished good.
type Product struct {
	Item
	SKU      string `json:"sku" gorm:"index;size:64"`
	Category string `json:"category"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// Material is a raw material consumed by production.
type Material struct {
	Item
	Supplier string `json:"supplier"`
	Grade    string `json:"grade"`
}

// TableName specifies the table name
func (Material) TableName() string {
	return "materials"
}

// Tool is durable equipment.
type Tool struct {
	Item
	SerialNumber string `json:"serial_number"`
	Condition    string `json:"condition"`
}

// TableName specifies the table name
func (Tool) TableName() string {
	return "tools"
}

// catalogItem is satisfied by every kind's model.
type catalogItem interface {
	Product | Material | Tool
}
