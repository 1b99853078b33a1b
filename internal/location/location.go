package location

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
)

// StorageLocation is a named place stock can be held.
type StorageLocation struct {
	Code        string    `json:"code" gorm:"primaryKey;size:64"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (StorageLocation) TableName() string {
	return "storage_locations"
}

// GormValidator checks locations against the storage_locations table. The
// unassigned sentinel is always valid.
type GormValidator struct {
	db *gorm.DB
}

func NewGormValidator(db *gorm.DB) *GormValidator {
	return &GormValidator{db: db}
}

func (v *GormValidator) AutoMigrate() error {
	return v.db.AutoMigrate(&StorageLocation{})
}

// LocationExists implements domain.LocationValidator.
func (v *GormValidator) LocationExists(ctx context.Context, code string) (bool, error) {
	code = domain.NormalizeLocation(code)
	if code == domain.UnassignedLocation {
		return true, nil
	}

	var count int64
	err := v.db.WithContext(ctx).
		Model(&StorageLocation{}).
		Where("code = ? AND is_active = ?", code, true).
		Count(&count).Error
	if err != nil {
		return false, domain.Internal("location.Exists", err)
	}
	return count > 0, nil
}

// Save inserts or updates a location.
func (v *GormValidator) Save(ctx context.Context, loc *StorageLocation) error {
	loc.Code = strings.TrimSpace(loc.Code)
	if loc.Code == "" || loc.Code == domain.UnassignedLocation {
		return domain.Validation("location code is reserved or empty", map[string]string{"location": loc.Code})
	}
	if err := v.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(loc).Error; err != nil {
		return fmt.Errorf("failed to save location: %w", err)
	}
	return nil
}

// List returns active locations ordered by code.
func (v *GormValidator) List(ctx context.Context) ([]StorageLocation, error) {
	var locs []StorageLocation
	err := v.db.WithContext(ctx).Where("is_active = ?", true).Order("code").Find(&locs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locs, nil
}

var _ domain.LocationValidator = (*GormValidator)(nil)
