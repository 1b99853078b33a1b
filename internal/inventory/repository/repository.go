package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

type GormInventoryRepository struct {
	db *gorm.DB
}

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

func (r *GormInventoryRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.InventoryRecord{}, &domain.TransactionLogEntry{})
}

func (r *GormInventoryRepository) whereKey(ctx context.Context, key domain.RecordKey) *gorm.DB {
	return r.db.WithContext(ctx).
		Where("item_kind = ? AND item_id = ? AND storage_location = ?", key.Kind, key.ItemID, key.Location)
}

func (r *GormInventoryRepository) Find(ctx context.Context, key domain.RecordKey) (*domain.InventoryRecord, error) {
	var record domain.InventoryRecord
	err := r.whereKey(ctx, key).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.Internal("find inventory record", err)
	}
	return &record, nil
}

func (r *GormInventoryRepository) FindByItem(ctx context.Context, item domain.ItemRef) ([]domain.InventoryRecord, error) {
	var records []domain.InventoryRecord
	err := r.db.WithContext(ctx).
		Where("item_kind = ? AND item_id = ?", item.Kind, item.ID).
		Order("storage_location").
		Find(&records).Error
	if err != nil {
		return nil, domain.Internal("find inventory records by item", err)
	}
	return records, nil
}

func (r *GormInventoryRepository) List(ctx context.Context, filter domain.RecordFilter) ([]domain.InventoryRecord, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.InventoryRecord{})
	if filter.Kind != "" {
		q = q.Where("item_kind = ?", filter.Kind)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Location != "" {
		q = q.Where("storage_location = ?", filter.Location)
	}
	if filter.Text != "" {
		like := "%" + strings.ToLower(filter.Text) + "%"
		q = q.Where("(LOWER(item_id) LIKE ? OR LOWER(storage_location) LIKE ?)", like, like)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, domain.Internal("count inventory records", err)
	}

	var records []domain.InventoryRecord
	err := q.Order("item_kind, item_id, storage_location").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&records).Error
	if err != nil {
		return nil, 0, domain.Internal("list inventory records", err)
	}
	return records, total, nil
}

func (r *GormInventoryRepository) Create(ctx context.Context, record *domain.InventoryRecord) error {
	if record.Version == 0 {
		record.Version = 1
	}
	err := r.db.WithContext(ctx).Create(record).Error
	if isUniqueViolation(err) {
		return domain.ConcurrentModification(record.Key(), 0)
	}
	if err != nil {
		return domain.Internal("create inventory record", err)
	}
	return nil
}

func (r *GormInventoryRepository) Update(ctx context.Context, record *domain.InventoryRecord, expectedVersion int64) error {
	key := record.Key()
	result := r.whereKey(ctx, key).
		Model(&domain.InventoryRecord{}).
		Where("version = ?", expectedVersion).
		Updates(map[string]interface{}{
			"quantity":   record.Quantity,
			"status":     record.Status,
			"version":    expectedVersion + 1,
			"updated_at": record.UpdatedAt,
		})
	if result.Error != nil {
		return domain.Internal("update inventory record", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ConcurrentModification(key, expectedVersion)
	}
	record.Version = expectedVersion + 1
	return nil
}

func (r *GormInventoryRepository) Delete(ctx context.Context, key domain.RecordKey, expectedVersion int64) error {
	result := r.whereKey(ctx, key).
		Where("version = ?", expectedVersion).
		Delete(&domain.InventoryRecord{})
	if result.Error != nil {
		return domain.Internal("delete inventory record", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ConcurrentModification(key, expectedVersion)
	}
	return nil
}

// GormTransactionLog stores the append-only audit trail.
type GormTransactionLog struct {
	db *gorm.DB
}

func NewGormTransactionLog(db *gorm.DB) *GormTransactionLog {
	return &GormTransactionLog{db: db}
}

func (l *GormTransactionLog) Append(ctx context.Context, entry *domain.TransactionLogEntry) error {
	if entry.ID != 0 {
		return domain.Internal("append transaction log entry", errors.New("entry already persisted"))
	}
	if err := l.db.WithContext(ctx).Create(entry).Error; err != nil {
		return domain.Internal("append transaction log entry", err)
	}
	return nil
}

func (l *GormTransactionLog) History(ctx context.Context, item domain.ItemRef, limit, offset int) ([]domain.TransactionLogEntry, error) {
	var entries []domain.TransactionLogEntry
	err := l.db.WithContext(ctx).
		Where("item_kind = ? AND item_id = ?", item.Kind, item.ID).
		Order("occurred_at, id").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, domain.Internal("load transaction history", err)
	}
	return entries, nil
}

func (l *GormTransactionLog) HasReference(ctx context.Context, item domain.ItemRef, referenceKind, referenceID string) (bool, error) {
	var count int64
	err := l.db.WithContext(ctx).
		Model(&domain.TransactionLogEntry{}).
		Where("reference_kind = ? AND reference_id = ? AND item_kind = ? AND item_id = ?",
			referenceKind, referenceID, item.Kind, item.ID).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, domain.Internal("look up transaction reference", err)
	}
	return count > 0, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
