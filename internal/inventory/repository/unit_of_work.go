package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
)

// GormUnitOfWork runs ledger operations inside one database transaction.
type GormUnitOfWork struct {
	db *gorm.DB
}

func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Execute commits when fn returns nil and rolls back otherwise, including
// when ctx is cancelled mid-flight.
func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(repos domain.Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(gormRepositories{tx: tx})
	})
}

type gormRepositories struct {
	tx *gorm.DB
}

func (r gormRepositories) Records() domain.InventoryRecordStore {
	return NewGormInventoryRepository(r.tx)
}

func (r gormRepositories) Transactions() domain.TransactionLog {
	return NewGormTransactionLog(r.tx)
}
