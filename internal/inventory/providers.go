package inventory

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tair/inventory-ledger/internal/catalog"
	"github.com/tair/inventory-ledger/internal/inventory/cache"
	"github.com/tair/inventory-ledger/internal/inventory/delivery/consumer"
	"github.com/tair/inventory-ledger/internal/inventory/delivery/http"
	"github.com/tair/inventory-ledger/internal/inventory/domain"
	"github.com/tair/inventory-ledger/internal/inventory/repository"
	"github.com/tair/inventory-ledger/internal/inventory/usecase/command"
	"github.com/tair/inventory-ledger/internal/inventory/usecase/query"
	"github.com/tair/inventory-ledger/internal/location"
	"github.com/tair/inventory-ledger/pkg/config"
)

// Service is everything main needs from the inventory module.
type Service struct {
	HTTP            *http.InventoryHandler
	LocationHTTP    *http.LocationHandler
	Consumer        *consumer.MovementConsumer
	CatalogConsumer *catalog.Consumer
	Records         *repository.GormInventoryRepository
	Catalog         *catalog.GormCatalog
	Locations       *location.GormValidator
}

// AutoMigrate creates the ledger, catalog and location tables.
func (s *Service) AutoMigrate() error {
	if err := s.Records.AutoMigrate(); err != nil {
		return err
	}
	if err := s.Catalog.AutoMigrate(); err != nil {
		return err
	}
	return s.Locations.AutoMigrate()
}

// ProvideInventoryRepository provides the inventory repository
func ProvideInventoryRepository(db *gorm.DB) *repository.GormInventoryRepository {
	return repository.NewGormInventoryRepository(db)
}

// ProvideRecordStore wraps the repository with tracing for reads outside a unit of work.
func ProvideRecordStore(repo *repository.GormInventoryRepository) domain.InventoryRecordStore {
	return repository.NewTracingRecordStore(repo)
}

// ProvideTransactionLog provides the traced transaction log.
func ProvideTransactionLog(db *gorm.DB) domain.TransactionLog {
	return repository.NewTracingTransactionLog(repository.NewGormTransactionLog(db))
}

// ProvideUnitOfWork provides the traced gorm unit of work.
func ProvideUnitOfWork(db *gorm.DB) domain.UnitOfWork {
	return repository.NewTracingUnitOfWork(repository.NewGormUnitOfWork(db))
}

// ProvideItemDetails resolves item details from the catalog tables.
func ProvideItemDetails(c *catalog.GormCatalog) domain.ItemDetailsProvider {
	return catalog.NewGormRegistry(c)
}

// ProvideLocationValidator provides the storage location check.
func ProvideLocationValidator(v *location.GormValidator) domain.LocationValidator {
	return v
}

// ProvideRedisCache provides the status cache. A nil client disables caching.
func ProvideRedisCache(client *redis.Client, cfg config.Config) *cache.RedisCache {
	return cache.NewRedisCache(client, cfg.CacheTTL)
}

// ProvideCacheInvalidator exposes the cache to the command side.
func ProvideCacheInvalidator(c *cache.RedisCache) domain.CacheInvalidator {
	return c
}

// ProvideStatusCache exposes the cache to the query side.
func ProvideStatusCache(c *cache.RedisCache) query.StatusCache {
	return c
}

// ProvideOptions maps configuration onto the command handler options.
func ProvideOptions(cfg config.Config) command.Options {
	opts := command.DefaultOptions()
	opts.Retry = command.RetryPolicy{
		MaxAttempts: cfg.Ledger.MaxAttempts,
		BaseDelay:   cfg.Ledger.RetryBaseDelay,
		MaxDelay:    cfg.Ledger.RetryMaxDelay,
	}
	opts.Timeout = cfg.Ledger.OperationTimeout
	return opts
}

// ProvideLowStockHandler provides the low stock scan with the configured batch size.
func ProvideLowStockHandler(records domain.InventoryRecordStore, details domain.ItemDetailsProvider, cfg config.Config) *query.GetLowStockHandler {
	return query.NewGetLowStockHandler(records, details, cfg.LowStockScanBatch)
}
