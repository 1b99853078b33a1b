//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tair/inventory-ledger/internal/catalog"
	"github.com/tair/inventory-ledger/internal/inventory/delivery/consumer"
	"github.com/tair/inventory-ledger/internal/inventory/delivery/http"
	"github.com/tair/inventory-ledger/internal/inventory/domain"
	"github.com/tair/inventory-ledger/internal/inventory/usecase/command"
	"github.com/tair/inventory-ledger/internal/inventory/usecase/query"
	"github.com/tair/inventory-ledger/internal/location"
	"github.com/tair/inventory-ledger/pkg/config"
)

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideInventoryRepository,
	ProvideRecordStore,
	ProvideTransactionLog,
	ProvideUnitOfWork,
	catalog.NewGormCatalog,
	ProvideItemDetails,
	location.NewGormValidator,
	ProvideLocationValidator,
	wire.Bind(new(catalog.Writer), new(*catalog.GormCatalog)),
	wire.Bind(new(http.LocationStore), new(*location.GormValidator)),
)

var CacheSet = wire.NewSet(
	ProvideRedisCache,
	ProvideCacheInvalidator,
	ProvideStatusCache,
)

var CommandSet = wire.NewSet(
	ProvideOptions,
	command.NewNotifier,
	command.NewCreateInventoryHandler,
	command.NewDeleteInventoryHandler,
	command.NewAdjustInventoryHandler,
	command.NewTransferInventoryHandler,
	command.NewReconcileInventoryHandler,
)

var QuerySet = wire.NewSet(
	query.NewGetStatusHandler,
	query.NewListInventoryHandler,
	query.NewGetHistoryHandler,
	ProvideLowStockHandler,
)

var DeliverySet = wire.NewSet(
	wire.Struct(new(http.Commands), "*"),
	wire.Struct(new(http.Queries), "*"),
	http.NewInventoryHandler,
	http.NewLocationHandler,
	consumer.NewMovementConsumer,
	catalog.NewConsumer,
)

// InitializeService initializes the inventory service with all dependencies
func InitializeService(db *gorm.DB, rdb *redis.Client, publisher domain.EventPublisher, cfg config.Config) (*Service, error) {
	wire.Build(
		RepositorySet,
		CacheSet,
		CommandSet,
		QuerySet,
		DeliverySet,
		wire.Struct(new(Service), "*"),
	)
	return nil, nil
}
