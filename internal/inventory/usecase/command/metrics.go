package command

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
)

var (
	ledgerOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_ledger_operations_total",
			Help: "Total number of ledger operations by outcome",
		},
		[]string{"operation", "result"},
	)

	ledgerOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_ledger_operation_duration_seconds",
			Help:    "Duration of ledger operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	versionConflictsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_ledger_version_conflicts_total",
			Help: "Total number of optimistic version conflicts observed",
		},
		[]string{"operation"},
	)

	lowStockAlertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_ledger_low_stock_alerts_total",
			Help: "Total number of low stock alerts emitted",
		},
		[]string{"item_kind", "status"},
	)
)

func init() {
	prometheus.MustRegister(ledgerOperationsTotal)
	prometheus.MustRegister(ledgerOperationDuration)
	prometheus.MustRegister(versionConflictsTotal)
	prometheus.MustRegister(lowStockAlertsTotal)
}

func observe(operation string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = string(domain.GetCode(err))
	}
	ledgerOperationsTotal.WithLabelValues(operation, result).Inc()
	ledgerOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
