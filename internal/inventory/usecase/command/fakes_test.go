package command

import (
	"time"

	"github.com/tair/inventory-ledger/internal/inventory/inventorytest"
)

var testNow = inventorytest.Now

func testOptions() Options {
	return Options{
		Retry:   RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond},
		Timeout: time.Second,
		Now:     func() time.Time { return testNow },
	}
}
