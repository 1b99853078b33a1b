package command

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
	"github.com/tair/inventory-ledger/pkg/logger"
)

// RetryPolicy bounds the versioned-update loop shared by every mutating
// handler. Only CONCURRENT_MODIFICATION is retried.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryPolicy returns three attempts with short jittered backoff.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   20 * time.Millisecond,
		MaxDelay:    250 * time.Millisecond,
	}
}

// Run calls attempt until it succeeds, fails with a non-retryable error, or
// the attempt budget is spent. Each call to attempt must be a complete,
// independent transaction.
func (p RetryPolicy) Run(ctx context.Context, operation string, attempt func(ctx context.Context) error) error {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var err error
	for n := 1; n <= maxAttempts; n++ {
		err = attempt(ctx)
		if err == nil || !retryable(err) {
			return err
		}

		versionConflictsTotal.WithLabelValues(operation).Inc()
		if n == maxAttempts {
			break
		}

		delay := p.backoff(n)
		logger.Warn(ctx).
			Err(err).
			Str("operation", operation).
			Int("attempt", n).
			Int("max_attempts", maxAttempts).
			Dur("backoff", delay).
			Msg("Version conflict, retrying")

		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", operation, ctx.Err())
		case <-time.After(delay):
		}
	}

	logger.Error(ctx).
		Err(err).
		Str("operation", operation).
		Int("attempts", maxAttempts).
		Msg("Version conflict retries exhausted")
	return err
}

func retryable(err error) bool {
	var e *domain.Error
	return errors.As(err, &e) && e.Retryable()
}

// backoff doubles per attempt up to MaxDelay; the returned delay is
// jittered into [d/2, d].
func (p RetryPolicy) backoff(attempt int) time.Duration {
	if p.BaseDelay <= 0 {
		return 0
	}
	d := p.BaseDelay << (attempt - 1)
	if p.MaxDelay > 0 && (d > p.MaxDelay || d <= 0) {
		d = p.MaxDelay
	}
	half := d / 2
	return half + time.Duration(rand.Int63n(int64(d-half+1)))
}
