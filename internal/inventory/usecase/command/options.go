package command

import (
	"context"
	"time"
)

// Options tune the mutating handlers.
type Options struct {
	Retry RetryPolicy
	// Timeout applies to calls whose context carries no deadline.
	Timeout time.Duration
	Now     func() time.Time
}

// DefaultOptions returns default handler configuration
func DefaultOptions() Options {
	return Options{
		Retry:   DefaultRetryPolicy(),
		Timeout: 10 * time.Second,
		Now:     func() time.Time { return time.Now().UTC() },
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Retry.MaxAttempts == 0 {
		o.Retry = d.Retry
	}
	if o.Now == nil {
		o.Now = d.Now
	}
	return o
}

func (o Options) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || o.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.Timeout)
}
