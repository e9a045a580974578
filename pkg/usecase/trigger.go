package usecase

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/m-mizutani/branchsite/pkg/utils/logging"
)

const DefaultMinPollSpacing = 5 * time.Second

// Trigger wakes the poll loop early. Pending notifications are coalesced into
// one, and polls are never closer than the minimum spacing regardless of
// whether they were scheduled or triggered.
type Trigger struct {
	pending chan string
	limiter *rate.Limiter
}

func NewTrigger(minSpacing time.Duration) *Trigger {
	limit := rate.Inf
	if minSpacing > 0 {
		limit = rate.Every(minSpacing)
	}
	return &Trigger{
		pending: make(chan string, 1),
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Notify requests an early poll. It returns false when a request is already
// pending.
func (x *Trigger) Notify(reason string) bool {
	select {
	case x.pending <- reason:
		return true
	default:
		return false
	}
}

// Acquire takes the spacing token for a poll that is not preceded by Wait,
// such as the first poll of the loop.
func (x *Trigger) Acquire(ctx context.Context) error {
	return x.limiter.Wait(ctx)
}

// Wait blocks until delay elapses or a notification arrives, then until the
// minimum spacing since the previous poll is satisfied. It returns ctx.Err()
// when ctx is cancelled.
func (x *Trigger) Wait(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case reason := <-x.pending:
		logging.From(ctx).Debug("poll triggered", slog.String("reason", reason))
	case <-timer.C:
	}

	return x.Acquire(ctx)
}
