package optimizer

import (
	"context"
	"errors"

	"github.com/eapache/go-resiliency/retrier"
	"go.uber.org/zap"

	"github.com/chrisdamba/menuintel/internal/repositories"
)

const (
	opListMenuItems     = "list_menu_items"
	opItemAnalytics     = "item_analytics"
	opPopularCategories = "popular_categories"
	opWeather           = "current_weather"
)

// transientOnly retries everything except missing rows and cancellation.
type transientOnly struct{}

func (transientOnly) Classify(err error) retrier.Action {
	switch {
	case err == nil:
		return retrier.Succeed
	case errors.Is(err, repositories.ErrNotFound), errors.Is(err, context.Canceled):
		return retrier.Fail
	default:
		return retrier.Retry
	}
}

// call runs fn with a per-attempt timeout and bounded exponential backoff.
// A final failure comes back as *UpstreamError.
func (e *Engine) call(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	r := retrier.New(retrier.ExponentialBackoff(e.cfg.MaxRetries, e.cfg.RetryBackoff), transientOnly{})

	attempt := 0
	err := r.RunCtx(ctx, func(ctx context.Context) error {
		attempt++
		attemptCtx, cancel := context.WithTimeout(ctx, e.cfg.StoreTimeout)
		defer cancel()
		err := fn(attemptCtx)
		if err != nil && ctx.Err() == nil {
			e.logger.Warn("upstream call failed",
				zap.String("operation", op),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		}
		return err
	})
	if err == nil {
		return nil
	}
	// siblings cancelled by the first failure are not failures of their own
	if ctx.Err() == nil {
		e.metrics.UpstreamFailed(op)
	}
	return &UpstreamError{Op: op, Err: err}
}
