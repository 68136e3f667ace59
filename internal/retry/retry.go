package retry

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
)

// Policy bounds a retried operation: total attempts, exponential backoff
// between them, and a per-attempt timeout.
type Policy struct {
	Attempts      int
	BaseDelay     time.Duration
	MaxDelay      time.Duration
	PerTryTimeout time.Duration
}

// Lookups is the policy for idempotent metadata lookups (site, drive and item
// resolution). Workbook reads and writes are never retried.
var Lookups = Policy{
	Attempts:      3,
	BaseDelay:     1 * time.Second,
	MaxDelay:      15 * time.Second,
	PerTryTimeout: 30 * time.Second,
}

// Do runs op up to p.Attempts times, backing off with jitter between
// attempts. Each attempt runs under its own timeout context.
func Do[T any](ctx context.Context, p Policy, op func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; attempt <= p.Attempts; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		opCtx, cancel := context.WithTimeout(ctx, p.PerTryTimeout)
		result, err := op(opCtx)
		cancel()

		if err == nil {
			return result, nil
		}
		lastErr = err

		log.Debug().
			Err(err).
			Int("attempt", attempt).
			Msg("Operation failed")

		if attempt < p.Attempts {
			delay := backoffDelay(attempt, p.BaseDelay, p.MaxDelay)
			log.Debug().
				Dur("delay", delay).
				Int("next_attempt", attempt+1).
				Msg("Retrying after delay")

			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return zero, fmt.Errorf("operation failed after %d attempts: %w", p.Attempts, lastErr)
}

// backoffDelay doubles the base delay per attempt with 0.5x-1.5x jitter,
// capped at maxDelay.
func backoffDelay(attempt int, baseDelay, maxDelay time.Duration) time.Duration {
	safeAttempt := min(attempt-1, 30)
	delay := time.Duration(1<<safeAttempt) * baseDelay
	if delay > maxDelay {
		delay = maxDelay
	}

	jitter := 0.5 + rand.Float64()
	delay = time.Duration(float64(delay) * jitter)
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}
