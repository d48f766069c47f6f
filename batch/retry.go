package batch

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/meridios/cura/errors"
	"github.com/meridios/cura/logger"
)

const (
	defaultInitialBackoff = 1 * time.Second
	defaultMaxBackoff     = 60 * time.Second
)

// RetryPolicy re-runs an operation while the registry reports rate limiting.
// Only rate-limit rejections are retried; every other failure surfaces
// immediately.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration

	// Sleep is injectable so tests can count backoffs without waiting.
	Sleep func(ctx context.Context, d time.Duration) error

	Logger *zap.SugaredLogger
}

// Do runs fn up to MaxAttempts times. Backoff doubles per attempt
// (1s, 2s, 4s, ...) up to MaxBackoff.
func (p RetryPolicy) Do(ctx context.Context, operation string, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	initial := p.InitialBackoff
	if initial <= 0 {
		initial = defaultInitialBackoff
	}
	ceiling := p.MaxBackoff
	if ceiling <= 0 {
		ceiling = defaultMaxBackoff
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var err error
	for attempt := 1; ; attempt++ {
		err = fn()
		if err == nil || !errors.IsRateLimitedError(err) || attempt >= attempts {
			return err
		}

		backoff := initial * time.Duration(1<<(attempt-1))
		if backoff > ceiling {
			backoff = ceiling
		}
		if p.Logger != nil {
			p.Logger.Warnw("Rate limited, backing off",
				logger.FieldOperation, operation,
				logger.FieldAttempt, attempt,
				"max_attempts", attempts,
				"backoff", backoff.String(),
			)
		}
		// Cancellation during backoff surfaces the rate-limit error; the
		// run loop sees the cancelled context before the next record.
		if sleepErr := sleep(ctx, backoff); sleepErr != nil {
			return err
		}
	}
}

// sleepContext waits for the duration unless the context ends first.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
