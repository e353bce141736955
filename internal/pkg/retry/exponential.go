package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/piresc/kidtrack/internal/pkg/logger"
)

// RetryableFunc represents a function that can be retried
type RetryableFunc func(ctx context.Context) error

// Config controls exponential backoff
type Config struct {
	Name       string        // operation name used in logs and the final error
	Attempts   int           // total attempts including the first one
	BaseDelay  time.Duration // delay before the second attempt
	MaxDelay   time.Duration // cap on a single delay, zero for none
	Multiplier float64
	Jitter     float64 // fraction of each delay added at random, zero disables
	Retryable  func(error) bool
}

// DefaultConfig returns a configuration suited to short store writes
func DefaultConfig(name string) Config {
	return Config{
		Name:       name,
		Attempts:   4,
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   5 * time.Second,
		Multiplier: 2.0,
		Jitter:     0.1,
		Retryable:  IsTransient,
	}
}

// IsTransient retries everything except the caller cancelling
func IsTransient(err error) bool {
	return !errors.Is(err, context.Canceled)
}

// Retrier runs a function with exponential backoff between attempts
type Retrier struct {
	cfg    Config
	logger *logger.ZapLogger
}

// New creates a new retrier. A nil logger uses the global one.
func New(cfg Config, l *logger.ZapLogger) *Retrier {
	if l == nil {
		l = logger.GetGlobalLogger()
	}
	if cfg.Attempts <= 0 {
		cfg.Attempts = 1
	}
	if cfg.Multiplier <= 0 {
		cfg.Multiplier = 2.0
	}
	if cfg.Retryable == nil {
		cfg.Retryable = IsTransient
	}
	return &Retrier{cfg: cfg, logger: l}
}

// Execute runs fn until it succeeds, fails with a non-retryable error, ctx
// ends or the attempts run out
func (r *Retrier) Execute(ctx context.Context, fn RetryableFunc) error {
	var lastErr error

	for attempt := 1; attempt <= r.cfg.Attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			if attempt > 1 {
				r.logger.Info("Retry succeeded",
					logger.String("operation", r.cfg.Name),
					logger.Int("attempts", attempt))
			}
			return nil
		}

		if !r.cfg.Retryable(lastErr) {
			return lastErr
		}
		if attempt == r.cfg.Attempts {
			break
		}

		delay := r.delay(attempt)
		r.logger.Debug("Retrying after failure",
			logger.String("operation", r.cfg.Name),
			logger.Int("attempt", attempt),
			logger.Duration("delay", delay),
			logger.Err(lastErr))

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return fmt.Errorf("%s: gave up after %d attempts: %w", r.cfg.Name, r.cfg.Attempts, lastErr)
}

// delay returns the wait after the given 1-based attempt
func (r *Retrier) delay(attempt int) time.Duration {
	d := float64(r.cfg.BaseDelay) * math.Pow(r.cfg.Multiplier, float64(attempt-1))
	if r.cfg.MaxDelay > 0 && d > float64(r.cfg.MaxDelay) {
		d = float64(r.cfg.MaxDelay)
	}
	if r.cfg.Jitter > 0 {
		d += d * r.cfg.Jitter * rand.Float64()
	}
	return time.Duration(d)
}
