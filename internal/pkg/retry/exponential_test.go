package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errTransient = errors.New("connection reset")

func fastConfig() Config {
	return Config{Name: "history-flush", Attempts: 4, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2}
}

func TestRetrier_SucceedsAfterTransientFailures(t *testing.T) {
	r := New(fastConfig(), nil)

	attempts := 0
	err := r.Execute(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errTransient
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetrier_ExhaustsAttempts(t *testing.T) {
	r := New(fastConfig(), nil)

	attempts := 0
	err := r.Execute(context.Background(), func(ctx context.Context) error {
		attempts++
		return errTransient
	})

	assert.ErrorIs(t, err, errTransient)
	assert.Contains(t, err.Error(), "history-flush: gave up after 4 attempts")
	assert.Equal(t, 4, attempts)
}

func TestRetrier_StopsOnNonRetryable(t *testing.T) {
	permanent := errors.New("invalid sample")
	cfg := fastConfig()
	cfg.Retryable = func(err error) bool { return !errors.Is(err, permanent) }
	r := New(cfg, nil)

	attempts := 0
	err := r.Execute(context.Background(), func(ctx context.Context) error {
		attempts++
		return permanent
	})

	assert.Equal(t, permanent, err)
	assert.Equal(t, 1, attempts)
}

func TestRetrier_DefaultDoesNotRetryCancellation(t *testing.T) {
	r := New(DefaultConfig("history-flush"), nil)

	attempts := 0
	err := r.Execute(context.Background(), func(ctx context.Context) error {
		attempts++
		return context.Canceled
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestRetrier_ContextDeadline(t *testing.T) {
	cfg := fastConfig()
	cfg.BaseDelay = time.Hour
	cfg.MaxDelay = time.Hour
	r := New(cfg, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := r.Execute(ctx, func(ctx context.Context) error { return errTransient })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRetrier_ZeroAttemptsRunsOnce(t *testing.T) {
	r := New(Config{}, nil)

	attempts := 0
	err := r.Execute(context.Background(), func(ctx context.Context) error {
		attempts++
		return errTransient
	})

	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 1, attempts)
}

func TestDelay_GrowsAndCaps(t *testing.T) {
	r := New(Config{BaseDelay: time.Second, MaxDelay: 3 * time.Second, Multiplier: 2}, nil)

	assert.Equal(t, time.Second, r.delay(1))
	assert.Equal(t, 2*time.Second, r.delay(2))
	assert.Equal(t, 3*time.Second, r.delay(6))
}

func TestDelay_Jitter(t *testing.T) {
	r := New(Config{BaseDelay: time.Second, Multiplier: 2, Jitter: 0.5}, nil)

	for i := 0; i < 20; i++ {
		d := r.delay(1)
		assert.GreaterOrEqual(t, d, time.Second)
		assert.LessOrEqual(t, d, 1500*time.Millisecond)
	}
}
