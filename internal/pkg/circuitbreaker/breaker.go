package circuitbreaker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/piresc/kidtrack/internal/pkg/logger"
)

// State represents the circuit breaker state
type State int

const (
	// StateClosed lets calls through and counts consecutive failures
	StateClosed State = iota
	// StateOpen rejects calls until OpenTimeout has passed
	StateOpen
	// StateHalfOpen lets a single probe through to test the dependency
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// ErrCircuitBreakerOpen is returned without calling the dependency
var ErrCircuitBreakerOpen = errors.New("circuit breaker is open")

// Config holds circuit breaker configuration
type Config struct {
	Name             string
	FailureThreshold int           // consecutive failures that open the breaker
	OpenTimeout      time.Duration // time spent open before a probe is allowed
	IsFailure        func(err error) bool
	// OnStateChange runs with the breaker locked and must not call back into it
	OnStateChange func(name string, from, to State)
}

// DefaultConfig returns the configuration used for outbound publishers
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
		IsFailure:        countsAsFailure,
	}
}

// A caller giving up is not the dependency's fault.
func countsAsFailure(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// CircuitBreaker stops calling a dependency after repeated failures
type CircuitBreaker struct {
	cfg    Config
	logger *logger.ZapLogger
	now    func() time.Time

	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
	probing  bool
}

// New creates a new circuit breaker. A nil logger uses the global one.
func New(cfg Config, l *logger.ZapLogger) *CircuitBreaker {
	if l == nil {
		l = logger.GetGlobalLogger()
	}
	if cfg.IsFailure == nil {
		cfg.IsFailure = countsAsFailure
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 1
	}
	return &CircuitBreaker{
		cfg:    cfg,
		logger: l,
		now:    time.Now,
	}
}

// Execute calls fn unless the breaker is open
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if err := cb.allow(); err != nil {
		return err
	}

	err := fn(ctx)
	cb.record(err)
	return err
}

func (cb *CircuitBreaker) allow() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateOpen:
		if cb.now().Sub(cb.openedAt) < cb.cfg.OpenTimeout {
			return ErrCircuitBreakerOpen
		}
		cb.transition(StateHalfOpen)
	case StateHalfOpen:
		if cb.probing {
			return ErrCircuitBreakerOpen
		}
	default:
		return nil
	}

	cb.probing = true
	return nil
}

func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.probing = false

	if !cb.cfg.IsFailure(err) {
		cb.failures = 0
		if cb.state == StateHalfOpen && err == nil {
			cb.transition(StateClosed)
		}
		return
	}

	cb.failures++
	if cb.state == StateHalfOpen || cb.failures >= cb.cfg.FailureThreshold {
		cb.openedAt = cb.now()
		cb.transition(StateOpen)
	}
}

func (cb *CircuitBreaker) transition(to State) {
	from := cb.state
	if from == to {
		return
	}
	cb.state = to

	cb.logger.Info("Circuit breaker state changed",
		logger.String("name", cb.cfg.Name),
		logger.String("from", from.String()),
		logger.String("to", to.String()),
		logger.Int("consecutive_failures", cb.failures))

	if cb.cfg.OnStateChange != nil {
		cb.cfg.OnStateChange(cb.cfg.Name, from, to)
	}
}

// State returns the current state of the circuit breaker
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Failures returns the current run of consecutive failures
func (cb *CircuitBreaker) Failures() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.failures
}

// CheckHealth reports the breaker as unhealthy while it is open
func (cb *CircuitBreaker) CheckHealth(ctx context.Context) error {
	if cb.State() == StateOpen {
		return fmt.Errorf("%s: %w", cb.cfg.Name, ErrCircuitBreakerOpen)
	}
	return nil
}
