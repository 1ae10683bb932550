package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/Kiran1689/storyblok-mcp-server/internal/logger"
)

// CircuitBreakerConfig holds configuration for circuit breaker behavior
type CircuitBreakerConfig struct {
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
}

// DefaultCircuitBreakerConfig returns the defaults used for tool instantiation
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		MaxRequests: 3,                // requests allowed while half-open
		Interval:    10 * time.Second, // failure count reset period
		Timeout:     30 * time.Second, // open duration before half-open
	}
}

// CircuitBreakerFactory guards a creation function with a circuit breaker
type CircuitBreakerFactory[T any] struct {
	name    string
	breaker *gobreaker.CircuitBreaker[T]
}

// NewCircuitBreakerFactory creates a breaker named after the guarded factory.
// State changes are logged when log is non-nil.
func NewCircuitBreakerFactory[T any](name string, config CircuitBreakerConfig, log *logger.Logger) *CircuitBreakerFactory[T] {
	settings := gobreaker.Settings{
		Name:        fmt.Sprintf("factory_%s", name),
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if log != nil {
				log.Warn("circuit breaker state changed",
					"breaker", name,
					"from", from.String(),
					"to", to.String(),
				)
			}
		},
	}

	return &CircuitBreakerFactory[T]{
		name:    name,
		breaker: gobreaker.NewCircuitBreaker[T](settings),
	}
}

// ExecuteWithContext runs fn with circuit breaker protection
func (cb *CircuitBreakerFactory[T]) ExecuteWithContext(ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	result, err := cb.breaker.Execute(func() (T, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero T
		return zero, fmt.Errorf("circuit breaker protected operation failed: %w", err)
	}
	return result, nil
}

// State returns the current state of the circuit breaker
func (cb *CircuitBreakerFactory[T]) State() gobreaker.State {
	return cb.breaker.State()
}

// IsOpen returns true if the circuit breaker is open
func (cb *CircuitBreakerFactory[T]) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}

// Status returns a string representation of the circuit breaker status
func (cb *CircuitBreakerFactory[T]) Status() string {
	switch cb.breaker.State() {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// CircuitBreakerMetrics provides information about circuit breaker performance
type CircuitBreakerMetrics struct {
	Name      string `json:"name"`
	State     string `json:"state"`
	Requests  uint32 `json:"requests"`
	Successes uint32 `json:"successes"`
	Failures  uint32 `json:"failures"`
}

// Metrics returns current circuit breaker metrics
func (cb *CircuitBreakerFactory[T]) Metrics() CircuitBreakerMetrics {
	counts := cb.breaker.Counts()
	return CircuitBreakerMetrics{
		Name:      cb.name,
		State:     cb.Status(),
		Requests:  counts.Requests,
		Successes: counts.TotalSuccesses,
		Failures:  counts.TotalFailures,
	}
}
