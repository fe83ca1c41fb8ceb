package decorators

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"product-service/application/ports"
)

// ErrStoreUnavailable is returned while the breaker rejects calls
var ErrStoreUnavailable = errors.New("record store unavailable")

// CircuitBreakerConfig holds configuration for circuit breaker
type CircuitBreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultCircuitBreakerConfig returns a default configuration for circuit breaker
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// BreakerStore stops calling the store after repeated infrastructure failures.
// Aborted transactions and caller cancellations do not count as failures.
type BreakerStore struct {
	inner ports.RecordStore
	cb    *gobreaker.CircuitBreaker
}

// NewBreakerStore wraps a store with a circuit breaker
func NewBreakerStore(inner ports.RecordStore, config CircuitBreakerConfig, logger *zap.Logger) *BreakerStore {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < config.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= config.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: isSuccessful,
	})

	return &BreakerStore{inner: inner, cb: cb}
}

// State reports the current breaker state
func (s *BreakerStore) State() gobreaker.State {
	return s.cb.State()
}

func (s *BreakerStore) Get(ctx context.Context, collection ports.Collection, key string) (ports.Record, bool, error) {
	var found bool
	result, err := s.execute(func() (interface{}, error) {
		record, ok, err := s.inner.Get(ctx, collection, key)
		found = ok
		return record, err
	})
	if err != nil {
		return nil, false, err
	}
	record, _ := result.(ports.Record)
	return record, found, nil
}

func (s *BreakerStore) ScanAll(ctx context.Context, collection ports.Collection) ([]ports.Record, error) {
	result, err := s.execute(func() (interface{}, error) {
		return s.inner.ScanAll(ctx, collection)
	})
	if err != nil {
		return nil, err
	}
	records, _ := result.([]ports.Record)
	return records, nil
}

func (s *BreakerStore) AtomicMultiPut(ctx context.Context, puts []ports.Put) error {
	_, err := s.execute(func() (interface{}, error) {
		return nil, s.inner.AtomicMultiPut(ctx, puts)
	})
	return err
}

func (s *BreakerStore) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := s.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return result, err
}

func isSuccessful(err error) bool {
	return err == nil ||
		errors.Is(err, ports.ErrTransactionAborted) ||
		errors.Is(err, context.Canceled)
}
