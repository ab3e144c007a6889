package llm

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerSettings configures the circuit breaker wrapped around a Client
type BreakerSettings struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	MinRequests      uint32
	FailureThreshold float64
}

// DefaultBreakerSettings returns the breaker configuration used for the
// external text-generation service. Tripping the breaker is not fatal for
// any pipeline stage: an open circuit surfaces as an ordinary service error
// that the calling component resolves with its local fallback.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:             "text-generation",
		MaxRequests:      1,
		Interval:         60 * time.Second,
		Timeout:          30 * time.Second,
		MinRequests:      3,
		FailureThreshold: 0.6,
	}
}

// BreakerClient wraps a Client with circuit breaker protection
type BreakerClient struct {
	inner Client
	cb    *gobreaker.CircuitBreaker[string]
}

// WithBreaker wraps a client in a circuit breaker configured by settings
func WithBreaker(inner Client, settings BreakerSettings) *BreakerClient {
	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        settings.Name,
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= settings.MinRequests &&
				failureRatio >= settings.FailureThreshold
		},
	})

	return &BreakerClient{inner: inner, cb: cb}
}

// GenerateContent generates text content with circuit breaker protection
func (c *BreakerClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.cb.Execute(func() (string, error) {
		return c.inner.GenerateContent(ctx, prompt, tier)
	})
}

// GenerateJSON generates JSON content with circuit breaker protection
func (c *BreakerClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.cb.Execute(func() (string, error) {
		return c.inner.GenerateJSON(ctx, prompt, tier)
	})
}

// Close releases resources held by the underlying client
func (c *BreakerClient) Close() error {
	return c.inner.Close()
}

// State returns the current circuit breaker state
func (c *BreakerClient) State() gobreaker.State {
	return c.cb.State()
}
