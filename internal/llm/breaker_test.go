package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	response string
	err      error
	calls    int
}

func (s *stubClient) GenerateContent(_ context.Context, _ string, _ ModelTier) (string, error) {
	s.calls++
	return s.response, s.err
}

func (s *stubClient) GenerateJSON(_ context.Context, _ string, _ ModelTier) (string, error) {
	s.calls++
	return s.response, s.err
}

func (s *stubClient) Close() error { return nil }

func TestWithBreaker_PassesThroughSuccess(t *testing.T) {
	stub := &stubClient{response: "[1, 2]"}
	client := WithBreaker(stub, DefaultBreakerSettings())

	got, err := client.GenerateContent(context.Background(), "prompt", TierLite)
	require.NoError(t, err)
	assert.Equal(t, "[1, 2]", got)
	assert.Equal(t, gobreaker.StateClosed, client.State())
}

func TestWithBreaker_OpensAfterRepeatedFailures(t *testing.T) {
	stub := &stubClient{err: errors.New("connection refused")}
	settings := BreakerSettings{
		Name:             "test",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		MinRequests:      3,
		FailureThreshold: 0.6,
	}
	client := WithBreaker(stub, settings)

	for i := 0; i < 3; i++ {
		_, err := client.GenerateContent(context.Background(), "prompt", TierLite)
		assert.Error(t, err)
	}

	assert.Equal(t, gobreaker.StateOpen, client.State())

	// Once open, calls fail fast without reaching the service
	callsBefore := stub.calls
	_, err := client.GenerateJSON(context.Background(), "prompt", TierLite)
	assert.Error(t, err)
	assert.Equal(t, callsBefore, stub.calls)
}
