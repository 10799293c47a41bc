package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDescriberDown = errors.New("describer unavailable")

func testBreaker(timeout time.Duration) *CircuitBreaker {
	return New(Config{
		Name:             "describer",
		MaxRequests:      2,
		Interval:         10 * time.Second,
		Timeout:          timeout,
		FailureThreshold: 0.6,
		MinRequests:      5,
	})
}

func failTimes(cb *CircuitBreaker, n int) {
	for i := 0; i < n; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, errDescriberDown })
	}
}

func TestExecute_PassesThroughResultAndError(t *testing.T) {
	cb := testBreaker(time.Second)

	result, err := cb.Execute(func() (interface{}, error) { return "described", nil })
	require.NoError(t, err)
	assert.Equal(t, "described", result)

	_, err = cb.Execute(func() (interface{}, error) { return nil, errDescriberDown })
	assert.ErrorIs(t, err, errDescriberDown)
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestExecute_TripsOpenAndShortCircuits(t *testing.T) {
	cb := testBreaker(time.Second)

	failTimes(cb, 6)
	require.Equal(t, gobreaker.StateOpen, cb.State())
	assert.True(t, cb.IsOpen())

	called := false
	_, err := cb.Execute(func() (interface{}, error) {
		called = true
		return nil, nil
	})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.False(t, called, "open circuit must not invoke the call")
}

func TestExecute_RecoversThroughHalfOpen(t *testing.T) {
	cb := testBreaker(50 * time.Millisecond)

	failTimes(cb, 6)
	require.True(t, cb.IsOpen())

	time.Sleep(80 * time.Millisecond)

	_, err := cb.Execute(func() (interface{}, error) { return "described", nil })
	require.NoError(t, err)
	assert.NotEqual(t, gobreaker.StateOpen, cb.State())
}

func TestExecute_StaysClosedBelowMinRequests(t *testing.T) {
	cb := testBreaker(time.Second)

	failTimes(cb, 4)

	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestAPIConfigs(t *testing.T) {
	claude := ClaudeAPIConfig()
	assert.Equal(t, "claude-api", claude.Name)

	openai := OpenAIAPIConfig()
	assert.Equal(t, "openai-api", openai.Name)
	assert.Equal(t, claude.FailureThreshold, openai.FailureThreshold)

	suggest := SuggestAPIConfig()
	assert.Equal(t, "suggest-api", suggest.Name)
	assert.Equal(t, 0.5, suggest.FailureThreshold)
	assert.Equal(t, 120*time.Second, suggest.Timeout, "suggest circuit recovers slowly to protect quota")
}
