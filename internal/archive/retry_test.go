package archive

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		BackoffFactor:  2.0,
	}
}

func TestIsRetryable(t *testing.T) {
	rc := DefaultRetryConfig()

	assert.True(t, rc.IsRetryable(errors.New("connection reset by peer")))
	assert.True(t, rc.IsRetryable(errors.New("request timeout")))
	assert.True(t, rc.IsRetryable(errors.New("SlowDown: please reduce request rate")))
	assert.True(t, rc.IsRetryable(errors.New("service unavailable")))

	assert.False(t, rc.IsRetryable(nil))
	assert.False(t, rc.IsRetryable(errors.New("access denied")))
	assert.False(t, rc.IsRetryable(context.Canceled))
	assert.False(t, rc.IsRetryable(context.DeadlineExceeded))
}

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	err := RetryWithBackoff(context.Background(), "upload", func() error {
		attempts++
		if attempts < 3 {
			return errors.New("connection reset")
		}
		return nil
	}, fastRetryConfig())

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	attempts := 0
	permanent := errors.New("access denied")

	err := RetryWithBackoff(context.Background(), "upload", func() error {
		attempts++
		return permanent
	}, fastRetryConfig())

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, attempts)
}

func TestRetryGivesUpAfterMaxRetries(t *testing.T) {
	attempts := 0
	err := RetryWithBackoff(context.Background(), "upload", func() error {
		attempts++
		return errors.New("network error")
	}, fastRetryConfig())

	require.Error(t, err)
	assert.Equal(t, 4, attempts) // initial attempt plus three retries
	assert.Contains(t, err.Error(), "failed after 3 attempts")
}

func TestRetryHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, "upload", func() error {
		t.Fatal("operation must not run with a canceled context")
		return nil
	}, fastRetryConfig())

	assert.ErrorIs(t, err, context.Canceled)
}
