package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hassansabag81/TecRoomV1/internal/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastPolicy = retry.Policy{
	MaxAttempts:    3,
	InitialBackoff: 1 * time.Millisecond,
}

func alwaysRetry(error) retry.Action { return retry.Retry }

func TestDo_SuccessFirstAttempt(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), fastPolicy, alwaysRetry, func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_SuccessAfterRetries(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), fastPolicy, alwaysRetry, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), fastPolicy, alwaysRetry, func() error {
		calls++
		return errors.New("transient")
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "failed after 3 attempts")
}

func TestDo_PermanentErrorStopsImmediately(t *testing.T) {
	permanent := errors.New("permanent")
	classify := func(err error) retry.Action {
		if errors.Is(err, permanent) {
			return retry.Stop
		}
		return retry.Retry
	}

	calls := 0
	err := retry.Do(context.Background(), fastPolicy, classify, func() error {
		calls++
		return permanent
	})

	var permErr *retry.PermanentError
	require.ErrorAs(t, err, &permErr)
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	slowPolicy := retry.Policy{MaxAttempts: 3, InitialBackoff: time.Minute}
	err := retry.Do(ctx, slowPolicy, alwaysRetry, func() error {
		return errors.New("transient")
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDo_OnRetryCallback(t *testing.T) {
	var attempts []int
	p := retry.Policy{
		MaxAttempts:    3,
		InitialBackoff: 1 * time.Millisecond,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			attempts = append(attempts, attempt)
		},
	}

	_ = retry.Do(context.Background(), p, alwaysRetry, func() error {
		return errors.New("transient")
	})
	assert.Equal(t, []int{1, 2}, attempts)
}
