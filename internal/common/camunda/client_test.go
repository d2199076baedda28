package camunda

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assessment-workers/internal/common/errors"
)

func fastRetry(maxRetries int) *RetryConfig {
	return &RetryConfig{MaxRetries: maxRetries, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestExecuteWithRetry_RecoversFromTransientErrors(t *testing.T) {
	calls := 0

	result, err := ExecuteWithRetry(context.Background(), fastRetry(3), func(context.Context) (interface{}, error) {
		calls++
		if calls < 3 {
			return nil, stderrors.New("rpc error: code = Unavailable desc = connection refused")
		}
		return "ok", nil
	}, "complete-job")

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls)
}

func TestExecuteWithRetry_StopsOnPermanentError(t *testing.T) {
	calls := 0

	_, err := ExecuteWithRetry(context.Background(), fastRetry(3), func(context.Context) (interface{}, error) {
		calls++
		return nil, stderrors.New("job with key 42 not found")
	}, "complete-job")

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, errors.ErrCodeResourceNotFound, errors.AsStandardError(err).Code)
}

func TestExecuteWithRetry_ExhaustsRetries(t *testing.T) {
	calls := 0

	_, err := ExecuteWithRetry(context.Background(), fastRetry(2), func(context.Context) (interface{}, error) {
		calls++
		return nil, stderrors.New("context deadline exceeded")
	}, "topology")

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	stdErr := errors.AsStandardError(err)
	assert.Equal(t, errors.ErrCodeTimeout, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestExecuteWithRetry_Cancelled(t *testing.T) {
	slow := &RetryConfig{MaxRetries: 5, BaseDelay: time.Hour, MaxDelay: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ExecuteWithRetry(ctx, slow, func(context.Context) (interface{}, error) {
		return nil, stderrors.New("connection reset by peer")
	}, "fail-job")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMapZeebeError(t *testing.T) {
	tests := []struct {
		msg  string
		code errors.ErrorCode
	}{
		{"deadline exceeded", errors.ErrCodeTimeout},
		{"process not found", errors.ErrCodeResourceNotFound},
		{"resource already exists", errors.ErrCodeBusinessRule},
		{"permission denied", errors.ErrCodeBusinessRule},
		{"connection refused", errors.ErrCodeExternalService},
		{"something odd", errors.ErrCodeExternalService},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			err := mapZeebeError(stderrors.New(tt.msg), "op", 0)
			assert.Equal(t, tt.code, errors.AsStandardError(err).Code)
		})
	}
}

func TestIsRetryableZeebeError(t *testing.T) {
	assert.True(t, isRetryableZeebeError(stderrors.New("Unavailable: broken pipe")))
	assert.False(t, isRetryableZeebeError(stderrors.New("invalid argument")))
}
