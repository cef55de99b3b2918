package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRetrying returns a retry wrapper whose sleeps are recorded, not slept.
func newRetrying(p Provider, attempts int) (*retrying, *[]time.Duration) {
	r := WithRetry(p, RetryConfig{
		MaxAttempts: attempts,
		InitialWait: 100 * time.Millisecond,
		MaxWait:     time.Second,
		Multiplier:  2,
	}, nil).(*retrying)
	var waits []time.Duration
	r.sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return ctx.Err()
	}
	return r, &waits
}

func okReply() MockResponse { return MockResponse{Content: json.RawMessage(`{"ok":true}`)} }

func fail(k Kind) MockResponse {
	return MockResponse{Err: &Error{Kind: k, Provider: ProviderMock, Err: errors.New(k.String())}}
}

func TestRetrySucceedsFirstTime(t *testing.T) {
	mock := NewMockProvider(okReply())
	r, waits := newRetrying(mock, 3)

	_, err := r.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 1, mock.CallCount())
	assert.Empty(t, *waits)
}

func TestRetryTransientThenSuccess(t *testing.T) {
	mock := NewMockProvider(fail(KindUnavailable), fail(KindRateLimited), okReply())
	r, waits := newRetrying(mock, 3)

	_, err := r.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 3, mock.CallCount())
	require.Len(t, *waits, 2)
	assert.InDelta(t, float64(100*time.Millisecond), float64((*waits)[0]), float64(20*time.Millisecond))
	assert.InDelta(t, float64(200*time.Millisecond), float64((*waits)[1]), float64(40*time.Millisecond))
}

func TestRetryGivesUpAfterMaxAttempts(t *testing.T) {
	mock := NewMockProvider(fail(KindUnavailable), fail(KindUnavailable), fail(KindUnavailable), okReply())
	r, _ := newRetrying(mock, 3)

	_, err := r.Generate(context.Background(), Request{})
	assert.True(t, IsKind(err, KindUnavailable))
	assert.Equal(t, 3, mock.CallCount())
}

func TestRetryStopsOnPermanentErrors(t *testing.T) {
	for _, k := range []Kind{KindTruncated, KindRejected} {
		t.Run(k.String(), func(t *testing.T) {
			mock := NewMockProvider(fail(k), okReply())
			r, _ := newRetrying(mock, 3)

			_, err := r.Generate(context.Background(), Request{})
			assert.True(t, IsKind(err, k))
			assert.Equal(t, 1, mock.CallCount())
		})
	}
}

func TestRetryInvalidOutputOnlyOnce(t *testing.T) {
	mock := NewMockProvider(fail(KindInvalidOutput), fail(KindInvalidOutput), okReply())
	r, _ := newRetrying(mock, 5)

	_, err := r.Generate(context.Background(), Request{})
	assert.True(t, IsKind(err, KindInvalidOutput))
	assert.Equal(t, 2, mock.CallCount())
}

func TestRetryHonoursRetryAfter(t *testing.T) {
	limited := MockResponse{Err: &Error{Kind: KindRateLimited, RetryAfter: 3 * time.Second}}
	mock := NewMockProvider(limited, okReply())
	r, waits := newRetrying(mock, 3)

	_, err := r.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{3 * time.Second}, *waits)
}

func TestRetryCapsAtMaxWait(t *testing.T) {
	r, _ := newRetrying(NewMockProvider(), 10)
	for attempt := 1; attempt <= 8; attempt++ {
		assert.LessOrEqual(t, r.delay(attempt, errors.New("x")), 1200*time.Millisecond)
	}
}

func TestRetryStopsOnCancel(t *testing.T) {
	mock := NewMockProvider(fail(KindUnavailable), okReply())
	r, _ := newRetrying(mock, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetryDelegatesIdentity(t *testing.T) {
	r, _ := newRetrying(NewMockProvider(), 1)
	assert.Equal(t, ProviderMock, r.Name())
	assert.Equal(t, ProviderMock, r.ModelID())
}
