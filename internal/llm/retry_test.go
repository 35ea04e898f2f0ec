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

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2,
	}
}

func down() MockResponse {
	return MockResponse{Err: &Error{Kind: KindUnavailable, Err: errors.New("down")}}
}

var okPair = MockResponse{Content: json.RawMessage(`{"native":"好","gloss":"good"}`)}

func TestRetry_Attempts(t *testing.T) {
	tests := []struct {
		name      string
		script    []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first try", []MockResponse{okPair}, false, 1},
		{"transient then ok", []MockResponse{down(), okPair}, false, 2},
		{"plain error is transient", []MockResponse{{Err: errors.New("reset")}, okPair}, false, 2},
		{"exhausted", []MockResponse{down(), down(), down(), okPair}, true, 3},
		{"truncated is final", []MockResponse{{Err: &Error{Kind: KindTruncated}}, okPair}, true, 1},
		{"invalid retried once", []MockResponse{
			{Err: invalidContent(nil, "bad")},
			{Err: invalidContent(nil, "bad")},
			okPair,
		}, true, 2},
		{"rate limit with hint", []MockResponse{
			{Err: &Error{Kind: KindRateLimited, RetryAfter: time.Millisecond}},
			okPair,
		}, false, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.script...)
			resp, err := WithRetry(mock, fastRetry()).Generate(context.Background(), Request{})
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.JSONEq(t, string(okPair.Content), string(resp.Content))
			}
			assert.Equal(t, tt.wantCalls, mock.CallCount())
		})
	}
}

func TestRetry_KeepsLastErrorKind(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &Error{Kind: KindTruncated}})
	_, err := WithRetry(mock, fastRetry()).Generate(context.Background(), Request{})
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindTruncated, kind)
}

func TestRetry_CancelledDuringBackoff(t *testing.T) {
	mock := NewMockProvider(down(), okPair)
	cfg := fastRetry()
	cfg.InitialWait = time.Hour
	cfg.MaxWait = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := WithRetry(mock, cfg).Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_ZeroAttemptsMeansOne(t *testing.T) {
	mock := NewMockProvider(down(), okPair)
	_, err := WithRetry(mock, RetryConfig{}).Generate(context.Background(), Request{})
	assert.Error(t, err)
	assert.Equal(t, 1, mock.CallCount())
	assert.Equal(t, "mock", WithRetry(mock, RetryConfig{}).ModelID())
}

func TestJitterBounds(t *testing.T) {
	for range 100 {
		d := jitter(100 * time.Millisecond)
		assert.GreaterOrEqual(t, d, 80*time.Millisecond)
		assert.LessOrEqual(t, d, 120*time.Millisecond)
	}
}
