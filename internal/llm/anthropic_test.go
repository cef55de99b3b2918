package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnthropicTest(t *testing.T, status int, body any) (*AnthropicProvider, *map[string]any) {
	t.Helper()
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "claude-haiku"}, option.WithBaseURL(srv.URL))
	require.NoError(t, err)
	return p, &got
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func anthropicError(kind string) map[string]any {
	return map[string]any{"type": "error", "error": map[string]any{"type": kind, "message": kind}}
}

func TestAnthropicGenerate(t *testing.T) {
	p, got := newAnthropicTest(t, http.StatusOK,
		anthropicMessage(`{"advice":"Share your plans early."}`, "end_turn"))

	resp, err := p.Generate(context.Background(), Request{
		System:    "You are a warm personality coach.",
		Messages:  []Message{{Role: RoleUser, Content: "Write advice for a Rally Lion."}},
		MaxTokens: 256,
		Schema:    adviceLike,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"advice":"Share your plans early."}`, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 50, OutputTokens: 30, TotalTokens: 80}, resp.Usage)
	assert.Equal(t, StopEnd, resp.StopReason)
	assert.Equal(t, "claude-haiku-4-5-20251001", resp.Model)

	assert.Equal(t, "claude-haiku-4-5-20251001", (*got)["model"])
	assert.EqualValues(t, 256, (*got)["max_tokens"])
}

func TestAnthropicTruncated(t *testing.T) {
	p, _ := newAnthropicTest(t, http.StatusOK, anthropicMessage(`{"advice":"Sha`, "max_tokens"))
	_, err := p.Generate(context.Background(), Request{MaxTokens: 5, Schema: adviceLike})
	assert.True(t, IsKind(err, KindTruncated), "got %v", err)
}

func TestAnthropicErrors(t *testing.T) {
	tests := []struct {
		status int
		kind   Kind
	}{
		{http.StatusTooManyRequests, KindRateLimited},
		{http.StatusInternalServerError, KindUnavailable},
		{http.StatusUnauthorized, KindRejected},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			p, _ := newAnthropicTest(t, tt.status, anthropicError("api_error"))
			_, err := p.Generate(context.Background(), Request{MaxTokens: 10})
			assert.True(t, IsKind(err, tt.kind), "got %v", err)
		})
	}
}

func TestNewAnthropicProviderNeedsKey(t *testing.T) {
	_, err := NewAnthropicProvider(AnthropicConfig{Model: "claude-haiku"})
	assert.Error(t, err)
}
