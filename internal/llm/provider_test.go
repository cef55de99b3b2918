package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhisek/shindan/internal/store"
)

var adviceLike = &Schema{
	Name: "test-advice",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"advice": map[string]any{"type": "string"},
		},
		"required": []any{"advice"},
	},
}

func TestMockProvider(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		MockResponse{Err: errors.New("boom")},
	)

	resp, err := mock.Generate(context.Background(), Request{System: "sys"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(resp.Content))
	assert.Equal(t, 15, resp.Usage.TotalTokens)
	assert.Equal(t, StopEnd, resp.StopReason)

	_, err = mock.Generate(context.Background(), Request{})
	assert.EqualError(t, err, "boom")

	_, err = mock.Generate(context.Background(), Request{})
	assert.True(t, IsKind(err, KindUnavailable))

	require.Equal(t, 3, mock.CallCount())
	assert.Equal(t, "sys", mock.Calls()[0].System)
	assert.Equal(t, ProviderMock, mock.ModelID())
}

func TestCompleteChecksSchema(t *testing.T) {
	tests := []struct {
		name    string
		content string
		stop    StopReason
		kind    Kind
		ok      bool
	}{
		{"valid", `{"advice":"rest"}`, StopEnd, 0, true},
		{"missing field", `{}`, StopEnd, KindInvalidOutput, false},
		{"wrong type", `{"advice":3}`, StopEnd, KindInvalidOutput, false},
		{"not json", `advice: rest`, StopEnd, KindInvalidOutput, false},
		{"empty", ``, StopEnd, KindInvalidOutput, false},
		{"truncated", `{"advi`, StopMaxTokens, KindTruncated, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(MockResponse{Content: json.RawMessage(tt.content), StopReason: tt.stop})
			_, err := mock.Generate(context.Background(), Request{Schema: adviceLike})
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, IsKind(err, tt.kind), "got %v", err)
		})
	}
}

func TestCompleteWithoutSchemaPassesText(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage("plain words")})
	resp, err := mock.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "plain words", string(resp.Content))
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Equal(t, "advice", PurposeFrom(WithPurpose(ctx, "advice")))
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Kind: KindRateLimited, Provider: "openai", RetryAfter: 2e9, Err: errors.New("429")}
	assert.Equal(t, "openai: rate limited (retry after 2s): 429", err.Error())
	assert.True(t, IsKind(errors.Join(errors.New("ctx"), err), KindRateLimited))
	assert.False(t, IsKind(errors.New("plain"), KindRateLimited))

	assert.Equal(t, KindRateLimited, statusError("x", 429, nil).Kind)
	assert.Equal(t, KindRejected, statusError("x", 401, nil).Kind)
	assert.Equal(t, KindUnavailable, statusError("x", 503, nil).Kind)
}

func TestModelID(t *testing.T) {
	assert.Equal(t, "claude-haiku-4-5-20251001", modelID("claude-haiku"))
	assert.Equal(t, "gemini-2.0-flash", modelID("gemini-flash"))
	assert.Equal(t, "gpt-4o-mini", modelID("gpt-4o-mini"))
}

func TestPriceFor(t *testing.T) {
	p, ok := PriceFor("claude-haiku-4-5-20251001")
	require.True(t, ok)
	assert.Equal(t, Price{1, 5}, p)

	// Longest prefix wins over "gpt-4o".
	p, ok = PriceFor("gpt-4o-mini-2024-07-18")
	require.True(t, ok)
	assert.Equal(t, Price{0.15, 0.6}, p)

	p, ok = PriceFor("anthropic/claude-3-haiku")
	require.True(t, ok)
	assert.InDelta(t, 0.25*2+1.25, p.Estimate(2_000_000, 1_000_000), 1e-9)

	_, ok = PriceFor("llama-3-8b")
	assert.False(t, ok)
}

func TestConfigValidate(t *testing.T) {
	retry := RetryConfig{MaxAttempts: 1}
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: ProviderAnthropic}, true},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "sk"}, Retry: retry}, false},
		{"openai with key", Config{Provider: ProviderOpenAI, OpenAI: OpenAIConfig{APIKey: "sk"}, Retry: retry}, false},
		{"openrouter without key", Config{Provider: ProviderOpenRouter}, true},
		{"gemini with key but no attempts", Config{Provider: ProviderGemini, Gemini: GeminiConfig{APIKey: "k"}}, true},
		{"none", Config{Provider: ProviderNone}, false},
		{"mock", Config{Provider: ProviderMock}, false},
		{"unknown", Config{Provider: "llamafile"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigDiscover(t *testing.T) {
	for _, env := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(env, "")
	}

	cfg := DefaultConfig()
	assert.False(t, cfg.Discover())

	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("OPENROUTER_API_KEY", "or-key")
	require.True(t, cfg.Discover())
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "g-key", cfg.Gemini.APIKey)

	// An explicit provider is left alone.
	assert.False(t, cfg.Discover())
}

// recordingRepo is an in-memory store.EventRepo.
type recordingRepo struct {
	store.EventRepo
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return r.err
}

func TestAuditRecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"advice":"ok"}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 7},
	})
	p := WithAudit(mock, repo, zap.NewNop())

	_, err := p.Generate(WithPurpose(context.Background(), "advice"), Request{
		System:   "coach",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
		Schema:   adviceLike,
	})
	require.NoError(t, err)

	require.Len(t, repo.events, 1)
	ev := repo.events[0]
	assert.Equal(t, ProviderMock, ev.Provider)
	assert.Equal(t, "advice", ev.Purpose)
	assert.True(t, ev.Success)
	assert.Equal(t, 12, ev.InputTokens)
	assert.Equal(t, 7, ev.OutputTokens)
	for _, want := range []string{"[system]\ncoach", "[user]\nhello", "[schema test-advice]"} {
		assert.Contains(t, ev.RequestBody, want)
	}
	assert.Equal(t, `{"advice":"ok"}`, ev.ResponseBody)
}

func TestAuditRecordsFailureAndSurvivesRepoError(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"nope":1}`)})
	p := WithAudit(mock, repo, zap.NewNop())

	_, err := p.Generate(context.Background(), Request{Schema: adviceLike})
	require.True(t, IsKind(err, KindInvalidOutput))

	require.Len(t, repo.events, 1)
	ev := repo.events[0]
	assert.False(t, ev.Success)
	assert.NotEmpty(t, ev.ErrorMessage)
	assert.Equal(t, `{"nope":1}`, ev.ResponseBody)
	assert.Equal(t, "unknown", ev.Purpose)
}

func TestNewProvider(t *testing.T) {
	ctx := context.Background()

	p, err := NewProvider(ctx, DefaultConfig(), nil, nil)
	require.NoError(t, err)
	assert.Nil(t, p)

	cfg := DefaultConfig()
	cfg.Provider = ProviderMock
	cfg.Timeout = 0
	p, err = NewProvider(ctx, cfg, &recordingRepo{}, zap.NewNop())
	require.NoError(t, err)
	r, ok := p.(*retrying)
	require.True(t, ok, "got %T", p)
	assert.IsType(t, &audited{}, r.Provider)
	assert.Equal(t, ProviderMock, p.Name())

	cfg.Timeout = time.Minute
	p, err = NewProvider(ctx, cfg, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &timeboxed{}, p)

	cfg.Provider = ProviderAnthropic
	_, err = NewProvider(ctx, cfg, nil, nil)
	assert.Error(t, err)

	cfg.Provider = ProviderOpenRouter
	cfg.OpenRouter.APIKey = "sk-or"
	p, err = NewProvider(ctx, cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenRouter, p.Name())
	assert.Equal(t, "google/gemini-2.0-flash-exp", p.ModelID())
}

type deadlineProbe struct {
	Provider
	deadline time.Time
}

func (d *deadlineProbe) Generate(ctx context.Context, _ Request) (*Response, error) {
	d.deadline, _ = ctx.Deadline()
	return &Response{}, nil
}

func TestWithTimeout(t *testing.T) {
	probe := &deadlineProbe{Provider: NewMockProvider()}
	assert.Same(t, probe, WithTimeout(probe, 0))

	_, err := WithTimeout(probe, time.Minute).Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), probe.deadline, 5*time.Second)
}
