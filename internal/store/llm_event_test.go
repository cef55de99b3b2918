package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRepo(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	clock := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	repo := &eventRepo{db: s.DB(), now: func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}}

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-sonnet-4-5", Purpose: "advice", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true, RequestBody: `{"a":1}`, ResponseBody: `{"b":2}`},
		{Provider: "anthropic", Model: "claude-sonnet-4-5", Purpose: "advice", InputTokens: 300, OutputTokens: 70, LatencyMs: 400, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "summary", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: false, ErrorMessage: "rate limit"},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	t.Run("query newest first", func(t *testing.T) {
		got, err := repo.QueryLLMEvents(ctx, QueryOpts{})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "openai", got[0].Provider)
		assert.Equal(t, "rate limit", got[0].ErrorMessage)
		assert.False(t, got[0].Success)
		assert.True(t, got[2].Success)
		assert.True(t, got[0].Timestamp.After(got[2].Timestamp))
	})

	t.Run("query filters", func(t *testing.T) {
		got, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "advice", Limit: 1})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 300, got[0].InputTokens)

		from := time.Date(2026, 5, 1, 9, 2, 0, 0, time.UTC)
		got, err = repo.QueryLLMEvents(ctx, QueryOpts{From: from, To: from})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 300, got[0].InputTokens)
	})

	t.Run("get", func(t *testing.T) {
		all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
		require.NoError(t, err)
		first := all[len(all)-1]

		got, err := repo.GetLLMEvent(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, got.RequestBody)
		assert.Equal(t, `{"b":2}`, got.ResponseBody)

		_, err = repo.GetLLMEvent(ctx, 9999)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("usage by purpose", func(t *testing.T) {
		got, err := repo.LLMUsageByPurpose(ctx)
		require.NoError(t, err)
		assert.Equal(t, []LLMUsageStats{
			{Purpose: "advice", Calls: 2, InputTokens: 400, OutputTokens: 120, AvgLatencyMs: 300},
			{Purpose: "summary", Calls: 1, InputTokens: 10, OutputTokens: 5, AvgLatencyMs: 100},
		}, got)
	})

	t.Run("usage by model", func(t *testing.T) {
		got, err := repo.LLMUsageByModel(ctx)
		require.NoError(t, err)
		assert.Equal(t, []LLMModelUsage{
			{Model: "claude-sonnet-4-5", Calls: 2, InputTokens: 400, OutputTokens: 120},
			{Model: "gpt-4o-mini", Calls: 1, InputTokens: 10, OutputTokens: 5},
		}, got)
	})
}

func TestStoreEventRepoUsesWallClock(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	before := time.Now().Add(-time.Second)

	require.NoError(t, s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "advice", Success: true,
	}))
	got, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Timestamp.After(before))
}
