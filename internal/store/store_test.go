package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/shindan/internal/quiz"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleResult(code string, at time.Time) *Result {
	return &Result{
		CharacterCode: code,
		CharacterName: "Character " + code,
		Scores:        quiz.Scores{ActionStyle: 4, SocialStyle: -2, Motivation: 1, Thinking: 3},
		History: []quiz.AnswerEntry{{
			QuestionID:     "q1",
			Question:       "How do you start a project?",
			SelectedAnswer: "Jump right in",
			Scores:         quiz.Scores{ActionStyle: 2},
		}},
		TypeHint:  "ENTJ",
		CreatedAt: at,
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		require.NoError(t, db.QueryRow("PRAGMA "+tt.pragma).Scan(&got), tt.pragma)
		assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{resultsTable, llmEventsTable} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestOpenTwiceKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	r := sampleResult("IGYS", time.Time{})
	require.NoError(t, s.ResultRepo().Save(ctx, r))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.ResultRepo().Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "IGYS", got.CharacterCode)
}

// testResultRepo runs the shared ResultRepo contract against any backend.
func testResultRepo(t *testing.T, repo ResultRepo) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("save fills id and time", func(t *testing.T) {
		r := sampleResult("IGYS", time.Time{})
		require.NoError(t, repo.Save(ctx, r))
		assert.NotEmpty(t, r.ID)
		assert.False(t, r.CreatedAt.IsZero())
	})

	t.Run("get round trip", func(t *testing.T) {
		r := sampleResult("STAC", base)
		r.Advice = "Trust your quiet instincts."
		require.NoError(t, repo.Save(ctx, r))

		got, err := repo.Get(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, r.ID, got.ID)
		assert.Equal(t, r.Scores, got.Scores)
		assert.Equal(t, r.History, got.History)
		assert.Equal(t, r.Advice, got.Advice)
		assert.Equal(t, "ENTJ", got.TypeHint)
		assert.True(t, r.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := repo.Get(ctx, "nope")
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("list newest first with limit", func(t *testing.T) {
		var ids []string
		for i := range 3 {
			r := sampleResult("SGAC", base.Add(time.Duration(i+1)*time.Hour))
			require.NoError(t, repo.Save(ctx, r))
			ids = append(ids, r.ID)
		}

		got, err := repo.List(ctx, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		// The fill-in result from the first subtest is newer than all of these.
		all, err := repo.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, all, 5)
		assert.Equal(t, ids[2], all[1].ID)
		assert.Equal(t, ids[1], all[2].ID)
		assert.Equal(t, ids[0], all[3].ID)
		assert.Equal(t, all[0].ID, got[0].ID)
	})

	t.Run("character stats", func(t *testing.T) {
		stats, err := repo.CharacterStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, []CharacterStat{
			{Code: "SGAC", Count: 3},
			{Code: "IGYS", Count: 1},
			{Code: "STAC", Count: 1},
		}, stats)
	})
}

func TestSQLResultRepo(t *testing.T) {
	testResultRepo(t, openTestStore(t).ResultRepo())
}

func TestDefaultDBPath(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "nested", "custom.db")
		t.Setenv("SHINDAN_DB", p)
		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, p, got)
		assert.DirExists(t, filepath.Dir(p))
	})

	t.Run("xdg data home", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("SHINDAN_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "shindan", "shindan.db"), got)
	})
}
