package result

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/shindan/internal/advice"
	"github.com/abhisek/shindan/internal/quiz"
	"github.com/abhisek/shindan/internal/quizdata"
	"github.com/abhisek/shindan/internal/router"
	"github.com/abhisek/shindan/internal/screens"
	"github.com/abhisek/shindan/internal/session"
	"github.com/abhisek/shindan/internal/store"
)

// fakeRepo records saved results.
type fakeRepo struct {
	store.ResultRepo
	saved []store.Result
	err   error
}

func (f *fakeRepo) Save(_ context.Context, r *store.Result) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, *r)
	return nil
}

func testResult(t *testing.T) (*quizdata.Data, *session.Result) {
	t.Helper()
	data, err := quizdata.Load()
	require.NoError(t, err)
	c, ok := data.Character("IGYS")
	require.True(t, ok)
	return data, &session.Result{
		ID:        "run-1",
		Code:      "IGYS",
		Character: c,
		Scores:    quiz.Scores{ActionStyle: 4, SocialStyle: 2, Motivation: 1, Thinking: 3},
		History:   []quiz.AnswerEntry{{QuestionID: "q1", Question: "?", SelectedAnswer: "!"}},
		TypeHint:  "ENFJ",
	}
}

func TestFinishSavesWithAdvice(t *testing.T) {
	data, res := testResult(t)
	repo := &fakeRepo{}
	r := New(screens.Deps{Data: data, Results: repo}, res)

	msg, ok := r.finish()().(finishedMsg)
	require.True(t, ok)
	assert.True(t, msg.Saved)
	assert.Equal(t, advice.SourceStatic, msg.Advice.Source)

	require.Len(t, repo.saved, 1)
	got := repo.saved[0]
	assert.Equal(t, "run-1", got.ID)
	assert.Equal(t, "IGYS", got.CharacterCode)
	assert.Equal(t, res.Character.Name, got.CharacterName)
	assert.Equal(t, "ENFJ", got.TypeHint)
	assert.Equal(t, msg.Advice.Text(), got.Advice)

	r.Update(msg)
	view := r.View(100, 60)
	assert.Contains(t, view, res.Character.Name)
	assert.Contains(t, view, "Saved as run-1")
}

func TestFinishReportsSaveError(t *testing.T) {
	data, res := testResult(t)
	r := New(screens.Deps{Data: data, Results: &fakeRepo{err: errors.New("disk full")}}, res)

	msg := r.finish()().(finishedMsg)
	assert.False(t, msg.Saved)
	r.Update(msg)
	assert.Contains(t, r.View(100, 60), "disk full")
}

func TestFinishWithoutStore(t *testing.T) {
	data, res := testResult(t)
	r := New(screens.Deps{Data: data}, res)

	msg := r.finish()().(finishedMsg)
	assert.False(t, msg.Saved)
	assert.NoError(t, msg.SaveErr)
	assert.NotEmpty(t, msg.Advice.Advice)
}

func TestEnterReturnsHome(t *testing.T) {
	data, res := testResult(t)
	r := New(screens.Deps{Data: data}, res)
	_, cmd := r.Update(specialEnter())
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
}

func TestAxisBarsListsEveryAxis(t *testing.T) {
	data, res := testResult(t)
	out := AxisBars(res.Scores, data.Bank.Axes, 50)
	for _, a := range quiz.AllAxes() {
		assert.Contains(t, out, data.Bank.Axes[a].Name)
	}
}

func specialEnter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }
