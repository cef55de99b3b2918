package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/abhisek/shindan/internal/quiz"
	"github.com/abhisek/shindan/internal/store"
)

func TestWriteResults(t *testing.T) {
	results := []store.Result{
		{
			ID:            "r1",
			CharacterCode: "IGYS",
			CharacterName: "Rally Lion",
			Scores:        quiz.Scores{ActionStyle: 6, SocialStyle: 2, Motivation: -1, Thinking: 0},
			History: []quiz.AnswerEntry{
				{QuestionID: "q1", Question: "First?", SelectedAnswer: "Go", Scores: quiz.Scores{ActionStyle: 2}},
				{QuestionID: "q2", Question: "Second?", SelectedAnswer: "Stay", Scores: quiz.Scores{SocialStyle: -1}},
			},
			Advice:    "Slow down once a day.",
			CreatedAt: time.Date(2026, 6, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:            "r2",
			CharacterCode: "STAC",
			CharacterName: "Mystic Jellyfish",
			TypeHint:      "INFP",
			History:       []quiz.AnswerEntry{{QuestionID: "q1", Question: "First?", SelectedAnswer: "Wait"}},
			CreatedAt:     time.Date(2026, 6, 2, 9, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, results))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ResultsSheet, AnswersSheet}, f.GetSheetList())

	rows, err := f.GetRows(ResultsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, resultHeaders, rows[0])
	assert.Equal(t, []string{"r1", "2026-06-01 10:30:00", "IGYS", "Rally Lion", "", "6", "2", "-1", "0", "Slow down once a day."}, rows[1])
	assert.Equal(t, "INFP", rows[2][4])

	answers, err := f.GetRows(AnswersSheet)
	require.NoError(t, err)
	require.Len(t, answers, 4)
	assert.Equal(t, []string{"r1", "2", "q2", "Second?", "Stay", "0", "-1", "0", "0"}, answers[2])
	assert.Equal(t, "r2", answers[3][0])
}

func TestWriteResultsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ResultsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
