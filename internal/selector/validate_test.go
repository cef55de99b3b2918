package selector

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/shindan/internal/quiz"
)

func TestValidatePathCounts(t *testing.T) {
	// Five of each axis, plus one question touching two axes with three
	// options that all move actionStyle.
	var path []quiz.Question
	for i := range 19 {
		path = append(path, question(fmt.Sprintf("p%d", i), quiz.AllAxes()[i%4]))
	}
	path = append(path, quiz.Question{
		ID: "multi",
		Options: []quiz.Option{
			{Text: "a", Scores: quiz.Scores{ActionStyle: 2, Thinking: 1}},
			{Text: "b", Scores: quiz.Scores{ActionStyle: -1}},
			{Text: "c", Scores: quiz.Scores{ActionStyle: 1}},
		},
	})

	report, err := ValidatePath(path, defaultBalance())
	require.NoError(t, err)
	assert.True(t, report.Valid)
	assert.Equal(t, 6, report.PerAxis[quiz.AxisActionStyle].Count)
	assert.Equal(t, 5, report.PerAxis[quiz.AxisSocialStyle].Count)
	assert.Equal(t, 5, report.PerAxis[quiz.AxisMotivation].Count)
	assert.Equal(t, 5, report.PerAxis[quiz.AxisThinking].Count)
	for _, a := range quiz.AllAxes() {
		assert.True(t, report.PerAxis[a].WithinBounds, a)
		assert.Equal(t, 5, report.PerAxis[a].Target)
	}
}

func TestValidatePathUnderCovered(t *testing.T) {
	path := []quiz.Question{question("only-action", quiz.AxisActionStyle)}
	for i := range 19 {
		path = append(path, question(fmt.Sprintf("p%d", i), quiz.AllAxes()[1+i%3]))
	}

	report, err := ValidatePath(path, defaultBalance())
	require.NoError(t, err)
	assert.False(t, report.Valid)
	ar := report.PerAxis[quiz.AxisActionStyle]
	assert.Equal(t, AxisReport{Count: 1, Target: 5, Min: 3, Max: 10, WithinBounds: false}, ar)
	assert.True(t, report.PerAxis[quiz.AxisSocialStyle].WithinBounds)
}

func TestValidatePathBounds(t *testing.T) {
	balance := quiz.AxisBalance{
		quiz.AxisActionStyle: {Min: 2, Max: 2, Target: 2},
		quiz.AxisSocialStyle: {Min: 0, Max: 0, Target: 0},
		quiz.AxisMotivation:  {Min: 0, Max: 1, Target: 0},
		quiz.AxisThinking:    {Min: 0, Max: 1, Target: 0},
	}

	tests := []struct {
		name  string
		path  []quiz.Question
		valid bool
	}{
		{"exact min and max", []quiz.Question{question("a", quiz.AxisActionStyle), question("b", quiz.AxisActionStyle)}, true},
		{"over max", []quiz.Question{question("a", quiz.AxisActionStyle), question("b", quiz.AxisActionStyle, quiz.AxisSocialStyle)}, false},
		{"under min", []quiz.Question{question("a", quiz.AxisActionStyle)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := ValidatePath(tt.path, balance)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, report.Valid)
		})
	}
}

func TestValidatePathMissingBalance(t *testing.T) {
	_, err := ValidatePath(nil, quiz.AxisBalance{quiz.AxisActionStyle: {}})
	assert.True(t, errors.Is(err, ErrMissingBalance))
}
