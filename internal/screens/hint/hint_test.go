package hint

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/shindan/internal/quizdata"
	"github.com/abhisek/shindan/internal/router"
	"github.com/abhisek/shindan/internal/screens"
	quizscreen "github.com/abhisek/shindan/internal/screens/quiz"
	"github.com/abhisek/shindan/internal/selector"
)

func newHint(t *testing.T) *HintScreen {
	t.Helper()
	data, err := quizdata.Load()
	require.NoError(t, err)
	return New(screens.Deps{Data: data, Selector: selector.New(data.Bank)})
}

func typeText(h *HintScreen, s string) {
	for _, r := range s {
		h.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func enter(h *HintScreen) tea.Cmd {
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	return cmd
}

func TestUnknownHintIsRejected(t *testing.T) {
	h := newHint(t)
	typeText(h, "abcd")
	assert.Nil(t, enter(h))
	assert.Contains(t, h.View(100, 40), "not a known type")
}

func TestHintStartsQuiz(t *testing.T) {
	for _, in := range []string{"", "intp"} {
		h := newHint(t)
		typeText(h, in)
		cmd := enter(h)
		require.NotNil(t, cmd, "input %q", in)
		msg, ok := cmd().(router.ReplaceScreenMsg)
		require.True(t, ok)
		assert.IsType(t, &quizscreen.QuizScreen{}, msg.Screen)
	}
}
