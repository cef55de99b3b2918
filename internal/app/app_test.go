package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/shindan/internal/quizdata"
	"github.com/abhisek/shindan/internal/screens"
	"github.com/abhisek/shindan/internal/selector"
)

func testDeps(t *testing.T) screens.Deps {
	t.Helper()
	data, err := quizdata.Load()
	require.NoError(t, err)
	return screens.Deps{Data: data, Selector: selector.New(data.Bank)}
}

// drive applies msg and feeds any navigation message the command
// produces back into the model.
func drive(m AppModel, msg tea.Msg) AppModel {
	next, cmd := m.Update(msg)
	m = next.(AppModel)
	if cmd == nil {
		return m
	}
	if out := cmd(); out != nil {
		next, _ = m.Update(out)
		m = next.(AppModel)
	}
	return m
}

func TestStartsOnWelcomeThenHome(t *testing.T) {
	m := newAppModel(testDeps(t), Options{})
	assert.Equal(t, "", m.router.Active().Title())

	m = drive(m, tea.KeyPressMsg{Code: ' '})
	assert.Equal(t, "Home", m.router.Active().Title())
}

func TestMenuOpensHintScreen(t *testing.T) {
	m := newAppModel(testDeps(t), Options{SkipWelcome: true})
	m = drive(m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m = drive(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, 2, m.router.Depth())
	assert.Equal(t, "Before we start", m.router.Active().Title())

	assert.Contains(t, m.router.View(100, 34), "Your type")

	m = drive(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Equal(t, 1, m.router.Depth())
	assert.Equal(t, "Home", m.router.Active().Title())
}

func TestCtrlCQuits(t *testing.T) {
	m := newAppModel(testDeps(t), Options{SkipWelcome: true})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
