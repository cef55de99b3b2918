package welcome

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/shindan/internal/router"
	"github.com/abhisek/shindan/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func newTestWelcome() (*WelcomeScreen, *int) {
	calls := 0
	return New(func() screen.Screen {
		calls++
		return &stubScreen{}
	}), &calls
}

func sendTicks(w *WelcomeScreen, n int) {
	for range n {
		w.Update(tickMsg(time.Now()))
	}
}

func TestPhases(t *testing.T) {
	w, _ := newTestWelcome()
	assert.NotContains(t, w.View(80, 24), Tagline)

	sendTicks(w, 4)
	assert.Equal(t, phase1End, w.elapsed)
	assert.NotContains(t, w.View(80, 24), Tagline)

	sendTicks(w, 8)
	assert.Equal(t, phase2End, w.elapsed)
	assert.Contains(t, w.View(80, 24), Tagline)
}

func TestElapsedIsCapped(t *testing.T) {
	w, calls := newTestWelcome()
	sendTicks(w, 50)
	assert.Equal(t, totalDur, w.elapsed)
	assert.Zero(t, *calls, "no transition without a key press")
}

func TestKeyPressReplacesOnce(t *testing.T) {
	w, calls := newTestWelcome()
	sendTicks(w, 2)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.NotNil(t, msg.Screen)

	_, cmd = w.Update(tea.KeyPressMsg{Code: 'b'})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, *calls)

	_, cmd = w.Update(tickMsg(time.Now()))
	assert.Nil(t, cmd, "ticks stop after the transition")
}

func TestCompactBanner(t *testing.T) {
	assert.Contains(t, RenderBanner(40), "S H I N D A N")
}
