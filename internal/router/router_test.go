package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/shindan/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
	updates int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { s.updates++; return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPushPop(t *testing.T) {
	first := &stubScreen{title: "hint"}
	r := New(first)

	second := &stubScreen{title: "quiz"}
	r.Push(second)
	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "quiz", r.Active().Title())
	assert.True(t, second.initRan)

	r.Pop()
	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "hint", r.Active().Title())

	r.Pop()
	assert.Equal(t, 1, r.Depth(), "pop at the bottom is a no-op")
}

func TestReplace(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "quiz"})

	result := &stubScreen{title: "result"}
	r.Replace(result)

	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "result", r.Active().Title())
	assert.True(t, result.initRan)
}

func TestUpdateHandlesNavigationMessages(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)

	quiz := &stubScreen{title: "quiz"}
	r.Update(PushScreenMsg{Screen: quiz})
	assert.Equal(t, "quiz", r.View(80, 24))

	result := &stubScreen{title: "result"}
	r.Update(ReplaceScreenMsg{Screen: result})
	assert.Equal(t, "result", r.Active().Title())
	assert.True(t, result.initRan)

	r.Update(PopScreenMsg{})
	assert.Equal(t, "home", r.Active().Title())

	r.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	assert.Equal(t, 1, home.updates, "other messages reach the active screen")
}
