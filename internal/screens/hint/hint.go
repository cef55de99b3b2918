package hint

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shindan/internal/quiz"
	"github.com/abhisek/shindan/internal/router"
	"github.com/abhisek/shindan/internal/screen"
	"github.com/abhisek/shindan/internal/screens"
	quizscreen "github.com/abhisek/shindan/internal/screens/quiz"
	"github.com/abhisek/shindan/internal/session"
	"github.com/abhisek/shindan/internal/ui/components"
	"github.com/abhisek/shindan/internal/ui/layout"
	"github.com/abhisek/shindan/internal/ui/theme"
)

// HintScreen asks for an optional four-letter self-reported type before
// the quiz starts.
type HintScreen struct {
	deps  screens.Deps
	input components.TextInput
}

var _ screen.Screen = (*HintScreen)(nil)
var _ screen.KeyHintProvider = (*HintScreen)(nil)

// New creates a HintScreen.
func New(deps screens.Deps) *HintScreen {
	return &HintScreen{
		deps:  deps.WithDefaults(),
		input: components.NewTextInput("ENFP", true, 4),
	}
}

func (h *HintScreen) Init() tea.Cmd {
	return h.input.Init()
}

func (h *HintScreen) Title() string {
	return "Before we start"
}

func (h *HintScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start (empty to skip)"},
		{Key: "Esc", Description: "Back"},
	}
}

func (h *HintScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter":
			return h, h.start()
		case "esc":
			return h, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	var cmd tea.Cmd
	h.input, cmd = h.input.Update(msg)
	return h, cmd
}

// start validates the hint and swaps this screen for the quiz.
func (h *HintScreen) start() tea.Cmd {
	hint, err := quiz.NormalizeHint(h.input.Value())
	if err != nil {
		h.input.SetError("not a known type; leave empty to skip")
		return nil
	}
	s, err := session.New(h.deps.Selector, hint)
	if err != nil {
		h.input.SetError(err.Error())
		return nil
	}
	next := quizscreen.New(h.deps, s)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (h *HintScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	intro := lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 6).Render(
		"If you already know your four-letter personality type, enter it " +
			"and the questions will be tuned to you. Leave it empty to skip.")

	known := theme.Hint.Width(cw - 6).Render(strings.Join(quiz.TypeHints(), " "))

	content := strings.Join([]string{
		theme.Title.Render("Your type"),
		components.Card(intro+"\n\n"+h.input.View()+"\n\n"+known, cw),
	}, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
