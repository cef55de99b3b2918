package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shindan/internal/router"
	"github.com/abhisek/shindan/internal/screen"
	"github.com/abhisek/shindan/internal/screens"
	compatscreen "github.com/abhisek/shindan/internal/screens/compat"
	"github.com/abhisek/shindan/internal/screens/hint"
	"github.com/abhisek/shindan/internal/screens/history"
	"github.com/abhisek/shindan/internal/ui/components"
	"github.com/abhisek/shindan/internal/ui/layout"
	"github.com/abhisek/shindan/internal/ui/theme"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

// New creates a new HomeScreen. PAST RESULTS is disabled without a
// result store.
func New(deps screens.Deps) *HomeScreen {
	deps = deps.WithDefaults()
	items := []components.MenuItem{
		{Label: "START QUIZ", Action: func() tea.Cmd { return push(hint.New(deps)) }},
		{Label: "COMPATIBILITY", Action: func() tea.Cmd { return push(compatscreen.New(deps.Data, "", "")) }},
		{Label: "PAST RESULTS", Disabled: deps.Results == nil, Action: func() tea.Cmd {
			return push(history.New(deps.Results))
		}},
		{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	}
	return &HomeScreen{menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	title := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render("WORK STYLE DIAGNOSIS"),
		theme.Subtitle.Render("20 questions. 16 characters. One of them is you."),
	)

	content := strings.Join([]string{
		title,
		h.menu.View(min(cw, 40)),
	}, "\n\n")
	return components.Frame(content, width, height)
}
