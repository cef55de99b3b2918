package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shindan/internal/router"
	"github.com/abhisek/shindan/internal/screen"
	"github.com/abhisek/shindan/internal/screens"
	"github.com/abhisek/shindan/internal/screens/home"
	"github.com/abhisek/shindan/internal/screens/welcome"
	"github.com/abhisek/shindan/internal/ui/layout"
)

// Options configures the terminal program.
type Options struct {
	// SkipWelcome starts on the home screen.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates an AppModel that opens on the welcome splash, or
// straight on the home screen.
func newAppModel(deps screens.Deps, opts Options) AppModel {
	deps = deps.WithDefaults()
	homeFactory := func() screen.Screen { return home.New(deps) }

	var first screen.Screen = welcome.New(homeFactory)
	if opts.SkipWelcome {
		first = homeFactory()
	}
	return AppModel{router: router.New(first)}
}

func (m AppModel) Init() tea.Cmd {
	if a := m.router.Active(); a != nil {
		return a.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	var title, status string
	footerHints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
		if kp, ok := active.(screen.KeyHintProvider); ok {
			footerHints = kp.KeyHints()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(ctx context.Context, deps screens.Deps, opts Options) error {
	p := tea.NewProgram(newAppModel(deps, opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal program: %w", err)
	}
	return nil
}
