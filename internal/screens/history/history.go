package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shindan/internal/router"
	"github.com/abhisek/shindan/internal/screen"
	"github.com/abhisek/shindan/internal/store"
	"github.com/abhisek/shindan/internal/ui/layout"
	"github.com/abhisek/shindan/internal/ui/theme"
)

const listLimit = 50

type historyLoadedMsg struct {
	Results []store.Result
	Err     error
}

// HistoryScreen lists saved results, newest first.
type HistoryScreen struct {
	repo     store.ResultRepo
	results  []store.Result
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.ResultRepo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		results, err := s.repo.List(context.Background(), listLimit)
		return historyLoadedMsg{Results: results, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Past results"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.results = msg.Results
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.results)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := func(st lipgloss.Style, text string) string {
		return st.Width(width).Align(lipgloss.Center).Render(text)
	}
	if s.errMsg != "" {
		return center(lipgloss.NewStyle().Foreground(theme.Error), "\n\nError: "+s.errMsg)
	}
	if !s.loaded {
		return center(lipgloss.NewStyle().Foreground(theme.TextDim), "\n\n  Loading results...")
	}
	if len(s.results) == 0 {
		return center(theme.Hint, "\n\n  No results yet. Take the quiz first!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, r := range s.results {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		line := fmt.Sprintf("%s%s  %s  %-22s %s",
			prefix, r.CreatedAt.Local().Format("Jan 02 15:04"), r.CharacterCode, r.CharacterName, hintLabel(r.TypeHint))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    action %+d  social %+d  motivation %+d  thinking %+d  (%d answers)",
				r.Scores.ActionStyle, r.Scores.SocialStyle, r.Scores.Motivation, r.Scores.Thinking, len(r.History))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render(detail)))
			b.WriteString("\n")
			if r.Advice != "" {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					theme.Body.Width(min(width-8, 72)).Render(r.Advice)))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func hintLabel(h string) string {
	if h == "" {
		return ""
	}
	return "(hint " + h + ")"
}
