package compat

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shindan/internal/compat"
	"github.com/abhisek/shindan/internal/quizdata"
	"github.com/abhisek/shindan/internal/router"
	"github.com/abhisek/shindan/internal/screen"
	"github.com/abhisek/shindan/internal/ui/components"
	"github.com/abhisek/shindan/internal/ui/layout"
	"github.com/abhisek/shindan/internal/ui/theme"
)

// CompatScreen checks two character codes against each other.
type CompatScreen struct {
	data   *quizdata.Data
	inputs [2]components.TextInput
	focus  int
	result *compat.Result
}

var _ screen.Screen = (*CompatScreen)(nil)
var _ screen.KeyHintProvider = (*CompatScreen)(nil)

// New creates a CompatScreen. Either code may be prefilled.
func New(data *quizdata.Data, a, b string) *CompatScreen {
	s := &CompatScreen{data: data}
	for i, v := range []string{a, b} {
		s.inputs[i] = components.NewTextInput("IGYS", true, 4)
		s.inputs[i].Model.SetValue(strings.ToUpper(v))
	}
	s.inputs[1].Model.Blur()
	return s
}

func (s *CompatScreen) Init() tea.Cmd {
	return s.inputs[0].Init()
}

func (s *CompatScreen) Title() string {
	return "Compatibility"
}

func (s *CompatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch"},
		{Key: "Enter", Description: "Check"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *CompatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab", "shift+tab", "up", "down":
			return s, s.switchFocus()
		case "enter":
			if s.focus == 0 && s.inputs[1].Value() == "" {
				return s, s.switchFocus()
			}
			s.check()
			return s, nil
		}
	}
	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *CompatScreen) switchFocus() tea.Cmd {
	s.inputs[s.focus].Model.Blur()
	s.focus = 1 - s.focus
	return s.inputs[s.focus].Model.Focus()
}

func (s *CompatScreen) check() {
	s.result = nil
	r, err := compat.Check(s.inputs[0].Value(), s.inputs[1].Value())
	if err != nil {
		for i := range s.inputs {
			if !validCode(s.inputs[i].Value()) {
				s.inputs[i].SetError("enter one of the 16 codes")
			}
		}
		return
	}
	s.result = &r
}

func validCode(c string) bool {
	_, err := compat.Check(c, c)
	return err == nil
}

func (s *CompatScreen) name(code string) string {
	if s.data == nil {
		return code
	}
	if c, ok := s.data.Character(code); ok {
		return fmt.Sprintf("%s %s", c.Icon, c.Name)
	}
	return code
}

func (s *CompatScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	form := "You    " + s.inputs[0].View() + "\n\n" + "Them   " + s.inputs[1].View()
	sections := []string{components.Card(form, cw)}

	if r := s.result; r != nil {
		head := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true).
			Render(fmt.Sprintf("%s  ×  %s", s.name(r.CodeA), s.name(r.CodeB)))
		bar := components.NewProgressBar("", float64(r.Percentage)/100, true, cw-6).View()
		lines := []string{head, "", bar, "", theme.Selected.Render(r.Message)}
		for _, d := range r.Details {
			lines = append(lines, theme.Body.Width(cw-6).Render("• "+d))
		}
		sections = append(sections, components.Card(strings.Join(lines, "\n"), cw))
	} else {
		sections = append(sections, theme.Hint.Render(strings.Join(compat.AllCodes(), " ")))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n\n"))
}
