package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shindan/internal/quiz"
	"github.com/abhisek/shindan/internal/ui/theme"
)

// ChoiceList renders a question and lets the player pick one of its
// options. There is no right answer; Chosen is -1 until a pick is made.
type ChoiceList struct {
	Question quiz.Question
	Selected int
	Chosen   int
}

// NewChoiceList creates a list for q with the cursor on the first option.
func NewChoiceList(q quiz.Question) ChoiceList {
	return ChoiceList{Question: q, Chosen: -1}
}

// Submitted reports whether an option has been picked.
func (c ChoiceList) Submitted() bool { return c.Chosen >= 0 }

// Update moves the cursor and picks on Enter or a number key.
func (c ChoiceList) Update(msg tea.Msg) ChoiceList {
	if c.Submitted() {
		return c
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c
	}

	n := len(c.Question.Options)
	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < n-1 {
			c.Selected++
		}
	case "enter", "space":
		c.Chosen = c.Selected
	default:
		if i, err := strconv.Atoi(key); err == nil && i >= 1 && i <= n {
			c.Selected = i - 1
			c.Chosen = i - 1
		}
	}
	return c
}

// View renders the prompt followed by numbered options.
func (c ChoiceList) View(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(width).
		Render(c.Question.Prompt))
	b.WriteString("\n\n")

	for i, opt := range c.Question.Options {
		prefix := "  "
		if i == c.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt.Text)

		style := theme.Unselected
		switch {
		case c.Submitted() && i == c.Chosen:
			style = lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
		case c.Submitted():
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == c.Selected:
			style = theme.Selected
		}
		b.WriteString(style.Width(width).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
