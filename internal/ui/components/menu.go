package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// MenuItem represents a single item in a navigation menu.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a new menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	for i, item := range items {
		if !item.Disabled {
			m.Selected = i
			break
		}
	}
	return m
}

// Update handles keyboard navigation. Movement wraps around and skips
// disabled items.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		m.Selected = m.step(-1)
	case "down", "j", "tab":
		m.Selected = m.step(1)
	case "enter":
		item := m.Items[m.Selected]
		if item.Action != nil && !item.Disabled {
			return m, item.Action()
		}
	}
	return m, nil
}

func (m Menu) step(dir int) int {
	n := len(m.Items)
	for i := 1; i < n; i++ {
		next := ((m.Selected+dir*i)%n + n) % n
		if !m.Items[next].Disabled {
			return next
		}
	}
	return m.Selected
}

// View renders the menu as a column of buttons.
func (m Menu) View(width int) string {
	rows := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		rows = append(rows, Button(item.Label, i == m.Selected, width))
	}
	return strings.Join(rows, "\n")
}
