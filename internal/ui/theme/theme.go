package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/shindan/internal/quiz"
)

// Color palette
var (
	Primary   = lipgloss.Color("#EC4899") // Pink
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Highlight = lipgloss.Color("#FDE047") // Yellow
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

var axisColors = map[quiz.Axis]color.Color{
	quiz.AxisActionStyle: lipgloss.Color("#F97316"),
	quiz.AxisSocialStyle: lipgloss.Color("#3B82F6"),
	quiz.AxisMotivation:  lipgloss.Color("#A855F7"),
	quiz.AxisThinking:    lipgloss.Color("#10B981"),
}

// AxisColor returns the bar color used for an axis.
func AxisColor(a quiz.Axis) color.Color {
	if c, ok := axisColors[a]; ok {
		return c
	}
	return Secondary
}
