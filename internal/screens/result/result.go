package result

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/shindan/internal/advice"
	"github.com/abhisek/shindan/internal/quiz"
	"github.com/abhisek/shindan/internal/router"
	"github.com/abhisek/shindan/internal/screen"
	"github.com/abhisek/shindan/internal/screens"
	"github.com/abhisek/shindan/internal/session"
	"github.com/abhisek/shindan/internal/store"
	"github.com/abhisek/shindan/internal/ui/components"
	"github.com/abhisek/shindan/internal/ui/layout"
	"github.com/abhisek/shindan/internal/ui/theme"
)

// finishTimeout bounds advice generation plus saving.
const finishTimeout = 45 * time.Second

// scoreScale is the absolute axis score drawn as a full bar.
const scoreScale = 12

// finishedMsg carries the advice and the outcome of saving the result.
type finishedMsg struct {
	Advice  advice.Advice
	Saved   bool
	SaveErr error
}

// ResultScreen shows the character a finished session resolved to.
type ResultScreen struct {
	deps    screens.Deps
	res     *session.Result
	spinner spinner.Model

	finished bool
	advice   advice.Advice
	saved    bool
	saveErr  error
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)
var _ screen.StatusProvider = (*ResultScreen)(nil)

// New creates a ResultScreen for res.
func New(deps screens.Deps, res *session.Result) *ResultScreen {
	return &ResultScreen{
		deps:    deps.WithDefaults(),
		res:     res,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (r *ResultScreen) Init() tea.Cmd {
	return tea.Batch(r.spinner.Tick, r.finish())
}

// finish generates advice and then saves the result with it.
func (r *ResultScreen) finish() tea.Cmd {
	deps, res := r.deps, r.res
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), finishTimeout)
		defer cancel()

		a, err := deps.Advice.Generate(ctx, advice.Input{Character: res.Character, History: res.History})
		if err != nil {
			a = advice.Static(res.Character)
		}

		if deps.Results == nil {
			return finishedMsg{Advice: a}
		}
		rec := &store.Result{
			ID:            res.ID,
			CharacterCode: res.Code,
			CharacterName: res.Character.Name,
			Scores:        res.Scores,
			History:       res.History,
			Advice:        a.Text(),
			TypeHint:      res.TypeHint,
		}
		if err := deps.Results.Save(ctx, rec); err != nil {
			deps.Logger.Error("save result failed", zap.String("id", res.ID), zap.Error(err))
			return finishedMsg{Advice: a, SaveErr: err}
		}
		return finishedMsg{Advice: a, Saved: true}
	}
}

func (r *ResultScreen) Title() string {
	return "Your result"
}

func (r *ResultScreen) Status() string {
	return r.res.Code
}

func (r *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Done"},
		{Key: "Esc", Description: "Home"},
	}
}

func (r *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case finishedMsg:
		r.finished = true
		r.advice = msg.Advice
		r.saved = msg.Saved
		r.saveErr = msg.SaveErr
		return r, nil

	case spinner.TickMsg:
		if r.finished {
			return r, nil
		}
		var cmd tea.Cmd
		r.spinner, cmd = r.spinner.Update(msg)
		return r, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc":
			return r, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return r, nil
}

func (r *ResultScreen) View(width, height int) string {
	c := r.res.Character
	cw := components.ContentWidth(width)
	inner := cw - 6

	var sections []string

	head := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true).Render(strings.TrimSpace(c.Icon + " " + c.Name))
	sections = append(sections, lipgloss.JoinVertical(lipgloss.Center,
		head,
		theme.Subtitle.Render(c.Subtitle),
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(r.res.Code),
	))

	sections = append(sections, components.Card(
		AxisBars(r.res.Scores, r.deps.Data.Bank.Axes, inner), cw))

	body := theme.Body.Width(inner).Render(c.Personality) + "\n\n" +
		theme.Selected.Render("Strengths") + "\n" + bullets(c.Strengths, inner)
	sections = append(sections, components.Card(body, cw))

	sections = append(sections, components.Card(r.adviceView(inner), cw))

	if !compact(height) {
		sections = append(sections, r.saveStatus())
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n"))
}

func (r *ResultScreen) adviceView(width int) string {
	if !r.finished {
		return r.spinner.View() + " " + theme.Hint.Render("Reading between your answers...")
	}
	label := "Hidden talent"
	if r.advice.Source == advice.SourceStatic {
		label = "Hidden side"
	}
	return theme.Selected.Render(label) + "\n" +
		theme.Body.Width(width).Render(r.advice.HiddenTalent) + "\n\n" +
		theme.Selected.Render("Advice") + "\n" +
		theme.Body.Width(width).Render(r.advice.Advice)
}

func (r *ResultScreen) saveStatus() string {
	switch {
	case !r.finished:
		return ""
	case r.saveErr != nil:
		return theme.ErrorText.Render("Could not save result: " + r.saveErr.Error())
	case r.saved:
		return theme.Hint.Render("Saved as " + r.res.ID)
	default:
		return theme.Hint.Render("Results are not saved in this mode")
	}
}

func compact(height int) bool {
	return layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight)
}

func bullets(items []string, width int) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, theme.Body.Width(width).Render("• "+it))
	}
	return strings.Join(lines, "\n")
}

// AxisBars draws one bar per axis. The bar fills toward the positive pole
// as the score grows; zero sits in the middle.
func AxisBars(s quiz.Scores, labels map[quiz.Axis]quiz.AxisLabel, width int) string {
	rows := make([]string, 0, len(quiz.AllAxes()))
	for _, a := range quiz.AllAxes() {
		l, ok := labels[a]
		if !ok {
			l = quiz.AxisLabel{Name: quiz.AxisDisplayName(a)}
		}
		pct := 0.5 + float64(s.Get(a))/float64(2*scoreScale)
		bar := components.ProgressBar{
			Label: fmt.Sprintf("%-10.10s", l.NegativeLabel),
			Width: width - 12,
			Color: theme.AxisColor(a),
		}
		bar.Percent = min(max(pct, 0), 1)
		rows = append(rows, theme.Hint.Render(l.Name)+"\n"+bar.View()+" "+fmt.Sprintf("%.10s", l.PositiveLabel))
	}
	return strings.Join(rows, "\n")
}
