package quiz

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/shindan/internal/router"
	"github.com/abhisek/shindan/internal/screen"
	"github.com/abhisek/shindan/internal/screens"
	resultscreen "github.com/abhisek/shindan/internal/screens/result"
	"github.com/abhisek/shindan/internal/session"
	"github.com/abhisek/shindan/internal/ui/components"
	"github.com/abhisek/shindan/internal/ui/layout"
	"github.com/abhisek/shindan/internal/ui/theme"
)

// answerDelay is how long a picked option stays highlighted.
const answerDelay = 300 * time.Millisecond

// advanceMsg moves past the highlighted answer.
type advanceMsg struct{}

// QuizScreen walks the player through one session.
type QuizScreen struct {
	deps    screens.Deps
	sess    *session.Session
	choices components.ChoiceList
	confirm bool // showing the quit prompt
	errMsg  string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a QuizScreen for an already started session.
func New(deps screens.Deps, s *session.Session) *QuizScreen {
	q := &QuizScreen{deps: deps.WithDefaults(), sess: s}
	q.loadCurrent()
	return q
}

func (q *QuizScreen) loadCurrent() {
	if cur, ok := q.sess.Current(); ok {
		q.choices = components.NewChoiceList(cur)
	}
}

func (q *QuizScreen) Init() tea.Cmd {
	return nil
}

func (q *QuizScreen) Title() string {
	return "Diagnosis"
}

func (q *QuizScreen) Status() string {
	n := min(q.sess.Number(), q.sess.Total())
	return fmt.Sprintf("Q %d / %d", n, q.sess.Total())
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	if q.confirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Quit quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "1-9", Description: "Pick"},
		{Key: "Enter", Description: "Answer"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case advanceMsg:
		return q, q.advance()

	case tea.KeyMsg:
		if q.confirm {
			switch msg.String() {
			case "y", "Y":
				return q, func() tea.Msg { return router.PopScreenMsg{} }
			case "n", "N", "esc":
				q.confirm = false
			}
			return q, nil
		}
		if msg.String() == "esc" {
			q.confirm = true
			return q, nil
		}
		if q.choices.Submitted() {
			return q, nil
		}
		q.choices = q.choices.Update(msg)
		if q.choices.Submitted() {
			return q, tea.Tick(answerDelay, func(time.Time) tea.Msg { return advanceMsg{} })
		}
	}
	return q, nil
}

// advance records the highlighted answer and either loads the next
// question or hands the result to the result screen.
func (q *QuizScreen) advance() tea.Cmd {
	if err := q.sess.Answer(q.choices.Chosen); err != nil {
		q.deps.Logger.Error("answer failed", zap.String("session", q.sess.ID), zap.Error(err))
		q.errMsg = err.Error()
		return nil
	}
	if !q.sess.Done() {
		q.loadCurrent()
		return nil
	}

	res, err := q.sess.Result(q.deps.Data.Characters)
	if err != nil {
		q.errMsg = err.Error()
		return nil
	}
	q.deps.Logger.Info("quiz finished",
		zap.String("session", res.ID),
		zap.String("code", res.Code),
		zap.Duration("duration", res.Duration))

	next := resultscreen.New(q.deps, res)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (q *QuizScreen) View(width, height int) string {
	if q.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.ErrorText.Render("Something went wrong:\n\n"+q.errMsg))
	}
	if q.confirm {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			components.Card("Quit the quiz? Your answers will be lost.\n\n[Y] Quit   [N] Keep going", 48))
	}

	cw := components.ContentWidth(width)
	done := float64(len(q.sess.History)) / float64(q.sess.Total())
	bar := components.NewProgressBar("", done, true, cw).View()

	content := strings.Join([]string{
		bar,
		components.Card(q.choices.View(cw-6), cw),
	}, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
