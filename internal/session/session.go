package session

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/shindan/internal/quiz"
	"github.com/abhisek/shindan/internal/selector"
)

var (
	// ErrFinished is returned when answering after the last question.
	ErrFinished = errors.New("session already finished")

	// ErrNotFinished is returned when asking for a result too early.
	ErrNotFinished = errors.New("session not finished")
)

// New starts a session. The warm-up questions are seeded immediately;
// later questions are selected one at a time as answers arrive.
func New(sel *selector.Selector, typeHint string) (*Session, error) {
	hint, err := quiz.NormalizeHint(typeHint)
	if err != nil {
		return nil, err
	}
	if sel.Total() == 0 {
		return nil, fmt.Errorf("question bank has no slots")
	}

	return &Session{
		ID:        uuid.NewString(),
		TypeHint:  hint,
		Selected:  sel.InitialQuestions(),
		StartTime: time.Now(),
		Phase:     PhaseActive,
		sel:       sel,
	}, nil
}

// Total returns the number of questions in the quiz.
func (s *Session) Total() int { return s.sel.Total() }

// Number returns the 1-indexed number of the current question. After the
// last answer it returns Total()+1.
func (s *Session) Number() int { return len(s.History) + 1 }

// Done reports whether every question has been answered.
func (s *Session) Done() bool { return s.Phase == PhaseDone }

// Current returns the question awaiting an answer.
func (s *Session) Current() (quiz.Question, bool) {
	i := len(s.History)
	if s.Done() || i >= len(s.Selected) {
		return quiz.Question{}, false
	}
	return s.Selected[i], true
}

// Answer records the chosen option of the current question, adds its
// deltas to the running scores and selects the next question.
func (s *Session) Answer(optionIndex int) error {
	q, ok := s.Current()
	if !ok {
		return ErrFinished
	}
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return fmt.Errorf("option %d out of range for question %s", optionIndex, q.ID)
	}
	opt := q.Options[optionIndex]

	s.Scores = s.Scores.Add(opt.Scores)
	s.History = append(s.History, quiz.AnswerEntry{
		QuestionID:     q.ID,
		Question:       q.Prompt,
		SelectedAnswer: opt.Text,
		Scores:         opt.Scores,
	})

	answered := len(s.History)
	if answered >= s.Total() {
		s.Phase = PhaseDone
		return nil
	}
	if answered < len(s.Selected) {
		// Still inside the seeded warm-up.
		return nil
	}

	next, err := s.sel.Next(selector.Context{
		TypeHint:       s.TypeHint,
		Scores:         s.Scores,
		Answered:       slices.Clone(s.Selected[:answered]),
		QuestionNumber: answered + 1,
		History:        slices.Clone(s.History),
	})
	if err != nil {
		return fmt.Errorf("select question %d: %w", answered+1, err)
	}
	s.Selected = append(s.Selected, next)
	return nil
}

// Result maps the final scores to a type code and character.
func (s *Session) Result(characters quiz.Characters) (*Result, error) {
	if !s.Done() {
		return nil, ErrNotFinished
	}
	code := quiz.TypeCode(s.Scores)
	c, ok := characters.ByCode(code)
	if !ok {
		return nil, fmt.Errorf("no character for type %s", code)
	}
	return &Result{
		ID:        s.ID,
		Code:      code,
		Character: c,
		Scores:    s.Scores,
		History:   slices.Clone(s.History),
		TypeHint:  s.TypeHint,
		Duration:  time.Since(s.StartTime),
	}, nil
}

// Validate checks the selected path against the bank's axis balance.
func (s *Session) Validate() (selector.PathReport, error) {
	return selector.ValidatePath(s.Selected, s.sel.Bank().Balance)
}
