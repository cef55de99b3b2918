package session

import (
	"fmt"

	"github.com/abhisek/shindan/internal/quiz"
	"github.com/abhisek/shindan/internal/selector"
)

// Strategy chooses an option index for the n-th question of a simulated run.
type Strategy struct {
	Name   string
	Choose func(q quiz.Question, n int) int
}

// Strategies returns the fixed answer patterns used to exercise a bank.
func Strategies() []Strategy {
	return []Strategy{
		{Name: "first", Choose: func(quiz.Question, int) int { return 0 }},
		{Name: "last", Choose: func(q quiz.Question, _ int) int { return len(q.Options) - 1 }},
		{Name: "alternate", Choose: func(q quiz.Question, n int) int {
			if n%2 == 0 {
				return len(q.Options) - 1
			}
			return 0
		}},
		{Name: "rotate", Choose: func(q quiz.Question, n int) int { return n % len(q.Options) }},
	}
}

// Simulate plays a full session with the given hint and strategy.
func Simulate(sel *selector.Selector, typeHint string, st Strategy) (*Session, error) {
	s, err := New(sel, typeHint)
	if err != nil {
		return nil, err
	}
	for !s.Done() {
		q, _ := s.Current()
		if err := s.Answer(st.Choose(q, s.Number())); err != nil {
			return nil, fmt.Errorf("%s/%s question %d: %w", typeHint, st.Name, s.Number(), err)
		}
	}
	return s, nil
}
