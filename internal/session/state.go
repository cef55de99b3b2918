// Package session hosts one player's run through the quiz. A Session is
// owned by its caller and is not safe for concurrent use.
package session

import (
	"time"

	"github.com/abhisek/shindan/internal/quiz"
	"github.com/abhisek/shindan/internal/selector"
)

// Phase represents the current phase of the session.
type Phase int

const (
	PhaseActive Phase = iota // Serving questions
	PhaseDone                // Every slot answered
)

// Session tracks the runtime state of one quiz run.
type Session struct {
	// ID identifies the run; it becomes the saved result's ID.
	ID string

	// TypeHint is the normalised self-reported type, or "" when skipped.
	TypeHint string

	// Scores is the running total of every chosen option's deltas.
	Scores quiz.Scores

	// History records each answer in order.
	History []quiz.AnswerEntry

	// Selected holds the question shown at each position so far.
	// Selected[i] is question i+1.
	Selected []quiz.Question

	// StartTime is when the session began.
	StartTime time.Time

	// Phase is the current session phase.
	Phase Phase

	sel *selector.Selector
}

// Result is the outcome of a finished session.
type Result struct {
	ID        string
	Code      string
	Character quiz.Character
	Scores    quiz.Scores
	History   []quiz.AnswerEntry
	TypeHint  string
	Duration  time.Duration
}
