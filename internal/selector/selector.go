// Package selector decides which question of a slot to present next.
// A Selector holds only read-only configuration, so one value may serve any
// number of concurrent sessions; every call is a pure function of its inputs.
package selector

import (
	"errors"
	"fmt"

	"github.com/abhisek/shindan/internal/quiz"
)

var (
	// ErrQuestionOutOfRange is returned for a question number outside
	// [1, total slots].
	ErrQuestionOutOfRange = errors.New("question number out of range")

	// ErrMissingBalance is returned when the axis balance table lacks an axis.
	ErrMissingBalance = errors.New("missing axis balance entry")
)

// Context is the per-turn input supplied by the session host.
type Context struct {
	TypeHint       string             // "" when the player gave none
	Scores         quiz.Scores        // running totals after the last answer
	Answered       []quiz.Question    // questions already shown and answered, in order
	QuestionNumber int                // 1-indexed number of the question to select
	History        []quiz.AnswerEntry // answers so far, oldest first
}

// Selector picks questions from a bank.
type Selector struct {
	bank     *quiz.Bank
	tuning   Tuning
	observer Observer
}

// New creates a Selector over bank.
func New(bank *quiz.Bank, opts ...Option) *Selector {
	s := &Selector{
		bank:     bank,
		tuning:   DefaultTuning(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bank returns the bank the selector reads from.
func (s *Selector) Bank() *quiz.Bank { return s.bank }

// Tuning returns the active heuristic constants.
func (s *Selector) Tuning() Tuning { return s.tuning }

// Total returns the number of questions in a full path.
func (s *Selector) Total() int { return s.bank.TotalSlots() }

// InitialQuestions returns the base questions of the warm-up slots.
func (s *Selector) InitialQuestions() []quiz.Question {
	n := min(s.tuning.WarmupQuestions, len(s.bank.Slots))
	out := make([]quiz.Question, 0, n)
	for _, slot := range s.bank.Slots[:n] {
		out = append(out, slot.Base)
	}
	return out
}

// Next returns the question to show for c.QuestionNumber.
func (s *Selector) Next(c Context) (quiz.Question, error) {
	slot, ok := s.bank.Slot(c.QuestionNumber)
	if !ok {
		return quiz.Question{}, fmt.Errorf("%w: %d not in [1, %d]", ErrQuestionOutOfRange, c.QuestionNumber, s.bank.TotalSlots())
	}

	m := s.matchSlot(slot, c)
	d := Decision{
		QuestionNumber:   c.QuestionNumber,
		SlotID:           slot.ID,
		TypeHint:         c.TypeHint,
		Candidate:        m.question,
		CandidateFitness: m.fitness,
		Chosen:           m.question,
		Source:           m.source,
	}

	if c.QuestionNumber >= s.tuning.LatePhaseStart {
		trackers, err := ComputeTrackers(len(c.Answered), c.Answered, s.bank.Balance, s.bank.TotalSlots())
		if err != nil {
			return quiz.Question{}, err
		}
		d.MaxPriority, d.UrgentAxes = trackers.MaxPriority()

		if d.MaxPriority > s.tuning.UrgencyThreshold {
			if alt, ok := s.rebalance(slot, c, m.question, trackers, d.UrgentAxes); ok {
				d.Chosen = alt
				d.Source = SourceBalance
			}
		}
	}

	s.observer.ObserveDecision(d)
	return d.Chosen, nil
}

// coverageKey ranks a question for rebalancing: covering a most-urgent
// axis dominates, then the coverage score decides.
type coverageKey struct {
	urgent bool
	score  float64
}

func (k coverageKey) greater(o coverageKey) bool {
	if k.urgent != o.urgent {
		return k.urgent
	}
	return k.score > o.score
}

// rebalance returns the open alternative with the best coverage when it
// outranks the candidate. Variants whose gate is still closed are skipped;
// ties keep declaration order with the base question first.
func (s *Selector) rebalance(slot quiz.Slot, c Context, candidate quiz.Question, t Trackers, urgent []quiz.Axis) (quiz.Question, bool) {
	key := func(q quiz.Question) coverageKey {
		k := coverageKey{score: CoverageScore(q, t, s.tuning.CoverageFactor)}
		for _, a := range urgent {
			if q.Covers(a) {
				k.urgent = true
				break
			}
		}
		return k
	}

	best := slot.Base
	bestKey := key(slot.Base)
	for _, v := range slot.Variants.All() {
		if v.Conditions.Gated(c.QuestionNumber) {
			continue
		}
		if k := key(v.Question); k.greater(bestKey) {
			best, bestKey = v.Question, k
		}
	}

	if bestKey.greater(key(candidate)) {
		return best, true
	}
	return quiz.Question{}, false
}
