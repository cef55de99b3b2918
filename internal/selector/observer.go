package selector

import "github.com/abhisek/shindan/internal/quiz"

// Source says which stage of selection produced the returned question.
type Source string

const (
	SourceWarmup  Source = "warmup"  // inside the warm-up window
	SourceBase    Source = "base"    // no variant beat the floor
	SourceVariant Source = "variant" // a variant won the fitness match
	SourceBalance Source = "balance" // axis balance overrode the match
)

// Decision describes one call to Next.
type Decision struct {
	QuestionNumber int
	SlotID         int
	TypeHint       string

	// Candidate is the matcher's pick and its fitness.
	Candidate        quiz.Question
	CandidateFitness float64

	// Chosen is the question actually returned.
	Chosen quiz.Question
	Source Source

	// MaxPriority is the highest axis priority seen in the late phase,
	// or zero before it.
	MaxPriority float64
	UrgentAxes  []quiz.Axis
}

// Overridden reports whether axis balance replaced the matcher's pick.
func (d Decision) Overridden() bool {
	return d.Source == SourceBalance
}

// Observer receives selection decisions. Implementations must be safe for
// concurrent use when the Selector is shared between sessions.
type Observer interface {
	ObserveDecision(d Decision)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Decision)

// ObserveDecision calls f(d).
func (f ObserverFunc) ObserveDecision(d Decision) { f(d) }

type nopObserver struct{}

func (nopObserver) ObserveDecision(Decision) {}
