package selector

// Tuning holds the constants of the selection heuristic.
type Tuning struct {
	// WarmupQuestions is the number of leading questions that always use
	// the slot's base question.
	WarmupQuestions int

	ExactHintBonus  float64 // hint equals one of the variant's type hints
	HintLetterBonus float64 // per hint letter found in a variant's type hint
	NeutralBonus    float64 // no hint supplied, or variant has no hint constraint
	TagWeightFactor float64 // multiplied by a letter's tag weight per matching tag
	PatternBonus    float64 // per satisfied score pattern

	// FitnessFloor is the score a variant must exceed to replace the base.
	FitnessFloor float64

	// LatePhaseStart is the first question number where axis balance may
	// override personalization.
	LatePhaseStart int

	// UrgencyThreshold is the axis priority that must be exceeded before
	// balance overrides a candidate.
	UrgencyThreshold float64

	CoverageFactor float64 // multiplied by axis priority per covered axis
}

// DefaultTuning returns the production constants.
func DefaultTuning() Tuning {
	return Tuning{
		WarmupQuestions:  3,
		ExactHintBonus:   50,
		HintLetterBonus:  5,
		NeutralBonus:     10,
		TagWeightFactor:  10,
		PatternBonus:     20,
		FitnessFloor:     5,
		LatePhaseStart:   10,
		UrgencyThreshold: 1.5,
		CoverageFactor:   10,
	}
}

// Option configures a Selector.
type Option func(*Selector)

// WithTuning replaces the default heuristic constants.
func WithTuning(t Tuning) Option {
	return func(s *Selector) { s.tuning = t }
}

// WithObserver registers an observer for every selection decision.
func WithObserver(o Observer) Option {
	return func(s *Selector) {
		if o != nil {
			s.observer = o
		}
	}
}
