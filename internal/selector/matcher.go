package selector

import (
	"slices"

	"github.com/abhisek/shindan/internal/quiz"
)

// match is the matcher's pick for one slot.
type match struct {
	question quiz.Question
	fitness  float64
	source   Source
}

// Fitness scores how well a variant suits the selection context. A variant
// with no conditions, or whose gate is still closed, scores 0.
func Fitness(v quiz.Variant, c Context, rules quiz.BranchingRules, t Tuning) float64 {
	cond := v.Conditions
	if cond == nil {
		return 0
	}
	if cond.Gated(c.QuestionNumber) {
		return 0
	}

	var score float64
	letters := quiz.HintLetters(c.TypeHint)

	if len(cond.TypeHints) > 0 {
		if c.TypeHint != "" {
			if slices.Contains(cond.TypeHints, c.TypeHint) {
				score += t.ExactHintBonus
			}
			for _, target := range cond.TypeHints {
				targetLetters := quiz.HintLetters(target)
				for _, l := range letters {
					if slices.Contains(targetLetters, l) {
						score += t.HintLetterBonus
					}
				}
			}
		} else {
			score += t.NeutralBonus
		}
	} else {
		score += t.NeutralBonus
	}

	if c.TypeHint != "" && len(v.Tags) > 0 {
		for _, l := range letters {
			inf, ok := rules.TagInfluence[l]
			if !ok {
				continue
			}
			var hits int
			for _, tag := range v.Tags {
				if slices.Contains(inf.PreferTags, tag) {
					hits++
				}
			}
			score += float64(hits) * inf.Weight * t.TagWeightFactor
		}
	}

	for _, p := range cond.ScorePatterns {
		if p.Matches(c.Scores) {
			score += t.PatternBonus
		}
	}

	return score
}

// matchSlot picks the best-fitting variant of a slot, or its base question
// when inside the warm-up window, when the slot has no variants, or when no
// variant beats the fitness floor. Ties keep the first declared variant.
func (s *Selector) matchSlot(slot quiz.Slot, c Context) match {
	if c.QuestionNumber <= s.tuning.WarmupQuestions {
		return match{question: slot.Base, source: SourceWarmup}
	}
	if slot.Variants.Empty() {
		return match{question: slot.Base, source: SourceBase}
	}

	best := match{question: slot.Base, source: SourceBase}
	for _, v := range slot.Variants.All() {
		f := Fitness(v, c, s.bank.Rules, s.tuning)
		if f > best.fitness {
			best = match{question: v.Question, fitness: f, source: SourceVariant}
		}
	}

	if best.fitness > s.tuning.FitnessFloor {
		return best
	}
	return match{question: slot.Base, fitness: best.fitness, source: SourceBase}
}
