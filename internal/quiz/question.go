package quiz

import (
	"encoding/json"
	"slices"
)

// Option is one answer choice with its per-axis score delta.
type Option struct {
	Text   string `json:"text" validate:"required"`
	Scores Scores `json:"scores"`
}

// Question is a prompt with two or more options and optional matching tags.
type Question struct {
	ID      string   `json:"id" validate:"required"`
	Prompt  string   `json:"question" validate:"required"`
	Options []Option `json:"options" validate:"min=2,dive"`
	Tags    []string `json:"tags,omitempty"`
}

// Covers reports whether at least one option moves axis a.
func (q Question) Covers(a Axis) bool {
	for _, o := range q.Options {
		if o.Scores.Touches(a) {
			return true
		}
	}
	return false
}

// Coverage returns the axes the question touches, in type-code order.
// Each axis appears once no matter how many options move it.
func (q Question) Coverage() []Axis {
	var out []Axis
	for _, a := range AllAxes() {
		if q.Covers(a) {
			out = append(out, a)
		}
	}
	return out
}

// HasTag reports whether the question carries the given tag.
func (q Question) HasTag(tag string) bool {
	return slices.Contains(q.Tags, tag)
}

// Direction is the sign a score pattern tests against.
type Direction string

const (
	DirectionPositive Direction = "positive"
	DirectionNegative Direction = "negative"
)

// ScorePattern prefers a variant when a running score has gone far enough
// in one direction.
type ScorePattern struct {
	Axis      Axis      `json:"axis" validate:"required"`
	Threshold int       `json:"threshold" validate:"gte=0"`
	Direction Direction `json:"direction" validate:"oneof=positive negative"`
}

// Matches tests the pattern against running scores. Positive patterns need
// score >= threshold; negative patterns need score <= -threshold.
func (p ScorePattern) Matches(s Scores) bool {
	v := s.Get(p.Axis)
	if p.Direction == DirectionPositive {
		return v >= p.Threshold
	}
	return v <= -p.Threshold
}

// Conditions describes when a variant should replace a slot's base question.
type Conditions struct {
	// AfterQuestion gates the variant: it is never chosen for question
	// numbers <= AfterQuestion. Zero means no gate.
	AfterQuestion int `json:"afterQuestion,omitempty" validate:"gte=0"`

	// TypeHints lists external 4-letter personality types this variant suits.
	TypeHints []string `json:"typeHints,omitempty" validate:"dive,len=4"`

	ScorePatterns []ScorePattern `json:"scorePatterns,omitempty" validate:"dive"`
}

// Gated reports whether the variant is still closed at questionNumber.
func (c *Conditions) Gated(questionNumber int) bool {
	return c != nil && c.AfterQuestion > 0 && questionNumber <= c.AfterQuestion
}

// Variant is a question that may substitute for a slot's base question.
type Variant struct {
	Question
	Conditions *Conditions `json:"conditions,omitempty"`
}

// VariantSet is the list of variants of a slot. The zero value is the
// empty set; use NoVariants or Variants to build one explicitly.
type VariantSet struct {
	items []Variant
}

// NoVariants returns the empty set: the slot always uses its base question.
func NoVariants() VariantSet {
	return VariantSet{}
}

// Variants returns a set holding vs in declaration order.
func Variants(vs ...Variant) VariantSet {
	if len(vs) == 0 {
		return NoVariants()
	}
	return VariantSet{items: slices.Clone(vs)}
}

// Empty reports whether the set has no variants.
func (s VariantSet) Empty() bool { return len(s.items) == 0 }

// Len returns the number of variants.
func (s VariantSet) Len() int { return len(s.items) }

// All returns the variants in declaration order.
func (s VariantSet) All() []Variant { return slices.Clone(s.items) }

// MarshalJSON encodes the set as a JSON array.
func (s VariantSet) MarshalJSON() ([]byte, error) {
	if s.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.items)
}

// UnmarshalJSON decodes a JSON array. null decodes to the empty set.
func (s *VariantSet) UnmarshalJSON(data []byte) error {
	var items []Variant
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = Variants(items...)
	return nil
}

// Slot is a fixed quiz position with one base question and its variants.
type Slot struct {
	ID       int        `json:"slotId" validate:"gte=1"`
	Category string     `json:"category" validate:"required"`
	Base     Question   `json:"baseQuestion"`
	Variants VariantSet `json:"variants"`
}

// Alternatives returns the base question followed by every variant's
// question, in declaration order.
func (s Slot) Alternatives() []Question {
	out := make([]Question, 0, 1+s.Variants.Len())
	out = append(out, s.Base)
	for _, v := range s.Variants.items {
		out = append(out, v.Question)
	}
	return out
}

// Contains reports whether id names this slot's base question or one of
// its variants.
func (s Slot) Contains(id string) bool {
	if s.Base.ID == id {
		return true
	}
	for _, v := range s.Variants.items {
		if v.ID == id {
			return true
		}
	}
	return false
}
