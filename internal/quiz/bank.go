package quiz

// BalanceTarget bounds how many questions of a full path should touch an axis.
type BalanceTarget struct {
	Min    int `json:"min" validate:"gte=0"`
	Max    int `json:"max" validate:"gtefield=Min"`
	Target int `json:"target" validate:"gte=0"`
}

// AxisBalance maps every axis to its coverage bounds.
type AxisBalance map[Axis]BalanceTarget

// TagInfluence lists the tags a type-hint letter prefers and how strongly.
type TagInfluence struct {
	PreferTags []string `json:"preferTags"`
	Weight     float64  `json:"weight" validate:"gte=0"`
}

// BranchingRules is the global configuration used by variant matching.
type BranchingRules struct {
	// TagInfluence is keyed by a single type-hint letter.
	TagInfluence map[string]TagInfluence `json:"tagInfluence" validate:"dive"`
}

// Bank is the full static question configuration: slots in order,
// branching rules, and axis balance. It is read-only once loaded.
type Bank struct {
	Version string             `json:"version" validate:"required"`
	Axes    map[Axis]AxisLabel `json:"axes" validate:"required,dive"`
	Slots   []Slot             `json:"questionSlots" validate:"min=1,dive"`
	Rules   BranchingRules     `json:"branchingRules"`
	Balance AxisBalance        `json:"axisBalance" validate:"required,dive"`
}

// TotalSlots returns the number of question positions in the bank.
func (b *Bank) TotalSlots() int {
	return len(b.Slots)
}

// Slot returns the slot for a 1-indexed question number.
func (b *Bank) Slot(questionNumber int) (Slot, bool) {
	if questionNumber < 1 || questionNumber > len(b.Slots) {
		return Slot{}, false
	}
	return b.Slots[questionNumber-1], true
}

// FindQuestion looks up any base or variant question by ID.
func (b *Bank) FindQuestion(id string) (Question, bool) {
	for _, s := range b.Slots {
		if s.Base.ID == id {
			return s.Base, true
		}
		for _, v := range s.Variants.items {
			if v.ID == id {
				return v.Question, true
			}
		}
	}
	return Question{}, false
}
