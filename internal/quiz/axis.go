package quiz

// Axis identifies one of the four bipolar scoring dimensions.
type Axis string

const (
	AxisActionStyle Axis = "actionStyle"
	AxisSocialStyle Axis = "socialStyle"
	AxisMotivation  Axis = "motivation"
	AxisThinking    Axis = "thinking"
)

// AllAxes returns all axes in type-code order.
func AllAxes() []Axis {
	return []Axis{
		AxisActionStyle,
		AxisSocialStyle,
		AxisMotivation,
		AxisThinking,
	}
}

// Valid reports whether a is one of the four known axes.
func (a Axis) Valid() bool {
	switch a {
	case AxisActionStyle, AxisSocialStyle, AxisMotivation, AxisThinking:
		return true
	default:
		return false
	}
}

// Letters returns the type-code letters for the positive and the
// zero-or-negative side of the axis.
func (a Axis) Letters() (positive, negative byte) {
	switch a {
	case AxisActionStyle:
		return 'I', 'S'
	case AxisSocialStyle:
		return 'G', 'T'
	case AxisMotivation:
		return 'Y', 'A'
	case AxisThinking:
		return 'S', 'C'
	default:
		return 0, 0
	}
}

// AxisDisplayName returns a human-readable name for an axis.
func AxisDisplayName(a Axis) string {
	switch a {
	case AxisActionStyle:
		return "Action Style"
	case AxisSocialStyle:
		return "Social Style"
	case AxisMotivation:
		return "Motivation"
	case AxisThinking:
		return "Thinking"
	default:
		return string(a)
	}
}

// AxisLabel describes the two poles of an axis for display.
type AxisLabel struct {
	Name          string `json:"name" validate:"required"`
	Positive      string `json:"positive" validate:"required,len=1"`
	PositiveLabel string `json:"positiveLabel" validate:"required"`
	Negative      string `json:"negative" validate:"required,len=1"`
	NegativeLabel string `json:"negativeLabel" validate:"required"`
}

// Scores holds one integer accumulator per axis. It doubles as the
// per-option delta, where an absent axis decodes to zero.
type Scores struct {
	ActionStyle int `json:"actionStyle"`
	SocialStyle int `json:"socialStyle"`
	Motivation  int `json:"motivation"`
	Thinking    int `json:"thinking"`
}

// Get returns the value for the given axis. Unknown axes read as zero.
func (s Scores) Get(a Axis) int {
	switch a {
	case AxisActionStyle:
		return s.ActionStyle
	case AxisSocialStyle:
		return s.SocialStyle
	case AxisMotivation:
		return s.Motivation
	case AxisThinking:
		return s.Thinking
	default:
		return 0
	}
}

// Add returns the element-wise sum of s and d. Neither operand is modified.
func (s Scores) Add(d Scores) Scores {
	return Scores{
		ActionStyle: s.ActionStyle + d.ActionStyle,
		SocialStyle: s.SocialStyle + d.SocialStyle,
		Motivation:  s.Motivation + d.Motivation,
		Thinking:    s.Thinking + d.Thinking,
	}
}

// Touches reports whether the delta for axis a is nonzero.
func (s Scores) Touches(a Axis) bool {
	return s.Get(a) != 0
}

// TypeCode maps final scores to a 4-letter code, one letter per axis.
// A positive score picks the first letter; zero or negative picks the second.
func TypeCode(s Scores) string {
	code := make([]byte, 0, 4)
	for _, a := range AllAxes() {
		pos, neg := a.Letters()
		if s.Get(a) > 0 {
			code = append(code, pos)
		} else {
			code = append(code, neg)
		}
	}
	return string(code)
}

// AllTypeCodes returns the 16 possible type codes, first letters first.
func AllTypeCodes() []string {
	codes := []string{""}
	for _, a := range AllAxes() {
		pos, neg := a.Letters()
		next := make([]string, 0, len(codes)*2)
		for _, c := range codes {
			next = append(next, c+string(pos), c+string(neg))
		}
		codes = next
	}
	return codes
}

// ValidTypeCode reports whether code is one of the 16 type codes.
func ValidTypeCode(code string) bool {
	if len(code) != 4 {
		return false
	}
	for i, a := range AllAxes() {
		pos, neg := a.Letters()
		if code[i] != pos && code[i] != neg {
			return false
		}
	}
	return true
}
