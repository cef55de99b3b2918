package quiz

import "strings"

// Skills is a 1..5 rating per work skill, used for the result radar.
type Skills struct {
	Leadership    int `json:"leadership" validate:"gte=1,lte=5"`
	Communication int `json:"communication" validate:"gte=1,lte=5"`
	Planning      int `json:"planning" validate:"gte=1,lte=5"`
	Creativity    int `json:"creativity" validate:"gte=1,lte=5"`
	Teamwork      int `json:"teamwork" validate:"gte=1,lte=5"`
	Technical     int `json:"technical" validate:"gte=1,lte=5"`
}

// Character is the archetype a type code resolves to.
type Character struct {
	Code         string   `json:"code" validate:"required,len=4"`
	Name         string   `json:"name" validate:"required"`
	Subtitle     string   `json:"subtitle"`
	Icon         string   `json:"icon"`
	Personality  string   `json:"personality" validate:"required"`
	Strengths    []string `json:"strengths" validate:"min=1"`
	Weaknesses   []string `json:"weaknesses" validate:"min=1"`
	HiddenFace   string   `json:"hiddenFace"`
	Advice       string   `json:"advice" validate:"required"`
	SuitableJobs []string `json:"suitableJobs"`
	Skills       Skills   `json:"skills"`
}

// Characters is the static roster.
type Characters []Character

// ByCode returns the character for a type code, case-insensitively.
func (cs Characters) ByCode(code string) (Character, bool) {
	code = strings.ToUpper(code)
	for _, c := range cs {
		if c.Code == code {
			return c, true
		}
	}
	return Character{}, false
}

// AnswerEntry records one answered question. History is append-only.
type AnswerEntry struct {
	QuestionID     string `json:"questionId"`
	Question       string `json:"question"`
	SelectedAnswer string `json:"selectedAnswer"`
	Scores         Scores `json:"scores"`
}
