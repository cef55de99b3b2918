package selector

import (
	"fmt"

	"github.com/abhisek/shindan/internal/quiz"
)

// AxisReport is the coverage outcome of one axis over a full path.
type AxisReport struct {
	Count        int  `json:"count"`
	Target       int  `json:"target"`
	Min          int  `json:"min"`
	Max          int  `json:"max"`
	WithinBounds bool `json:"withinBounds"`
}

// PathReport is the result of ValidatePath.
type PathReport struct {
	Valid   bool                     `json:"valid"`
	PerAxis map[quiz.Axis]AxisReport `json:"perAxis"`
}

// ValidatePath checks that a completed path touches every axis between its
// configured min and max number of times. Each question counts once per
// axis it touches.
func ValidatePath(questions []quiz.Question, balance quiz.AxisBalance) (PathReport, error) {
	counts := countCoverage(questions)
	report := PathReport{
		Valid:   true,
		PerAxis: make(map[quiz.Axis]AxisReport, len(quiz.AllAxes())),
	}

	for _, axis := range quiz.AllAxes() {
		bt, ok := balance[axis]
		if !ok {
			return PathReport{}, fmt.Errorf("%w: %s", ErrMissingBalance, axis)
		}
		n := counts[axis]
		ar := AxisReport{
			Count:        n,
			Target:       bt.Target,
			Min:          bt.Min,
			Max:          bt.Max,
			WithinBounds: bt.Min <= n && n <= bt.Max,
		}
		if !ar.WithinBounds {
			report.Valid = false
		}
		report.PerAxis[axis] = ar
	}
	return report, nil
}
