// Package screens holds what the terminal screens share.
package screens

import (
	"go.uber.org/zap"

	"github.com/abhisek/shindan/internal/advice"
	"github.com/abhisek/shindan/internal/quizdata"
	"github.com/abhisek/shindan/internal/selector"
	"github.com/abhisek/shindan/internal/store"
)

// Deps are the collaborators every screen may need. Results may be nil,
// in which case results are neither saved nor listed.
type Deps struct {
	Data     *quizdata.Data
	Selector *selector.Selector
	Results  store.ResultRepo
	Advice   *advice.Service
	Logger   *zap.Logger
}

// WithDefaults fills nil optional fields.
func (d Deps) WithDefaults() Deps {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Advice == nil {
		d.Advice = advice.NewService(nil, advice.DefaultConfig(), d.Logger)
	}
	return d
}
