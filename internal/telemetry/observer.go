// Package telemetry turns selection decisions and HTTP traffic into zap
// log lines and prometheus metrics.
package telemetry

import (
	"go.uber.org/zap"

	"github.com/abhisek/shindan/internal/selector"
)

// LogObserver logs every selection decision at debug level, and balance
// overrides at info.
func LogObserver(log *zap.Logger) selector.Observer {
	return selector.ObserverFunc(func(d selector.Decision) {
		fields := []zap.Field{
			zap.Int("question", d.QuestionNumber),
			zap.Int("slot", d.SlotID),
			zap.String("hint", d.TypeHint),
			zap.String("source", string(d.Source)),
			zap.String("candidate", d.Candidate.ID),
			zap.Float64("fitness", d.CandidateFitness),
			zap.String("chosen", d.Chosen.ID),
		}
		if d.MaxPriority > 0 {
			axes := make([]string, len(d.UrgentAxes))
			for i, a := range d.UrgentAxes {
				axes[i] = string(a)
			}
			fields = append(fields,
				zap.Float64("max_priority", d.MaxPriority),
				zap.Strings("urgent_axes", axes),
			)
		}

		if d.Overridden() {
			log.Info("axis balance override", fields...)
			return
		}
		log.Debug("question selected", fields...)
	})
}

// Observers fans a decision out to each non-nil observer in order.
func Observers(obs ...selector.Observer) selector.Observer {
	var list []selector.Observer
	for _, o := range obs {
		if o != nil {
			list = append(list, o)
		}
	}
	return selector.ObserverFunc(func(d selector.Decision) {
		for _, o := range list {
			o.ObserveDecision(d)
		}
	})
}
