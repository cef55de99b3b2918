package selector

import (
	"fmt"

	"github.com/abhisek/shindan/internal/quiz"
)

// Tracker is the coverage state of one axis part-way through a path.
type Tracker struct {
	Current   int // selected questions touching the axis
	Target    int
	Remaining int // questions still to be shown
	Needed    int // max(0, Target - Current)

	// Priority is Needed / Remaining, or 0 once Remaining reaches 0.
	Priority float64
}

// Trackers maps every axis to its tracker.
type Trackers map[quiz.Axis]Tracker

// ComputeTrackers counts axis coverage of the selected questions and
// derives how urgently each axis still needs questions. answered is the
// number of questions already answered out of total.
func ComputeTrackers(answered int, selected []quiz.Question, balance quiz.AxisBalance, total int) (Trackers, error) {
	remaining := max(total-answered, 0)

	counts := countCoverage(selected)
	trackers := make(Trackers, len(quiz.AllAxes()))
	for _, axis := range quiz.AllAxes() {
		bt, ok := balance[axis]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingBalance, axis)
		}

		needed := max(bt.Target-counts[axis], 0)
		var priority float64
		if remaining > 0 {
			priority = float64(needed) / float64(remaining)
		}

		trackers[axis] = Tracker{
			Current:   counts[axis],
			Target:    bt.Target,
			Remaining: remaining,
			Needed:    needed,
			Priority:  priority,
		}
	}
	return trackers, nil
}

// MaxPriority returns the highest priority and every axis that has it,
// in type-code order.
func (t Trackers) MaxPriority() (float64, []quiz.Axis) {
	var best float64
	var axes []quiz.Axis
	for _, axis := range quiz.AllAxes() {
		tr, ok := t[axis]
		if !ok {
			continue
		}
		switch {
		case axes == nil || tr.Priority > best:
			best = tr.Priority
			axes = []quiz.Axis{axis}
		case tr.Priority == best:
			axes = append(axes, axis)
		}
	}
	return best, axes
}

// CoverageScore sums priority × factor over the axes q touches.
func CoverageScore(q quiz.Question, t Trackers, factor float64) float64 {
	var score float64
	for _, axis := range q.Coverage() {
		score += t[axis].Priority * factor
	}
	return score
}

// countCoverage counts, per axis, the questions touching it.
func countCoverage(questions []quiz.Question) map[quiz.Axis]int {
	counts := make(map[quiz.Axis]int, len(quiz.AllAxes()))
	for _, q := range questions {
		for _, axis := range q.Coverage() {
			counts[axis]++
		}
	}
	return counts
}
