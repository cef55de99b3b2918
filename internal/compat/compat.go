// Package compat scores how well two character types work together.
package compat

import (
	"fmt"
	"strings"

	"github.com/abhisek/shindan/internal/quiz"
)

// Tier is a named compatibility band.
type Tier string

const (
	TierBest     Tier = "best"
	TierVeryGood Tier = "very-good"
	TierOrdinary Tier = "ordinary"
	TierEffort   Tier = "needs-effort"
)

// Result is the outcome of a compatibility check.
type Result struct {
	CodeA      string   `json:"codeA"`
	CodeB      string   `json:"codeB"`
	Percentage int      `json:"percentage"`
	Tier       Tier     `json:"tier"`
	Message    string   `json:"message"`
	Details    []string `json:"details"`
}

// matrix holds hand-tuned scores. Pairs not listed use the default
// calculation.
var matrix = map[string]map[string]int{
	"IGYS": {
		"IGYS": 70, "IGYC": 85, "IGAC": 80, "IGAS": 75,
		"ITYS": 65, "ITYC": 70, "ITAC": 75, "ITAS": 80,
		"SGYS": 60, "SGYC": 65, "SGAC": 70, "SGAS": 75,
		"STYS": 55, "STYC": 60, "STAC": 65, "STAS": 70,
	},
	"IGYC": {
		"IGYS": 85, "IGYC": 80, "IGAC": 90, "IGAS": 85,
		"ITYS": 70, "ITYC": 75, "ITAC": 80, "ITAS": 85,
		"SGYS": 75, "SGYC": 80, "SGAC": 85, "SGAS": 80,
		"STYS": 60, "STYC": 65, "STAC": 70, "STAS": 75,
	},
}

// Check returns the compatibility of type a with type b. Codes are
// case-insensitive; anything other than the 16 type codes is an error.
func Check(a, b string) (Result, error) {
	a, b = strings.ToUpper(a), strings.ToUpper(b)
	for _, c := range []string{a, b} {
		if !quiz.ValidTypeCode(c) {
			return Result{}, fmt.Errorf("invalid type code %q", c)
		}
	}

	pct, ok := matrix[a][b]
	if !ok {
		pct = defaultScore(a, b)
	}

	tier := tierFor(pct)
	return Result{
		CodeA:      a,
		CodeB:      b,
		Percentage: pct,
		Tier:       tier,
		Message:    messages[tier],
		Details:    details[tier],
	}, nil
}

// AllCodes returns the 16 type codes in display order.
func AllCodes() []string {
	return []string{
		"IGYS", "IGYC", "IGAC", "IGAS",
		"ITYS", "ITYC", "ITAC", "ITAS",
		"SGYS", "SGYC", "SGAC", "SGAS",
		"STYS", "STYC", "STAC", "STAS",
	}
}

// defaultScore starts at 50, adds 10 per shared letter and subtracts 10
// for identical codes, clamped to 0..100.
func defaultScore(a, b string) int {
	score := 50
	for i := range 4 {
		if a[i] == b[i] {
			score += 10
		}
	}
	if a == b {
		score -= 10
	}
	return min(100, max(0, score))
}

func tierFor(pct int) Tier {
	switch {
	case pct >= 85:
		return TierBest
	case pct >= 70:
		return TierVeryGood
	case pct >= 55:
		return TierOrdinary
	default:
		return TierEffort
	}
}

var messages = map[Tier]string{
	TierBest:     "A perfect match!",
	TierVeryGood: "A very good match",
	TierOrdinary: "An ordinary match",
	TierEffort:   "A match that takes effort",
}

var details = map[Tier][]string{
	TierBest: {
		"You bring out each other's strengths.",
		"Working together should create real synergy.",
		"Communication will come naturally.",
	},
	TierVeryGood: {
		"You complement each other well.",
		"A little adjustment is needed, but together you can achieve a lot.",
		"Understanding each other's point of view makes it even better.",
	},
	TierOrdinary: {
		"With some effort you can build a good relationship.",
		"Accepting your differences matters.",
		"Keep communication open.",
	},
	TierEffort: {
		"You will need to understand each other's different approaches.",
		"Recognising each other's strengths is key.",
		"Treat your differences as a chance to learn.",
	},
}
