package quiz

import (
	"fmt"
	"slices"
	"strings"
)

// TypeHints returns the 16 self-reported personality types a player may
// supply before the quiz starts.
func TypeHints() []string {
	return []string{
		"INTJ", "INTP", "ENTJ", "ENTP",
		"INFJ", "INFP", "ENFJ", "ENFP",
		"ISTJ", "ISFJ", "ESTJ", "ESFJ",
		"ISTP", "ISFP", "ESTP", "ESFP",
	}
}

// NormalizeHint trims and uppercases a hint. An empty hint means "none".
// Anything else must be one of TypeHints.
func NormalizeHint(h string) (string, error) {
	h = strings.ToUpper(strings.TrimSpace(h))
	if h == "" {
		return "", nil
	}
	if !slices.Contains(TypeHints(), h) {
		return "", fmt.Errorf("unknown type hint %q", h)
	}
	return h, nil
}

// HintLetters splits a hint into its letters. Hints that are not exactly
// four characters yield no letters.
func HintLetters(h string) []string {
	if len(h) != 4 {
		return nil
	}
	return strings.Split(h, "")
}
