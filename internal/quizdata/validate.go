package quizdata

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/mod/semver"

	"github.com/abhisek/shindan/internal/quiz"
)

// SupportedMajor is the bank format major version this build reads.
const SupportedMajor = "v1"

// validateBank performs all structural checks on a decoded bank.
// Returns a combined error describing all problems found, or nil if valid.
func validateBank(b *quiz.Bank) error {
	var errs []string
	v := structValidator()

	if err := v.Struct(b); err != nil {
		errs = append(errs, fieldErrors("bank", err)...)
	}
	errs = append(errs, checkVersion("bank", b.Version)...)

	if len(b.Slots) < 3 {
		errs = append(errs, fmt.Sprintf("need at least 3 slots for the warm-up, got %d", len(b.Slots)))
	}

	seen := make(map[string]int)
	for i, slot := range b.Slots {
		if slot.ID != i+1 {
			errs = append(errs, fmt.Sprintf("slot at position %d has slotId %d", i+1, slot.ID))
		}

		if len(slot.Base.Coverage()) == 0 {
			errs = append(errs, fmt.Sprintf("slot %d: base question %q touches no axis", slot.ID, slot.Base.ID))
		}

		for _, q := range slot.Alternatives() {
			if prev, dup := seen[q.ID]; dup {
				errs = append(errs, fmt.Sprintf("question ID %q used in slot %d and slot %d", q.ID, prev, slot.ID))
			}
			seen[q.ID] = slot.ID
		}

		for _, vr := range slot.Variants.All() {
			prefix := fmt.Sprintf("slot %d variant %q", slot.ID, vr.ID)
			if err := v.Struct(vr); err != nil {
				errs = append(errs, fieldErrors(prefix, err)...)
			}
			if vr.Conditions == nil {
				continue
			}
			for _, p := range vr.Conditions.ScorePatterns {
				if !p.Axis.Valid() {
					errs = append(errs, fmt.Sprintf("%s: score pattern on unknown axis %q", prefix, p.Axis))
				}
			}
			for _, h := range vr.Conditions.TypeHints {
				if len(quiz.HintLetters(h)) != 4 {
					errs = append(errs, fmt.Sprintf("%s: type hint %q is not 4 letters", prefix, h))
				}
			}
		}
	}

	for _, axis := range quiz.AllAxes() {
		bt, ok := b.Balance[axis]
		if !ok {
			errs = append(errs, fmt.Sprintf("axis balance missing for %q", axis))
		} else if bt.Min > bt.Target || bt.Target > bt.Max {
			errs = append(errs, fmt.Sprintf("axis balance for %q needs min <= target <= max, got %d/%d/%d", axis, bt.Min, bt.Target, bt.Max))
		}

		label, ok := b.Axes[axis]
		if !ok {
			errs = append(errs, fmt.Sprintf("axis label missing for %q", axis))
			continue
		}
		pos, neg := axis.Letters()
		if label.Positive != string(pos) || label.Negative != string(neg) {
			errs = append(errs, fmt.Sprintf("axis %q letters must be %c/%c, got %s/%s", axis, pos, neg, label.Positive, label.Negative))
		}
	}
	for axis := range b.Balance {
		if !axis.Valid() {
			errs = append(errs, fmt.Sprintf("axis balance for unknown axis %q", axis))
		}
	}

	for letter := range b.Rules.TagInfluence {
		if len(letter) != 1 {
			errs = append(errs, fmt.Sprintf("tag influence key %q must be a single letter", letter))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("question bank validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// validateRoster checks that every type code maps to exactly one character.
func validateRoster(r characterFile) error {
	var errs []string

	if err := structValidator().Struct(r); err != nil {
		errs = append(errs, fieldErrors("characters", err)...)
	}
	errs = append(errs, checkVersion("characters", r.Version)...)

	byCode := make(map[string]int, len(r.Characters))
	for _, c := range r.Characters {
		if !quiz.ValidTypeCode(c.Code) {
			errs = append(errs, fmt.Sprintf("character %q has invalid code %q", c.Name, c.Code))
		}
		byCode[c.Code]++
	}
	for _, code := range quiz.AllTypeCodes() {
		switch n := byCode[code]; {
		case n == 0:
			errs = append(errs, fmt.Sprintf("no character for type %s", code))
		case n > 1:
			errs = append(errs, fmt.Sprintf("%d characters for type %s", n, code))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("character roster validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func checkVersion(doc, v string) []string {
	if !semver.IsValid(v) {
		return []string{fmt.Sprintf("%s version %q is not a semantic version", doc, v)}
	}
	if semver.Major(v) != SupportedMajor {
		return []string{fmt.Sprintf("%s version %s is not supported (want %s.x)", doc, v, SupportedMajor)}
	}
	return nil
}

func fieldErrors(prefix string, err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{fmt.Sprintf("%s: %v", prefix, err)}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fmt.Sprintf("%s: %s fails %q", prefix, fe.Namespace(), fe.Tag()))
	}
	return out
}
