package assignment

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// ValidationError reports malformed assignment input, such as an unparsable
// due date. Scoring and grouping fail loudly on bad input instead of
// producing a meaningless comparison result.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ParseDueDate parses a YYYY-MM-DD due date, returning a *ValidationError on
// malformed input. The result is a midnight UTC instant so day arithmetic is
// exact regardless of DST.
func ParseDueDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "due date", Value: s, Err: err}
	}
	return t, nil
}

// midnightUTC strips the time component and relocates to UTC so that
// differences between two normalized days are exact multiples of 24h.
func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysUntilDue returns the whole-day count from ref to the due date.
// Negative means overdue, zero means due today.
func DaysUntilDue(dueDate string, ref time.Time) (int, error) {
	due, err := ParseDueDate(dueDate)
	if err != nil {
		return 0, err
	}
	diff := midnightUTC(due).Sub(midnightUTC(ref))
	return int(math.Ceil(diff.Hours() / 24)), nil
}

// Weights holds the priority-score weights. The defaults are the canonical
// behavior; config may override individual magnitudes.
type Weights struct {
	Overdue     int // due date in the past
	DueToday    int
	DueTomorrow int
	DueSoon     int // 2–3 days out
	DueThisWeek int // 4–7 days out
	DueLater    int // more than a week out
	EffortCap   int // ceiling on the effort term
}

// DefaultWeights returns the default priority-score weights.
func DefaultWeights() Weights {
	return Weights{
		Overdue:     100,
		DueToday:    80,
		DueTomorrow: 60,
		DueSoon:     40,
		DueThisWeek: 20,
		DueLater:    5,
		EffortCap:   20,
	}
}

// difficultyWeight is a fixed lookup; unknown difficulties contribute 0.
func difficultyWeight(d string) int {
	switch d {
	case DiffExtremelyDifficult:
		return 50
	case DiffDifficult:
		return 40
	case DiffMedium:
		return 30
	case DiffEasy:
		return 20
	case DiffExtremelyEasy:
		return 10
	default:
		return 0
	}
}

// urgencyTerm maps days-until-due onto strict, mutually exclusive bands.
func urgencyTerm(days int, w Weights) int {
	switch {
	case days < 0:
		return w.Overdue
	case days == 0:
		return w.DueToday
	case days == 1:
		return w.DueTomorrow
	case days <= 3:
		return w.DueSoon
	case days <= 7:
		return w.DueThisWeek
	default:
		return w.DueLater
	}
}

// Score computes the priority score for an assignment against a reference
// date using the default weights. Higher means more urgent. The score is a
// pure function of the assignment and the reference date.
func Score(a Assignment, ref time.Time) (int, error) {
	return ScoreWith(a, ref, DefaultWeights())
}

// ScoreWith computes the priority score with explicit weights.
// The result is the sum of three terms: urgency band, difficulty weight,
// and effort (2 points per hour, capped so long tasks never drown urgency).
func ScoreWith(a Assignment, ref time.Time, w Weights) (int, error) {
	days, err := DaysUntilDue(a.DueDate, ref)
	if err != nil {
		return 0, err
	}

	score := urgencyTerm(days, w)
	score += difficultyWeight(a.Difficulty)

	effort := int(math.Min(a.EffortHours*2, float64(w.EffortCap)))
	if effort > 0 {
		score += effort
	}

	return score, nil
}

// SortByScore sorts assignments in-place from highest to lowest priority
// score. Ties preserve the original relative order (stable), keeping list
// output reproducible. Assignments whose due date fails to parse are an
// error; the slice is left untouched in that case.
func SortByScore(assignments []Assignment, ref time.Time, w Weights) error {
	scores := make([]int, len(assignments))
	for i, a := range assignments {
		s, err := ScoreWith(a, ref, w)
		if err != nil {
			return err
		}
		scores[i] = s
	}

	idx := make([]int, len(assignments))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return scores[idx[i]] > scores[idx[j]]
	})

	sorted := make([]Assignment, len(assignments))
	for i, j := range idx {
		sorted[i] = assignments[j]
	}
	copy(assignments, sorted)
	return nil
}
