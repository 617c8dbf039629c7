package schedule

import (
	"fmt"
	"time"
)

// WeekendStart is the base availability on Saturdays and Sundays, when
// school hours don't apply.
const WeekendStart = "09:00"

// PreferenceDataError reports a malformed activity encountered during
// placement. The offending activity is skipped rather than failing the whole
// computation; callers receive the error through the warn callback so the
// skip is visible, not silent.
type PreferenceDataError struct {
	Activity string // name or ID, whichever identifies it best
	Reason   string
}

func (e *PreferenceDataError) Error() string {
	return fmt.Sprintf("preferences: activity %q skipped: %s", e.Activity, e.Reason)
}

// PlacementTime computes the earliest permissible start time (HH:MM) for
// working on an assignment due on the given date: after school on weekdays,
// 09:00 on weekends, and after every recurring activity on that weekday.
// Malformed activities are reported via warn (may be nil) and skipped.
func PlacementTime(dueDate time.Time, prefs Preferences, warn func(error)) string {
	dow := int(dueDate.Weekday()) // 0=Sunday..6=Saturday

	base := prefs.SchoolHours.End
	if dow == 0 || dow == 6 {
		base = WeekendStart
	}
	if !ValidClock(base) {
		// A broken school-hours value would poison every comparison below.
		if warn != nil {
			warn(&PreferenceDataError{Activity: "schoolHours", Reason: fmt.Sprintf("invalid end time %q", base)})
		}
		base = DefaultPreferences().SchoolHours.End
	}

	latest := base
	for _, a := range prefs.Activities {
		if !activeOn(a, dow) {
			continue
		}
		if !ValidClock(a.End) {
			if warn != nil {
				warn(&PreferenceDataError{Activity: activityRef(a), Reason: fmt.Sprintf("invalid end time %q", a.End)})
			}
			continue
		}
		// Zero-padded HH:MM compares correctly lexicographically. Only the
		// latest end matters — overlaps need no interval merging.
		if a.End > latest {
			latest = a.End
		}
	}
	return latest
}

// activeOn reports whether the activity recurs on the given weekday.
// A missing days set matches no day.
func activeOn(a Activity, dow int) bool {
	for _, d := range a.Days {
		if d == dow {
			return true
		}
	}
	return false
}

func activityRef(a Activity) string {
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}
