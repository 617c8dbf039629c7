package schedule

import (
	"errors"
	"testing"
	"time"
)

var (
	tuesday  = time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	sunday   = time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
)

func failWarn(t *testing.T) func(error) {
	t.Helper()
	return func(err error) {
		t.Errorf("unexpected warning: %v", err)
	}
}

func TestPlacementWeekdayAfterSchool(t *testing.T) {
	got := PlacementTime(tuesday, DefaultPreferences(), failWarn(t))
	if got != "15:00" {
		t.Errorf("PlacementTime = %q, want 15:00", got)
	}
}

func TestPlacementWeekend(t *testing.T) {
	for _, day := range []time.Time{saturday, sunday} {
		got := PlacementTime(day, DefaultPreferences(), failWarn(t))
		if got != "09:00" {
			t.Errorf("PlacementTime(%s) = %q, want 09:00", day.Weekday(), got)
		}
	}
}

func TestPlacementActivityPushesLater(t *testing.T) {
	prefs := DefaultPreferences()
	prefs.Activities = []Activity{
		{ID: "1", Name: "Soccer", Start: "16:00", End: "17:30", Days: []int{2}}, // Tuesday
	}
	got := PlacementTime(tuesday, prefs, failWarn(t))
	if got != "17:30" {
		t.Errorf("PlacementTime = %q, want 17:30", got)
	}
}

func TestPlacementLatestActivityWins(t *testing.T) {
	prefs := DefaultPreferences()
	prefs.Activities = []Activity{
		{ID: "1", Name: "Band", Start: "15:30", End: "16:00", Days: []int{2}},
		{ID: "2", Name: "Soccer", Start: "17:00", End: "18:00", Days: []int{2}},
		{ID: "3", Name: "Chess", Start: "15:00", End: "16:30", Days: []int{2}},
	}
	got := PlacementTime(tuesday, prefs, failWarn(t))
	if got != "18:00" {
		t.Errorf("PlacementTime = %q, want 18:00", got)
	}
}

func TestPlacementActivityEndingBeforeBaseIgnored(t *testing.T) {
	prefs := DefaultPreferences()
	prefs.Activities = []Activity{
		{ID: "1", Name: "Morning run", Start: "06:00", End: "07:00", Days: []int{2}},
	}
	got := PlacementTime(tuesday, prefs, failWarn(t))
	if got != "15:00" {
		t.Errorf("PlacementTime = %q, want 15:00", got)
	}
}

func TestPlacementOtherDayActivityIgnored(t *testing.T) {
	prefs := DefaultPreferences()
	prefs.Activities = []Activity{
		{ID: "1", Name: "Soccer", Start: "16:00", End: "19:00", Days: []int{3}}, // Wednesday only
	}
	got := PlacementTime(tuesday, prefs, failWarn(t))
	if got != "15:00" {
		t.Errorf("PlacementTime = %q, want 15:00", got)
	}
}

func TestPlacementMissingDaysMatchesNothing(t *testing.T) {
	prefs := DefaultPreferences()
	prefs.Activities = []Activity{
		{ID: "1", Name: "Mystery", Start: "16:00", End: "19:00"},
	}
	got := PlacementTime(tuesday, prefs, failWarn(t))
	if got != "15:00" {
		t.Errorf("PlacementTime = %q, want 15:00", got)
	}
}

func TestPlacementInvalidActivityWarnsAndSkips(t *testing.T) {
	prefs := DefaultPreferences()
	prefs.Activities = []Activity{
		{ID: "1", Name: "Broken", Start: "16:00", End: "late", Days: []int{2}},
		{ID: "2", Name: "Soccer", Start: "16:00", End: "17:00", Days: []int{2}},
	}

	var warned []error
	got := PlacementTime(tuesday, prefs, func(err error) { warned = append(warned, err) })

	if got != "17:00" {
		t.Errorf("PlacementTime = %q, want 17:00 (broken activity skipped)", got)
	}
	if len(warned) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warned))
	}
	var perr *PreferenceDataError
	if !errors.As(warned[0], &perr) {
		t.Fatalf("warning type = %T, want *PreferenceDataError", warned[0])
	}
	if perr.Activity != "Broken" {
		t.Errorf("warning names %q, want Broken", perr.Activity)
	}
}

func TestPlacementInvalidSchoolHoursFallsBack(t *testing.T) {
	prefs := Preferences{SchoolHours: SchoolHours{Start: "08:00", End: "3pm"}}

	var warned []error
	got := PlacementTime(tuesday, prefs, func(err error) { warned = append(warned, err) })

	if got != "15:00" {
		t.Errorf("PlacementTime = %q, want default 15:00", got)
	}
	if len(warned) != 1 {
		t.Errorf("got %d warnings, want 1", len(warned))
	}
}

func TestPlacementNilWarnDoesNotPanic(t *testing.T) {
	prefs := DefaultPreferences()
	prefs.Activities = []Activity{
		{ID: "1", Name: "Broken", Start: "16:00", End: "late", Days: []int{2}},
	}
	got := PlacementTime(tuesday, prefs, nil)
	if got != "15:00" {
		t.Errorf("PlacementTime = %q, want 15:00", got)
	}
}
