package assignment

import (
	"errors"
	"testing"
	"time"
)

// ref is mid-afternoon on a Tuesday; scoring must not depend on the clock.
var ref = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

// dueIn returns a due-date string the given number of days from ref.
func dueIn(days int) string {
	return ref.AddDate(0, 0, days).Format(DateLayout)
}

func TestDaysUntilDue(t *testing.T) {
	tests := []struct {
		due  string
		want int
	}{
		{dueIn(-3), -3},
		{dueIn(-1), -1},
		{dueIn(0), 0},
		{dueIn(1), 1},
		{dueIn(7), 7},
		{dueIn(30), 30},
	}
	for _, tt := range tests {
		got, err := DaysUntilDue(tt.due, ref)
		if err != nil {
			t.Fatalf("DaysUntilDue(%q): %v", tt.due, err)
		}
		if got != tt.want {
			t.Errorf("DaysUntilDue(%q) = %d, want %d", tt.due, got, tt.want)
		}
	}
}

func TestDaysUntilDueIgnoresClock(t *testing.T) {
	// 23:59 on the day before the due date is still one full day out.
	lateRef := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	got, err := DaysUntilDue("2026-03-11", lateRef)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("DaysUntilDue at 23:59 = %d, want 1", got)
	}
}

func TestScoreUrgencyBands(t *testing.T) {
	tests := []struct {
		name string
		days int
		want int
	}{
		{"overdue", -1, 100},
		{"long overdue", -30, 100},
		{"due today", 0, 80},
		{"due tomorrow", 1, 60},
		{"two days", 2, 40},
		{"three days", 3, 40},
		{"four days", 4, 20},
		{"seven days", 7, 20},
		{"eight days", 8, 5},
		{"next month", 30, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Assignment{Title: "x", DueDate: dueIn(tt.days)}
			got, err := Score(a, ref)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Score(days=%d) = %d, want %d", tt.days, got, tt.want)
			}
		})
	}
}

func TestScoreDifficultyWeights(t *testing.T) {
	tests := []struct {
		difficulty string
		want       int
	}{
		{DiffExtremelyEasy, 10},
		{DiffEasy, 20},
		{DiffMedium, 30},
		{DiffDifficult, 40},
		{DiffExtremelyDifficult, 50},
		{"nonsense", 0},
		{"", 0},
	}
	for _, tt := range tests {
		// Due far out so the urgency term is the constant 5.
		a := Assignment{DueDate: dueIn(30), Difficulty: tt.difficulty}
		got, err := Score(a, ref)
		if err != nil {
			t.Fatal(err)
		}
		if got != 5+tt.want {
			t.Errorf("Score(difficulty=%q) = %d, want %d", tt.difficulty, got, 5+tt.want)
		}
	}
}

func TestScoreEffortSaturates(t *testing.T) {
	tests := []struct {
		hours float64
		want  int // effort term only
	}{
		{0, 0},
		{0.5, 1},
		{5, 10},
		{10, 20},
		{11, 20},
		{100, 20},
	}
	for _, tt := range tests {
		a := Assignment{DueDate: dueIn(30), EffortHours: tt.hours}
		got, err := Score(a, ref)
		if err != nil {
			t.Fatal(err)
		}
		if got != 5+tt.want {
			t.Errorf("Score(effort=%g) = %d, want %d", tt.hours, got, 5+tt.want)
		}
	}
}

func TestScoreCombined(t *testing.T) {
	// Overdue, extremely easy, zero effort: the bands add independently.
	a := Assignment{DueDate: dueIn(-2), Difficulty: DiffExtremelyEasy}
	got, err := Score(a, ref)
	if err != nil {
		t.Fatal(err)
	}
	if got != 110 {
		t.Errorf("Score = %d, want 110", got)
	}
}

func TestScoreInvalidDueDate(t *testing.T) {
	a := Assignment{DueDate: "not-a-date"}
	_, err := Score(a, ref)
	if err == nil {
		t.Fatal("Score on malformed due date: want error, got nil")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("error type = %T, want *ValidationError", err)
	}
}

func TestScoreWithCustomWeights(t *testing.T) {
	w := DefaultWeights()
	w.Overdue = 500
	w.EffortCap = 4

	a := Assignment{DueDate: dueIn(-1), EffortHours: 10}
	got, err := ScoreWith(a, ref, w)
	if err != nil {
		t.Fatal(err)
	}
	if got != 504 {
		t.Errorf("ScoreWith = %d, want 504", got)
	}
}

func TestSortByScoreDescending(t *testing.T) {
	items := []Assignment{
		{ID: 1, DueDate: dueIn(30)},                                       // 5
		{ID: 2, DueDate: dueIn(-1), Difficulty: DiffExtremelyDifficult},   // 150
		{ID: 3, DueDate: dueIn(0)},                                        // 80
	}
	if err := SortByScore(items, ref, DefaultWeights()); err != nil {
		t.Fatal(err)
	}
	wantOrder := []int{2, 3, 1}
	for i, want := range wantOrder {
		if items[i].ID != want {
			t.Errorf("position %d: got #%d, want #%d", i, items[i].ID, want)
		}
	}
}

func TestSortByScoreStableTies(t *testing.T) {
	// Identical scores keep insertion order.
	items := []Assignment{
		{ID: 1, DueDate: dueIn(2)},
		{ID: 2, DueDate: dueIn(3)},
		{ID: 3, DueDate: dueIn(2)},
	}
	if err := SortByScore(items, ref, DefaultWeights()); err != nil {
		t.Fatal(err)
	}
	wantOrder := []int{1, 2, 3}
	for i, want := range wantOrder {
		if items[i].ID != want {
			t.Errorf("position %d: got #%d, want #%d", i, items[i].ID, want)
		}
	}
}

func TestSortByScoreBadDateLeavesSliceUntouched(t *testing.T) {
	items := []Assignment{
		{ID: 1, DueDate: dueIn(0)},
		{ID: 2, DueDate: "garbage"},
		{ID: 3, DueDate: dueIn(-1)},
	}
	err := SortByScore(items, ref, DefaultWeights())
	if err == nil {
		t.Fatal("want error on malformed due date")
	}
	for i, want := range []int{1, 2, 3} {
		if items[i].ID != want {
			t.Errorf("slice reordered despite error: position %d = #%d", i, items[i].ID)
		}
	}
}
