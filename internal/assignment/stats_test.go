package assignment

import (
	"database/sql"
	"testing"
	"time"
)

func TestGetStats(t *testing.T) {
	db := setupTestDB(t)
	s := NewStore(db)
	// Wednesday; week starts Monday 2026-08-24, month starts 2026-08-01.
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	s.Add("overdue math", "Math", "2026-08-20", DiffMedium, 2)
	s.Add("open math", "Math", "2026-08-28", DiffEasy, 1)
	s.Add("open essay", "English", "2026-09-01", DiffDifficult, 3)

	insertCompleted(t, db, "done this week", "Math", "2026-08-25 10:00:00")
	insertCompleted(t, db, "done this month", "English", "2026-08-02 09:00:00")
	insertCompleted(t, db, "done long ago", "English", "2026-07-10 09:00:00")

	stats, err := GetStats(db, now)
	if err != nil {
		t.Fatal(err)
	}

	if stats.Open != 3 {
		t.Errorf("Open = %d, want 3", stats.Open)
	}
	if stats.Done != 3 {
		t.Errorf("Done = %d, want 3", stats.Done)
	}
	if stats.Overdue != 1 {
		t.Errorf("Overdue = %d, want 1", stats.Overdue)
	}
	if stats.OpenEffortHours != 6 {
		t.Errorf("OpenEffortHours = %g, want 6", stats.OpenEffortHours)
	}
	if stats.CompletedWeek != 1 {
		t.Errorf("CompletedWeek = %d, want 1", stats.CompletedWeek)
	}
	if stats.CompletedMonth != 2 {
		t.Errorf("CompletedMonth = %d, want 2", stats.CompletedMonth)
	}

	if len(stats.BySubject) != 2 {
		t.Fatalf("BySubject has %d entries, want 2", len(stats.BySubject))
	}
	// Alphabetical: English first.
	eng := stats.BySubject[0]
	if eng.Subject != "English" || eng.Open != 1 || eng.Done != 2 || eng.EffortHours != 3 {
		t.Errorf("English stats = %+v", eng)
	}
	math := stats.BySubject[1]
	if math.Subject != "Math" || math.Open != 2 || math.Done != 1 || math.EffortHours != 3 {
		t.Errorf("Math stats = %+v", math)
	}
}

func insertCompleted(t *testing.T, db *sql.DB, title, subject, completedAt string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO assignments (title, subject, due_date, done, completed_at) VALUES (?, ?, '2026-08-01', 1, ?)`,
		title, subject, completedAt,
	)
	if err != nil {
		t.Fatalf("seeding completed assignment: %v", err)
	}
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2026, 8, 24, 5, 0, 0, 0, time.UTC), "2026-08-24"},  // Monday
		{time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC), "2026-08-24"}, // Wednesday
		{time.Date(2026, 8, 30, 23, 0, 0, 0, time.UTC), "2026-08-24"}, // Sunday
	}
	for _, tt := range tests {
		got := startOfWeek(tt.in)
		if got.Format(DateLayout) != tt.want {
			t.Errorf("startOfWeek(%s) = %s, want %s", tt.in.Format(DateLayout), got.Format(DateLayout), tt.want)
		}
		if got.Hour() != 0 || got.Minute() != 0 {
			t.Errorf("startOfWeek(%s) not at midnight: %s", tt.in.Format(DateLayout), got)
		}
	}
}
