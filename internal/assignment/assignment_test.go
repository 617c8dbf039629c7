package assignment

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := []string{
		`CREATE TABLE assignments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			subject TEXT NOT NULL DEFAULT '',
			due_date TEXT NOT NULL,
			difficulty TEXT NOT NULL DEFAULT 'medium',
			effort_hours REAL NOT NULL DEFAULT 0,
			done INTEGER DEFAULT 0,
			scheduled INTEGER DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			completed_at DATETIME
		)`,
		`CREATE TABLE kv (
			key TEXT PRIMARY KEY,
			value TEXT,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("creating schema: %v", err)
		}
	}
	return db
}

func TestAddAndGet(t *testing.T) {
	s := NewStore(setupTestDB(t))

	id, err := s.Add("Algebra worksheet", "Math", "2026-09-04", DiffDifficult, 1.5)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if id == 0 {
		t.Fatal("Add returned id 0")
	}

	a, err := s.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if a.Title != "Algebra worksheet" {
		t.Errorf("Title = %q", a.Title)
	}
	if a.Subject != "Math" {
		t.Errorf("Subject = %q", a.Subject)
	}
	if a.DueDate != "2026-09-04" {
		t.Errorf("DueDate = %q", a.DueDate)
	}
	if a.Difficulty != DiffDifficult {
		t.Errorf("Difficulty = %q", a.Difficulty)
	}
	if a.EffortHours != 1.5 {
		t.Errorf("EffortHours = %g", a.EffortHours)
	}
	if a.Done || a.Scheduled {
		t.Errorf("new assignment should be neither done nor scheduled")
	}
	if a.CompletedAt != nil {
		t.Errorf("CompletedAt = %v, want nil", a.CompletedAt)
	}
}

func TestAddRejectsBadDueDate(t *testing.T) {
	s := NewStore(setupTestDB(t))
	if _, err := s.Add("x", "", "9/4/2026", DiffMedium, 0); err == nil {
		t.Fatal("want error for non-ISO due date")
	}
}

func TestAddDefaultsDifficulty(t *testing.T) {
	s := NewStore(setupTestDB(t))
	id, err := s.Add("x", "", "2026-09-04", "", 0)
	if err != nil {
		t.Fatal(err)
	}
	a, err := s.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if a.Difficulty != DiffMedium {
		t.Errorf("Difficulty = %q, want %q", a.Difficulty, DiffMedium)
	}
}

func TestGetMissing(t *testing.T) {
	s := NewStore(setupTestDB(t))
	if _, err := s.Get(42); err == nil {
		t.Fatal("want error for missing id")
	}
}

func TestListFilters(t *testing.T) {
	s := NewStore(setupTestDB(t))

	id1, _ := s.Add("a", "Math", "2026-09-01", DiffEasy, 0)
	id2, _ := s.Add("b", "History", "2026-09-02", DiffEasy, 0)
	id3, _ := s.Add("c", "Math", "2026-09-03", DiffEasy, 0)

	if err := s.Complete(id2); err != nil {
		t.Fatal(err)
	}

	open, err := s.List(ListOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(open) != 2 || open[0].ID != id1 || open[1].ID != id3 {
		t.Errorf("open list = %v, want [%d %d]", ids(open), id1, id3)
	}

	all, err := s.List(ListOptions{ShowDone: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("all list has %d items, want 3", len(all))
	}

	math, err := s.List(ListOptions{Subject: "Math"})
	if err != nil {
		t.Fatal(err)
	}
	if len(math) != 2 {
		t.Errorf("math list has %d items, want 2", len(math))
	}
}

func ids(items []Assignment) []int {
	out := make([]int, len(items))
	for i, a := range items {
		out[i] = a.ID
	}
	return out
}

func TestCompleteAndUncomplete(t *testing.T) {
	s := NewStore(setupTestDB(t))
	id, _ := s.Add("x", "", "2026-09-04", DiffMedium, 0)

	if err := s.Complete(id); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	a, _ := s.Get(id)
	if !a.Done {
		t.Error("not done after Complete")
	}
	if a.CompletedAt == nil {
		t.Error("CompletedAt not set after Complete")
	}

	// Completing twice is an error, not a silent no-op.
	if err := s.Complete(id); err == nil {
		t.Error("second Complete should fail")
	}

	if err := s.Uncomplete(id); err != nil {
		t.Fatalf("Uncomplete: %v", err)
	}
	a, _ = s.Get(id)
	if a.Done {
		t.Error("still done after Uncomplete")
	}
	if a.CompletedAt != nil {
		t.Error("CompletedAt survives Uncomplete")
	}
}

func TestMarkScheduled(t *testing.T) {
	s := NewStore(setupTestDB(t))
	id, _ := s.Add("x", "", "2026-09-04", DiffMedium, 0)

	if err := s.MarkScheduled(id); err != nil {
		t.Fatalf("MarkScheduled: %v", err)
	}
	a, _ := s.Get(id)
	if !a.Scheduled {
		t.Error("not scheduled after MarkScheduled")
	}

	if err := s.MarkScheduled(999); err == nil {
		t.Error("MarkScheduled on missing id should fail")
	}
}

func TestDelete(t *testing.T) {
	s := NewStore(setupTestDB(t))
	id, _ := s.Add("x", "", "2026-09-04", DiffMedium, 0)

	if err := s.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(id); err == nil {
		t.Error("Get after Delete should fail")
	}
	if err := s.Delete(id); err == nil {
		t.Error("second Delete should fail")
	}
}

func TestEdit(t *testing.T) {
	s := NewStore(setupTestDB(t))
	id, _ := s.Add("draft", "English", "2026-09-04", DiffMedium, 1)

	title := "final draft"
	due := "2026-09-10"
	effort := 2.5
	if err := s.Edit(id, &title, nil, &due, nil, &effort); err != nil {
		t.Fatalf("Edit: %v", err)
	}

	a, _ := s.Get(id)
	if a.Title != title {
		t.Errorf("Title = %q, want %q", a.Title, title)
	}
	if a.Subject != "English" {
		t.Errorf("Subject changed to %q, should be untouched", a.Subject)
	}
	if a.DueDate != due {
		t.Errorf("DueDate = %q, want %q", a.DueDate, due)
	}
	if a.EffortHours != effort {
		t.Errorf("EffortHours = %g, want %g", a.EffortHours, effort)
	}
}

func TestEditRejectsBadDueDate(t *testing.T) {
	s := NewStore(setupTestDB(t))
	id, _ := s.Add("x", "", "2026-09-04", DiffMedium, 0)

	bad := "tomorrow-ish"
	if err := s.Edit(id, nil, nil, &bad, nil, nil); err == nil {
		t.Fatal("want error for malformed due date")
	}
	a, _ := s.Get(id)
	if a.DueDate != "2026-09-04" {
		t.Errorf("DueDate = %q, should be untouched after failed edit", a.DueDate)
	}
}

func TestCount(t *testing.T) {
	s := NewStore(setupTestDB(t))
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	s.Add("overdue", "", "2026-09-08", DiffMedium, 0)
	s.Add("today", "", "2026-09-10", DiffMedium, 0)
	id3, _ := s.Add("done", "", "2026-09-01", DiffMedium, 0)
	s.Complete(id3)

	open, total, overdue, err := s.Count(now)
	if err != nil {
		t.Fatal(err)
	}
	if open != 2 || total != 3 || overdue != 1 {
		t.Errorf("Count = (%d, %d, %d), want (2, 3, 1)", open, total, overdue)
	}
}
