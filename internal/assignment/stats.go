package assignment

import (
	"database/sql"
	"fmt"
	"time"
)

// Stats holds workload and completion metrics for assignments.
type Stats struct {
	Open            int
	Done            int
	Overdue         int
	CompletedWeek   int
	CompletedMonth  int
	OpenEffortHours float64
	BySubject       []SubjectStats
}

// SubjectStats holds a per-subject breakdown.
type SubjectStats struct {
	Subject     string
	Open        int
	Done        int
	EffortHours float64 // remaining effort across open assignments
}

// GetStats computes workload stats. now is the reference time for overdue
// and weekly/monthly calculations.
func GetStats(db *sql.DB, now time.Time) (*Stats, error) {
	stats := &Stats{}
	today := now.Format(DateLayout)

	err := db.QueryRow(`SELECT COUNT(*) FROM assignments WHERE done = 0`).Scan(&stats.Open)
	if err != nil {
		return nil, fmt.Errorf("counting open: %w", err)
	}
	err = db.QueryRow(`SELECT COUNT(*) FROM assignments WHERE done = 1`).Scan(&stats.Done)
	if err != nil {
		return nil, fmt.Errorf("counting done: %w", err)
	}
	err = db.QueryRow(`SELECT COUNT(*) FROM assignments WHERE done = 0 AND due_date < ?`, today).Scan(&stats.Overdue)
	if err != nil {
		return nil, fmt.Errorf("counting overdue: %w", err)
	}
	err = db.QueryRow(`SELECT COALESCE(SUM(effort_hours), 0) FROM assignments WHERE done = 0`).Scan(&stats.OpenEffortHours)
	if err != nil {
		return nil, fmt.Errorf("summing open effort: %w", err)
	}

	weekStart := startOfWeek(now)
	stats.CompletedWeek, err = countCompletedSince(db, weekStart)
	if err != nil {
		return nil, fmt.Errorf("counting weekly completions: %w", err)
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	stats.CompletedMonth, err = countCompletedSince(db, monthStart)
	if err != nil {
		return nil, fmt.Errorf("counting monthly completions: %w", err)
	}

	stats.BySubject, err = subjectBreakdown(db)
	if err != nil {
		return nil, fmt.Errorf("computing subject breakdown: %w", err)
	}

	return stats, nil
}

// startOfWeek returns the Monday at 00:00:00 of the week containing t.
func startOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday → 7 in ISO week numbering
	}
	monday := t.AddDate(0, 0, -(weekday - 1))
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, t.Location())
}

func countCompletedSince(db *sql.DB, since time.Time) (int, error) {
	var n int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM assignments WHERE done = 1 AND completed_at IS NOT NULL AND completed_at >= ?`,
		since.UTC().Format("2006-01-02 15:04:05"),
	).Scan(&n)
	return n, err
}

func subjectBreakdown(db *sql.DB) ([]SubjectStats, error) {
	rows, err := db.Query(
		`SELECT subject,
		        SUM(CASE WHEN done = 0 THEN 1 ELSE 0 END),
		        SUM(CASE WHEN done = 1 THEN 1 ELSE 0 END),
		        COALESCE(SUM(CASE WHEN done = 0 THEN effort_hours ELSE 0 END), 0)
		 FROM assignments GROUP BY subject ORDER BY subject ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SubjectStats
	for rows.Next() {
		var s SubjectStats
		if err := rows.Scan(&s.Subject, &s.Open, &s.Done, &s.EffortHours); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
