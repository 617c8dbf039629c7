package assignment

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical due-date encoding (date only, no time).
const DateLayout = "2006-01-02"

// Difficulty levels, easiest to hardest.
const (
	DiffExtremelyEasy      = "extremely-easy"
	DiffEasy               = "easy"
	DiffMedium             = "medium"
	DiffDifficult          = "difficult"
	DiffExtremelyDifficult = "extremely-difficult"
)

// Assignment represents a single piece of homework.
type Assignment struct {
	ID          int
	Title       string
	Subject     string
	DueDate     string // YYYY-MM-DD
	Difficulty  string
	EffortHours float64
	Done        bool
	Scheduled   bool // true once exported to the external task list
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// ParseDifficulty validates and normalizes a difficulty string.
// Accepts full names and short aliases: xe, e, m, d, xd.
func ParseDifficulty(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "extremely-easy", "xeasy", "xe":
		return DiffExtremelyEasy, nil
	case "easy", "e":
		return DiffEasy, nil
	case "medium", "med", "m":
		return DiffMedium, nil
	case "difficult", "hard", "d", "h":
		return DiffDifficult, nil
	case "extremely-difficult", "xhard", "xd":
		return DiffExtremelyDifficult, nil
	default:
		return "", fmt.Errorf("invalid difficulty %q — valid values: extremely-easy (xe), easy (e), medium (m), difficult (d), extremely-difficult (xd)", s)
	}
}

// DifficultyLabel returns a human-readable difficulty string.
func DifficultyLabel(d string) string {
	switch d {
	case DiffExtremelyEasy:
		return "Extremely Easy"
	case DiffEasy:
		return "Easy"
	case DiffMedium:
		return "Medium"
	case DiffDifficult:
		return "Difficult"
	case DiffExtremelyDifficult:
		return "Extremely Difficult"
	default:
		return "?"
	}
}

// DifficultyIcon returns a colored icon for the difficulty.
func DifficultyIcon(d string) string {
	switch d {
	case DiffExtremelyEasy:
		return "🟢"
	case DiffEasy:
		return "🔵"
	case DiffMedium:
		return "🟡"
	case DiffDifficult:
		return "🟠"
	case DiffExtremelyDifficult:
		return "🔴"
	default:
		return "⚪"
	}
}

// Store handles assignment persistence.
type Store struct {
	db *sql.DB
}

// NewStore creates a new assignment store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ListOptions configures which assignments to return from List.
type ListOptions struct {
	// ShowDone includes completed assignments in the result.
	ShowDone bool
	// Subject filters to a single subject (exact match). Empty means all.
	Subject string
}

const assignmentColumns = `id, title, subject, due_date, difficulty, effort_hours, done, scheduled, created_at, updated_at, completed_at`

// Add creates a new assignment and returns its ID.
func (s *Store) Add(title, subject, dueDate, difficulty string, effortHours float64) (int, error) {
	if _, err := ParseDueDate(dueDate); err != nil {
		return 0, err
	}
	if difficulty == "" {
		difficulty = DiffMedium
	}

	res, err := s.db.Exec(
		`INSERT INTO assignments (title, subject, due_date, difficulty, effort_hours) VALUES (?, ?, ?, ?, ?)`,
		title, subject, dueDate, difficulty, effortHours,
	)
	if err != nil {
		return 0, err
	}

	id, _ := res.LastInsertId()
	return int(id), nil
}

// Get returns a single assignment by ID.
func (s *Store) Get(id int) (*Assignment, error) {
	row := s.db.QueryRow(`SELECT `+assignmentColumns+` FROM assignments WHERE id = ?`, id)
	a, err := scanAssignment(row)
	if err != nil {
		return nil, fmt.Errorf("assignment #%d not found", id)
	}
	return a, nil
}

// List returns assignments matching the given options, in insertion order.
func (s *Store) List(opts ListOptions) ([]Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments`

	var conditions []string
	var args []any

	if !opts.ShowDone {
		conditions = append(conditions, "done = 0")
	}
	if opts.Subject != "" {
		conditions = append(conditions, "subject = ?")
		args = append(args, opts.Subject)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// Complete marks an assignment as done.
func (s *Store) Complete(id int) error {
	res, err := s.db.Exec(
		`UPDATE assignments SET done = 1, completed_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND done = 0`,
		id,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("assignment #%d not found or already done", id)
	}
	return nil
}

// Uncomplete marks an assignment as not done.
func (s *Store) Uncomplete(id int) error {
	_, err := s.db.Exec(
		`UPDATE assignments SET done = 0, completed_at = NULL, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		id,
	)
	return err
}

// MarkScheduled records that an assignment has been exported to the external
// task list.
func (s *Store) MarkScheduled(id int) error {
	res, err := s.db.Exec(
		`UPDATE assignments SET scheduled = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		id,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("assignment #%d not found", id)
	}
	return nil
}

// Delete removes an assignment.
func (s *Store) Delete(id int) error {
	res, err := s.db.Exec(`DELETE FROM assignments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("assignment #%d not found", id)
	}
	return nil
}

// Edit updates any subset of an assignment's mutable fields.
// nil fields are left untouched.
func (s *Store) Edit(id int, title, subject, dueDate, difficulty *string, effortHours *float64) error {
	sets := []string{}
	args := []any{}

	if title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *title)
	}
	if subject != nil {
		sets = append(sets, "subject = ?")
		args = append(args, *subject)
	}
	if dueDate != nil {
		if _, err := ParseDueDate(*dueDate); err != nil {
			return err
		}
		sets = append(sets, "due_date = ?")
		args = append(args, *dueDate)
	}
	if difficulty != nil {
		sets = append(sets, "difficulty = ?")
		args = append(args, *difficulty)
	}
	if effortHours != nil {
		sets = append(sets, "effort_hours = ?")
		args = append(args, *effortHours)
	}
	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE assignments SET %s WHERE id = ?", strings.Join(sets, ", "))
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("assignment #%d not found", id)
	}
	return nil
}

// Count returns the number of open, total, and overdue assignments.
func (s *Store) Count(now time.Time) (open int, total int, overdue int, err error) {
	today := now.Format(DateLayout)

	if err = s.db.QueryRow(`SELECT COUNT(*) FROM assignments WHERE done = 0`).Scan(&open); err != nil {
		return
	}
	if err = s.db.QueryRow(`SELECT COUNT(*) FROM assignments`).Scan(&total); err != nil {
		return
	}
	err = s.db.QueryRow(`SELECT COUNT(*) FROM assignments WHERE done = 0 AND due_date < ?`, today).Scan(&overdue)
	return
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAssignment(row scanner) (*Assignment, error) {
	var a Assignment
	var doneInt, schedInt int
	var completedAt sql.NullTime
	var createdStr, updatedStr string

	err := row.Scan(&a.ID, &a.Title, &a.Subject, &a.DueDate, &a.Difficulty, &a.EffortHours,
		&doneInt, &schedInt, &createdStr, &updatedStr, &completedAt)
	if err != nil {
		return nil, err
	}

	a.Done = doneInt == 1
	a.Scheduled = schedInt == 1
	if completedAt.Valid {
		a.CompletedAt = &completedAt.Time
	}
	a.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdStr)
	a.UpdatedAt, _ = time.Parse("2006-01-02 15:04:05", updatedStr)

	return &a, nil
}
