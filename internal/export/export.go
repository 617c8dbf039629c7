// Package export pushes pending assignments to the external task service,
// one at a time, most urgent first.
package export

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mwhite/hw/internal/assignment"
	"github.com/mwhite/hw/internal/gtasks"
	"github.com/mwhite/hw/internal/schedule"
)

// TaskService is the slice of the Google Tasks client the exporter drives.
type TaskService interface {
	FindOrCreateList(ctx context.Context, title string) (gtasks.TaskList, error)
	Insert(ctx context.Context, listID string, t gtasks.Task) error
}

// Result summarizes an export run. On failure it reflects progress up to the
// failing item: everything counted in Exported has been submitted and marked
// scheduled; the rest was not attempted.
type Result struct {
	ListTitle string
	Exported  int
	Skipped   int // already scheduled — idempotent skip, never duplicated
}

// Exporter runs the export loop.
type Exporter struct {
	Service TaskService
	Store   *assignment.Store
	Prefs   schedule.Preferences
	Weights assignment.Weights
	// Warn receives non-fatal preference problems (skipped activities).
	// nil means such problems are dropped silently, so callers should wire it.
	Warn func(error)
}

// Run submits every open, not-yet-scheduled assignment to the task list with
// the given title, in descending priority order. Submissions are strictly
// sequential with at most one request in flight, and the loop is fail-fast:
// the first error aborts the remainder, leaving already-submitted items
// marked scheduled and unattempted ones untouched.
func (e *Exporter) Run(ctx context.Context, listTitle string, now time.Time) (Result, error) {
	res := Result{ListTitle: listTitle}

	all, err := e.Store.List(assignment.ListOptions{})
	if err != nil {
		return res, fmt.Errorf("loading assignments: %w", err)
	}

	var pending []assignment.Assignment
	for _, a := range all {
		if a.Scheduled {
			res.Skipped++
			continue
		}
		pending = append(pending, a)
	}
	if len(pending) == 0 {
		return res, nil
	}

	if err := assignment.SortByScore(pending, now, e.Weights); err != nil {
		return res, err
	}

	list, err := e.Service.FindOrCreateList(ctx, listTitle)
	if err != nil {
		return res, err
	}

	for _, a := range pending {
		task, err := e.buildTask(a)
		if err != nil {
			return res, err
		}
		if err := e.Service.Insert(ctx, list.ID, task); err != nil {
			return res, fmt.Errorf("after %d of %d submitted: %w", res.Exported, len(pending), err)
		}
		if err := e.Store.MarkScheduled(a.ID); err != nil {
			return res, fmt.Errorf("marking #%d scheduled: %w", a.ID, err)
		}
		res.Exported++
	}

	return res, nil
}

// buildTask formats the external payload for one assignment. The due
// timestamp is the due date at UTC midnight; the Tasks API retains only the
// date part, so the computed placement time travels in the notes instead.
func (e *Exporter) buildTask(a assignment.Assignment) (gtasks.Task, error) {
	due, err := assignment.ParseDueDate(a.DueDate)
	if err != nil {
		return gtasks.Task{}, err
	}

	start := schedule.PlacementTime(due, e.Prefs, e.Warn)

	return gtasks.Task{
		Title: fmt.Sprintf("📚 %s (%s)", a.Title, a.Subject),
		Notes: fmt.Sprintf("Scheduled for: %s\nDifficulty: %s\nEst. Effort: %sh",
			To12Hour(start), assignment.DifficultyLabel(a.Difficulty), formatEffort(a.EffortHours)),
		Due: a.DueDate + "T00:00:00.000Z",
	}, nil
}

// To12Hour converts a 24h HH:MM time to a 12-hour display string.
func To12Hour(clock string) string {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return clock
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return clock
	}
	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	h = h % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%s %s", h, parts[1], ampm)
}

// formatEffort trims trailing zeros so 1.50 prints as 1.5 and 2.00 as 2.
func formatEffort(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}
