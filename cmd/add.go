package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwhite/hw/internal/assignment"
	"github.com/mwhite/hw/internal/store"
	"github.com/mwhite/hw/internal/ui"
)

var (
	addSubject    string
	addDue        string
	addDifficulty string
	addEffort     string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Capture an assignment before it sneaks up on you",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addSubject, "subject", "s", "", "Subject (e.g. Math, History)")
	addCmd.Flags().StringVarP(&addDue, "due", "d", "", "Due date (YYYY-MM-DD, tomorrow, next-week)")
	addCmd.Flags().StringVar(&addDifficulty, "difficulty", "medium", "Difficulty: extremely-easy, easy, medium, difficult, extremely-difficult")
	addCmd.Flags().StringVarP(&addEffort, "effort", "e", "1", "Estimated effort in hours (append 'm' for minutes, e.g. 90m)")
	addCmd.MarkFlagRequired("due")
}

func runAdd(_ *cobra.Command, args []string) error {
	title := strings.Join(args, " ")
	now := time.Now()

	due, err := parseDueInput(addDue, now)
	if err != nil {
		return err
	}

	difficulty, err := assignment.ParseDifficulty(addDifficulty)
	if err != nil {
		return fmt.Errorf("%w\n  Use: %s", err, ui.Accent.Render("--difficulty xe|e|m|d|xd"))
	}

	effort, err := parseEffort(addEffort)
	if err != nil {
		return err
	}

	db, err := store.Open()
	if err != nil {
		return err
	}
	defer db.Close()

	as := assignment.NewStore(db.Conn())
	id, err := as.Add(title, addSubject, due, difficulty, effort)
	if err != nil {
		return err
	}

	fmt.Printf("  %s Added %s %s\n", ui.Success.Render("✓"), assignment.DifficultyIcon(difficulty), ui.Accent.Render(fmt.Sprintf("#%d", id)))
	fmt.Printf("    %s\n", title)
	if addSubject != "" {
		fmt.Printf("    Subject: %s\n", ui.Muted.Render(addSubject))
	}
	fmt.Printf("    Due: %s\n", ui.Muted.Render(due))
	if effort > 0 {
		fmt.Printf("    Effort: %s\n", ui.Muted.Render(fmt.Sprintf("%gh", effort)))
	}
	fmt.Println()

	return nil
}

// schoolYearEnd returns June 30 of the current school year: the upcoming one
// when we're already past June.
func schoolYearEnd(now time.Time) time.Time {
	year := now.Year()
	if now.Month() > time.June {
		year++
	}
	return time.Date(year, time.June, 30, 0, 0, 0, 0, now.Location())
}

// parseDueInput resolves a due-date argument to YYYY-MM-DD and enforces the
// entry window: strictly after today, no later than the school-year end.
func parseDueInput(s string, now time.Time) (string, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var due time.Time
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tomorrow", "tom":
		due = today.AddDate(0, 0, 1)
	case "next-week", "nextweek", "nw":
		due = today.AddDate(0, 0, 7)
	default:
		parsed, err := time.Parse(assignment.DateLayout, s)
		if err != nil {
			return "", fmt.Errorf("invalid due date %q — use YYYY-MM-DD, tomorrow, or next-week", s)
		}
		due = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, now.Location())
	}

	if !due.After(today) {
		return "", fmt.Errorf("due date %s must be after today", due.Format(assignment.DateLayout))
	}
	if end := schoolYearEnd(now); due.After(end) {
		return "", fmt.Errorf("due date %s is past the school year end (%s)",
			due.Format(assignment.DateLayout), end.Format(assignment.DateLayout))
	}

	return due.Format(assignment.DateLayout), nil
}

// parseEffort reads an effort estimate in hours, accepting an 'm' suffix for
// minutes (converted to hours, as the score operates on hours).
func parseEffort(s string) (float64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	minutes := false
	if strings.HasSuffix(s, "m") {
		minutes = true
		s = strings.TrimSuffix(s, "m")
	} else {
		s = strings.TrimSuffix(s, "h")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid effort %q — use hours (1.5) or minutes (90m)", s)
	}
	if minutes {
		v /= 60
	}
	return v, nil
}
