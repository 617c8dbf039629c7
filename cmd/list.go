package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mwhite/hw/internal/assignment"
	"github.com/mwhite/hw/internal/config"
	"github.com/mwhite/hw/internal/store"
	"github.com/mwhite/hw/internal/tui"
	"github.com/mwhite/hw/internal/ui"
)

var (
	listShowDone bool
	listSubject  string
	listNoTUI    bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "Browse assignments, auto-sorted by urgency",
	Long: `Show assignments grouped by due date (overdue, today, tomorrow, this week,
later) and sorted inside each group by priority score.

In an interactive terminal, launches a full-screen browser.
Pipe output or use --plain for scripting.

Keyboard shortcuts (interactive mode):
  j / k        Move down / up
  x / space    Toggle done/undone
  d            Delete selected assignment
  /            Filter (fuzzy search)
  g / G        Jump to top / bottom
  q / Ctrl+C   Quit`,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listShowDone, "done", false, "Show completed assignments too")
	listCmd.Flags().StringVarP(&listSubject, "subject", "s", "", "Filter to a single subject")
	listCmd.Flags().BoolVar(&listNoTUI, "plain", false, "Print the list even in a terminal")
}

func runList(_ *cobra.Command, _ []string) error {
	db, err := store.Open()
	if err != nil {
		return err
	}
	defer db.Close()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	as := assignment.NewStore(db.Conn())
	items, err := as.List(assignment.ListOptions{ShowDone: listShowDone, Subject: listSubject})
	if err != nil {
		return err
	}

	// Capture now once so grouping and rendering use the same instant.
	now := time.Now()

	if tui.IsTTY() && !listNoTUI {
		return runBrowser(as, items, now)
	}

	return printGrouped(as, items, weightsFromConfig(cfg), now)
}

func runBrowser(as *assignment.Store, items []assignment.Assignment, now time.Time) error {
	actions, err := tui.Run(items, now)
	if err != nil {
		return err
	}

	var failed []string
	for _, a := range actions {
		switch a.Type {
		case "toggle":
			item, err := as.Get(a.ID)
			if err != nil {
				failed = append(failed, fmt.Sprintf("toggle #%d: %v", a.ID, err))
				continue
			}
			if item.Done {
				err = as.Uncomplete(a.ID)
			} else {
				err = as.Complete(a.ID)
			}
			if err != nil {
				failed = append(failed, fmt.Sprintf("toggle #%d: %v", a.ID, err))
			}
		case "delete":
			if err := as.Delete(a.ID); err != nil {
				failed = append(failed, fmt.Sprintf("delete #%d: %v", a.ID, err))
			}
		}
	}

	if len(failed) > 0 {
		fmt.Println(ui.Warning.Render("Some actions failed:"))
		for _, msg := range failed {
			fmt.Println("  " + msg)
		}
	}

	return nil
}

func printGrouped(as *assignment.Store, items []assignment.Assignment, w assignment.Weights, now time.Time) error {
	if len(items) == 0 {
		fmt.Println()
		fmt.Println(ui.Muted.Render("  No assignments. Enjoy it while it lasts."))
		fmt.Println()
		fmt.Printf("  Add one: %s\n", ui.Accent.Render(`hw add "Read chapter 4" -s History -d tomorrow`))
		fmt.Println()
		return nil
	}

	groups, err := assignment.GroupByDueWith(items, now, w)
	if err != nil {
		return err
	}

	fmt.Println()
	for _, g := range groups {
		fmt.Println("  " + bucketHeaderStyle(g.Bucket).Render(assignment.BucketLabel(g.Bucket)))
		for _, a := range g.Assignments {
			printAssignmentLine(a, w, now)
		}
		fmt.Println()
	}

	open, _, overdue, _ := as.Count(now)
	summary := ui.Muted.Render(fmt.Sprintf("  %d open", open))
	if overdue > 0 {
		summary += ui.Error.Render(fmt.Sprintf(" · %d overdue", overdue))
	}
	fmt.Println(summary)
	fmt.Println()

	return nil
}

func printAssignmentLine(a assignment.Assignment, w assignment.Weights, now time.Time) {
	marker := " "
	if a.Done {
		marker = ui.Success.Render("✓")
	}

	id := ui.Muted.Render(fmt.Sprintf("#%-3d", a.ID))
	diff := assignment.DifficultyIcon(a.Difficulty)
	title := a.Title
	if a.Done {
		title = ui.Muted.Render(title)
	}

	line := fmt.Sprintf("  %s %s %s %s", marker, id, diff, title)

	if a.Subject != "" {
		line += ui.Muted.Render(" [" + a.Subject + "]")
	}
	if a.EffortHours > 0 {
		line += ui.Muted.Render(fmt.Sprintf(" %s%gh", ui.IconHourglass, a.EffortHours))
	}
	if score, err := assignment.ScoreWith(a, now, w); err == nil {
		line += ui.Muted.Render(fmt.Sprintf(" (score %d)", score))
	}
	if a.Scheduled {
		line += ui.Success.Render(" ✓ exported")
	}

	fmt.Println(line)
}

func bucketHeaderStyle(b assignment.Bucket) lipgloss.Style {
	switch b {
	case assignment.BucketOverdue:
		return ui.OverdueHeader
	case assignment.BucketToday:
		return ui.TodayHeader
	case assignment.BucketTomorrow:
		return ui.TomorrowHeader
	case assignment.BucketThisWeek:
		return ui.WeekHeader
	default:
		return ui.LaterHeader
	}
}
