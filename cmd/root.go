package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwhite/hw/internal/assignment"
	"github.com/mwhite/hw/internal/config"
	"github.com/mwhite/hw/internal/store"
	"github.com/mwhite/hw/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "hw",
	Short: "Homework planner auto-sorter",
	Long:  `hw — track assignments, auto-sort them by urgency, and push them to Google Tasks.`,
	RunE:  runDashboard,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Err(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// runDashboard shows the at-a-glance status when you just type `hw`.
func runDashboard(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	fmt.Println(ui.Greet(cfg.User.Name))
	fmt.Println()

	now := time.Now()
	as := assignment.NewStore(db.Conn())
	open, total, overdue, err := as.Count(now)
	if err != nil {
		return fmt.Errorf("counting assignments: %w", err)
	}

	summary := fmt.Sprintf("%d open", open)
	if total > 0 {
		summary += fmt.Sprintf(" / %d total", total)
	}
	if overdue > 0 {
		summary += ui.Error.Render(fmt.Sprintf(" (%d overdue!)", overdue))
	}
	ui.Kv(ui.IconBook+" Homework", summary)
	ui.Kv(ui.IconCalendar+" Today", now.Format("Monday, January 2"))

	// Most urgent open assignment, if any.
	if next, score, err := mostUrgent(as, cfg, now); err == nil && next != nil {
		ui.Kv(ui.IconFire+" Up next", fmt.Sprintf("%s [%s] (score %d)", next.Title, next.Subject, score))
	}

	if overdue > 0 {
		ui.Tip("`hw list` to tackle that overdue assignment.")
	} else if open > 0 {
		ui.Tip("`hw list` to see what's on your plate.")
	} else {
		ui.Tip("`hw add \"Essay draft\" -s English -d tomorrow` to capture an assignment.")
	}

	fmt.Println()
	return nil
}

// mostUrgent returns the highest-scoring open assignment.
func mostUrgent(as *assignment.Store, cfg *config.Config, now time.Time) (*assignment.Assignment, int, error) {
	open, err := as.List(assignment.ListOptions{})
	if err != nil || len(open) == 0 {
		return nil, 0, err
	}
	w := weightsFromConfig(cfg)
	if err := assignment.SortByScore(open, now, w); err != nil {
		return nil, 0, err
	}
	top := open[0]
	score, err := assignment.ScoreWith(top, now, w)
	if err != nil {
		return nil, 0, err
	}
	return &top, score, nil
}

// weightsFromConfig builds score weights from config, using defaults for any
// unset field.
func weightsFromConfig(cfg *config.Config) assignment.Weights {
	w := assignment.DefaultWeights()
	u := cfg.Urgency
	if u.Overdue != nil {
		w.Overdue = *u.Overdue
	}
	if u.DueToday != nil {
		w.DueToday = *u.DueToday
	}
	if u.DueTomorrow != nil {
		w.DueTomorrow = *u.DueTomorrow
	}
	if u.DueSoon != nil {
		w.DueSoon = *u.DueSoon
	}
	if u.DueThisWeek != nil {
		w.DueThisWeek = *u.DueThisWeek
	}
	if u.DueLater != nil {
		w.DueLater = *u.DueLater
	}
	if u.EffortCap != nil {
		w.EffortCap = *u.EffortCap
	}
	return w
}
