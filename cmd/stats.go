package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwhite/hw/internal/assignment"
	"github.com/mwhite/hw/internal/store"
	"github.com/mwhite/hw/internal/ui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Workload and completion stats",
	RunE:  runStats,
}

func runStats(_ *cobra.Command, _ []string) error {
	db, err := store.Open()
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := assignment.GetStats(db.Conn(), time.Now())
	if err != nil {
		return err
	}

	ui.Header("Workload")
	ui.Kv("Open", fmt.Sprintf("%d", stats.Open))
	if stats.Overdue > 0 {
		ui.Kv("Overdue", ui.Error.Render(fmt.Sprintf("%d", stats.Overdue)))
	}
	ui.Kv("Remaining effort", fmt.Sprintf("%g h", stats.OpenEffortHours))

	ui.Header("Completed")
	ui.Kv("This week", fmt.Sprintf("%d", stats.CompletedWeek))
	ui.Kv("This month", fmt.Sprintf("%d", stats.CompletedMonth))
	ui.Kv("All time", fmt.Sprintf("%d", stats.Done))

	if len(stats.BySubject) > 0 {
		ui.Header("By subject")
		for _, s := range stats.BySubject {
			subject := s.Subject
			if subject == "" {
				subject = "(none)"
			}
			detail := fmt.Sprintf("%d open / %d done", s.Open, s.Done)
			if s.EffortHours > 0 {
				detail += ui.Muted.Render(fmt.Sprintf("  %s%g h left", ui.IconHourglass, s.EffortHours))
			}
			ui.Kv(subject, detail)
		}
	}

	fmt.Println()
	return nil
}
