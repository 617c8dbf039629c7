package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwhite/hw/internal/assignment"
	"github.com/mwhite/hw/internal/config"
	"github.com/mwhite/hw/internal/export"
	"github.com/mwhite/hw/internal/gtasks"
	"github.com/mwhite/hw/internal/schedule"
	"github.com/mwhite/hw/internal/store"
	"github.com/mwhite/hw/internal/ui"
)

var exportList string

var exportCmd = &cobra.Command{
	Use:     "export",
	Aliases: []string{"push", "sync"},
	Short:   "Push open assignments to Google Tasks",
	Long: `Export every open assignment that hasn't been pushed yet to a Google Tasks
list, most urgent first. Each task carries a suggested start time computed
from your schedule preferences (see hw prefs).

Already-exported assignments are skipped, so running export twice never
creates duplicates.

Requires a Google OAuth credentials.json in the hw config directory; the
first run opens a browser for consent and caches the token.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportList, "list", "", "Task list name (default from config, else \""+gtasks.DefaultListName+"\")")
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	listTitle := exportList
	if listTitle == "" {
		listTitle = cfg.Google.TaskList
	}
	if listTitle == "" {
		listTitle = gtasks.DefaultListName
	}

	db, err := store.Open()
	if err != nil {
		return err
	}
	defer db.Close()

	as := assignment.NewStore(db.Conn())
	prefs, err := schedule.NewStore(db.Conn()).Load()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ui.Inf("Connecting to Google Tasks...")
	client, err := gtasks.NewClient(ctx)
	if err != nil {
		return err
	}

	exp := &export.Exporter{
		Service: client,
		Store:   as,
		Prefs:   prefs,
		Weights: weightsFromConfig(cfg),
		Warn:    func(err error) { ui.Warn(err.Error()) },
	}

	res, err := exp.Run(ctx, listTitle, time.Now())
	if err != nil {
		if res.Exported > 0 {
			ui.Warn(fmt.Sprintf("Export stopped early: %d task(s) were pushed to %q before the failure.", res.Exported, res.ListTitle))
		}
		return err
	}

	fmt.Println()
	if res.Exported == 0 && res.Skipped == 0 {
		fmt.Println(ui.Muted.Render("  Nothing to export."))
	} else {
		fmt.Printf("  %s Exported %s to %s\n",
			ui.Success.Render("✓"),
			ui.Accent.Render(fmt.Sprintf("%d task(s)", res.Exported)),
			ui.Accent.Render(res.ListTitle))
		if res.Skipped > 0 {
			fmt.Println(ui.Muted.Render(fmt.Sprintf("  %d already exported, skipped", res.Skipped)))
		}
	}
	fmt.Println()

	return nil
}
