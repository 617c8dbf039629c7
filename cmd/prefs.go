package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwhite/hw/internal/schedule"
	"github.com/mwhite/hw/internal/store"
	"github.com/mwhite/hw/internal/ui"
)

var prefsCmd = &cobra.Command{
	Use:     "prefs",
	Aliases: []string{"preferences"},
	Short:   "View and edit schedule preferences",
	Long: `Schedule preferences drive the start-time suggestion attached to every
exported task: homework is placed after school on weekdays (or at 9am on
weekends), pushed later by any activity that ends after that.`,
	RunE: runPrefsShow,
}

var prefsHoursCmd = &cobra.Command{
	Use:   "hours <start> <end>",
	Short: "Set school hours (HH:MM, 24h)",
	Args:  cobra.ExactArgs(2),
	RunE:  runPrefsHours,
}

var activityCmd = &cobra.Command{
	Use:     "activity",
	Aliases: []string{"activities"},
	Short:   "Manage recurring activities",
	RunE:    runActivityList,
}

var (
	activityStart string
	activityEnd   string
	activityDays  string
)

var activityAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a recurring activity",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runActivityAdd,
}

var activityRmCmd = &cobra.Command{
	Use:     "rm <name-or-id>",
	Aliases: []string{"remove"},
	Short:   "Remove an activity",
	Args:    cobra.ExactArgs(1),
	RunE:    runActivityRm,
}

var activityListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List activities",
	RunE:    runActivityList,
}

func init() {
	activityAddCmd.Flags().StringVar(&activityStart, "start", "", "Start time (HH:MM, 24h)")
	activityAddCmd.Flags().StringVar(&activityEnd, "end", "", "End time (HH:MM, 24h)")
	activityAddCmd.Flags().StringVar(&activityDays, "days", "", "Weekdays, comma-separated (mon,wed or 1,3)")
	activityAddCmd.MarkFlagRequired("start")
	activityAddCmd.MarkFlagRequired("end")
	activityAddCmd.MarkFlagRequired("days")

	activityCmd.AddCommand(activityAddCmd)
	activityCmd.AddCommand(activityRmCmd)
	activityCmd.AddCommand(activityListCmd)

	prefsCmd.AddCommand(prefsHoursCmd)
	prefsCmd.AddCommand(activityCmd)
}

var dayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func withPrefs(fn func(*schedule.Store, *schedule.Preferences) error) error {
	db, err := store.Open()
	if err != nil {
		return err
	}
	defer db.Close()

	ps := schedule.NewStore(db.Conn())
	prefs, err := ps.Load()
	if err != nil {
		return err
	}
	return fn(ps, &prefs)
}

func runPrefsShow(_ *cobra.Command, _ []string) error {
	return withPrefs(func(_ *schedule.Store, p *schedule.Preferences) error {
		fmt.Println()
		ui.Header("Schedule preferences")
		ui.Kv("School hours", fmt.Sprintf("%s – %s", p.SchoolHours.Start, p.SchoolHours.End))
		if len(p.Activities) == 0 {
			ui.Kv("Activities", ui.Muted.Render("none"))
		} else {
			ui.Kv("Activities", "")
			for _, a := range p.Activities {
				fmt.Printf("    %s %s %s\n", ui.IconDot, a.Name, ui.Muted.Render(formatActivity(a)))
			}
		}
		fmt.Println()
		ui.Tip("`hw prefs hours 08:30 15:30` or `hw prefs activity add Soccer --start 16:00 --end 17:30 --days mon,wed`")
		fmt.Println()
		return nil
	})
}

func runPrefsHours(_ *cobra.Command, args []string) error {
	start, end := args[0], args[1]
	if !schedule.ValidClock(start) || !schedule.ValidClock(end) {
		return fmt.Errorf("invalid school hours %q–%q — use HH:MM (24h)", start, end)
	}
	if start >= end {
		return fmt.Errorf("school start %s must be before end %s", start, end)
	}

	return withPrefs(func(ps *schedule.Store, p *schedule.Preferences) error {
		p.SchoolHours = schedule.SchoolHours{Start: start, End: end}
		if err := ps.Save(*p); err != nil {
			return err
		}
		ui.Ok(fmt.Sprintf("School hours set to %s – %s", start, end))
		return nil
	})
}

func runActivityAdd(_ *cobra.Command, args []string) error {
	name := strings.Join(args, " ")
	days, err := parseDays(activityDays)
	if err != nil {
		return err
	}

	activity, err := schedule.NewActivity(name, activityStart, activityEnd, days)
	if err != nil {
		return err
	}

	return withPrefs(func(ps *schedule.Store, p *schedule.Preferences) error {
		p.Activities = append(p.Activities, activity)
		if err := ps.Save(*p); err != nil {
			return err
		}
		ui.Ok(fmt.Sprintf("Added activity %s %s", activity.Name, ui.Muted.Render(formatActivity(activity))))
		return nil
	})
}

func runActivityRm(_ *cobra.Command, args []string) error {
	return withPrefs(func(ps *schedule.Store, p *schedule.Preferences) error {
		removed, err := p.RemoveActivity(args[0])
		if err != nil {
			return err
		}
		if err := ps.Save(*p); err != nil {
			return err
		}
		ui.Ok(fmt.Sprintf("Removed activity %s", removed.Name))
		return nil
	})
}

func runActivityList(_ *cobra.Command, _ []string) error {
	return withPrefs(func(_ *schedule.Store, p *schedule.Preferences) error {
		if len(p.Activities) == 0 {
			fmt.Println(ui.Muted.Render("  No activities yet."))
			ui.Tip("`hw prefs activity add Soccer --start 16:00 --end 17:30 --days mon,wed`")
			return nil
		}
		fmt.Println()
		for _, a := range p.Activities {
			fmt.Printf("  %s %s %s\n", ui.IconDot, a.Name, ui.Muted.Render(formatActivity(a)))
			fmt.Printf("    %s\n", ui.Muted.Render("id: "+a.ID))
		}
		fmt.Println()
		return nil
	})
}

func formatActivity(a schedule.Activity) string {
	names := make([]string, 0, len(a.Days))
	for _, d := range a.Days {
		if d >= 0 && d < len(dayNames) {
			names = append(names, dayNames[d])
		}
	}
	return fmt.Sprintf("%s–%s on %s", a.Start, a.End, strings.Join(names, ", "))
}

// parseDays accepts comma-separated weekday names or numbers (0=Sunday).
func parseDays(s string) ([]int, error) {
	var days []int
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}

		if n, err := strconv.Atoi(part); err == nil {
			days = append(days, n)
			continue
		}

		matched := -1
		for i, name := range dayNames {
			if strings.HasPrefix(strings.ToLower(name), part) || strings.HasPrefix(part, strings.ToLower(name)) {
				matched = i
				break
			}
		}
		if matched < 0 {
			return nil, fmt.Errorf("invalid weekday %q — use names (mon, tue) or numbers (0=Sunday)", part)
		}
		days = append(days, matched)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("no weekdays given")
	}
	return days, nil
}
