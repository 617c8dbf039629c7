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

var doneCmd = &cobra.Command{
	Use:     "done <id>...",
	Aliases: []string{"do", "check"},
	Short:   "Mark assignments as completed",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withStore(func(as *assignment.Store) error {
			return forEachID(args, func(id int) error {
				if err := as.Complete(id); err != nil {
					return err
				}
				a, err := as.Get(id)
				if err != nil {
					return err
				}
				fmt.Printf("  %s Done: %s %s\n", ui.Success.Render("✓"), a.Title, ui.Muted.Render(fmt.Sprintf("#%d", id)))
				return nil
			})
		})
	},
}

var undoCmd = &cobra.Command{
	Use:     "undo <id>...",
	Aliases: []string{"uncheck"},
	Short:   "Mark completed assignments as open again",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withStore(func(as *assignment.Store) error {
			return forEachID(args, func(id int) error {
				if err := as.Uncomplete(id); err != nil {
					return err
				}
				a, err := as.Get(id)
				if err != nil {
					return err
				}
				fmt.Printf("  %s Reopened: %s %s\n", ui.Warning.Render("↩"), a.Title, ui.Muted.Render(fmt.Sprintf("#%d", id)))
				return nil
			})
		})
	},
}

var rmCmd = &cobra.Command{
	Use:     "rm <id>...",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete assignments",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withStore(func(as *assignment.Store) error {
			return forEachID(args, func(id int) error {
				a, err := as.Get(id)
				if err != nil {
					return err
				}
				if err := as.Delete(id); err != nil {
					return err
				}
				fmt.Printf("  %s Deleted: %s %s\n", ui.Error.Render("✗"), a.Title, ui.Muted.Render(fmt.Sprintf("#%d", id)))
				return nil
			})
		})
	},
}

var (
	editTitle      string
	editSubject    string
	editDue        string
	editDifficulty string
	editEffort     string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change an assignment's fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editSubject, "subject", "s", "", "New subject")
	editCmd.Flags().StringVarP(&editDue, "due", "d", "", "New due date (YYYY-MM-DD, tomorrow, next-week)")
	editCmd.Flags().StringVar(&editDifficulty, "difficulty", "", "New difficulty")
	editCmd.Flags().StringVarP(&editEffort, "effort", "e", "", "New effort estimate")
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	var title, subject, due, difficulty *string
	var effort *float64

	if cmd.Flags().Changed("title") {
		title = &editTitle
	}
	if cmd.Flags().Changed("subject") {
		subject = &editSubject
	}
	if cmd.Flags().Changed("due") {
		d, err := parseDueInput(editDue, time.Now())
		if err != nil {
			return err
		}
		due = &d
	}
	if cmd.Flags().Changed("difficulty") {
		d, err := assignment.ParseDifficulty(editDifficulty)
		if err != nil {
			return err
		}
		difficulty = &d
	}
	if cmd.Flags().Changed("effort") {
		e, err := parseEffort(editEffort)
		if err != nil {
			return err
		}
		effort = &e
	}

	if title == nil && subject == nil && due == nil && difficulty == nil && effort == nil {
		return fmt.Errorf("nothing to change — pass at least one of --title, --subject, --due, --difficulty, --effort")
	}

	return withStore(func(as *assignment.Store) error {
		if err := as.Edit(id, title, subject, due, difficulty, effort); err != nil {
			return err
		}
		a, err := as.Get(id)
		if err != nil {
			return err
		}
		fmt.Printf("  %s Updated %s %s\n", ui.Success.Render("✓"), assignment.DifficultyIcon(a.Difficulty), ui.Accent.Render(fmt.Sprintf("#%d", id)))
		fmt.Printf("    %s due %s\n", a.Title, ui.Muted.Render(a.DueDate))
		return nil
	})
}

// withStore opens the database, runs fn with an assignment store, and closes.
func withStore(fn func(*assignment.Store) error) error {
	db, err := store.Open()
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(assignment.NewStore(db.Conn()))
}

func parseID(s string) (int, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid assignment id %q", s)
	}
	return id, nil
}

// forEachID runs fn for every argument, continuing past failures and
// reporting them together at the end.
func forEachID(args []string, fn func(int) error) error {
	var failed []string
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			failed = append(failed, err.Error())
			continue
		}
		if err := fn(id); err != nil {
			failed = append(failed, err.Error())
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%s", strings.Join(failed, "; "))
	}
	return nil
}
