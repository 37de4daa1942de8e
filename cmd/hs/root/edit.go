package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukprmenbersaku-abc/help-study/internal/planner"
	"github.com/ukprmenbersaku-abc/help-study/internal/ui"
)

func newEditCmd() *cobra.Command {
	var subject, title, date, taskType string
	var hours float64
	var assignment, pages, memo, start string
	var notify, clearHours bool

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task (completion is changed with do)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := resolveTaskID(ctx, a.svc, args[0])
			if err != nil {
				return err
			}

			var patch planner.TaskPatch
			flags := cmd.Flags()
			if flags.Changed("subject") {
				sid, err := resolveSubjectID(ctx, a.svc, subject)
				if err != nil {
					return err
				}
				patch.SubjectID = &sid
			}
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("date") {
				patch.Date = &date
			}
			if flags.Changed("type") {
				patch.Type = &taskType
			}
			if flags.Changed("hours") {
				patch.Duration = &hours
			}
			patch.ClearDuration = clearHours
			if flags.Changed("assignment") {
				patch.Assignment = &assignment
			}
			if flags.Changed("pages") {
				patch.Pages = &pages
			}
			if flags.Changed("memo") {
				patch.Memo = &memo
			}
			if flags.Changed("start") {
				patch.StartTime = &start
			}
			if flags.Changed("notify") {
				patch.NotificationEnabled = &notify
			}

			res, err := a.svc.UpdateTask(ctx, id, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.IconDone, ui.Good.Render("Task updated:"), res.Task.Title)
			printOutcome(cmd.OutOrStdout(), res.Outcome)
			return nil
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "", "Move to subject (name or id)")
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&date, "date", "d", "", "New date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&taskType, "type", "t", "", "New type (study|deadline)")
	cmd.Flags().Float64VarP(&hours, "hours", "H", 0, "Planned study hours")
	cmd.Flags().BoolVar(&clearHours, "clear-hours", false, "Remove the planned hours")
	cmd.Flags().StringVar(&assignment, "assignment", "", "Assignment details (empty clears)")
	cmd.Flags().StringVar(&pages, "pages", "", "Pages (empty clears)")
	cmd.Flags().StringVarP(&memo, "memo", "m", "", "Memo (empty clears)")
	cmd.Flags().StringVar(&start, "start", "", "Start time HH:MM (empty clears)")
	cmd.Flags().BoolVar(&notify, "notify", false, "Reminder flag")
	cmd.MarkFlagsMutuallyExclusive("hours", "clear-hours")
	return cmd
}
