package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukprmenbersaku-abc/help-study/internal/planner"
	"github.com/ukprmenbersaku-abc/help-study/internal/ui"
)

func newAddCmd() *cobra.Command {
	var subject string
	var date string
	var taskType string
	var hours float64
	var assignment, pages, memo, start string
	var notify bool

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a study task or deadline",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
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

			subjectID, err := resolveSubjectID(ctx, a.svc, subject)
			if err != nil {
				return err
			}
			if date == "" {
				date = a.svc.Today()
			}
			in := planner.TaskInput{
				SubjectID:           subjectID,
				Title:               args[0],
				Date:                date,
				Type:                taskType,
				NotificationEnabled: notify,
			}
			if cmd.Flags().Changed("hours") {
				in.Duration = &hours
			}
			if cmd.Flags().Changed("assignment") {
				in.Assignment = &assignment
			}
			if cmd.Flags().Changed("pages") {
				in.Pages = &pages
			}
			if cmd.Flags().Changed("memo") {
				in.Memo = &memo
			}
			if cmd.Flags().Changed("start") {
				in.StartTime = &start
			}

			res, err := a.svc.CreateTask(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s %s\n", ui.IconPlus, ui.Good.Render("Task added:"), ui.TypeIcon(res.Task.Type), res.Task.Title,
				ui.Muted.Render(shortID(res.Task.ID)+" "+res.Task.Date))
			printOutcome(cmd.OutOrStdout(), res.Outcome)
			return nil
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "", "Subject name or id")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&taskType, "type", "t", "study", "Task type (study|deadline)")
	cmd.Flags().Float64VarP(&hours, "hours", "H", 0, "Planned study hours")
	cmd.Flags().StringVar(&assignment, "assignment", "", "Assignment details")
	cmd.Flags().StringVar(&pages, "pages", "", "Pages or range to cover")
	cmd.Flags().StringVarP(&memo, "memo", "m", "", "Free-form memo")
	cmd.Flags().StringVar(&start, "start", "", "Start time as HH:MM")
	cmd.Flags().BoolVar(&notify, "notify", false, "Mark the task for a reminder")
	return cmd
}
