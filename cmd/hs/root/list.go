package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukprmenbersaku-abc/help-study/internal/planner"
	"github.com/ukprmenbersaku-abc/help-study/internal/storage"
	"github.com/ukprmenbersaku-abc/help-study/internal/ui"
)

func newListCmd() *cobra.Command {
	var from, to string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks grouped by day (default: this week)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var tasks []storage.Task
			heading := "All tasks"
			if all {
				tasks, err = a.svc.ListTasks(ctx)
			} else {
				if from == "" || to == "" {
					day, perr := planner.ParseDate(a.svc.Today())
					if perr != nil {
						return perr
					}
					wf, wt := planner.WeekRange(day)
					if from == "" {
						from = wf
					}
					if to == "" {
						to = wt
					}
				}
				heading = fmt.Sprintf("Tasks %s .. %s", from, to)
				tasks, err = a.svc.ListTasksBetween(ctx, from, to)
			}
			if err != nil {
				return err
			}
			subs, err := a.svc.ListSubjects(ctx)
			if err != nil {
				return err
			}
			names := subjectNames(subs)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconCalendar, heading))
			if len(tasks) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no tasks)"))
				return nil
			}
			current := ""
			for _, t := range tasks {
				if t.Date != current {
					current = t.Date
					fmt.Fprintln(out, ui.H2.Render(current))
				}
				printTask(out, t, names)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last day (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&all, "all", false, "List every task")
	return cmd
}
