package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukprmenbersaku-abc/help-study/internal/ui"
)

func newTodayCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's tasks and upcoming deadlines",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if date == "" {
				date = a.svc.Today()
			}
			day, err := a.svc.Day(ctx, date)
			if err != nil {
				return err
			}
			subs, err := a.svc.ListSubjects(ctx)
			if err != nil {
				return err
			}
			names := subjectNames(subs)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconCalendar, fmt.Sprintf("%s (%d/%d done)", day.Date, day.Completed, len(day.Tasks))))
			if len(day.Tasks) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(nothing scheduled)"))
			}
			for _, t := range day.Tasks {
				printTask(out, t, names)
			}

			deadlines, err := a.svc.UpcomingDeadlines(ctx, day.Date, a.cfg.Deadlines.Limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.H2.Render(ui.IconFlag+" Upcoming deadlines"))
			if len(deadlines) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(none)"))
			}
			for _, t := range deadlines {
				fmt.Fprintf(out, "- %s %s %s\n", ui.Warn.Render(t.Date), t.Title, ui.Muted.Render(shortID(t.ID)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Day to show (YYYY-MM-DD, default today)")
	return cmd
}
