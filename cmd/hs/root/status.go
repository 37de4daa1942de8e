package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ukprmenbersaku-abc/help-study/internal/planner"
	"github.com/ukprmenbersaku-abc/help-study/internal/progress"
	"github.com/ukprmenbersaku-abc/help-study/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, XP, badges and totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := a.svc.Progress(ctx)
			if err != nil {
				return err
			}
			req := progress.Requirement(p.Level)
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Study Status"))
			fmt.Fprintln(out, ui.LabelValue("Level", p.Level))
			fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%s/%s %s (%s to go)", ui.FormatXP(p.XP), ui.FormatXP(req), ui.XPBar(p, 20), ui.FormatXP(req-p.XP))))
			fmt.Fprintln(out, "")

			stats, err := a.svc.Stats(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.H2.Render("📊 Totals"))
			fmt.Fprintf(out, "- %s %gh\n", ui.Key.Render("Study hours done:"), stats.StudyHours)
			fmt.Fprintf(out, "- %s %d\n", ui.Key.Render("Deadlines met:"), stats.DeadlinesCompleted)
			weekStart := a.svc.WeekStart()
			weekXP, err := a.svc.XPSince(ctx, weekStart)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "- %s %s %s\n", ui.Key.Render("XP this week:"), ui.FormatXP(weekXP), ui.Muted.Render("(since "+weekStart.Format(planner.DateLayout)+")"))
			fmt.Fprintln(out, "")

			badges, err := a.svc.Badges(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s Badges (%d/%d)", ui.IconTrophy, p.CountAchieved(), len(badges))))
			for _, b := range badges {
				fmt.Fprintln(out, badgeLine(b))
			}

			recent, err := a.svc.RecentActivity(ctx, 5)
			if err != nil {
				return err
			}
			if len(recent) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.H2.Render("📜 Recent activity"))
				for _, c := range recent {
					verb := "done"
					if !c.Completed {
						verb = "reopened"
					}
					fmt.Fprintf(out, "- %s %s %s %s\n", ui.Muted.Render(c.ToggledAt.Local().Format(time.DateTime)), shortID(c.TaskID), verb, ui.SignedXP(c.XPDelta))
				}
			}
			return nil
		},
	}

	return cmd
}
