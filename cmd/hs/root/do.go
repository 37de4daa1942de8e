package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukprmenbersaku-abc/help-study/internal/progress"
	"github.com/ukprmenbersaku-abc/help-study/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Toggle a task between done and not done",
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
			res, err := a.svc.ToggleTask(ctx, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.Completed {
				fmt.Fprintf(out, "%s %s %s %s\n", ui.IconDone, ui.Good.Render("Done:"), res.Title, ui.SignedXP(res.XPDelta))
			} else {
				fmt.Fprintf(out, "%s %s %s %s\n", ui.IconOpen, ui.Warn.Render("Reopened:"), res.Title, ui.SignedXP(res.XPDelta))
			}
			printOutcome(out, res.Outcome)
			p := res.Progress
			fmt.Fprintf(out, "%s %s/%s %s\n", ui.LabelValue("Level", p.Level), ui.FormatXP(p.XP), ui.FormatXP(progress.Requirement(p.Level)), ui.XPBar(p, 20))
			return nil
		},
	}

	return cmd
}
