package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukprmenbersaku-abc/help-study/internal/ui"
)

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
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
			res, err := a.svc.DeleteTask(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.IconTrash, ui.Warn.Render("Task deleted"), ui.Muted.Render(shortID(res.TaskID)))
			printOutcome(cmd.OutOrStdout(), res.Outcome)
			return nil
		},
	}
}
