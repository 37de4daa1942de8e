package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ukprmenbersaku-abc/help-study/internal/planner"
	"github.com/ukprmenbersaku-abc/help-study/internal/suggest"
	"github.com/ukprmenbersaku-abc/help-study/internal/ui"
)

func newImportCmd() *cobra.Command {
	var subject, start string

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Import a suggested study plan (JSON array) as study tasks",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("file is required (use - for stdin)")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			plan, err := suggest.Parse(r)
			if err != nil {
				return err
			}

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
			if start == "" {
				start = a.svc.Today()
			}
			day, err := planner.ParseDate(start)
			if err != nil {
				return err
			}

			res, err := a.svc.ImportSuggestions(ctx, subjectID, day, plan)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", ui.IconPlus, ui.Good.Render(fmt.Sprintf("Imported %d study tasks", len(res.Tasks))))
			for _, t := range res.Tasks {
				printTask(out, t, nil)
			}
			printOutcome(out, res.Outcome)
			return nil
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "", "Subject name or id")
	cmd.Flags().StringVar(&start, "start", "", "First day (YYYY-MM-DD, default today)")
	return cmd
}
