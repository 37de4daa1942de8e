package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukprmenbersaku-abc/help-study/internal/planner"
	"github.com/ukprmenbersaku-abc/help-study/internal/ui"
)

func newSubjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subject",
		Aliases: []string{"subjects"},
		Short:   "Manage subjects",
	}
	cmd.AddCommand(
		newSubjectAddCmd(),
		newSubjectListCmd(),
		newSubjectEditCmd(),
		newSubjectRmCmd(),
	)
	return cmd
}

func newSubjectAddCmd() *cobra.Command {
	var goal, color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a subject",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
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

			sub, err := a.svc.CreateSubject(ctx, planner.SubjectInput{Name: args[0], Goal: goal, Color: color})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n", ui.IconPlus, ui.Good.Render("Subject added:"), sub.Name, ui.Muted.Render(shortID(sub.ID)+" "+sub.Color))
			return nil
		},
	}

	cmd.Flags().StringVarP(&goal, "goal", "g", "", "Goal for this subject")
	cmd.Flags().StringVarP(&color, "color", "c", "", "Color as #RRGGBB (default: next palette color)")
	return cmd
}

func newSubjectListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List subjects",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			subs, err := a.svc.ListSubjects(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconBook, "Subjects"))
			if len(subs) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(none yet: hs subject add <name>)"))
				return nil
			}
			for _, s := range subs {
				line := fmt.Sprintf("- %s %s %s", ui.Muted.Render(shortID(s.ID)), s.Name, ui.Muted.Render(s.Color))
				if s.Goal != "" {
					line += " " + ui.Muted.Render("goal: "+s.Goal)
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func newSubjectEditCmd() *cobra.Command {
	var name, goal, color string

	cmd := &cobra.Command{
		Use:   "edit <subject>",
		Short: "Rename a subject or change its goal or color",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("subject is required")
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

			id, err := resolveSubjectID(ctx, a.svc, args[0])
			if err != nil {
				return err
			}
			var patch planner.SubjectPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("goal") {
				patch.Goal = &goal
			}
			if cmd.Flags().Changed("color") {
				patch.Color = &color
			}
			sub, err := a.svc.UpdateSubject(ctx, id, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.IconDone, ui.Good.Render("Subject updated:"), sub.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "New name")
	cmd.Flags().StringVarP(&goal, "goal", "g", "", "New goal")
	cmd.Flags().StringVarP(&color, "color", "c", "", "New color (#RRGGBB)")
	return cmd
}

func newSubjectRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <subject>",
		Short: "Delete a subject and all of its tasks",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("subject is required")
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

			id, err := resolveSubjectID(ctx, a.svc, args[0])
			if err != nil {
				return err
			}
			res, err := a.svc.DeleteSubject(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.IconTrash, ui.Warn.Render("Subject deleted"), ui.Muted.Render(fmt.Sprintf("(%d tasks removed)", res.TasksDeleted)))
			printOutcome(cmd.OutOrStdout(), res.Outcome)
			return nil
		},
	}
}
