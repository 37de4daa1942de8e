package root

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ukprmenbersaku-abc/help-study/internal/suggest"
)

func newPromptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prompt <goal>",
		Short: "Print the prompt to ask an AI assistant for a study plan",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("goal is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := suggest.Prompt(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
