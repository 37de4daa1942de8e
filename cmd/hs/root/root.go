package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ukprmenbersaku-abc/help-study/internal/ui"
)

const Version = "0.1.0"

var (
	cfgFile string
	dbFlag  string
)

var rootCmd = &cobra.Command{
	Use:           "hs",
	Short:         "help-study: local-first study planner with XP, levels and badges",
	Long:          "help-study tracks subjects, study sessions and deadlines, and rewards completed work with XP, levels and badges.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default $HOME/.help-study.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "SQLite database path (default $HOME/.help-study.db)")

	rootCmd.AddCommand(
		newSubjectCmd(),
		newAddCmd(),
		newEditCmd(),
		newRmCmd(),
		newDoCmd(),
		newListCmd(),
		newTodayCmd(),
		newStatusCmd(),
		newImportCmd(),
		newPromptCmd(),
		newBoardCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
