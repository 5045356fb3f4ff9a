package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/devflow-tools/wtm/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "wtm",
	Short: "Git worktree manager and project tooling",
	Long: `wtm manages git worktrees for parallel work on one repository.

Each worktree is a separate checkout on its own branch:
  - Created next to the main checkout (configurable)
  - Classified as merged or not-merged against the current branch
  - Removable singly, by range, or all at once

It also bundles project tooling: documentation discovery via markdown
front matter, file combining, and synthetic test report generation.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: user config dir)")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	_          = logging.UserError // reserved for future use
)
