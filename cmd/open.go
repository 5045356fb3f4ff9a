package cmd

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/devflow-tools/wtm/internal/editor"
	"github.com/devflow-tools/wtm/internal/errors"
)

var openCmd = &cobra.Command{
	Use:   "open <index>",
	Short: "Open a worktree in the editor",
	Long: `Opens the worktree at the given listing index in the editor.

The editor command comes from the config file's worktree.editor, then
$VISUAL, then $EDITOR, then "code".`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	index, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.ValidationError("open takes a worktree index, got " + args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := repoClient(ctx)
	if err != nil {
		return err
	}

	snap, err := client.Snapshot(ctx)
	if err != nil {
		return err
	}

	wt, err := worktreeByIndex(snap, index)
	if err != nil {
		return err
	}

	return editor.Open(ctx, editor.Resolve(cfg.Worktree.Editor), wt.Path)
}
