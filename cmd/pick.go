package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/devflow-tools/wtm/internal/editor"
	"github.com/devflow-tools/wtm/internal/logging"
	"github.com/devflow-tools/wtm/internal/tui"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactive worktree picker",
	Long: `Opens an interactive TUI for selecting and acting on worktrees.

Use arrow keys or j/k to navigate, / to filter.

Actions:
  Enter  - Open selected worktree in the editor
  m      - Merge selected worktree's branch into the current branch
  d      - Remove selected worktree
  n      - Show instructions for creating a new worktree
  q/Esc  - Quit`,
	RunE: runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

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

	logging.Debug("picker mode started", "worktrees", len(snap.Linked))

	if len(snap.Linked) == 0 {
		logInfo("No linked worktrees found. Create one with: wtm create [name]")
		return nil
	}

	// Without a terminal (piped output, CI) the bubbletea program
	// cannot run; print the plain listing instead.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		fmt.Print(tui.SimplePicker(linkedPointers(snap), snap.Parent))
		return nil
	}

	result, err := tui.RunPicker(linkedPointers(snap), snap.Parent)
	if err != nil {
		return fmt.Errorf("picker error: %w", err)
	}

	logging.Debug("picker result", "action", result.Action)

	switch result.Action {
	case tui.ActionOpen:
		if result.Worktree != nil {
			return editor.Open(ctx, editor.Resolve(cfg.Worktree.Editor), result.Worktree.Path)
		}

	case tui.ActionMerge:
		if result.Worktree != nil {
			return mergeWorktree(ctx, client, snap.Parent, result.Worktree, false)
		}

	case tui.ActionRemove:
		if result.Worktree != nil {
			wt := result.Worktree
			if !confirm("Remove worktree " + worktreeLabel(wt)) {
				logInfo("Aborted")
				return nil
			}
			if err := client.RemoveWorktree(ctx, wt.Path); err != nil {
				return err
			}
			logSuccess("Removed worktree %s", wt.Path)
		}

	case tui.ActionNew:
		fmt.Println("\nTo create a new worktree, run:")
		fmt.Println("  wtm create [name]")
		fmt.Println("\nWithout a name, a chronological one is generated.")

	case tui.ActionQuit:
		// Just exit cleanly
	}

	return nil
}
