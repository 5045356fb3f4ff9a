package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devflow-tools/wtm/internal/errors"
	"github.com/devflow-tools/wtm/internal/git"
	"github.com/devflow-tools/wtm/internal/logging"
	"github.com/devflow-tools/wtm/internal/selector"
)

var (
	removeYes            bool
	removeDeleteBranches bool
)

var removeCmd = &cobra.Command{
	Use:   "remove <selection>",
	Short: "Remove worktrees by index, range, or all",
	Long: `Removes the worktrees matched by the selection:

  wtm remove 2        single listing index
  wtm remove 1-3      inclusive range
  wtm remove 1,3,5    comma list (parts may be ranges)
  wtm remove all      every linked worktree

Not-merged worktrees are flagged before the confirmation prompt.
Stale administrative entries are pruned afterwards.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "Skip the confirmation prompt")
	removeCmd.Flags().BoolVar(&removeDeleteBranches, "delete-branches", false, "Also delete the worktree branches")
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, err := repoClient(ctx)
	if err != nil {
		return err
	}

	snap, err := client.Snapshot(ctx)
	if err != nil {
		return err
	}

	if len(snap.Linked) == 0 {
		logInfo("No linked worktrees to remove")
		return nil
	}

	indices, err := selector.Parse(args[0], len(snap.Linked))
	if err != nil {
		return errors.ValidationError(err.Error())
	}

	var targets []*git.Worktree
	notMerged := 0
	for _, i := range indices {
		wt := &snap.Linked[i]
		targets = append(targets, wt)
		if wt.Status == git.StatusNotMerged {
			notMerged++
			logWarning("%s is not merged into %s", worktreeLabel(wt), snap.Parent)
		}
	}

	if !removeYes {
		prompt := "Remove " + countNoun(len(targets), "worktree")
		if notMerged > 0 {
			prompt += " (" + countNoun(notMerged, "unmerged branch") + " will lose work)"
		}
		if !confirm(prompt) {
			logInfo("Aborted")
			return nil
		}
	}

	removed := 0
	for _, wt := range targets {
		if err := client.RemoveWorktree(ctx, wt.Path); err != nil {
			logWarning("Failed to remove %s: %v", wt.Path, err)
			continue
		}
		removed++
		logging.Debug("removed worktree", "path", wt.Path)

		if removeDeleteBranches && !wt.Detached && wt.Branch != "" {
			if err := client.DeleteBranch(ctx, wt.Branch); err != nil {
				logWarning("Failed to delete branch %s: %v", wt.Branch, err)
			}
		}
	}

	if err := client.PruneWorktrees(ctx); err != nil {
		logWarning("Failed to prune worktree entries: %v", err)
	}

	logSuccess("Removed %s", countNoun(removed, "worktree"))
	return nil
}

func countNoun(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	suffix := "s"
	if strings.HasSuffix(noun, "h") {
		suffix = "es"
	}
	return fmt.Sprintf("%d %s%s", n, noun, suffix)
}
