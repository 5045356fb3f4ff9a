package cmd

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/devflow-tools/wtm/internal/errors"
	"github.com/devflow-tools/wtm/internal/git"
	"github.com/devflow-tools/wtm/internal/logging"
)

var mergeCleanup bool

var mergeCmd = &cobra.Command{
	Use:   "merge <index|branch>",
	Short: "Merge a worktree's branch into the current branch",
	Long: `Merges the branch of the selected worktree into the branch checked
out in the main working tree. The worktree is selected by listing
index or by branch name.

With --cleanup, the worktree is removed and its branch deleted after a
successful merge.`,
	Args: cobra.ExactArgs(1),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().BoolVar(&mergeCleanup, "cleanup", false, "Remove the worktree and delete its branch after merging")
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, err := repoClient(ctx)
	if err != nil {
		return err
	}

	snap, err := client.Snapshot(ctx)
	if err != nil {
		return err
	}

	var wt *git.Worktree
	if index, convErr := strconv.Atoi(args[0]); convErr == nil {
		wt, err = worktreeByIndex(snap, index)
		if err != nil {
			return err
		}
	} else {
		for i := range snap.Linked {
			if snap.Linked[i].Branch == args[0] {
				wt = &snap.Linked[i]
				break
			}
		}
		if wt == nil {
			return errors.ValidationError("no worktree on branch " + args[0])
		}
	}

	return mergeWorktree(ctx, client, snap.Parent, wt, mergeCleanup)
}

func mergeWorktree(ctx context.Context, client *git.Client, parent string, wt *git.Worktree, cleanup bool) error {
	if wt.Detached || wt.Branch == "" {
		return errors.ValidationError("worktree at " + wt.Path + " has no branch to merge")
	}
	if wt.Branch == parent {
		return errors.ValidationError("worktree branch " + wt.Branch + " is the current branch")
	}

	logging.Debug("merging branch", "branch", wt.Branch, "into", parent)

	if err := client.Merge(ctx, wt.Branch); err != nil {
		return err
	}
	logSuccess("Merged %s into %s", wt.Branch, parent)

	if !cleanup {
		return nil
	}

	if err := client.RemoveWorktree(ctx, wt.Path); err != nil {
		return err
	}
	if err := client.DeleteBranch(ctx, wt.Branch); err != nil {
		logWarning("Worktree removed but branch %s could not be deleted: %v", wt.Branch, err)
		return nil
	}
	logSuccess("Cleaned up worktree %s and branch %s", wt.Path, wt.Branch)
	return nil
}
